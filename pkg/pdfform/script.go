package pdfform

// ContainsKorean reports whether any rune of text falls in the Hangul
// Unicode blocks (syllables, jamo, compatibility jamo). Empty input is
// classified false. The check is a plain codepoint-range scan and does
// not depend on process locale.
func ContainsKorean(text string) bool {
	for _, r := range text {
		switch {
		case r >= 0xAC00 && r <= 0xD7AF:
			return true
		case r >= 0x1100 && r <= 0x11FF:
			return true
		case r >= 0x3130 && r <= 0x318F:
			return true
		}
	}
	return false
}

package pdfform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsKorean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"empty", "", false},
		{"ascii", "KMHXX00XXXX000001", false},
		{"ascii with punctuation", "CERT-20250307-A1B2C3", false},
		{"hangul syllables", "현대자동차", true},
		{"mixed latin and hangul", "Hyundai 소나타", true},
		{"hangul jamo", "가", true},
		{"compatibility jamo", "ㄱ", true},
		{"cjk ideographs are not hangul", "中国", false},
		{"latin-1 accents", "Škoda Citigo", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ContainsKorean(tc.in))
		})
	}
}

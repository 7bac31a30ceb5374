package pdfform

import (
	"strconv"
	"time"
)

// dateLayout is the Korean long form used by the certificate template.
const dateLayout = "2006년 01월 02일"

// FormatDate renders a date in the template's localized long form.
// Nil renders as the empty string.
func FormatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(dateLayout)
}

// FormatInt renders a number as its plain decimal string, empty when nil.
func FormatInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

// FormatMileage renders mileage with its unit suffix. The suffix is only
// appended when a value is present; nil renders as the empty string.
func FormatMileage(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n) + " km"
}

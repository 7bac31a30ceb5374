package pdfform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025년 03월 07일", FormatDate(&d))

	d = time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2024년 12월 31일", FormatDate(&d))
}

func TestFormatDateNil(t *testing.T) {
	assert.Equal(t, "", FormatDate(nil))
}

func TestFormatInt(t *testing.T) {
	year := 2019
	assert.Equal(t, "2019", FormatInt(&year))
	assert.Equal(t, "", FormatInt(nil))
}

func TestFormatMileage(t *testing.T) {
	mileage := 15000
	assert.Equal(t, "15000 km", FormatMileage(&mileage))

	zero := 0
	assert.Equal(t, "0 km", FormatMileage(&zero))

	// absent mileage must not render a dangling unit
	assert.Equal(t, "", FormatMileage(nil))
}

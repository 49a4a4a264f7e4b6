package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPeriod(t *testing.T) {
	assert.True(t, IsValidPeriod("2026-08"))
	assert.True(t, IsValidPeriod("1999-12"))
	assert.False(t, IsValidPeriod("2026-13"))
	assert.False(t, IsValidPeriod("2026-00"))
	assert.False(t, IsValidPeriod("2026-8"))
	assert.False(t, IsValidPeriod("26-08"))
	assert.False(t, IsValidPeriod(""))
}

func TestIsValidIdentifier(t *testing.T) {
	assert.True(t, IsValidIdentifier("88120301"))
	assert.True(t, IsValidIdentifier("198801012010011001"))
	assert.False(t, IsValidIdentifier("1234567"))
	assert.False(t, IsValidIdentifier("1988010120100110011"))
	assert.False(t, IsValidIdentifier("19880101A010011001"))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "period", Message: "must be in YYYY-MM format"},
		{Field: "bank", Message: "is required"},
	}

	assert.Equal(t, "period: must be in YYYY-MM format; bank: is required", errs.Error())
	assert.Equal(t, map[string]string{
		"period": "must be in YYYY-MM format",
		"bank":   "is required",
	}, errs.ToMap())
}

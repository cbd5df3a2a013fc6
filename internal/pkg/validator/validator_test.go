package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidMobile(t *testing.T) {
	tests := []struct {
		name   string
		mobile string
		want   bool
	}{
		{"bare ten digits", "9876543210", true},
		{"with country code", "+919876543210", true},
		{"with leading zero", "09876543210", true},
		{"with spaces", "98765 43210", true},
		{"with dashes", "98765-43210", true},
		{"too short", "987654321", false},
		{"too long", "98765432100", false},
		{"letters", "98765abcde", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidMobile(tt.mobile))
		})
	}
}

func TestNormalizeMobile(t *testing.T) {
	tests := []struct {
		name   string
		mobile string
		want   string
	}{
		{"bare", "9876543210", "9876543210"},
		{"country code", "+919876543210", "9876543210"},
		{"leading zero", "09876543210", "9876543210"},
		{"spaces and dashes", "+91 98765-43210", "9876543210"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMobile(tt.mobile))
		})
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	assert.True(t, IsValidEmployeeCode("OIDPL042"))
	assert.True(t, IsValidEmployeeCode("EMP1"))
	assert.False(t, IsValidEmployeeCode("oidpl042"))
	assert.False(t, IsValidEmployeeCode("AB"))
	assert.False(t, IsValidEmployeeCode("OIDPL-042"))
	assert.False(t, IsValidEmployeeCode(""))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("admin@oidpl.com"))
	assert.True(t, IsValidEmail("hr.team+payroll@oidpl.co.in"))
	assert.False(t, IsValidEmail("admin@oidpl"))
	assert.False(t, IsValidEmail("not-an-email"))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-06-02")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), date)

	_, ok = IsValidDate("02-06-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-13-40")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	_, ok := IsValidDateTime("2025-06-02T10:30:00Z")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2025-06-02T10:30:00+05:30")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2025-06-02")
	assert.False(t, ok)
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("secret"))
	assert.False(t, IsValidPassword("short"))
	assert.False(t, IsValidPassword(""))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "mobile", Message: "must be a 10-digit Indian mobile number"},
		{Field: "name", Message: "is required"},
	}

	assert.Contains(t, errs.Error(), "mobile:")
	assert.Contains(t, errs.Error(), "name:")

	m := errs.ToMap()
	assert.Equal(t, "is required", m["name"])
}

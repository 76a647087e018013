package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase unchanged", "foo@bar.com", "foo@bar.com"},
		{"uppercase lowered", "Foo@Bar.COM", "foo@bar.com"},
		{"whitespace trimmed", "  foo@bar.com  ", "foo@bar.com"},
		{"mixed case and whitespace", " Foo@Bar.com ", "foo@bar.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeEmail(tt.input))
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"foo@bar.com",
		"user.name+tag@example.co.id",
		"a@b.io",
	}
	invalid := []string{
		"",
		"plainaddress",
		"@missinglocal.com",
		"missing@domain",
		"spaces in@local.com",
		"foo@bar",
	}

	for _, email := range valid {
		assert.True(t, IsValidEmail(email), "expected %q to be valid", email)
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), "expected %q to be invalid", email)
	}
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "al***@example.com", MaskEmail("alice@example.com"))
	assert.Equal(t, "ab@example.com", MaskEmail("ab@example.com"))
	assert.Equal(t, "not-an-email", MaskEmail("not-an-email"))
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"081234567890":     "6281234567890",
		"+6281234567890":   "6281234567890",
		"6281234567890":    "6281234567890",
		"0812-3456-7890":   "6281234567890",
		"0812 3456 7890":   "6281234567890",
		"(0812) 3456-7890": "6281234567890",
		"81234567890":      "6281234567890",
		"":                 "",
		"abc":              "",
	}

	for raw, want := range cases {
		assert.Equal(t, want, NormalizePhone(raw), "input %q", raw)
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	inputs := []string{
		"081234567890",
		"+6281234567890",
		"6281234567890",
		"81234567890",
		"0812-3456-7890",
		"",
		"not a number",
	}

	for _, raw := range inputs {
		once := NormalizePhone(raw)
		assert.Equal(t, once, NormalizePhone(once), "input %q", raw)
	}
}

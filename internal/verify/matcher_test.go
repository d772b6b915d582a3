package verify

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigitPattern(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		stored  string
		matches bool
	}{
		{"plain number", "9876543210", "9876543210", true},
		{"stored with dashes", "9876543210", "98765-43210", true},
		{"stored with spaces", "9876543210", "98765 43210", true},
		{"query with punctuation", "987-654-3210", "9876543210", true},
		{"aadhar with spaces", "123412341234", "1234 1234 1234", true},
		{"different digits", "9876543210", "9876543211", false},
		{"partial prefix must not match", "98765", "9876543210", false},
		{"partial suffix must not match", "43210", "9876543210", false},
		{"stored has extra digit", "9876543210", "98765432100", false},
		{"leading text is fine", "9876543210", "tel:9876543210", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern := DigitPattern(tt.query)
			require.NotEmpty(t, pattern)
			re, err := regexp.Compile(pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.matches, re.MatchString(tt.stored))
		})
	}
}

func TestDigitPatternNoDigits(t *testing.T) {
	assert.Empty(t, DigitPattern("someone@example.com"))
	assert.Empty(t, DigitPattern(""))
	assert.Empty(t, DigitPattern("---"))
}

func TestConditions(t *testing.T) {
	t.Run("blank identifier yields nothing", func(t *testing.T) {
		assert.Nil(t, Conditions("   ", playerExactFields, playerDigitFields))
	})

	t.Run("exact fields are lowercased", func(t *testing.T) {
		conds := Conditions("Someone@Example.COM", playerExactFields, playerDigitFields)
		require.Len(t, conds, len(playerExactFields))
		for _, c := range conds {
			require.Len(t, c.Args, 1)
			assert.Equal(t, "someone@example.com", c.Args[0])
		}
	})

	t.Run("digit identifier adds digit conditions", func(t *testing.T) {
		conds := Conditions("98765 43210", playerExactFields, playerDigitFields)
		assert.Len(t, conds, len(playerExactFields)+len(playerDigitFields))
	})
}

func TestRegistrationSuffix(t *testing.T) {
	tests := []struct {
		identifier string
		want       string
	}{
		{"DDKA-2026-A1B2", "A1B2"},
		{"ddka-2026-a1b2", "A1B2"},
		{"  DDKA-2026-0F3C  ", "0F3C"},
		{"DDKA-2026-A1B", ""},
		{"DDKA-2026-A1B2C", ""},
		{"DDKA-2025-A1B2", ""},
		{"A1B2", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RegistrationSuffix("DDKA-2026", tt.identifier), "identifier %q", tt.identifier)
	}
}

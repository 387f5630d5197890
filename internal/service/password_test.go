package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePasswordPolicy(t *testing.T) {
	for i := 0; i < 200; i++ {
		pw, err := GeneratePassword()
		require.NoError(t, err)

		assert.Len(t, pw, 8)
		assert.True(t, strings.ContainsAny(pw, upperChars), "missing uppercase: %q", pw)
		assert.True(t, strings.ContainsAny(pw, lowerChars), "missing lowercase: %q", pw)
		assert.True(t, strings.ContainsAny(pw, digitChars), "missing digit: %q", pw)
		assert.True(t, strings.ContainsAny(pw, specialChars), "missing special: %q", pw)

		for _, c := range pw {
			assert.Contains(t, allChars, string(c))
		}
	}
}

func TestGeneratePasswordShuffles(t *testing.T) {
	// If the buffer were not shuffled, position 0 would always hold an
	// uppercase letter. Over many draws that is vanishingly unlikely.
	sawNonUpperFirst := false
	for i := 0; i < 100; i++ {
		pw, err := GeneratePassword()
		require.NoError(t, err)
		if !strings.ContainsAny(pw[:1], upperChars) {
			sawNonUpperFirst = true
			break
		}
	}
	assert.True(t, sawNonUpperFirst, "first character was always uppercase; shuffle looks broken")
}

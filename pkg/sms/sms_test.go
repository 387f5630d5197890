package sms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"pakistani local format", "03001234567", "+923001234567"},
		{"ten digit us number", "5551234567", "+15551234567"},
		{"eleven digit number", "15551234567", "+115551234567"},
		{"already e164", "+44123456789", "+44123456789"},
		{"separators stripped", "(555) 123-4567", "+15551234567"},
		{"pakistani with separators", "0300-123 4567", "+923001234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.input))
		})
	}
}

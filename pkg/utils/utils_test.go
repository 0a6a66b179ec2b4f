package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()
	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPadLeft(t *testing.T) {
	tests := []struct {
		in       string
		width    int
		expected string
	}{
		{"5", 2, "05"},
		{"15", 2, "15"},
		{"", 2, "00"},
		{"123", 2, "123"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, PadLeft(tt.in, tt.width, '0'))
	}
}

func TestStringPointers(t *testing.T) {
	assert.Equal(t, "", StringOrEmpty(nil))
	assert.Equal(t, "x", StringOrEmpty(StringPtr("x")))
}

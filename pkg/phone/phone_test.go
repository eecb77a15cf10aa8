package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"(11) 98765-4321", "11987654321"},
		{"11987654321", "11987654321"},
		{"+55 11 98765-4321", "5511987654321"},
		{"011 98765 4321", "11987654321"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.input), "input=%q", tt.input)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("(11) 98765-4321"))
	assert.True(t, IsValid("12345678"))
	assert.False(t, IsValid("123"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("1234567890123456"))
}

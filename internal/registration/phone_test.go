package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"08012345678", "2348012345678"},
		{"+2348012345678", "2348012345678"},
		{"2348012345678", "2348012345678"},
		{"8012345678", "2348012345678"},
		{" 0801 234 5678 ", "2348012345678"},
		{"+234 801 234 5678", "2348012345678"},
		{"", "234"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := CanonicalizePhone(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, CanonicalizePhone(got), "canonicalization must be idempotent")
		})
	}
}

func TestIsNigerianPhone(t *testing.T) {
	assert.True(t, IsNigerianPhone("08012345678"))
	assert.True(t, IsNigerianPhone("+234 701 234 5678"))
	assert.False(t, IsNigerianPhone("0801234"))
	assert.False(t, IsNigerianPhone("05012345678"))
}

package phonefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		region string
		want   string
	}{
		{name: "kuwaiti mobile local format", raw: "50123456", region: "KW", want: "+96550123456"},
		{name: "kuwaiti mobile with spaces", raw: "5012 3456", region: "KW", want: "+96550123456"},
		{name: "already international", raw: "+96550123456", region: "KW", want: "+96550123456"},
		{name: "international overrides region hint", raw: "+96550123456", region: "US", want: "+96550123456"},
		{name: "us number with punctuation", raw: "(202) 555-0142", region: "US", want: "+12025550142"},
		{name: "leading and trailing whitespace", raw: "  50123456  ", region: "KW", want: "+96550123456"},
		{name: "lowercase region", raw: "50123456", region: "kw", want: "+96550123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw, tt.region)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		region string
	}{
		{name: "empty", raw: "", region: "KW"},
		{name: "whitespace only", raw: "   ", region: "KW"},
		{name: "too short", raw: "123", region: "KW"},
		{name: "letters", raw: "call me", region: "KW"},
		{name: "valid digits wrong region length", raw: "50123456", region: "US"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw, tt.region)
			assert.ErrorIs(t, err, ErrInvalidPhone)
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("50123456", "KW"))
	assert.False(t, IsValid("123", "KW"))
}

package registry

import (
	"strings"
	"testing"
)

func TestValidToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		valid bool
	}{
		{
			name:  "well-formed token",
			token: "V1StGXR8_Z5jdHi6BmyT9",
			valid: true,
		},
		{
			name:  "all underscore",
			token: strings.Repeat("_", TokenLength),
			valid: true,
		},
		{
			name:  "too short",
			token: "V1StGXR8_Z5jdHi6BmyT",
			valid: false,
		},
		{
			name:  "too long",
			token: "V1StGXR8_Z5jdHi6BmyT9x",
			valid: false,
		},
		{
			name:  "empty",
			token: "",
			valid: false,
		},
		{
			name:  "contains hyphen",
			token: "V1StGXR8-Z5jdHi6BmyT9",
			valid: false,
		},
		{
			name:  "contains space",
			token: "V1StGXR8 Z5jdHi6BmyT9",
			valid: false,
		},
		{
			name:  "contains non-ascii",
			token: "V1StGXR8éZ5jdHi6BmyT9",
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidToken(tt.token); got != tt.valid {
				t.Errorf("ValidToken(%q) = %v, want %v", tt.token, got, tt.valid)
			}
		})
	}
}

func TestTokenAlphabetExcludesHyphen(t *testing.T) {
	if strings.ContainsRune(TokenAlphabet, '-') {
		t.Error("token alphabet must not contain '-'")
	}
	if len(TokenAlphabet) != 63 {
		t.Errorf("token alphabet has %d characters, want 63", len(TokenAlphabet))
	}
}

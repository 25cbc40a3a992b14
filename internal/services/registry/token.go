package registry

// Tokens are fixed-length opaque identifiers in the style of nanoid,
// with '-' excluded so they stay safe in cookies and path segments.
// Uniqueness is assumed, not enforced: with 63^21 possible values the
// collision probability is cryptographically negligible.
const (
	// TokenLength is the length of player and room tokens
	TokenLength = 21
	// TokenAlphabet is the characters used in tokens
	TokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_"
)

// ValidToken reports whether a string is well-formed as a token.
// It says nothing about whether the token resolves to a live record.
func ValidToken(token string) bool {
	if len(token) != TokenLength {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '_':
		default:
			return false
		}
	}
	return true
}

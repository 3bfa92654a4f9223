package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenClaims is the JWT payload for an authenticated caller. The
// registered Subject claim carries the opaque ledger identity; the ledger
// itself attaches no further meaning to it.
type AccessTokenClaims struct {
	jwt.RegisteredClaims
}

// Identity returns the opaque caller identity embedded in the token.
func (c *AccessTokenClaims) Identity() string {
	if c == nil {
		return ""
	}
	return c.Subject
}

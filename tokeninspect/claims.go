package tokeninspect

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded payload segment of a token. Only exp is interpreted;
// every other member is carried through untouched for diagnostics.
type Claims map[string]any

// ExpiresAt returns the exp claim at second precision. A missing claim
// yields a MISSING_EXPIRY error and a non-numeric one a MALFORMED error.
func (c Claims) ExpiresAt() (time.Time, error) {
	if _, ok := c["exp"]; !ok {
		return time.Time{}, NewInspectionError(ErrMissingExpiry, "exp claim missing", nil)
	}

	exp, err := jwt.MapClaims(c).GetExpirationTime()
	if err != nil {
		return time.Time{}, NewInspectionError(ErrMalformed, "exp claim is not a numeric date", err)
	}
	// golang-jwt maps a zero exp to nil
	if exp == nil {
		return time.Unix(0, 0), nil
	}
	return time.Unix(exp.Unix(), 0), nil
}

// Subject returns the sub claim when it is a string.
func (c Claims) Subject() string {
	sub, _ := jwt.MapClaims(c).GetSubject()
	return sub
}

package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IsTokenExpired reports whether the token's exp claim is in the past.
// The signature is not verified. Undecodable tokens count as expired; tokens without exp never expire.
func IsTokenExpired(token string) bool {
	return tokenExpiredAt(token, time.Now())
}

// ExpiresAt returns the token's exp claim, if it has one
func ExpiresAt(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func tokenExpiredAt(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

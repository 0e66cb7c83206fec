package session

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/chupacabra/chupacabra/pkg/types"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformedToken = errors.New("malformed access token")
	ErrMissingClaims  = errors.New("access token lacks id or permissionLevel")
)

// User is the identity carried by the access token.
type User struct {
	ID              int
	PermissionLevel types.PermissionLevel
	ExpiresAt       time.Time // zero when the token has no exp claim
}

// Expired reports whether the token behind u has expired at now.
func (u User) Expired(now time.Time) bool {
	return !u.ExpiresAt.IsZero() && !now.Before(u.ExpiresAt)
}

// ParseToken reads the claims of an access token without verifying its
// signature; the server does that on every call.
func ParseToken(token string) (User, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	var u User
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if exp != nil {
		u.ExpiresAt = exp.Time
	}

	id, okID := intClaim(claims, "id")
	level, okLevel := intClaim(claims, "permissionLevel")
	if !okID || !okLevel || !types.PermissionLevel(level).Valid() {
		return u, ErrMissingClaims
	}
	u.ID = id
	u.PermissionLevel = types.PermissionLevel(level)
	return u, nil
}

func intClaim(claims jwt.MapClaims, name string) (int, bool) {
	v, ok := claims[name].(float64)
	if !ok || v != math.Trunc(v) {
		return 0, false
	}
	return int(v), true
}

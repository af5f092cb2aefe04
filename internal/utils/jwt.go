package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken represents a signed JWT bearer token along with its expiry.
// The Token field contains the serialized JWT string that clients send in
// the Authorization header. Exp stores the UTC expiration timestamp.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// ErrTokenInvalid is returned by ParseAccessToken for tokens that are
// expired, tampered with, signed with a different secret or otherwise
// unparseable. Callers should treat it as an authentication failure and
// not inspect the underlying cause.
var ErrTokenInvalid = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user ID and a TTL in days, and returns an
// AccessToken with the signed string and its expiration time. The JWT
// carries standard claims: subject (sub), expiration (exp) and issued
// at (iat).
func NewAccessToken(secret string, userID uint64, ttlDays int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken validates a raw JWT against the signing secret and
// returns the user ID stored in the subject claim. Any validation
// failure, including an unexpected signing method, yields
// ErrTokenInvalid.
func ParseAccessToken(secret, raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, ErrTokenInvalid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrTokenInvalid
	}
	// Numeric JSON claims decode as float64.
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, ErrTokenInvalid
	}
	return uint64(sub), nil
}

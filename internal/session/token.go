package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrBadToken is returned when a session cookie cannot be verified. The
// middleware responds by issuing a brand new session rather than failing
// the request: an anonymous wizard has nothing to protect beyond the
// visitor's own in-progress state.
var ErrBadToken = errors.New("invalid session token")

// Token is a signed session cookie value along with its expiry.
type Token struct {
	Value string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewToken builds and signs an HS256 JWT binding the cookie to a session
// id. The JWT carries the session id (sid), expiration (exp) and issued at
// (iat); signing keeps visitors from hopping into each other's sessions by
// editing the cookie.
func NewToken(secret, sessionID string, ttlMin int) (Token, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, Exp: exp}, nil
}

// ParseToken verifies a cookie value and returns the session id it carries.
func ParseToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrBadToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrBadToken
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrBadToken
	}
	return sid, nil
}

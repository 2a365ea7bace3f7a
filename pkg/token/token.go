package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed covers every way a token can fail verification: bad
// signature, bad encoding, wrong structure, expired claims. The error
// boundary maps it to a single fixed 401 response, so callers never need
// to distinguish the underlying cause.
var ErrMalformed = errors.New("token is malformed")

// Claims is the signed payload carried by an access token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Codec signs and verifies access tokens with a single process-wide secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a codec. A ttl of zero issues tokens without an exp
// claim; tokens then never expire.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token over the given identity.
func (c *Codec) Issue(userID, email string) (string, error) {
	claims := Claims{
		UserID: userID,
		Email:  email,
	}
	if c.ttl > 0 {
		claims.RegisteredClaims = jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		}
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(c.secret)
}

// Decode verifies the signature and structure of a token and returns its
// claims. Any failure is reported as ErrMalformed.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !tok.Valid {
		return nil, ErrMalformed
	}

	return claims, nil
}

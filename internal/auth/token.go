package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single failure Decode reports. Signature
// mismatch, malformed structure and expiry all collapse into it so the
// response never tells a caller which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	UserID   int    `json:"user_id"`
	Phone    string `json:"phone"`
	Username string `json:"username,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Codec signs and verifies the stateless session tokens. Secret and TTL
// come from the config at construction time; there is no package-level
// key material.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Encode mints a token for the given identity with a fresh expiry window.
func (c *Codec) Encode(claims Claims) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString(c.secret)
}

// Decode verifies signature and expiry and returns the embedded claims.
func (c *Codec) Decode(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// accept HMAC only
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(time.Now()) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies stateless, symmetrically signed tokens.
// No server side session store - validity is computed entirely from the
// signed token contents, which also means no server side revocation.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration

	// ability to inject the clock for expiry unit tests
	NowFunc func() time.Time
}

func NewTokenService(secret []byte, algorithm string, ttl time.Duration) (*TokenService, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm: %s", algorithm)
	}
	return &TokenService{
		secret:  secret,
		method:  method,
		ttl:     ttl,
		NowFunc: time.Now,
	}, nil
}

func (ts *TokenService) Issue(identity Identity) (string, error) {
	return ts.IssueWithTTL(identity, ts.ttl)
}

func (ts *TokenService) IssueWithTTL(identity Identity, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":       identity.ID,
		"username": identity.Username,
		"exp":      ts.NowFunc().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(ts.method, claims).SignedString(ts.secret)
}

// Verify returns the identity carried by the token, or ErrInvalidToken on
// any failure. Expired, tampered and malformed tokens are indistinguishable
// to the caller to avoid leaking why verification failed.
func (ts *TokenService) Verify(token string) (Identity, error) {
	parsed, err := jwt.Parse(
		token,
		func(t *jwt.Token) (interface{}, error) {
			return ts.secret, nil
		},
		jwt.WithValidMethods([]string{ts.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return ts.NowFunc() }),
	)
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	id, _ := claims["id"].(string)
	username, _ := claims["username"].(string)
	return Identity{
		ID:       id,
		Username: username,
	}, nil
}

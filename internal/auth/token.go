package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is how long an issued token stays valid. There is no refresh;
// clients log in again after expiry.
const TokenLifetime = time.Hour

var (
	// ErrAuthMissing is returned when the request carries no Authorization header.
	ErrAuthMissing = errors.New("no token provided")
	// ErrAuthMalformed is returned when the header is not "Bearer <token>".
	ErrAuthMalformed = errors.New("malformed token")
	// ErrAuthInvalid covers bad signatures, bad encodings and expired tokens alike.
	ErrAuthInvalid = errors.New("failed to authenticate token")
)

// Claims carries the authenticated user id.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 signed bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("token secret is required")
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    TokenLifetime,
		now:    time.Now,
	}, nil
}

// Issue signs a token for userID expiring TokenLifetime from now.
func (s *TokenService) Issue(userID string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates signature and expiry and returns the embedded user id.
// Every failure is reported as ErrAuthInvalid.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthInvalid, err)
	}
	if !token.Valid || claims.UserID == "" {
		return "", ErrAuthInvalid
	}
	return claims.UserID, nil
}

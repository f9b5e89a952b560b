package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claims")
)

// SessionClaims represents the JWT claims for a user session
type SessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Options configures a TokenManager
type Options struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
	// VerifyAudience enables the aud check on validation. Tokens always carry
	// the audience claim; checking it is opt-in.
	VerifyAudience bool
}

// TokenManager handles JWT token generation and validation
type TokenManager struct {
	secret         []byte
	issuer         string
	audience       string
	ttl            time.Duration
	verifyAudience bool
	now            func() time.Time
}

// NewTokenManager creates a new TokenManager
func NewTokenManager(opts Options) *TokenManager {
	return &TokenManager{
		secret:         []byte(opts.Secret),
		issuer:         opts.Issuer,
		audience:       opts.Audience,
		ttl:            opts.TTL,
		verifyAudience: opts.VerifyAudience,
		now:            time.Now,
	}
}

// GenerateToken creates a signed session token for a user
func (tm *TokenManager) GenerateToken(subject, email, name, role string) (string, error) {
	now := tm.now()

	claims := SessionClaims{
		Email: email,
		Name:  name,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tm.issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{tm.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateToken validates a JWT token and returns the claims
func (tm *TokenManager) ValidateToken(tokenString string) (*SessionClaims, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(tm.now),
	}
	if tm.verifyAudience {
		parserOpts = append(parserOpts, jwt.WithAudience(tm.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	}, parserOpts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

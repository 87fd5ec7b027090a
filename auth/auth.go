package auth

import (
	stderrors "errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kdemir/pipekit/errors"
)

// Config configures the token service.
type Config struct {
	// Secret is the HMAC signing key.
	Secret string
	// Issuer is the "iss" claim checked on verification, if set.
	Issuer string
	// TokenTTL is the token lifetime (default: 1h).
	TokenTTL time.Duration
}

// Claims are the JWT claims pipekit issues and accepts.
type Claims struct {
	gojwt.RegisteredClaims
	// Role gates mutating operations; only "operator" may create runs.
	Role string `json:"role,omitempty"`
}

// RoleOperator is the role allowed to create and execute runs.
const RoleOperator = "operator"

// Service issues and verifies HS256 bearer tokens.
type Service struct {
	cfg Config
}

// NewService creates a token service. The secret is required.
func NewService(cfg Config) (*Service, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("auth: secret is required")
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = time.Hour
	}
	return &Service{cfg: cfg}, nil
}

// Issue creates a signed token for the given subject and role.
func (s *Service) Issue(subject, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
		Role: role,
	}
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a token string and returns its claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.cfg.Issuer))
	}

	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc, opts...)
	if err != nil {
		if stderrors.Is(err, gojwt.ErrTokenExpired) {
			return nil, errors.TokenExpired().WithCause(err)
		}
		return nil, errors.InvalidToken().WithCause(err)
	}
	if !token.Valid {
		return nil, errors.InvalidToken()
	}
	return claims, nil
}

func (s *Service) keyFunc(token *gojwt.Token) (interface{}, error) {
	if token.Method.Alg() != gojwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("auth: unexpected signing method: %s", token.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

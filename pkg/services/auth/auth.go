package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/de-tools/decision-simulator/pkg/models/domain"
)

var (
	ErrPasswordRequired = errors.New("password is required in this demo login")
	ErrInvalidToken     = errors.New("invalid or expired token")
)

type Config struct {
	Secret    string
	Algorithm string
	TTL       time.Duration
	Now       func() time.Time
}

// Service issues and verifies short-lived access tokens. The demo login
// accepts any non-empty password.
type Service struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

func NewService(cfg Config) (*Service, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive")
	}

	alg := strings.ToUpper(strings.TrimSpace(cfg.Algorithm))
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", cfg.Algorithm)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		secret: []byte(cfg.Secret),
		method: method,
		ttl:    cfg.TTL,
		now:    now,
	}, nil
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

func (s *Service) Login(email, password string) (domain.AccessToken, error) {
	if password == "" {
		return domain.AccessToken{}, ErrPasswordRequired
	}
	return s.Issue(email)
}

// Issue signs a token for subject valid for the configured lifetime.
func (s *Service) Issue(subject string) (domain.AccessToken, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	token := jwt.NewWithClaims(s.method, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("sign token: %w", err)
	}

	return domain.AccessToken{
		Token:     signed,
		Subject:   subject,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks signature and expiry and returns the token subject.
func (s *Service) Verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"book-inventory/internal/config"
	"book-inventory/internal/domains/admin/model"
	"book-inventory/pkg/jwt"
)

const passwordCost = 12

type Service interface {
	// Login checks password for the client at ip and returns a session token
	Login(ctx context.Context, ip, password string) (string, error)
	SessionTTL() time.Duration
}

// TokenIssuer is satisfied by *jwt.Manager
type TokenIssuer interface {
	GenerateAdminToken() (string, error)
	TTL() time.Duration
}

type adminService struct {
	hash    []byte
	tokens  TokenIssuer
	limiter *ipLimiter
}

var _ TokenIssuer = (*jwt.Manager)(nil)

// NewAdminService hashes cfg.Password when no PasswordHash is configured.
// With neither set every login fails with ErrLoginDisabled.
func NewAdminService(cfg config.AdminConfig, tokens TokenIssuer) (Service, error) {
	hash := []byte(cfg.PasswordHash)
	if len(hash) == 0 && cfg.Password != "" {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.Password), passwordCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
	}

	return &adminService{
		hash:    hash,
		tokens:  tokens,
		limiter: newIPLimiter(cfg.LoginRate, cfg.LoginBurst),
	}, nil
}

func (s *adminService) Login(_ context.Context, ip, password string) (string, error) {
	if !s.limiter.Allow(ip) {
		log.Warn().Str("ip", ip).Msg("[AdminService] login rate limited")
		return "", model.ErrTooManyAttempts
	}
	if len(s.hash) == 0 {
		return "", model.ErrLoginDisabled
	}

	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		log.Warn().Str("ip", ip).Msg("[AdminService] wrong admin password")
		return "", model.ErrInvalidPassword
	}

	token, err := s.tokens.GenerateAdminToken()
	if err != nil {
		return "", fmt.Errorf("generate admin token: %w", err)
	}

	log.Info().Str("ip", ip).Msg("[AdminService] admin logged in")
	return token, nil
}

func (s *adminService) SessionTTL() time.Duration {
	return s.tokens.TTL()
}

// Package siwe implements Sign-In with Ethereum authentication: message
// verification, per-address rate limiting, nonce issuance, and session
// tokens.
package siwe

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"stablemart/internal/models"
	"stablemart/internal/repositories"
	"stablemart/internal/utils"
	"stablemart/internal/validation"

	siwego "github.com/spruceid/siwe-go"
)

// Config carries the app identity the signed message must match and the
// optional development-only bypass address.
type Config struct {
	Domain    string
	Statement string

	// BypassAddress skips signature verification for one address. It is a
	// test fixture and must never be set in production; the caller is
	// expected to gate it on the environment.
	BypassAddress string
}

type Service interface {
	Login(message, signature string) (string, error)
	ValidateToken(token string) (*models.User, error)
	IssueNonce(address string) (string, error)
	ResetRateLimit()
}

type service struct {
	userRepo repositories.UserRepository
	tracker  *AttemptTracker
	cfg      Config
}

// NewService creates the SIWE authenticator. The tracker is injected so
// tests can drive the clock and deployments can share one across services.
func NewService(userRepo repositories.UserRepository, tracker *AttemptTracker, cfg Config) Service {
	if userRepo == nil {
		panic("user repo is required")
	}
	if tracker == nil {
		panic("attempt tracker is required")
	}
	if cfg.Domain == "" {
		panic("domain is required")
	}
	return &service{
		userRepo: userRepo,
		tracker:  tracker,
		cfg:      cfg,
	}
}

// Login verifies a signed SIWE message and returns a session token.
// Failures come back as the package's sentinel errors so callers can branch
// without string matching: ErrRateLimited, ErrInvalidMessage,
// ErrDomainMismatch, ErrInvalidNonce, ErrInvalidSignature.
func (s *service) Login(message, signature string) (string, error) {
	msg, err := siwego.ParseMessage(message)
	if err != nil {
		return "", ErrInvalidMessage
	}

	address := strings.ToLower(msg.GetAddress().Hex())

	if !s.tracker.Allow(address) {
		log.Printf("siwe login rate limited for %s", address)
		return "", ErrRateLimited
	}

	if msg.GetDomain() != s.cfg.Domain {
		return "", ErrDomainMismatch
	}
	if s.cfg.Statement != "" {
		stmt := msg.GetStatement()
		if stmt == nil || *stmt != s.cfg.Statement {
			return "", ErrDomainMismatch
		}
	}

	if !s.tracker.CheckNonce(address, msg.GetNonce()) {
		return "", ErrInvalidNonce
	}

	if !s.isBypassed(address) {
		if ok, err := msg.ValidNow(); err != nil || !ok {
			return "", ErrInvalidSignature
		}
		if _, err := msg.VerifyEIP191(signature); err != nil {
			return "", ErrInvalidSignature
		}
	}

	user, err := s.upsertUser(address)
	if err != nil {
		return "", err
	}

	token, err := utils.GenerateSessionToken(&models.SessionClaims{
		UserID:  user.ID,
		Address: user.EthereumAddress,
		Role:    user.Role,
	})
	if err != nil {
		log.Printf("failed to sign session token for user %d: %v", user.ID, err)
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// ValidateToken resolves a session token to its user. Every failure mode
// (bad signature, expiry, unknown user) is reported as ErrInvalidToken.
func (s *service) ValidateToken(token string) (*models.User, error) {
	claims, err := utils.ParseSessionToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// IssueNonce returns a single-use nonce for the address to embed in its
// SIWE message.
func (s *service) IssueNonce(address string) (string, error) {
	normalized, err := validation.NormalizeAddress(address)
	if err != nil {
		return "", ErrInvalidMessage
	}
	return s.tracker.IssueNonce(normalized), nil
}

// ResetRateLimit clears all attempt counters and nonces.
func (s *service) ResetRateLimit() {
	s.tracker.Reset()
}

func (s *service) isBypassed(address string) bool {
	return s.cfg.BypassAddress != "" && strings.EqualFold(s.cfg.BypassAddress, address)
}

func (s *service) upsertUser(address string) (*models.User, error) {
	user, err := s.userRepo.GetByEthereumAddress(address)
	if err == nil {
		user.LastLoginAt = time.Now()
		if err := s.userRepo.Update(user); err != nil {
			log.Printf("failed to record login time for user %d: %v", user.ID, err)
		}
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	user = &models.User{
		Username:        address[:10],
		EthereumAddress: address,
		AuthMethod:      "siwe",
		Role:            models.RoleBuyer,
		Status:          "active",
		LastLoginAt:     time.Now(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/omaradel73/zamazon-v2/internal/auth"
	"github.com/omaradel73/zamazon-v2/internal/cache"
	"github.com/omaradel73/zamazon-v2/internal/domain"
	"github.com/omaradel73/zamazon-v2/internal/mailer"
	"github.com/omaradel73/zamazon-v2/internal/repository"
)

const resetCodeTTL = time.Hour

type AuthService struct {
	accounts    repository.AccountRepository
	mail        mailer.Mailer
	cooldown    cache.CooldownGuard
	tokens      *auth.TokenManager
	adminEmails map[string]struct{}
	log         *zap.Logger
}

func NewAuthService(
	accounts repository.AccountRepository,
	mail mailer.Mailer,
	cooldown cache.CooldownGuard,
	tokens *auth.TokenManager,
	adminEmails []string,
	log *zap.Logger,
) *AuthService {
	allowList := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		allowList[normalizeEmail(email)] = struct{}{}
	}
	return &AuthService{
		accounts:    accounts,
		mail:        mail,
		cooldown:    cooldown,
		tokens:      tokens,
		adminEmails: allowList,
		log:         log,
	}
}

// Register creates an unverified account and dispatches its verification
// code. Allow-listed emails are elevated to admin directly.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.Account, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.log.Error("failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("%w: could not process registration", ErrDependency)
	}

	role := domain.RoleCustomer
	if _, ok := s.adminEmails[email]; ok {
		role = domain.RoleAdmin
	}

	account := &domain.Account{
		Name:             name,
		Email:            email,
		PasswordHash:     hash,
		Role:             role,
		Verified:         false,
		VerificationCode: generateCode(),
	}

	if err := s.accounts.Insert(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: user already exists", ErrConflict)
		}
		s.log.Error("failed to insert account", zap.Error(err))
		return nil, fmt.Errorf("%w: account store unreachable", ErrDependency)
	}

	s.sendAsync(mailer.VerificationCode(account.Email, account.VerificationCode))
	return account, nil
}

// Verify transitions unverified -> verified when the code matches exactly.
// The code is cleared on success so it cannot be replayed.
func (s *AuthService) Verify(ctx context.Context, email, code string) error {
	account, err := s.getByEmail(ctx, email)
	if err != nil {
		return err
	}

	if account.Verified {
		return fmt.Errorf("%w: account already verified", ErrValidation)
	}
	if code == "" || account.VerificationCode != code {
		return fmt.Errorf("%w: invalid verification code", ErrAuthentication)
	}

	account.Verified = true
	account.VerificationCode = ""
	if err := s.accounts.Update(ctx, account); err != nil {
		s.log.Error("failed to mark account verified", zap.Error(err))
		return fmt.Errorf("%w: account store unreachable", ErrDependency)
	}
	return nil
}

// ResendCode regenerates the verification code, subject to a server-side
// cooldown keyed by email.
func (s *AuthService) ResendCode(ctx context.Context, email string) error {
	account, err := s.getByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account.Verified {
		return fmt.Errorf("%w: account already verified", ErrValidation)
	}

	allowed, err := s.cooldown.Allow(ctx, "resend:"+account.Email)
	if err != nil {
		s.log.Warn("cooldown check failed, allowing resend", zap.Error(err))
	} else if !allowed {
		return fmt.Errorf("%w: please wait before requesting another code", ErrValidation)
	}

	account.VerificationCode = generateCode()
	if err := s.accounts.Update(ctx, account); err != nil {
		s.log.Error("failed to store new verification code", zap.Error(err))
		return fmt.Errorf("%w: account store unreachable", ErrDependency)
	}

	s.sendAsync(mailer.VerificationCode(account.Email, account.VerificationCode))
	return nil
}

// Login checks credentials and returns a signed session token. Unverified
// accounts cannot log in.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", ErrAuthentication)
		}
		s.log.Error("failed to look up account", zap.Error(err))
		return "", nil, fmt.Errorf("%w: account store unreachable", ErrDependency)
	}

	if !auth.CheckPassword(account.PasswordHash, password) {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrAuthentication)
	}
	if !account.Verified {
		return "", nil, fmt.Errorf("%w: account not verified", ErrAuthentication)
	}

	token, err := s.tokens.Issue(account)
	if err != nil {
		s.log.Error("failed to issue token", zap.Error(err))
		return "", nil, fmt.Errorf("%w: could not start session", ErrDependency)
	}
	return token, account, nil
}

// RequestReset generates a reset code valid for one hour and emails it.
func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	account, err := s.getByEmail(ctx, email)
	if err != nil {
		return err
	}

	account.ResetCode = generateCode()
	account.ResetCodeExpiry = time.Now().Add(resetCodeTTL)
	if err := s.accounts.Update(ctx, account); err != nil {
		s.log.Error("failed to store reset code", zap.Error(err))
		return fmt.Errorf("%w: account store unreachable", ErrDependency)
	}

	s.sendAsync(mailer.PasswordResetCode(account.Email, account.ResetCode))
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", ErrValidation)
	}

	account, err := s.getByEmail(ctx, email)
	if err != nil {
		return err
	}

	if account.ResetCode == "" || account.ResetCode != code {
		return fmt.Errorf("%w: invalid reset code", ErrAuthentication)
	}
	if time.Now().After(account.ResetCodeExpiry) {
		return fmt.Errorf("%w: reset code expired, request a new one", ErrExpiredToken)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		s.log.Error("failed to hash password", zap.Error(err))
		return fmt.Errorf("%w: could not reset password", ErrDependency)
	}

	account.PasswordHash = hash
	account.ResetCode = ""
	account.ResetCodeExpiry = time.Time{}
	if err := s.accounts.Update(ctx, account); err != nil {
		s.log.Error("failed to store new password", zap.Error(err))
		return fmt.Errorf("%w: account store unreachable", ErrDependency)
	}
	return nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, accountID, name string, shipping *domain.ShippingProfile) (*domain.Account, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		account.Name = name
	}
	if shipping != nil {
		account.Shipping = shipping
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		s.log.Error("failed to update profile", zap.Error(err))
		return nil, fmt.Errorf("%w: account store unreachable", ErrDependency)
	}
	return account, nil
}

// GetAccount resolves a verified token subject to its account record.
func (s *AuthService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: unknown account", ErrNotFound)
		}
		s.log.Error("failed to get account", zap.Error(err))
		return nil, fmt.Errorf("%w: account store unreachable", ErrDependency)
	}
	return account, nil
}

func (s *AuthService) getByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		s.log.Error("failed to look up account", zap.Error(err))
		return nil, fmt.Errorf("%w: account store unreachable", ErrDependency)
	}
	return account, nil
}

// sendAsync dispatches mail without blocking or failing the caller.
func (s *AuthService) sendAsync(msg mailer.Message) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.mail.Send(ctx, msg); err != nil {
			s.log.Warn("mail dispatch failed", zap.String("subject", msg.Subject), zap.Error(err))
		}
	}()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateCode returns a 6-digit numeric code.
func generateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand failing means the host is broken, but a code must
		// still come back.
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redmonkez12/greennest-api/internal/logging"
	"github.com/redmonkez12/greennest-api/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrMailDelivery       = errors.New("otp email could not be delivered")
)

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now for OTP issue and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service runs signup, login and the OTP password reset flow.
type Service struct {
	users  UserRepository
	hasher *Hasher
	mailer Mailer
	logger *logging.Logger
	otpTTL time.Duration
	now    func() time.Time
}

func NewService(users UserRepository, hasher *Hasher, mailer Mailer, logger *logging.Logger, otpTTL time.Duration, opts ...Option) *Service {
	if otpTTL <= 0 {
		otpTTL = DefaultOTPTTL
	}

	s := &Service{
		users:  users,
		hasher: hasher,
		mailer: mailer,
		logger: logger,
		otpTTL: otpTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup creates an account with an empty cart. It does not log the user in.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*user.User, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.users.Create(ctx, name, email, passwordHash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, user.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", newUser.ID)
	return newUser, nil
}

// Login checks the credentials. An unknown email yields user.ErrNotFound and a
// wrong password ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, error) {
	existingUser, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.hasher.Verify(password, existingUser.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return existingUser, nil
}

// RequestPasswordReset stores a fresh OTP for the user and mails it.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	existingUser, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	otp, err := GenerateOTP(s.now(), s.otpTTL)
	if err != nil {
		return err
	}

	if err := s.users.SetOTP(ctx, existingUser.ID, otp.Code, otp.ExpiresAt); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	// The stored code is left in place on failure; it expires on its own.
	if err := s.mailer.SendOTPEmail(ctx, email, otp.Code, otp.ExpiresAt); err != nil {
		s.logger.Warn("failed to send otp email", "user_id", existingUser.ID, "error", err)
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	s.logger.Info("password reset otp issued", "user_id", existingUser.ID)
	return nil
}

// CompletePasswordReset sets a new password when otp matches the stored,
// unexpired code. The code is cleared in the same update, so it cannot be
// replayed.
func (s *Service) CompletePasswordReset(ctx context.Context, email, otp, newPassword string) error {
	existingUser, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := ValidateOTP(otp, existingUser.OTPCode, existingUser.OTPExpiresAt, s.now()); err != nil {
		return err
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	if err := s.users.ResetPassword(ctx, existingUser.ID, otp, passwordHash, now); err != nil {
		if errors.Is(err, user.ErrOTPConsumed) {
			// hashing may have outlived the code
			if existingUser.OTPExpiresAt != nil && !now.Before(*existingUser.OTPExpiresAt) {
				return ErrOTPExpired
			}
			return ErrOTPInvalid
		}
		return fmt.Errorf("failed to reset password: %w", err)
	}

	s.logger.Info("password reset completed", "user_id", existingUser.ID)
	return nil
}

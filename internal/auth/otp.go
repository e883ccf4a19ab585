package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"
)

var (
	ErrOTPInvalid = errors.New("invalid otp")
	ErrOTPExpired = errors.New("otp expired")
)

const (
	otpDigits     = 6
	DefaultOTPTTL = 10 * time.Minute
)

var otpSpace = big.NewInt(1_000_000)

// OTP is a one-time password reset code.
type OTP struct {
	Code      string
	ExpiresAt time.Time
}

// GenerateOTP draws a uniformly random six digit code valid for ttl.
func GenerateOTP(now time.Time, ttl time.Duration) (OTP, error) {
	n, err := rand.Int(rand.Reader, otpSpace)
	if err != nil {
		return OTP{}, fmt.Errorf("failed to generate otp: %w", err)
	}

	return OTP{
		Code:      fmt.Sprintf("%0*d", otpDigits, n.Int64()),
		ExpiresAt: now.Add(ttl),
	}, nil
}

// ValidateOTP checks a submitted code against the stored one. A mismatch
// (or no stored code) is ErrOTPInvalid; a match at or after expiresAt is
// ErrOTPExpired.
func ValidateOTP(submitted string, stored *string, expiresAt *time.Time, now time.Time) error {
	if stored == nil || expiresAt == nil || submitted == "" {
		return ErrOTPInvalid
	}

	if subtle.ConstantTimeCompare([]byte(submitted), []byte(*stored)) != 1 {
		return ErrOTPInvalid
	}

	if !now.Before(*expiresAt) {
		return ErrOTPExpired
	}

	return nil
}

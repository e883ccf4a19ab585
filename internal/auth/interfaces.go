package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/greennest-api/internal/user"
)

// UserRepository is the part of the credential store the auth flow needs.
// Implemented by *user.Repository.
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	SetOTP(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error
	ResetPassword(ctx context.Context, id uuid.UUID, expectedCode, passwordHash string, now time.Time) error
}

// Mailer delivers one OTP message to one address.
type Mailer interface {
	SendOTPEmail(ctx context.Context, to, code string, expiresAt time.Time) error
}

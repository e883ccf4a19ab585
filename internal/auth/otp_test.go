package auth

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sixDigits = regexp.MustCompile(`^[0-9]{6}$`)

func TestGenerateOTP(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		otp, err := GenerateOTP(now, DefaultOTPTTL)
		require.NoError(t, err)

		assert.Regexp(t, sixDigits, otp.Code)
		assert.Equal(t, now.Add(10*time.Minute), otp.ExpiresAt)
		seen[otp.Code] = struct{}{}
	}

	assert.Greater(t, len(seen), 150)
}

func TestValidateOTP(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	code := "123456"
	expires := now.Add(time.Minute)
	expired := now

	tests := []struct {
		name      string
		submitted string
		stored    *string
		expiresAt *time.Time
		want      error
	}{
		{name: "valid", submitted: "123456", stored: &code, expiresAt: &expires, want: nil},
		{name: "mismatch", submitted: "654321", stored: &code, expiresAt: &expires, want: ErrOTPInvalid},
		{name: "mismatch wins over expiry", submitted: "654321", stored: &code, expiresAt: &expired, want: ErrOTPInvalid},
		{name: "expired at boundary", submitted: "123456", stored: &code, expiresAt: &expired, want: ErrOTPExpired},
		{name: "nothing stored", submitted: "123456", stored: nil, expiresAt: nil, want: ErrOTPInvalid},
		{name: "empty submission", submitted: "", stored: &code, expiresAt: &expires, want: ErrOTPInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOTP(tt.submitted, tt.stored, tt.expiresAt, now)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

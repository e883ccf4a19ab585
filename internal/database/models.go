package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the row shape of the users table.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid"`
	Name         string     `bun:"name,notnull"`
	Email        string     `bun:"email,notnull,unique"`
	PasswordHash string     `bun:"password_hash,notnull"`
	Phone        string     `bun:"phone,notnull"`
	Address      string     `bun:"address,notnull"`
	ProfilePic   string     `bun:"profile_pic,notnull"`
	OTPCode      *string    `bun:"otp_code"`
	OTPExpiresAt *time.Time `bun:"otp_expires_at"`
	Cart         []CartLine `bun:"cart,type:jsonb,notnull"`
	CreatedAt    time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// CartLine is one element of the users.cart JSONB array.
type CartLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Story is the row shape of the stories table.
type Story struct {
	bun.BaseModel `bun:"table:stories,alias:s"`

	ID          uuid.UUID  `bun:"id,pk,type:uuid"`
	UserID      *uuid.UUID `bun:"user_id,type:uuid"`
	AuthorName  string     `bun:"author_name,notnull"`
	AuthorEmail string     `bun:"author_email,notnull"`
	Body        string     `bun:"story,notnull"`
	MediaPath   *string    `bun:"media_path"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

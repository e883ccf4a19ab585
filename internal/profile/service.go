package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/greennest-api/internal/storage"
	"github.com/redmonkez12/greennest-api/internal/user"
)

// UserStore is implemented by *user.Repository.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, upd user.ProfileUpdate) (*user.User, error)
}

// Profile is the public view of a user.
type Profile struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	ProfilePic string    `json:"profilePic"`
	CreatedAt  time.Time `json:"createdAt"`
}

func fromUser(u *user.User) Profile {
	return Profile{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Address:    u.Address,
		ProfilePic: u.ProfilePic,
		CreatedAt:  u.CreatedAt,
	}
}

type Service struct {
	users UserStore
	media storage.Store
}

func NewService(users UserStore, media storage.Store) *Service {
	return &Service{users: users, media: media}
}

// Get returns the profile of userID.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return fromUser(u), nil
}

// Update stores pic (when given) and applies upd. Only non-nil fields change.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, upd user.ProfileUpdate, pic *storage.Upload) (Profile, error) {
	if pic != nil {
		key, err := s.media.Save(ctx, pic.Name, pic.ContentType, pic.Body)
		if err != nil {
			return Profile{}, fmt.Errorf("failed to store profile picture: %w", err)
		}
		path := storage.PublicPath(key)
		upd.ProfilePic = &path
	}

	u, err := s.users.UpdateProfile(ctx, userID, upd)
	if err != nil {
		return Profile{}, err
	}
	return fromUser(u), nil
}

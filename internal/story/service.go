package story

import (
	"context"
	"fmt"

	"github.com/redmonkez12/greennest-api/internal/storage"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Store is implemented by *Repository.
type Store interface {
	Create(ctx context.Context, s Story) (*Story, error)
	List(ctx context.Context, limit int) ([]Story, error)
}

type Service struct {
	stories Store
	media   storage.Store
}

func NewService(stories Store, media storage.Store) *Service {
	return &Service{stories: stories, media: media}
}

// Submit stores the optional media attachment and then the story.
func (s *Service) Submit(ctx context.Context, name, email, body string, media *storage.Upload) (*Story, error) {
	st := Story{AuthorName: name, AuthorEmail: email, Body: body}

	if media != nil {
		key, err := s.media.Save(ctx, media.Name, media.ContentType, media.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to store story media: %w", err)
		}
		st.MediaPath = storage.PublicPath(key)
	}

	return s.stories.Create(ctx, st)
}

// List returns the newest stories. limit is clamped to [1, MaxListLimit];
// zero or negative means DefaultListLimit.
func (s *Service) List(ctx context.Context, limit int) ([]Story, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	return s.stories.List(ctx, limit)
}

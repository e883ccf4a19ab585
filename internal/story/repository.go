package story

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/greennest-api/internal/database"
)

// Story is a submitted story. Stories are append-only.
type Story struct {
	ID          uuid.UUID  `json:"id"`
	UserID      *uuid.UUID `json:"userId,omitempty"`
	AuthorName  string     `json:"name"`
	AuthorEmail string     `json:"-"`
	Body        string     `json:"story"`
	MediaPath   string     `json:"media,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type Repository struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) *Repository {
	return &Repository{db: db}
}

// Create inserts a story. user_id is resolved from the author's email in the
// same statement and stays NULL when no account uses that email.
func (r *Repository) Create(ctx context.Context, s Story) (*Story, error) {
	dbStory := &database.Story{
		ID:          uuid.New(),
		AuthorName:  s.AuthorName,
		AuthorEmail: s.AuthorEmail,
		Body:        s.Body,
	}
	if s.MediaPath != "" {
		dbStory.MediaPath = &s.MediaPath
	}

	_, err := r.db.NewInsert().
		Model(dbStory).
		Value("user_id", "(SELECT id FROM users WHERE email = ?)", s.AuthorEmail).
		Returning("user_id, created_at").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}

	return mapDBStoryToModel(dbStory), nil
}

// List returns up to limit stories, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]Story, error) {
	var rows []database.Story
	err := r.db.NewSelect().
		Model(&rows).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}

	stories := make([]Story, 0, len(rows))
	for i := range rows {
		stories = append(stories, *mapDBStoryToModel(&rows[i]))
	}
	return stories, nil
}

func mapDBStoryToModel(row *database.Story) *Story {
	s := &Story{
		ID:          row.ID,
		UserID:      row.UserID,
		AuthorName:  row.AuthorName,
		AuthorEmail: row.AuthorEmail,
		Body:        row.Body,
		CreatedAt:   row.CreatedAt,
	}
	if row.MediaPath != nil {
		s.MediaPath = *row.MediaPath
	}
	return s
}

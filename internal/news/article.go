package news

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("article not found")
	ErrInvalid  = errors.New("invalid article")
	ErrConflict = errors.New("article already exists")
)

// Article is a published news item.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url,omitempty"`
	SourceURL   string    `json:"source_url,omitempty"`
	Author      string    `json:"author,omitempty"`
	Views       int       `json:"views"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate trims the editable fields and checks the required ones.
func (a *Article) Validate() error {
	a.Title = strings.TrimSpace(a.Title)
	a.Category = strings.TrimSpace(a.Category)
	if a.Title == "" {
		return errors.Join(ErrInvalid, errors.New("title is required"))
	}
	if a.Category == "" {
		return errors.Join(ErrInvalid, errors.New("category is required"))
	}
	return nil
}

package bookmark

import (
	"context"
	"time"
)

// Bookmark is a saved URL with optional notes, created by the mark command.
type Bookmark struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	Notes     *string   `json:"notes"`
	Category  *string   `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateBookmarkRequest struct {
	URL      string  `json:"url"`
	Notes    *string `json:"notes"`
	Category *string `json:"category"`
}

type UpdateBookmarkRequest struct {
	URL      *string `json:"url"`
	Notes    *string `json:"notes"`
	Category *string `json:"category"`
}

type IBookmarkRepository interface {
	Init(ctx context.Context) error
	List(ctx context.Context) ([]Bookmark, error)
	GetByID(ctx context.Context, id int64) (Bookmark, error)
	Create(ctx context.Context, bookmark *Bookmark) error
	Update(ctx context.Context, bookmark *Bookmark) error
	Delete(ctx context.Context, id int64) (Bookmark, error)
}

type IBookmarkUsecase interface {
	List(ctx context.Context) ([]Bookmark, error)
	Get(ctx context.Context, id int64) (Bookmark, error)
	Create(ctx context.Context, request CreateBookmarkRequest) (Bookmark, error)
	Update(ctx context.Context, id int64, request UpdateBookmarkRequest) (Bookmark, error)
	Delete(ctx context.Context, id int64) (Bookmark, error)
}

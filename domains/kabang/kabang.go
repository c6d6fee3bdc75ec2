package kabang

import (
	"context"
	"time"
)

// BookmarkCategory is assigned to triggers created through the add command.
const BookmarkCategory = "Bookmarks"

// Kabang maps a trigger ("bang") to a target URL template.
type Kabang struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Bang      string    `json:"bang"`
	URL       string    `json:"url"`
	Category  *string   `json:"category"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

// DisplayName falls back to the trigger when no name is stored.
func (k Kabang) DisplayName() string {
	if k.Name != "" {
		return k.Name
	}
	return k.Bang
}

// CategoryName returns the category or an empty string.
func (k Kabang) CategoryName() string {
	if k.Category == nil {
		return ""
	}
	return *k.Category
}

type CreateKabangRequest struct {
	Name      string  `json:"name"`
	Bang      string  `json:"bang"`
	URL       string  `json:"url"`
	Category  *string `json:"category"`
	IsDefault bool    `json:"isDefault"`
}

// UpdateKabangRequest only touches the fields that are set.
type UpdateKabangRequest struct {
	Name      *string `json:"name"`
	Bang      *string `json:"bang"`
	URL       *string `json:"url"`
	Category  *string `json:"category"`
	IsDefault *bool   `json:"isDefault"`
}

// ExportBang is the import/export wire format.
type ExportBang struct {
	Name      string  `json:"name"`
	Bang      string  `json:"bang"`
	URL       string  `json:"url"`
	Category  *string `json:"category"`
	IsDefault bool    `json:"isDefault"`
}

type ImportResult struct {
	Message  string   `json:"message"`
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

// IKabangRepository is the record store adapter.
type IKabangRepository interface {
	Init(ctx context.Context) error
	List(ctx context.Context) ([]Kabang, error)
	GetByID(ctx context.Context, id int64) (Kabang, error)
	GetByBang(ctx context.Context, bang string) (Kabang, error)
	GetDefault(ctx context.Context) (Kabang, error)
	Create(ctx context.Context, kabang *Kabang) error
	Update(ctx context.Context, kabang *Kabang) error
	Delete(ctx context.Context, id int64) (Kabang, error)
	UpsertByBang(ctx context.Context, kabang *Kabang) (created bool, err error)
}

// ISnapshotStore keeps the last successfully loaded record set outside the
// process so a cold start can serve from cache while the store is down.
type ISnapshotStore interface {
	Save(ctx context.Context, kabangs []Kabang) error
	Load(ctx context.Context) ([]Kabang, error)
}

type IKabangUsecase interface {
	List(ctx context.Context) ([]Kabang, error)
	Get(ctx context.Context, id int64) (Kabang, error)
	Create(ctx context.Context, request CreateKabangRequest) (Kabang, error)
	Update(ctx context.Context, id int64, request UpdateKabangRequest) (Kabang, error)
	Delete(ctx context.Context, id int64) (Kabang, error)
	Export(ctx context.Context) ([]ExportBang, error)
	Import(ctx context.Context, bangs []ExportBang) (ImportResult, error)
	WarmCache(ctx context.Context) int
}

package repository

import (
	"context"
	"errors"
	"time"

	domainBookmark "github.com/kabang/kabang/domains/bookmark"
	pkgError "github.com/kabang/kabang/pkg/error"
	"gorm.io/gorm"
)

type bookmarkModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	URL       string    `gorm:"column:url;not null"`
	Notes     *string   `gorm:"column:notes"`
	Category  *string   `gorm:"column:category"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (bookmarkModel) TableName() string {
	return "bookmarks"
}

type BookmarkGormRepository struct {
	src DBSource
}

func NewBookmarkGormRepository(src DBSource) *BookmarkGormRepository {
	return &BookmarkGormRepository{src: src}
}

func (r *BookmarkGormRepository) Init(ctx context.Context) error {
	db, err := handle(ctx, r.src)
	if err != nil {
		return err
	}
	return db.AutoMigrate(&bookmarkModel{})
}

// List returns bookmarks newest first.
func (r *BookmarkGormRepository) List(ctx context.Context) ([]domainBookmark.Bookmark, error) {
	db, err := handle(ctx, r.src)
	if err != nil {
		return nil, err
	}

	var models []bookmarkModel
	if err := db.Order("created_at DESC, id DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]domainBookmark.Bookmark, len(models))
	for i, m := range models {
		result[i] = fromBookmarkModel(m)
	}
	return result, nil
}

func (r *BookmarkGormRepository) GetByID(ctx context.Context, id int64) (domainBookmark.Bookmark, error) {
	db, err := handle(ctx, r.src)
	if err != nil {
		return domainBookmark.Bookmark{}, err
	}

	var model bookmarkModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainBookmark.Bookmark{}, pkgError.NotFoundError("bookmark not found")
		}
		return domainBookmark.Bookmark{}, err
	}
	return fromBookmarkModel(model), nil
}

func (r *BookmarkGormRepository) Create(ctx context.Context, bookmark *domainBookmark.Bookmark) error {
	db, err := handle(ctx, r.src)
	if err != nil {
		return err
	}

	model := toBookmarkModel(*bookmark)
	model.ID = 0
	if err := db.Create(&model).Error; err != nil {
		return err
	}
	*bookmark = fromBookmarkModel(model)
	return nil
}

func (r *BookmarkGormRepository) Update(ctx context.Context, bookmark *domainBookmark.Bookmark) error {
	db, err := handle(ctx, r.src)
	if err != nil {
		return err
	}

	model := toBookmarkModel(*bookmark)
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing bookmarkModel
		if err := tx.First(&existing, "id = ?", model.ID).Error; err != nil {
			return err
		}
		model.CreatedAt = existing.CreatedAt
		return tx.Model(&existing).Select("*").Omit("id", "created_at").Updates(&model).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgError.NotFoundError("bookmark not found")
		}
		return err
	}
	*bookmark = fromBookmarkModel(model)
	return nil
}

func (r *BookmarkGormRepository) Delete(ctx context.Context, id int64) (domainBookmark.Bookmark, error) {
	db, err := handle(ctx, r.src)
	if err != nil {
		return domainBookmark.Bookmark{}, err
	}

	var deleted bookmarkModel
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&bookmarkModel{}, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainBookmark.Bookmark{}, pkgError.NotFoundError("bookmark not found")
		}
		return domainBookmark.Bookmark{}, err
	}
	return fromBookmarkModel(deleted), nil
}

func toBookmarkModel(b domainBookmark.Bookmark) bookmarkModel {
	return bookmarkModel{
		ID:        b.ID,
		URL:       b.URL,
		Notes:     b.Notes,
		Category:  b.Category,
		CreatedAt: b.CreatedAt,
	}
}

func fromBookmarkModel(m bookmarkModel) domainBookmark.Bookmark {
	return domainBookmark.Bookmark{
		ID:        m.ID,
		URL:       m.URL,
		Notes:     m.Notes,
		Category:  m.Category,
		CreatedAt: m.CreatedAt,
	}
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kabang/kabang/core/database"
	domainKabang "github.com/kabang/kabang/domains/kabang"
	pkgError "github.com/kabang/kabang/pkg/error"
	"gorm.io/gorm"
)

// DBSource hands out the current store handle. The failover controller swaps
// it on reconnect, so repositories must not hold on to a *gorm.DB.
type DBSource interface {
	DB() *gorm.DB
}

// errNoHandle reads as a connectivity failure to the failover layer.
var errNoHandle = errors.New("sql: database is closed")

func handle(ctx context.Context, src DBSource) (*gorm.DB, error) {
	db := src.DB()
	if db == nil {
		return nil, errNoHandle
	}
	return db.WithContext(ctx), nil
}

type kabangModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"not null"`
	Bang      string    `gorm:"not null;uniqueIndex"`
	URL       string    `gorm:"column:url;not null;uniqueIndex"`
	Category  *string   `gorm:"column:category"`
	IsDefault bool      `gorm:"column:is_default;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (kabangModel) TableName() string {
	return "kabangs"
}

type KabangGormRepository struct {
	src DBSource
}

func NewKabangGormRepository(src DBSource) *KabangGormRepository {
	return &KabangGormRepository{src: src}
}

func (r *KabangGormRepository) Init(ctx context.Context) error {
	db, err := handle(ctx, r.src)
	if err != nil {
		return err
	}
	return db.AutoMigrate(&kabangModel{})
}

// List returns every record, oldest first.
func (r *KabangGormRepository) List(ctx context.Context) ([]domainKabang.Kabang, error) {
	db, err := handle(ctx, r.src)
	if err != nil {
		return nil, err
	}

	var models []kabangModel
	if err := db.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]domainKabang.Kabang, len(models))
	for i, m := range models {
		result[i] = fromKabangModel(m)
	}
	return result, nil
}

func (r *KabangGormRepository) GetByID(ctx context.Context, id int64) (domainKabang.Kabang, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *KabangGormRepository) GetByBang(ctx context.Context, bang string) (domainKabang.Kabang, error) {
	return r.first(ctx, "bang = ?", bang)
}

func (r *KabangGormRepository) GetDefault(ctx context.Context) (domainKabang.Kabang, error) {
	return r.first(ctx, "is_default = ?", true)
}

func (r *KabangGormRepository) first(ctx context.Context, query string, args ...any) (domainKabang.Kabang, error) {
	db, err := handle(ctx, r.src)
	if err != nil {
		return domainKabang.Kabang{}, err
	}

	var model kabangModel
	if err := db.Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainKabang.Kabang{}, pkgError.NotFoundError("kabang not found")
		}
		return domainKabang.Kabang{}, err
	}
	return fromKabangModel(model), nil
}

// Create inserts the record. When it is the new default the previous default
// is cleared in the same transaction.
func (r *KabangGormRepository) Create(ctx context.Context, kabang *domainKabang.Kabang) error {
	db, err := handle(ctx, r.src)
	if err != nil {
		return err
	}

	model := toKabangModel(*kabang)
	model.ID = 0
	err = db.Transaction(func(tx *gorm.DB) error {
		if model.IsDefault {
			if err := clearDefault(tx, 0); err != nil {
				return err
			}
		}
		return tx.Create(&model).Error
	})
	if err != nil {
		return mapWriteError(err)
	}

	*kabang = fromKabangModel(model)
	return nil
}

// Update saves every field of kabang. The record must exist.
func (r *KabangGormRepository) Update(ctx context.Context, kabang *domainKabang.Kabang) error {
	db, err := handle(ctx, r.src)
	if err != nil {
		return err
	}

	model := toKabangModel(*kabang)
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing kabangModel
		if err := tx.First(&existing, "id = ?", model.ID).Error; err != nil {
			return err
		}
		if model.IsDefault {
			if err := clearDefault(tx, model.ID); err != nil {
				return err
			}
		}
		model.CreatedAt = existing.CreatedAt
		return tx.Model(&existing).Select("*").Omit("id", "created_at").Updates(&model).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgError.NotFoundError("kabang not found")
		}
		return mapWriteError(err)
	}

	*kabang = fromKabangModel(model)
	return nil
}

// Delete removes the record and returns what was deleted.
func (r *KabangGormRepository) Delete(ctx context.Context, id int64) (domainKabang.Kabang, error) {
	db, err := handle(ctx, r.src)
	if err != nil {
		return domainKabang.Kabang{}, err
	}

	var deleted kabangModel
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&kabangModel{}, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainKabang.Kabang{}, pkgError.NotFoundError("kabang not found")
		}
		return domainKabang.Kabang{}, err
	}
	return fromKabangModel(deleted), nil
}

// UpsertByBang inserts kabang or overwrites the record holding the same bang.
func (r *KabangGormRepository) UpsertByBang(ctx context.Context, kabang *domainKabang.Kabang) (bool, error) {
	db, err := handle(ctx, r.src)
	if err != nil {
		return false, err
	}

	model := toKabangModel(*kabang)
	model.ID = 0
	created := false
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing kabangModel
		err := tx.First(&existing, "bang = ?", model.Bang).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
		case err != nil:
			return err
		default:
			model.ID = existing.ID
			model.CreatedAt = existing.CreatedAt
		}

		if model.IsDefault {
			if err := clearDefault(tx, model.ID); err != nil {
				return err
			}
		}
		if created {
			return tx.Create(&model).Error
		}
		return tx.Model(&existing).Select("*").Omit("id", "created_at").Updates(&model).Error
	})
	if err != nil {
		return false, mapWriteError(err)
	}

	*kabang = fromKabangModel(model)
	return created, nil
}

func clearDefault(tx *gorm.DB, keepID int64) error {
	return tx.Model(&kabangModel{}).
		Where("is_default = ? AND id <> ?", true, keepID).
		Update("is_default", false).Error
}

func mapWriteError(err error) error {
	if database.IsUniqueViolation(err) {
		return pkgError.ConflictError("bang or url already exists")
	}
	return err
}

func toKabangModel(k domainKabang.Kabang) kabangModel {
	name := k.Name
	if name == "" {
		name = k.Bang
	}
	return kabangModel{
		ID:        k.ID,
		Name:      name,
		Bang:      k.Bang,
		URL:       k.URL,
		Category:  k.Category,
		IsDefault: k.IsDefault,
		CreatedAt: k.CreatedAt,
	}
}

func fromKabangModel(m kabangModel) domainKabang.Kabang {
	return domainKabang.Kabang{
		ID:        m.ID,
		Name:      m.Name,
		Bang:      m.Bang,
		URL:       m.URL,
		Category:  m.Category,
		IsDefault: m.IsDefault,
		CreatedAt: m.CreatedAt,
	}
}

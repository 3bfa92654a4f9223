package whitelist

import (
	"context"

	"github.com/angelmondragon/rentledger-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository manages persistence for the booking whitelist.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Add(ctx context.Context, identity string) error
	Contains(ctx context.Context, identity string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a whitelist repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Add inserts the identity. Re-adding an existing member is a no-op: the set
// is additive only.
func (r *repository) Add(ctx context.Context, identity string) error {
	entry := models.WhitelistEntry{Identity: identity}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entry).Error
}

func (r *repository) Contains(ctx context.Context, identity string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.WhitelistEntry{}).
		Where("identity = ?", identity).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

package rent

import (
	"context"
	"errors"

	"github.com/angelmondragon/rentledger-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/rentledger-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository manages persistence for property records and the id counter.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	NextID(ctx context.Context) (int64, error)
	Counter(ctx context.Context) (int64, error)
	Create(ctx context.Context, property *models.Property) error
	Get(ctx context.Context, id int64) (models.Property, error)
	GetForUpdate(ctx context.Context, id int64) (models.Property, error)
	Deactivate(ctx context.Context, id int64) error
	SetBooking(ctx context.Context, id int64, guest string, startsAtMs, endsAtMs, paidCents int64) error
	ClearBooking(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a property repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Row locks guard concurrent mutation on postgres. sqlite has no FOR UPDATE
// and serializes writers through its single pooled connection instead.
func (r *repository) rowLocking() bool {
	return r.db.Dialector.Name() != "sqlite"
}

// NextID hands out the next property id and advances the counter by one.
// Runs against the locked counter row so concurrent listings never collide.
func (r *repository) NextID(ctx context.Context) (int64, error) {
	query := r.db.WithContext(ctx)
	if r.rowLocking() {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var counter models.LedgerCounter
	err := query.
		Where("name = ?", models.CounterPropertyIDs).
		First(&counter).Error
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load id counter")
	}

	next := counter.Value
	err = r.db.WithContext(ctx).
		Model(&models.LedgerCounter{}).
		Where("name = ?", models.CounterPropertyIDs).
		Update("value", next+1).Error
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "advance id counter")
	}
	return next, nil
}

// Counter reads the counter without advancing it: the number of properties
// ever listed.
func (r *repository) Counter(ctx context.Context) (int64, error) {
	var counter models.LedgerCounter
	err := r.db.WithContext(ctx).
		Where("name = ?", models.CounterPropertyIDs).
		First(&counter).Error
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load id counter")
	}
	return counter.Value, nil
}

func (r *repository) Create(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

func (r *repository) Get(ctx context.Context, id int64) (models.Property, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate loads the record under a row lock; every mutating operation
// reads through it so its validations hold until commit.
func (r *repository) GetForUpdate(ctx context.Context, id int64) (models.Property, error) {
	return r.get(ctx, id, true)
}

func (r *repository) get(ctx context.Context, id int64, forUpdate bool) (models.Property, error) {
	query := r.db.WithContext(ctx)
	if forUpdate && r.rowLocking() {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var property models.Property
	if err := query.Where("id = ?", id).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Property{}, pkgerrors.New(pkgerrors.CodeUnknownProperty, "no property with this id")
		}
		return models.Property{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load property")
	}
	return property, nil
}

// Deactivate retires the listing permanently.
func (r *repository) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *repository) SetBooking(ctx context.Context, id int64, guest string, startsAtMs, endsAtMs, paidCents int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"guest_identity":       guest,
			"booking_starts_at_ms": startsAtMs,
			"booking_ends_at_ms":   endsAtMs,
			"paid_amount_cents":    paidCents,
		}).Error
}

func (r *repository) ClearBooking(ctx context.Context, id int64) error {
	return r.SetBooking(ctx, id, models.IdentityNone, 0, 0, 0)
}

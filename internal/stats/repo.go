package stats

import (
	"context"
	"errors"

	"github.com/angelmondragon/rentledger-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/rentledger-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository maintains the per-identity lifetime statistics. Counters only
// ever increase; there is no decrement path, not even on unbooking.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	RecordBooking(ctx context.Context, owner, guest string, days, amountCents int64) error
	Get(ctx context.Context, identity string) (models.StatisticRecord, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a statistics repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// RecordBooking applies both sides of a successful booking: earnings and
// owner-side day/booking counters for the owner, spend and guest-side
// counters for the guest. Called exactly once per booking, inside the booking
// transaction.
func (r *repository) RecordBooking(ctx context.Context, owner, guest string, days, amountCents int64) error {
	if err := r.increment(ctx, owner, map[string]any{
		"total_earned_cents":    gorm.Expr("statistic_records.total_earned_cents + ?", amountCents),
		"days_booked_as_owner":  gorm.Expr("statistic_records.days_booked_as_owner + ?", days),
		"times_booked_as_owner": gorm.Expr("statistic_records.times_booked_as_owner + 1"),
	}, models.StatisticRecord{
		Identity:           owner,
		TotalEarnedCents:   amountCents,
		DaysBookedAsOwner:  days,
		TimesBookedAsOwner: 1,
	}); err != nil {
		return err
	}

	return r.increment(ctx, guest, map[string]any{
		"total_spent_cents":     gorm.Expr("statistic_records.total_spent_cents + ?", amountCents),
		"days_booked_as_guest":  gorm.Expr("statistic_records.days_booked_as_guest + ?", days),
		"times_booked_as_guest": gorm.Expr("statistic_records.times_booked_as_guest + 1"),
	}, models.StatisticRecord{
		Identity:           guest,
		TotalSpentCents:    amountCents,
		DaysBookedAsGuest:  days,
		TimesBookedAsGuest: 1,
	})
}

func (r *repository) increment(ctx context.Context, identity string, assignments map[string]any, insert models.StatisticRecord) error {
	if identity == "" {
		return pkgerrors.New(pkgerrors.CodeInternal, "statistics identity required")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identity"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(&insert).Error
}

// Get returns the statistics for an identity; identities that never
// participated in a booking read as the all-zero record.
func (r *repository) Get(ctx context.Context, identity string) (models.StatisticRecord, error) {
	var record models.StatisticRecord
	err := r.db.WithContext(ctx).
		Where("identity = ?", identity).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.StatisticRecord{Identity: identity}, nil
		}
		return models.StatisticRecord{}, err
	}
	return record, nil
}

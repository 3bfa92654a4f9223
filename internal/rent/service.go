package rent

import (
	"context"

	"github.com/angelmondragon/rentledger-backend/internal/pricing"
	"github.com/angelmondragon/rentledger-backend/internal/settlement"
	"github.com/angelmondragon/rentledger-backend/internal/whitelist"
	"github.com/angelmondragon/rentledger-backend/pkg/db"
	"github.com/angelmondragon/rentledger-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/rentledger-backend/pkg/errors"
	"github.com/angelmondragon/rentledger-backend/pkg/logger"
	"github.com/angelmondragon/rentledger-backend/pkg/metrics"

	"github.com/angelmondragon/rentledger-backend/internal/stats"
	"gorm.io/gorm"
)

// Service is the property ledger: every state transition of a listing passes
// through here. Mutating operations are one transaction each; when any effect
// fails (including the settlement transfer) the whole call rolls back.
type Service interface {
	ListProperty(ctx context.Context, caller string, input ListPropertyInput) (int64, error)
	UnlistProperty(ctx context.Context, caller string, id int64) error
	BookProperty(ctx context.Context, caller string, id int64, input BookPropertyInput) error
	UnbookByGuest(ctx context.Context, caller string, id int64) error
	UnbookByOwner(ctx context.Context, caller string, id int64, refundCents int64) error

	Property(ctx context.Context, id int64) (models.Property, error)
	Counter(ctx context.Context) (int64, error)
	RentPrice(ctx context.Context, id int64) (int64, error)
}

// ServiceParams groups dependencies for the ledger service.
type ServiceParams struct {
	DB        *db.Client
	Repo      Repository
	Whitelist whitelist.Repository
	Stats     stats.Repository
	Bridge    settlement.Bridge
	Metrics   *metrics.LedgerMetrics
	Logger    *logger.Logger
	Policy    Policy
}

type service struct {
	db        *db.Client
	repo      Repository
	whitelist whitelist.Repository
	stats     stats.Repository
	bridge    settlement.Bridge
	metrics   *metrics.LedgerMetrics
	logg      *logger.Logger
	policy    Policy
	locks     *propertyLocks
}

// NewService wires the ledger service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "db client required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "property repository required")
	}
	if params.Whitelist == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "whitelist repository required")
	}
	if params.Stats == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "statistics repository required")
	}
	if params.Bridge == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "settlement bridge required")
	}
	return &service{
		db:        params.DB,
		repo:      params.Repo,
		whitelist: params.Whitelist,
		stats:     params.Stats,
		bridge:    params.Bridge,
		metrics:   params.Metrics,
		logg:      params.Logger,
		policy:    params.Policy,
		locks:     newPropertyLocks(),
	}, nil
}

// ListProperty stores a new listing owned by the caller and returns its id,
// which is the counter value before the call.
func (s *service) ListProperty(ctx context.Context, caller string, input ListPropertyInput) (int64, error) {
	if caller == models.IdentityNone {
		return 0, pkgerrors.New(pkgerrors.CodeUnauthorized, "caller identity required")
	}
	if input.PricePerDayCents < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "price per day must not be negative")
	}
	if input.NumberOfRooms < 0 || input.AreaSqm < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "rooms and area must not be negative")
	}

	var id int64
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		next, err := repo.NextID(ctx)
		if err != nil {
			return err
		}
		property := models.Property{
			ID:               next,
			Name:             input.Name,
			Address:          input.Address,
			Description:      input.Description,
			ImageURL:         input.ImageURL,
			PricePerDayCents: input.PricePerDayCents,
			NumberOfRooms:    input.NumberOfRooms,
			AreaSqm:          input.AreaSqm,
			OwnerIdentity:    caller,
			IsActive:         true,
			GuestIdentity:    models.IdentityNone,
		}
		if err := repo.Create(ctx, &property); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store property")
		}
		id = next
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.metrics.IncListed()
	if s.logg != nil {
		s.logg.Info(s.logg.WithPropertyID(ctx, id), "property listed")
	}
	return id, nil
}

// UnlistProperty retires an unbooked listing permanently. Only the owner may
// call it and there is no way back to active.
func (s *service) UnlistProperty(ctx context.Context, caller string, id int64) error {
	defer s.locks.acquire(id)()

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		property, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := RequireOwner(property, caller); err != nil {
			return err
		}
		if !property.IsActive {
			return pkgerrors.New(pkgerrors.CodeAlreadyUnlisted, "property was already unlisted")
		}
		if property.Booked() {
			return pkgerrors.New(pkgerrors.CodePropertyBooked, "cannot unlist while a booking is active")
		}
		if err := repo.Deactivate(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate property")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.IncUnlisted()
	return nil
}

// BookProperty assigns the caller as guest for the given range. The payment
// must equal the quoted rent exactly; it is forwarded to the owner and both
// parties' statistics are updated in the same transaction.
func (s *service) BookProperty(ctx context.Context, caller string, id int64, input BookPropertyInput) error {
	defer s.locks.acquire(id)()

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		property, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if s.policy.RequireWhitelist {
			allowed, err := s.whitelist.WithTx(tx).Contains(ctx, caller)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check whitelist")
			}
			if !allowed {
				return pkgerrors.New(pkgerrors.CodeNotWhitelisted, "caller may not book properties")
			}
		}

		days, err := pricing.Days(input.StartsAtMs, input.EndsAtMs)
		if err != nil {
			return err
		}
		if !property.IsActive {
			return pkgerrors.New(pkgerrors.CodePropertyInactive, "property is unlisted")
		}
		if property.Booked() {
			return pkgerrors.New(pkgerrors.CodeAlreadyBooked, "property already has a guest")
		}

		expected := days * property.PricePerDayCents
		if input.PaidAmountCents != expected {
			return pkgerrors.New(pkgerrors.CodeWrongPayment, "payment must equal the quoted rent").
				WithDetails(map[string]any{"expected_cents": expected, "paid_cents": input.PaidAmountCents})
		}

		if err := repo.SetBooking(ctx, id, caller, input.StartsAtMs, input.EndsAtMs, input.PaidAmountCents); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store booking")
		}

		if err := s.bridge.WithTx(tx).Transfer(ctx, id, caller, property.OwnerIdentity, input.PaidAmountCents, models.TransferKindBookingPayment); err != nil {
			s.metrics.IncSettlementFailure()
			return err
		}

		if err := s.stats.WithTx(tx).RecordBooking(ctx, property.OwnerIdentity, caller, days, input.PaidAmountCents); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record statistics")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.IncBooked()
	s.metrics.AddSettledCents(string(models.TransferKindBookingPayment), input.PaidAmountCents)
	if s.logg != nil {
		s.logg.Info(s.logg.WithPropertyID(ctx, id), "property booked")
	}
	return nil
}

// UnbookByGuest is the guest's forfeiting cancellation: the booking is
// cleared, no refund moves, statistics stay untouched.
func (s *service) UnbookByGuest(ctx context.Context, caller string, id int64) error {
	defer s.locks.acquire(id)()

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		property, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := RequireGuest(property, caller); err != nil {
			return err
		}
		if err := repo.ClearBooking(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear booking")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.IncUnbooked("guest")
	return nil
}

// UnbookByOwner cancels the current booking and refunds the guest. Under the
// strict policy the refund must equal what the guest paid; otherwise the
// owner-supplied amount is forwarded unverified.
func (s *service) UnbookByOwner(ctx context.Context, caller string, id int64, refundCents int64) error {
	defer s.locks.acquire(id)()

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		property, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := RequireOwner(property, caller); err != nil {
			return err
		}
		if s.policy.StrictRefunds && refundCents != property.PaidAmountCents {
			return pkgerrors.New(pkgerrors.CodeWrongPayment, "refund must equal the amount collected").
				WithDetails(map[string]any{"collected_cents": property.PaidAmountCents, "refund_cents": refundCents})
		}

		// Transfer before clearing: an unbooked record has no guest to pay,
		// so a missing counterparty aborts the call as a settlement failure.
		if err := s.bridge.WithTx(tx).Transfer(ctx, id, property.OwnerIdentity, property.GuestIdentity, refundCents, models.TransferKindOwnerRefund); err != nil {
			s.metrics.IncSettlementFailure()
			return err
		}

		if err := repo.ClearBooking(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear booking")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.IncUnbooked("owner")
	s.metrics.AddSettledCents(string(models.TransferKindOwnerRefund), refundCents)
	return nil
}

// Property returns the current record for an id.
func (s *service) Property(ctx context.Context, id int64) (models.Property, error) {
	return s.repo.Get(ctx, id)
}

// Counter returns the number of properties ever listed; it is also the next
// id to be assigned.
func (s *service) Counter(ctx context.Context) (int64, error) {
	return s.repo.Counter(ctx)
}

// RentPrice quotes the rent of the property's current booking range, zero
// when unbooked.
func (s *service) RentPrice(ctx context.Context, id int64) (int64, error) {
	property, err := s.repo.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	if !property.Booked() {
		return 0, nil
	}
	return pricing.Quote(property.PricePerDayCents, property.BookingStartsAtMs, property.BookingEndsAtMs)
}

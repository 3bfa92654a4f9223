package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/rentledger-backend/api/middleware"
	"github.com/angelmondragon/rentledger-backend/api/responses"
	"github.com/angelmondragon/rentledger-backend/api/validators"
	"github.com/angelmondragon/rentledger-backend/internal/rent"
	pkgerrors "github.com/angelmondragon/rentledger-backend/pkg/errors"
	"github.com/angelmondragon/rentledger-backend/pkg/logger"
)

type createPropertyPayload struct {
	Name             string `json:"name" validate:"required"`
	Address          string `json:"address" validate:"required"`
	Description      string `json:"description"`
	ImageURL         string `json:"image_url"`
	PricePerDayCents int64  `json:"price_per_day_cents" validate:"min=0"`
	NumberOfRooms    int    `json:"number_of_rooms" validate:"min=0"`
	AreaSqm          int    `json:"area_sqm" validate:"min=0"`
}

// Booking instants are plain unix-ms values; zero is a valid start, so range
// checking is left entirely to the pricing engine.
type bookPropertyPayload struct {
	StartsAtMs      int64 `json:"starts_at_ms"`
	EndsAtMs        int64 `json:"ends_at_ms"`
	PaidAmountCents int64 `json:"paid_amount_cents" validate:"min=0"`
}

type ownerUnbookPayload struct {
	RefundAmountCents int64 `json:"refund_amount_cents" validate:"min=0"`
}

// PropertyCreate lists a new property owned by the caller.
func PropertyCreate(svc rent.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		var payload createPropertyPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		id, err := svc.ListProperty(ctx, middleware.IdentityFromContext(ctx), rent.ListPropertyInput{
			Name:             strings.TrimSpace(payload.Name),
			Address:          strings.TrimSpace(payload.Address),
			Description:      payload.Description,
			ImageURL:         payload.ImageURL,
			PricePerDayCents: payload.PricePerDayCents,
			NumberOfRooms:    payload.NumberOfRooms,
			AreaSqm:          payload.AreaSqm,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]int64{"property_id": id})
	}
}

// PropertyDetail returns the full current record for a property.
func PropertyDetail(svc rent.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := propertyID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		property, err := svc.Property(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, property)
	}
}

// PropertyUnlist retires an unbooked listing.
func PropertyUnlist(svc rent.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := propertyID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.UnlistProperty(ctx, middleware.IdentityFromContext(ctx), id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"unlisted": true})
	}
}

// PropertyBook books a property for the caller.
func PropertyBook(svc rent.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := propertyID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload bookPropertyPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		err = svc.BookProperty(ctx, middleware.IdentityFromContext(ctx), id, rent.BookPropertyInput{
			StartsAtMs:      payload.StartsAtMs,
			EndsAtMs:        payload.EndsAtMs,
			PaidAmountCents: payload.PaidAmountCents,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"booked": true})
	}
}

// PropertyUnbook is the guest's forfeiting cancellation.
func PropertyUnbook(svc rent.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := propertyID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.UnbookByGuest(ctx, middleware.IdentityFromContext(ctx), id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"unbooked": true})
	}
}

// PropertyUnbookByOwner cancels the booking and refunds the guest.
func PropertyUnbookByOwner(svc rent.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := propertyID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload ownerUnbookPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.UnbookByOwner(ctx, middleware.IdentityFromContext(ctx), id, payload.RefundAmountCents); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"unbooked": true})
	}
}

// PropertyRentPrice quotes the rent of the current booking, zero when unbooked.
func PropertyRentPrice(svc rent.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := propertyID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		price, err := svc.RentPrice(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"rent_price_cents": price})
	}
}

// LedgerCounter returns the number of properties ever listed.
func LedgerCounter(svc rent.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		count, err := svc.Counter(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"counter": count})
	}
}

func propertyID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "propertyId"))
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "property id is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "property id must be a non-negative integer")
	}
	return id, nil
}

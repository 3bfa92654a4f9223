package pricing

import (
	pkgerrors "github.com/angelmondragon/rentledger-backend/pkg/errors"
)

// DayMillis is one calendar day in the unit booking instants are expressed in
// (unix milliseconds).
const DayMillis int64 = 86_400_000

// Days converts a booking range into whole days. The range must be strictly
// positive and land on exact day boundaries; anything else is rejected rather
// than silently truncated.
func Days(startMs, endMs int64) (int64, error) {
	if endMs <= startMs {
		return 0, pkgerrors.New(pkgerrors.CodeInvalidRange, "booking must end after it starts")
	}
	span := endMs - startMs
	if span%DayMillis != 0 {
		return 0, pkgerrors.New(pkgerrors.CodeInvalidRange, "booking range must cover whole days").
			WithDetails(map[string]any{"span_ms": span, "day_ms": DayMillis})
	}
	return span / DayMillis, nil
}

// Quote computes the rent owed for a booking range at the given daily rate.
// Pure; the ledger calls it to validate payments and any reader may call it to
// price the current booking.
func Quote(pricePerDayCents, startMs, endMs int64) (int64, error) {
	days, err := Days(startMs, endMs)
	if err != nil {
		return 0, err
	}
	return days * pricePerDayCents, nil
}

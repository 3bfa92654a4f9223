package rent

// ListPropertyInput carries the immutable descriptive fields of a new
// listing. Beyond non-negative numbers there are no constraints on values.
type ListPropertyInput struct {
	Name             string `json:"name"`
	Address          string `json:"address"`
	Description      string `json:"description"`
	ImageURL         string `json:"image_url"`
	PricePerDayCents int64  `json:"price_per_day_cents"`
	NumberOfRooms    int    `json:"number_of_rooms"`
	AreaSqm          int    `json:"area_sqm"`
}

// BookPropertyInput carries a booking request: the desired range and the
// payment tendered with it.
type BookPropertyInput struct {
	StartsAtMs      int64 `json:"starts_at_ms"`
	EndsAtMs        int64 `json:"ends_at_ms"`
	PaidAmountCents int64 `json:"paid_amount_cents"`
}

// Policy captures the ledger's configurable access rules.
type Policy struct {
	// RequireWhitelist gates booking on whitelist membership. The ungated
	// variant exists only for legacy deployments and must be opted into.
	RequireWhitelist bool
	// StrictRefunds requires owner-initiated unbooking to refund exactly what
	// the guest paid. When false the owner-supplied amount is trusted as-is.
	StrictRefunds bool
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// LedgerMetrics counts the ledger state transitions and the value they move.
type LedgerMetrics struct {
	listings           *prometheus.CounterVec
	bookings           prometheus.Counter
	unbookings         *prometheus.CounterVec
	settlementFailures prometheus.Counter
	settledCents       *prometheus.CounterVec
}

// NewLedgerMetrics registers the ledger metrics on the provided registerer.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	listings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_listings_total",
		Help: "Property listing transitions.",
	}, []string{"action"})
	bookings := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_bookings_total",
		Help: "Successful property bookings.",
	})
	unbookings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_unbookings_total",
		Help: "Successful unbookings by initiator.",
	}, []string{"by"})
	settlementFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_settlement_failures_total",
		Help: "Settlement transfers that aborted an operation.",
	})
	settledCents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_settled_cents_total",
		Help: "Value moved through the settlement bridge, by transfer kind.",
	}, []string{"kind"})
	reg.MustRegister(listings, bookings, unbookings, settlementFailures, settledCents)
	return &LedgerMetrics{
		listings:           listings,
		bookings:           bookings,
		unbookings:         unbookings,
		settlementFailures: settlementFailures,
		settledCents:       settledCents,
	}
}

// IncListed counts a new listing.
func (m *LedgerMetrics) IncListed() {
	m.incListing("listed")
}

// IncUnlisted counts a listing retirement.
func (m *LedgerMetrics) IncUnlisted() {
	m.incListing("unlisted")
}

func (m *LedgerMetrics) incListing(action string) {
	if m == nil || m.listings == nil {
		return
	}
	m.listings.WithLabelValues(action).Inc()
}

// IncBooked counts a successful booking.
func (m *LedgerMetrics) IncBooked() {
	if m == nil || m.bookings == nil {
		return
	}
	m.bookings.Inc()
}

// IncUnbooked counts an unbooking by "guest" or "owner".
func (m *LedgerMetrics) IncUnbooked(by string) {
	if m == nil || m.unbookings == nil {
		return
	}
	if by == "" {
		by = "unknown"
	}
	m.unbookings.WithLabelValues(by).Inc()
}

// IncSettlementFailure counts a settlement transfer that rolled an operation back.
func (m *LedgerMetrics) IncSettlementFailure() {
	if m == nil || m.settlementFailures == nil {
		return
	}
	m.settlementFailures.Inc()
}

// AddSettledCents accumulates moved value for the given transfer kind.
func (m *LedgerMetrics) AddSettledCents(kind string, amountCents int64) {
	if m == nil || m.settledCents == nil || amountCents < 0 {
		return
	}
	m.settledCents.WithLabelValues(kind).Add(float64(amountCents))
}

package models

// CounterPropertyIDs is the counter row that feeds property ids.
const CounterPropertyIDs = "property_ids"

// LedgerCounter is a named monotonic counter. The value is the next id to
// hand out; it starts at zero and advances exactly once per successful
// listing.
type LedgerCounter struct {
	Name  string `gorm:"column:name;primaryKey" json:"name"`
	Value int64  `gorm:"column:value;not null;default:0" json:"value"`
}

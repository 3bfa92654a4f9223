package models

import "time"

// IdentityNone is the zero value of an identity column: no guest assigned.
const IdentityNone = ""

// Property is a rental listing. The id is assigned from the ledger counter at
// listing time, so ids are dense and start at zero. The descriptive fields are
// immutable after creation; only the booking fields and is_active ever change.
type Property struct {
	ID                int64  `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Name              string `gorm:"column:name;not null" json:"name"`
	Address           string `gorm:"column:address;not null" json:"address"`
	Description       string `gorm:"column:description;not null" json:"description"`
	ImageURL          string `gorm:"column:image_url;not null" json:"image_url"`
	PricePerDayCents  int64  `gorm:"column:price_per_day_cents;not null" json:"price_per_day_cents"`
	NumberOfRooms     int    `gorm:"column:number_of_rooms;not null" json:"number_of_rooms"`
	AreaSqm           int    `gorm:"column:area_sqm;not null" json:"area_sqm"`
	OwnerIdentity     string `gorm:"column:owner_identity;not null;index:properties_owner_idx" json:"owner_identity"`
	IsActive          bool   `gorm:"column:is_active;not null;default:true" json:"is_active"`
	GuestIdentity     string `gorm:"column:guest_identity;not null;default:''" json:"guest_identity"`
	BookingStartsAtMs int64  `gorm:"column:booking_starts_at_ms;not null;default:0" json:"booking_starts_at_ms"`
	BookingEndsAtMs   int64  `gorm:"column:booking_ends_at_ms;not null;default:0" json:"booking_ends_at_ms"`
	// PaidAmountCents is what the current guest actually paid; it backs
	// strict-refund enforcement and is reset to zero on unbooking.
	PaidAmountCents int64     `gorm:"column:paid_amount_cents;not null;default:0" json:"paid_amount_cents"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// Booked reports whether a guest currently holds the property.
func (p Property) Booked() bool {
	return p.GuestIdentity != IdentityNone
}

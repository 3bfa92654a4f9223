package models

import (
	"time"

	"github.com/google/uuid"
)

// TransferKind labels why value moved between two identities.
type TransferKind string

const (
	TransferKindBookingPayment TransferKind = "booking_payment"
	TransferKindOwnerRefund    TransferKind = "owner_refund"
)

// Transfer is one immutable settlement journal row.
type Transfer struct {
	ID           uuid.UUID    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	PropertyID   int64        `gorm:"column:property_id;not null;index:transfers_property_idx" json:"property_id"`
	FromIdentity string       `gorm:"column:from_identity;not null" json:"from_identity"`
	ToIdentity   string       `gorm:"column:to_identity;not null" json:"to_identity"`
	AmountCents  int64        `gorm:"column:amount_cents;not null" json:"amount_cents"`
	Kind         TransferKind `gorm:"column:kind;not null" json:"kind"`
	CreatedAt    time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// Account tracks the running settlement balance for one identity. Balances may
// go negative: the bridge journals value movement, it does not custody funds.
type Account struct {
	Identity     string    `gorm:"column:identity;primaryKey" json:"identity"`
	BalanceCents int64     `gorm:"column:balance_cents;not null;default:0" json:"balance_cents"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

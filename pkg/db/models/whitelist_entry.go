package models

import "time"

// WhitelistEntry marks an identity as permitted to book. Membership is
// additive only; there is no removal path.
type WhitelistEntry struct {
	Identity  string    `gorm:"column:identity;primaryKey" json:"identity"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

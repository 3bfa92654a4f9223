package models

import "time"

// StatisticRecord accumulates lifetime booking counters for one identity.
// Every field is monotonic: bookings increment them and nothing ever
// decrements, not even unbooking.
type StatisticRecord struct {
	Identity           string    `gorm:"column:identity;primaryKey" json:"identity"`
	TotalEarnedCents   int64     `gorm:"column:total_earned_cents;not null;default:0" json:"total_earned_cents"`
	TotalSpentCents    int64     `gorm:"column:total_spent_cents;not null;default:0" json:"total_spent_cents"`
	DaysBookedAsOwner  int64     `gorm:"column:days_booked_as_owner;not null;default:0" json:"days_booked_as_owner"`
	DaysBookedAsGuest  int64     `gorm:"column:days_booked_as_guest;not null;default:0" json:"days_booked_as_guest"`
	TimesBookedAsOwner int64     `gorm:"column:times_booked_as_owner;not null;default:0" json:"times_booked_as_owner"`
	TimesBookedAsGuest int64     `gorm:"column:times_booked_as_guest;not null;default:0" json:"times_booked_as_guest"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

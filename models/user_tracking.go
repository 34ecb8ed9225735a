package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserTracking is one body-metric entry; a user logs at most one per day.
type UserTracking struct {
	ID        uint           `gorm:"primaryKey"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_user_trackings_user_date"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;"`
	Date      datatypes.Date `gorm:"not null;uniqueIndex:idx_user_trackings_user_date"`
	WeightKg  *float64       `gorm:"type:decimal(5,2)"`
	Notes     string         `gorm:"type:text"`
	PhotoURL  string         `gorm:"size:512"`
	CreatedAt time.Time
}

func (t *UserTracking) SetOwnerID(id uint) { t.UserID = id }

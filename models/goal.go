package models

import (
	"time"

	"gorm.io/datatypes"
)

type GoalType string

const (
	GoalTypeWeight   GoalType = "WEIGHT"   // weight loss/gain
	GoalTypeExercise GoalType = "EXERCISE" // exercise performance
	GoalTypeOther    GoalType = "OTHER"
)

// Valid reports whether t is one of the known goal types.
func (t GoalType) Valid() bool {
	switch t {
	case GoalTypeWeight, GoalTypeExercise, GoalTypeOther:
		return true
	}
	return false
}

type Goal struct {
	ID          uint     `gorm:"primaryKey"`
	UserID      uint     `gorm:"not null;index"`
	User        *User    `gorm:"constraint:OnDelete:CASCADE;"`
	Name        string   `gorm:"size:150;not null"`
	GoalType    GoalType `gorm:"size:10;not null"`
	TargetValue string   `gorm:"size:100;not null"` // "80 kg", "50 pushups", "Run 5k"
	IsAchieved  bool     `gorm:"not null"`
	TargetDate  *datatypes.Date
	CreatedAt   time.Time
}

func (g *Goal) SetOwnerID(id uint) { g.UserID = id }

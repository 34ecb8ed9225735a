package models

import "gorm.io/datatypes"

// Exercise is an entry in the shared exercise library. Rows are created by
// the seed command, never through the public API.
type Exercise struct {
	ID            uint                        `gorm:"primaryKey"`
	Name          string                      `gorm:"size:100;uniqueIndex;not null"`
	Description   string                      `gorm:"type:text"`
	Instructions  string                      `gorm:"type:text"`
	TargetMuscles datatypes.JSONSlice[string] // e.g. ["Chest", "Triceps"]
	Equipment     string                      `gorm:"size:100"`
}

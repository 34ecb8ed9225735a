package models

import "time"

// WorkoutPlan is a user's named plan holding an ordered list of exercises.
type WorkoutPlan struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        uint   `gorm:"not null;uniqueIndex:idx_workout_plans_user_name"`
	User          *User  `gorm:"constraint:OnDelete:CASCADE;"`
	Name          string `gorm:"size:150;not null;uniqueIndex:idx_workout_plans_user_name"`
	Goal          string `gorm:"type:text"` // e.g. "Build Strength"
	Frequency     string `gorm:"size:50"`   // e.g. "3 times a week"
	IsActive      bool   `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	PlanExercises []PlanExercise `gorm:"constraint:OnDelete:CASCADE;"`
}

// PlanExercise places one library exercise into a plan with its prescription.
// Order is unique within a plan and defines the execution sequence.
type PlanExercise struct {
	ID             uint      `gorm:"primaryKey"`
	WorkoutPlanID  uint      `gorm:"not null;uniqueIndex:idx_plan_exercises_plan_order"`
	ExerciseID     uint      `gorm:"not null;index"`
	Exercise       *Exercise `gorm:"constraint:OnDelete:CASCADE;"`
	Sets           int       `gorm:"not null;check:sets >= 1"`
	RepsOrDuration string    `gorm:"size:50;not null"` // "10 reps", "30 seconds", "Failure"
	Order          int       `gorm:"not null;uniqueIndex:idx_plan_exercises_plan_order"`
}

func (p *WorkoutPlan) SetOwnerID(id uint) { p.UserID = id }

package controllers

import (
	"time"

	"github.com/guraspy/personalized-workout-api/models"
	"github.com/guraspy/personalized-workout-api/services"
)

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type exerciseResponse struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Instructions  string   `json:"instructions"`
	TargetMuscles []string `json:"target_muscles"`
	Equipment     string   `json:"equipment"`
}

type planExerciseResponse struct {
	ID             uint              `json:"id"`
	Exercise       *exerciseResponse `json:"exercise"`
	Sets           int               `json:"sets"`
	RepsOrDuration string            `json:"reps_or_duration"`
	Order          int               `json:"order"`
}

type workoutPlanResponse struct {
	ID            uint                   `json:"id"`
	User          string                 `json:"user"`
	Name          string                 `json:"name"`
	Goal          string                 `json:"goal"`
	Frequency     string                 `json:"frequency"`
	IsActive      bool                   `json:"is_active"`
	CreatedAt     time.Time              `json:"created_at"`
	PlanExercises []planExerciseResponse `json:"plan_exercises"`
}

type trackingResponse struct {
	ID        uint      `json:"id"`
	User      string    `json:"user"`
	Date      string    `json:"date"`
	WeightKg  *float64  `json:"weight_kg"`
	Notes     string    `json:"notes"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type goalResponse struct {
	ID          uint      `json:"id"`
	User        string    `json:"user"`
	Name        string    `json:"name"`
	GoalType    string    `json:"goal_type"`
	TargetValue string    `json:"target_value"`
	IsAchieved  bool      `json:"is_achieved"`
	TargetDate  *string   `json:"target_date"`
	CreatedAt   time.Time `json:"created_at"`
}

func username(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.Username
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

func newExerciseResponse(e *models.Exercise) *exerciseResponse {
	if e == nil {
		return nil
	}
	muscles := []string(e.TargetMuscles)
	if muscles == nil {
		muscles = []string{}
	}
	return &exerciseResponse{
		ID:            e.ID,
		Name:          e.Name,
		Description:   e.Description,
		Instructions:  e.Instructions,
		TargetMuscles: muscles,
		Equipment:     e.Equipment,
	}
}

func newWorkoutPlanResponse(p *models.WorkoutPlan) workoutPlanResponse {
	out := workoutPlanResponse{
		ID:            p.ID,
		User:          username(p.User),
		Name:          p.Name,
		Goal:          p.Goal,
		Frequency:     p.Frequency,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		PlanExercises: make([]planExerciseResponse, 0, len(p.PlanExercises)),
	}
	for i := range p.PlanExercises {
		pe := &p.PlanExercises[i]
		out.PlanExercises = append(out.PlanExercises, planExerciseResponse{
			ID:             pe.ID,
			Exercise:       newExerciseResponse(pe.Exercise),
			Sets:           pe.Sets,
			RepsOrDuration: pe.RepsOrDuration,
			Order:          pe.Order,
		})
	}
	return out
}

func newTrackingResponse(t *models.UserTracking) trackingResponse {
	return trackingResponse{
		ID:        t.ID,
		User:      username(t.User),
		Date:      services.FormatDate(t.Date),
		WeightKg:  t.WeightKg,
		Notes:     t.Notes,
		PhotoURL:  t.PhotoURL,
		CreatedAt: t.CreatedAt,
	}
}

func newGoalResponse(g *models.Goal) goalResponse {
	out := goalResponse{
		ID:          g.ID,
		User:        username(g.User),
		Name:        g.Name,
		GoalType:    string(g.GoalType),
		TargetValue: g.TargetValue,
		IsAchieved:  g.IsAchieved,
		CreatedAt:   g.CreatedAt,
	}
	if g.TargetDate != nil {
		d := services.FormatDate(*g.TargetDate)
		out.TargetDate = &d
	}
	return out
}

// mapSlice applies fn to every element, always returning a non-nil slice.
func mapSlice[T, R any](in []T, fn func(*T) R) []R {
	out := make([]R, 0, len(in))
	for i := range in {
		out = append(out, fn(&in[i]))
	}
	return out
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/guraspy/personalized-workout-api/logger"
	"github.com/guraspy/personalized-workout-api/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlanExerciseInput struct {
	ExerciseID     uint    `json:"exercise_id"`
	Sets           *int    `json:"sets"`
	RepsOrDuration *string `json:"reps_or_duration"`
	Order          *int    `json:"order"`
}

type WorkoutPlanInput struct {
	Name          *string              `json:"name"`
	Goal          *string              `json:"goal"`
	Frequency     *string              `json:"frequency"`
	IsActive      *bool                `json:"is_active"`
	PlanExercises *[]PlanExerciseInput `json:"plan_exercises"`
}

func (in WorkoutPlanInput) validate(partial bool) error {
	v := &ValidationError{}
	checkRequired(v, "name", in.Name, partial)
	checkMaxLen(v, "name", in.Name, 150)
	checkMaxLen(v, "frequency", in.Frequency, 50)

	if in.PlanExercises == nil {
		if !partial {
			v.Add("plan_exercises", "This field is required.")
		}
		return v.OrNil()
	}

	seen := map[int]int{}
	for i, pe := range *in.PlanExercises {
		prefix := fmt.Sprintf("plan_exercises[%d].", i)
		if pe.ExerciseID == 0 {
			v.Add(prefix+"exercise_id", "This field is required.")
		}
		switch {
		case pe.Sets == nil:
			v.Add(prefix+"sets", "This field is required.")
		case *pe.Sets < 1:
			v.Add(prefix+"sets", "Ensure this value is greater than or equal to 1.")
		}
		checkRequired(v, prefix+"reps_or_duration", pe.RepsOrDuration, false)
		checkMaxLen(v, prefix+"reps_or_duration", pe.RepsOrDuration, 50)
		switch {
		case pe.Order == nil:
			v.Add(prefix+"order", "This field is required.")
		case *pe.Order < 0:
			v.Add(prefix+"order", "Ensure this value is greater than or equal to 0.")
		default:
			if first, dup := seen[*pe.Order]; dup {
				v.Add(prefix+"order", fmt.Sprintf("Order %d is already used by plan_exercises[%d].", *pe.Order, first))
			} else {
				seen[*pe.Order] = i
			}
		}
	}
	return v.OrNil()
}

func (in WorkoutPlanInput) apply(p *models.WorkoutPlan, partial bool) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Goal != nil {
		p.Goal = *in.Goal
	} else if !partial {
		p.Goal = ""
	}
	if in.Frequency != nil {
		p.Frequency = *in.Frequency
	} else if !partial {
		p.Frequency = ""
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	} else if !partial {
		p.IsActive = true
	}
}

type WorkoutPlanFilter struct {
	Active *bool
}

// WorkoutPlanService manages the requesting user's plans together with their
// ordered exercise entries. Every write that touches children runs in one
// transaction.
type WorkoutPlanService struct {
	db    *gorm.DB
	plans *ScopedStore[models.WorkoutPlan, *models.WorkoutPlan]
}

func NewWorkoutPlanService(db *gorm.DB) *WorkoutPlanService {
	return &WorkoutPlanService{
		db: db,
		plans: NewScopedStore[models.WorkoutPlan](db, "user_id",
			func(q *gorm.DB) *gorm.DB {
				return q.Preload("User").
					Preload("PlanExercises", func(q *gorm.DB) *gorm.DB {
						return q.Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}})
					}).
					Preload("PlanExercises.Exercise").
					Order("id asc")
			},
		),
	}
}

var planNameConflict = &ConflictError{
	Field:   "name",
	Message: "a workout plan with this name already exists",
}

func (s *WorkoutPlanService) List(ctx context.Context, userID uint, f WorkoutPlanFilter) ([]models.WorkoutPlan, error) {
	var opts []QueryOption
	if f.Active != nil {
		active := *f.Active
		opts = append(opts, func(q *gorm.DB) *gorm.DB { return q.Where("is_active = ?", active) })
	}
	plans, err := s.plans.List(ctx, userID, opts...)
	if err != nil {
		return nil, translate(err, "list workout plans", nil)
	}
	return plans, nil
}

func (s *WorkoutPlanService) Get(ctx context.Context, userID, id uint) (*models.WorkoutPlan, error) {
	p, err := s.plans.Get(ctx, userID, id)
	if err != nil {
		return nil, translate(err, "get workout plan", nil)
	}
	return p, nil
}

// Create inserts the plan and its exercises atomically. An unknown exercise
// id or a taken name leaves nothing behind.
func (s *WorkoutPlanService) Create(ctx context.Context, userID uint, in WorkoutPlanInput) (*models.WorkoutPlan, error) {
	if err := in.validate(false); err != nil {
		return nil, err
	}
	p := &models.WorkoutPlan{}
	in.apply(p, false)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.plans.WithTx(tx).Create(ctx, userID, p); err != nil {
			return err
		}
		return replaceExercises(tx, p.ID, *in.PlanExercises)
	})
	if err != nil {
		return nil, translate(err, "create workout plan", planNameConflict)
	}
	logger.Debug("workout plan created",
		zap.Uint("user_id", userID), zap.Uint("plan_id", p.ID), zap.Int("exercises", len(*in.PlanExercises)))
	return s.Get(ctx, userID, p.ID)
}

// Update changes the plan's scalar fields. When PlanExercises is supplied the
// existing entries are dropped and the supplied list becomes the full set.
func (s *WorkoutPlanService) Update(ctx context.Context, userID, id uint, in WorkoutPlanInput, partial bool) (*models.WorkoutPlan, error) {
	if err := in.validate(partial); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := s.plans.WithTx(tx)
		p, err := store.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		in.apply(p, partial)
		if err := store.Update(ctx, userID, p); err != nil {
			return err
		}
		if in.PlanExercises == nil {
			return nil
		}
		if err := tx.Where("workout_plan_id = ?", p.ID).Delete(&models.PlanExercise{}).Error; err != nil {
			return err
		}
		return replaceExercises(tx, p.ID, *in.PlanExercises)
	})
	if err != nil {
		return nil, translate(err, "update workout plan", planNameConflict)
	}
	return s.Get(ctx, userID, id)
}

func (s *WorkoutPlanService) Delete(ctx context.Context, userID, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.plans.WithTx(tx).Get(ctx, userID, id); err != nil {
			return err
		}
		if err := tx.Where("workout_plan_id = ?", id).Delete(&models.PlanExercise{}).Error; err != nil {
			return err
		}
		return s.plans.WithTx(tx).Delete(ctx, userID, id)
	})
	return translate(err, "delete workout plan", nil)
}

// replaceExercises inserts items as the children of planID. Callers remove
// any previous children first.
func replaceExercises(tx *gorm.DB, planID uint, items []PlanExerciseInput) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ExerciseID)
	}
	var known []uint
	if err := tx.Model(&models.Exercise{}).Where("id IN ?", ids).Pluck("id", &known).Error; err != nil {
		return err
	}
	exists := make(map[uint]bool, len(known))
	for _, id := range known {
		exists[id] = true
	}

	v := &ValidationError{}
	rows := make([]models.PlanExercise, 0, len(items))
	for i, it := range items {
		if !exists[it.ExerciseID] {
			v.Add(fmt.Sprintf("plan_exercises[%d].exercise_id", i),
				fmt.Sprintf(`Invalid pk "%d" - object does not exist.`, it.ExerciseID))
			continue
		}
		rows = append(rows, models.PlanExercise{
			WorkoutPlanID:  planID,
			ExerciseID:     it.ExerciseID,
			Sets:           *it.Sets,
			RepsOrDuration: strings.TrimSpace(*it.RepsOrDuration),
			Order:          *it.Order,
		})
	}
	if err := v.OrNil(); err != nil {
		return err
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}

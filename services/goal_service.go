package services

import (
	"context"

	"github.com/guraspy/personalized-workout-api/models"

	"gorm.io/gorm"
)

type GoalInput struct {
	Name        *string        `json:"name"`
	GoalType    *string        `json:"goal_type"`
	TargetValue *string        `json:"target_value"`
	IsAchieved  *bool          `json:"is_achieved"`
	TargetDate  NullableString `json:"target_date"`
}

func (in GoalInput) validate(partial bool) error {
	v := &ValidationError{}
	checkRequired(v, "name", in.Name, partial)
	checkMaxLen(v, "name", in.Name, 150)
	checkRequired(v, "target_value", in.TargetValue, partial)
	checkMaxLen(v, "target_value", in.TargetValue, 100)
	if in.GoalType == nil {
		if !partial {
			v.Add("goal_type", "This field is required.")
		}
	} else if !models.GoalType(*in.GoalType).Valid() {
		v.Add("goal_type", `"`+*in.GoalType+`" is not a valid choice.`)
	}
	if in.TargetDate.Set && in.TargetDate.Valid {
		checkDate(v, "target_date", in.TargetDate.Value)
	}
	return v.OrNil()
}

// apply copies the supplied fields onto g. A full update (partial=false)
// clears the optional fields the client left out.
func (in GoalInput) apply(g *models.Goal, partial bool) {
	if in.Name != nil {
		g.Name = *in.Name
	}
	if in.GoalType != nil {
		g.GoalType = models.GoalType(*in.GoalType)
	}
	if in.TargetValue != nil {
		g.TargetValue = *in.TargetValue
	}
	if in.IsAchieved != nil {
		g.IsAchieved = *in.IsAchieved
	} else if !partial {
		g.IsAchieved = false
	}
	switch {
	case in.TargetDate.Set && in.TargetDate.Valid:
		d, _ := ParseDate(in.TargetDate.Value)
		g.TargetDate = &d
	case in.TargetDate.Set || !partial:
		g.TargetDate = nil
	}
}

type GoalFilter struct {
	Achieved *bool
}

// GoalService manages the requesting user's fitness goals.
type GoalService struct {
	goals *ScopedStore[models.Goal, *models.Goal]
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{
		goals: NewScopedStore[models.Goal](db, "user_id",
			func(q *gorm.DB) *gorm.DB { return q.Preload("User").Order("id asc") },
		),
	}
}

func (s *GoalService) List(ctx context.Context, userID uint, f GoalFilter) ([]models.Goal, error) {
	var opts []QueryOption
	if f.Achieved != nil {
		achieved := *f.Achieved
		opts = append(opts, func(q *gorm.DB) *gorm.DB { return q.Where("is_achieved = ?", achieved) })
	}
	goals, err := s.goals.List(ctx, userID, opts...)
	if err != nil {
		return nil, translate(err, "list goals", nil)
	}
	return goals, nil
}

func (s *GoalService) Get(ctx context.Context, userID, id uint) (*models.Goal, error) {
	g, err := s.goals.Get(ctx, userID, id)
	if err != nil {
		return nil, translate(err, "get goal", nil)
	}
	return g, nil
}

func (s *GoalService) Create(ctx context.Context, userID uint, in GoalInput) (*models.Goal, error) {
	if err := in.validate(false); err != nil {
		return nil, err
	}
	g := &models.Goal{}
	in.apply(g, false)
	if err := s.goals.Create(ctx, userID, g); err != nil {
		return nil, translate(err, "create goal", nil)
	}
	return s.Get(ctx, userID, g.ID)
}

func (s *GoalService) Update(ctx context.Context, userID, id uint, in GoalInput, partial bool) (*models.Goal, error) {
	if err := in.validate(partial); err != nil {
		return nil, err
	}
	g, err := s.goals.Get(ctx, userID, id)
	if err != nil {
		return nil, translate(err, "get goal", nil)
	}
	in.apply(g, partial)
	if err := s.goals.Update(ctx, userID, g); err != nil {
		return nil, translate(err, "update goal", nil)
	}
	return s.Get(ctx, userID, id)
}

func (s *GoalService) Delete(ctx context.Context, userID, id uint) error {
	return translate(s.goals.Delete(ctx, userID, id), "delete goal", nil)
}

package services

import (
	"context"
	"strings"

	"github.com/guraspy/personalized-workout-api/logger"
	"github.com/guraspy/personalized-workout-api/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExerciseService serves the shared exercise library. Reads are open to any
// authenticated user; Seed and Delete are for operator tooling only.
type ExerciseService struct {
	db *gorm.DB
}

func NewExerciseService(db *gorm.DB) *ExerciseService {
	return &ExerciseService{db: db}
}

type ExerciseFilter struct {
	Search string // case-insensitive substring of the name
	Muscle string // exact target muscle, case-insensitive
}

func (s *ExerciseService) List(ctx context.Context, f ExerciseFilter) ([]models.Exercise, error) {
	q := s.db.WithContext(ctx).Order("id asc")
	if term := strings.TrimSpace(f.Search); term != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}
	exercises := []models.Exercise{}
	if err := q.Find(&exercises).Error; err != nil {
		return nil, translate(err, "list exercises", nil)
	}

	// target_muscles is a JSON column; filtering in Go keeps this portable
	// across postgres and sqlite, and the library is small.
	if muscle := strings.TrimSpace(f.Muscle); muscle != "" {
		filtered := exercises[:0]
		for _, e := range exercises {
			for _, m := range e.TargetMuscles {
				if strings.EqualFold(m, muscle) {
					filtered = append(filtered, e)
					break
				}
			}
		}
		exercises = filtered
	}
	return exercises, nil
}

func (s *ExerciseService) Get(ctx context.Context, id uint) (*models.Exercise, error) {
	var e models.Exercise
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, translate(err, "get exercise", nil)
	}
	return &e, nil
}

type SeedResult struct {
	Created  []string
	Existing []string
}

// Seed inserts every exercise whose name is not in the library yet. Existing
// rows are left untouched, so running it twice is harmless.
func (s *ExerciseService) Seed(ctx context.Context, exercises []models.Exercise) (*SeedResult, error) {
	res := &SeedResult{}
	for _, e := range exercises {
		if e.TargetMuscles == nil {
			e.TargetMuscles = []string{}
		}
		var rec models.Exercise
		tx := s.db.WithContext(ctx).
			Where(models.Exercise{Name: e.Name}).
			Attrs(e).
			FirstOrCreate(&rec)
		if tx.Error != nil {
			return res, translate(tx.Error, "seed exercise "+e.Name, nil)
		}
		if tx.RowsAffected > 0 {
			res.Created = append(res.Created, rec.Name)
			logger.Info("exercise created", zap.String("name", rec.Name))
		} else {
			res.Existing = append(res.Existing, rec.Name)
		}
	}
	return res, nil
}

// Delete removes an exercise and every plan entry that references it.
func (s *ExerciseService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exercise_id = ?", id).Delete(&models.PlanExercise{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Exercise{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err, "delete exercise", nil)
}

// DeleteByName is Delete keyed by the unique exercise name.
func (s *ExerciseService) DeleteByName(ctx context.Context, name string) error {
	var e models.Exercise
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&e).Error; err != nil {
		return translate(err, "find exercise", nil)
	}
	return s.Delete(ctx, e.ID)
}

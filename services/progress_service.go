package services

import (
	"context"
	"math"
	"time"

	"github.com/guraspy/personalized-workout-api/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgressService aggregates a user's tracking log, goals and plans into a
// read-only summary over a date range.
type ProgressService struct{ db *gorm.DB }

func NewProgressService(db *gorm.DB) *ProgressService { return &ProgressService{db: db} }

type WeightTrend struct {
	Entries  int      `json:"entries"`
	Weighed  int      `json:"weighed"`
	StartKg  *float64 `json:"start_kg"`
	LatestKg *float64 `json:"latest_kg"`
	ChangeKg *float64 `json:"change_kg"`
	MinKg    *float64 `json:"min_kg"`
	MaxKg    *float64 `json:"max_kg"`
	Photos   int      `json:"photos"`
}

type GoalProgress struct {
	Total       int64   `json:"total"`
	Achieved    int64   `json:"achieved"`
	AchievedPct float64 `json:"achieved_pct"`
	Overdue     int64   `json:"overdue"`
}

type PlanCounts struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

type ProgressSummary struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`
	Weight WeightTrend  `json:"weight"`
	Goals  GoalProgress `json:"goals"`
	Plans  PlanCounts   `json:"plans"`
}

// Summary covers tracking entries dated within [from, to]. Goal and plan
// counts are current totals; a goal is overdue when it is unachieved and its
// target date lies before to.
func (s *ProgressService) Summary(ctx context.Context, userID uint, from, to datatypes.Date) (*ProgressSummary, error) {
	if time.Time(to).Before(time.Time(from)) {
		return nil, invalid("to", "Must be on or after from.")
	}
	db := s.db.WithContext(ctx)

	var entries []models.UserTracking
	if err := db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date asc").
		Find(&entries).Error; err != nil {
		return nil, translate(err, "load tracking entries", nil)
	}

	out := &ProgressSummary{Weight: weightTrend(entries)}
	out.Range.From = FormatDate(from)
	out.Range.To = FormatDate(to)

	goals := db.Model(&models.Goal{}).Where("user_id = ?", userID)
	if err := goals.Session(&gorm.Session{}).Count(&out.Goals.Total).Error; err != nil {
		return nil, translate(err, "count goals", nil)
	}
	if err := goals.Session(&gorm.Session{}).Where("is_achieved = ?", true).Count(&out.Goals.Achieved).Error; err != nil {
		return nil, translate(err, "count achieved goals", nil)
	}
	if err := goals.Session(&gorm.Session{}).
		Where("is_achieved = ? AND target_date IS NOT NULL AND target_date < ?", false, to).
		Count(&out.Goals.Overdue).Error; err != nil {
		return nil, translate(err, "count overdue goals", nil)
	}
	if out.Goals.Total > 0 {
		out.Goals.AchievedPct = round2(float64(out.Goals.Achieved) / float64(out.Goals.Total) * 100)
	}

	plans := db.Model(&models.WorkoutPlan{}).Where("user_id = ?", userID)
	if err := plans.Session(&gorm.Session{}).Count(&out.Plans.Total).Error; err != nil {
		return nil, translate(err, "count plans", nil)
	}
	if err := plans.Session(&gorm.Session{}).Where("is_active = ?", true).Count(&out.Plans.Active).Error; err != nil {
		return nil, translate(err, "count active plans", nil)
	}
	return out, nil
}

// weightTrend expects entries in ascending date order.
func weightTrend(entries []models.UserTracking) WeightTrend {
	t := WeightTrend{Entries: len(entries)}
	for _, e := range entries {
		if e.PhotoURL != "" {
			t.Photos++
		}
		if e.WeightKg == nil {
			continue
		}
		w := *e.WeightKg
		t.Weighed++
		if t.StartKg == nil {
			t.StartKg = floatPtr(w)
			t.MinKg = floatPtr(w)
			t.MaxKg = floatPtr(w)
		}
		t.LatestKg = floatPtr(w)
		if w < *t.MinKg {
			t.MinKg = floatPtr(w)
		}
		if w > *t.MaxKg {
			t.MaxKg = floatPtr(w)
		}
	}
	if t.StartKg != nil {
		t.ChangeKg = floatPtr(round2(*t.LatestKg - *t.StartKg))
	}
	return t
}

func floatPtr(f float64) *float64 { return &f }

func round2(x float64) float64 { return math.Round(x*100) / 100 }

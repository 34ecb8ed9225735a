package services

import (
	"context"
	"fmt"
	"math"

	"github.com/guraspy/personalized-workout-api/logger"
	"github.com/guraspy/personalized-workout-api/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PhotoUploader stores a base64 data-URI image and returns its public URL.
type PhotoUploader interface {
	UploadBase64Image(ctx context.Context, dataURI, keyPrefix string) (string, error)
}

type TrackingInput struct {
	Date     *string        `json:"date"`
	WeightKg NullableFloat  `json:"weight_kg"`
	Notes    NullableString `json:"notes"`
	Photo    *string        `json:"photo"` // data:image/...;base64,...
}

func (in TrackingInput) validate(partial bool) error {
	v := &ValidationError{}
	if in.Date == nil {
		if !partial {
			v.Add("date", "This field is required.")
		}
	} else {
		checkDate(v, "date", *in.Date)
	}
	if in.WeightKg.Set && in.WeightKg.Valid {
		checkWeight(v, "weight_kg", in.WeightKg.Value)
	}
	return v.OrNil()
}

// checkWeight enforces the decimal(5,2) column: positive, below 1000 and at
// most two decimal places.
func checkWeight(v *ValidationError, field string, w float64) {
	switch {
	case math.IsNaN(w) || math.IsInf(w, 0) || w <= 0:
		v.Add(field, "Ensure this value is greater than 0.")
	case w >= 1000:
		v.Add(field, "Ensure that there are no more than 5 digits in total.")
	case math.Abs(w*100-math.Round(w*100)) > 1e-6:
		v.Add(field, "Ensure that there are no more than 2 decimal places.")
	}
}

func (in TrackingInput) apply(t *models.UserTracking, partial bool) {
	if in.Date != nil {
		d, _ := ParseDate(*in.Date)
		t.Date = d
	}
	switch {
	case in.WeightKg.Set && in.WeightKg.Valid:
		w := math.Round(in.WeightKg.Value*100) / 100
		t.WeightKg = &w
	case in.WeightKg.Set || !partial:
		t.WeightKg = nil
	}
	switch {
	case in.Notes.Set:
		t.Notes = in.Notes.Value
	case !partial:
		t.Notes = ""
	}
}

type TrackingFilter struct {
	From *datatypes.Date
	To   *datatypes.Date
}

// TrackingService manages the requesting user's body-metric log.
type TrackingService struct {
	entries *ScopedStore[models.UserTracking, *models.UserTracking]
	photos  PhotoUploader
}

// NewTrackingService builds the service. photos may be nil, in which case
// entries carrying a photo are rejected.
func NewTrackingService(db *gorm.DB, photos PhotoUploader) *TrackingService {
	return &TrackingService{
		entries: NewScopedStore[models.UserTracking](db, "user_id",
			func(q *gorm.DB) *gorm.DB { return q.Preload("User").Order("date desc") },
		),
		photos: photos,
	}
}

var trackingDateConflict = &ConflictError{
	Field:   "date",
	Message: "a tracking entry for this date already exists",
}

// List returns entries newest date first, optionally bounded by an inclusive
// date range.
func (s *TrackingService) List(ctx context.Context, userID uint, f TrackingFilter) ([]models.UserTracking, error) {
	var opts []QueryOption
	if f.From != nil {
		from := *f.From
		opts = append(opts, func(q *gorm.DB) *gorm.DB { return q.Where("date >= ?", from) })
	}
	if f.To != nil {
		to := *f.To
		opts = append(opts, func(q *gorm.DB) *gorm.DB { return q.Where("date <= ?", to) })
	}
	entries, err := s.entries.List(ctx, userID, opts...)
	if err != nil {
		return nil, translate(err, "list tracking entries", nil)
	}
	return entries, nil
}

func (s *TrackingService) Get(ctx context.Context, userID, id uint) (*models.UserTracking, error) {
	t, err := s.entries.Get(ctx, userID, id)
	if err != nil {
		return nil, translate(err, "get tracking entry", nil)
	}
	return t, nil
}

func (s *TrackingService) Create(ctx context.Context, userID uint, in TrackingInput) (*models.UserTracking, error) {
	if err := in.validate(false); err != nil {
		return nil, err
	}
	t := &models.UserTracking{}
	in.apply(t, false)
	if err := s.attachPhoto(ctx, userID, t, in.Photo); err != nil {
		return nil, err
	}
	if err := s.entries.Create(ctx, userID, t); err != nil {
		return nil, translate(err, "create tracking entry", trackingDateConflict)
	}
	return s.Get(ctx, userID, t.ID)
}

func (s *TrackingService) Update(ctx context.Context, userID, id uint, in TrackingInput, partial bool) (*models.UserTracking, error) {
	if err := in.validate(partial); err != nil {
		return nil, err
	}
	t, err := s.entries.Get(ctx, userID, id)
	if err != nil {
		return nil, translate(err, "get tracking entry", nil)
	}
	in.apply(t, partial)
	if err := s.attachPhoto(ctx, userID, t, in.Photo); err != nil {
		return nil, err
	}
	if err := s.entries.Update(ctx, userID, t); err != nil {
		return nil, translate(err, "update tracking entry", trackingDateConflict)
	}
	return s.Get(ctx, userID, id)
}

func (s *TrackingService) Delete(ctx context.Context, userID, id uint) error {
	return translate(s.entries.Delete(ctx, userID, id), "delete tracking entry", nil)
}

func (s *TrackingService) attachPhoto(ctx context.Context, userID uint, t *models.UserTracking, photo *string) error {
	if photo == nil || *photo == "" {
		return nil
	}
	if s.photos == nil {
		return invalid("photo", "Photo uploads are not enabled on this server.")
	}
	url, err := s.photos.UploadBase64Image(ctx, *photo, fmt.Sprintf("progress-photos/user-%d/%s", userID, FormatDate(t.Date)))
	if err != nil {
		logger.Warn("progress photo upload failed", zap.Uint("user_id", userID), zap.Error(err))
		return invalid("photo", "Upload a valid image.")
	}
	t.PhotoURL = url
	return nil
}

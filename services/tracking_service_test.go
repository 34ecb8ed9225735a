package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/guraspy/personalized-workout-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPhotoUploader struct {
	mock.Mock
}

func (m *MockPhotoUploader) UploadBase64Image(ctx context.Context, dataURI, keyPrefix string) (string, error) {
	args := m.Called(ctx, dataURI, keyPrefix)
	return args.String(0), args.Error(1)
}

func decodeTracking(t *testing.T, raw string) TrackingInput {
	t.Helper()
	var in TrackingInput
	require.NoError(t, json.Unmarshal([]byte(raw), &in))
	return in
}

func TestTrackingService_OneEntryPerUserAndDate(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	svc := NewTrackingService(db, nil)

	first, err := svc.Create(ctx, alice.ID, decodeTracking(t, `{"date":"2024-03-01","weight_kg":82.5}`))
	require.NoError(t, err)
	require.NotNil(t, first.WeightKg)
	assert.InDelta(t, 82.5, *first.WeightKg, 0.001)

	_, err = svc.Create(ctx, alice.ID, decodeTracking(t, `{"date":"2024-03-01","weight_kg":82.0}`))
	var cErr *ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "date", cErr.Field)

	_, err = svc.Create(ctx, bob.ID, decodeTracking(t, `{"date":"2024-03-01"}`))
	assert.NoError(t, err, "another user may log the same date")

	// Moving an entry onto a taken date conflicts too.
	second, err := svc.Create(ctx, alice.ID, decodeTracking(t, `{"date":"2024-03-02"}`))
	require.NoError(t, err)
	_, err = svc.Update(ctx, alice.ID, second.ID, decodeTracking(t, `{"date":"2024-03-01"}`), true)
	require.ErrorAs(t, err, &cErr)
}

func TestTrackingService_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "alice")
	svc := NewTrackingService(db, nil)

	for _, d := range []string{"2024-03-02", "2024-03-05", "2024-03-01"} {
		_, err := svc.Create(ctx, u.ID, decodeTracking(t, `{"date":"`+d+`"}`))
		require.NoError(t, err)
	}

	entries, err := svc.List(ctx, u.ID, TrackingFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2024-03-05", FormatDate(entries[0].Date))
	assert.Equal(t, "2024-03-01", FormatDate(entries[2].Date))

	from, _ := ParseDate("2024-03-02")
	to, _ := ParseDate("2024-03-04")
	ranged, err := svc.List(ctx, u.ID, TrackingFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "2024-03-02", FormatDate(ranged[0].Date))
}

func TestTrackingService_WeightValidation(t *testing.T) {
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "alice")
	svc := NewTrackingService(db, nil)

	for _, body := range []string{
		`{"date":"2024-03-01","weight_kg":-1}`,
		`{"date":"2024-03-01","weight_kg":1000}`,
		`{"date":"2024-03-01","weight_kg":80.123}`,
	} {
		_, err := svc.Create(context.Background(), u.ID, decodeTracking(t, body))
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, body)
		assert.Contains(t, vErr.Fields, "weight_kg")
	}

	_, err := svc.Create(context.Background(), u.ID, decodeTracking(t, `{"weight_kg":80}`))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "date")
}

func TestTrackingService_Photo(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "alice")

	t.Run("uploads disabled", func(t *testing.T) {
		svc := NewTrackingService(db, nil)
		_, err := svc.Create(ctx, u.ID, decodeTracking(t, `{"date":"2024-03-01","photo":"data:image/png;base64,AAAA"}`))
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "photo")
	})

	t.Run("stored url", func(t *testing.T) {
		uploader := new(MockPhotoUploader)
		uploader.On("UploadBase64Image", mock.Anything, "data:image/png;base64,AAAA", "progress-photos/user-1/2024-03-02").
			Return("https://cdn.example.com/p.png", nil).Once()
		svc := NewTrackingService(db, uploader)

		entry, err := svc.Create(ctx, u.ID, decodeTracking(t, `{"date":"2024-03-02","photo":"data:image/png;base64,AAAA"}`))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/p.png", entry.PhotoURL)
		uploader.AssertExpectations(t)
	})

	t.Run("upload failure", func(t *testing.T) {
		uploader := new(MockPhotoUploader)
		uploader.On("UploadBase64Image", mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("s3 down")).Once()
		svc := NewTrackingService(db, uploader)

		_, err := svc.Create(ctx, u.ID, decodeTracking(t, `{"date":"2024-03-03","photo":"data:image/png;base64,AAAA"}`))
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		uploader.AssertExpectations(t)
	})
}

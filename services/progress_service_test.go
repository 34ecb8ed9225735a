package services

import (
	"context"
	"testing"

	"github.com/guraspy/personalized-workout-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressService_Summary(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	tracking := NewTrackingService(db, nil)
	for _, body := range []string{
		`{"date":"2024-02-28","weight_kg":90}`,
		`{"date":"2024-03-01","weight_kg":85.5}`,
		`{"date":"2024-03-03"}`,
		`{"date":"2024-03-10","weight_kg":84.25}`,
		`{"date":"2024-03-20","weight_kg":86}`,
	} {
		_, err := tracking.Create(ctx, alice.ID, decodeTracking(t, body))
		require.NoError(t, err)
	}
	_, err := tracking.Create(ctx, bob.ID, decodeTracking(t, `{"date":"2024-03-05","weight_kg":60}`))
	require.NoError(t, err)

	goals := NewGoalService(db)
	for _, body := range []string{
		`{"name":"Cut","goal_type":"WEIGHT","target_value":"80 kg","is_achieved":true}`,
		`{"name":"Run","goal_type":"EXERCISE","target_value":"5k","target_date":"2024-03-15"}`,
		`{"name":"Sleep","goal_type":"OTHER","target_value":"8h"}`,
	} {
		_, err := goals.Create(ctx, alice.ID, decodeGoal(t, body))
		require.NoError(t, err)
	}
	_, err = NewWorkoutPlanService(db).Create(ctx, alice.ID, planInput("Plan A"))
	require.NoError(t, err)

	from, _ := ParseDate("2024-03-01")
	to, _ := ParseDate("2024-03-31")
	sum, err := NewProgressService(db).Summary(ctx, alice.ID, from, to)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", sum.Range.From)
	assert.Equal(t, 4, sum.Weight.Entries)
	assert.Equal(t, 3, sum.Weight.Weighed)
	require.NotNil(t, sum.Weight.ChangeKg)
	assert.InDelta(t, 85.5, *sum.Weight.StartKg, 0.001)
	assert.InDelta(t, 86, *sum.Weight.LatestKg, 0.001)
	assert.InDelta(t, 0.5, *sum.Weight.ChangeKg, 0.001)
	assert.InDelta(t, 84.25, *sum.Weight.MinKg, 0.001)
	assert.InDelta(t, 86, *sum.Weight.MaxKg, 0.001)

	assert.Equal(t, int64(3), sum.Goals.Total)
	assert.Equal(t, int64(1), sum.Goals.Achieved)
	assert.Equal(t, int64(1), sum.Goals.Overdue)
	assert.InDelta(t, 33.33, sum.Goals.AchievedPct, 0.001)
	assert.Equal(t, PlanCounts{Total: 1, Active: 1}, sum.Plans)

	_, err = NewProgressService(db).Summary(ctx, alice.ID, to, from)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestWeightTrend_NoWeights(t *testing.T) {
	tr := weightTrend(nil)
	assert.Zero(t, tr.Entries)
	assert.Nil(t, tr.ChangeKg)
}

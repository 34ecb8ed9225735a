package services

import (
	"context"
	"testing"

	"github.com/guraspy/personalized-workout-api/models"
	"github.com/guraspy/personalized-workout-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func entry(exerciseID uint, sets, order int, reps string) PlanExerciseInput {
	return PlanExerciseInput{ExerciseID: exerciseID, Sets: intPtr(sets), RepsOrDuration: strPtr(reps), Order: intPtr(order)}
}

func planInput(name string, items ...PlanExerciseInput) WorkoutPlanInput {
	if items == nil {
		items = []PlanExerciseInput{}
	}
	return WorkoutPlanInput{Name: strPtr(name), Goal: strPtr("Build Strength"), Frequency: strPtr("3 times a week"), PlanExercises: &items}
}

func countChildren(t *testing.T, svc *WorkoutPlanService, planID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, svc.db.Model(&models.PlanExercise{}).Where("workout_plan_id = ?", planID).Count(&n).Error)
	return n
}

func TestWorkoutPlanService_CreateReturnsChildrenInOrder(t *testing.T) {
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "alice")
	pushup := testutil.CreateExercise(t, db, "Push-up", "Chest")
	squat := testutil.CreateExercise(t, db, "Squat", "Quadriceps")
	plank := testutil.CreateExercise(t, db, "Plank", "Core")
	svc := NewWorkoutPlanService(db)

	plan, err := svc.Create(context.Background(), u.ID, planInput("Plan A",
		entry(plank.ID, 1, 3, "60s"),
		entry(pushup.ID, 3, 1, "10"),
		entry(squat.ID, 3, 2, "12"),
	))
	require.NoError(t, err)

	assert.Equal(t, "Plan A", plan.Name)
	assert.True(t, plan.IsActive)
	require.NotNil(t, plan.User)
	assert.Equal(t, "alice", plan.User.Username)
	require.Len(t, plan.PlanExercises, 3)
	for i, want := range []string{"Push-up", "Squat", "Plank"} {
		assert.Equal(t, i+1, plan.PlanExercises[i].Order)
		require.NotNil(t, plan.PlanExercises[i].Exercise)
		assert.Equal(t, want, plan.PlanExercises[i].Exercise.Name)
	}
}

func TestWorkoutPlanService_CreateIsAtomic(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "alice")
	pushup := testutil.CreateExercise(t, db, "Push-up")
	svc := NewWorkoutPlanService(db)

	t.Run("duplicate order", func(t *testing.T) {
		_, err := svc.Create(ctx, u.ID, planInput("Dupes",
			entry(pushup.ID, 3, 1, "10"),
			entry(pushup.ID, 3, 1, "12"),
		))
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "plan_exercises[1].order")
	})

	t.Run("unknown exercise in second child", func(t *testing.T) {
		_, err := svc.Create(ctx, u.ID, planInput("Ghost",
			entry(pushup.ID, 3, 1, "10"),
			entry(9999, 3, 2, "12"),
		))
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "plan_exercises[1].exercise_id")
	})

	t.Run("sets below one", func(t *testing.T) {
		_, err := svc.Create(ctx, u.ID, planInput("Zero", entry(pushup.ID, 0, 1, "10")))
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "plan_exercises[0].sets")
	})

	var plans, children int64
	require.NoError(t, db.Model(&models.WorkoutPlan{}).Count(&plans).Error)
	require.NoError(t, db.Model(&models.PlanExercise{}).Count(&children).Error)
	assert.Zero(t, plans)
	assert.Zero(t, children)
}

func TestWorkoutPlanService_DuplicateNameConflicts(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	pushup := testutil.CreateExercise(t, db, "Push-up")
	svc := NewWorkoutPlanService(db)

	_, err := svc.Create(ctx, alice.ID, planInput("Plan A", entry(pushup.ID, 3, 1, "10")))
	require.NoError(t, err)

	_, err = svc.Create(ctx, alice.ID, planInput("Plan A", entry(pushup.ID, 3, 1, "10")))
	var cErr *ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "name", cErr.Field)
	var children int64
	require.NoError(t, db.Model(&models.PlanExercise{}).Count(&children).Error)
	assert.Equal(t, int64(1), children, "failed create left children behind")

	// Names are only unique per user.
	_, err = svc.Create(ctx, bob.ID, planInput("Plan A"))
	assert.NoError(t, err)
}

func TestWorkoutPlanService_UpdateReplacesChildren(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "alice")
	pushup := testutil.CreateExercise(t, db, "Push-up")
	squat := testutil.CreateExercise(t, db, "Squat")
	plank := testutil.CreateExercise(t, db, "Plank")
	svc := NewWorkoutPlanService(db)

	plan, err := svc.Create(ctx, u.ID, planInput("Plan A",
		entry(pushup.ID, 3, 1, "10"),
		entry(squat.ID, 3, 2, "12"),
		entry(plank.ID, 1, 3, "60s"),
	))
	require.NoError(t, err)
	originalIDs := map[uint]bool{}
	for _, pe := range plan.PlanExercises {
		originalIDs[pe.ID] = true
	}

	items := []PlanExerciseInput{entry(plank.ID, 1, 1, "60s"), entry(pushup.ID, 4, 2, "8")}
	updated, err := svc.Update(ctx, u.ID, plan.ID, WorkoutPlanInput{PlanExercises: &items}, true)
	require.NoError(t, err)

	require.Len(t, updated.PlanExercises, 2)
	assert.Equal(t, int64(2), countChildren(t, svc, plan.ID))
	for _, pe := range updated.PlanExercises {
		assert.False(t, originalIDs[pe.ID], "child %d survived the replace", pe.ID)
	}
	assert.Equal(t, "Plank", updated.PlanExercises[0].Exercise.Name)
	assert.Equal(t, "Plan A", updated.Name, "partial update keeps the name")
	assert.Equal(t, "Build Strength", updated.Goal)
}

func TestWorkoutPlanService_PartialUpdateWithoutChildrenKeepsThem(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "alice")
	pushup := testutil.CreateExercise(t, db, "Push-up")
	svc := NewWorkoutPlanService(db)

	plan, err := svc.Create(ctx, u.ID, planInput("Plan A", entry(pushup.ID, 3, 1, "10")))
	require.NoError(t, err)

	inactive := false
	updated, err := svc.Update(ctx, u.ID, plan.ID, WorkoutPlanInput{IsActive: &inactive}, true)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Len(t, updated.PlanExercises, 1)

	active := true
	plans, err := svc.List(ctx, u.ID, WorkoutPlanFilter{Active: &active})
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestWorkoutPlanService_FullUpdateRequiresExercises(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "alice")
	svc := NewWorkoutPlanService(db)

	plan, err := svc.Create(ctx, u.ID, planInput("Plan A"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, u.ID, plan.ID, WorkoutPlanInput{Name: strPtr("Renamed")}, false)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "plan_exercises")
}

func TestWorkoutPlanService_OwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	svc := NewWorkoutPlanService(db)

	plan, err := svc.Create(ctx, alice.ID, planInput("Plan A"))
	require.NoError(t, err)

	_, err = svc.Get(ctx, bob.ID, plan.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	empty := []PlanExerciseInput{}
	_, err = svc.Update(ctx, bob.ID, plan.ID, WorkoutPlanInput{Name: strPtr("Hijacked"), PlanExercises: &empty}, false)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, bob.ID, plan.ID), ErrNotFound)

	plans, err := svc.List(ctx, bob.ID, WorkoutPlanFilter{})
	require.NoError(t, err)
	assert.Empty(t, plans)

	still, err := svc.Get(ctx, alice.ID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plan A", still.Name)
}

func TestWorkoutPlanService_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "alice")
	pushup := testutil.CreateExercise(t, db, "Push-up")
	squat := testutil.CreateExercise(t, db, "Squat")
	svc := NewWorkoutPlanService(db)
	exercises := NewExerciseService(db)

	plan, err := svc.Create(ctx, u.ID, planInput("Plan A", entry(pushup.ID, 3, 1, "10"), entry(squat.ID, 3, 2, "12")))
	require.NoError(t, err)
	other, err := svc.Create(ctx, u.ID, planInput("Plan B", entry(pushup.ID, 3, 1, "10"), entry(squat.ID, 3, 2, "12")))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u.ID, plan.ID))
	assert.Zero(t, countChildren(t, svc, plan.ID))
	_, err = svc.Get(ctx, u.ID, plan.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing an exercise takes its plan entries with it.
	require.NoError(t, exercises.Delete(ctx, pushup.ID))
	got, err := svc.Get(ctx, u.ID, other.ID)
	require.NoError(t, err)
	require.Len(t, got.PlanExercises, 1)
	assert.Equal(t, "Squat", got.PlanExercises[0].Exercise.Name)
}

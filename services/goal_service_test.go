package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/guraspy/personalized-workout-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeGoal(t *testing.T, raw string) GoalInput {
	t.Helper()
	var in GoalInput
	require.NoError(t, json.Unmarshal([]byte(raw), &in))
	return in
}

func TestGoalService_CreateValidates(t *testing.T) {
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "alice")
	svc := NewGoalService(db)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing name", `{"goal_type":"WEIGHT","target_value":"80 kg"}`, "name"},
		{"blank name", `{"name":"  ","goal_type":"WEIGHT","target_value":"80 kg"}`, "name"},
		{"bad type", `{"name":"Cut","goal_type":"SPEED","target_value":"80 kg"}`, "goal_type"},
		{"bad date", `{"name":"Cut","goal_type":"WEIGHT","target_value":"80 kg","target_date":"31/12/2025"}`, "target_date"},
		{"missing target", `{"name":"Cut","goal_type":"WEIGHT"}`, "target_value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), u.ID, decodeGoal(t, tt.body))
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Fields, tt.field)
		})
	}
}

func TestGoalService_PartialAndFullUpdate(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	u := testutil.CreateUser(t, db, "alice")
	svc := NewGoalService(db)

	g, err := svc.Create(ctx, u.ID, decodeGoal(t,
		`{"name":"Cut","goal_type":"WEIGHT","target_value":"80 kg","target_date":"2025-12-31"}`))
	require.NoError(t, err)
	require.NotNil(t, g.TargetDate)
	assert.Equal(t, "2025-12-31", FormatDate(*g.TargetDate))
	assert.Equal(t, "alice", g.User.Username)

	g, err = svc.Update(ctx, u.ID, g.ID, decodeGoal(t, `{"is_achieved":true}`), true)
	require.NoError(t, err)
	assert.True(t, g.IsAchieved)
	assert.Equal(t, "Cut", g.Name)
	require.NotNil(t, g.TargetDate, "PATCH keeps fields it does not mention")

	g, err = svc.Update(ctx, u.ID, g.ID, decodeGoal(t, `{"name":"Run 5k","goal_type":"EXERCISE","target_value":"25 min"}`), false)
	require.NoError(t, err)
	assert.Equal(t, "Run 5k", g.Name)
	assert.False(t, g.IsAchieved, "PUT resets omitted optional fields")
	assert.Nil(t, g.TargetDate)

	g, err = svc.Update(ctx, u.ID, g.ID, decodeGoal(t, `{"target_date":null}`), true)
	require.NoError(t, err)
	assert.Nil(t, g.TargetDate)
}

func TestGoalService_ListScopesAndFilters(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	svc := NewGoalService(db)

	_, err := svc.Create(ctx, alice.ID, decodeGoal(t, `{"name":"A1","goal_type":"OTHER","target_value":"x","is_achieved":true}`))
	require.NoError(t, err)
	_, err = svc.Create(ctx, alice.ID, decodeGoal(t, `{"name":"A2","goal_type":"OTHER","target_value":"y"}`))
	require.NoError(t, err)
	bobGoal, err := svc.Create(ctx, bob.ID, decodeGoal(t, `{"name":"B1","goal_type":"OTHER","target_value":"z"}`))
	require.NoError(t, err)

	all, err := svc.List(ctx, alice.ID, GoalFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A1", all[0].Name)

	achieved := false
	open, err := svc.List(ctx, alice.ID, GoalFilter{Achieved: &achieved})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "A2", open[0].Name)

	_, err = svc.Get(ctx, alice.ID, bobGoal.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Update(ctx, alice.ID, bobGoal.ID, decodeGoal(t, `{"name":"mine"}`), true)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, alice.ID, bobGoal.ID), ErrNotFound)
	require.NoError(t, svc.Delete(ctx, bob.ID, bobGoal.ID))
}

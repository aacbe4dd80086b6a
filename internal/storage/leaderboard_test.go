package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLeaderboard(t *testing.T) (*Leaderboard, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewLeaderboard(client), mr
}

func TestLeaderboard_RecordRound_NewPlayer(t *testing.T) {
	t.Parallel()

	lb, mr := newTestLeaderboard(t)
	defer mr.Close()
	ctx := context.Background()

	err := lb.RecordRound(ctx, []Placement{
		{PlayerID: "p1", PlayerName: "Alice", Won: true},
		{PlayerID: "p2", PlayerName: "Bob", Lost: true},
	})
	require.NoError(t, err)

	winner, err := lb.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, winner)
	assert.Equal(t, 1, winner.TotalRounds)
	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, WinPoints, winner.Score)
	assert.Equal(t, 1, winner.CurrentStreak)

	loser, err := lb.GetPlayerStats(ctx, "p2")
	require.NoError(t, err)
	require.NotNil(t, loser)
	assert.Equal(t, 1, loser.Losses)
	assert.Equal(t, 0, loser.Score) // floors at zero
	assert.Equal(t, -1, loser.CurrentStreak)
}

func TestLeaderboard_RecordRound_SkipsBotSeats(t *testing.T) {
	t.Parallel()

	lb, mr := newTestLeaderboard(t)
	defer mr.Close()
	ctx := context.Background()

	err := lb.RecordRound(ctx, []Placement{
		{PlayerID: "", Won: true}, // bot
		{PlayerID: "p1", PlayerName: "Alice", Lost: true},
	})
	require.NoError(t, err)

	entries, err := lb.GetLeaderboard(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "p1", entries[0].PlayerID)
}

func TestLeaderboard_StreakBonus(t *testing.T) {
	t.Parallel()

	lb, mr := newTestLeaderboard(t)
	defer mr.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := lb.RecordRound(ctx, []Placement{
			{PlayerID: "p1", PlayerName: "Alice", Won: true},
		})
		require.NoError(t, err)
	}

	stats, err := lb.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 3, stats.MaxWinStreak)
	// Two plain wins plus one with the three-win bonus.
	assert.Equal(t, 3*WinPoints+StreakBonus3, stats.Score)
}

func TestLeaderboard_Ranking(t *testing.T) {
	t.Parallel()

	lb, mr := newTestLeaderboard(t)
	defer mr.Close()
	ctx := context.Background()

	err := lb.RecordRound(ctx, []Placement{
		{PlayerID: "p1", PlayerName: "Alice", Won: true},
		{PlayerID: "p2", PlayerName: "Bob"},
		{PlayerID: "p3", PlayerName: "Carol", Lost: true},
	})
	require.NoError(t, err)

	entries, err := lb.GetLeaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "p1", entries[0].PlayerID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 100.0, entries[0].WinRate)

	rank, err := lb.GetPlayerRank(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rank)

	rank, err = lb.GetPlayerRank(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), rank)
}

func TestLeaderboard_UnknownPlayerStats(t *testing.T) {
	t.Parallel()

	lb, mr := newTestLeaderboard(t)
	defer mr.Close()

	stats, err := lb.GetPlayerStats(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, stats)
}

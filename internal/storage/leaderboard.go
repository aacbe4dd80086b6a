package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis keys
const (
	playerStatsKey = "player:stats:"
	leaderboardKey = "leaderboard:score"
)

// PlayerStats is one player's cumulative record.
type PlayerStats struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`

	TotalRounds int `json:"total_rounds"`
	Wins        int `json:"wins"`   // finished first
	Losses      int `json:"losses"` // last seat holding cards

	Score int `json:"score"`

	CurrentStreak int `json:"current_streak"` // positive wins, negative losses
	MaxWinStreak  int `json:"max_win_streak"`

	LastPlayedAt int64 `json:"last_played_at"`
	CreatedAt    int64 `json:"created_at"`
}

// Scoring. A round ranks every seat: the first to empty a hand places
// first, the seat left holding cards places last. Points decay with
// placement and the loser pays.
const (
	WinPoints     = 20
	PlacePoints   = 8 // any non-first finish ahead of the loser
	LosePoints    = -15
	ForfeitPoints = -20

	StreakBonus3 = 5
	StreakBonus5 = 10
)

// LeaderboardEntry is one row of the ranked listing.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Score      int     `json:"score"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}

// Leaderboard persists player stats and the ranked score set in Redis.
type Leaderboard struct {
	redis *redis.Client
}

// NewLeaderboard wraps an existing Redis client.
func NewLeaderboard(client *redis.Client) *Leaderboard {
	return &Leaderboard{redis: client}
}

// GetPlayerStats fetches one player's record, or nil if never seen.
func (lb *Leaderboard) GetPlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	data, err := lb.redis.Get(ctx, playerStatsKey+playerID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SavePlayerStats writes one player's record.
func (lb *Leaderboard) SavePlayerStats(ctx context.Context, stats *PlayerStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return lb.redis.Set(ctx, playerStatsKey+stats.PlayerID, data, 0).Err()
}

func (lb *Leaderboard) getOrCreateStats(ctx context.Context, playerID, playerName string) (*PlayerStats, error) {
	stats, err := lb.GetPlayerStats(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &PlayerStats{
			PlayerID:   playerID,
			PlayerName: playerName,
			CreatedAt:  time.Now().Unix(),
		}
	}
	return stats, nil
}

// Placement is one player's outcome in a finished round.
type Placement struct {
	PlayerID   string
	PlayerName string
	Won        bool // emptied their hand first
	Lost       bool // last seat holding cards
	Forfeited  bool
}

func placementPoints(p Placement) int {
	switch {
	case p.Forfeited:
		return ForfeitPoints
	case p.Won:
		return WinPoints
	case p.Lost:
		return LosePoints
	default:
		return PlacePoints
	}
}

func streakBonus(streak int) int {
	switch {
	case streak >= 5:
		return StreakBonus5
	case streak >= 3:
		return StreakBonus3
	default:
		return 0
	}
}

// RecordRound applies one finished round to every named player and
// refreshes the ranked set.
func (lb *Leaderboard) RecordRound(ctx context.Context, placements []Placement) error {
	for _, p := range placements {
		if p.PlayerID == "" {
			continue // bot seat
		}
		stats, err := lb.getOrCreateStats(ctx, p.PlayerID, p.PlayerName)
		if err != nil {
			return err
		}

		stats.PlayerName = p.PlayerName
		stats.TotalRounds++
		stats.LastPlayedAt = time.Now().Unix()

		if p.Won {
			stats.Wins++
			stats.CurrentStreak = max(1, stats.CurrentStreak+1)
		} else {
			if p.Lost || p.Forfeited {
				stats.Losses++
			}
			stats.CurrentStreak = min(-1, stats.CurrentStreak-1)
		}
		if stats.CurrentStreak > stats.MaxWinStreak {
			stats.MaxWinStreak = stats.CurrentStreak
		}

		change := placementPoints(p) + streakBonus(stats.CurrentStreak)
		stats.Score = max(0, stats.Score+change)

		if err := lb.SavePlayerStats(ctx, stats); err != nil {
			return err
		}
		if err := lb.redis.ZAdd(ctx, leaderboardKey, redis.Z{
			Score:  float64(stats.Score),
			Member: stats.PlayerID,
		}).Err(); err != nil {
			return err
		}
	}
	return nil
}

// GetLeaderboard returns the top entries, highest score first.
func (lb *Leaderboard) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	results, err := lb.redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, result := range results {
		playerID, ok := result.Member.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected member type %T", result.Member)
		}
		stats, err := lb.GetPlayerStats(ctx, playerID)
		if err != nil || stats == nil {
			continue
		}

		winRate := 0.0
		if stats.TotalRounds > 0 {
			winRate = float64(stats.Wins) / float64(stats.TotalRounds) * 100
		}
		entries = append(entries, LeaderboardEntry{
			Rank:       i + 1,
			PlayerID:   playerID,
			PlayerName: stats.PlayerName,
			Score:      int(result.Score),
			Wins:       stats.Wins,
			WinRate:    winRate,
		})
	}
	return entries, nil
}

// GetPlayerRank returns a player's 1-based rank, or -1 when unranked.
func (lb *Leaderboard) GetPlayerRank(ctx context.Context, playerID string) (int64, error) {
	rank, err := lb.redis.ZRevRank(ctx, leaderboardKey, playerID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return -1, err
	}
	return rank + 1, nil
}

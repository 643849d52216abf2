package services

import (
	"sort"
	"sync"

	"stayinalign/internal/models"
)

// LeaderboardService ranks agents by their arena results.
type LeaderboardService struct {
	entries map[string]*models.LeaderboardEntry
	mu      sync.RWMutex
}

func NewLeaderboardService() *LeaderboardService {
	return &LeaderboardService{entries: make(map[string]*models.LeaderboardEntry)}
}

func (ls *LeaderboardService) RecordMatch(result *models.MatchResult) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	sides := map[int]string{models.Player1: result.Player1, models.Player2: result.Player2}
	for coin, agent := range sides {
		entry := ls.entry(agent)
		entry.Played++
		switch {
		case result.Winner == models.Empty:
			if result.Status == models.MatchStatusDraw {
				entry.Draws++
			}
		case result.Winner == coin:
			entry.Wins++
		default:
			entry.Losses++
			if result.Status == models.MatchStatusForfeit {
				entry.Forfeits++
			}
		}
		entry.WinRate = float64(entry.Wins) / float64(entry.Played) * 100
	}
}

func (ls *LeaderboardService) entry(agent string) *models.LeaderboardEntry {
	entry, ok := ls.entries[agent]
	if !ok {
		entry = &models.LeaderboardEntry{Agent: agent}
		ls.entries[agent] = entry
	}
	return entry
}

// GetLeaderboard returns at most limit entries, best win rate first.
func (ls *LeaderboardService) GetLeaderboard(limit int) []models.LeaderboardEntry {
	ls.mu.RLock()
	board := make([]models.LeaderboardEntry, 0, len(ls.entries))
	for _, entry := range ls.entries {
		board = append(board, *entry)
	}
	ls.mu.RUnlock()

	sort.Slice(board, func(i, j int) bool {
		if board[i].WinRate != board[j].WinRate {
			return board[i].WinRate > board[j].WinRate
		}
		if board[i].Wins != board[j].Wins {
			return board[i].Wins > board[j].Wins
		}
		return board[i].Agent < board[j].Agent
	})
	if limit > 0 && len(board) > limit {
		board = board[:limit]
	}
	return board
}

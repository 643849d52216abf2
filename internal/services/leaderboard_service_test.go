package services

import (
	"testing"

	"stayinalign/internal/models"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboard(t *testing.T) {
	ls := NewLeaderboardService()
	assert.Empty(t, ls.GetLeaderboard(10))

	ls.RecordMatch(&models.MatchResult{Player1: "StayinAlign", Player2: "Random", Status: models.MatchStatusWin, Winner: models.Player1})
	ls.RecordMatch(&models.MatchResult{Player1: "Random", Player2: "StayinAlign", Status: models.MatchStatusDraw})
	ls.RecordMatch(&models.MatchResult{Player1: "Classic", Player2: "Random", Status: models.MatchStatusForfeit, Winner: models.Player2})
	ls.RecordMatch(&models.MatchResult{Player1: "Classic", Player2: "StayinAlign", Status: models.MatchStatusCapped})

	board := ls.GetLeaderboard(10)
	require.Len(t, board, 3)

	assert.Equal(t, []string{"Random", "StayinAlign", "Classic"}, lo.Map(board, func(e models.LeaderboardEntry, _ int) string { return e.Agent }))
	assert.Equal(t, 3, board[0].Played)
	assert.Equal(t, []int{1, 1, 1}, []int{board[0].Wins, board[0].Losses, board[0].Draws})
	assert.InDelta(t, 33.33, board[0].WinRate, 0.01)
	assert.Equal(t, []int{1, 0, 1}, []int{board[1].Wins, board[1].Losses, board[1].Draws})
	assert.Equal(t, models.LeaderboardEntry{Agent: "Classic", Played: 2, Losses: 1, Forfeits: 1}, board[2])

	assert.Len(t, ls.GetLeaderboard(1), 1)
}

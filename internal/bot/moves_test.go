package bot

import (
	"testing"

	"stayinalign/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseBoard reads rows drawn top row first: X is player 1, O is player 2.
func parseBoard(t *testing.T, rows ...string) models.Board {
	t.Helper()
	require.Len(t, rows, models.Rows)
	var b models.Board
	for i, line := range rows {
		require.Len(t, line, models.Columns)
		row := models.Rows - 1 - i
		for col, ch := range line {
			switch ch {
			case 'X':
				b[row][col] = models.Player1
			case 'O':
				b[row][col] = models.Player2
			}
		}
	}
	return b
}

func TestLegalMoves(t *testing.T) {
	t.Run("empty board lands every column on row 0", func(t *testing.T) {
		b := models.NewBoard()
		moves := LegalMoves(&b)
		require.Len(t, moves, models.Columns)
		for col, m := range moves {
			assert.Equal(t, models.Move{Col: col, Row: 0}, m)
		}
	})

	t.Run("full columns are skipped and stacks land on top", func(t *testing.T) {
		b := parseBoard(t,
			"..X....",
			"..O....",
			"..X....",
			"..O.X..",
			"..X.O..",
			"..OXX..",
		)
		moves := LegalMoves(&b)
		require.Len(t, moves, 6)

		seen := map[int]bool{}
		for _, m := range moves {
			assert.False(t, seen[m.Col], "column %d listed twice", m.Col)
			seen[m.Col] = true
			assert.Equal(t, models.Empty, b[m.Row][m.Col])
			if m.Row > 0 {
				assert.NotEqual(t, models.Empty, b[m.Row-1][m.Col], "move must land on the lowest empty row")
			}
		}
		assert.False(t, seen[2])
		assert.Equal(t, models.Move{Col: 3, Row: 1}, moves[2])
		assert.Equal(t, models.Move{Col: 4, Row: 3}, moves[3])
	})
}

func TestLineCounts(t *testing.T) {
	b := parseBoard(t,
		".......",
		".......",
		".......",
		"...X...",
		"..XX...",
		".XXXO..",
	)
	assert.Equal(t, 3, countHorizontal(&b, 1, 0, models.Player1))
	assert.Equal(t, 1, countHorizontal(&b, 4, 0, models.Player2))
	assert.Equal(t, 3, countVertical(&b, 3, 0, models.Player1))
	assert.Equal(t, 3, countDiagonal(&b, 1, 0, models.Player1))
	assert.Equal(t, 0, countDirection(&b, 6, 5, 1, 1, models.Player1), "walks stop at the edge")
}

func TestIsWinningMove(t *testing.T) {
	tests := []struct {
		name  string
		board []string
		move  models.Move
		owner int
		wins  bool
	}{
		{
			name: "horizontal",
			board: []string{
				".......",
				".......",
				".......",
				".......",
				".......",
				"XXX....",
			},
			move: models.Move{Col: 3, Row: 0}, owner: models.Player1, wins: true,
		},
		{
			name: "horizontal gap filled",
			board: []string{
				".......",
				".......",
				".......",
				".......",
				".......",
				"OO.O...",
			},
			move: models.Move{Col: 2, Row: 0}, owner: models.Player2, wins: true,
		},
		{
			name: "vertical",
			board: []string{
				".......",
				".......",
				".......",
				".....O.",
				".....O.",
				".....O.",
			},
			move: models.Move{Col: 5, Row: 3}, owner: models.Player2, wins: true,
		},
		{
			name: "rising diagonal",
			board: []string{
				".......",
				".......",
				".......",
				"..XO...",
				".XOO...",
				"XOOX...",
			},
			move: models.Move{Col: 3, Row: 3}, owner: models.Player1, wins: true,
		},
		{
			name: "falling diagonal",
			board: []string{
				".......",
				".......",
				".......",
				"...OX..",
				"...OOX.",
				"...XOOX",
			},
			move: models.Move{Col: 3, Row: 3}, owner: models.Player1, wins: true,
		},
		{
			name: "three is not enough",
			board: []string{
				".......",
				".......",
				".......",
				".......",
				".......",
				"XX.....",
			},
			move: models.Move{Col: 2, Row: 0}, owner: models.Player1, wins: false,
		},
		{
			name: "other owner's line does not count",
			board: []string{
				".......",
				".......",
				".......",
				".......",
				".......",
				"XXX....",
			},
			move: models.Move{Col: 3, Row: 0}, owner: models.Player2, wins: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := parseBoard(t, tt.board...)
			before := b
			assert.Equal(t, tt.wins, isWinningMove(&b, tt.move, tt.owner))
			assert.Equal(t, before, b, "board must be restored")
		})
	}
}

func TestPlaceUndo(t *testing.T) {
	b := models.NewBoard()
	m := models.Move{Col: 4, Row: 0}

	undo := place(&b, m, models.Player2)
	require.Equal(t, models.Player2, b[0][4])
	undo()
	assert.Equal(t, models.NewBoard(), b)
}

package bot

import (
	"stayinalign/internal/models"

	"github.com/samber/lo"
)

// blast lists the cells a bomb clears, relative to its center.
var blast = [...][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// ApplyBombs returns a copy of board with every bomb exploded and the
// surviving pieces settled by gravity. The caller's board is never touched.
func ApplyBombs(board models.Board, bombs []models.Bomb) models.Board {
	for _, bomb := range bombs {
		for _, d := range blast {
			row, col := bomb.Row+d[0], bomb.Col+d[1]
			if models.InBounds(row, col) {
				board[row][col] = models.Empty
			}
		}
	}
	applyGravity(&board)
	return board
}

// applyGravity restacks each column from row 0 keeping the pieces' order.
func applyGravity(board *models.Board) {
	for col := 0; col < models.Columns; col++ {
		settled := 0
		for row := 0; row < models.Rows; row++ {
			owner := board[row][col]
			if owner == models.Empty {
				continue
			}
			board[row][col] = models.Empty
			board[settled][col] = owner
			settled++
		}
	}
}

// bombsWithin returns the bombs detonating no later than depth rounds after
// round.
func bombsWithin(bombs []models.Bomb, round, depth int) []models.Bomb {
	return lo.Filter(bombs, func(b models.Bomb, _ int) bool {
		return b.ExplodeInRound-round <= depth
	})
}

// BombsDue returns the bombs that explode exactly in round.
func BombsDue(bombs []models.Bomb, round int) []models.Bomb {
	return lo.Filter(bombs, func(b models.Bomb, _ int) bool {
		return b.ExplodeInRound == round
	})
}

package bot

import "stayinalign/internal/models"

// winLength is the number of aligned pieces that wins.
const winLength = 4

// LegalMoves returns the landing cell of every non-full column, ordered by
// column.
func LegalMoves(board *models.Board) []models.Move {
	moves := make([]models.Move, 0, models.Columns)
	for col := 0; col < models.Columns; col++ {
		for row := 0; row < models.Rows; row++ {
			if board[row][col] == models.Empty {
				moves = append(moves, models.Move{Col: col, Row: row})
				break
			}
		}
	}
	return moves
}

// place puts owner's piece on m and returns the func restoring the cell.
func place(board *models.Board, m models.Move, owner int) (undo func()) {
	prev := board[m.Row][m.Col]
	board[m.Row][m.Col] = owner
	return func() {
		board[m.Row][m.Col] = prev
	}
}

// countDirection counts owner's consecutive pieces starting next to
// (col, row) and walking by (dCol, dRow).
func countDirection(board *models.Board, col, row, dCol, dRow, owner int) int {
	count := 0
	col += dCol
	row += dRow
	for models.InBounds(row, col) && board[row][col] == owner {
		count++
		col += dCol
		row += dRow
	}
	return count
}

func countHorizontal(board *models.Board, col, row, owner int) int {
	return 1 + countDirection(board, col, row, 1, 0, owner) + countDirection(board, col, row, -1, 0, owner)
}

func countVertical(board *models.Board, col, row, owner int) int {
	return 1 + countDirection(board, col, row, 0, 1, owner) + countDirection(board, col, row, 0, -1, owner)
}

func countDiagonal(board *models.Board, col, row, owner int) int {
	rising := countDirection(board, col, row, 1, 1, owner) + countDirection(board, col, row, -1, -1, owner)
	falling := countDirection(board, col, row, 1, -1, owner) + countDirection(board, col, row, -1, 1, owner)
	return 1 + max(rising, falling)
}

// lineLength is the longest line of owner's pieces through the cell of m.
func lineLength(board *models.Board, m models.Move, owner int) int {
	return max(
		countHorizontal(board, m.Col, m.Row, owner),
		countVertical(board, m.Col, m.Row, owner),
		countDiagonal(board, m.Col, m.Row, owner),
	)
}

func isWinningMove(board *models.Board, m models.Move, owner int) bool {
	undo := place(board, m, owner)
	defer undo()
	return lineLength(board, m, owner) >= winLength
}

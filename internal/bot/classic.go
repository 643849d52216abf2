package bot

import (
	"math"

	"stayinalign/internal/models"
)

const classicDepth = 5

// Classic is the window-scoring minimax bot the backend shipped with. It
// searches on board copies and serves as an arena benchmark.
type Classic struct {
	depth int
}

func NewClassic(opts ...Option) *Classic {
	return &Classic{depth: newOptions(opts).depthOr(classicDepth)}
}

func (c *Classic) Name() string {
	return ClassicName
}

func (c *Classic) Decide(state models.PlayState) int {
	me := state.CoinID
	opp := models.Opponent(me)
	board := state.Board

	if col := findWinningMove(board, me); col != -1 {
		return col
	}
	if col := findWinningMove(board, opp); col != -1 {
		return col
	}

	s := classicSearch{me: me, opp: opp}
	bestScore := math.Inf(-1)
	bestCol := -1

	for col := 0; col < models.Columns; col++ {
		if !board.IsValidMove(col) {
			continue
		}
		boardCopy := board.Copy()
		boardCopy.DropDisc(col, me)
		score := s.minimax(boardCopy, c.depth-1, math.Inf(-1), math.Inf(1), false)
		if col == centerColumn {
			score += 0.1
		}
		if score > bestScore {
			bestScore = score
			bestCol = col
		}
	}

	if bestCol == -1 {
		if board.IsValidMove(centerColumn) {
			return centerColumn
		}
		for col := 0; col < models.Columns; col++ {
			if board.IsValidMove(col) {
				return col
			}
		}
		return centerColumn
	}
	return bestCol
}

func findWinningMove(board models.Board, playerNum int) int {
	for col := 0; col < models.Columns; col++ {
		if !board.IsValidMove(col) {
			continue
		}
		boardCopy := board.Copy()
		row := boardCopy.DropDisc(col, playerNum)
		if boardCopy.CheckWin(row, col) {
			return col
		}
	}
	return -1
}

type classicSearch struct {
	me  int
	opp int
}

func (s classicSearch) minimax(board models.Board, depth int, alpha, beta float64, isMaximizing bool) float64 {
	if depth == 0 || board.IsFull() {
		return s.evaluateBoard(board)
	}

	if isMaximizing {
		maxEval := math.Inf(-1)
		for col := 0; col < models.Columns; col++ {
			if !board.IsValidMove(col) {
				continue
			}
			boardCopy := board.Copy()
			row := boardCopy.DropDisc(col, s.me)
			if boardCopy.CheckWin(row, col) {
				return 1000.0 + float64(depth)
			}
			eval := s.minimax(boardCopy, depth-1, alpha, beta, false)
			maxEval = math.Max(maxEval, eval)
			alpha = math.Max(alpha, eval)
			if beta <= alpha {
				break
			}
		}
		return maxEval
	}

	minEval := math.Inf(1)
	for col := 0; col < models.Columns; col++ {
		if !board.IsValidMove(col) {
			continue
		}
		boardCopy := board.Copy()
		row := boardCopy.DropDisc(col, s.opp)
		if boardCopy.CheckWin(row, col) {
			return -1000.0 - float64(depth)
		}
		eval := s.minimax(boardCopy, depth-1, alpha, beta, true)
		minEval = math.Min(minEval, eval)
		beta = math.Min(beta, eval)
		if beta <= alpha {
			break
		}
	}
	return minEval
}

// evaluateBoard sums the score of every 4-cell window on the board.
func (s classicSearch) evaluateBoard(board models.Board) float64 {
	score := 0.0
	for row := 0; row < models.Rows; row++ {
		for col := 0; col <= models.Columns-winLength; col++ {
			window := [winLength]int{board[row][col], board[row][col+1], board[row][col+2], board[row][col+3]}
			score += s.evaluateWindow(window)
		}
	}
	for col := 0; col < models.Columns; col++ {
		for row := 0; row <= models.Rows-winLength; row++ {
			window := [winLength]int{board[row][col], board[row+1][col], board[row+2][col], board[row+3][col]}
			score += s.evaluateWindow(window)
		}
	}
	for row := winLength - 1; row < models.Rows; row++ {
		for col := 0; col <= models.Columns-winLength; col++ {
			window := [winLength]int{board[row][col], board[row-1][col+1], board[row-2][col+2], board[row-3][col+3]}
			score += s.evaluateWindow(window)
		}
	}
	for row := 0; row <= models.Rows-winLength; row++ {
		for col := 0; col <= models.Columns-winLength; col++ {
			window := [winLength]int{board[row][col], board[row+1][col+1], board[row+2][col+2], board[row+3][col+3]}
			score += s.evaluateWindow(window)
		}
	}
	return score
}

func (s classicSearch) evaluateWindow(window [winLength]int) float64 {
	score := 0.0
	mine, theirs, empty := 0, 0, 0
	for _, cell := range window {
		switch cell {
		case s.me:
			mine++
		case s.opp:
			theirs++
		default:
			empty++
		}
	}
	switch {
	case mine == 4:
		score += 100
	case mine == 3 && empty == 1:
		score += 10
	case mine == 2 && empty == 2:
		score += 5
	}
	if theirs == 3 && empty == 1 {
		score -= 80
	}
	return score
}

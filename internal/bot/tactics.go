package bot

import (
	"stayinalign/internal/models"

	"github.com/samber/lo"
)

// All classifiers below take the board by pointer and explore it with
// paired place/undo calls; the board is unchanged when they return.

// WinningMoves returns the columns of the moves that complete a line of four
// for owner.
func WinningMoves(board *models.Board, owner int, moves []models.Move) []int {
	return lo.FilterMap(moves, func(m models.Move, _ int) (int, bool) {
		return m.Col, isWinningMove(board, m, owner)
	})
}

// LosingMoves returns the columns where the opponent would win, i.e. the
// forced blocks.
func LosingMoves(board *models.Board, owner int, moves []models.Move) []int {
	return WinningMoves(board, models.Opponent(owner), moves)
}

// DangerousMoves returns the columns whose move lets the opponent win with
// the very next reply.
func DangerousMoves(board *models.Board, owner int, moves []models.Move) []int {
	return lo.FilterMap(moves, func(m models.Move, _ int) (int, bool) {
		return m.Col, givesOpponentWin(board, owner, m)
	})
}

func givesOpponentWin(board *models.Board, owner int, m models.Move) bool {
	undo := place(board, m, owner)
	defer undo()
	return len(WinningMoves(board, models.Opponent(owner), LegalMoves(board))) > 0
}

// DoubleThreatMoves returns the columns after which some opponent reply
// leaves owner with two or more winning columns.
func DoubleThreatMoves(board *models.Board, owner int, moves []models.Move) []int {
	return lo.FilterMap(moves, func(m models.Move, _ int) (int, bool) {
		return m.Col, createsDoubleThreat(board, owner, m)
	})
}

func createsDoubleThreat(board *models.Board, owner int, m models.Move) bool {
	undo := place(board, m, owner)
	defer undo()

	opponent := models.Opponent(owner)
	for _, reply := range LegalMoves(board) {
		if winsAfterReply(board, owner, opponent, reply) >= 2 {
			return true
		}
	}
	return false
}

func winsAfterReply(board *models.Board, owner, opponent int, reply models.Move) int {
	undo := place(board, reply, opponent)
	defer undo()
	return len(WinningMoves(board, owner, LegalMoves(board)))
}

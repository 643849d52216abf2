package bot

import (
	"stayinalign/internal/models"

	"github.com/samber/lo"
)

const (
	rootWinScore = 1000
	winScore     = 500
	scoreBound   = 10000

	immediateWinWeight = 50
	doubleThreatWeight = 10
	bombWeight         = 20
)

// centerOrder breaks ties between equally scored root moves.
var centerOrder = [models.Columns]int{3, 2, 4, 1, 5, 0, 6}

// searcher runs a depth-limited alpha-beta search for one decision. Scores
// are from me's point of view.
type searcher struct {
	me    int
	depth int
	bombs []models.Bomb
	nodes int
}

func newSearcher(me, depth int, bombs []models.Bomb) *searcher {
	return &searcher{me: me, depth: depth, bombs: bombs}
}

// bestColumn scores every candidate and returns the best one, preferring
// central columns on ties.
func (s *searcher) bestColumn(board *models.Board, candidates []models.Move, round int) (int, bool) {
	if len(candidates) == 0 {
		return -1, false
	}

	scores := make(map[int]int, len(candidates))
	for _, m := range candidates {
		scores[m.Col] = s.scoreRoot(board, m, round)
	}

	best := lo.Max(lo.Values(scores))
	for _, col := range centerOrder {
		if score, ok := scores[col]; ok && score == best {
			return col, true
		}
	}
	return -1, false
}

func (s *searcher) scoreRoot(board *models.Board, m models.Move, round int) int {
	undo := place(board, m, s.me)
	defer undo()

	if lineLength(board, m, s.me) >= winLength {
		return rootWinScore
	}
	return s.score(board, models.Opponent(s.me), s.depth-1, -scoreBound, scoreBound, round+1)
}

func (s *searcher) score(board *models.Board, player, depth, alpha, beta, round int) int {
	s.nodes++
	moves := LegalMoves(board)
	if depth <= 0 || len(moves) == 0 {
		return s.heuristic(board, depth, round)
	}

	maximizing := player == s.me
	best := scoreBound
	if maximizing {
		best = -scoreBound
	}
	for _, m := range moves {
		value := s.scoreMove(board, m, player, depth, alpha, beta, round)
		if maximizing {
			best = max(best, value)
			alpha = max(alpha, best)
		} else {
			best = min(best, value)
			beta = min(beta, best)
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

func (s *searcher) scoreMove(board *models.Board, m models.Move, player, depth, alpha, beta, round int) int {
	undo := place(board, m, player)
	defer undo()

	if lineLength(board, m, player) >= winLength {
		if player == s.me {
			return winScore
		}
		return -winScore
	}
	return s.score(board, models.Opponent(player), depth-1, alpha, beta, round+1)
}

func (s *searcher) heuristic(board *models.Board, depth, round int) int {
	opponent := models.Opponent(s.me)
	moves := LegalMoves(board)

	myWins := len(WinningMoves(board, s.me, moves))
	threats := len(DoubleThreatMoves(board, s.me, moves))
	oppWins := len(WinningMoves(board, opponent, moves))

	score := immediateWinWeight*myWins + doubleThreatWeight*threats - immediateWinWeight*oppWins
	return score + s.bombScore(board, depth, round)
}

// bombScore projects the bombs detonating within the remaining depth and
// compares both sides' immediate wins on the projected board.
func (s *searcher) bombScore(board *models.Board, depth, round int) int {
	pending := bombsWithin(s.bombs, round, depth)
	if len(pending) == 0 {
		return 0
	}

	projected := ApplyBombs(*board, pending)
	moves := LegalMoves(&projected)
	myWins := len(WinningMoves(&projected, s.me, moves))
	oppWins := len(WinningMoves(&projected, models.Opponent(s.me), moves))
	return bombWeight * (myWins - oppWins)
}

package bot

import (
	"stayinalign/internal/models"
	"stayinalign/pkg/logger"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

const (
	centerColumn  = 3
	openingRounds = 2
)

// StayinAlign runs a fixed pipeline of tactical checks and falls back to an
// alpha-beta search that is aware of pending bombs.
type StayinAlign struct {
	depth int
	rng   *rand.Rand
}

func NewStayinAlign(opts ...Option) *StayinAlign {
	o := newOptions(opts)
	return &StayinAlign{
		depth: o.depthOr(DefaultDepth),
		rng:   o.rand(),
	}
}

func (a *StayinAlign) Name() string {
	return StayinAlignName
}

func (a *StayinAlign) Decide(state models.PlayState) int {
	return a.Explain(state).Column
}

func (a *StayinAlign) Explain(state models.PlayState) Decision {
	board := state.Board
	me := state.CoinID
	moves := LegalMoves(&board)

	logger.Log.Debug("StayinAlign deciding",
		zap.Int("coin_id", me),
		zap.Int("round", state.Round),
		zap.Int("bombs", len(state.Bombs)),
		zap.Stringer("board", &board),
	)

	if len(moves) == 0 {
		return a.decided(Decision{Column: a.rng.Intn(models.Columns), Stage: StageNoMoves})
	}

	if state.Round >= 1 && state.Round <= openingRounds && board.IsValidMove(centerColumn) {
		return a.decided(Decision{Column: centerColumn, Stage: StageOpening})
	}

	if wins := WinningMoves(&board, me, moves); len(wins) > 0 {
		return a.decided(Decision{Column: wins[0], Stage: StageWin})
	}

	if blocks := LosingMoves(&board, me, moves); len(blocks) > 0 {
		return a.decided(Decision{Column: blocks[0], Stage: StageBlock})
	}

	candidates := moves
	if danger := DangerousMoves(&board, me, moves); len(danger) > 0 {
		safe := lo.Filter(moves, func(m models.Move, _ int) bool {
			return !lo.Contains(danger, m.Col)
		})
		// Every move hands over a win: keep them all rather than none.
		if len(safe) > 0 {
			candidates = safe
		}
	}

	if threats := DoubleThreatMoves(&board, me, candidates); len(threats) > 0 {
		return a.decided(Decision{Column: threats[0], Stage: StageDoubleThreat})
	}

	s := newSearcher(me, a.depth, state.Bombs)
	if col, ok := s.bestColumn(&board, candidates, state.Round); ok {
		logger.Log.Debug("Search finished", zap.Int("nodes", s.nodes), zap.Int("depth", a.depth))
		return a.decided(Decision{Column: col, Stage: StageSearch})
	}

	return a.decided(a.fallback(candidates, moves))
}

// fallback prefers the center column, then a uniform pick among the
// candidates, then among all legal moves.
func (a *StayinAlign) fallback(candidates, moves []models.Move) Decision {
	if lo.ContainsBy(candidates, func(m models.Move) bool { return m.Col == centerColumn }) {
		return Decision{Column: centerColumn, Stage: StageCenter}
	}
	pool := candidates
	if len(pool) == 0 {
		pool = moves
	}
	if len(pool) == 0 {
		return Decision{Column: a.rng.Intn(models.Columns), Stage: StageNoMoves}
	}
	return Decision{Column: pool[a.rng.Intn(len(pool))].Col, Stage: StageRandom}
}

func (a *StayinAlign) decided(d Decision) Decision {
	logger.Log.Debug("StayinAlign decided", zap.Int("column", d.Column), zap.String("stage", string(d.Stage)))
	return d
}

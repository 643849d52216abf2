package bot

import (
	"stayinalign/internal/models"

	"golang.org/x/exp/rand"
)

// Random plays a uniformly chosen legal column. It is the baseline agents
// are compared against in the arena.
type Random struct {
	rng *rand.Rand
}

func NewRandom(opts ...Option) *Random {
	return &Random{rng: newOptions(opts).rand()}
}

func (r *Random) Name() string {
	return RandomName
}

func (r *Random) Decide(state models.PlayState) int {
	moves := LegalMoves(&state.Board)
	if len(moves) == 0 {
		return r.rng.Intn(models.Columns)
	}
	return moves[r.rng.Intn(len(moves))].Col
}

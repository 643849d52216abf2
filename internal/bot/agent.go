package bot

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"stayinalign/internal/models"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

const (
	StayinAlignName = "StayinAlign"
	ClassicName     = "Classic"
	RandomName      = "Random"

	DefaultDepth = 3
)

var ErrUnknownAgent = errors.New("unknown agent")

// Agent picks a column for the acting player of a PlayState.
type Agent interface {
	Name() string
	Decide(state models.PlayState) int
}

type Stage string

const (
	StageNoMoves      Stage = "no-moves"
	StageOpening      Stage = "opening"
	StageWin          Stage = "win"
	StageBlock        Stage = "block"
	StageDoubleThreat Stage = "double-threat"
	StageSearch       Stage = "search"
	StageCenter       Stage = "center"
	StageRandom       Stage = "random"
	// StageUnexplained marks agents that do not implement Explainer.
	StageUnexplained Stage = "unexplained"
)

type Decision struct {
	Column int
	Stage  Stage
}

// Explainer is implemented by agents that can report why they chose a
// column.
type Explainer interface {
	Explain(state models.PlayState) Decision
}

// Explain asks agent for its decision and the stage behind it when the
// agent supports it.
func Explain(agent Agent, state models.PlayState) Decision {
	if e, ok := agent.(Explainer); ok {
		return e.Explain(state)
	}
	return Decision{Column: agent.Decide(state), Stage: StageUnexplained}
}

type Factory func(opts ...Option) Agent

var registry = map[string]Factory{
	StayinAlignName: func(opts ...Option) Agent { return NewStayinAlign(opts...) },
	ClassicName:     func(opts ...Option) Agent { return NewClassic(opts...) },
	RandomName:      func(opts ...Option) Agent { return NewRandom(opts...) },
}

func New(name string, opts ...Option) (Agent, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, name)
	}
	return factory(opts...), nil
}

// Names returns the registered agent names, sorted.
func Names() []string {
	names := lo.Keys(registry)
	sort.Strings(names)
	return names
}

type options struct {
	depth int
	seed  uint64
}

type Option func(*options)

// WithDepth sets the search depth in plies. Non-positive values keep the
// agent's default.
func WithDepth(depth int) Option {
	return func(o *options) {
		o.depth = depth
	}
}

// WithSeed makes the agent's random choices reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

func newOptions(opts []Option) options {
	o := options{seed: uint64(time.Now().UnixNano())}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) depthOr(fallback int) int {
	if o.depth > 0 {
		return o.depth
	}
	return fallback
}

func (o options) rand() *rand.Rand {
	return rand.New(rand.NewSource(o.seed))
}

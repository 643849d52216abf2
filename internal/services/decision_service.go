package services

import (
	"fmt"
	"time"

	"stayinalign/internal/bot"
	"stayinalign/internal/config"
	"stayinalign/internal/models"
	"stayinalign/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DecisionStore interface {
	SaveDecision(decision *models.Decision) error
}

type EventPublisher interface {
	PublishDecisionMade(event models.DecisionMadeEvent) error
}

// recorder persists and publishes decisions. Both sinks are optional and
// failures are logged only: the move has already been chosen.
type recorder struct {
	store  DecisionStore
	events EventPublisher
}

func (r recorder) record(decision *models.Decision) {
	if r.store != nil {
		if err := r.store.SaveDecision(decision); err != nil {
			logger.Log.Error("Failed to save decision", zap.Error(err))
		}
	}
	if r.events != nil {
		if err := r.events.PublishDecisionMade(models.NewDecisionMadeEvent(decision)); err != nil {
			logger.Log.Error("Failed to publish decision", zap.Error(err))
		}
	}
}

// DecisionService answers play requests with an agent's move.
type DecisionService struct {
	config *config.Config
	recorder
}

func NewDecisionService(cfg *config.Config, store DecisionStore, events EventPublisher) *DecisionService {
	return &DecisionService{
		config:   cfg,
		recorder: recorder{store: store, events: events},
	}
}

func (ds *DecisionService) Play(req *models.PlayRequest) (*models.PlayResponse, error) {
	state, err := req.ToPlayState()
	if err != nil {
		return nil, err
	}

	name := req.Agent
	if name == "" {
		name = ds.config.Bot.Agent
	}
	agent, err := newAgent(ds.config, name, ds.config.Bot.Seed)
	if err != nil {
		return nil, err
	}

	gameID := uuid.New()
	if req.GameID != nil {
		gameID = *req.GameID
	}

	decision := decide(agent, gameID, state)
	logger.Log.Info("Decision made",
		zap.String("decision_id", decision.ID.String()),
		zap.String("game_id", gameID.String()),
		zap.String("agent", decision.Agent),
		zap.Int("round", decision.Round),
		zap.Int("column", decision.Column),
		zap.String("stage", decision.Stage),
		zap.Float64("duration_ms", decision.DurationMs),
	)
	ds.record(decision)

	return &models.PlayResponse{
		DecisionID: decision.ID,
		GameID:     gameID,
		Agent:      decision.Agent,
		Column:     decision.Column,
		Stage:      decision.Stage,
		DurationMs: decision.DurationMs,
	}, nil
}

func (ds *DecisionService) Agents() []string {
	return bot.Names()
}

// decide times one agent decision and wraps it in a Decision record.
func decide(agent bot.Agent, gameID uuid.UUID, state models.PlayState) *models.Decision {
	start := time.Now()
	d := bot.Explain(agent, state)
	elapsed := time.Since(start)

	return &models.Decision{
		ID:         uuid.New(),
		GameID:     gameID,
		Agent:      agent.Name(),
		CoinID:     state.CoinID,
		Round:      state.Round,
		Column:     d.Column,
		Stage:      string(d.Stage),
		BombCount:  len(state.Bombs),
		Board:      state.Board,
		DurationMs: float64(elapsed.Microseconds()) / 1000,
		CreatedAt:  start,
	}
}

// newAgent builds a fresh agent per call so requests never share a random
// source.
func newAgent(cfg *config.Config, name string, seed uint64) (bot.Agent, error) {
	opts := []bot.Option{bot.WithDepth(cfg.Bot.SearchDepth)}
	if seed != 0 {
		opts = append(opts, bot.WithSeed(seed))
	}
	agent, err := bot.New(name, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	return agent, nil
}

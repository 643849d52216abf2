package services

import (
	"errors"
	"sync"
	"time"

	"stayinalign/internal/bot"
	"stayinalign/internal/config"
	"stayinalign/internal/models"
	"stayinalign/pkg/logger"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

var ErrMatchNotFound = errors.New("match not found")

// ArenaService plays whole games between two registered agents, applying
// scheduled bombs at their detonation round.
type ArenaService struct {
	config      *config.Config
	matches     map[uuid.UUID]*models.MatchResult
	mu          sync.RWMutex
	leaderboard *LeaderboardService
	recorder
}

// NewArenaService accepts a nil leaderboard.
func NewArenaService(cfg *config.Config, store DecisionStore, events EventPublisher, leaderboard *LeaderboardService) *ArenaService {
	return &ArenaService{
		config:      cfg,
		matches:     make(map[uuid.UUID]*models.MatchResult),
		leaderboard: leaderboard,
		recorder:    recorder{store: store, events: events},
	}
}

func (as *ArenaService) PlayMatch(req *models.MatchRequest) (*models.MatchResult, error) {
	agents := map[int]bot.Agent{}
	for coin, name := range map[int]string{models.Player1: req.Player1, models.Player2: req.Player2} {
		agent, err := newAgent(as.config, name, matchSeed(req.Seed, as.config.Bot.Seed, coin))
		if err != nil {
			return nil, err
		}
		agents[coin] = agent
	}

	maxMoves := req.MaxMoves
	if maxMoves <= 0 {
		maxMoves = as.config.Arena.MaxMoves
	}

	result := &models.MatchResult{
		GameID:    uuid.New(),
		Player1:   agents[models.Player1].Name(),
		Player2:   agents[models.Player2].Name(),
		Status:    models.MatchStatusCapped,
		Moves:     []models.MatchMove{},
		StartedAt: time.Now(),
	}
	logger.Log.Info("Match started",
		zap.String("game_id", result.GameID.String()),
		zap.String("player1", result.Player1),
		zap.String("player2", result.Player2),
		zap.Int("bombs", len(req.Bombs)),
	)

	board := as.play(result, agents, models.ParseBombs(req.Bombs), maxMoves)

	result.Board = board.Rows()
	result.CompletedAt = time.Now()
	if result.Winner != models.Empty {
		result.WinnerAgent = agents[result.Winner].Name()
	}

	as.mu.Lock()
	as.matches[result.GameID] = result
	as.mu.Unlock()
	if as.leaderboard != nil {
		as.leaderboard.RecordMatch(result)
	}

	logger.Log.Info("Match completed",
		zap.String("game_id", result.GameID.String()),
		zap.String("status", string(result.Status)),
		zap.Int("winner", result.Winner),
		zap.Int("moves", len(result.Moves)),
	)
	return result, nil
}

// play runs the game loop and fills result's status, winner and moves.
func (as *ArenaService) play(result *models.MatchResult, agents map[int]bot.Agent, bombs []models.Bomb, maxMoves int) models.Board {
	board := models.NewBoard()

	for round := 1; round <= maxMoves; round++ {
		if due := bot.BombsDue(bombs, round); len(due) > 0 {
			board = bot.ApplyBombs(board, due)
			logger.Log.Debug("Bombs exploded", zap.Int("round", round), zap.Int("count", len(due)))
			if winner := board.Winner(); winner != models.Empty {
				result.Status, result.Winner = models.MatchStatusWin, winner
				return board
			}
		}

		coin := models.Player1
		if round%2 == 0 {
			coin = models.Player2
		}
		pending := lo.Filter(bombs, func(b models.Bomb, _ int) bool {
			return b.ExplodeInRound > round
		})
		state := models.PlayState{Board: board, CoinID: coin, Round: round, Bombs: pending}

		decision := decide(agents[coin], result.GameID, state)
		as.record(decision)

		if !board.IsValidMove(decision.Column) {
			logger.Log.Warn("Illegal move, forfeiting",
				zap.String("agent", decision.Agent),
				zap.Int("column", decision.Column),
			)
			result.Status, result.Winner = models.MatchStatusForfeit, models.Opponent(coin)
			return board
		}

		row := board.DropDisc(decision.Column, coin)
		result.Moves = append(result.Moves, models.MatchMove{
			Round:  round,
			CoinID: coin,
			Agent:  decision.Agent,
			Column: decision.Column,
			Row:    row,
			Stage:  decision.Stage,
		})

		if board.CheckWin(row, decision.Column) {
			result.Status, result.Winner = models.MatchStatusWin, coin
			return board
		}
		if board.IsFull() {
			result.Status = models.MatchStatusDraw
			return board
		}
	}
	return board
}

func (as *ArenaService) GetMatch(gameID uuid.UUID) (*models.MatchResult, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()
	match, exists := as.matches[gameID]
	if !exists {
		return nil, ErrMatchNotFound
	}
	return match, nil
}

// matchSeed gives each side its own reproducible stream when a seed is set.
func matchSeed(reqSeed, cfgSeed uint64, coin int) uint64 {
	seed := reqSeed
	if seed == 0 {
		seed = cfgSeed
	}
	if seed == 0 {
		return 0
	}
	return seed + uint64(coin)
}

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Bomb clears its center cell and the four orthogonal neighbours when it
// explodes.
type Bomb struct {
	Row            int `json:"row"`
	Col            int `json:"col"`
	ExplodeInRound int `json:"explode_in_round"`
}

// PlayState is the snapshot an agent decides on.
type PlayState struct {
	Board  Board
	CoinID int
	Round  int
	Bombs  []Bomb
}

type BombPayload struct {
	Row            *int `json:"row"`
	Col            *int `json:"col"`
	ExplodeInRound int  `json:"explode_in_round"`
}

type PlayRequest struct {
	GameID *uuid.UUID    `json:"game_id,omitempty"`
	Agent  string        `json:"agent,omitempty"`
	Board  [][]int       `json:"board" binding:"required"`
	CoinID int           `json:"coin_id" binding:"required"`
	Round  int           `json:"round"`
	Bombs  []BombPayload `json:"bombs"`
}

// ToPlayState validates the request. Bombs without a row or a column are
// dropped.
func (r *PlayRequest) ToPlayState() (PlayState, error) {
	board, err := BoardFromRows(r.Board)
	if err != nil {
		return PlayState{}, err
	}
	if r.CoinID != Player1 && r.CoinID != Player2 {
		return PlayState{}, fmt.Errorf("%w: %d", ErrInvalidCoin, r.CoinID)
	}
	return PlayState{
		Board:  board,
		CoinID: r.CoinID,
		Round:  r.Round,
		Bombs:  ParseBombs(r.Bombs),
	}, nil
}

func ParseBombs(payloads []BombPayload) []Bomb {
	bombs := make([]Bomb, 0, len(payloads))
	for _, p := range payloads {
		if p.Row == nil || p.Col == nil {
			continue
		}
		bombs = append(bombs, Bomb{Row: *p.Row, Col: *p.Col, ExplodeInRound: p.ExplodeInRound})
	}
	return bombs
}

type PlayResponse struct {
	DecisionID uuid.UUID `json:"decision_id"`
	GameID     uuid.UUID `json:"game_id"`
	Agent      string    `json:"agent"`
	Column     int       `json:"column"`
	Stage      string    `json:"stage"`
	DurationMs float64   `json:"duration_ms"`
}

// Decision is one agent move as stored and published.
type Decision struct {
	ID         uuid.UUID `json:"id" db:"id"`
	GameID     uuid.UUID `json:"game_id" db:"game_id"`
	Agent      string    `json:"agent" db:"agent"`
	CoinID     int       `json:"coin_id" db:"coin_id"`
	Round      int       `json:"round" db:"round"`
	Column     int       `json:"column" db:"column_index"`
	Stage      string    `json:"stage" db:"stage"`
	BombCount  int       `json:"bomb_count" db:"bomb_count"`
	Board      Board     `json:"board" db:"board"`
	DurationMs float64   `json:"duration_ms" db:"duration_ms"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type ColumnStat struct {
	Column     int     `json:"column"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type StageStat struct {
	Stage         string  `json:"stage"`
	Count         int     `json:"count"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
}

type KafkaEventType string

const (
	EventDecisionMade KafkaEventType = "DECISION_MADE"
)

type DecisionMadeEvent struct {
	Type       KafkaEventType `json:"type"`
	DecisionID uuid.UUID      `json:"decision_id"`
	GameID     uuid.UUID      `json:"game_id"`
	Agent      string         `json:"agent"`
	CoinID     int            `json:"coin_id"`
	Round      int            `json:"round"`
	Column     int            `json:"column"`
	Stage      string         `json:"stage"`
	BombCount  int            `json:"bomb_count"`
	DurationMs float64        `json:"duration_ms"`
	Timestamp  time.Time      `json:"timestamp"`
}

func NewDecisionMadeEvent(d *Decision) DecisionMadeEvent {
	return DecisionMadeEvent{
		Type:       EventDecisionMade,
		DecisionID: d.ID,
		GameID:     d.GameID,
		Agent:      d.Agent,
		CoinID:     d.CoinID,
		Round:      d.Round,
		Column:     d.Column,
		Stage:      d.Stage,
		BombCount:  d.BombCount,
		DurationMs: d.DurationMs,
		Timestamp:  d.CreatedAt,
	}
}

type MatchStatus string

const (
	MatchStatusWin    MatchStatus = "win"
	MatchStatusDraw   MatchStatus = "draw"
	MatchStatusCapped MatchStatus = "capped"
	// MatchStatusForfeit ends a match when an agent names an illegal column.
	MatchStatusForfeit MatchStatus = "forfeit"
)

type MatchRequest struct {
	Player1  string        `json:"player1" binding:"required"`
	Player2  string        `json:"player2" binding:"required"`
	Bombs    []BombPayload `json:"bombs"`
	Seed     uint64        `json:"seed"`
	MaxMoves int           `json:"max_moves"`
}

type MatchMove struct {
	Round  int    `json:"round"`
	CoinID int    `json:"coin_id"`
	Agent  string `json:"agent"`
	Column int    `json:"column"`
	Row    int    `json:"row"`
	Stage  string `json:"stage"`
}

type MatchResult struct {
	GameID      uuid.UUID   `json:"game_id"`
	Player1     string      `json:"player1"`
	Player2     string      `json:"player2"`
	Status      MatchStatus `json:"status"`
	Winner      int         `json:"winner"`
	WinnerAgent string      `json:"winner_agent,omitempty"`
	Moves       []MatchMove `json:"moves"`
	Board       [][]int     `json:"board"`
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt time.Time   `json:"completed_at"`
}

type WSMessageType string

const (
	WSPlayState WSMessageType = "play-state"
	WSMove      WSMessageType = "move"
	WSError     WSMessageType = "error"
)

type WSMessage struct {
	Type    WSMessageType `json:"type"`
	Payload interface{}   `json:"payload"`
}

type ErrorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// LeaderboardEntry aggregates arena results for one agent.
type LeaderboardEntry struct {
	Agent    string  `json:"agent"`
	Played   int     `json:"played"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	Draws    int     `json:"draws"`
	Forfeits int     `json:"forfeits"`
	WinRate  float64 `json:"win_rate"`
}

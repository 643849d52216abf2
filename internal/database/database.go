package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"stayinalign/internal/config"
	"stayinalign/internal/models"
	"stayinalign/pkg/logger"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS decisions (
	id           UUID PRIMARY KEY,
	game_id      UUID NOT NULL,
	agent        TEXT NOT NULL,
	coin_id      SMALLINT NOT NULL,
	round        INTEGER NOT NULL,
	column_index SMALLINT NOT NULL,
	stage        TEXT NOT NULL,
	bomb_count   INTEGER NOT NULL DEFAULT 0,
	board        JSONB NOT NULL,
	duration_ms  DOUBLE PRECISION NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS decisions_game_id_idx ON decisions (game_id);

CREATE TABLE IF NOT EXISTS decision_analytics (
	id           BIGSERIAL PRIMARY KEY,
	decision_id  UUID NOT NULL,
	event_type   TEXT NOT NULL,
	event_data   JSONB NOT NULL,
	received_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

type Database struct {
	db *sql.DB
}

func New(cfg *config.Config) (*Database, error) {
	dsn, err := cfg.GetDatabaseDSN()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Log.Info("Database connected successfully")
	return &Database{db: db}, nil
}

// Migrate creates the tables the service writes to.
func (d *Database) Migrate() error {
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) Ping() error {
	return d.db.Ping()
}

func (d *Database) SaveDecision(decision *models.Decision) error {
	board, err := json.Marshal(decision.Board.Rows())
	if err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}
	query := `
		INSERT INTO decisions (id, game_id, agent, coin_id, round, column_index, stage, bomb_count, board, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = d.db.Exec(query,
		decision.ID, decision.GameID, decision.Agent, decision.CoinID, decision.Round,
		decision.Column, decision.Stage, decision.BombCount, board, decision.DurationMs, decision.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save decision: %w", err)
	}
	return nil
}

func (d *Database) SaveDecisionEvent(event models.DecisionMadeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	query := `INSERT INTO decision_analytics (decision_id, event_type, event_data) VALUES ($1, $2, $3)`
	if _, err := d.db.Exec(query, event.DecisionID, string(event.Type), data); err != nil {
		return fmt.Errorf("failed to save decision event: %w", err)
	}
	logger.Log.Debug("Decision event stored", zap.String("decision_id", event.DecisionID.String()))
	return nil
}

func (d *Database) GetColumnStats() ([]models.ColumnStat, error) {
	query := `
		SELECT column_index, COUNT(*),
		       COUNT(*) * 100.0 / SUM(COUNT(*)) OVER ()
		FROM decisions
		GROUP BY column_index
		ORDER BY column_index
	`
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get column stats: %w", err)
	}
	defer rows.Close()

	var stats []models.ColumnStat
	for rows.Next() {
		var stat models.ColumnStat
		if err := rows.Scan(&stat.Column, &stat.Count, &stat.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan column stat: %w", err)
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func (d *Database) GetStageStats() ([]models.StageStat, error) {
	query := `
		SELECT stage, COUNT(*), AVG(duration_ms)
		FROM decisions
		GROUP BY stage
		ORDER BY COUNT(*) DESC
	`
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get stage stats: %w", err)
	}
	defer rows.Close()

	var stats []models.StageStat
	for rows.Next() {
		var stat models.StageStat
		if err := rows.Scan(&stat.Stage, &stat.Count, &stat.AvgDurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan stage stat: %w", err)
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

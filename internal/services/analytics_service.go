package services

import (
	"errors"

	"stayinalign/internal/models"
	"stayinalign/pkg/logger"

	"go.uber.org/zap"
)

var ErrAnalyticsUnavailable = errors.New("analytics store is not configured")

type AnalyticsStore interface {
	SaveDecisionEvent(event models.DecisionMadeEvent) error
	GetColumnStats() ([]models.ColumnStat, error)
	GetStageStats() ([]models.StageStat, error)
}

// AnalyticsService stores consumed decision events and serves aggregate
// statistics over recorded decisions.
type AnalyticsService struct {
	store AnalyticsStore
}

func NewAnalyticsService(store AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

func (as *AnalyticsService) Enabled() bool {
	return as != nil && as.store != nil
}

// Process Kafka Events
func (as *AnalyticsService) ProcessDecisionMade(event models.DecisionMadeEvent) {
	if !as.Enabled() {
		return
	}
	if err := as.store.SaveDecisionEvent(event); err != nil {
		logger.Log.Error("Failed to store decision made event", zap.Error(err))
		return
	}
	logger.Log.Info("Processed DECISION_MADE event",
		zap.String("decision_id", event.DecisionID.String()),
		zap.String("agent", event.Agent),
		zap.Int("column", event.Column),
	)
}

// GetColumnStats returns how often each column was chosen.
func (as *AnalyticsService) GetColumnStats() ([]models.ColumnStat, error) {
	if !as.Enabled() {
		return nil, ErrAnalyticsUnavailable
	}
	stats, err := as.store.GetColumnStats()
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []models.ColumnStat{}
	}
	return stats, nil
}

// GetStageStats returns how often each pipeline stage produced the move.
func (as *AnalyticsService) GetStageStats() ([]models.StageStat, error) {
	if !as.Enabled() {
		return nil, ErrAnalyticsUnavailable
	}
	stats, err := as.store.GetStageStats()
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []models.StageStat{}
	}
	return stats, nil
}

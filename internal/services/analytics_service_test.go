package services

import (
	"errors"
	"testing"

	"stayinalign/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyticsStore struct {
	events  []models.DecisionMadeEvent
	columns []models.ColumnStat
	stages  []models.StageStat
	err     error
}

func (f *fakeAnalyticsStore) SaveDecisionEvent(event models.DecisionMadeEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeAnalyticsStore) GetColumnStats() ([]models.ColumnStat, error) {
	return f.columns, f.err
}

func (f *fakeAnalyticsStore) GetStageStats() ([]models.StageStat, error) {
	return f.stages, f.err
}

func TestProcessDecisionMade(t *testing.T) {
	store := &fakeAnalyticsStore{}
	as := NewAnalyticsService(store)

	event := models.DecisionMadeEvent{Type: models.EventDecisionMade, DecisionID: uuid.New(), Column: 3}
	as.ProcessDecisionMade(event)

	require.Len(t, store.events, 1)
	assert.Equal(t, event, store.events[0])
}

func TestAnalyticsStats(t *testing.T) {
	store := &fakeAnalyticsStore{
		columns: []models.ColumnStat{{Column: 3, Count: 2, Percentage: 100}},
	}
	as := NewAnalyticsService(store)

	columns, err := as.GetColumnStats()
	require.NoError(t, err)
	assert.Equal(t, store.columns, columns)

	stages, err := as.GetStageStats()
	require.NoError(t, err)
	assert.NotNil(t, stages)
	assert.Empty(t, stages)

	store.err = errors.New("boom")
	_, err = as.GetStageStats()
	assert.EqualError(t, err, "boom")
}

func TestAnalyticsWithoutStore(t *testing.T) {
	as := NewAnalyticsService(nil)
	assert.False(t, as.Enabled())

	as.ProcessDecisionMade(models.DecisionMadeEvent{})

	_, err := as.GetColumnStats()
	assert.ErrorIs(t, err, ErrAnalyticsUnavailable)
	_, err = as.GetStageStats()
	assert.ErrorIs(t, err, ErrAnalyticsUnavailable)
}

package services

import (
	"encoding/json"
	"testing"

	"stayinalign/internal/config"
	"stayinalign/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchEvent(t *testing.T) {
	store := &fakeAnalyticsStore{}
	analytics := NewAnalyticsService(store)

	event := models.NewDecisionMadeEvent(&models.Decision{ID: uuid.New(), GameID: uuid.New(), Agent: "StayinAlign", Column: 4, Stage: "search"})
	data, err := json.Marshal(event)
	require.NoError(t, err)

	assert.True(t, dispatchEvent(analytics, data, 12))
	require.Len(t, store.events, 1)
	assert.Equal(t, event.DecisionID, store.events[0].DecisionID)
	assert.Equal(t, 4, store.events[0].Column)

	assert.False(t, dispatchEvent(analytics, []byte(`{"type":"GAME_STARTED"}`), 13))
	assert.False(t, dispatchEvent(analytics, []byte(`not json`), 14))
	assert.Len(t, store.events, 1)
}

func TestSASLMechanism(t *testing.T) {
	cfg := &config.Config{}
	mechanism, tlsConfig, err := saslMechanism(cfg)
	require.NoError(t, err)
	assert.Nil(t, mechanism)
	assert.Nil(t, tlsConfig)

	cfg.Kafka.Username, cfg.Kafka.Password = "bot", "secret"
	mechanism, tlsConfig, err = saslMechanism(cfg)
	require.NoError(t, err)
	assert.Equal(t, "SCRAM-SHA-256", mechanism.Name())
	assert.NotNil(t, tlsConfig)
}

package services

import (
	"errors"
	"sync"
	"testing"

	"stayinalign/internal/bot"
	"stayinalign/internal/config"
	"stayinalign/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu        sync.Mutex
	decisions []*models.Decision
	err       error
}

func (f *fakeStore) SaveDecision(decision *models.Decision) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.decisions = append(f.decisions, decision)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []models.DecisionMadeEvent
}

func (f *fakePublisher) PublishDecisionMade(event models.DecisionMadeEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Bot:   config.BotConfig{Agent: bot.StayinAlignName, SearchDepth: 2, Seed: 7},
		Arena: config.ArenaConfig{MaxMoves: 42},
	}
}

func emptyRows() [][]int {
	b := models.NewBoard()
	return b.Rows()
}

func TestPlayOpening(t *testing.T) {
	store, events := &fakeStore{}, &fakePublisher{}
	ds := NewDecisionService(testConfig(), store, events)

	resp, err := ds.Play(&models.PlayRequest{Board: emptyRows(), CoinID: models.Player1, Round: 1})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Column)
	assert.Equal(t, string(bot.StageOpening), resp.Stage)
	assert.Equal(t, bot.StayinAlignName, resp.Agent)
	assert.NotEqual(t, uuid.Nil, resp.GameID)

	require.Len(t, store.decisions, 1)
	assert.Equal(t, resp.DecisionID, store.decisions[0].ID)
	require.Len(t, events.events, 1)
	assert.Equal(t, models.EventDecisionMade, events.events[0].Type)
	assert.Equal(t, resp.DecisionID, events.events[0].DecisionID)
}

func TestPlayKeepsGameIDAndAgent(t *testing.T) {
	ds := NewDecisionService(testConfig(), nil, nil)
	gameID := uuid.New()

	rows := emptyRows()
	rows[0][0] = models.Player1
	rows[0][1] = models.Player1
	rows[0][2] = models.Player1
	rows[1][0] = models.Player2
	rows[1][1] = models.Player2
	rows[1][2] = models.Player2

	resp, err := ds.Play(&models.PlayRequest{
		GameID: &gameID,
		Agent:  bot.ClassicName,
		Board:  rows,
		CoinID: models.Player1,
		Round:  7,
	})
	require.NoError(t, err)
	assert.Equal(t, gameID, resp.GameID)
	assert.Equal(t, bot.ClassicName, resp.Agent)
	assert.Equal(t, 3, resp.Column)
	assert.Equal(t, string(bot.StageUnexplained), resp.Stage)
}

func TestPlayRejectsBadRequests(t *testing.T) {
	ds := NewDecisionService(testConfig(), nil, nil)

	_, err := ds.Play(&models.PlayRequest{Board: emptyRows(), CoinID: 3})
	assert.ErrorIs(t, err, models.ErrInvalidCoin)

	_, err = ds.Play(&models.PlayRequest{Board: emptyRows()[:5], CoinID: models.Player1})
	assert.ErrorIs(t, err, models.ErrInvalidBoard)

	_, err = ds.Play(&models.PlayRequest{Agent: "MyAI", Board: emptyRows(), CoinID: models.Player1})
	assert.ErrorIs(t, err, bot.ErrUnknownAgent)
}

func TestPlaySurvivesStoreFailure(t *testing.T) {
	events := &fakePublisher{}
	ds := NewDecisionService(testConfig(), &fakeStore{err: errors.New("connection refused")}, events)

	resp, err := ds.Play(&models.PlayRequest{Board: emptyRows(), CoinID: models.Player2, Round: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Column)
	assert.Len(t, events.events, 1)
}

func TestAgents(t *testing.T) {
	ds := NewDecisionService(testConfig(), nil, nil)
	assert.Equal(t, bot.Names(), ds.Agents())
}

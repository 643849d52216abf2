package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "DATABASE_URL", "KAFKA_BROKERS", "BOT_AGENT", "BOT_SEARCH_DEPTH", "BOT_SEED", "ARENA_MAX_MOVES"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "StayinAlign", cfg.Bot.Agent)
	assert.Equal(t, 3, cfg.Bot.SearchDepth)
	assert.Zero(t, cfg.Bot.Seed)
	assert.Equal(t, 42, cfg.Arena.MaxMoves)
	assert.False(t, cfg.KafkaEnabled())

	_, err = cfg.GetDatabaseDSN()
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://bot@localhost/bot")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("BOT_AGENT", "Classic")
	t.Setenv("BOT_SEARCH_DEPTH", "5")
	t.Setenv("BOT_SEED", "1234")
	t.Setenv("ARENA_MAX_MOVES", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "Classic", cfg.Bot.Agent)
	assert.Equal(t, 5, cfg.Bot.SearchDepth)
	assert.Equal(t, uint64(1234), cfg.Bot.Seed)
	assert.Equal(t, 42, cfg.Arena.MaxMoves, "unparsable values fall back to the default")
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.KafkaEnabled())

	dsn, err := cfg.GetDatabaseDSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://bot@localhost/bot", dsn)
}

func TestLoadRejectsZeroDepth(t *testing.T) {
	t.Setenv("BOT_SEARCH_DEPTH", "0")
	_, err := Load()
	assert.Error(t, err)
}

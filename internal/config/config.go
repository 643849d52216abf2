package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var ErrNoDatabase = errors.New("DATABASE_URL is not set")

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Bot      BotConfig
	Arena    ArenaConfig
	Kafka    KafkaConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	DatabaseURL string
}

type BotConfig struct {
	Agent       string
	SearchDepth int
	// Seed fixes the agents' random source; 0 seeds from the clock.
	Seed uint64
}

type ArenaConfig struct {
	MaxMoves int
}

type KafkaConfig struct {
	Brokers     []string
	TopicEvents string
	GroupID     string
	Username    string
	Password    string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			DatabaseURL: getEnv("DATABASE_URL", ""),
		},
		Bot: BotConfig{
			Agent:       getEnv("BOT_AGENT", "StayinAlign"),
			SearchDepth: getEnvAsInt("BOT_SEARCH_DEPTH", 3),
			Seed:        getEnvAsUint64("BOT_SEED", 0),
		},
		Arena: ArenaConfig{
			MaxMoves: getEnvAsInt("ARENA_MAX_MOVES", 42),
		},
		Kafka: KafkaConfig{
			Brokers:     splitList(getEnv("KAFKA_BROKERS", "")),
			TopicEvents: getEnv("KAFKA_TOPIC_EVENTS", "bot.decisions"),
			GroupID:     getEnv("KAFKA_GROUP_ID", "stayinalign-analytics-consumer"),
			Username:    getEnv("KAFKA_USERNAME", ""),
			Password:    getEnv("KAFKA_PASSWORD", ""),
		},
	}

	if config.Bot.SearchDepth < 1 {
		return nil, errors.New("BOT_SEARCH_DEPTH must be at least 1")
	}
	return config, nil
}

func (c *Config) GetDatabaseDSN() (string, error) {
	if c.Database.DatabaseURL == "" {
		return "", ErrNoDatabase
	}
	return c.Database.DatabaseURL, nil
}

func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

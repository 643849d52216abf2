package services

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"time"

	"stayinalign/internal/config"
	"stayinalign/internal/models"
	"stayinalign/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/scram"
	"go.uber.org/zap"
)

// saslMechanism returns SCRAM-SHA-256 credentials for managed brokers such as
// Redpanda, or nil when no username is configured.
func saslMechanism(cfg *config.Config) (sasl.Mechanism, *tls.Config, error) {
	if cfg.Kafka.Username == "" {
		return nil, nil, nil
	}
	mechanism, err := scram.Mechanism(scram.SHA256, cfg.Kafka.Username, cfg.Kafka.Password)
	if err != nil {
		return nil, nil, err
	}
	return mechanism, &tls.Config{}, nil
}

type KafkaProducer struct {
	writer *kafka.Writer
	config *config.Config
}

func NewKafkaProducer(cfg *config.Config) (*KafkaProducer, error) {
	mechanism, tlsConfig, err := saslMechanism(cfg)
	if err != nil {
		return nil, err
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.TopicEvents,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		Compression:  kafka.Snappy,
		Transport: &kafka.Transport{
			SASL: mechanism,
			TLS:  tlsConfig,
		},
	}

	logger.Log.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.TopicEvents),
		zap.Bool("sasl", mechanism != nil),
	)

	return &KafkaProducer{
		writer: writer,
		config: cfg,
	}, nil
}

func (kp *KafkaProducer) PublishDecisionMade(event models.DecisionMadeEvent) error {
	return kp.publish(event.GameID.String(), event)
}

// publish keys messages by game so one game's decisions stay ordered.
func (kp *KafkaProducer) publish(key string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Error("Failed to marshal event", zap.Error(err))
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := kp.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Error("Kafka write failed", zap.Error(err))
		return err
	}

	logger.Log.Debug("Event published to Kafka", zap.Int("size", len(data)))
	return nil
}

func (kp *KafkaProducer) Close() error {
	if kp.writer != nil {
		return kp.writer.Close()
	}
	return nil
}

// Kafka Consumer
type KafkaConsumer struct {
	reader    *kafka.Reader
	analytics *AnalyticsService
}

func NewKafkaConsumer(cfg *config.Config, analytics *AnalyticsService) (*KafkaConsumer, error) {
	mechanism, tlsConfig, err := saslMechanism(cfg)
	if err != nil {
		return nil, err
	}

	dialer := &kafka.Dialer{
		Timeout:       10 * time.Second,
		DualStack:     true,
		SASLMechanism: mechanism,
		TLS:           tlsConfig,
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          cfg.Kafka.TopicEvents,
		GroupID:        cfg.Kafka.GroupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
		Dialer:         dialer,
	})

	logger.Log.Info("Kafka consumer initialized",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.TopicEvents),
		zap.String("group_id", cfg.Kafka.GroupID),
	)

	return &KafkaConsumer{
		reader:    reader,
		analytics: analytics,
	}, nil
}

func (kc *KafkaConsumer) Start(ctx context.Context) {
	logger.Log.Info("Starting Kafka consumer...")

	for {
		msg, err := kc.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Log.Info("Kafka consumer stopped")
				return
			}
			logger.Log.Error("Kafka read error", zap.Error(err))
			select {
			case <-ctx.Done():
				logger.Log.Info("Kafka consumer stopped")
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		kc.processMessage(msg)
	}
}

func (kc *KafkaConsumer) processMessage(msg kafka.Message) {
	dispatchEvent(kc.analytics, msg.Value, msg.Offset)
}

// dispatchEvent routes a raw event to the analytics service by its type.
// Unknown types are skipped.
func dispatchEvent(analytics *AnalyticsService, value []byte, offset int64) bool {
	var baseEvent struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(value, &baseEvent); err != nil {
		logger.Log.Error("Failed to unmarshal event", zap.Error(err))
		return false
	}

	logger.Log.Debug("Processing Kafka event",
		zap.String("type", baseEvent.Type),
		zap.Int64("offset", offset),
	)

	switch models.KafkaEventType(baseEvent.Type) {
	case models.EventDecisionMade:
		var event models.DecisionMadeEvent
		if err := json.Unmarshal(value, &event); err != nil {
			logger.Log.Error("Failed to unmarshal decision event", zap.Error(err))
			return false
		}
		analytics.ProcessDecisionMade(event)
		return true
	default:
		logger.Log.Warn("Skipping unknown event type", zap.String("type", baseEvent.Type))
		return false
	}
}

func (kc *KafkaConsumer) Close() error {
	if kc.reader != nil {
		return kc.reader.Close()
	}
	return nil
}

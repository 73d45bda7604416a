package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/match-signal-service/internal/metrics"
	"github.com/cypherlabdev/match-signal-service/internal/models"
	"github.com/cypherlabdev/match-signal-service/internal/service"
)

// KafkaConsumer consumes prediction snapshots from Kafka, classifies and ranks them
type KafkaConsumer struct {
	reader    *kafka.Reader
	processor service.SnapshotProcessor
	defaults  models.UserContext
	logger    zerolog.Logger
}

// KafkaConsumerConfig holds Kafka consumer configuration
type KafkaConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "match_snapshots"
	GroupID string   // e.g., "match-signal"
}

// NewKafkaConsumer creates a new Kafka consumer. defaults supplies the profile and
// bankroll used for snapshots pushed without a user.
func NewKafkaConsumer(
	config KafkaConsumerConfig,
	processor service.SnapshotProcessor,
	defaults models.UserContext,
	logger zerolog.Logger,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1e3,  // 1KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &KafkaConsumer{
		reader:    reader,
		processor: processor,
		defaults:  defaults,
		logger:    logger.With().Str("component", "kafka_consumer").Logger(),
	}
}

// Start begins consuming messages from Kafka
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming from Kafka")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("stopping Kafka consumer")
			return nil

		default:
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				c.logger.Error().Err(err).Msg("failed to fetch message")
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				metrics.RecordMessageFailure()
				c.logger.Error().
					Err(err).
					Int64("offset", msg.Offset).
					Str("key", string(msg.Key)).
					Msg("failed to process message")
				// Don't commit if processing failed
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error().Err(err).Msg("failed to commit message")
			}
		}
	}
}

// processMessage processes a single Kafka message
func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var kafkaMsg models.KafkaSnapshotMessage
	if err := json.Unmarshal(msg.Value, &kafkaMsg); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}
	if len(kafkaMsg.Snapshot.Leagues) == 0 {
		return fmt.Errorf("snapshot %q has no leagues", kafkaMsg.SnapshotID)
	}

	c.logger.Debug().
		Str("snapshot_id", kafkaMsg.SnapshotID).
		Int("leagues", len(kafkaMsg.Snapshot.Leagues)).
		Msg("processing snapshot")

	// Badges are relative to the time the snapshot was produced
	user := c.defaults
	user.Now = kafkaMsg.Timestamp

	result, err := c.processor.ProcessSnapshot(ctx, kafkaMsg.SnapshotID, &kafkaMsg.Snapshot, user)
	if err != nil {
		return fmt.Errorf("failed to process snapshot: %w", err)
	}
	metrics.RecordSnapshot(metrics.SourceKafka)

	c.logger.Info().
		Str("snapshot_id", result.SnapshotID).
		Int("classified", result.Classified).
		Int("no_bet", result.NoBet).
		Msg("processed and cached snapshot")

	return nil
}

// Close closes the Kafka reader
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}

package producers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/guudz-audit-ledger/internal/config"
	"github.com/segmentio/kafka-go"
)

const (
	topicReadAttempts = 5
	topicReadBackoff  = 2 * time.Second
)

// ensureTopic dials the first broker and creates topic when it cannot be found.
func ensureTopic(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig, topic string) error {
	dialer := &kafka.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", cfg.Brokers)
	if err != nil {
		return fmt.Errorf("failed to dial kafka for topic %s: %w", topic, err)
	}
	defer conn.Close()

	if err := createKafkaTopicIfNotExists(ctx, conn, topic, cfg.NumPartitions, cfg.ReplicationFactor, logger); err != nil {
		return fmt.Errorf("failed to ensure topic %s exists: %w", topic, err)
	}
	return nil
}

// topicAdmin is the subset of *kafka.Conn used to inspect and create topics
type topicAdmin interface {
	ReadPartitions(topics ...string) ([]kafka.Partition, error)
	CreateTopics(topics ...kafka.TopicConfig) error
}

// createKafkaTopicIfNotExists creates the topic if its partitions cannot be read, retrying reads first
func createKafkaTopicIfNotExists(ctx context.Context, conn topicAdmin, topicName string, numPartitions int, replicationFactor int, log *slog.Logger) error {
	var (
		partitions []kafka.Partition
		err        error
	)

	for attempt := 1; attempt <= topicReadAttempts; attempt++ {
		partitions, err = conn.ReadPartitions(topicName)
		if err == nil && len(partitions) > 0 {
			log.Info("Kafka topic already exists", "topic", topicName, "partitions", len(partitions))
			return nil
		}
		log.Warn("Failed to read partitions, retrying", "topic", topicName, "attempt", attempt, "error", err)
		if attempt == topicReadAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(topicReadBackoff):
		}
	}

	topicConfig := kafka.TopicConfig{
		Topic:             topicName,
		NumPartitions:     max(numPartitions, 1),
		ReplicationFactor: max(replicationFactor, 1),
	}
	log.Info("Creating Kafka topic", "topic", topicName, "partitions", topicConfig.NumPartitions)
	if err := conn.CreateTopics(topicConfig); err != nil {
		return fmt.Errorf("failed to create kafka topic %s: %w", topicName, err)
	}
	return nil
}

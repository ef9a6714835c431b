package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"
	"retail-order-service/internal/models"
	"retail-order-service/pkg/config"
)

type KafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *logrus.Entry
}

func NewKafkaProducer(cfg *config.KafkaConfig) (*KafkaProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = cfg.RetryAttempts
	saramaConfig.Producer.Retry.Backoff = time.Millisecond * 250
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Flush.Frequency = time.Millisecond * 500

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger := logrus.WithField("component", "kafka_producer")
	logger.Info("Kafka producer created successfully")

	return &KafkaProducer{
		producer: producer,
		topic:    cfg.EventsTopic,
		logger:   logger,
	}, nil
}

func (p *KafkaProducer) PublishEvent(ctx context.Context, event *models.Event) error {
	return p.PublishTo(ctx, p.topic, event)
}

func (p *KafkaProducer) PublishTo(_ context.Context, topic string, event *models.Event) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).Error("Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(event.ID.String()),
		Value: sarama.ByteEncoder(eventData),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("event_type"),
				Value: []byte(event.Type),
			},
			{
				Key:   []byte("destination"),
				Value: []byte(event.Destination),
			},
			{
				Key:   []byte("timestamp"),
				Value: []byte(event.Timestamp.Format(time.RFC3339)),
			},
		},
		Timestamp: event.Timestamp,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		p.logger.WithFields(logrus.Fields{
			"event_id":   event.ID,
			"event_type": event.Type,
			"topic":      topic,
			"error":      err,
		}).Error("Failed to publish event to Kafka")
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"topic":      topic,
		"partition":  partition,
		"offset":     offset,
	}).Debug("Event published successfully")

	return nil
}

func (p *KafkaProducer) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			p.logger.WithError(err).Error("Failed to close Kafka producer")
			return fmt.Errorf("failed to close producer: %w", err)
		}
		p.logger.Info("Kafka producer closed successfully")
	}
	return nil
}

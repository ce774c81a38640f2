package repository

import (
	"context"

	"EstatePulse/internal/domain/models"
	"EstatePulse/internal/domain/repository"
	"EstatePulse/pkg/kafka"
)

// KafkaPublisher emits one event per served prediction, keyed by
// location so per-locality consumers see ordered streams.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaPublisher(producer *kafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, rec *models.PredictionRecord) error {
	return p.producer.Publish(ctx, p.topic, []byte(rec.Location), rec)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

var _ repository.Publisher = (*KafkaPublisher)(nil)

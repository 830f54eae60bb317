package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/talent-profile/internal/application/service"
	"github.com/khoahotran/talent-profile/internal/config"
	"github.com/khoahotran/talent-profile/pkg/logger"
)

const TopicProfileEvents = "profile.events"

const publishTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	ProfileEventsWriter messageWriter
	logger              logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'profile.events'
	profileWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicProfileEvents,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{ProfileEventsWriter: profileWriter, logger: log}, nil
}

// PublishProfileEvent keys messages by owner so one owner's events stay ordered.
func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, payload service.ProfileEvent) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal profile event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.OwnerID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(payload.EventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", payload.EventType, err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		c.ProfileEventsWriter.Close()
	}
	c.logger.Info("Closed Kafka Producers")
}

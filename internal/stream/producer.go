package stream

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"

	"github.com/segmentio/kafka-go"
)

// Publisher mirrors dispatched notifications onto an event stream so
// realtime consumers (dashboards, mobile clients) can pick them up.
// Publishing is strictly best-effort.
type Publisher interface {
	PublishNotification(n *entity.Notification, recipientIDs []string) error
	Close() error
}

type notificationEvent struct {
	Notification *entity.Notification `json:"notification"`
	Recipients   []string             `json:"recipients"`
	EmittedAt    time.Time            `json:"emitted_at"`
}

type kafkaPublisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers, topic string) Publisher {
	if brokers == "" {
		log.Printf("Kafka brokers not configured, notification stream disabled")
		return &noopPublisher{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", brokers)
	if err != nil {
		log.Printf("Kafka connection failed: %v, notification stream disabled", err)
		return &noopPublisher{}
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		log.Printf("Could not create topic (might already exist): %v", err)
	}

	log.Printf("Connected to Kafka at %s", brokers)
	return &kafkaPublisher{writer: writer}
}

func (p *kafkaPublisher) PublishNotification(n *entity.Notification, recipientIDs []string) error {
	value, err := json.Marshal(notificationEvent{
		Notification: n,
		Recipients:   recipientIDs,
		EmittedAt:    time.Now(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.ID),
		Value: value,
		Time:  time.Now(),
	})
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

func (*noopPublisher) PublishNotification(*entity.Notification, []string) error { return nil }
func (*noopPublisher) Close() error                                             { return nil }

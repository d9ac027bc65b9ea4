package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"todo-service/internal/entity"
)

// Publisher announces todo changes to downstream consumers.
type Publisher interface {
	PublishTodoEvent(ctx context.Context, eventType string, todo *entity.Todo) error
	Close() error
}

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) PublishTodoEvent(ctx context.Context, eventType string, todo *entity.Todo) error {
	payload, err := json.Marshal(entity.TodoEvent{Type: eventType, Todo: *todo})
	if err != nil {
		return err
	}

	// keyed by todo only so created, updated and deleted for one id share a partition
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("todo.%d", todo.ID)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
			{Key: "user_id", Value: []byte(fmt.Sprintf("%d", todo.UserID))},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishTodoEvent(context.Context, string, *entity.Todo) error { return nil }
func (NopPublisher) Close() error                                               { return nil }

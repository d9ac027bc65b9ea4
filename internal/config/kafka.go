package config

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// NewKafkaWriter builds the todo event writer. Messages are keyed by todo id,
// so the hash balancer keeps every event of one todo on one partition.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond, // writes are synchronous, the 1s default stalls every request
		AllowAutoTopicCreation: true,
	}
}

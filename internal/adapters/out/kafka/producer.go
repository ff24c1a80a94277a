// Package kafka publishes the depot's domain events to Kafka.
package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

// NewSyncProducer connects a producer that waits for the leader to store
// every message.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Retry.Max = 3
	config.Producer.Timeout = 5 * time.Second
	return sarama.NewSyncProducer(brokers, config)
}

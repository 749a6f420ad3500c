package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/sirupsen/logrus"
)

var _ NotificationQueue = (*KafkaQueue)(nil)

// KafkaQueue is the Kafka backed notification queue.
type KafkaQueue struct {
	producer *kafka.Producer
	consumer *kafka.Consumer
	topic    string
}

func NewKafkaQueue(brokers, topic string) (*KafkaQueue, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"group.id":          "doxly-notifications",
		"auto.offset.reset": "earliest",
	})
	if err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	return &KafkaQueue{
		producer: producer,
		consumer: consumer,
		topic:    topic,
	}, nil
}

func (q *KafkaQueue) Publish(ctx context.Context, event *Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	delivery := make(chan kafka.Event, 1)
	err = q.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &q.topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.DocumentID),
		Value:          value,
	}, delivery)
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case ev := <-delivery:
		if msg, ok := ev.(*kafka.Message); ok && msg.TopicPartition.Error != nil {
			return msg.TopicPartition.Error
		}
	}

	return nil
}

func (q *KafkaQueue) Subscribe(ctx context.Context) (<-chan *Event, error) {
	if err := q.consumer.SubscribeTopics([]string{q.topic}, nil); err != nil {
		return nil, fmt.Errorf("failed to subscribe to topic: %w", err)
	}

	events := make(chan *Event)
	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			msg, err := q.consumer.ReadMessage(100 * time.Millisecond)
			if err != nil {
				// timeouts are expected while the topic is idle
				continue
			}

			var event Event
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				logrus.Errorf("failed to unmarshal notification event: %v", err)
				continue
			}

			select {
			case <-ctx.Done():
				return
			case events <- &event:
			}
		}
	}()

	return events, nil
}

func (q *KafkaQueue) Close() error {
	q.producer.Close()
	return q.consumer.Close()
}

package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"logidash/config"
	"logidash/mq/mq"
)

var exchangeName = fmt.Sprintf("%s_events_exchange", config.AppName)

// RoutingKey is "<entity>.<action>", e.g. "payables.update".
func RoutingKey(ev mq.Event) string {
	return fmt.Sprintf("%s.%s", ev.GetTopic(), ev.Action)
}

// bindingKey selects the routing keys of one topic, or all of them.
func bindingKey(topic string) string {
	if topic == mq.AllTopics {
		return "#"
	}
	return topic + ".*"
}

type consumer struct {
	channel *amqp.Channel
}

// EventQueue implements mq.EventQueue over a RabbitMQ topic exchange.
// Every subscriber owns an AMQP channel and an exclusive queue.
type EventQueue struct {
	conn      *amqp.Connection
	pubMu     sync.Mutex // amqp channels are not safe for concurrent publishing
	channel   *amqp.Channel
	mu        sync.Mutex
	consumers map[uuid.UUID]consumer
}

var _ mq.EventQueue = (*EventQueue)(nil)

// NewEventQueue opens the publishing channel and declares the exchange.
func NewEventQueue(conn *amqp.Connection) (*EventQueue, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	if err := DeclareExchange(ch, exchangeName); err != nil {
		ch.Close()
		return nil, err
	}
	return &EventQueue{
		conn:      conn,
		channel:   ch,
		consumers: make(map[uuid.UUID]consumer),
	}, nil
}

// Publish sends ev to the exchange.
func (q *EventQueue) Publish(ev mq.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	q.pubMu.Lock()
	defer q.pubMu.Unlock()
	err = q.channel.PublishWithContext(ctx,
		exchangeName,   // exchange
		RoutingKey(ev), // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Subscribe binds a fresh queue to topic and streams its events.
func (q *EventQueue) Subscribe(topic string) (uuid.UUID, <-chan mq.Event, error) {
	ch, err := q.conn.Channel()
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	queueName, err := DeclareQueueAndBind(ch, exchangeName, bindingKey(topic))
	if err != nil {
		ch.Close()
		return uuid.Nil, nil, err
	}
	msgs, err := ch.Consume(
		queueName, // queue
		"",        // consumer
		true,      // auto-ack
		true,      // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		ch.Close()
		return uuid.Nil, nil, fmt.Errorf("failed to register a consumer: %w", err)
	}

	subscriberID := uuid.New()
	outputChan := make(chan mq.Event)

	q.mu.Lock()
	q.consumers[subscriberID] = consumer{channel: ch}
	q.mu.Unlock()

	go func() {
		// msgs is closed once the AMQP channel closes
		defer close(outputChan)
		for d := range msgs {
			var ev mq.Event
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				log.Printf("Failed to unmarshal event: %v", err)
				continue
			}
			select {
			case outputChan <- ev:
			case <-time.After(1 * time.Second):
				log.Printf("Timeout sending event to consumer %s. Skipping.", subscriberID)
			}
		}
	}()

	return subscriberID, outputChan, nil
}

// DeSubscribe closes the subscriber's AMQP channel, which ends its stream.
func (q *EventQueue) DeSubscribe(subscriberID uuid.UUID) error {
	q.mu.Lock()
	c, ok := q.consumers[subscriberID]
	delete(q.consumers, subscriberID)
	q.mu.Unlock()

	if !ok {
		return fmt.Errorf("consumer with ID %s not found", subscriberID)
	}
	return c.channel.Close()
}

// Close closes all channels and the RabbitMQ connection.
func (q *EventQueue) Close() {
	q.mu.Lock()
	for id, c := range q.consumers {
		c.channel.Close()
		delete(q.consumers, id)
	}
	q.mu.Unlock()

	if q.channel != nil {
		q.channel.Close()
	}
	if q.conn != nil {
		q.conn.Close()
	}
}

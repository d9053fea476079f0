package gcppubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/google/uuid"

	"logidash/config"
	"logidash/mq/mq"
)

const (
	entityAttribute = "entity"
)

// subscriptionInfo holds details about an active Pub/Sub subscription.
type subscriptionInfo struct {
	gcpSubscription *pubsub.Subscription
	cancel          context.CancelFunc
}

// EventQueue implements mq.EventQueue over one GCP Pub/Sub topic.
// The entity kind travels as a message attribute so subscriptions can filter on it.
type EventQueue struct {
	client              *pubsub.Client
	topic               *pubsub.Topic
	activeSubscriptions map[uuid.UUID]*subscriptionInfo
	subscriptionsMutex  sync.Mutex
	ctx                 context.Context
}

var _ mq.EventQueue = (*EventQueue)(nil)

// TopicID is the Pub/Sub topic carrying every change event.
func TopicID() string {
	return fmt.Sprintf("%s-events", config.AppName)
}

// NewEventQueue connects to projectID and ensures the event topic exists.
func NewEventQueue(ctx context.Context, projectID string) (*EventQueue, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP Pub/Sub client for project %s: %w", projectID, err)
	}

	topicID := TopicID()
	topic := client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to check for existence of topic %s: %w", topicID, err)
	}
	if !exists {
		topic, err = client.CreateTopic(ctx, topicID)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to create topic %s: %w", topicID, err)
		}
		log.Printf("Created Pub/Sub topic: %s", topicID)
	}

	return &EventQueue{
		client:              client,
		topic:               topic,
		activeSubscriptions: make(map[uuid.UUID]*subscriptionInfo),
		ctx:                 ctx,
	}, nil
}

// Publish sends ev and waits for the server to acknowledge it.
func (s *EventQueue) Publish(ev mq.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	result := s.topic.Publish(s.ctx, &pubsub.Message{
		Data: body,
		Attributes: map[string]string{
			entityAttribute: ev.GetTopic(),
		},
	})
	if _, err = result.Get(s.ctx); err != nil {
		return fmt.Errorf("failed to publish event to topic %s: %w", s.topic.ID(), err)
	}
	return nil
}

// Subscribe creates a subscription on GCP, filtered to topic unless it is mq.AllTopics.
func (s *EventQueue) Subscribe(topic string) (uuid.UUID, <-chan mq.Event, error) {
	subscriptionID := uuid.New()
	gcpSubName := fmt.Sprintf("sub-%s-%s", config.AppName, subscriptionID.String())

	subConfig := pubsub.SubscriptionConfig{
		Topic:            s.topic,
		ExpirationPolicy: 24 * time.Hour,
		AckDeadline:      10 * time.Second,
	}
	if topic != mq.AllTopics {
		subConfig.Filter = fmt.Sprintf("attributes.%s = \"%s\"", entityAttribute, topic)
	}

	gcpSub, err := s.client.CreateSubscription(s.ctx, gcpSubName, subConfig)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("failed to create GCP subscription %s: %w", gcpSubName, err)
	}

	msgChan := make(chan mq.Event, 5)
	receiveCtx, cancel := context.WithCancel(s.ctx)

	s.subscriptionsMutex.Lock()
	s.activeSubscriptions[subscriptionID] = &subscriptionInfo{
		gcpSubscription: gcpSub,
		cancel:          cancel,
	}
	s.subscriptionsMutex.Unlock()

	go func() {
		defer func() {
			s.subscriptionsMutex.Lock()
			delete(s.activeSubscriptions, subscriptionID)
			s.subscriptionsMutex.Unlock()

			// drop the GCP side too, subscriptions are per listener
			if deleteErr := gcpSub.Delete(context.Background()); deleteErr != nil {
				log.Printf("Error deleting GCP subscription %s: %v", gcpSub.ID(), deleteErr)
			}
			close(msgChan)
		}()

		err := gcpSub.Receive(receiveCtx, func(ctx context.Context, pubsubMsg *pubsub.Message) {
			pubsubMsg.Ack()

			var ev mq.Event
			if err := json.Unmarshal(pubsubMsg.Data, &ev); err != nil {
				log.Printf("Error unmarshaling event for %s: %v. Body: %s", subscriptionID, err, string(pubsubMsg.Data))
				return
			}

			select {
			case msgChan <- ev:
			case <-time.After(2 * time.Second):
				log.Printf("Timeout sending event to msgChan for %s.", subscriptionID)
			case <-receiveCtx.Done():
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Error in Receive loop for subscription %s: %v", subscriptionID, err)
		}
	}()

	return subscriptionID, msgChan, nil
}

// DeSubscribe stops the receiver; the goroutine deletes the GCP subscription.
func (s *EventQueue) DeSubscribe(id uuid.UUID) error {
	s.subscriptionsMutex.Lock()
	info, ok := s.activeSubscriptions[id]
	if ok {
		info.cancel()
	}
	s.subscriptionsMutex.Unlock()

	if !ok {
		return fmt.Errorf("subscription ID %s not found", id)
	}
	return nil
}

// Close cancels every active subscription and closes the client.
func (s *EventQueue) Close() {
	s.subscriptionsMutex.Lock()
	for _, info := range s.activeSubscriptions {
		info.cancel()
	}
	s.subscriptionsMutex.Unlock()

	s.topic.Stop()
	if err := s.client.Close(); err != nil {
		log.Printf("Error closing Pub/Sub client: %v", err)
	}
}

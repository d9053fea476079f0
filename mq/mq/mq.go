package mq

import "github.com/google/uuid"

// AllTopics subscribes to the events of every entity kind.
const AllTopics = "*"

// TopicProvider 定義了一個可以提供 Topic 的介面
type TopicProvider interface {
	GetTopic() string
}

// EventQueue carries change events from the dispatcher to subscribers.
type EventQueue interface {
	Publish(ev Event) error
	Subscribe(topic string) (uuid.UUID, <-chan Event, error)
	DeSubscribe(id uuid.UUID) error
	Close()
}

// MatchTopic reports whether an event on topic reaches a subscriber of want.
func MatchTopic(want, topic string) bool {
	return want == AllTopics || want == topic
}

package goch

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"logidash/mq/mq"
)

// subscriberBuffer is the capacity of every subscriber channel.
const subscriberBuffer = 16

type subscriber[M mq.TopicProvider] struct {
	topic string
	ch    chan M
}

// fanOutQueueCore delivers every published item to the subscribers of its topic.
// A subscriber whose buffer is full is dropped and its channel closed.
type fanOutQueueCore[M mq.TopicProvider] struct {
	publishChan chan M
	mu          sync.RWMutex
	subscribers map[uuid.UUID]subscriber[M]
	quit        chan struct{}
	done        chan struct{}
	stopOnce    sync.Once
	bufferSize  int
}

func newFanOutQueueCore[M mq.TopicProvider](bufferSize int) *fanOutQueueCore[M] {
	core := &fanOutQueueCore[M]{
		publishChan: make(chan M, bufferSize),
		subscribers: make(map[uuid.UUID]subscriber[M]),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
		bufferSize:  bufferSize,
	}
	go core.fanOutRoutine()
	return core
}

func (c *fanOutQueueCore[M]) fanOutRoutine() {
	defer close(c.done)
	for {
		select {
		case item := <-c.publishChan:
			c.deliver(item)
		case <-c.quit:
			return
		}
	}
}

func (c *fanOutQueueCore[M]) deliver(item M) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, sub := range c.subscribers {
		if !mq.MatchTopic(sub.topic, item.GetTopic()) {
			continue
		}
		select {
		case sub.ch <- item:
		default:
			// slow consumer
			delete(c.subscribers, id)
			close(sub.ch)
		}
	}
}

// Publish hands item to the fan-out routine without blocking.
func (c *fanOutQueueCore[M]) Publish(item M) error {
	select {
	case <-c.quit:
		return ErrQueueStopped
	default:
	}
	select {
	case c.publishChan <- item:
		return nil
	default:
		return ErrQueueFull
	}
}

func (c *fanOutQueueCore[M]) Subscribe(topic string) (uuid.UUID, <-chan M, error) {
	select {
	case <-c.quit:
		return uuid.Nil, nil, ErrQueueStopped
	default:
	}
	id := uuid.New()
	ch := make(chan M, subscriberBuffer)
	c.mu.Lock()
	c.subscribers[id] = subscriber[M]{topic: topic, ch: ch}
	c.mu.Unlock()
	return id, ch, nil
}

func (c *fanOutQueueCore[M]) DeSubscribe(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	sub, ok := c.subscribers[id]
	if !ok {
		return fmt.Errorf("goch: subscriber with ID '%s' not found", id)
	}
	delete(c.subscribers, id)
	close(sub.ch)
	return nil
}

// Stop ends the fan-out routine. Subscriber channels stay open until
// DeSubscribe; items still buffered are discarded.
func (c *fanOutQueueCore[M]) Stop() {
	c.stopOnce.Do(func() {
		close(c.quit)
		<-c.done
	})
}

// --- Error Definitions ---
type QueueError string

func (e QueueError) Error() string {
	return string(e)
}

const (
	ErrQueueFull    QueueError = "message queue is full"
	ErrQueueStopped QueueError = "message queue is stopped"
)

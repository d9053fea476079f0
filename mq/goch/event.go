package goch

import (
	"github.com/google/uuid"

	"logidash/mq/mq"
)

// DefaultBufferSize is the publish buffer used by the server.
const DefaultBufferSize = 64

// ChannelEventQueue implements mq.EventQueue in process.
type ChannelEventQueue struct {
	core *fanOutQueueCore[mq.Event]
}

var _ mq.EventQueue = (*ChannelEventQueue)(nil)

// NewChannelEventQueue creates a queue whose publish buffer holds bufferSize events.
// A bufferSize of 0 means unbuffered.
func NewChannelEventQueue(bufferSize int) *ChannelEventQueue {
	if bufferSize < 0 {
		bufferSize = 0
	}
	return &ChannelEventQueue{core: newFanOutQueueCore[mq.Event](bufferSize)}
}

func (q *ChannelEventQueue) Publish(ev mq.Event) error {
	return q.core.Publish(ev)
}

func (q *ChannelEventQueue) Subscribe(topic string) (uuid.UUID, <-chan mq.Event, error) {
	return q.core.Subscribe(topic)
}

func (q *ChannelEventQueue) DeSubscribe(id uuid.UUID) error {
	return q.core.DeSubscribe(id)
}

func (q *ChannelEventQueue) Close() {
	q.core.Stop()
}

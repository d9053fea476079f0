package rabbit_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logidash/mq/mq"
	rabbitMQ "logidash/mq/rabbit"
)

func TestRoutingKey(t *testing.T) {
	ev := mq.Event{Entity: "trips", Action: mq.ActionUpdate}
	assert.Equal(t, "trips.update", rabbitMQ.RoutingKey(ev))

	ev = mq.Event{Entity: "users", Action: mq.ActionDelete}
	assert.Equal(t, "users.delete", rabbitMQ.RoutingKey(ev))
}

// getTestQueue needs a running broker; set RABBITMQ_URL to enable.
func getTestQueue(t *testing.T) *rabbitMQ.EventQueue {
	t.Helper()
	if os.Getenv("RABBITMQ_URL") == "" {
		t.Skip("Skipping test: RABBITMQ_URL environment variable not set.")
	}
	conn, err := rabbitMQ.NewRabbitConnection(rabbitMQ.CreateAmqpURL())
	require.NoError(t, err)
	q, err := rabbitMQ.NewEventQueue(conn)
	require.NoError(t, err)
	t.Cleanup(q.Close)
	return q
}

func receiveWithTimeout(ch <-chan mq.Event, timeout time.Duration) (mq.Event, bool) {
	select {
	case ev, ok := <-ch:
		return ev, ok
	case <-time.After(timeout):
		return mq.Event{}, false
	}
}

func TestEventQueueTopicSubscription(t *testing.T) {
	q := getTestQueue(t)

	tripID, tripCh, err := q.Subscribe("trips")
	require.NoError(t, err)
	_, allCh, err := q.Subscribe(mq.AllTopics)
	require.NoError(t, err)

	require.NoError(t, q.Publish(mq.Event{Entity: "users", RecordID: "usr-1", Action: mq.ActionUpdate}))
	require.NoError(t, q.Publish(mq.Event{Entity: "trips", RecordID: "trip-1", Action: mq.ActionUpdate}))

	// Test 1: topic subscriber skips other entities
	ev, ok := receiveWithTimeout(tripCh, 2*time.Second)
	require.True(t, ok)
	assert.Equal(t, "trip-1", ev.RecordID)

	// Test 2: wildcard subscriber sees both
	first, ok := receiveWithTimeout(allCh, 2*time.Second)
	require.True(t, ok)
	second, ok := receiveWithTimeout(allCh, 2*time.Second)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"usr-1", "trip-1"}, []string{first.RecordID, second.RecordID})

	// Test 3: de-subscribing closes the stream
	require.NoError(t, q.DeSubscribe(tripID))
	_, ok = receiveWithTimeout(tripCh, 2*time.Second)
	assert.False(t, ok)
	assert.Error(t, q.DeSubscribe(tripID))
}

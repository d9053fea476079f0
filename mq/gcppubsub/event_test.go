package gcppubsub_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logidash/mq/gcppubsub"
	"logidash/mq/mq"
)

// These tests need the Pub/Sub emulator:
//
//	gcloud beta emulators pubsub start --project=test-project
const testProjectID = "test-project"

func getTestQueue(t *testing.T) *gcppubsub.EventQueue {
	t.Helper()
	if os.Getenv("PUBSUB_EMULATOR_HOST") == "" {
		t.Skip("Skipping test: PUBSUB_EMULATOR_HOST environment variable not set. Please start the Pub/Sub emulator.")
	}
	q, err := gcppubsub.NewEventQueue(context.Background(), testProjectID)
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

func TestEventQueuePublishSubscribe(t *testing.T) {
	q := getTestQueue(t)

	id, ch, err := q.Subscribe("payables")
	require.NoError(t, err)
	defer q.DeSubscribe(id)

	// give the emulator a moment to start streaming
	time.Sleep(time.Second)

	require.NoError(t, q.Publish(mq.Event{Entity: "users", RecordID: "usr-1", Action: mq.ActionUpdate}))
	require.NoError(t, q.Publish(mq.Event{Entity: "payables", RecordID: "pay-1", Action: mq.ActionUpdate, Name: "approve"}))

	ev, ok := receiveWithTimeout(ch, 10*time.Second)
	require.True(t, ok, "no event received")
	assert.Equal(t, "pay-1", ev.RecordID)
	assert.Equal(t, "approve", ev.Name)
}

func TestEventQueueDeSubscribeUnknown(t *testing.T) {
	q := getTestQueue(t)
	err := q.DeSubscribe(uuid.New())
	assert.Error(t, err)
}

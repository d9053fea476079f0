package goch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"logidash/mq/mq"
)

// Helper to receive a message from a channel with a timeout.
// Returns the message and true if successful, or zero value and false on timeout/closed.
func receiveMsgWithTimeout[T any](tb testing.TB, ch <-chan T, timeout time.Duration) (T, bool) {
	tb.Helper()
	select {
	case msg, ok := <-ch:
		if !ok {
			var zero T
			return zero, false
		}
		return msg, true
	case <-time.After(timeout):
		var zero T
		return zero, false
	}
}

// waitClosed drains ch until it is closed or the timeout expires.
func waitClosed[T any](ch <-chan T, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return true
			}
		case <-deadline:
			return false
		}
	}
}

type MockItem struct {
	Value int
	Topic string
}

func (item MockItem) GetTopic() string {
	return item.Topic
}

func TestNewFanOutQueueCore(t *testing.T) {
	t.Parallel()

	core := newFanOutQueueCore[MockItem](10)
	defer core.Stop()

	if cap(core.publishChan) != 10 {
		t.Errorf("expected publishChan capacity 10, got %d", cap(core.publishChan))
	}
	if core.subscribers == nil {
		t.Error("subscribers map is nil")
	}
	if core.bufferSize != 10 {
		t.Errorf("expected bufferSize 10, got %d", core.bufferSize)
	}
}

func TestFanOutQueueCore_PublishSubscribeDeSubscribe(t *testing.T) {
	t.Parallel()
	core := newFanOutQueueCore[MockItem](4)
	defer core.Stop()

	id, subChan, err := core.Subscribe("trips")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if err := core.Publish(MockItem{Value: 42, Topic: "trips"}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	msg, ok := receiveMsgWithTimeout(t, subChan, 500*time.Millisecond)
	if !ok {
		t.Fatal("Failed to receive message or channel closed/timed out")
	}
	if msg.Value != 42 {
		t.Errorf("Expected message 42, got %d", msg.Value)
	}

	if err := core.DeSubscribe(id); err != nil {
		t.Fatalf("DeSubscribe failed: %v", err)
	}
	if !waitClosed(subChan, 500*time.Millisecond) {
		t.Error("Subscriber channel not closed after DeSubscribe")
	}
}

func TestFanOutQueueCore_TopicRouting(t *testing.T) {
	t.Parallel()
	core := newFanOutQueueCore[MockItem](10)
	defer core.Stop()

	_, tripChan, _ := core.Subscribe("trips")
	_, allChan, _ := core.Subscribe(mq.AllTopics)

	core.Publish(MockItem{Value: 1, Topic: "payables"})
	core.Publish(MockItem{Value: 2, Topic: "trips"})

	// Test 1: topic subscriber only sees its own topic
	msg, ok := receiveMsgWithTimeout(t, tripChan, 500*time.Millisecond)
	if !ok || msg.Value != 2 {
		t.Errorf("trips subscriber expected value 2, got %v (ok=%v)", msg, ok)
	}
	if extra, ok := receiveMsgWithTimeout(t, tripChan, 100*time.Millisecond); ok {
		t.Errorf("trips subscriber received unexpected %v", extra)
	}

	// Test 2: wildcard subscriber sees both, in publish order
	for _, want := range []int{1, 2} {
		msg, ok := receiveMsgWithTimeout(t, allChan, 500*time.Millisecond)
		if !ok || msg.Value != want {
			t.Errorf("wildcard subscriber expected value %d, got %v (ok=%v)", want, msg, ok)
		}
	}
}

func TestFanOutQueueCore_MultipleSubscribers(t *testing.T) {
	t.Parallel()
	core := newFanOutQueueCore[MockItem](10)
	defer core.Stop()

	subChans := make(map[uuid.UUID]<-chan MockItem)
	for i := 0; i < 3; i++ {
		id, ch, err := core.Subscribe("users")
		if err != nil {
			t.Fatalf("Subscribe failed for subscriber %d: %v", i, err)
		}
		subChans[id] = ch
	}

	testMsg := MockItem{Value: 333, Topic: "users"}
	if err := core.Publish(testMsg); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	for id, ch := range subChans {
		msg, ok := receiveMsgWithTimeout(t, ch, 500*time.Millisecond)
		if !ok {
			t.Errorf("Subscriber %s failed to receive message or timed out", id)
			continue
		}
		if msg != testMsg {
			t.Errorf("Subscriber %s expected message '%v', got '%v'", id, testMsg, msg)
		}
	}
}

func TestFanOutQueueCore_DeSubscribeNonExistent(t *testing.T) {
	t.Parallel()
	core := newFanOutQueueCore[MockItem](0)
	defer core.Stop()

	nonExistentID := uuid.New()
	err := core.DeSubscribe(nonExistentID)
	if err == nil {
		t.Fatal("Expected error when desubscribing non-existent ID, got nil")
	}
	expectedErrorMsg := fmt.Sprintf("goch: subscriber with ID '%s' not found", nonExistentID)
	if err.Error() != expectedErrorMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedErrorMsg, err.Error())
	}
}

func TestFanOutQueueCore_BlockedSubscriberWillRemove(t *testing.T) {
	t.Parallel()
	core := newFanOutQueueCore[MockItem](subscriberBuffer + 4)
	defer core.Stop()

	id, subChan, err := core.Subscribe("sla")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	// nobody reads, so the subscriber buffer overflows
	for i := 0; i < subscriberBuffer+2; i++ {
		if err := core.Publish(MockItem{Value: i, Topic: "sla"}); err != nil {
			t.Fatalf("Publish %d failed: %v", i, err)
		}
	}
	time.Sleep(200 * time.Millisecond)

	core.mu.RLock()
	_, stillSubscribed := core.subscribers[id]
	core.mu.RUnlock()
	if stillSubscribed {
		t.Errorf("Blocked consumer ID %s not removed from subscribers map", id)
	}
	if !waitClosed(subChan, 500*time.Millisecond) {
		t.Errorf("Channel for blocked consumer %s not closed", id)
	}
}

func TestFanOutQueueCore_StopRefusesPublish(t *testing.T) {
	t.Parallel()
	core := newFanOutQueueCore[MockItem](2)

	stopDone := make(chan struct{})
	go func() {
		core.Stop()
		core.Stop() // second call is a no-op
		close(stopDone)
	}()
	select {
	case <-stopDone:
	case <-time.After(time.Second):
		t.Fatal("core.Stop() timed out")
	}

	if err := core.Publish(MockItem{Value: 1, Topic: "trips"}); !errors.Is(err, ErrQueueStopped) {
		t.Errorf("Expected ErrQueueStopped, got %v", err)
	}
	if _, _, err := core.Subscribe("trips"); !errors.Is(err, ErrQueueStopped) {
		t.Errorf("Expected ErrQueueStopped on subscribe, got %v", err)
	}
}

func TestChannelEventQueue_SubscribeProcessor(t *testing.T) {
	t.Parallel()
	q := NewChannelEventQueue(DefaultBufferSize)
	defer q.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out := make(chan string, 4)
	mq.SubscribeProcessor(ctx, mq.AllTopics, q, func(ev mq.Event) (string, bool, error) {
		return ev.Entity + ":" + ev.RecordID, ev.Action == mq.ActionDelete, nil
	}, out)

	// the processor subscribes asynchronously
	time.Sleep(100 * time.Millisecond)

	q.Publish(mq.Event{Entity: "users", RecordID: "usr-2", Action: mq.ActionDelete})
	q.Publish(mq.Event{Entity: "trips", RecordID: "trip-1", Action: mq.ActionUpdate})

	got, ok := receiveMsgWithTimeout(t, out, time.Second)
	if !ok {
		t.Fatal("processor produced nothing")
	}
	if got != "trips:trip-1" {
		t.Errorf("Expected trips:trip-1, got %s", got)
	}

	cancel()
	if !waitClosed((<-chan string)(out), time.Second) {
		t.Error("output stream not closed after cancel")
	}
}

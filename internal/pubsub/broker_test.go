package pubsub

import (
	"context"
	"testing"
	"time"
)

func TestBrokerSubscribePublish(t *testing.T) {
	t.Run("single subscriber receives events", func(t *testing.T) {
		broker := NewBroker[string]("test")
		defer broker.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events := broker.Subscribe(ctx)

		broker.Publish(EventCreated, "hello")

		select {
		case event := <-events:
			if event.Type != EventCreated || event.Payload != "hello" {
				t.Errorf("unexpected event: %+v", event)
			}
		case <-time.After(100 * time.Millisecond):
			t.Error("timeout waiting for event")
		}
	})

	t.Run("multiple subscribers receive same event", func(t *testing.T) {
		broker := NewBroker[int]("test")
		defer broker.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sub1 := broker.Subscribe(ctx)
		sub2 := broker.Subscribe(ctx)

		broker.Publish(EventUpdated, 42)

		for i, sub := range []<-chan Event[int]{sub1, sub2} {
			select {
			case event := <-sub:
				if event.Payload != 42 {
					t.Errorf("subscriber %d: expected 42, got %d", i, event.Payload)
				}
			case <-time.After(100 * time.Millisecond):
				t.Errorf("subscriber %d: timeout", i)
			}
		}
	})

	t.Run("cancelled context unsubscribes", func(t *testing.T) {
		broker := NewBroker[string]("test")
		defer broker.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())

		events := broker.Subscribe(ctx)

		if broker.SubscriberCount() != 1 {
			t.Errorf("expected 1 subscriber, got %d", broker.SubscriberCount())
		}

		cancel()
		time.Sleep(50 * time.Millisecond) // Allow cleanup goroutine to run

		if broker.SubscriberCount() != 0 {
			t.Errorf("expected 0 subscribers after cancel, got %d", broker.SubscriberCount())
		}

		// Channel should be closed
		_, ok := <-events
		if ok {
			t.Error("expected channel to be closed")
		}
	})

	t.Run("shutdown closes all subscribers", func(t *testing.T) {
		broker := NewBroker[string]("test")

		ctx := context.Background()
		sub1 := broker.Subscribe(ctx)
		sub2 := broker.Subscribe(ctx)

		broker.Shutdown()

		// Both channels should be closed
		if _, ok := <-sub1; ok {
			t.Error("sub1 should be closed")
		}
		if _, ok := <-sub2; ok {
			t.Error("sub2 should be closed")
		}
	})

	t.Run("publish after shutdown is no-op", func(t *testing.T) {
		broker := NewBroker[string]("test")
		broker.Shutdown()

		// Should not panic
		broker.Publish(EventCreated, "test")
	})

	t.Run("subscribe after shutdown returns closed channel", func(t *testing.T) {
		broker := NewBroker[string]("test")
		broker.Shutdown()

		ctx := context.Background()
		ch := broker.Subscribe(ctx)

		// Channel should be immediately closed
		_, ok := <-ch
		if ok {
			t.Error("channel should be closed")
		}
	})

	t.Run("slow subscriber drops events instead of blocking", func(t *testing.T) {
		broker := NewBroker[int]("test", WithBufferSize[int](1))
		defer broker.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		_ = broker.Subscribe(ctx)

		// Fill the buffer and publish one more; must not block.
		broker.Publish(EventProgress, 1)
		broker.Publish(EventProgress, 2)

		m := broker.Metrics()
		if m.DropCount != 1 {
			t.Errorf("expected 1 dropped event, got %d", m.DropCount)
		}
		if m.PublishCount != 2 {
			t.Errorf("expected 2 published events, got %d", m.PublishCount)
		}
	})
}

package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcher_PublishInvokesSubscribers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	var got []Event
	d.Subscribe(EventProductionRecorded, func(ctx context.Context, event Event) error {
		got = append(got, event)
		return nil
	})

	event := New(EventProductionRecorded, ProductionRecordedPayload{EntryID: 1, WorkerID: "w1", Pieces: 10})
	if err := d.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	if len(got) != 1 || got[0].ID != event.ID {
		t.Fatalf("expected one delivered event, got %+v", got)
	}
	if got[0].ID == "" || got[0].Timestamp.IsZero() {
		t.Fatalf("event id and timestamp must be populated: %+v", got[0])
	}
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	d.Subscribe(EventWorkerAdded, func(ctx context.Context, event Event) error {
		return errors.New("boom")
	})
	delivered := false
	d.Subscribe(EventWorkerAdded, func(ctx context.Context, event Event) error {
		delivered = true
		return nil
	})

	if err := d.Publish(context.Background(), New(EventWorkerAdded, nil)); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if !delivered {
		t.Fatal("second handler was not invoked after first failed")
	}
}

func TestDispatcher_NoSubscribers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	if err := d.Publish(context.Background(), New(EventUserRegistered, nil)); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
}

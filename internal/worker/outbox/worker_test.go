package outbox

import (
	"context"
	"testing"
	"time"

	outboxmodel "github.com/Dip-ankar/Eccomerce/internal/service/models/outbox"
)

type fakeOutboxRepo struct{}

func (fakeOutboxRepo) Insert(context.Context, outboxmodel.Message) error { return nil }

func (fakeOutboxRepo) GetPendingMessages(context.Context, int) ([]outboxmodel.Message, error) {
	return nil, nil
}

func (fakeOutboxRepo) Delete(context.Context, int64) error { return nil }

func (fakeOutboxRepo) UpdateRetry(context.Context, int64, int, string, time.Time) error {
	return nil
}

func TestStartReturnsOnStop(t *testing.T) {
	w := NewWorker(fakeOutboxRepo{}, nil)

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	w.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Stop")
	}
}

func TestStartReturnsOnContextCancel(t *testing.T) {
	w := NewWorker(fakeOutboxRepo{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
}

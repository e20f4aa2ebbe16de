package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent struct{ name string }

func (e testEvent) Name() string { return e.name }

func TestPublish_CallsAllSubscribers(t *testing.T) {
	bus := New(zap.NewNop())
	var calls int32

	for i := 0; i < 3; i++ {
		bus.Subscribe("doc.changed", func(ctx context.Context, event Event) error {
			atomic.AddInt32(&calls, 1)
			return nil
		})
	}
	bus.Subscribe("other", func(ctx context.Context, event Event) error {
		atomic.AddInt32(&calls, 100)
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "doc.changed"})
	bus.Wait()

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestPublish_ListenerErrorAndPanicDoNotStopOthers(t *testing.T) {
	bus := New(zap.NewNop())
	var ok int32

	bus.Subscribe("e", func(ctx context.Context, event Event) error { return errors.New("fail") })
	bus.Subscribe("e", func(ctx context.Context, event Event) error { panic("boom") })
	bus.Subscribe("e", func(ctx context.Context, event Event) error {
		atomic.AddInt32(&ok, 1)
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "e"})
	bus.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&ok))
}

func TestPublish_NoSubscribers(t *testing.T) {
	bus := New(zap.NewNop())
	bus.Publish(context.Background(), testEvent{name: "nobody"})
	bus.Wait()
}

package eventbus

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/pkg/logging"
)

type projectCreated struct {
	ID int64
}

type taskDeleted struct {
	ID int64
}

func TestPublisher_Publish_NoSubscribersLogs(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.WarnLevel)

	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *projectCreated) {
		t.Error("should not be called")
	})
	publisher.Publish(&taskDeleted{ID: 1})

	assert.Contains(t, buf.String(), "eventbus.Publish: no matching subscribers")
}

func TestPublisher_Subscribe(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))
	var got int64
	publisher.Subscribe(func(e *projectCreated) {
		got = e.ID
	})
	publisher.Publish(&projectCreated{ID: 42})
	assert.Equal(t, int64(42), got)
}

func TestPublisher_ContextAndEvent(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))
	var seen bool
	publisher.Subscribe(func(ctx context.Context, e *projectCreated) {
		seen = ctx != nil && e.ID == 3
	})
	publisher.Publish(context.Background(), &projectCreated{ID: 3})
	assert.True(t, seen)
}

func TestMatchSignature(t *testing.T) {
	assert.True(t, MatchSignature(func(e *projectCreated) {}, []interface{}{&projectCreated{}}))
	assert.False(t, MatchSignature(func(e *projectCreated) {}, []interface{}{&taskDeleted{}}))
	assert.False(t, MatchSignature(func(e *projectCreated) {}, []interface{}{}))
	assert.False(t, MatchSignature(func(e *projectCreated) {}, []interface{}{&projectCreated{}, &projectCreated{}}))
	assert.True(t, MatchSignature(func(ctx context.Context) {}, []interface{}{context.Background()}))
	assert.True(t, MatchSignature(func(e *projectCreated) {}, []interface{}{nil}))
	assert.False(t, MatchSignature("not a func", nil))
}

func TestPublisher_PanicDoesNotStopOthers(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	publisher := NewEventPublisher(log)
	called := false
	publisher.Subscribe(func(e *projectCreated) { panic("boom") })
	publisher.Subscribe(func(e *projectCreated) { called = true })
	publisher.Publish(&projectCreated{ID: 1})

	assert.True(t, called)
	assert.Contains(t, buf.String(), "panicked")
}

func TestPublisher_PublishE(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))
	require.ErrorIs(t, publisher.PublishE(&projectCreated{}), ErrNoSubscribers)

	sentinel := errors.New("handler failed")
	publisher.Subscribe(func(e *projectCreated) error { return sentinel })
	publisher.Subscribe(func(e *projectCreated) error { return nil })
	publisher.Subscribe(func(e *projectCreated) int { return 1 })
	publisher.Subscribe(func(e *projectCreated) { panic("boom") })

	err := publisher.PublishE(&projectCreated{ID: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, ErrInvalidHandlerReturn)
	assert.Contains(t, err.Error(), "panicked")
}

func TestPublisher_UnsubscribeAndClear(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))
	handler := func(e *projectCreated) {}
	publisher.Subscribe(handler)
	publisher.Subscribe(func(e *taskDeleted) {})
	require.Equal(t, 2, publisher.SubscribersCount())

	publisher.Unsubscribe(handler)
	assert.Equal(t, 1, publisher.SubscribersCount())

	publisher.Clear()
	assert.Equal(t, 0, publisher.SubscribersCount())
}

func TestPublisher_ConcurrentSubscribeAndPublish(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.PanicLevel))
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			publisher.Subscribe(func(e *projectCreated) {})
		}()
		go func() {
			defer wg.Done()
			publisher.Publish(&projectCreated{})
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, publisher.SubscribersCount())
}

package syncer

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sample-tracker-client/internal/store"
)

// pushEvents writes the named events and then holds the stream open.
func pushEvents(names ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/event-stream")
		c.Status(http.StatusOK)
		for _, name := range names {
			c.SSEvent(name, "{}")
		}
		c.Writer.Flush()
		<-c.Request.Context().Done()
	}
}

func runListener(t *testing.T, l *Listener) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.Run(ctx)
	}()
	return func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("listener did not stop")
		}
	}
}

func TestListener_RoutesEventsToCollections(t *testing.T) {
	tracker := newFakeTracker()
	server := tracker.start(t, pushEvents("info", "samples_updated", "users_updated"))
	cfg := testConfig(server.URL)
	st := store.New(store.AppData{})
	listener := NewListener(cfg, NewService(cfg, st))

	stop := runListener(t, listener)
	defer stop()

	require.Eventually(t, func() bool {
		data := st.Get()
		return len(data.Samples) == 1 && len(data.Users) == 1
	}, 5*time.Second, 10*time.Millisecond)

	assert.EqualValues(t, 0, tracker.hitCount(pathLocations))
	assert.EqualValues(t, 0, tracker.hitCount(pathProducts))
	assert.EqualValues(t, 1, tracker.pushConns.Load())
}

func TestListener_ReconnectsWhenStreamCloses(t *testing.T) {
	tracker := newFakeTracker()
	server := tracker.start(t, func(c *gin.Context) {
		c.Header("Content-Type", "text/event-stream")
		c.SSEvent("locations_updated", "{}")
	})
	cfg := testConfig(server.URL)
	st := store.New(store.AppData{})
	listener := NewListener(cfg, NewService(cfg, st))

	stop := runListener(t, listener)
	defer stop()

	require.Eventually(t, func() bool {
		return tracker.pushConns.Load() >= 3
	}, 5*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return len(st.Get().Locations) == 2
	}, 5*time.Second, 10*time.Millisecond)
}

func TestListener_RetriesRefusedStream(t *testing.T) {
	tracker := newFakeTracker()
	server := tracker.start(t, func(c *gin.Context) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stream unavailable"})
	})
	cfg := testConfig(server.URL)
	listener := NewListener(cfg, NewService(cfg, store.New(store.AppData{})))

	stop := runListener(t, listener)
	defer stop()

	require.Eventually(t, func() bool {
		return tracker.pushConns.Load() >= 2
	}, 5*time.Second, 10*time.Millisecond)
}

func TestListener_StopsOnCancel(t *testing.T) {
	tracker := newFakeTracker()
	server := tracker.start(t, pushEvents())
	cfg := testConfig(server.URL)
	listener := NewListener(cfg, NewService(cfg, store.New(store.AppData{})))

	stop := runListener(t, listener)
	require.Eventually(t, func() bool {
		return tracker.pushConns.Load() == 1
	}, 5*time.Second, 10*time.Millisecond)
	stop()
}

func TestListener_BackoffDoublesCapsAndResets(t *testing.T) {
	tracker := newFakeTracker()
	server := tracker.start(t, func(c *gin.Context) {
		if tracker.pushConns.Load() == 5 {
			c.Header("Content-Type", "text/event-stream")
			c.SSEvent("info", "{}")
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stream unavailable"})
	})
	cfg := testConfig(server.URL)
	listener := NewListener(cfg, NewService(cfg, store.New(store.AppData{})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var waits []time.Duration
	listener.wait = func(ctx context.Context, d time.Duration) bool {
		waits = append(waits, d)
		if len(waits) == 7 {
			cancel()
			return false
		}
		return true
	}

	listener.Run(ctx)

	ms := time.Millisecond
	assert.Equal(t, []time.Duration{
		10 * ms, 20 * ms, 40 * ms, 40 * ms, // refused: doubling up to the maximum
		10 * ms, 20 * ms, 40 * ms, // the fifth connect succeeded, so the wait starts over
	}, waits)
}

package syncer

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"sample-tracker-client/config"
	"sample-tracker-client/internal/store"
)

// Push events the server sends, and the collection each one invalidates.
var eventCollections = map[string]string{
	"samples_updated":   store.CollectionSamples,
	"products_updated":  store.CollectionProducts,
	"locations_updated": store.CollectionLocations,
	"users_updated":     store.CollectionUsers,
}

var errStreamClosed = errors.New("event stream closed by server")

// Listener holds the push channel open and triggers refreshes for change events.
type Listener struct {
	client  *Client
	path    string
	refresh func(ctx context.Context, collection string) bool
	minWait time.Duration
	maxWait time.Duration
	// wait pauses before a reconnect. It reports false when ctx ended first.
	wait func(ctx context.Context, d time.Duration) bool

	inflight sync.WaitGroup
}

// NewListener creates a listener that refreshes through svc.
func NewListener(cfg *config.Config, svc *Service) *Listener {
	return &Listener{
		client:  svc.client,
		path:    cfg.Sync.PushPath,
		refresh: svc.RefreshCollection,
		minWait: cfg.Sync.ReconnectMin,
		maxWait: cfg.Sync.ReconnectMax,
		wait:    sleepCtx,
	}
}

// Run listens until ctx is cancelled. A dropped or refused connection is retried with
// exponential backoff from ReconnectMin up to ReconnectMax. The backoff starts over
// after every successful connect.
func (l *Listener) Run(ctx context.Context) {
	log.Println("Starting sync event listener...")
	defer l.inflight.Wait()

	retry := l.newBackOff()
	for {
		connected, err := l.listenOnce(ctx)
		if ctx.Err() != nil {
			log.Println("Sync event listener shutting down.")
			return
		}
		if err != nil {
			log.Printf("Sync eventstream error: %v", err)
		}
		if connected {
			retry.Reset()
		}

		wait := retry.NextBackOff()
		log.Printf("Reconnecting to sync eventstream in %s", wait)
		if !l.wait(ctx, wait) {
			log.Println("Sync event listener shutting down.")
			return
		}
	}
}

func (l *Listener) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = l.minWait
	b.MaxInterval = l.maxWait
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// listenOnce reads one connection until it fails. connected reports whether the
// stream was opened at all.
func (l *Listener) listenOnce(ctx context.Context) (connected bool, err error) {
	resp, err := l.client.openStream(ctx, l.path)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	log.Println("Connected to sync eventstream")

	reader := newEventReader(resp.Body)
	for {
		evt, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return true, errStreamClosed
		}
		if err != nil {
			return true, err
		}
		l.handle(ctx, evt)
	}
}

// handle starts the refresh for a change event. Refreshes run concurrently and are not
// serialized against each other.
func (l *Listener) handle(ctx context.Context, evt event) {
	collection, ok := eventCollections[evt.Name]
	if !ok {
		return
	}
	log.Printf("%s event received", evt.Name)

	l.inflight.Add(1)
	go func() {
		defer l.inflight.Done()
		l.refresh(ctx, collection)
	}()
}

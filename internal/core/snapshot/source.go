// Package snapshot keeps externally sourced data fresh on a background loop
// and hands copies of it to the frame loop without ever blocking on I/O.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	MinRefreshInterval     = time.Minute
	DefaultPollInterval    = time.Second
	DefaultTimeout         = 6 * time.Second
	defaultRefreshInterval = 15 * time.Minute
	notFetchedReason       = "Not fetched yet."
)

// Snapshot is one completed fetch attempt.
type Snapshot[T any] struct {
	OK        bool
	Value     T
	Reason    string
	FetchedAt time.Time
}

// Fetcher performs one synchronous fetch. It must honor ctx cancellation.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Config contains runtime options for a Source.
type Config[T any] struct {
	RefreshInterval time.Duration
	PollInterval    time.Duration
	Timeout         time.Duration
	// Clone deep-copies a value for readers. Nil copies by assignment.
	Clone  func(T) T
	Logger *slog.Logger
	// Now is the clock; nil uses time.Now.
	Now func() time.Time
}

// Source owns a snapshot refreshed by a single background loop.
type Source[T any] struct {
	mu        sync.Mutex
	config    Config[T]
	fetch     Fetcher[T]
	snapshot  Snapshot[T]
	lastFetch time.Time
	forced    bool
	updates   chan struct{}
	stopCh    chan struct{}
	doneCh    chan struct{}
	running   bool
}

// New creates a source in the "not fetched" state.
func New[T any](fetch Fetcher[T], config Config[T]) *Source[T] {
	if config.RefreshInterval <= 0 {
		config.RefreshInterval = defaultRefreshInterval
	}
	if config.RefreshInterval < MinRefreshInterval {
		config.RefreshInterval = MinRefreshInterval
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Source[T]{
		config:   config,
		fetch:    fetch,
		snapshot: Snapshot[T]{Reason: notFetchedReason},
		updates:  make(chan struct{}, 1),
	}
}

// Start launches the refresh loop. Calling Start on a running source is a no-op.
func (source *Source[T]) Start() {
	source.mu.Lock()
	if source.running {
		source.mu.Unlock()
		return
	}
	source.running = true
	source.stopCh = make(chan struct{})
	source.doneCh = make(chan struct{})
	stopCh, doneCh := source.stopCh, source.doneCh
	source.mu.Unlock()

	go source.run(stopCh, doneCh)
}

// Stop signals the loop to exit and waits for it. An in-flight fetch is
// cancelled through its context.
func (source *Source[T]) Stop() {
	source.mu.Lock()
	if !source.running {
		source.mu.Unlock()
		return
	}
	source.running = false
	close(source.stopCh)
	doneCh := source.doneCh
	source.mu.Unlock()

	<-doneCh
}

// Get returns an independent copy of the current snapshot.
func (source *Source[T]) Get() Snapshot[T] {
	source.mu.Lock()
	defer source.mu.Unlock()
	copied := source.snapshot
	if copied.OK && source.config.Clone != nil {
		copied.Value = source.config.Clone(copied.Value)
	}
	return copied
}

// Updates delivers a notification after each completed fetch. Notifications
// coalesce; readers call Get to obtain the data.
func (source *Source[T]) Updates() <-chan struct{} {
	return source.updates
}

// Refresh forces a fetch on the next poll.
func (source *Source[T]) Refresh() {
	source.mu.Lock()
	source.forced = true
	source.mu.Unlock()
}

// FetchOnce performs a single fetch attempt on the caller's goroutine and
// publishes the result.
func (source *Source[T]) FetchOnce(ctx context.Context) Snapshot[T] {
	fetchCtx, cancel := context.WithTimeout(ctx, source.config.Timeout)
	defer cancel()

	value, err := source.safeFetch(fetchCtx)
	now := source.config.Now()
	next := Snapshot[T]{FetchedAt: now}
	if err != nil {
		next.Reason = err.Error()
		if next.Reason == "" {
			next.Reason = "fetch failed"
		}
		source.config.Logger.Debug("snapshot fetch failed", "error", err)
	} else {
		next.OK = true
		next.Value = value
	}

	source.mu.Lock()
	source.snapshot = next
	source.lastFetch = now
	source.forced = false
	source.mu.Unlock()

	select {
	case source.updates <- struct{}{}:
	default:
	}
	return next
}

func (source *Source[T]) run(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	ticker := time.NewTicker(source.config.PollInterval)
	defer ticker.Stop()

	for {
		if source.due() {
			source.FetchOnce(ctx)
		}
		select {
		case <-stopCh:
			return
		case <-ticker.C:
		}
	}
}

func (source *Source[T]) due() bool {
	source.mu.Lock()
	defer source.mu.Unlock()
	if source.forced || !source.snapshot.OK || source.lastFetch.IsZero() {
		return true
	}
	return source.config.Now().Sub(source.lastFetch) >= source.config.RefreshInterval
}

func (source *Source[T]) safeFetch(ctx context.Context) (value T, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("fetch panicked: %v", recovered)
		}
	}()
	if source.fetch == nil {
		return value, fmt.Errorf("no fetcher configured")
	}
	return source.fetch(ctx)
}

package query

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/oksasatya/cohortly/internal/domain/repository"
)

// Result is one delivery of a query. On failure Data and FetchedAt hold the
// last cached result, if any.
type Result[T any] struct {
	Data      T
	Err       error
	FetchedAt time.Time
}

// Query is a cached read identified by its key. Two queries with the same key
// must have the same type.
type Query[T any] struct {
	client *Client
	key    string
	opts   Options
	fetch  func(ctx context.Context) (T, error)
}

func New[T any](c *Client, key string, opts Options, fetch func(ctx context.Context) (T, error)) *Query[T] {
	return &Query[T]{client: c, key: key, opts: opts, fetch: fetch}
}

func (q *Query[T]) Key() string      { return q.key }
func (q *Query[T]) Options() Options { return q.opts }

// Get returns the cached result while it is fresh and fetches otherwise.
// Concurrent fetches of the same key share one request.
func (q *Query[T]) Get(ctx context.Context) (T, error) {
	res := q.load(ctx, false)
	return res.Data, res.Err
}

// Refetch always issues a request.
func (q *Query[T]) Refetch(ctx context.Context) (T, error) {
	res := q.load(ctx, true)
	return res.Data, res.Err
}

func (q *Query[T]) log() *logrus.Entry {
	return q.client.logger.WithField("query", q.key)
}

// cached returns the stored result; fresh reports whether it is younger than
// StaleTime.
func (q *Query[T]) cached(ctx context.Context) (res Result[T], ok, fresh bool) {
	entry, ok, err := q.client.cache.Get(ctx, cacheKey(q.key))
	if err != nil {
		q.log().WithError(err).Warn("query cache read failed")
		return res, false, false
	}
	if !ok {
		return res, false, false
	}
	if err := json.Unmarshal(entry.Data, &res.Data); err != nil {
		q.log().WithError(err).Warn("query cache entry unreadable")
		return Result[T]{}, false, false
	}
	res.FetchedAt = entry.FetchedAt
	fresh = q.client.now().Sub(entry.FetchedAt) < q.opts.StaleTime
	return res, true, fresh
}

func (q *Query[T]) load(ctx context.Context, force bool) Result[T] {
	if !force {
		if res, ok, fresh := q.cached(ctx); ok && fresh {
			q.log().Debug("query cache hit")
			return res
		}
	}

	// The shared fetch outlives any single caller; each caller stops waiting
	// when its own ctx is done.
	fetchCtx := context.WithoutCancel(ctx)
	ch := q.client.group.DoChan(q.key, func() (any, error) {
		return q.fetchAndStore(fetchCtx)
	})

	var r singleflight.Result
	select {
	case <-ctx.Done():
		res, _, _ := q.cached(fetchCtx)
		res.Err = ctx.Err()
		return res
	case r = <-ch:
	}

	if r.Err != nil {
		res, _, _ := q.cached(ctx)
		res.Err = r.Err
		return res
	}
	res, ok := r.Val.(Result[T])
	if !ok {
		return Result[T]{Err: fmt.Errorf("query %q: key shared by queries of different types", q.key)}
	}
	if r.Shared {
		q.log().Debug("query joined in-flight request")
	}
	return res
}

func (q *Query[T]) fetchAndStore(ctx context.Context) (Result[T], error) {
	gen := q.client.generation(q.key)
	data, err := q.fetch(ctx)
	if err != nil {
		q.log().WithError(err).Debug("query fetch failed")
		return Result[T]{}, err
	}
	res := Result[T]{Data: data, FetchedAt: q.client.now()}

	b, err := json.Marshal(data)
	if err != nil {
		q.log().WithError(err).Warn("query result not cacheable")
		return res, nil
	}
	stored := q.client.storeIfCurrent(q.key, gen, func() {
		if err := q.client.cache.Set(ctx, cacheKey(q.key), repository.CacheEntry{Data: b, FetchedAt: res.FetchedAt}); err != nil {
			q.log().WithError(err).Warn("query cache write failed")
		}
	})
	if !stored {
		q.log().Debug("query invalidated while fetching, result not cached")
	}
	return res, nil
}

// Subscription is a running Watch.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Stop ends the watch. It must not be called from the watch callback.
func (s *Subscription) Stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

// Done is closed once the watch has ended.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Watch calls fn with the current result, then again on every refetch
// interval tick, reconnect (when enabled) and invalidation of the key. It runs
// until ctx is done or Stop is called; fn is never called concurrently.
func (q *Query[T]) Watch(ctx context.Context, fn func(Result[T])) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	obs := q.client.subscribe(q.key, q.opts.RefetchOnReconnect)
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}

	deliver := func(force bool) {
		res := q.load(ctx, force)
		if ctx.Err() != nil {
			return
		}
		fn(res)
	}

	go func() {
		defer close(sub.done)
		defer q.client.unsubscribe(obs)

		var tick <-chan time.Time
		if q.opts.RefetchInterval > 0 && q.client.polling {
			t := time.NewTicker(q.opts.RefetchInterval)
			defer t.Stop()
			tick = t.C
		}

		deliver(false)
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick:
				deliver(true)
			case <-obs.reconnected:
				deliver(false)
			case <-obs.invalidated:
				deliver(false)
			}
		}
	}()
	return sub
}

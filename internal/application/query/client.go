// Package query caches the results of remote reads and keeps live observers
// up to date through interval polling, reconnect notifications and
// invalidation.
package query

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/oksasatya/cohortly/internal/domain/repository"
	"github.com/oksasatya/cohortly/pkg/helpers"
)

// Options control how one query is cached and refreshed.
type Options struct {
	// RefetchInterval re-runs the query for watchers; zero disables it.
	RefetchInterval time.Duration
	// StaleTime is how long a cached result is served without a request.
	StaleTime time.Duration
	// RefetchOnReconnect refreshes watchers on Client.NotifyReconnect.
	RefetchOnReconnect bool
}

type Config struct {
	Cache  repository.QueryCache
	Logger *logrus.Logger
	// Polling enables RefetchInterval for every query.
	Polling bool
	Now     func() time.Time
}

// Client is shared by all queries and mutations of a process.
type Client struct {
	cache   repository.QueryCache
	logger  *logrus.Logger
	polling bool
	now     func() time.Time
	group   singleflight.Group

	// genMu guards gens and is held across cache writes of fetched results.
	genMu sync.Mutex
	gens  map[string]uint64

	mu        sync.Mutex
	observers map[uint64]*observer
	nextID    uint64
}

type observer struct {
	id          uint64
	key         string
	reconnect   bool
	reconnected chan struct{}
	invalidated chan struct{}
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = helpers.NopLogger()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		cache:     cfg.Cache,
		logger:    logger,
		polling:   cfg.Polling,
		now:       now,
		gens:      make(map[string]uint64),
		observers: make(map[uint64]*observer),
	}
}

// Key joins parts into a query key. Keys are hierarchical: invalidating
// "cohort" covers "cohort/c1" but not "cohorts".
func Key(parts ...string) string {
	return strings.Join(parts, "/")
}

// cacheKey terminates k so that prefix deletes respect segment boundaries.
func cacheKey(k string) string { return k + "/" }

func matches(key, prefix string) bool {
	return key == prefix || strings.HasPrefix(key, prefix+"/")
}

func (c *Client) subscribe(key string, reconnect bool) *observer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	o := &observer{
		id:          c.nextID,
		key:         key,
		reconnect:   reconnect,
		reconnected: make(chan struct{}, 1),
		invalidated: make(chan struct{}, 1),
	}
	c.observers[o.id] = o
	return o
}

func (c *Client) unsubscribe(o *observer) {
	c.mu.Lock()
	delete(c.observers, o.id)
	c.mu.Unlock()
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// NotifyReconnect refreshes every watcher whose query refetches on reconnect.
func (c *Client) NotifyReconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, o := range c.observers {
		if o.reconnect {
			signal(o.reconnected)
			n++
		}
	}
	c.logger.WithField("observers", n).Debug("reconnect: refetching queries")
}

// generation returns the current generation of key. A fetch started under
// one generation must not be cached once Invalidate has moved past it.
func (c *Client) generation(key string) uint64 {
	c.genMu.Lock()
	defer c.genMu.Unlock()
	g, ok := c.gens[key]
	if !ok {
		c.gens[key] = 0
	}
	return g
}

// storeIfCurrent runs store only while key is still at generation gen.
func (c *Client) storeIfCurrent(key string, gen uint64, store func()) bool {
	c.genMu.Lock()
	defer c.genMu.Unlock()
	if c.gens[key] != gen {
		return false
	}
	store()
	return true
}

// outdate moves every known key under the given prefixes to a new generation
// and detaches its in-flight fetch, so later callers start a new one.
func (c *Client) outdate(keys []string) {
	c.genMu.Lock()
	defer c.genMu.Unlock()
	for k := range c.gens {
		for _, prefix := range keys {
			if matches(k, prefix) {
				c.gens[k]++
				c.group.Forget(k)
				break
			}
		}
	}
}

// Invalidate drops the cached results under each key and refetches the
// watchers of those keys. Fetches already running for those keys are not
// cached and are not shared with later callers.
func (c *Client) Invalidate(ctx context.Context, keys ...string) error {
	c.outdate(keys)

	var errs []error
	for _, k := range keys {
		if err := c.cache.DeletePrefix(ctx, cacheKey(k)); err != nil {
			errs = append(errs, err)
		}
	}

	c.mu.Lock()
	for _, o := range c.observers {
		for _, k := range keys {
			if matches(o.key, k) {
				signal(o.invalidated)
				break
			}
		}
	}
	c.mu.Unlock()

	c.logger.WithField("keys", keys).Debug("queries invalidated")
	return errors.Join(errs...)
}

// Observers returns the number of live watchers.
func (c *Client) Observers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.observers)
}

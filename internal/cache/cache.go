package cache

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"field-mapper/internal/convert"
	"field-mapper/options"
)

const meterName = "field-mapper"

// Key identifies one converter.
type Key struct {
	Source reflect.Type
	Target reflect.Type
	Flags  options.Flag
}

type innerKey struct {
	source reflect.Type
	flags  options.Flag
}

// BuildFunc constructs the converter for a key on a cache miss.
type BuildFunc func(Key) (*convert.Converter, error)

// Stats is a point-in-time view of the cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Builds    int64
	Discarded int64 // converters built concurrently and thrown away
}

// Cache is safe for concurrent use.
type Cache struct {
	build   BuildFunc
	onStore func(Key, *convert.Converter)
	logger  *zap.Logger

	targets sync.Map // reflect.Type -> *sync.Map (innerKey -> *convert.Converter)
	size    atomic.Int64

	hits, misses, builds, discarded atomic.Int64

	counters struct {
		hits, misses, builds, discarded metric.Int64Counter
	}
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger logs converter builds at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOnStore registers fn to run once for every converter that is stored.
// Converters discarded after a concurrent build are not reported.
func WithOnStore(fn func(Key, *convert.Converter)) Option {
	return func(c *Cache) {
		c.onStore = fn
	}
}

// WithMeter exports the counters through meter instead of the global meter.
func WithMeter(meter metric.Meter) Option {
	return func(c *Cache) {
		if meter != nil {
			c.initCounters(meter)
		}
	}
}

// New creates an empty cache that calls build on misses.
func New(build BuildFunc, opts ...Option) *Cache {
	c := &Cache{
		build:  build,
		logger: zap.NewNop(),
	}

	c.initCounters(otel.Meter(meterName))

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// initCounters falls back to no-op instruments when meter rejects a name.
func (c *Cache) initCounters(meter metric.Meter) {
	counter := func(name, desc string) metric.Int64Counter {
		ctr, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit("{converter}"))
		if err != nil {
			ctr, _ = otel.Meter(meterName).Int64Counter(name)
		}

		return ctr
	}

	c.counters.hits = counter("fieldmapper.cache.hits", "Converter lookups served from the cache")
	c.counters.misses = counter("fieldmapper.cache.misses", "Converter lookups that required a build")
	c.counters.builds = counter("fieldmapper.cache.builds", "Converters constructed")
	c.counters.discarded = counter("fieldmapper.cache.discarded", "Converters built concurrently and dropped")
}

// Get returns the cached converter for key without building it.
func (c *Cache) Get(key Key) (*convert.Converter, bool) {
	inner, ok := c.targets.Load(key.Target)
	if !ok {
		return nil, false
	}

	conv, ok := inner.(*sync.Map).Load(innerKey{source: key.Source, flags: key.Flags})
	if !ok {
		return nil, false
	}

	return conv.(*convert.Converter), true
}

// GetOrBuild returns the converter for key, building and storing it on a miss.
// Concurrent misses on the same key may build more than once; exactly one
// converter is stored and every caller receives it. Build errors are not cached.
func (c *Cache) GetOrBuild(key Key) (*convert.Converter, error) {
	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String("flags", key.Flags.String()))

	if conv, ok := c.Get(key); ok {
		c.hits.Add(1)
		c.counters.hits.Add(ctx, 1, attrs)

		return conv, nil
	}

	c.misses.Add(1)
	c.counters.misses.Add(ctx, 1, attrs)

	conv, err := c.build(key)
	if err != nil {
		return nil, err
	}

	c.builds.Add(1)
	c.counters.builds.Add(ctx, 1, attrs)

	fresh, _ := c.targets.LoadOrStore(key.Target, &sync.Map{})
	actual, loaded := fresh.(*sync.Map).LoadOrStore(innerKey{source: key.Source, flags: key.Flags}, conv)

	if loaded {
		c.discarded.Add(1)
		c.counters.discarded.Add(ctx, 1, attrs)
	} else {
		c.size.Add(1)
		c.logger.Debug("converter built",
			zap.Stringer("source", key.Source),
			zap.Stringer("target", key.Target),
			zap.Stringer("flags", key.Flags),
			zap.Strings("fields", conv.Fields()),
		)

		if c.onStore != nil {
			c.onStore(key, conv)
		}
	}

	return actual.(*convert.Converter), nil
}

// Len returns the number of stored converters.
func (c *Cache) Len() int {
	return int(c.size.Load())
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Builds:    c.builds.Load(),
		Discarded: c.discarded.Load(),
	}
}

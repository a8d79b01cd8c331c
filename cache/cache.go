/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package cache implements the identity-keyed entity cache: at most one
// facade per underlying entity, per cache.
//
// Keys are compared with the provider's own identity (apis.Entity Hash and
// Equal), never with Go interface equality, so providers are free to hand
// out a fresh handle for the same element on every call.
//
// The cache only grows. There is no eviction and no capacity bound; Reset is
// the single way to drop entries and exists for hosts that scope a cache to
// a unit of work.
package cache

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"dirpx.dev/facade/apis"
	"dirpx.dev/facade/config"
)

// MeterName is the instrumentation scope of cache metrics.
const MeterName = "dirpx.dev/facade/cache"

// entry is one (origin, facade) association.
type entry[O apis.Entity, F any] struct {
	origin O
	value  F
}

// Cache maps underlying entities of one kind to their facades.
// It is safe for concurrent use.
type Cache[O apis.Entity, F any] struct {
	// name labels logs and metrics, typically the kind name.
	name string
	log  *zap.Logger

	lookups metric.Int64Counter
	hit     metric.AddOption
	miss    metric.AddOption

	// mu guards buckets and count. Builds run under the write lock so that a
	// losing goroutine never observes a second instance.
	mu      sync.RWMutex
	buckets map[uint64][]entry[O, F]
	count   int
}

// New constructs an empty cache labelled name.
func New[O apis.Entity, F any](name string, cfg apis.Config) *Cache[O, F] {
	cfg = config.Normalize(cfg)

	lookups, err := cfg.MeterProvider.Meter(MeterName).Int64Counter(
		"facade.cache.lookups",
		metric.WithDescription("Entity cache lookups, partitioned by cache and hit."),
	)
	if err != nil {
		cfg.Logger.Warn("cache metrics disabled", zap.String("cache", name), zap.Error(err))
		lookups = noop.Int64Counter{}
	}

	return &Cache[O, F]{
		name:    name,
		log:     cfg.Logger.With(zap.String("cache", name)),
		lookups: lookups,
		hit:     metric.WithAttributeSet(attribute.NewSet(attribute.String("cache", name), attribute.Bool("hit", true))),
		miss:    metric.WithAttributeSet(attribute.NewSet(attribute.String("cache", name), attribute.Bool("hit", false))),
		buckets: make(map[uint64][]entry[O, F], cfg.InitialCapacity),
	}
}

// Name returns the cache label.
func (c *Cache[O, F]) Name() string {
	return c.name
}

// GetOrCreate returns the facade bound to origin, building and inserting it
// with build on first request. build runs at most once per origin identity
// (between Resets) and must not call back into the same cache.
func (c *Cache[O, F]) GetOrCreate(origin O, build func(O) F) F {
	h := origin.Hash()

	// Fast read path.
	c.mu.RLock()
	v, ok := c.find(h, origin)
	c.mu.RUnlock()
	if ok {
		c.lookups.Add(context.Background(), 1, c.hit)
		return v
	}

	// Write path: re-check under lock in case another goroutine stored meanwhile.
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.find(h, origin); ok {
		c.lookups.Add(context.Background(), 1, c.hit)
		return v
	}

	v = build(origin)
	c.buckets[h] = append(c.buckets[h], entry[O, F]{origin: origin, value: v})
	c.count++
	c.lookups.Add(context.Background(), 1, c.miss)
	if ce := c.log.Check(zap.DebugLevel, "cache miss"); ce != nil {
		ce.Write(zap.Uint64("hash", h), zap.Int("size", c.count))
	}
	return v
}

// Lookup returns the facade bound to origin without creating one.
func (c *Cache[O, F]) Lookup(origin O) (F, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.find(origin.Hash(), origin)
}

// find scans the bucket for h. Callers hold mu.
func (c *Cache[O, F]) find(h uint64, origin O) (F, bool) {
	for _, e := range c.buckets[h] {
		if e.origin.Equal(origin) {
			return e.value, true
		}
	}
	var zero F
	return zero, false
}

// Len returns the number of cached facades.
func (c *Cache[O, F]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.count
}

// Reset drops every entry. Facades handed out before the reset stay valid
// and keep comparing equal to facades built afterwards, but are no longer
// the same instance.
func (c *Cache[O, F]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log.Debug("cache reset", zap.Int("dropped", c.count))
	c.buckets = make(map[uint64][]entry[O, F])
	c.count = 0
}

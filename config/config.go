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

package config

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"dirpx.dev/facade/apis"
)

const (
	// DefaultInitialCapacity represents the default for InitialCapacity.
	// Caches grow on demand; this only avoids the first few rehashes.
	DefaultInitialCapacity = 64
)

// New constructs an apis.Config from the given options.
func New(opts ...Option) apis.Config {
	cfg := Default()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return Normalize(cfg)
}

// Default is the configuration used when none is provided.
// The logger discards everything and the meter provider is the global one.
func Default() apis.Config {
	return apis.Config{
		Logger:          zap.NewNop(),
		MeterProvider:   otel.GetMeterProvider(),
		InitialCapacity: DefaultInitialCapacity,
	}
}

// Normalize fills zero fields of cfg with defaults.
func Normalize(cfg apis.Config) apis.Config {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.MeterProvider == nil {
		cfg.MeterProvider = otel.GetMeterProvider()
	}
	if cfg.InitialCapacity < 0 {
		cfg.InitialCapacity = DefaultInitialCapacity
	}
	return cfg
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithLogger sets the Logger option. A nil logger resets to the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *apis.Config) {
		if l == nil {
			l = zap.NewNop()
		}
		c.Logger = l
	}
}

// WithMeterProvider sets the MeterProvider option.
// A nil provider resets to the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *apis.Config) {
		if mp == nil {
			mp = otel.GetMeterProvider()
		}
		c.MeterProvider = mp
	}
}

// WithInitialCapacity sets the InitialCapacity option.
// A negative value resets to the default.
func WithInitialCapacity(n int) Option {
	return func(c *apis.Config) {
		if n < 0 {
			c.InitialCapacity = DefaultInitialCapacity
			return
		}
		c.InitialCapacity = n
	}
}

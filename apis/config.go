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

package apis

import (
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Config carries the knobs of a facade universe and its caches.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Logger receives cache diagnostics. Never nil after config.New.
	Logger *zap.Logger

	// MeterProvider supplies the meter for cache lookup counters.
	// Never nil after config.New.
	MeterProvider metric.MeterProvider

	// InitialCapacity presizes each entity cache.
	InitialCapacity int
}

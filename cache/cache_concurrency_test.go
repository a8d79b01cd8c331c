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

package cache_test

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"dirpx.dev/facade/cache"
	"dirpx.dev/facade/config"
)

// TestConcurrentGetOrCreate verifies that concurrent callers asking for the
// same identity all receive the single winning instance, and that build
// runs exactly once per identity.
func TestConcurrentGetOrCreate(t *testing.T) {
	c := cache.New[*handle, *facade]("Field", config.Default())

	const names = 10
	var builds atomic.Int64
	counting := func(h *handle) *facade {
		builds.Add(1)
		return build(h)
	}

	workers := runtime.GOMAXPROCS(0) * 4
	results := make([][names]*facade, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < 2000; i++ {
				j := (i + w) % names
				f := c.GetOrCreate(&handle{name: fmt.Sprintf("f%d", j), bucket: uint64(j % 3)}, counting)
				if prev := results[w][j]; prev != nil && prev != f {
					return fmt.Errorf("worker %d saw two instances for f%d", w, j)
				}
				results[w][j] = f
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(names), builds.Load())
	assert.Equal(t, names, c.Len())
	for w := 1; w < workers; w++ {
		for j := 0; j < names; j++ {
			assert.Same(t, results[0][j], results[w][j])
		}
	}
}

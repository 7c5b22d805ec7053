/*
   Copyright 2025 The DIRPX Authors

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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/tryx/kind"
)

func TestStore_StartsAtDefaultsVersionOne(t *testing.T) {
	s := NewStore()

	cfg, v := s.Load()
	assert.Equal(t, uint64(1), v)
	assert.True(t, cfg.CaptureStackTrace)
	assert.True(t, cfg.IncludeSource)
	assert.False(t, cfg.MinimalErrors)
	assert.Equal(t, kind.UnknownError, cfg.DefaultKind)
	assert.Equal(t, defaultStackDepth, cfg.StackTraceLimit)
	assert.NotNil(t, cfg.Serializer)
}

func TestStore_ApplyBumpsVersion(t *testing.T) {
	s := NewStore()

	v1 := s.Apply(Partial{CaptureStackTrace: Bool(false)})
	assert.Equal(t, uint64(2), v1)
	assert.False(t, s.Get().CaptureStackTrace)

	v2 := s.Apply(Partial{StackTraceLimit: Int(8)})
	assert.Equal(t, uint64(3), v2)
	assert.Equal(t, 8, s.Get().StackTraceLimit)
	// The earlier overlay survives later ones.
	assert.False(t, s.Get().CaptureStackTrace)
}

func TestStore_ApplyNormalizesBadValues(t *testing.T) {
	s := NewStore()

	s.Apply(Partial{
		StackTraceLimit: Int(-5),
		DefaultKind:     KindOf(kind.Kind("not a kind")),
	})

	cfg := s.Get()
	assert.Equal(t, defaultStackDepth, cfg.StackTraceLimit)
	assert.Equal(t, kind.UnknownError, cfg.DefaultKind)
}

func TestStore_MutatingReturnedConfigHasNoEffect(t *testing.T) {
	s := NewStore()

	cfg := s.Get()
	cfg.CaptureStackTrace = false
	cfg.StackTraceLimit = 1

	assert.True(t, s.Get().CaptureStackTrace)
	assert.Equal(t, defaultStackDepth, s.Get().StackTraceLimit)
}

func TestStore_ResetRestoresDefaultsAndBumpsVersion(t *testing.T) {
	s := NewStore()
	s.Apply(Partial{MinimalErrors: Bool(true), OnError: func(error) {}})
	require.True(t, s.Get().MinimalErrors)

	v := s.Reset()
	assert.Equal(t, uint64(3), v)
	cfg := s.Get()
	assert.False(t, cfg.MinimalErrors)
	assert.Nil(t, cfg.OnError)
}

func TestStore_LoadIsConsistent(t *testing.T) {
	s := NewStore()
	// Each write flips the limit in lockstep with the version so a torn read
	// would surface as a mismatched pair.
	const writes = 2000

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < writes; i++ {
			s.Apply(Partial{StackTraceLimit: Int(10 + i)})
		}
	}()

	for {
		cfg, v := s.Load()
		if v > 1 {
			require.Equal(t, int(v)+8, cfg.StackTraceLimit,
				"version %d paired with limit %d", v, cfg.StackTraceLimit)
		}
		select {
		case <-done:
			cfg, v = s.Load()
			assert.Equal(t, uint64(writes+1), v)
			assert.Equal(t, int(v)+8, cfg.StackTraceLimit)
			return
		default:
		}
	}
}

func TestStore_OnChange(t *testing.T) {
	s := NewStore()

	var mu sync.Mutex
	var versions []uint64
	cancel := s.OnChange(func(_ Config, v uint64) {
		mu.Lock()
		versions = append(versions, v)
		mu.Unlock()
	})

	s.Apply(Partial{CaptureStackTrace: Bool(false)})
	s.Reset()
	cancel()
	s.Apply(Partial{CaptureStackTrace: Bool(false)})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []uint64{2, 3}, versions)
}

func TestStore_OnChangeCancelIsIdempotent(t *testing.T) {
	s := NewStore()
	calls := 0
	cancel := s.OnChange(func(Config, uint64) { calls++ })

	cancel()
	cancel()
	s.Apply(Partial{CaptureStackTrace: Bool(false)})
	assert.Zero(t, calls)
}

func TestStore_PanickingListenerIsContained(t *testing.T) {
	s := NewStore()

	s.OnChange(func(Config, uint64) { panic("observer bug") })
	seen := 0
	s.OnChange(func(Config, uint64) { seen++ })

	require.NotPanics(t, func() {
		s.Apply(Partial{CaptureStackTrace: Bool(false)})
	})
	assert.Equal(t, 1, seen)
}

func TestStore_ConcurrentReadersAndWriters(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				s.Apply(Partial{SkipTimestamp: Bool(i%2 == 0)})
			}
		}()
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var last uint64
			for i := 0; i < 2000; i++ {
				_, v := s.Load()
				if v < last {
					t.Error("version went backwards")
					return
				}
				last = v
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(1+4*500), s.Version())
}

func TestPackageLevelHelpers(t *testing.T) {
	t.Cleanup(func() { Reset() })

	before := Default().Version()
	v := Configure(Partial{SkipTimestamp: Bool(true)})
	assert.Greater(t, v, before)
	assert.True(t, Get().SkipTimestamp)

	_, err := ConfigurePreset("no-such-preset")
	assert.ErrorIs(t, err, ErrUnknownPreset)

	Reset()
	assert.False(t, Get().SkipTimestamp)
}

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

package tryx

import (
	"context"
	"errors"
	"io/fs"
	"net"
	"reflect"
	"runtime"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"dirpx.dev/tryx/config"
	"dirpx.dev/tryx/kind"
)

// Rule maps a predicate to a kind tag. From evaluates rules in descending
// priority order and assigns the kind of the first match.
//
// Rules come in two flavors:
//
//   - value rules (ByType=false) inspect the concrete error value, typically
//     with errors.Is against a sentinel. They run on every classification
//     and are never cached, because two values of the same dynamic type can
//     classify differently (all errors.New values share one type).
//   - type rules (ByType=true) are pure functions of the dynamic type —
//     interface checks like net.Error or runtime.Error. Their combined
//     outcome is cached per reflect.Type in a bounded LRU, so repeated
//     failures of the same shape skip the rule scan entirely.
type Rule struct {
	// Name identifies the rule in diagnostics. Must be non-empty.
	Name string

	// Priority orders evaluation; higher runs first. Built-in rules use
	// priorities in the 0..100 range, so user rules above 100 preempt them.
	Priority int

	// Match reports whether the rule applies to err.
	Match func(err error) bool

	// Kind is assigned when Match returns true. Must be a valid kind.
	Kind kind.Kind

	// ByType marks Match as a pure function of the dynamic type of err,
	// making the outcome cacheable per type.
	ByType bool
}

// classifierCacheSize bounds the per-type outcome cache. Processes see tens
// of distinct error types, not thousands; 128 leaves generous headroom.
const classifierCacheSize = 128

// classifier holds the process-wide rule set and the per-type outcome cache.
// Reads (classification) take the read lock; rule registration takes the
// write lock and drops the cache, since new rules can change any outcome.
var classifier = struct {
	mu    sync.RWMutex
	gen   uint64 // bumped on every registration; guards late cache writes
	value []Rule // ByType=false, sorted by descending priority
	typed []Rule // ByType=true, sorted by descending priority
	cache *lru.Cache[reflect.Type, kind.Kind]
}{}

func init() {
	// Size is a positive constant; the only error lru.New returns is
	// "size must be positive".
	classifier.cache, _ = lru.New[reflect.Type, kind.Kind](classifierCacheSize)

	builtin := []Rule{
		// Cancellation sentinels. Value rules: context.Canceled shares
		// its dynamic type with every errors.New value, so these must
		// never be cached by type.
		{Name: "context-deadline", Priority: 90, Kind: kind.TimeoutError,
			Match: func(err error) bool { return errors.Is(err, context.DeadlineExceeded) }},
		{Name: "context-canceled", Priority: 90, Kind: kind.AbortError,
			Match: func(err error) bool { return errors.Is(err, context.Canceled) }},

		// Filesystem sentinels.
		{Name: "fs-not-exist", Priority: 80, Kind: kind.NotFoundError,
			Match: func(err error) bool { return errors.Is(err, fs.ErrNotExist) }},
		{Name: "fs-permission", Priority: 80, Kind: kind.PermissionError,
			Match: func(err error) bool { return errors.Is(err, fs.ErrPermission) }},

		// Library sentinels.
		{Name: "config-preset", Priority: 70, Kind: kind.ConfigError,
			Match: func(err error) bool { return errors.Is(err, config.ErrUnknownPreset) }},

		// Interface checks — pure functions of the dynamic type.
		{Name: "runtime-error", Priority: 60, Kind: kind.PanicError, ByType: true,
			Match: func(err error) bool { _, ok := err.(runtime.Error); return ok }},
		{Name: "net-error", Priority: 50, Kind: kind.NetworkError, ByType: true,
			Match: func(err error) bool { _, ok := err.(net.Error); return ok }},
	}
	for _, r := range builtin {
		mustAddRule(r)
	}
}

// RegisterRule adds a classification rule to the process-wide set. Rules
// registered with a priority above 100 run before all built-in rules.
// Registration drops the per-type outcome cache.
//
// Returns an error for an unnamed rule, a nil predicate, or an invalid kind.
func RegisterRule(r Rule) error {
	if r.Name == "" {
		return errors.New("tryx: classification rule needs a name")
	}
	if r.Match == nil {
		return errors.New("tryx: classification rule needs a predicate")
	}
	if err := kind.Validate(r.Kind); err != nil {
		return err
	}
	addRule(r)
	return nil
}

func mustAddRule(r Rule) {
	if r.Name == "" || r.Match == nil || kind.Validate(r.Kind) != nil {
		panic("tryx: invalid built-in classification rule: " + r.Name)
	}
	addRule(r)
}

func addRule(r Rule) {
	classifier.mu.Lock()
	defer classifier.mu.Unlock()
	if r.ByType {
		classifier.typed = insertByPriority(classifier.typed, r)
	} else {
		classifier.value = insertByPriority(classifier.value, r)
	}
	classifier.gen++
	classifier.cache.Purge()
}

func insertByPriority(rules []Rule, r Rule) []Rule {
	rules = append(rules, r)
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules
}

// classify resolves the kind for an arbitrary error. Value rules run first
// (uncached), then the cached type-rule phase, then the terminal fallback
// kind.Error for plain error values.
func classify(err error) kind.Kind {
	classifier.mu.RLock()
	gen := classifier.gen
	value := classifier.value
	typed := classifier.typed
	classifier.mu.RUnlock()

	for _, r := range value {
		if r.Match(err) {
			return r.Kind
		}
	}

	t := reflect.TypeOf(err)
	if t == nil {
		return kind.Error
	}
	if k, ok := classifier.cache.Get(t); ok {
		return k
	}

	k := kind.Error
	for _, r := range typed {
		if r.Match(err) {
			k = r.Kind
			break
		}
	}
	cacheOutcome(gen, t, k)
	return k
}

// cacheOutcome records a typed-phase outcome, unless a rule was registered
// after the snapshot the outcome was computed against. A late write past the
// registration's purge would pin the old rule set's answer indefinitely.
// Holding the read lock keeps the generation check and the insert atomic
// with respect to addRule.
func cacheOutcome(gen uint64, t reflect.Type, k kind.Kind) {
	classifier.mu.RLock()
	defer classifier.mu.RUnlock()
	if classifier.gen == gen {
		classifier.cache.Add(t, k)
	}
}

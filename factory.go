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
	"fmt"
	"sync/atomic"
	"time"

	"dirpx.dev/tryx/config"
	"dirpx.dev/tryx/kind"
)

// capturePlan is the factory's pre-computed view of one configuration
// version: every per-error decision (capture stack? record source? stamp
// time?) reduced to plain booleans, so the hot path does no config
// interpretation at all.
//
// Plans are immutable and keyed by the store version that produced them.
// A plan built for version N is valid exactly as long as the store still
// reports version N.
type capturePlan struct {
	version uint64

	captureStack   bool
	stackLimit     int
	includeSource  bool
	skipTimestamp  bool
	skipContext    bool
	suppressEvents bool
	defaultKind    kind.Kind
	onError        func(err error)
}

func buildPlan(cfg config.Config, version uint64) *capturePlan {
	p := &capturePlan{
		version:        version,
		captureStack:   cfg.CaptureStackTrace,
		stackLimit:     cfg.StackTraceLimit,
		includeSource:  cfg.IncludeSource,
		skipTimestamp:  cfg.SkipTimestamp,
		skipContext:    cfg.SkipContext,
		suppressEvents: cfg.SuppressEvents,
		defaultKind:    cfg.DefaultKind,
		onError:        cfg.OnError,
	}
	if cfg.MinimalErrors {
		p.captureStack = false
		p.includeSource = false
		p.skipTimestamp = true
		p.skipContext = true
	}
	return p
}

// Factory creates structured errors according to the configuration of one
// Store. It caches a capturePlan per configuration version: the plan is
// rebuilt lazily the first time a creation call observes a newer store
// version, so a factory never acts on stale configuration and never reads
// the full Config on the hot path.
//
// The zero Factory is not usable; construct with NewFactory. Package-level
// New/Wrap/From go through a default factory bound to config.Default().
type Factory struct {
	store *config.Store
	plan  atomic.Pointer[capturePlan]
}

// NewFactory returns a Factory bound to the given configuration store.
// A nil store binds to the process-wide default store.
func NewFactory(store *config.Store) *Factory {
	if store == nil {
		store = config.Default()
	}
	return &Factory{store: store}
}

// currentPlan returns the capture plan for the store's current version,
// rebuilding it if the store moved on. Concurrent rebuilds for the same
// version are harmless: the plans are identical, last writer wins.
func (f *Factory) currentPlan() *capturePlan {
	if p := f.plan.Load(); p != nil && p.version == f.store.Version() {
		return p
	}
	cfg, version := f.store.Load()
	p := buildPlan(cfg, version)
	f.plan.Store(p)
	return p
}

// New creates a structured error with the given kind and message.
// An empty or invalid kind falls back to the configured default kind.
func (f *Factory) New(k kind.Kind, msg string, opts ...Option) *Error {
	return f.build(k, msg, nil, 1, opts)
}

// Wrap creates a structured error around an existing cause. The cause is
// preserved verbatim (errors.Is / errors.As keep working through Unwrap) and
// the message defaults to the cause's own unless overridden by an option.
// A nil cause yields nil.
func (f *Factory) Wrap(k kind.Kind, cause error, opts ...Option) *Error {
	if cause == nil {
		return nil
	}
	return f.build(k, safeMessage(cause), cause, 1, opts)
}

// From converts an arbitrary value — typically one recovered from a panic or
// returned by foreign code — into a structured error:
//
//   - nil stays nil;
//   - an existing *Error passes through with only the options applied, so
//     re-classification never loses information;
//   - an error value is classified through the registered rules;
//   - a string becomes a StringError;
//   - anything else becomes an UnknownError with a "%v" rendering.
func (f *Factory) From(v any, opts ...Option) *Error {
	return f.from(v, 1, opts)
}

func (f *Factory) from(v any, skip int, opts []Option) *Error {
	switch x := v.(type) {
	case nil:
		return nil
	case *Error:
		if x == nil {
			return nil
		}
		for _, opt := range opts {
			x = opt(x)
		}
		return x
	case error:
		return f.build(classify(x), safeMessage(x), x, skip+1, opts)
	case string:
		return f.build(kind.StringError, x, nil, skip+1, opts)
	default:
		return f.build(kind.UnknownError, fmt.Sprintf("%v", x), nil, skip+1, opts)
	}
}

// safeMessage renders a cause's message. Error methods are foreign code and
// may themselves panic — a typed-nil receiver dereferencing itself is the
// classic case — so a failing method degrades to the dynamic type name
// instead of escaping through the wrappers.
func safeMessage(err error) (msg string) {
	defer func() {
		if recover() != nil {
			msg = fmt.Sprintf("%T", err)
		}
	}()
	return err.Error()
}

// build is the single construction path behind New, Wrap and From.
// skip counts the exported frames between the user call site and build.
func (f *Factory) build(k kind.Kind, msg string, cause error, skip int, opts []Option) *Error {
	plan := f.currentPlan()

	if kind.Validate(k) != nil {
		k = plan.defaultKind
	}

	e := &Error{
		Kind:    k,
		Message: msg,
		Cause:   cause,
	}
	if plan.includeSource {
		e.Source = callerFrame(skip)
	}
	if plan.captureStack {
		e.Stack = captureStack(skip, plan.stackLimit)
	}
	if !plan.skipTimestamp {
		e.Timestamp = time.Now()
	}

	for _, opt := range opts {
		e = opt(e)
	}
	if plan.skipContext {
		e.Context = nil
	}

	emit(e, plan)
	return e
}

// defaultFactory backs the package-level constructors. It is bound to the
// process-wide configuration store, so config.Configure takes effect on the
// very next New/Wrap/From call.
var defaultFactory = NewFactory(config.Default())

// DefaultFactory returns the factory behind the package-level constructors.
func DefaultFactory() *Factory { return defaultFactory }

// New creates a structured error via the default factory.
func New(k kind.Kind, msg string, opts ...Option) *Error {
	return defaultFactory.build(k, msg, nil, 1, opts)
}

// Wrap wraps an existing cause via the default factory. Nil in, nil out.
func Wrap(k kind.Kind, cause error, opts ...Option) *Error {
	if cause == nil {
		return nil
	}
	return defaultFactory.build(k, safeMessage(cause), cause, 1, opts)
}

// From classifies an arbitrary value via the default factory.
// See Factory.From for the conversion rules.
func From(v any, opts ...Option) *Error {
	return defaultFactory.from(v, 1, opts)
}

// Package weft implements the reactive core: signals, derived signals,
// dependency capture, and the label-based update scheduler.
//
// All state lives on an explicit *Runtime threaded through calls; there is
// no ambient goroutine-local tracking. A Runtime is cooperatively
// single-threaded: every signal write, tracked read, and flush must happen
// on one goroutine (the runtime's dispatch loop, when started via Run).
// Other goroutines hand work to the loop with Do. Because there is no
// parallelism inside a runtime, the reactive graph takes no locks.
package weft

import (
	"log/slog"
	"runtime/debug"
	"sync/atomic"

	mapset "github.com/deckarep/golang-set/v2"
)

// maxFlushPasses bounds cascading flushes within one tick. Callers that
// keep scheduling labels past this limit indicate a feedback loop.
const maxFlushPasses = 100

// frame is one entry of the dependency-capture stack. Signals read while
// a frame is active record themselves into it and attach its caller.
type frame struct {
	caller    *Caller
	touched   []Reactive
	members   mapset.Set[Reactive]
	untracked bool
}

func (f *frame) record(src Reactive) {
	if f.members.Contains(src) {
		return
	}
	f.members.Add(src)
	f.touched = append(f.touched, src)
}

// Runtime owns the dependency-capture stack, the scheduled-label queue,
// and the cooperative dispatch loop. Create one per application (or per
// test) with NewRuntime.
type Runtime struct {
	logger *slog.Logger

	// frames is the dependency-capture stack. The top frame receives
	// every tracked signal read.
	frames []*frame

	// scheduled holds labels with pending callers, FIFO by first enqueue.
	scheduled    []*Label
	scheduledSet mapset.Set[*Label]

	// dispatchDepth is non-zero while inside Dispatch. The outermost
	// exit runs the flush, which realizes the "once per tick" policy.
	dispatchDepth int
	flushing      bool

	// lazy, when non-nil, absorbs every notification instead of routing.
	lazy *lazyScope

	loopCh      chan func()
	done        chan struct{}
	loopRunning atomic.Bool
	closed      atomic.Bool
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithLogger sets the runtime's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) RuntimeOption {
	return func(rt *Runtime) {
		rt.logger = logger
	}
}

// WithQueueSize sets the dispatch loop's queue capacity.
func WithQueueSize(n int) RuntimeOption {
	return func(rt *Runtime) {
		if n > 0 {
			rt.loopCh = make(chan func(), n)
		}
	}
}

// NewRuntime creates a runtime ready for synchronous use. Call Run in a
// goroutine to enable posting work from other goroutines with Do.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	rt := &Runtime{
		logger:       slog.Default(),
		scheduledSet: mapset.NewThreadUnsafeSet[*Label](),
		loopCh:       make(chan func(), 256),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Logger returns the runtime's logger.
func (rt *Runtime) Logger() *slog.Logger {
	return rt.logger
}

// touch records a read of src into the active frame and attaches the
// frame's caller as a subscriber. No-op outside tracking or inside
// Untracked.
func (rt *Runtime) touch(src Reactive) {
	if len(rt.frames) == 0 {
		return
	}
	f := rt.frames[len(rt.frames)-1]
	if f.untracked {
		return
	}
	f.record(src)
	src.Attach(f.caller)
}

// Track runs fn with a fresh capture frame for the given caller. Every
// signal read inside fn attaches the caller as a subscriber. The returned
// subscriptions are the teardown handles for exactly the sources fn
// touched; whoever owns the caller must cancel them when done.
func (rt *Runtime) Track(c *Caller, fn func()) []Subscription {
	f := &frame{
		caller:  c,
		members: mapset.NewThreadUnsafeSet[Reactive](),
	}
	rt.frames = append(rt.frames, f)
	defer func() {
		rt.frames = rt.frames[:len(rt.frames)-1]
	}()

	fn()

	subs := make([]Subscription, len(f.touched))
	for i, src := range f.touched {
		subs[i] = Subscription{src: src, caller: c}
	}
	return subs
}

// Untracked runs fn with dependency capture suppressed. Signal reads
// inside fn register nothing.
func (rt *Runtime) Untracked(fn func()) {
	rt.frames = append(rt.frames, &frame{untracked: true})
	defer func() {
		rt.frames = rt.frames[:len(rt.frames)-1]
	}()
	fn()
}

// Tracking reports whether a capture frame is active.
func (rt *Runtime) Tracking() bool {
	if len(rt.frames) == 0 {
		return false
	}
	return !rt.frames[len(rt.frames)-1].untracked
}

// Update routes caller records: unlabeled callers run inline and
// synchronously, labeled callers are handed to their label. Inside a lazy
// scope, everything is absorbed instead and replayed by the scope's flush
// thunk. A call outside any dispatch forms its own tick, so its labeled
// work flushes before Update returns.
func (rt *Runtime) Update(callers ...*Caller) {
	if rt.lazy != nil {
		rt.lazy.add(callers)
		return
	}
	if rt.dispatchDepth > 0 {
		rt.route(callers)
		return
	}
	rt.Dispatch(func() {
		rt.route(callers)
	})
}

func (rt *Runtime) route(callers []*Caller) {
	for _, c := range callers {
		if c == nil {
			continue
		}
		if c.Label == nil {
			c.Fn()
			continue
		}
		c.Label.Update(c)
	}
}

// schedule queues a label for the tick's flush. First-enqueue order is
// preserved across labels.
func (rt *Runtime) schedule(l *Label) {
	if rt.scheduledSet.Contains(l) {
		return
	}
	rt.scheduledSet.Add(l)
	rt.scheduled = append(rt.scheduled, l)
}

// Dispatch runs fn as one tick: labeled callers enqueued anywhere inside
// fn are flushed exactly once when the outermost Dispatch returns.
// Nested calls join the enclosing tick. Panics propagate to the caller
// after the dispatch depth is restored; a panicked tick flushes nothing,
// its pending work survives for the next tick.
func (rt *Runtime) Dispatch(fn func()) {
	rt.dispatchDepth++
	completed := false
	defer func() {
		rt.dispatchDepth--
		if completed && rt.dispatchDepth == 0 {
			rt.flush()
		}
	}()
	fn()
	completed = true
}

// flush drains scheduled labels until none remain. Labels scheduled by
// running callers join the same tick. A feedback loop that exceeds
// maxFlushPasses is logged and abandoned rather than spinning forever.
func (rt *Runtime) flush() {
	if rt.flushing {
		return
	}
	rt.flushing = true
	defer func() { rt.flushing = false }()

	for pass := 0; len(rt.scheduled) > 0; pass++ {
		if pass >= maxFlushPasses {
			rt.logger.Error("flush pass budget exceeded, dropping pending labels",
				"passes", pass,
				"pending", len(rt.scheduled))
			rt.scheduled = rt.scheduled[:0]
			rt.scheduledSet.Clear()
			return
		}
		batch := rt.scheduled
		rt.scheduled = nil
		rt.scheduledSet.Clear()
		for _, l := range batch {
			l.Proc()
		}
	}
}

// lazyScope accumulates callers that would otherwise be notified,
// deduplicated by identity in first-seen order.
type lazyScope struct {
	order   []*Caller
	members mapset.Set[*Caller]
}

func (ls *lazyScope) add(callers []*Caller) {
	for _, c := range callers {
		if c == nil || ls.members.Contains(c) {
			continue
		}
		ls.members.Add(c)
		ls.order = append(ls.order, c)
	}
}

// Lazy runs fn with notification postponed entirely: signal writes inside
// update values but notify nobody. The returned thunk replays every
// absorbed caller exactly once, through normal routing. Use it when a
// bulk operation would re-trigger the same subscriber many times.
func (rt *Runtime) Lazy(fn func()) (flush func()) {
	prev := rt.lazy
	scope := &lazyScope{members: mapset.NewThreadUnsafeSet[*Caller]()}
	rt.lazy = scope
	defer func() { rt.lazy = prev }()

	fn()

	var flushed bool
	return func() {
		if flushed {
			return
		}
		flushed = true
		rt.Update(scope.order...)
	}
}

// Batch runs fn lazily and flushes immediately after it returns: many
// writes, one notification per subscriber.
func (rt *Runtime) Batch(fn func()) {
	rt.Lazy(fn)()
}

// Do hands fn to the dispatch loop from any goroutine. When the loop is
// not running, fn is dispatched inline on the calling goroutine, which
// keeps single-goroutine tests and tools synchronous.
func (rt *Runtime) Do(fn func()) {
	if !rt.loopRunning.Load() {
		rt.Dispatch(fn)
		return
	}
	select {
	case rt.loopCh <- fn:
	case <-rt.done:
	}
}

// Run consumes posted closures until Close. Each closure runs as its own
// tick. Panics are recovered and logged so one bad callback cannot kill
// the loop; build and boundary code converts panics into routed errors
// before they reach here.
func (rt *Runtime) Run() {
	if !rt.loopRunning.CompareAndSwap(false, true) {
		return
	}
	defer rt.loopRunning.Store(false)

	for {
		select {
		case fn := <-rt.loopCh:
			rt.runOne(fn)
		case <-rt.done:
			// Drain anything already queued before exiting.
			for {
				select {
				case fn := <-rt.loopCh:
					rt.runOne(fn)
				default:
					return
				}
			}
		}
	}
}

func (rt *Runtime) runOne(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			rt.logger.Error("dispatch panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	rt.Dispatch(fn)
}

// Close stops the dispatch loop. Idempotent.
func (rt *Runtime) Close() {
	if rt.closed.CompareAndSwap(false, true) {
		close(rt.done)
	}
}

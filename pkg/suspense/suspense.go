// Package suspense implements cancellable asynchronous sequences for the
// tree runtime: capture groups that track one in-flight sequence at a
// time, and a transition controller that swaps instances in and out of
// the platform tree with optional awaited effects.
//
// Cancellation is cooperative and token-based. A superseded sequence is
// never interrupted mid-step; it simply stops advancing once it notices
// its token is stale. Platform mutations already issued are not rolled
// back.
package suspense

import (
	"log/slog"

	"github.com/weft-dev/weft/pkg/weft"
)

// Step is one stage of a captured sequence. A step does its work and
// calls done exactly once, immediately for synchronous stages or later
// for stages awaiting an external completion. done may be called from
// any goroutine; advancement is posted back to the runtime loop. A step
// that observes t.Valid() == false should stop issuing work, though the
// group itself also refuses to advance a stale sequence.
type Step func(t Token, done func())

// Token identifies one captured sequence. Steps carry it so work issued
// before a supersession can detect afterwards that it no longer speaks
// for the group.
type Token struct {
	g  *Group
	id uint64
}

// Valid reports whether the token still identifies the group's current
// sequence.
func (t Token) Valid() bool {
	return t.g != nil && t.g.current == t.id
}

// Group tracks one in-flight sequence. A new cancellable capture
// supersedes a running cancellable one; a running non-cancellable
// capture makes new captures wait until it completes.
//
// All methods must be called on the runtime's loop (or, in synchronous
// use, from the single goroutine driving the runtime).
type Group struct {
	rt     *weft.Runtime
	logger *slog.Logger

	nextID  uint64
	current uint64

	active      bool
	cancellable bool

	// waiting holds captures queued behind a non-cancellable sequence,
	// started FIFO as the group frees up.
	waiting []*pending
}

type pending struct {
	cancellable bool
	steps       []Step
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithGroupLogger sets the group's logger. Defaults to the runtime's.
func WithGroupLogger(logger *slog.Logger) GroupOption {
	return func(g *Group) {
		g.logger = logger
	}
}

// NewGroup creates a capture group bound to a runtime.
func NewGroup(rt *weft.Runtime, opts ...GroupOption) *Group {
	g := &Group{
		rt:     rt,
		logger: rt.Logger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Capture starts a new sequence. When a cancellable sequence is already
// running it is abandoned: the group installs a fresh token and the old
// sequence stops advancing at its next step boundary. When a
// non-cancellable sequence is running, the capture is queued and starts
// once the group frees up. Reports whether the sequence started
// immediately.
func (g *Group) Capture(cancellable bool, steps ...Step) bool {
	if g.active && !g.cancellable {
		g.waiting = append(g.waiting, &pending{cancellable: cancellable, steps: steps})
		return false
	}
	g.start(cancellable, steps)
	return true
}

// Cancel abandons the current sequence if it is cancellable. Queued
// captures behind a non-cancellable sequence stay queued.
func (g *Group) Cancel() {
	if !g.active || !g.cancellable {
		return
	}
	g.current++
	g.active = false
	g.startNext()
}

// Busy reports whether a sequence is currently running.
func (g *Group) Busy() bool {
	return g.active
}

func (g *Group) start(cancellable bool, steps []Step) {
	g.nextID++
	g.current = g.nextID
	g.active = true
	g.cancellable = cancellable
	g.runStep(g.current, steps, 0)
}

func (g *Group) startNext() {
	if g.active || len(g.waiting) == 0 {
		return
	}
	next := g.waiting[0]
	g.waiting = g.waiting[1:]
	g.start(next.cancellable, next.steps)
}

// runStep executes steps[i] for sequence id, or finishes the sequence
// when the steps are exhausted. A stale id means the sequence was
// superseded; it is dropped without touching the group's state.
func (g *Group) runStep(id uint64, steps []Step, i int) {
	if g.current != id {
		return
	}
	if i >= len(steps) {
		g.active = false
		g.startNext()
		return
	}

	tok := Token{g: g, id: id}
	fired := false
	done := func() {
		g.rt.Do(func() {
			if fired {
				g.logger.Warn("capture step completed twice", "step", i)
				return
			}
			fired = true
			g.runStep(id, steps, i+1)
		})
	}
	steps[i](tok, done)
}

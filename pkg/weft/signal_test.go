package weft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/weft-dev/weft/pkg/weft"
)

// writing the current value again triggers zero subscriber invocations
func TestSignalEqualWriteIsNoOp(t *testing.T) {
	rt := weft.NewRuntime()
	s := weft.NewSignal(rt, 5)

	runs := 0
	s.Attach(weft.NewCaller(func() { runs++ }, nil))

	s.Set(5)
	assert.Equal(t, 0, runs)

	s.Set(6)
	assert.Equal(t, 1, runs)

	s.Set(6)
	assert.Equal(t, 1, runs)
}

// writing a different value invokes every current subscriber exactly once per flush
func TestSignalNotifiesEachSubscriberOncePerFlush(t *testing.T) {
	rt := weft.NewRuntime()
	s := weft.NewSignal(rt, 0)

	aRuns, bRuns := 0, 0
	label := weft.NewTreeLabel(rt, nil, nil)
	s.Attach(weft.NewCaller(func() { aRuns++ }, label))
	s.Attach(weft.NewCaller(func() { bRuns++ }, label))

	rt.Dispatch(func() {
		s.Set(1)
		s.Set(2)
		s.Set(3)
	})

	assert.Equal(t, 1, aRuns)
	assert.Equal(t, 1, bRuns)
	assert.Equal(t, 3, s.Peek())
}

// a frame reading the same signal twice subscribes once
func TestTrackedReadSubscribesOnce(t *testing.T) {
	rt := weft.NewRuntime()
	s := weft.NewSignal(rt, 1)

	runs := 0
	c := weft.NewCaller(func() { runs++ }, nil)
	subs := rt.Track(c, func() {
		_ = s.Get()
		_ = s.Get()
	})

	assert.Len(t, subs, 1)
	assert.Equal(t, 1, s.SubscriberCount())

	s.Set(2)
	assert.Equal(t, 1, runs)
}

// peek does not subscribe
func TestPeekDoesNotSubscribe(t *testing.T) {
	rt := weft.NewRuntime()
	s := weft.NewSignal(rt, 1)

	c := weft.NewCaller(func() {}, nil)
	subs := rt.Track(c, func() {
		_ = s.Peek()
	})

	assert.Empty(t, subs)
	assert.Equal(t, 0, s.SubscriberCount())
}

// cancelled subscriptions stop receiving notifications
func TestSubscriptionCancel(t *testing.T) {
	rt := weft.NewRuntime()
	s := weft.NewSignal(rt, 1)

	runs := 0
	c := weft.NewCaller(func() { runs++ }, nil)
	subs := rt.Track(c, func() { _ = s.Get() })

	s.Set(2)
	assert.Equal(t, 1, runs)

	for _, sub := range subs {
		sub.Cancel()
	}
	s.Set(3)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 0, s.SubscriberCount())
}

// the reference hook fires once, on first consumption only
func TestOnReferenceFiresOnce(t *testing.T) {
	rt := weft.NewRuntime()
	s := weft.NewSignal(rt, "idle")

	wired := 0
	s.OnReference(func() { wired++ })

	_ = s.Peek()
	assert.Equal(t, 0, wired, "peek must not count as consumption")

	_ = s.Get()
	assert.Equal(t, 1, wired)

	_ = s.Get()
	s.Attach(weft.NewCaller(func() {}, nil))
	assert.Equal(t, 1, wired)
}

// attaching a subscriber counts as consumption for the reference hook
func TestOnReferenceFiresOnAttach(t *testing.T) {
	rt := weft.NewRuntime()
	s := weft.NewSignal(rt, 0)

	wired := 0
	s.OnReference(func() { wired++ })

	s.Attach(weft.NewCaller(func() {}, nil))
	assert.Equal(t, 1, wired)
}

// registering the hook after first use fires it immediately
func TestOnReferenceAfterUseFiresImmediately(t *testing.T) {
	rt := weft.NewRuntime()
	s := weft.NewSignal(rt, 0)
	_ = s.Get()

	wired := 0
	s.OnReference(func() { wired++ })
	assert.Equal(t, 1, wired)
}

// custom equality suppresses notifications for equivalent values
func TestSignalWithEquals(t *testing.T) {
	rt := weft.NewRuntime()
	type point struct{ x, y int }
	s := weft.NewSignal(rt, point{1, 2}).WithEquals(func(a, b point) bool {
		return a.x == b.x
	})

	runs := 0
	s.Attach(weft.NewCaller(func() { runs++ }, nil))

	s.Set(point{1, 99})
	assert.Equal(t, 0, runs, "same x is equal under the custom function")

	s.Set(point{2, 99})
	assert.Equal(t, 1, runs)
}

// update applies a function to the current value
func TestSignalUpdate(t *testing.T) {
	rt := weft.NewRuntime()
	s := weft.NewSignal(rt, 10)

	runs := 0
	s.Attach(weft.NewCaller(func() { runs++ }, nil))

	s.Update(func(v int) int { return v + 1 })
	assert.Equal(t, 11, s.Peek())
	assert.Equal(t, 1, runs)

	s.Update(func(v int) int { return v })
	assert.Equal(t, 1, runs)
}

// slice values fall back to deep equality
func TestSignalSliceEquality(t *testing.T) {
	rt := weft.NewRuntime()
	s := weft.NewSignal(rt, []int{1, 2})

	runs := 0
	s.Attach(weft.NewCaller(func() { runs++ }, nil))

	s.Set([]int{1, 2})
	assert.Equal(t, 0, runs)

	s.Set([]int{1, 2, 3})
	assert.Equal(t, 1, runs)
}

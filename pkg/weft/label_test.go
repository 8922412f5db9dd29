package weft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/weft-dev/weft/pkg/weft"
)

// unlabeled callers run inline at write time
func TestUnlabeledCallerRunsSynchronously(t *testing.T) {
	rt := weft.NewRuntime()
	s := weft.NewSignal(rt, 0)

	var observed int
	s.Attach(weft.NewCaller(func() { observed = s.Peek() }, nil))

	s.Set(7)
	assert.Equal(t, 7, observed, "read-after-write must hold without batching")
}

// immediate labels pass callers straight through
func TestImmediateLabelPassthrough(t *testing.T) {
	rt := weft.NewRuntime()
	label := weft.NewImmediateLabel(rt)

	runs := 0
	c := weft.NewCaller(func() { runs++ }, label)

	rt.Dispatch(func() {
		rt.Update(c)
		assert.Equal(t, 1, runs, "immediate labels never defer")
		rt.Update(c)
		assert.Equal(t, 2, runs)
	})
}

// tree labels coalesce all enqueues in a tick into one flush
func TestTreeLabelCoalescesPerTick(t *testing.T) {
	rt := weft.NewRuntime()

	var trace []string
	label := weft.NewTreeLabel(rt,
		func() { trace = append(trace, "before") },
		func() { trace = append(trace, "after") },
	)
	c := weft.NewCaller(func() { trace = append(trace, "caller") }, label)

	rt.Dispatch(func() {
		rt.Update(c)
		rt.Update(c)
		rt.Update(c)
		assert.Empty(t, trace, "nothing runs before the tick boundary")
	})

	assert.Equal(t, []string{"before", "caller", "after"}, trace)
}

// distinct callers in one label each run once, in enqueue order
func TestTreeLabelRunsDistinctCallersInOrder(t *testing.T) {
	rt := weft.NewRuntime()
	label := weft.NewTreeLabel(rt, nil, nil)

	var order []string
	a := weft.NewCaller(func() { order = append(order, "a") }, label)
	b := weft.NewCaller(func() { order = append(order, "b") }, label)

	rt.Dispatch(func() {
		rt.Update(a)
		rt.Update(b)
		rt.Update(a)
	})

	assert.Equal(t, []string{"a", "b"}, order)
}

// distinct labels flush in first-enqueue order
func TestDistinctLabelsFlushFIFO(t *testing.T) {
	rt := weft.NewRuntime()

	var order []string
	first := weft.NewTreeLabel(rt, nil, nil)
	second := weft.NewTreeLabel(rt, nil, nil)
	a := weft.NewCaller(func() { order = append(order, "first") }, first)
	b := weft.NewCaller(func() { order = append(order, "second") }, second)

	rt.Dispatch(func() {
		rt.Update(a)
		rt.Update(b)
		rt.Update(a)
	})

	assert.Equal(t, []string{"first", "second"}, order)
}

// hooks do not fire for labels with nothing pending
func TestTreeLabelHooksSkipEmptyFlush(t *testing.T) {
	rt := weft.NewRuntime()

	hookRuns := 0
	label := weft.NewTreeLabel(rt,
		func() { hookRuns++ },
		func() { hookRuns++ },
	)

	label.Proc()
	assert.Equal(t, 0, hookRuns)
}

// effect labels run callers through their guard
func TestEffectLabelGuard(t *testing.T) {
	rt := weft.NewRuntime()

	var trace []string
	label := weft.NewEffectLabel(rt, func(fn func()) {
		trace = append(trace, "guard-in")
		fn()
		trace = append(trace, "guard-out")
	})
	c := weft.NewCaller(func() { trace = append(trace, "effect") }, label)

	rt.Dispatch(func() { rt.Update(c) })

	assert.Equal(t, []string{"guard-in", "effect", "guard-out"}, trace)
}

// writes during a flush cascade within the same tick
func TestCascadingWritesFlushSameTick(t *testing.T) {
	rt := weft.NewRuntime()
	a := weft.NewSignal(rt, 0)
	b := weft.NewSignal(rt, 0)

	label := weft.NewTreeLabel(rt, nil, nil)
	var got int
	a.Attach(weft.NewCaller(func() { b.Set(a.Peek() * 10) }, label))
	b.Attach(weft.NewCaller(func() { got = b.Peek() }, label))

	a.Set(4)
	assert.Equal(t, 40, got)
}

// a lazy scope absorbs every notification until its thunk runs
func TestLazyScopePostponesNotification(t *testing.T) {
	rt := weft.NewRuntime()
	s := weft.NewSignal(rt, 0)

	runs := 0
	s.Attach(weft.NewCaller(func() { runs++ }, nil))

	flush := rt.Lazy(func() {
		s.Set(1)
		s.Set(2)
		s.Set(3)
		assert.Equal(t, 0, runs, "unlabeled callers are postponed too")
		assert.Equal(t, 3, s.Peek(), "values still update inside the scope")
	})

	assert.Equal(t, 0, runs, "nothing flushes until the thunk is invoked")
	flush()
	assert.Equal(t, 1, runs, "repeated triggers collapse to one run")

	flush()
	assert.Equal(t, 1, runs, "the thunk is one-shot")
}

// batch is lazy plus an immediate flush
func TestBatchNotifiesOnce(t *testing.T) {
	rt := weft.NewRuntime()
	a := weft.NewSignal(rt, 0)
	b := weft.NewSignal(rt, 0)

	runs := 0
	c := weft.NewCaller(func() { runs++ }, nil)
	a.Attach(c)
	b.Attach(c)

	rt.Batch(func() {
		a.Set(1)
		b.Set(1)
	})

	assert.Equal(t, 1, runs)
}

// labeled callers inside a lazy scope still respect their label on flush
func TestLazyFlushRoutesThroughLabels(t *testing.T) {
	rt := weft.NewRuntime()
	s := weft.NewSignal(rt, 0)

	var trace []string
	label := weft.NewTreeLabel(rt,
		func() { trace = append(trace, "before") },
		func() { trace = append(trace, "after") },
	)
	s.Attach(weft.NewCaller(func() { trace = append(trace, "tree") }, label))
	s.Attach(weft.NewCaller(func() { trace = append(trace, "sync") }, nil))

	flush := rt.Lazy(func() {
		s.Set(1)
		s.Set(2)
	})
	assert.Empty(t, trace)

	flush()
	assert.Equal(t, []string{"sync", "before", "tree", "after"}, trace)
}

package weft_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weft-dev/weft/pkg/weft"
)

// untracked reads register nothing
func TestUntrackedReadDoesNotSubscribe(t *testing.T) {
	rt := weft.NewRuntime()
	s := weft.NewSignal(rt, 1)

	c := weft.NewCaller(func() {}, nil)
	subs := rt.Track(c, func() {
		rt.Untracked(func() {
			_ = s.Get()
		})
	})

	assert.Empty(t, subs)
	assert.Equal(t, 0, s.SubscriberCount())
}

// track returns one subscription per distinct source touched
func TestTrackReturnsTouchedSources(t *testing.T) {
	rt := weft.NewRuntime()
	a := weft.NewSignal(rt, 1)
	b := weft.NewSignal(rt, 2)

	c := weft.NewCaller(func() {}, nil)
	subs := rt.Track(c, func() {
		_ = a.Get()
		_ = b.Get()
		_ = a.Get()
	})

	require.Len(t, subs, 2)
	assert.Same(t, weft.Reactive(a), subs[0].Source())
	assert.Same(t, weft.Reactive(b), subs[1].Source())
}

// nested tracking frames capture independently
func TestNestedTrackingFrames(t *testing.T) {
	rt := weft.NewRuntime()
	outer := weft.NewSignal(rt, 1)
	inner := weft.NewSignal(rt, 2)

	co := weft.NewCaller(func() {}, nil)
	ci := weft.NewCaller(func() {}, nil)

	var innerSubs []weft.Subscription
	outerSubs := rt.Track(co, func() {
		_ = outer.Get()
		innerSubs = rt.Track(ci, func() {
			_ = inner.Get()
		})
	})

	require.Len(t, outerSubs, 1)
	require.Len(t, innerSubs, 1)
	assert.Same(t, weft.Reactive(outer), outerSubs[0].Source())
	assert.Same(t, weft.Reactive(inner), innerSubs[0].Source())
}

// nested dispatches join the enclosing tick
func TestNestedDispatchJoinsTick(t *testing.T) {
	rt := weft.NewRuntime()
	label := weft.NewTreeLabel(rt, nil, nil)

	runs := 0
	c := weft.NewCaller(func() { runs++ }, label)

	rt.Dispatch(func() {
		rt.Update(c)
		rt.Dispatch(func() {
			rt.Update(c)
		})
		assert.Equal(t, 0, runs, "inner dispatch exit must not flush")
	})

	assert.Equal(t, 1, runs)
}

// a panic inside dispatch leaves queued work pending, not lost
func TestDispatchPanicKeepsPendingWork(t *testing.T) {
	rt := weft.NewRuntime()
	label := weft.NewTreeLabel(rt, nil, nil)

	runs := 0
	c := weft.NewCaller(func() { runs++ }, label)

	assert.Panics(t, func() {
		rt.Dispatch(func() {
			rt.Update(c)
			panic("boom")
		})
	})

	// The failed tick flushed nothing; the next tick picks it up.
	rt.Dispatch(func() {})
	assert.Equal(t, 1, runs)
}

// do runs inline when the loop is not started
func TestDoInlineWithoutLoop(t *testing.T) {
	rt := weft.NewRuntime()
	ran := false
	rt.Do(func() { ran = true })
	assert.True(t, ran)
}

// the dispatch loop processes posted work until closed
func TestRunLoopProcessesPosts(t *testing.T) {
	rt := weft.NewRuntime()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		rt.Run()
	}()

	results := make(chan int, 2)
	rt.Do(func() { results <- 1 })
	rt.Do(func() { results <- 2 })

	assert.Equal(t, 1, <-results)
	assert.Equal(t, 2, <-results)

	rt.Close()
	wg.Wait()
}

// each posted closure is its own tick
func TestLoopPostsFlushIndependently(t *testing.T) {
	rt := weft.NewRuntime()
	s := weft.NewSignal(rt, 0)

	flushes := 0
	label := weft.NewTreeLabel(rt, func() { flushes++ }, nil)
	s.Attach(weft.NewCaller(func() {}, label))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		rt.Run()
	}()

	done := make(chan struct{})
	rt.Do(func() { s.Set(1); s.Set(2) })
	rt.Do(func() { s.Set(3) })
	rt.Do(func() { close(done) })
	<-done

	rt.Close()
	wg.Wait()

	assert.Equal(t, 2, flushes, "two ticks with writes, one flush each")
}

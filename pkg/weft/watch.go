package weft

// Watch runs fn inside a tracking frame and re-runs it whenever one of
// the signals it read changes. Dependencies are re-captured on every run,
// so conditional reads stay accurate. The returned stop function cancels
// the current subscriptions; the watch never fires again after stop.
//
// By default re-runs are synchronous at write time. Pass a label with
// WithWatchLabel to defer them to that label's flush policy instead.
func Watch(rt *Runtime, fn func(), opts ...WatchOption) (stop func()) {
	w := &watcher{rt: rt, fn: fn}
	for _, opt := range opts {
		opt(w)
	}
	w.caller = NewCaller(w.run, w.label)
	w.run()
	return w.stop
}

// WatchOption configures a Watch.
type WatchOption func(*watcher)

// WithWatchLabel routes the watch's re-runs through the given label.
func WithWatchLabel(l *Label) WatchOption {
	return func(w *watcher) {
		w.label = l
	}
}

type watcher struct {
	rt      *Runtime
	fn      func()
	label   *Label
	caller  *Caller
	subs    []Subscription
	stopped bool
}

func (w *watcher) run() {
	if w.stopped {
		return
	}
	for _, sub := range w.subs {
		sub.Cancel()
	}
	w.subs = w.rt.Track(w.caller, w.fn)
}

func (w *watcher) stop() {
	if w.stopped {
		return
	}
	w.stopped = true
	for _, sub := range w.subs {
		sub.Cancel()
	}
	w.subs = nil
}

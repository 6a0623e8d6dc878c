package editor

import "time"

// Disposer releases one registration. Calling it more than once is safe
// only when the underlying registration allows it; use Once to be sure.
type Disposer func()

// Once wraps d so that only the first call has an effect.
func Once(d Disposer) Disposer {
	done := false
	return func() {
		if done || d == nil {
			return
		}
		done = true
		d()
	}
}

// disposers collects registrations and releases them together.
type disposers []Disposer

func (ds *disposers) add(d Disposer) {
	*ds = append(*ds, Once(d))
}

// dispose releases everything in reverse order of registration.
func (ds *disposers) dispose() {
	for i := len(*ds) - 1; i >= 0; i-- {
		(*ds)[i]()
	}
	*ds = nil
}

// deferred owns at most one outstanding timer. Scheduling again replaces
// the previous callback instead of stacking a second one.
type deferred struct {
	host  Host
	delay time.Duration
	timer Timer
}

func newDeferred(host Host, delay time.Duration) *deferred {
	return &deferred{host: host, delay: delay}
}

func (d *deferred) schedule(f func()) {
	d.cancel()
	var t Timer
	t = d.host.AfterFunc(d.delay, func() {
		if d.timer == t {
			d.timer = nil
		}
		f()
	})
	d.timer = t
}

func (d *deferred) cancel() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *deferred) pending() bool {
	return d.timer != nil
}

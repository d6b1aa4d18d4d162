// Package schedulertest provides a manually driven scheduler for tests.
package schedulertest

import (
	"sort"
	"sync"
	"time"

	"Mafia/services/scheduler"
)

type fakeTimer struct {
	fake    *Fake
	at      time.Time
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.fake.mu.Lock()
	defer t.fake.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Fake is a scheduler.Scheduler whose clock only moves when told to.
// Callbacks run on the calling goroutine, outside the Fake's own lock.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) scheduler.Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t := &fakeTimer{fake: f, at: f.now.Add(d), seq: f.seq, fn: fn}
	f.timers = append(f.timers, t)
	return t
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Pending counts timers that are neither stopped nor fired.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live())
}

// NextIn is the delay until the earliest pending timer.
func (f *Fake) NextIn() (time.Duration, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	live := f.live()
	if len(live) == 0 {
		return 0, false
	}
	return live[0].at.Sub(f.now), true
}

// Advance moves the clock forward by d, firing every timer that falls due on
// the way, including timers scheduled by the callbacks themselves.
func (f *Fake) Advance(d time.Duration) int {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	fired := 0
	for {
		f.mu.Lock()
		live := f.live()
		if len(live) == 0 || live[0].at.After(target) {
			f.now = target
			f.mu.Unlock()
			return fired
		}
		next := live[0]
		next.fired = true
		f.now = next.at
		f.mu.Unlock()

		next.fn()
		fired++
	}
}

// FireNext jumps the clock to the earliest pending timer and runs it.
func (f *Fake) FireNext() bool {
	f.mu.Lock()
	live := f.live()
	if len(live) == 0 {
		f.mu.Unlock()
		return false
	}
	next := live[0]
	next.fired = true
	f.now = next.at
	f.mu.Unlock()

	next.fn()
	return true
}

func (f *Fake) live() []*fakeTimer {
	live := make([]*fakeTimer, 0, len(f.timers))
	for _, t := range f.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].at.Equal(live[j].at) {
			return live[i].seq < live[j].seq
		}
		return live[i].at.Before(live[j].at)
	})
	return live
}

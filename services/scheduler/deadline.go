package scheduler

import "time"

// Deadline is a single owned "fire once at T" handle. Reset invalidates the
// previous firing through a generation counter, so a timer that was already
// on its way out when it got replaced is recognised as stale by its owner.
//
// Deadline does no locking of its own: the owner must guard it with the same
// lock it takes inside the fire callback.
type Deadline struct {
	sched      Scheduler
	timer      Timer
	generation uint64
	at         time.Time
	armed      bool
}

func NewDeadline(s Scheduler) *Deadline {
	return &Deadline{sched: s}
}

// Reset cancels any pending firing and schedules fire after d. The callback
// receives the generation it was armed with; compare it with Current.
func (d *Deadline) Reset(after time.Duration, fire func(generation uint64)) uint64 {
	d.stopTimer()
	d.generation++
	gen := d.generation
	d.at = d.sched.Now().Add(after)
	d.armed = true
	d.timer = d.sched.AfterFunc(after, func() { fire(gen) })
	return gen
}

// Stop cancels the pending firing, if any. Callbacks already running see a
// stale generation.
func (d *Deadline) Stop() {
	d.stopTimer()
	d.generation++
	d.armed = false
}

// Current reports whether a callback armed with generation is still the live
// one. Firing consumes the deadline.
func (d *Deadline) Current(generation uint64) bool {
	return d.armed && generation == d.generation
}

// Fired marks the live generation as consumed.
func (d *Deadline) Fired(generation uint64) {
	if generation == d.generation {
		d.armed = false
		d.timer = nil
	}
}

func (d *Deadline) Armed() bool {
	return d.armed
}

// Remaining is the time left until the deadline, zero when unarmed or past.
func (d *Deadline) Remaining() time.Duration {
	if !d.armed {
		return 0
	}
	left := d.at.Sub(d.sched.Now())
	if left < 0 {
		return 0
	}
	return left
}

func (d *Deadline) stopTimer() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

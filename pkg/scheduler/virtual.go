package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Virtual is a manually advanced clock. Callbacks fire only inside Advance,
// on the goroutine that calls it.
type Virtual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*virtualTimer
}

type virtualTimer struct {
	clock    *Virtual
	due      time.Time
	period   time.Duration
	seq      uint64
	fn       func()
	canceled bool
}

// NewVirtual returns a virtual clock starting at a fixed instant.
func NewVirtual() *Virtual {
	return &Virtual{now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

func (v *Virtual) AfterFunc(d time.Duration, f func()) Timer {
	return v.schedule(d, 0, f)
}

func (v *Virtual) Every(d time.Duration, f func()) Timer {
	if d <= 0 {
		panic("scheduler: non-positive interval for Every")
	}
	return v.schedule(d, d, f)
}

func (v *Virtual) schedule(d, period time.Duration, f func()) *virtualTimer {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq++
	t := &virtualTimer{
		clock:  v,
		due:    v.now.Add(d),
		period: period,
		seq:    v.seq,
		fn:     f,
	}
	v.timers = append(v.timers, t)
	return t
}

// Pending returns the number of armed timers.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.timers)
}

// Advance moves the clock forward by d, firing every callback that falls due
// within the window in due order. Ties fire in registration order.
func (v *Virtual) Advance(d time.Duration) {
	v.mu.Lock()
	target := v.now.Add(d)
	v.mu.Unlock()

	for {
		v.mu.Lock()
		next := v.popDue(target)
		if next == nil {
			v.now = target
			v.mu.Unlock()
			return
		}
		v.now = next.due
		if next.period > 0 {
			next.due = next.due.Add(next.period)
			v.seq++
			next.seq = v.seq
			v.timers = append(v.timers, next)
		}
		fn := next.fn
		v.mu.Unlock()

		fn()
	}
}

func (v *Virtual) popDue(target time.Time) *virtualTimer {
	if len(v.timers) == 0 {
		return nil
	}
	sort.SliceStable(v.timers, func(i, j int) bool {
		if v.timers[i].due.Equal(v.timers[j].due) {
			return v.timers[i].seq < v.timers[j].seq
		}
		return v.timers[i].due.Before(v.timers[j].due)
	})
	first := v.timers[0]
	if first.due.After(target) {
		return nil
	}
	v.timers = v.timers[1:]
	return first
}

func (t *virtualTimer) Stop() bool {
	v := t.clock
	v.mu.Lock()
	defer v.mu.Unlock()
	if t.canceled {
		return false
	}
	t.canceled = true
	for i, other := range v.timers {
		if other == t {
			v.timers = append(v.timers[:i], v.timers[i+1:]...)
			return true
		}
	}
	return false
}

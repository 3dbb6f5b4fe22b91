package testutil

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/schoolhub/console/core/access"
	"github.com/schoolhub/console/core/school"
	"github.com/schoolhub/console/core/store"
	"github.com/schoolhub/console/storage/fixtures"
)

// Epoch is the start time of every ManualClock built by NewManualClock without arguments.
var Epoch = time.Date(2024, time.December, 16, 8, 0, 0, 0, time.UTC)

// ManualClock is a store.Clock whose time only moves on Advance.
type ManualClock struct {
	mu     sync.Mutex
	cond   *sync.Cond
	now    time.Time
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	clock *ManualClock
	at    time.Time
	seq   int
	fn    func()
	done  bool
}

func NewManualClock(start ...time.Time) *ManualClock {
	now := Epoch
	if len(start) > 0 {
		now = start[0]
	}
	c := &ManualClock{now: now}
	c.cond = sync.NewCond(&c.mu)
	return c
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) store.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &manualTimer{clock: c, at: c.now.Add(d), seq: c.seq, fn: f}
	c.timers = append(c.timers, t)
	c.cond.Broadcast()
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	t.clock.prune()
	return true
}

// prune drops finished timers. Callers hold mu.
func (c *ManualClock) prune() {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.done {
			live = append(live, t)
		}
	}
	c.timers = live
}

// Advance moves the clock forward by d, running every timer that falls due in order.
// Timer callbacks run on the calling goroutine without the clock lock held.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		sort.SliceStable(c.timers, func(i, j int) bool {
			if c.timers[i].at.Equal(c.timers[j].at) {
				return c.timers[i].seq < c.timers[j].seq
			}
			return c.timers[i].at.Before(c.timers[j].at)
		})
		if len(c.timers) == 0 || c.timers[0].at.After(target) {
			break
		}
		next := c.timers[0]
		next.done = true
		c.timers = c.timers[1:]
		c.now = next.at
		c.mu.Unlock()
		next.fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// Pending returns the number of armed timers.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// BlockUntil waits until at least n timers are armed.
func (c *ManualClock) BlockUntil(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.timers) < n {
		c.cond.Wait()
	}
}

// NewSeededStore returns a store on a ManualClock holding the sample dataset.
// The seed is dispatched directly, so no loading flag or message is set.
func NewSeededStore(t *testing.T, opts ...store.Option) (*store.Store, *ManualClock) {
	t.Helper()
	clock := NewManualClock()
	s := store.New(append([]store.Option{store.WithClock(clock)}, opts...)...)
	Seed(t, s, fixtures.Sample())
	return s, clock
}

// Seed replaces every collection of s with the records of ds.
func Seed(t *testing.T, s *store.Store, ds school.Dataset) {
	t.Helper()
	actions := []store.Action{
		store.SetStudents{Students: ds.Students},
		store.SetTeachers{Teachers: ds.Teachers},
		store.SetClasses{Classes: ds.Classes},
		store.SetParents{Parents: ds.Parents},
		store.SetNotifications{Notifications: ds.Notifications},
	}
	for _, a := range actions {
		if err := s.Dispatch(access.RoleSystem, a); err != nil {
			t.Fatalf("Seed() failed: %v", err)
		}
	}
}

func StrPtr(s string) *string { return &s }

// Package store is the console's entity store: a mutex-serialised reducer over a closed
// set of actions, with capability checks at dispatch and self-expiring UI messages.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/schoolhub/console/core"
	"github.com/schoolhub/console/core/access"
)

const (
	DefaultSeedDelay      = time.Second
	DefaultSuccessTimeout = 3 * time.Second
	DefaultErrorTimeout   = 5 * time.Second
)

// Dispatch outcomes reported to a Recorder.
const (
	OutcomeOK        = "ok"
	OutcomeNotFound  = "not_found"
	OutcomeForbidden = "forbidden"
)

// Recorder observes every dispatch.
type Recorder interface {
	ObserveDispatch(kind Kind, outcome string)
}

type Listener func(State)

type Store struct {
	mu        sync.Mutex
	state     State
	applied   uint64 // sequence of the last applied action
	listeners map[int]Listener
	nextID    int

	notifyMu   sync.Mutex
	notifyCond *sync.Cond
	delivered  uint64 // sequence of the last delivered snapshot; guarded by notifyMu

	clock          Clock
	log            core.Logger
	recorder       Recorder
	seedDelay      time.Duration
	successTimeout time.Duration
	errorTimeout   time.Duration
}

type Option func(*Store)

func WithClock(c Clock) Option { return func(s *Store) { s.clock = c } }

func WithLogger(l core.Logger) Option { return func(s *Store) { s.log = l } }

func WithRecorder(r Recorder) Option { return func(s *Store) { s.recorder = r } }

// WithConfig applies the store delays from conf; zero values keep the defaults.
func WithConfig(conf core.StoreConfig) Option {
	return func(s *Store) {
		if conf.SeedDelay > 0 {
			s.seedDelay = conf.SeedDelay
		}
		if conf.SuccessTimeout > 0 {
			s.successTimeout = conf.SuccessTimeout
		}
		if conf.ErrorTimeout > 0 {
			s.errorTimeout = conf.ErrorTimeout
		}
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		state:          Empty(),
		listeners:      make(map[int]Listener),
		clock:          WallClock(),
		log:            core.NopLogger,
		seedDelay:      DefaultSeedDelay,
		successTimeout: DefaultSuccessTimeout,
		errorTimeout:   DefaultErrorTimeout,
	}
	s.notifyCond = sync.NewCond(&s.notifyMu)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to receive the post-action snapshot of every applied action.
// Snapshots are delivered one at a time in the order the actions were applied, so fn
// must not dispatch. The returned func unregisters it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Dispatch applies action on behalf of role.
// It returns a *core.ForbiddenError when role lacks the action's capability and an error
// wrapping core.ErrNotFound when the targeted record does not exist; the state is left
// unchanged in both cases.
func (s *Store) Dispatch(role access.Role, action Action) error {
	kind := action.Kind()
	if capability := action.Capability(); capability != "" && !access.HasPermission(role, capability) {
		s.observe(kind, OutcomeForbidden)
		s.log.Warn("dispatch rejected", kind, role)
		return core.NewForbiddenError(string(role), string(capability))
	}
	if a, ok := action.(AddNotification); ok {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = s.clock.Now().UTC()
		}
		action = a
	}

	s.mu.Lock()
	next, err := Reduce(s.state, action)
	if err != nil {
		s.mu.Unlock()
		s.observe(kind, OutcomeNotFound)
		s.log.Debug("dispatch no-op", kind, err)
		return err
	}
	s.state = next
	snapshot := next.clone()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.applied++
	seq := s.applied
	s.mu.Unlock()

	s.deliver(seq, listeners, snapshot)

	s.observe(kind, OutcomeOK)
	switch kind {
	case KindSetSuccess:
		s.armClear(next.generation, s.successTimeout)
	case KindSetError:
		s.armClear(next.generation, s.errorTimeout)
	}
	return nil
}

// deliver hands st to listeners once every earlier snapshot has been delivered.
func (s *Store) deliver(seq uint64, listeners []Listener, st State) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	for s.delivered != seq-1 {
		s.notifyCond.Wait()
	}
	defer func() {
		s.delivered = seq
		s.notifyCond.Broadcast()
	}()
	for _, l := range listeners {
		l(st)
	}
}

// Post dispatches action as role and logs a failure instead of returning it.
func (s *Store) Post(role access.Role, action Action) {
	if err := s.Dispatch(role, action); err != nil {
		s.log.Error("post dispatch", action.Kind(), role, err)
	}
}

func (s *Store) dispatchSystem(action Action) { s.Post(access.RoleSystem, action) }

// armClear schedules a ClearMessages for generation gen.
func (s *Store) armClear(gen uint64, after time.Duration) {
	s.clock.AfterFunc(after, func() {
		s.dispatchSystem(ClearMessages{Generation: gen})
	})
}

func (s *Store) observe(kind Kind, outcome string) {
	if s.recorder != nil {
		s.recorder.ObserveDispatch(kind, outcome)
	}
}

// DeleteStudents removes every listed student as role and returns how many were deleted.
// Unknown ids are skipped; any other failure stops the loop.
func (s *Store) DeleteStudents(role access.Role, ids ...string) (int, error) {
	var deleted int
	for _, id := range ids {
		if err := s.Dispatch(role, DeleteStudent{ID: id}); err != nil {
			if core.IsNotFound(err) {
				continue
			}
			return deleted, errors.Wrapf(err, "deleting student %s", id)
		}
		deleted++
	}
	return deleted, nil
}

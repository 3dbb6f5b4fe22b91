package store

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/schoolhub/console/core/school"
)

const (
	MsgDataLoaded     = "Data loaded successfully"
	MsgDataLoadFailed = "Failed to load data"
)

// Source provides the dataset the store is seeded with.
type Source interface {
	Load(ctx context.Context) (school.Dataset, error)
}

// The SourceFunc type is an adapter to allow the use of ordinary functions as a Source.
type SourceFunc func(ctx context.Context) (school.Dataset, error)

func (f SourceFunc) Load(ctx context.Context) (school.Dataset, error) { return f(ctx) }

// WithSeedDelay overrides the delay Initialize waits before loading; zero disables it.
func WithSeedDelay(d time.Duration) Option { return func(s *Store) { s.seedDelay = d } }

// Initialize seeds the store from src: it raises the loading flag, waits the seed delay on
// the store clock, loads the dataset and replaces students, teachers, classes and parents
// (and notifications when the dataset has any) in that order, then reports success.
// A load failure is reported through SetError and returned. Cancelling ctx aborts the wait
// without touching the messages. The loading flag is cleared on every path.
func (s *Store) Initialize(ctx context.Context, src Source) error {
	s.dispatchSystem(SetLoading{Loading: true})
	defer s.dispatchSystem(SetLoading{Loading: false})

	if err := s.wait(ctx, s.seedDelay); err != nil {
		return errors.Wrap(err, "waiting for seed delay")
	}

	ds, err := src.Load(ctx)
	if err != nil {
		s.log.Error("seed load failed", err)
		s.dispatchSystem(SetError{Message: MsgDataLoadFailed})
		return errors.Wrap(err, "loading dataset")
	}

	s.dispatchSystem(SetStudents{Students: ds.Students})
	s.dispatchSystem(SetTeachers{Teachers: ds.Teachers})
	s.dispatchSystem(SetClasses{Classes: ds.Classes})
	s.dispatchSystem(SetParents{Parents: ds.Parents})
	if len(ds.Notifications) > 0 {
		s.dispatchSystem(SetNotifications{Notifications: ds.Notifications})
	}
	s.dispatchSystem(SetSuccess{Message: MsgDataLoaded})
	s.log.Info("store seeded", map[string]interface{}{
		"students": len(ds.Students),
		"teachers": len(ds.Teachers),
		"classes":  len(ds.Classes),
		"parents":  len(ds.Parents),
	})
	return nil
}

func (s *Store) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	done := make(chan struct{})
	timer := s.clock.AfterFunc(d, func() { close(done) })
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	}
}

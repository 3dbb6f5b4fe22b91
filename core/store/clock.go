package store

import "time"

// Timer is the part of *time.Timer the store relies on.
type Timer interface {
	Stop() bool
}

// Clock abstracts wall time so message expiry and the seed delay can be simulated.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type wallClock struct{}

// WallClock is the real-time Clock.
func WallClock() Clock { return wallClock{} }

func (wallClock) Now() time.Time { return time.Now() }

func (wallClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

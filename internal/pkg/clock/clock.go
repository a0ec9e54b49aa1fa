// Package clock lets services take the current time as a dependency.
package clock

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// System returns the wall clock time.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Fixed always returns T. Used in tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}

// Package clock lets code read the current time through an interface so
// expiry logic can be tested at exact instants.
package clock

import "time"

// Clocker returns the current time.
type Clocker interface {
	Now() time.Time
}

// System reads the wall clock in UTC.
type System struct{}

func New() *System { return &System{} }

func (*System) Now() time.Time { return time.Now().UTC() }

// Fixed always returns the same instant until moved with Set or Add.
type Fixed struct {
	t time.Time
}

func NewFixed(t time.Time) *Fixed { return &Fixed{t: t} }

func (f *Fixed) Now() time.Time { return f.t }

func (f *Fixed) Set(t time.Time) { f.t = t }

func (f *Fixed) Add(d time.Duration) { f.t = f.t.Add(d) }

package clock

import "time"

// Clock abstracts the wall clock so time-gated policies (office hours,
// retention cutoffs) can be tested deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by time.Now.
func System() Clock { return systemClock{} }

// Fixed returns a Clock frozen at t.
func Fixed(t time.Time) Clock { return fixedClock{t} }

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time { return f.t }

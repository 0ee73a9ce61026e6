package clock

import "time"

// Clock supplies the current time in the business timezone. Scheduling and
// classification code takes a Clock instead of calling time.Now so tests can
// pin the instant.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type realClock struct {
	loc *time.Location
}

// New returns a Clock anchored to the named timezone. An unknown name falls
// back to UTC.
func New(timezone string) Clock {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return &realClock{loc: loc}
}

func (c *realClock) Now() time.Time           { return time.Now().In(c.loc) }
func (c *realClock) Location() *time.Location { return c.loc }

// Fixed is a Clock stuck at one instant, for tests.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time           { return f.Instant }
func (f Fixed) Location() *time.Location { return f.Instant.Location() }

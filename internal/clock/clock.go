// Package clock supplies the dashboard's notion of local time. The device
// RTC runs in UTC; local time is a static signed hour offset applied on
// read. DST changes are a manual config update, not computed here.
package clock

import (
	"fmt"
	"time"
)

// Clock provides the current local timestamp.
type Clock interface {
	Now() time.Time
}

// OffsetClock applies a fixed hour offset to UTC.
type OffsetClock struct {
	zone *time.Location
}

// NewOffsetClock creates a clock for the given signed UTC offset in hours,
// e.g. 2 for EET, 3 for EEST.
func NewOffsetClock(offsetHours int) *OffsetClock {
	return &OffsetClock{
		zone: time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*3600),
	}
}

func (c *OffsetClock) Now() time.Time {
	return time.Now().UTC().In(c.zone)
}

// FakeClock returns a settable fixed time for tests.
type FakeClock struct {
	Current time.Time
}

func (c *FakeClock) Now() time.Time {
	return c.Current
}

// Advance moves the fake clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.Current = c.Current.Add(d)
}

package pdca

import "sync/atomic"

//ClockDomain identifies one of the two gates in front of the controller.
type ClockDomain uint8

//The controller is reachable over the HSB bus matrix and programmed over the
//PBB bridge. Both gates must be open before any channel register behaves.
const (
	ClockHSB ClockDomain = iota
	ClockPBB
)

//ClockController is the platform clock subsystem as seen by this package.
//Both methods are idempotent: enabling an open gate or disabling a closed
//one has no effect.
type ClockController interface {
	EnableClock(domain ClockDomain)
	DisableClock(domain ClockDomain)
}

//EnableCount tracks how many channels of one controller are currently enabled.
//All channels of a controller share one instance, because the clock gates are
//shared: the gates close only when the count drops back to zero.
//
//The zero value is ready to use. Updates are atomic as Enable and Disable may
//run from both normal and interrupt context.
type EnableCount struct {
	n int32
}

//returns the count after the increment
func (c *EnableCount) acquire() int32 {
	return atomic.AddInt32(&c.n, 1)
}

//returns the count after the decrement
func (c *EnableCount) release() int32 {
	return atomic.AddInt32(&c.n, -1)
}

//Active returns the number of currently enabled channels.
func (c *EnableCount) Active() int {
	return int(atomic.LoadInt32(&c.n))
}

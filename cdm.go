package widevine

import "sync/atomic"

// Cdm is a cheaply-clonable facade owning a shared [Device] and an
// atomic session counter. The zero value is not usable; construct with
// [NewCdm].
type Cdm struct {
	device     *Device
	sessionCtr *atomic.Uint64
}

// NewCdm wraps device in a Cdm. The returned Cdm and any copies of it
// share the same session counter and Device.
func NewCdm(device *Device) *Cdm {
	ctr := &atomic.Uint64{}
	ctr.Store(1)
	return &Cdm{device: device, sessionCtr: ctr}
}

// Device returns the Cdm's underlying device.
func (c *Cdm) Device() *Device { return c.device }

// Open starts a new Session with a monotonically increasing session
// number. Safe to call concurrently; concurrent calls each observe a
// distinct number.
func (c *Cdm) Open() *Session {
	number := c.sessionCtr.Add(1) - 1
	return &Session{device: c.device, number: number}
}

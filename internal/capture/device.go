// Package capture drives one timed recording at a time against a
// camera device and produces segment descriptors.
package capture

import "context"

// Facing identifies which camera a device records with.
type Facing string

const (
	FacingBack  Facing = "back"
	FacingFront Facing = "front"
)

// EventKind tags a device recording event.
type EventKind int

const (
	// EventStarted reports that the device has actually begun writing.
	EventStarted EventKind = iota
	// EventFinalized reports that the recording has been closed out,
	// successfully or not.
	EventFinalized
)

// Event is one notification from an in-progress recording. Err is set
// only on a Finalized event whose recording failed.
type Event struct {
	Kind EventKind
	Err  error
}

// Device is the opaque camera/encoder capability the controller records
// against. Start returns a stream delivering exactly one Started event
// followed by exactly one Finalized event; the channel is closed after
// Finalized. Stop requests finalization of the active recording and is
// safe to call more than once.
type Device interface {
	// Bind prepares the device for recording. Binding is asynchronous on
	// real hardware, so it takes a context and blocks until ready.
	Bind(ctx context.Context) error
	// Start begins writing a recording to dest.
	Start(dest string, audioEnabled bool) (<-chan Event, error)
	// Stop asks the device to finalize the active recording.
	Stop()
	// Facing reports which camera the device records with.
	Facing() Facing
}

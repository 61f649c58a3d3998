package capture

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/tashichi/clipflow/internal/store"
)

// SegmentDuration is the fixed length of every recording.
const SegmentDuration = 1000 * time.Millisecond

// State is the controller's position in the recording lifecycle.
type State int

const (
	// StateIdle means no device session is open yet.
	StateIdle State = iota
	// StateReady means the device is bound and can start a recording.
	StateReady
	// StateRecording means a device session is writing; the stop timer
	// arms when the device reports it has actually started.
	StateRecording
	// StateFinalizing means the stop request has been issued and the
	// controller is waiting for the device's finalize notification.
	StateFinalizing
)

// ErrDeviceNotReady is returned when a recording is requested before
// Setup has completed, or while another recording is in flight.
var ErrDeviceNotReady = errors.New("camera not initialized")

// NewID is the id source the controller stamps segments with.
type NewID func() int64

// Controller runs exactly one timed recording at a time. All state
// transitions are guarded by a single mutex, so calls may arrive from
// any goroutine.
type Controller struct {
	device   Device
	newID    NewID
	dir      string
	audio    bool
	duration time.Duration

	mu           sync.Mutex
	state        State
	lastDuration time.Duration
}

// NewController returns an Idle controller writing segment files into dir.
func NewController(device Device, newID NewID, dir string, audioEnabled bool) *Controller {
	return &Controller{
		device:   device,
		newID:    newID,
		dir:      dir,
		audio:    audioEnabled,
		duration: SegmentDuration,
	}
}

// State returns the controller's current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastDuration reports how long the device actually recorded for on the
// most recent completed recording. Diagnostic only.
func (c *Controller) LastDuration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastDuration
}

// Setup binds the device once. Repeat calls after a successful bind
// return nil without touching the device.
func (c *Controller) Setup(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err := c.device.Bind(ctx); err != nil {
		return fmt.Errorf("bind camera: %w", err)
	}

	c.mu.Lock()
	if c.state == StateIdle {
		c.state = StateReady
	}
	c.mu.Unlock()
	return nil
}

// RecordSegment records one fixed-duration segment for project and
// returns its descriptor. The segment is not appended to the project;
// that is the caller's job through the store. Outside StateReady the
// call fails immediately with ErrDeviceNotReady and changes nothing.
func (c *Controller) RecordSegment(ctx context.Context, project *store.Project) (store.Segment, error) {
	c.mu.Lock()
	if c.state != StateReady {
		c.mu.Unlock()
		return store.Segment{}, ErrDeviceNotReady
	}
	c.state = StateRecording

	id := c.newID()
	uri := fmt.Sprintf("segment_%d.mp4", id)
	events, err := c.device.Start(filepath.Join(c.dir, uri), c.audio)
	if err != nil {
		c.state = StateReady
		c.mu.Unlock()
		return store.Segment{}, fmt.Errorf("start recording: %w", err)
	}
	c.mu.Unlock()

	var stopTimer *time.Timer
	defer func() {
		if stopTimer != nil {
			stopTimer.Stop()
		}
	}()

	// startedAt is diagnostic only; the segment length is governed by
	// the stop timer, not by measurement.
	var startedAt time.Time

	for {
		select {
		case <-ctx.Done():
			c.device.Stop()
			c.reset()
			return store.Segment{}, ctx.Err()

		case ev, ok := <-events:
			if !ok {
				c.reset()
				return store.Segment{}, errors.New("recording ended without finalize")
			}

			switch ev.Kind {
			case EventStarted:
				startedAt = time.Now()
				stopTimer = time.AfterFunc(c.duration, func() {
					c.mu.Lock()
					if c.state == StateRecording {
						c.state = StateFinalizing
					}
					c.mu.Unlock()
					c.device.Stop()
				})

			case EventFinalized:
				if !startedAt.IsZero() {
					c.mu.Lock()
					c.lastDuration = time.Since(startedAt)
					c.mu.Unlock()
				}
				c.reset()
				if ev.Err != nil {
					return store.Segment{}, fmt.Errorf("recording failed: %w", ev.Err)
				}
				return store.Segment{
					ID:        id,
					URI:       uri,
					Timestamp: store.Now(),
					Facing:    string(c.device.Facing()),
					Order:     project.SegmentCount() + 1,
				}, nil
			}
		}
	}
}

// reset returns the controller to StateReady after a recording outcome.
func (c *Controller) reset() {
	c.mu.Lock()
	c.state = StateReady
	c.mu.Unlock()
}

package app

import (
	"github.com/tashichi/clipflow/internal/playback"
	"github.com/tashichi/clipflow/internal/store"
)

// SetupDoneMsg reports the outcome of the one-time camera setup.
type SetupDoneMsg struct {
	Err error
}

// SegmentRecordedMsg carries the outcome of a single fixed-duration
// recording. On success Segment is populated and Err is nil.
type SegmentRecordedMsg struct {
	Segment store.Segment
	Err     error
}

// QueueBuiltMsg carries the playback queue built for the active project.
type QueueBuiltMsg struct {
	Queue []playback.MediaRef
	Err   error
}

// PlaybackFinishedMsg is sent when the player exits.
type PlaybackFinishedMsg struct {
	Err error
}

// ClearTransientErrorMsg clears a transient error after a timeout.
type ClearTransientErrorMsg struct{}

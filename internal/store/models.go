// Package store owns the project collection and its durable persistence.
package store

import (
	"strconv"
	"time"
)

// Facing values a segment can be captured with.
const (
	FacingBack  = "back"
	FacingFront = "front"
)

// Millis is a time.Time that serializes as Unix milliseconds. The
// persisted layout requires timestamps to round-trip exactly at
// millisecond precision.
type Millis struct {
	time.Time
}

// Now returns the current time truncated to millisecond precision.
func Now() Millis {
	return Millis{time.Now().UTC().Truncate(time.Millisecond)}
}

// FromUnixMilli converts a Unix-millisecond value to a Millis.
func FromUnixMilli(ms int64) Millis {
	return Millis{time.UnixMilli(ms).UTC()}
}

// MarshalJSON emits the time as an integer millisecond count.
func (m Millis) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, m.UnixMilli(), 10), nil
}

// UnmarshalJSON parses an integer millisecond count.
func (m *Millis) UnmarshalJSON(data []byte) error {
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	m.Time = time.UnixMilli(ms).UTC()
	return nil
}

// Segment is one fixed-duration recorded clip. Immutable after capture
// except for Order, which only project-level operations may reassign.
type Segment struct {
	ID        int64  `json:"id"`
	URI       string `json:"uri"`
	Timestamp Millis `json:"timestamp"`
	Facing    string `json:"facing"`
	Order     int    `json:"order"`
}

// Project is a named collection of segments. Collection order is not
// playback order; playback order comes from each segment's Order field.
type Project struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Segments     []Segment `json:"segments"`
	CreatedAt    Millis    `json:"createdAt"`
	LastModified Millis    `json:"lastModified"`
}

// AddSegment appends a segment and bumps LastModified.
func (p *Project) AddSegment(seg Segment) {
	p.Segments = append(p.Segments, seg)
	p.LastModified = Now()
}

// SegmentCount returns the number of segments in the project.
func (p *Project) SegmentCount() int {
	return len(p.Segments)
}

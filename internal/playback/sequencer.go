// Package playback turns a project's segment set into an ordered,
// existing-file media queue and hands it to a player.
package playback

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/tashichi/clipflow/internal/store"
)

// ErrNothingToPlay reports that a project has no playable segments:
// either no segments at all, or every backing file is missing.
var ErrNothingToPlay = errors.New("no playable segments")

// MediaRef is one resolved, existing entry in a playback queue.
type MediaRef struct {
	SegmentID int64
	Order     int
	Path      string
}

// Resolver maps a segment's stored uri to a concrete location.
type Resolver func(uri string) string

// ExistsFunc reports whether a resolved location is playable.
type ExistsFunc func(path string) bool

// BuildQueue sorts the project's segments ascending by order, resolves
// each uri, and drops entries whose file does not exist. Missing files
// are skipped silently so a project stays playable after partial loss.
// A fully empty result is reported as ErrNothingToPlay rather than an
// empty queue.
func BuildQueue(project store.Project, resolve Resolver, exists ExistsFunc) ([]MediaRef, error) {
	segments := append([]store.Segment(nil), project.Segments...)
	// Stable: the uniqueness invariant forbids ties, but if persisted
	// data carries them anyway, collection order breaks the tie.
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Order < segments[j].Order
	})

	var queue []MediaRef
	for _, seg := range segments {
		path := resolve(seg.URI)
		if !exists(path) {
			continue
		}
		queue = append(queue, MediaRef{
			SegmentID: seg.ID,
			Order:     seg.Order,
			Path:      path,
		})
	}

	if len(queue) == 0 {
		return nil, ErrNothingToPlay
	}
	return queue, nil
}

// BuildQueueFromDir builds a queue resolving segment uris against dir
// and checking existence on the filesystem.
func BuildQueueFromDir(project store.Project, dir string) ([]MediaRef, error) {
	resolve := func(uri string) string { return filepath.Join(dir, uri) }
	exists := func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}
	return BuildQueue(project, resolve, exists)
}

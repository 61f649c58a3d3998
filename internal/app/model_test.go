package app

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tashichi/clipflow/internal/capture"
	"github.com/tashichi/clipflow/internal/playback"
	"github.com/tashichi/clipflow/internal/store"
)

// stubDevice satisfies capture.Device without touching hardware.
type stubDevice struct{}

func (stubDevice) Bind(ctx context.Context) error { return nil }
func (stubDevice) Start(dest string, audioEnabled bool) (<-chan capture.Event, error) {
	events := make(chan capture.Event, 2)
	events <- capture.Event{Kind: capture.EventStarted}
	events <- capture.Event{Kind: capture.EventFinalized}
	close(events)
	return events, nil
}
func (stubDevice) Stop()                  {}
func (stubDevice) Facing() capture.Facing { return capture.FacingBack }

// stubPlayer records calls.
type stubPlayer struct {
	queue    []playback.MediaRef
	prepared bool
	played   bool
	released bool
}

func (p *stubPlayer) SetQueue(queue []playback.MediaRef) { p.queue = queue }
func (p *stubPlayer) Prepare() error                     { p.prepared = true; return nil }
func (p *stubPlayer) Play(ctx context.Context) error     { p.played = true; return nil }
func (p *stubPlayer) Release()                           { p.released = true }

func newTestModel(t *testing.T) (Model, *store.Store) {
	t.Helper()

	s, err := store.Open(store.NewMemorySlot())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	gen := store.NewIDGenerator()
	controller := capture.NewController(stubDevice{}, gen.Next, t.TempDir(), true)
	m := New(s, controller, &stubPlayer{}, t.TempDir(), "")
	m.width = 80
	m.height = 24
	return m, s
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t)

	if m.screen != ScreenProjects {
		t.Error("new model should start on the projects screen")
	}
	if m.recording {
		t.Error("new model should not be recording")
	}
	if m.cameraReady {
		t.Error("camera should not be ready before setup")
	}
	if len(m.projects) != 0 {
		t.Errorf("projects = %d, want 0", len(m.projects))
	}
}

func TestNewProjectKey(t *testing.T) {
	m, s := newTestModel(t)

	updated, _ := m.Update(keyRune('n'))
	model := updated.(Model)

	if len(model.projects) != 1 {
		t.Fatalf("projects = %d, want 1", len(model.projects))
	}
	if model.projects[0].Name != "Project 1" {
		t.Errorf("name = %q, want %q", model.projects[0].Name, "Project 1")
	}
	if model.selected != 0 {
		t.Errorf("selected = %d, want 0", model.selected)
	}
	if len(s.Projects()) != 1 {
		t.Error("project not persisted in store")
	}
}

func TestNavigationKeys(t *testing.T) {
	m, _ := newTestModel(t)
	for i := 0; i < 3; i++ {
		updated, _ := m.Update(keyRune('n'))
		m = updated.(Model)
	}
	m.selected = 0

	updated, _ := m.Update(keyRune('j'))
	model := updated.(Model)
	if model.selected != 1 {
		t.Errorf("after j, selected = %d, want 1", model.selected)
	}

	updated, _ = model.Update(keyRune('k'))
	model = updated.(Model)
	if model.selected != 0 {
		t.Errorf("after k, selected = %d, want 0", model.selected)
	}

	// k at the top stays put
	updated, _ = model.Update(keyRune('k'))
	model = updated.(Model)
	if model.selected != 0 {
		t.Errorf("k at top moved selection to %d", model.selected)
	}
}

func TestDeleteProjectKey(t *testing.T) {
	m, s := newTestModel(t)
	updated, _ := m.Update(keyRune('n'))
	m = updated.(Model)

	updated, _ = m.Update(keyRune('d'))
	model := updated.(Model)

	if len(model.projects) != 0 {
		t.Errorf("projects = %d, want 0", len(model.projects))
	}
	if len(s.Projects()) != 0 {
		t.Error("project not deleted from store")
	}
}

func TestEnterOpensCamera(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(keyRune('n'))
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(Model)

	if model.screen != ScreenCamera {
		t.Fatalf("screen = %v, want ScreenCamera", model.screen)
	}
	if model.current.Name != "Project 1" {
		t.Errorf("current = %q", model.current.Name)
	}
}

func TestSpaceBeforeCameraReady(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(keyRune('n'))
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	model := updated.(Model)

	if model.recording {
		t.Error("must not record before camera setup completes")
	}
	if model.errorMessage == "" {
		t.Error("expected a not-initialized error message")
	}
	if cmd == nil {
		t.Error("transient error should schedule a clear")
	}
}

func TestSpaceStartsRecording(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(keyRune('n'))
	m = updated.(Model)
	updated, _ = m.Update(SetupDoneMsg{})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	model := updated.(Model)

	if !model.recording {
		t.Error("space should start recording")
	}
	if cmd == nil {
		t.Error("space should issue a record command")
	}

	// A second space while recording is ignored.
	_, cmd = model.Update(tea.KeyMsg{Type: tea.KeySpace})
	if cmd != nil {
		t.Error("space while recording should be a no-op")
	}
}

func TestSegmentRecordedAppendsAndPersists(t *testing.T) {
	m, s := newTestModel(t)
	updated, _ := m.Update(keyRune('n'))
	m = updated.(Model)
	updated, _ = m.Update(SetupDoneMsg{})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	seg := store.Segment{ID: 99, URI: "segment_99.mp4", Timestamp: store.Now(), Facing: store.FacingBack, Order: 1}
	updated, _ = m.Update(SegmentRecordedMsg{Segment: seg})
	model := updated.(Model)

	if model.current.SegmentCount() != 1 {
		t.Fatalf("current segments = %d, want 1", model.current.SegmentCount())
	}

	stored, ok := s.Project(model.current.ID)
	if !ok {
		t.Fatal("project missing from store")
	}
	if stored.SegmentCount() != 1 {
		t.Errorf("persisted segments = %d, want 1", stored.SegmentCount())
	}
	if stored.Segments[0].Order != 1 {
		t.Errorf("persisted order = %d, want 1", stored.Segments[0].Order)
	}
}

func TestSegmentRecordedError(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(keyRune('n'))
	m = updated.(Model)
	m.recording = true

	updated, cmd := m.Update(SegmentRecordedMsg{Err: errors.New("recording failed: encoder died")})
	model := updated.(Model)

	if model.recording {
		t.Error("recording flag should clear on error")
	}
	if model.errorMessage == "" {
		t.Error("error message should be set")
	}
	if model.current.SegmentCount() != 0 {
		t.Error("failed recording must not append a segment")
	}
	if cmd == nil {
		t.Error("transient error should schedule a clear")
	}
}

func TestPlayBuildsQueue(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(keyRune('n'))
	m = updated.(Model)

	updated, cmd := m.Update(keyRune('p'))
	model := updated.(Model)

	if model.screen != ScreenPlayer {
		t.Fatalf("screen = %v, want ScreenPlayer", model.screen)
	}
	if !model.playing {
		t.Error("should be playing")
	}
	if cmd == nil {
		t.Error("play should issue a queue-build command")
	}
}

func TestQueueBuiltEmpty(t *testing.T) {
	m, _ := newTestModel(t)
	m.screen = ScreenPlayer
	m.playing = true

	updated, cmd := m.Update(QueueBuiltMsg{Err: playback.ErrNothingToPlay})
	model := updated.(Model)

	if model.playing {
		t.Error("playing should clear when there is nothing to play")
	}
	if model.errorMessage == "" {
		t.Error("nothing-to-play should surface as a message")
	}
	if cmd == nil {
		t.Error("transient error should schedule a clear")
	}
}

func TestQueueBuiltStartsPlayback(t *testing.T) {
	m, _ := newTestModel(t)
	player := &stubPlayer{}
	m.player = player
	m.screen = ScreenPlayer
	m.playing = true

	queue := []playback.MediaRef{{SegmentID: 1, Order: 1, Path: "/data/a.mp4"}}
	updated, cmd := m.Update(QueueBuiltMsg{Queue: queue})
	model := updated.(Model)

	if model.queueLen != 1 {
		t.Errorf("queueLen = %d, want 1", model.queueLen)
	}
	if cmd == nil {
		t.Fatal("queue built should issue a play command")
	}

	msg := cmd()
	if _, ok := msg.(PlaybackFinishedMsg); !ok {
		t.Fatalf("play command returned %T, want PlaybackFinishedMsg", msg)
	}
	if !player.prepared || !player.played || !player.released {
		t.Errorf("player calls = prepare %v play %v release %v, want all true",
			player.prepared, player.played, player.released)
	}
}

func TestEscReturnsToProjects(t *testing.T) {
	m, _ := newTestModel(t)
	m.screen = ScreenCamera

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model := updated.(Model)

	if model.screen != ScreenProjects {
		t.Errorf("screen = %v, want ScreenProjects", model.screen)
	}
}

func TestEscIgnoredWhileRecording(t *testing.T) {
	m, _ := newTestModel(t)
	m.screen = ScreenCamera
	m.recording = true

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model := updated.(Model)

	if model.screen != ScreenCamera {
		t.Error("esc must not leave the camera screen mid-recording")
	}
}

func TestViewRendersWithSize(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	if view == "" {
		t.Error("view should not be empty")
	}
	if view == "Initializing..." {
		t.Error("view should not show initializing with size set")
	}
}

func TestViewWithoutSize(t *testing.T) {
	m, _ := newTestModel(t)
	m.width = 0

	if view := m.View(); view != "Initializing..." {
		t.Errorf("view without size = %q, want 'Initializing...'", view)
	}
}

// Package app is the bubbletea front end: a project list, a camera
// screen recording one fixed-length segment at a time, and a player
// screen replaying a project's segments back-to-back.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tashichi/clipflow/internal/capture"
	"github.com/tashichi/clipflow/internal/playback"
	"github.com/tashichi/clipflow/internal/store"
	"github.com/tashichi/clipflow/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// Screen identifies which view is active.
type Screen int

const (
	ScreenProjects Screen = iota
	ScreenCamera
	ScreenPlayer
)

// Model is the root bubbletea model.
type Model struct {
	store      *store.Store
	controller *capture.Controller
	player     playback.Player
	dataDir    string

	screen   Screen
	projects []store.Project
	selected int
	current  store.Project // active project on the camera/player screens

	cameraReady bool
	recording   bool
	playing     bool
	queueLen    int

	errorMessage   string
	errorTransient bool
	statusText     string

	width  int
	height int
}

// New builds the model over an already-opened store. warning, when
// non-empty, is shown until dismissed (used for data-loss notices from
// a failed load).
func New(s *store.Store, controller *capture.Controller, player playback.Player, dataDir, warning string) Model {
	return Model{
		store:        s,
		controller:   controller,
		player:       player,
		dataDir:      dataDir,
		projects:     s.Projects(),
		statusText:   "Ready",
		errorMessage: warning,
	}
}

// Init starts camera setup in the background so the camera screen is
// usable by the time the user gets there.
func (m Model) Init() tea.Cmd {
	return setupCmd(m.controller)
}

// setupCmd binds the camera device once.
func setupCmd(controller *capture.Controller) tea.Cmd {
	return func() tea.Msg {
		return SetupDoneMsg{Err: controller.Setup(context.Background())}
	}
}

// recordCmd records exactly one fixed-duration segment for project.
func recordCmd(controller *capture.Controller, project store.Project) tea.Cmd {
	return func() tea.Msg {
		seg, err := controller.RecordSegment(context.Background(), &project)
		return SegmentRecordedMsg{Segment: seg, Err: err}
	}
}

// playCmd hands the queue to the player and blocks until playback ends.
func playCmd(player playback.Player, queue []playback.MediaRef) tea.Cmd {
	return func() tea.Msg {
		player.SetQueue(queue)
		if err := player.Prepare(); err != nil {
			return PlaybackFinishedMsg{Err: err}
		}
		defer player.Release()
		return PlaybackFinishedMsg{Err: player.Play(context.Background())}
	}
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SetupDoneMsg:
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			m.statusText = "Camera unavailable"
		} else {
			m.cameraReady = true
			if m.statusText == "Ready" {
				m.statusText = "Camera ready"
			}
		}
		return m, nil

	case SegmentRecordedMsg:
		m.recording = false
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		// The controller hands the segment off; appending and
		// persisting are this caller's job.
		m.current.AddSegment(msg.Segment)
		if err := m.store.UpdateProject(m.current); err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.projects = m.store.Projects()
		m.statusText = fmt.Sprintf("Segment %d saved (%s)",
			msg.Segment.Order, m.controller.LastDuration().Round(time.Millisecond))
		return m, nil

	case QueueBuiltMsg:
		if msg.Err != nil {
			m.playing = false
			m.errorMessage = msg.Err.Error()
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		m.queueLen = len(msg.Queue)
		m.statusText = fmt.Sprintf("Playing %d segments", m.queueLen)
		return m, playCmd(m.player, msg.Queue)

	case PlaybackFinishedMsg:
		m.playing = false
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		m.statusText = "Playback finished"
		return m, nil

	case ClearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes key presses for the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == KeyCtrlC {
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenProjects:
		return m.handleProjectsKey(key)
	case ScreenCamera:
		return m.handleCameraKey(key)
	case ScreenPlayer:
		return m.handlePlayerKey(key)
	}
	return m, nil
}

func (m Model) handleProjectsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyQuit, KeyQuitUpper:
		return m, tea.Quit

	case KeyJ, KeyDown:
		if m.selected < len(m.projects)-1 {
			m.selected++
		}

	case KeyK, KeyUp:
		if m.selected > 0 {
			m.selected--
		}

	case KeyNewProject:
		project, err := m.store.CreateProject()
		if err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.projects = m.store.Projects()
		m.selected = len(m.projects) - 1
		m.statusText = fmt.Sprintf("Created %s", project.Name)

	case KeyDelete:
		if m.selected >= len(m.projects) {
			return m, nil
		}
		doomed := m.projects[m.selected]
		if err := m.store.DeleteProject(doomed); err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.projects = m.store.Projects()
		if m.selected >= len(m.projects) {
			m.selected = max(0, len(m.projects)-1)
		}
		m.statusText = fmt.Sprintf("Deleted %s", doomed.Name)

	case KeyEnter:
		if m.selected >= len(m.projects) {
			return m, nil
		}
		m.current = m.projects[m.selected]
		m.screen = ScreenCamera
		m.statusText = "Press Space to record 1 second"

	case KeyPlay:
		if m.selected >= len(m.projects) {
			return m, nil
		}
		m.current = m.projects[m.selected]
		m.screen = ScreenPlayer
		m.playing = true
		return m, m.buildQueueCmd()
	}

	return m, nil
}

func (m Model) handleCameraKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyEsc:
		if m.recording {
			// A recording runs to its fixed duration; leaving the
			// screen mid-segment would orphan it.
			return m, nil
		}
		m.screen = ScreenProjects
		m.statusText = "Ready"

	case KeySpace:
		if m.recording {
			return m, nil
		}
		if !m.cameraReady {
			m.errorMessage = capture.ErrDeviceNotReady.Error()
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		m.recording = true
		m.statusText = "Recording..."
		return m, recordCmd(m.controller, m.current)
	}

	return m, nil
}

func (m Model) handlePlayerKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyEsc, KeyQuit:
		m.screen = ScreenProjects
		m.playing = false
		m.statusText = "Ready"
	}
	return m, nil
}

// buildQueueCmd assembles the playback queue for the active project.
func (m Model) buildQueueCmd() tea.Cmd {
	project := m.current
	dir := m.dataDir
	return func() tea.Msg {
		queue, err := playback.BuildQueueFromDir(project, dir)
		return QueueBuiltMsg{Queue: queue, Err: err}
	}
}

// View renders the active screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	switch m.screen {
	case ScreenProjects:
		sections = append(sections, m.renderProjects())
	case ScreenCamera:
		sections = append(sections, m.renderCamera())
	case ScreenPlayer:
		sections = append(sections, m.renderPlayer())
	}

	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	if m.errorMessage != "" {
		sections = append(sections, ui.ErrorStyle.Render("Error: ")+ui.ErrorTextStyle.Render(m.errorMessage))
	}
	sections = append(sections, ui.StatusStyle.Render(m.statusText))
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("CLIPFLOW")
	switch m.screen {
	case ScreenCamera:
		return title + ui.DimStyle.Render(" — "+m.current.Name)
	case ScreenPlayer:
		return title + ui.DimStyle.Render(" — playing "+m.current.Name)
	}
	return title
}

func (m Model) renderProjects() string {
	var lines []string
	lines = append(lines, ui.PanelTitleStyle.Render(fmt.Sprintf("PROJECTS (%d)", len(m.projects))))

	if len(m.projects) == 0 {
		lines = append(lines, ui.DimStyle.Render("  No projects yet. Press n to create one."))
	} else {
		for i, p := range m.projects {
			count := ui.CountBadgeStyle.Render(fmt.Sprintf("%3d", p.SegmentCount()))
			modified := ui.TimestampStyle.Render(p.LastModified.Local().Format("2006-01-02 15:04"))
			line := fmt.Sprintf("%s  %s segments  %s", p.Name, count, modified)
			if i == m.selected {
				lines = append(lines, ui.SelectedStyle.Render("> "+line))
			} else {
				lines = append(lines, "  "+line)
			}
		}
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderCamera() string {
	var dot string
	if m.recording {
		dot = ui.RecordingDotStyle.Render("● REC")
	} else if m.cameraReady {
		dot = ui.IdleDotStyle.Render("○ READY")
	} else {
		dot = ui.DimStyle.Render("○ INITIALIZING")
	}

	var lines []string
	lines = append(lines, dot)
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("  Segments recorded: %d", m.current.SegmentCount()))
	return strings.Join(lines, "\n")
}

func (m Model) renderPlayer() string {
	var lines []string
	if m.playing {
		lines = append(lines, ui.PlayingStyle.Render("▶ PLAYING"))
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("  %d segments, gapless", m.queueLen))
	} else {
		lines = append(lines, ui.DimStyle.Render("  Playback stopped. Esc to go back."))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	var parts []string
	switch m.screen {
	case ScreenProjects:
		parts = append(parts, ui.FooterKeyStyle.Render("n")+ui.FooterDescStyle.Render(" New"))
		parts = append(parts, ui.FooterKeyStyle.Render("Enter")+ui.FooterDescStyle.Render(" Camera"))
		parts = append(parts, ui.FooterKeyStyle.Render("p")+ui.FooterDescStyle.Render(" Play"))
		parts = append(parts, ui.FooterKeyStyle.Render("d")+ui.FooterDescStyle.Render(" Delete"))
		parts = append(parts, ui.FooterKeyStyle.Render("j/k")+ui.FooterDescStyle.Render(" Nav"))
		parts = append(parts, ui.FooterKeyStyle.Render("q")+ui.FooterDescStyle.Render(" Quit"))
	case ScreenCamera:
		parts = append(parts, ui.FooterKeyStyle.Render("Space")+ui.FooterDescStyle.Render(" Record 1s"))
		parts = append(parts, ui.FooterKeyStyle.Render("Esc")+ui.FooterDescStyle.Render(" Back"))
	case ScreenPlayer:
		parts = append(parts, ui.FooterKeyStyle.Render("Esc")+ui.FooterDescStyle.Render(" Back"))
	}
	return strings.Join(parts, "  ")
}

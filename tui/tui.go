// Package tui is the interactive lecture player. It wires the playback
// clock, the transcript follow controller and the session coordinator into a
// Bubbletea program.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ckearl/senahpark.com/config"
	"github.com/ckearl/senahpark.com/db"
	"github.com/ckearl/senahpark.com/pkg/export"
	"github.com/ckearl/senahpark.com/pkg/timeutil"
	"github.com/ckearl/senahpark.com/player"
	"github.com/ckearl/senahpark.com/session"
	"github.com/ckearl/senahpark.com/tui/components"
)

const (
	// tickInterval is the interval for polling mpv status.
	tickInterval = 100 * time.Millisecond
	// skipIndicatorDuration is how long the skip direction marker shows.
	skipIndicatorDuration = 500 * time.Millisecond
	// resultDisplayDuration is how long to show command results.
	resultDisplayDuration = 3 * time.Second

	sidebarWidth    = 34
	timelineHeight  = 3
	statusBarHeight = 1
	commandHeight   = 1
	searchHeight    = 3
)

// tickMsg is a message sent on every tick interval to update playback status.
type tickMsg time.Time

// clearSkipMsg clears the transient skip direction indicator.
type clearSkipMsg struct{}

// clearResultMsg is sent to clear the command result message.
type clearResultMsg struct{}

// catalogLoadedMsg carries the refreshed lecture list.
type catalogLoadedMsg struct {
	groups []db.ClassGroup
	err    error
}

// lectureLoadedMsg carries a fetched lecture bundle. The token identifies
// which request it answers; stale responses are dropped.
type lectureLoadedMsg struct {
	token  uint64
	bundle *session.Lecture
	err    error
}

// Model is the Bubbletea model for the lecture player.
type Model struct {
	clock      *player.Clock
	controller *player.Controller
	coord      *session.Coordinator
	cfg        config.Config

	// current is the loaded lecture bundle, nil before the first load
	current *session.Lecture

	width  int
	height int

	sidebar      components.SidebarState
	transcriptUI components.TranscriptState
	searchInput  components.SearchInputState
	commandInput components.CommandInputState

	showHelp     bool
	showInsights bool
	quitting     bool

	// lastRecord rate-limits progress saves; without it the steady tick
	// stream would reset the save debounce forever
	lastRecord time.Time
}

// NewModel creates the player model. The device is usually an mpv client,
// but anything implementing player.Device works.
func NewModel(device player.Device, coord *session.Coordinator, cfg config.Config) *Model {
	return &Model{
		clock:      player.NewClock(device, cfg.DefaultVolume, cfg.DefaultSpeed),
		controller: player.NewController(),
		coord:      coord,
		cfg:        cfg,
	}
}

// Init starts the status ticker and loads the catalog.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.loadCatalogCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) loadCatalogCmd() tea.Cmd {
	return func() tea.Msg {
		groups, err := m.coord.Classes()
		return catalogLoadedMsg{groups: groups, err: err}
	}
}

func (m *Model) loadLectureCmd(id string) tea.Cmd {
	token := m.coord.Request(id)
	return func() tea.Msg {
		bundle, err := m.coord.Fetch(id)
		return lectureLoadedMsg{token: token, bundle: bundle, err: err}
	}
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.handleTick()
		return m, tickCmd()

	case clearSkipMsg:
		m.clock.ClearSkip()
		return m, nil

	case clearResultMsg:
		m.commandInput.ClearResult()
		return m, nil

	case catalogLoadedMsg:
		if msg.err != nil {
			m.commandInput.SetResult(msg.err.Error(), true)
			return m, clearResultCmd()
		}
		m.sidebar.Groups = msg.groups
		return m, nil

	case lectureLoadedMsg:
		return m.handleLectureLoaded(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleTick polls the playback device and feeds the follow controller.
func (m *Model) handleTick() {
	for _, ev := range m.clock.Tick() {
		switch ev.Type {
		case player.TimeChanged:
			m.controller.Advance(ev.Time)
			if m.current != nil && time.Since(m.lastRecord) >= 2*time.Second {
				state := m.clock.State()
				m.coord.RecordPosition(m.current.Lecture.ID, state.CurrentTime, state.Duration)
				m.lastRecord = time.Now()
			}
		}
	}
	if _, ok := m.controller.ScrollTarget(); ok {
		m.centerOnActive()
	}
}

func (m *Model) handleLectureLoaded(msg lectureLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.coord.Current(msg.token) {
		// A newer request superseded this one
		return m, nil
	}
	if msg.err != nil {
		m.commandInput.SetResult(msg.err.Error(), true)
		return m, clearResultCmd()
	}
	m.current = msg.bundle
	m.sidebar.ActiveID = msg.bundle.Lecture.ID
	m.controller.SetIndex(msg.bundle.Index)
	m.searchInput.Clear()
	m.transcriptUI = components.TranscriptState{ActiveIndex: -1}

	if msg.bundle.AudioPath != "" {
		if err := m.clock.Load(msg.bundle.AudioPath, float64(msg.bundle.ResumeOffset)); err != nil {
			m.commandInput.SetResult(err.Error(), true)
			return m, clearResultCmd()
		}
	} else if msg.bundle.AudioErr != nil {
		m.commandInput.SetResult("no audio file; transcript only", true)
		return m, clearResultCmd()
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	// The timeline content row sits just above the bottom border and the
	// command line
	timelineRow := m.height - commandHeight - 2
	if msg.Y != timelineRow || m.current == nil {
		return m, nil
	}
	state := m.clock.State()
	if fraction, ok := components.TimelineClick(msg.X, state.CurrentTime, state.Duration, m.width); ok {
		m.clock.Seek(fraction * state.Duration)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The help overlay swallows everything, including Escape
	if m.showHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.showHelp = false
		}
		return m, nil
	}

	if m.searchInput.Active {
		return m.handleSearchKey(msg)
	}
	if m.commandInput.Active {
		return m.handleCommandKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quit()
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case ":":
		m.commandInput.Active = true
		m.commandInput.Input = ""
		m.commandInput.CursorPos = 0
		return m, nil

	case "f":
		return m.toggleSearch()

	case " ", "k":
		m.clock.TogglePlayPause()
		return m, nil

	case "right", "l":
		return m.skip(10)
	case "left", "j":
		return m.skip(-10)
	case "up":
		return m.skip(30)
	case "down":
		return m.skip(-30)

	case "m":
		m.clock.ToggleMute()
		return m, nil

	case ",":
		m.clock.FrameStep(false)
		return m, nil
	case ".":
		m.clock.FrameStep(true)
		return m, nil

	case "[":
		m.stepSpeed(-1)
		return m, nil
	case "]":
		m.stepSpeed(1)
		return m, nil

	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		digit := int(msg.String()[0] - '0')
		m.clock.JumpToPercent(digit)
		return m, nil

	case "tab":
		m.controller.ToggleFollow()
		return m, nil

	case "i":
		m.showInsights = !m.showInsights
		return m, nil

	case "J", "shift+down":
		m.sidebar.MoveSelection(1)
		return m, nil
	case "K", "shift+up":
		m.sidebar.MoveSelection(-1)
		return m, nil

	case "enter":
		if lec, ok := m.sidebar.SelectedLecture(); ok {
			return m, m.loadLectureCmd(lec.ID)
		}
		return m, nil

	case "pgup":
		m.transcriptUI.ScrollBy(-m.transcriptRows()/2, m.transcriptRows())
		return m, nil
	case "pgdown":
		m.transcriptUI.ScrollBy(m.transcriptRows()/2, m.transcriptRows())
		return m, nil
	}

	return m, nil
}

func (m *Model) skip(delta float64) (tea.Model, tea.Cmd) {
	m.clock.Skip(delta)
	return m, tea.Tick(skipIndicatorDuration, func(time.Time) tea.Msg {
		return clearSkipMsg{}
	})
}

func (m *Model) stepSpeed(direction int) {
	state := m.clock.State()
	for i, s := range player.SpeedOptions {
		if s == state.Speed {
			j := i + direction
			if j >= 0 && j < len(player.SpeedOptions) {
				m.clock.SetSpeed(player.SpeedOptions[j])
			}
			return
		}
	}
	m.clock.SetSpeed(1)
}

func (m *Model) toggleSearch() (tea.Model, tea.Cmd) {
	m.controller.ToggleSearch()
	if m.controller.SearchVisible() {
		m.searchInput.Active = true
	} else {
		m.searchInput.Clear()
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Closing the search restores the full transcript
		return m.toggleSearch()
	case "enter":
		// Keep the filter but hand keys back to playback
		m.searchInput.Active = false
		return m, nil
	case "backspace":
		m.searchInput.DeleteChar()
	default:
		if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				m.searchInput.InsertChar(r)
			}
		} else if msg.String() == " " {
			m.searchInput.InsertChar(' ')
		} else {
			return m, nil
		}
	}
	m.controller.SetQuery(m.searchInput.Input)
	m.searchInput.MatchCount = len(m.controller.Visible())
	m.transcriptUI.ScrollOffset = 0
	return m, nil
}

func (m *Model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commandInput.Reset()
		return m, nil
	case "enter":
		command := m.commandInput.Input
		m.commandInput.Reset()
		return m.executeCommand(command)
	case "backspace":
		m.commandInput.DeleteChar()
		return m, nil
	default:
		if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				m.commandInput.InsertChar(r)
			}
		} else if msg.String() == " " {
			m.commandInput.InsertChar(' ')
		}
		return m, nil
	}
}

// executeCommand runs a ':' command.
func (m *Model) executeCommand(command string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(strings.TrimSpace(command))
	if len(fields) == 0 {
		return m, nil
	}

	fail := func(format string, args ...interface{}) (tea.Model, tea.Cmd) {
		m.commandInput.SetResult(fmt.Sprintf(format, args...), true)
		return m, clearResultCmd()
	}
	ok := func(format string, args ...interface{}) (tea.Model, tea.Cmd) {
		m.commandInput.SetResult(fmt.Sprintf(format, args...), false)
		return m, clearResultCmd()
	}

	switch fields[0] {
	case "q", "quit":
		m.quit()
		return m, tea.Quit

	case "seek":
		if len(fields) != 2 {
			return fail("usage: seek H:MM:SS")
		}
		seconds, err := timeutil.ParseTimeToSeconds(fields[1])
		if err != nil {
			return fail("bad time %q", fields[1])
		}
		m.clock.Seek(seconds)
		return ok("seeked to %s", timeutil.FormatTime(seconds))

	case "speed":
		if len(fields) != 2 {
			return fail("usage: speed {0.5|1|1.25|1.5|2|3}")
		}
		s, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || m.clock.SetSpeed(s) != nil {
			return fail("unsupported speed %q", fields[1])
		}
		return ok("speed %gx", s)

	case "volume":
		if len(fields) != 2 {
			return fail("usage: volume 0-100")
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || v < 0 || v > 100 {
			return fail("volume must be 0-100")
		}
		m.clock.SetVolume(v / 100)
		return ok("volume %.0f%%", v)

	case "refresh":
		return m, m.loadCatalogCmd()

	case "clear":
		if m.current == nil {
			return fail("no lecture loaded")
		}
		if err := m.coord.ClearProgress(m.current.Lecture.ID); err != nil {
			return fail("clear failed: %v", err)
		}
		return ok("saved position cleared")

	case "export":
		if m.current == nil {
			return fail("no lecture loaded")
		}
		format := export.FormatText
		if len(fields) > 1 && (fields[1] == "md" || fields[1] == "markdown") {
			format = export.FormatMarkdown
		}
		path, err := export.Write(".", m.current.Lecture, m.current.Index.Segments(), m.current.Insights, format)
		if err != nil {
			return fail("export failed: %v", err)
		}
		return ok("exported %s", path)
	}

	return fail("unknown command %q", fields[0])
}

func clearResultCmd() tea.Cmd {
	return tea.Tick(resultDisplayDuration, func(time.Time) tea.Msg {
		return clearResultMsg{}
	})
}

// quit flushes pending progress before shutdown.
func (m *Model) quit() {
	m.quitting = true
	m.coord.Flush()
}

func (m *Model) transcriptRows() int {
	rows := m.mainHeight() - 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) mainHeight() int {
	h := m.height - statusBarHeight - timelineHeight - commandHeight
	if m.searchVisible() {
		h -= searchHeight
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) searchVisible() bool {
	return m.searchInput.Active || m.controller.SearchVisible()
}

// centerOnActive scrolls the transcript so the active segment sits mid-view.
// A search may filter the active segment out; then the viewport stays put.
func (m *Model) centerOnActive() {
	m.transcriptUI.Matches = m.controller.Visible()
	if pos, ok := m.controller.ActiveVisiblePosition(); ok {
		m.transcriptUI.CenterOn(pos, m.transcriptRows())
	}
}

// View renders the full screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}
	if m.showHelp {
		return components.HelpOverlay(m.width, m.height)
	}

	state := m.clock.State()

	status := components.StatusBar(components.StatusBarState{
		Title:        m.currentTitle(),
		Playing:      state.Playing,
		Muted:        state.Volume == 0,
		TimePos:      state.CurrentTime,
		Duration:     state.Duration,
		Progress:     m.clock.ProgressFraction(),
		Volume:       state.Volume,
		Speed:        state.Speed,
		Skip:         state.Skip,
		FollowPaused: m.controller.Mode() == player.PausedFollow,
		AudioMissing: m.current != nil && m.current.AudioPath == "",
	}, m.width)

	mainHeight := m.mainHeight()
	sidebar := components.Sidebar(m.sidebar, sidebarWidth, mainHeight, false)

	mainWidth := m.width - sidebarWidth
	var mainPanel string
	if m.showInsights {
		var insights *db.Insights
		if m.current != nil {
			insights = m.current.Insights
		}
		mainPanel = components.InsightsPanel(insights, mainWidth, mainHeight)
	} else {
		m.syncTranscriptState()
		mainPanel = components.TranscriptView(m.transcriptUI, mainWidth, mainHeight)
	}

	middle := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainPanel)

	sections := []string{status, middle}
	if m.searchVisible() {
		sections = append(sections, components.SearchInput(m.searchInput, m.width))
	}

	var starts []float64
	if m.current != nil {
		for _, seg := range m.current.Index.Segments() {
			starts = append(starts, seg.StartTime)
		}
	}
	sections = append(sections, components.Timeline(state.CurrentTime, state.Duration, starts, m.width))

	sections = append(sections, components.CommandInput(m.commandInput, m.width))

	return strings.Join(sections, "\n")
}

func (m *Model) currentTitle() string {
	if m.current == nil {
		return ""
	}
	return m.current.Lecture.Title
}

// syncTranscriptState refreshes the visible match list and active highlight
// before rendering.
func (m *Model) syncTranscriptState() {
	m.transcriptUI.Matches = m.controller.Visible()
	m.transcriptUI.Query = m.controller.Query()
	if idx, ok := m.controller.ActiveIndex(); ok {
		m.transcriptUI.ActiveIndex = idx
	} else {
		m.transcriptUI.ActiveIndex = -1
	}
}

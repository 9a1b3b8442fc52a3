package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mag-radar.solberg.io/internal/config"
	"mag-radar.solberg.io/internal/detection"
	"mag-radar.solberg.io/internal/feedback"
	"mag-radar.solberg.io/internal/magnet"
	"mag-radar.solberg.io/internal/radar"
	"mag-radar.solberg.io/internal/ui"
)

// shared holds state shared between the Bubble Tea model copies and main.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	processor *detection.Processor
	history   *detection.Ring
	sweep     *radar.Sweep
	source    magnet.Source
	sink      feedback.Sink
	startTime time.Time
}

// Model is the root Bubble Tea model for the magnetometer radar.
type Model struct {
	width  int
	height int

	scanning   bool
	muted      bool
	sourceName string

	shared *shared

	latest      detection.Reading
	sampleCount int
	lastErr     error
}

// New creates the root model. The source is started separately via
// StartSource so the program reference exists first.
func New(tuning config.Tuning, source magnet.Source, sourceName string, sink feedback.Sink, muted bool) Model {
	return Model{
		scanning:   true,
		muted:      muted,
		sourceName: sourceName,
		shared: &shared{
			processor: detection.NewProcessor(tuning),
			history:   detection.NewRing(config.HistorySize),
			sweep:     radar.NewSweep(),
			source:    source,
			sink:      sink,
			startTime: time.Now(),
		},
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.shared.sweep.Update()
		return m, tickCmd()

	case magnet.SampleMsg:
		// The update loop is the single consumer of the sample stream,
		// which serializes all Process calls on the one processor.
		if !m.scanning {
			return m, nil
		}
		reading, ok := m.shared.processor.Process(msg.Sample)
		m.sampleCount++
		m.latest = reading
		if ok {
			m.shared.history.Push(reading.Delta)
			if !m.muted {
				m.shared.sink.Update(reading)
			}
		}
		return m, nil

	case magnet.SourceErrorMsg:
		m.lastErr = msg.Err
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.shutdown()
		return m, tea.Quit

	case "s", "S":
		m.scanning = true

	case "p", "P":
		m.scanning = false
		m.silence()

	case "c", "C":
		m.shared.processor.Recalibrate()
		m.shared.history.Reset()
		m.latest = detection.Reading{}
		m.silence()

	case "m", "M":
		m.muted = !m.muted
		if m.muted {
			m.silence()
		}
	}

	return m, nil
}

// silence pushes a non-detecting reading so the sink stops beeping.
func (m Model) silence() {
	m.shared.sink.Update(detection.Reading{Calibrated: true, Level: detection.LevelNone})
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing mag-radar..."
	}

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < 5 {
		bodyH = 5
	}

	radarW := m.width * 2 / 3
	if radarW < 30 {
		radarW = 30
	}
	readoutW := m.width - radarW
	if readoutW < 24 {
		readoutW = 24
		radarW = m.width - readoutW
	}

	menuBar := ui.RenderMenuBar(m.width, m.sourceName, m.scanning)

	innerW := radarW - 4
	innerH := bodyH - 5
	if innerW < 5 {
		innerW = 5
	}
	if innerH < 3 {
		innerH = 3
	}

	calibDone, calibTotal := m.shared.processor.CalibrationProgress()
	radarContent := radar.Render(innerW, innerH, m.latest, calibDone, calibTotal, m.shared.sweep)
	legend := radar.RenderLegend(innerW)
	radarPanel := ui.RenderRadarPanel(radarW, bodyH, radarContent, legend)

	readoutPanel := ui.RenderReadoutPanel(m.latest, m.shared.history.Values(), readoutW, bodyH)

	statusBar := ui.RenderStatusBar(m.width, m.scanning, m.latest, calibDone, calibTotal,
		m.sampleCount, time.Since(m.shared.startTime), m.muted, m.lastErr)

	return ui.ComposeLayout(menuBar, radarPanel, readoutPanel, statusBar)
}

// StartSource begins sampling. Must be called before p.Run().
func (m *Model) StartSource(p *tea.Program) error {
	return m.shared.source.Start(p)
}

func (m Model) shutdown() {
	m.shared.source.Stop()
	m.shared.sink.Close()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

package viz

import (
	"fmt"
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/braillegrid/internal/braille"
	"github.com/san-kum/braillegrid/internal/raster"
)

const (
	historyCapacity = 120
	thresholdStep   = 0.05
	gifPath         = "braillegrid.gif"
)

var (
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Options configures the viewer.
type Options struct {
	Width, Height int // nominal canvas pixels
	FPS           int
	Theme         string
	Scene         string
	Seed          int64
	Raster        raster.Options
	Image         image.Image
	ImageName     string
}

// Model contains the canvas, the active scene and UI state.
type Model struct {
	canvas     *braille.Canvas
	scenes     []Scene
	current    int
	opts       raster.Options
	t          float64
	fps        int
	running    bool
	litHistory []float64
	recording  bool
	frames     []*image.Paletted
	showHelp   bool
	status     string
}

// NewModel builds the viewer. An image, when given, becomes the first scene.
func NewModel(o Options) (Model, error) {
	c, err := braille.New(o.Width, o.Height)
	if err != nil {
		return Model{}, err
	}
	if c.Height() == 0 {
		return Model{}, fmt.Errorf("viz: %w: height %d holds no cell row", braille.ErrInvalidDimensions, o.Height)
	}
	if o.FPS <= 0 {
		o.FPS = 30
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	SetTheme(o.Theme)

	scenes := []Scene{waveScene{}, ringsScene{}, newLifeScene(o.Seed)}
	if o.Image != nil {
		name := o.ImageName
		if name == "" {
			name = "image"
		}
		scenes = append([]Scene{newImageScene(name, o.Image)}, scenes...)
	}

	current := 0
	if o.Image == nil && o.Scene != "" {
		found := false
		for i, s := range scenes {
			if s.Name() == o.Scene {
				current, found = i, true
			}
		}
		if !found {
			return Model{}, fmt.Errorf("viz: unknown scene %q (available: %v)", o.Scene, SceneNames())
		}
	}

	m := Model{
		canvas:     c,
		scenes:     scenes,
		current:    current,
		opts:       o.Raster,
		fps:        o.FPS,
		running:    true,
		litHistory: make([]float64, 0, historyCapacity),
	}
	m.draw()
	return m, nil
}

// SceneNames lists the built-in animated scenes.
func SceneNames() []string {
	return []string{"wave", "rings", "life"}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the animation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "s", "tab":
			m.current = (m.current + 1) % len(m.scenes)
			m.litHistory = m.litHistory[:0]
		case "+", "=", "up", "k":
			m.adjustThreshold(thresholdStep)
		case "-", "_", "down", "j":
			m.adjustThreshold(-thresholdStep)
		case "i":
			m.opts.Invert = !m.opts.Invert
		case "d":
			m.opts.Dither = !m.opts.Dither
		case "g":
			if m.recording {
				if err := SaveGIF(gifPath, m.frames); err != nil {
					m.status = "gif: " + err.Error()
				} else {
					m.status = fmt.Sprintf("saved %d frames to %s", len(m.frames), gifPath)
				}
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
				m.status = "recording"
			}
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		}
		m.draw()
	case TickMsg:
		if m.running {
			m.t += 1 / float64(m.fps)
			m.draw()
			m.litHistory = append(m.litHistory, float64(m.canvas.Lit()))
			if len(m.litHistory) > historyCapacity {
				m.litHistory = m.litHistory[1:]
			}
		}
		if m.recording {
			m.frames = append(m.frames, CaptureFrame(m.canvas))
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) adjustThreshold(delta float64) {
	v := m.opts.Threshold + delta
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	m.opts.Threshold = v
}

// draw renders the active scene into a cleared, fully allocated canvas.
func (m *Model) draw() {
	w, h := m.canvas.Width()*2, m.canvas.Height()*4
	m.canvas.Clear()
	m.scenes[m.current].Draw(m.canvas, w, h, m.t, m.opts)
	m.canvas.Reserve(m.canvas.Width() * m.canvas.Height())
}

// Canvas exposes the current frame.
func (m Model) Canvas() *braille.Canvas { return m.canvas }

// Scene names the active scene.
func (m Model) Scene() string { return m.scenes[m.current].Name() }

// View renders the TUI interface.
func (m Model) View() string {
	theme := CurrentTheme
	canvasView := lipgloss.NewStyle().Padding(1, 2).Foreground(theme.Primary).
		Render(strings.TrimPrefix(m.canvas.String(), "\n"))

	var s strings.Builder
	s.WriteString(headerStyle.Render(GradientText(strings.ToUpper(m.Scene()), theme.Primary, theme.Secondary)) + "\n")

	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	if m.recording {
		status += " " + StatusRecording.Render(fmt.Sprintf("REC %d", len(m.frames)))
	}
	s.WriteString(status + "\n\n")

	if len(m.litHistory) > 1 {
		chart := asciigraph.Plot(m.litHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Lit dots"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Cells") + valueStyle.Render(fmt.Sprintf("%dx%d", m.canvas.Width(), m.canvas.Height())) + "\n")
	s.WriteString(labelStyle.Render("Lit") + valueStyle.Render(fmt.Sprintf("%d", m.canvas.Lit())) + "\n")
	s.WriteString(labelStyle.Render("Threshold") + ProgressBar(m.opts.Threshold, 10) + valueStyle.Render(fmt.Sprintf(" %.2f", m.opts.Threshold)) + "\n")
	s.WriteString(labelStyle.Render("Invert") + valueStyle.Render(onOff(m.opts.Invert)) + "\n")
	s.WriteString(labelStyle.Render("Dither") + valueStyle.Render(onOff(m.opts.Dither)) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(theme.Name) + "\n")
	if m.status != "" {
		s.WriteString("\n" + Subtle.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause S:Scene Q:Quit\nT:Theme  G:Record ?:Help\n+/-:Threshold I:Invert D:Dither"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume animation   ║
║  S/Tab    - Next scene               ║
║  +/Up     - Raise threshold          ║
║  -/Down   - Lower threshold          ║
║  I        - Invert                   ║
║  D        - Toggle dithering         ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Run starts the viewer on the alternate screen and blocks until it quits.
func Run(o Options) error {
	m, err := NewModel(o)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("viz: %w", err)
	}
	return nil
}

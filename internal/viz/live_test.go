package viz

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/braillegrid/internal/braille"
	"github.com/san-kum/braillegrid/internal/raster"
)

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T, o Options) Model {
	t.Helper()
	if o.Width == 0 {
		o.Width, o.Height = 40, 24
	}
	o.Seed = 1
	o.Raster = raster.DefaultOptions()
	m, err := NewModel(o)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t, Options{Scene: "rings"})
	if m.Scene() != "rings" {
		t.Errorf("expected rings scene, got %s", m.Scene())
	}
	c := m.Canvas()
	if c.Width() != 20 || c.Height() != 6 {
		t.Errorf("expected 20x6 cells, got %dx%d", c.Width(), c.Height())
	}
	if c.Len() != c.Width()*c.Height() {
		t.Errorf("expected every cell allocated, got %d", c.Len())
	}
}

func TestNewModelErrors(t *testing.T) {
	if _, err := NewModel(Options{Width: 40, Height: 24, Scene: "plasma"}); err == nil {
		t.Error("expected error for unknown scene")
	}
	if _, err := NewModel(Options{Width: 1, Height: 24}); !errors.Is(err, braille.ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
	if _, err := NewModel(Options{Width: 40, Height: 3}); !errors.Is(err, braille.ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions for zero rows, got %v", err)
	}
}

func TestUpdateKeys(t *testing.T) {
	m := newTestModel(t, Options{})

	next, _ := m.Update(key(' '))
	m = next.(Model)
	if m.running {
		t.Error("space should pause")
	}

	next, _ = m.Update(key('i'))
	m = next.(Model)
	if !m.opts.Invert {
		t.Error("i should invert")
	}

	next, _ = m.Update(key('d'))
	m = next.(Model)
	if !m.opts.Dither {
		t.Error("d should enable dithering")
	}

	before := m.opts.Threshold
	next, _ = m.Update(key('+'))
	m = next.(Model)
	if m.opts.Threshold <= before {
		t.Errorf("+ should raise threshold, got %f", m.opts.Threshold)
	}
	for i := 0; i < 40; i++ {
		next, _ = m.Update(key('-'))
		m = next.(Model)
	}
	if m.opts.Threshold != 0 {
		t.Errorf("threshold should clamp at 0, got %f", m.opts.Threshold)
	}

	scene := m.Scene()
	next, _ = m.Update(key('s'))
	m = next.(Model)
	if m.Scene() == scene {
		t.Error("s should switch scene")
	}

	SetTheme("cyberpunk")
	next, _ = m.Update(key('t'))
	m = next.(Model)
	if CurrentTheme.Name != "retro" {
		t.Errorf("expected retro theme, got %s", CurrentTheme.Name)
	}

	_, cmd := m.Update(key('q'))
	if cmd == nil {
		t.Error("q should return quit command")
	}
}

func TestTickAdvances(t *testing.T) {
	m := newTestModel(t, Options{Scene: "wave"})
	first := m.Canvas().String()

	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.t <= 0 {
		t.Error("tick should advance time")
	}
	if len(m.litHistory) != 1 {
		t.Errorf("expected one history sample, got %d", len(m.litHistory))
	}
	if m.Canvas().String() == first {
		t.Error("expected wave to move after a tick")
	}
	if m.View() == "" {
		t.Error("expected non-empty view")
	}
}

func TestImageScene(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 24))
	for y := 0; y < 24; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.White)
		}
	}

	m := newTestModel(t, Options{Image: img, ImageName: "half"})
	if m.Scene() != "half" {
		t.Fatalf("expected image scene first, got %s", m.Scene())
	}
	lit := m.Canvas().Lit()
	if lit < 400 || lit > 560 {
		t.Errorf("expected about half of 960 dots lit, got %d", lit)
	}

	next, _ := m.Update(key('i'))
	m = next.(Model)
	if inv := m.Canvas().Lit(); inv+lit != 960 {
		t.Errorf("expected inverted image to light the complement, got %d + %d", lit, inv)
	}
}

func TestLifeScene(t *testing.T) {
	s := newLifeScene(1)
	s.grid = make([][]bool, 5)
	for y := range s.grid {
		s.grid[y] = make([]bool, 5)
	}
	s.grid[2][1], s.grid[2][2], s.grid[2][3] = true, true, true

	if alive := s.step(); alive != 3 {
		t.Fatalf("blinker should keep 3 cells, got %d", alive)
	}
	if !s.grid[1][2] || !s.grid[2][2] || !s.grid[3][2] || s.grid[2][1] {
		t.Error("blinker should turn vertical")
	}
}

func TestCaptureFrame(t *testing.T) {
	c, _ := braille.New(4, 4)
	c.Set(braille.Upright(0, 0))

	img := CaptureFrame(c)
	if img.Bounds().Dx() != 2*charW || img.Bounds().Dy() != charH {
		t.Fatalf("unexpected frame bounds %v", img.Bounds())
	}
	if img.ColorIndexAt(0, 0) != 1 || img.ColorIndexAt(charW-1, charH-1) != 0 {
		t.Error("expected only the top-left dot painted")
	}
}

func TestSaveGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	if err := SaveGIF(path, nil); !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}

	c, _ := braille.New(4, 4)
	c.Set(0, 0)
	if err := SaveGIF(path, []*image.Paletted{CaptureFrame(c), CaptureFrame(c)}); err != nil {
		t.Fatalf("save gif: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected gif written, got %v", err)
	}
}

func TestThemeSVGStyle(t *testing.T) {
	st := GetTheme("ocean").SVGStyle()
	if st.Foreground != "#00a8cc" || st.Background != "#001a33" {
		t.Errorf("unexpected style %+v", st)
	}
	if GetTheme("missing").Name != "cyberpunk" {
		t.Error("expected fallback theme")
	}
}

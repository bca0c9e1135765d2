package viz

import (
	"image"
	"math"
	"math/rand"

	"github.com/san-kum/braillegrid/internal/braille"
	"github.com/san-kum/braillegrid/internal/raster"
)

// Scene draws one frame into a cleared canvas. w and h are the screen dot
// dimensions; drawing goes through braille.Upright.
type Scene interface {
	Name() string
	Draw(c *braille.Canvas, w, h int, t float64, opts raster.Options)
}

func plot(c *braille.Canvas, sx, sy int) {
	c.Set(braille.Upright(sx, sy))
}

type waveScene struct{}

func (waveScene) Name() string { return "wave" }

func (waveScene) Draw(c *braille.Canvas, w, h int, t float64, _ raster.Options) {
	mid := float64(h-1) / 2
	for k := 0; k < 3; k++ {
		freq := 1.0 + float64(k)*0.75
		amp := mid * (0.9 - float64(k)*0.25)
		phase := float64(k) * math.Pi / 3
		for sx := 0; sx < w; sx++ {
			v := math.Sin(2*math.Pi*freq*float64(sx)/float64(w) + t*(1.5+float64(k)) + phase)
			plot(c, sx, int(math.Round(mid-amp*v)))
		}
	}
}

type ringsScene struct{}

func (ringsScene) Name() string { return "rings" }

func (ringsScene) Draw(c *braille.Canvas, w, h int, t float64, opts raster.Options) {
	cx, cy := float64(w)/2, float64(h)/2
	lum := make([][]float64, h)
	for sy := range lum {
		lum[sy] = make([]float64, w)
		for sx := range lum[sy] {
			d := math.Hypot(float64(sx)-cx, float64(sy)-cy)
			lum[sy][sx] = 0.5 + 0.5*math.Sin(d/3-t*4)
		}
	}
	drawMask(c, raster.Mask(lum, opts))
}

// lifeScene runs Conway's game of life with one cell per dot.
type lifeScene struct {
	rng   *rand.Rand
	grid  [][]bool
	ticks int
}

func newLifeScene(seed int64) *lifeScene {
	return &lifeScene{rng: rand.New(rand.NewSource(seed))}
}

func (*lifeScene) Name() string { return "life" }

func (s *lifeScene) seed(w, h int) {
	s.grid = make([][]bool, h)
	for y := range s.grid {
		s.grid[y] = make([]bool, w)
		for x := range s.grid[y] {
			s.grid[y][x] = s.rng.Float64() < 0.3
		}
	}
}

func (s *lifeScene) step() int {
	h, w := len(s.grid), len(s.grid[0])
	next := make([][]bool, h)
	alive := 0
	for y := 0; y < h; y++ {
		next[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if (dx != 0 || dy != 0) && s.grid[(y+dy+h)%h][(x+dx+w)%w] {
						n++
					}
				}
			}
			next[y][x] = n == 3 || (n == 2 && s.grid[y][x])
			if next[y][x] {
				alive++
			}
		}
	}
	s.grid = next
	return alive
}

func (s *lifeScene) Draw(c *braille.Canvas, w, h int, _ float64, _ raster.Options) {
	if len(s.grid) != h || (h > 0 && len(s.grid[0]) != w) {
		s.seed(w, h)
	}
	if h == 0 || w == 0 {
		return
	}
	s.ticks++
	if s.ticks%2 == 0 && s.step() == 0 {
		s.seed(w, h)
	}
	drawMask(c, s.grid)
}

// imageScene shows a decoded image, rasterised with the live options.
type imageScene struct {
	name string
	img  image.Image
	lum  [][]float64
	key  lumKey
}

type lumKey struct {
	w, h     int
	contrast float64
	resample string
}

func newImageScene(name string, img image.Image) *imageScene {
	return &imageScene{name: name, img: img}
}

func (s *imageScene) Name() string { return s.name }

func (s *imageScene) Draw(c *braille.Canvas, w, h int, _ float64, opts raster.Options) {
	key := lumKey{w, h, opts.Contrast, opts.Resample}
	if s.lum == nil || key != s.key {
		gray, err := raster.Prepare(s.img, w, h, opts)
		if err != nil {
			return
		}
		s.lum, s.key = raster.Lightness(gray), key
	}
	lum := make([][]float64, len(s.lum))
	for y := range s.lum {
		lum[y] = append([]float64(nil), s.lum[y]...)
	}
	drawMask(c, raster.Mask(lum, opts))
}

func drawMask(c *braille.Canvas, mask [][]bool) {
	for sy, row := range mask {
		for sx, lit := range row {
			if lit {
				plot(c, sx, sy)
			}
		}
	}
}

package braille

import (
	"io"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// Base is the codepoint of the empty Braille pattern.
const Base = 0x2800

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
var pixelMap = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a growable grid of Braille cells addressed by pixel.
type Canvas struct {
	cells  []uint8
	width  int
	height int
}

// New returns an empty canvas for a nominal pixel area of width x height.
// The width fixes the number of cells per text line; the height is kept as
// a hint only, pixels may be set beyond either bound.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 || width/2 == 0 {
		return nil, ErrInvalidDimensions
	}
	return &Canvas{
		width:  width / 2,
		height: height / 4,
	}, nil
}

// Restore rebuilds a canvas from cell dimensions and previously stored masks.
func Restore(cellWidth, cellHeight int, cells []uint8) (*Canvas, error) {
	if cellWidth <= 0 || cellHeight < 0 {
		return nil, ErrInvalidDimensions
	}
	c := &Canvas{width: cellWidth, height: cellHeight}
	if len(cells) > 0 {
		c.cells = append(make([]uint8, 0, len(cells)), cells...)
	}
	return c, nil
}

// Width is the number of cells per text line.
func (c *Canvas) Width() int { return c.width }

// Height is the nominal number of text lines.
func (c *Canvas) Height() int { return c.height }

// Len is the number of allocated cells.
func (c *Canvas) Len() int { return len(c.cells) }

// Rows is the number of text lines needed to show the canvas, never fewer
// than Height.
func (c *Canvas) Rows() int {
	rows := (len(c.cells) + c.width - 1) / c.width
	if rows < c.height {
		return c.height
	}
	return rows
}

// Bit returns the mask bit of the dot in column dx (0..1), row dy (0..3) of
// a glyph.
func Bit(dx, dy int) uint8 {
	return pixelMap[dy&3][dx&1]
}

// Clear drops every stored mask. Dimensions are kept.
func (c *Canvas) Clear() {
	c.cells = c.cells[:0]
}

// locate maps a pixel to its flat cell index and dot bit. Pixels whose
// index would not fit in an int are reported as not addressable.
func (c *Canvas) locate(x, y int) (int, uint8, bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	row, col := x/2, y/4
	if row > (math.MaxInt-col)/c.width {
		return 0, 0, false
	}
	return row*c.width + col, pixelMap[y%4][x%2], true
}

// grow zero-extends storage so that index is addressable.
func (c *Canvas) grow(index int) {
	if index < len(c.cells) {
		return
	}
	c.cells = append(c.cells, make([]uint8, index+1-len(c.cells))...)
}

// Reserve zero-extends storage to at least n cells, so that a full frame
// renders even where nothing was drawn.
func (c *Canvas) Reserve(n int) {
	if n > 0 {
		c.grow(n - 1)
	}
}

// Set lights the pixel at (x, y), allocating cells as needed.
func (c *Canvas) Set(x, y int) {
	index, bit, ok := c.locate(x, y)
	if !ok {
		return
	}
	c.grow(index)
	c.cells[index] |= bit
}

// Unset clears the pixel at (x, y) and leaves the other dots of its cell alone.
func (c *Canvas) Unset(x, y int) {
	index, bit, ok := c.locate(x, y)
	if !ok || index >= len(c.cells) {
		return
	}
	c.cells[index] &^= bit
}

// Toggle flips the pixel at (x, y), allocating cells as needed.
func (c *Canvas) Toggle(x, y int) {
	index, bit, ok := c.locate(x, y)
	if !ok {
		return
	}
	c.grow(index)
	c.cells[index] ^= bit
}

// Get reports whether the pixel at (x, y) is lit. It returns an error
// wrapping ErrOutOfRange when the pixel's cell has not been allocated.
func (c *Canvas) Get(x, y int) (bool, error) {
	index, bit, ok := c.locate(x, y)
	if !ok {
		index = -1
	}
	if index < 0 || index >= len(c.cells) {
		return false, &RangeError{X: x, Y: y, Index: index, Length: len(c.cells)}
	}
	return c.cells[index]&bit != 0, nil
}

// Cell returns the mask stored at flat index i.
func (c *Canvas) Cell(i int) (uint8, error) {
	if i < 0 || i >= len(c.cells) {
		return 0, &RangeError{X: -1, Y: -1, Index: i, Length: len(c.cells)}
	}
	return c.cells[i], nil
}

// Cells returns a copy of the stored masks in index order.
func (c *Canvas) Cells() []uint8 {
	out := make([]uint8, len(c.cells))
	copy(out, c.cells)
	return out
}

// Lit counts the lit dots across all cells.
func (c *Canvas) Lit() int {
	n := 0
	for _, m := range c.cells {
		n += bits.OnesCount8(m)
	}
	return n
}

// Glyph returns the Braille character showing mask.
func Glyph(mask uint8) rune {
	return rune(Base + int(mask))
}

// Upright converts a screen dot coordinate, sx across and sy down the
// rendered text, into the canvas pixel that is displayed there.
func Upright(sx, sy int) (x, y int) {
	if sx < 0 || sy < 0 {
		return -1, -1
	}
	return 2*(sy/4) + sx%2, 4*(sx/2) + sy%4
}

// String renders one glyph per cell, starting a new line before every cell
// that begins a row, the first included.
func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(len(c.cells)*3 + len(c.cells)/c.width + 1)
	for i, m := range c.cells {
		if i%c.width == 0 {
			b.WriteByte('\n')
		}
		b.WriteRune(Glyph(m))
	}
	return b.String()
}

// Raw renders the masks as decimal tokens using the same line breaks as
// String. Tokens sharing a line are separated by a single space.
func (c *Canvas) Raw() string {
	var b strings.Builder
	for i, m := range c.cells {
		if i%c.width == 0 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(int(m)))
	}
	return b.String()
}

// WriteTo writes the glyph rendering to w.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, c.String())
	return int64(n), err
}

// Package braille packs binary pixels into Unicode Braille glyphs.
//
// Every glyph in the Braille Patterns block (U+2800..U+28FF) carries eight
// dots arranged as two columns of four. A [Canvas] treats each dot as one
// pixel and each glyph as one cell holding an 8-bit mask:
//
//	0x01 0x08
//	0x02 0x10
//	0x04 0x20
//	0x40 0x80
//
// # Addressing
//
// Pixel (x, y) lives in cell row x/2, cell column y/4, stored at flat index
// row*Width()+col. The rendered text wraps every Width() cells, so one text
// line covers a pair of x values. Callers that think in screen space (sx
// across, sy down) convert with [Upright] before drawing.
//
// Storage grows on write. Reads of cells that were never written fail with
// [ErrOutOfRange] instead of reporting an unset pixel.
//
// A Canvas is not safe for concurrent use.
package braille

package sixelcore

// SixelImageBuilder is the canonical Events sink: it interprets parser
// callbacks into an RGBA pixel buffer using a 6-pixel-tall "sixel cursor".
//
// A builder is constructed per decode. Its resulting buffer is handed off
// to an ImagePool on completion; construct a fresh builder per decode
// rather than reusing one across images.
type SixelImageBuilder struct {
	maxSize Size
	size    Size
	pixels  []RGBAColor // len == size.W * size.H, row-major

	cursorCol, cursorRow int
	currentColor         int
	aspectNum, aspectDen int

	palette    *SixelColorPalette
	background RGBAColor
}

// BuilderOption configures a SixelImageBuilder at construction time.
type BuilderOption func(*SixelImageBuilder)

// WithMaxSize sets the hard pixel-size ceiling. Default is 1000x1000 if
// not supplied, wide enough for any realistic terminal cell grid.
func WithMaxSize(s Size) BuilderOption {
	return func(b *SixelImageBuilder) {
		b.maxSize = s
	}
}

// WithPalette supplies a shared palette instead of creating a private one.
// Multiple builders may share a palette within one decode session.
func WithPalette(p *SixelColorPalette) BuilderOption {
	return func(b *SixelImageBuilder) {
		b.palette = p
	}
}

// WithBackground sets the fill color used for Clear and for the initial
// buffer. Defaults to opaque black.
func WithBackground(c RGBAColor) BuilderOption {
	return func(b *SixelImageBuilder) {
		b.background = c
	}
}

// NewSixelImageBuilder creates a builder with the given initial size,
// clamped to maxSize, and applies opts. The buffer starts filled with the
// background color (opaque black by default).
func NewSixelImageBuilder(initial Size, opts ...BuilderOption) *SixelImageBuilder {
	b := &SixelImageBuilder{
		maxSize:    Size{W: 1000, H: 1000},
		aspectNum:  1,
		aspectDen:  1,
		background: RGBAColor{A: 255},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.palette == nil {
		b.palette = NewSixelColorPalette(16, 256)
	}
	b.size = clampSize(initial, b.maxSize)
	b.pixels = make([]RGBAColor, b.size.W*b.size.H)
	b.Clear(b.background)
	return b
}

func clampSize(s, max Size) Size {
	if s.W < 0 {
		s.W = 0
	}
	if s.H < 0 {
		s.H = 0
	}
	if s.W > max.W {
		s.W = max.W
	}
	if s.H > max.H {
		s.H = max.H
	}
	return s
}

// Size returns the current raster extent in pixels.
func (b *SixelImageBuilder) Size() Size {
	return b.size
}

// Palette returns the builder's shared palette.
func (b *SixelImageBuilder) Palette() *SixelColorPalette {
	return b.palette
}

// SetRaster implements Events. It clamps size to [0, maxSize] per axis and
// resizes the pixel buffer; contents after resize are unspecified beyond
// the background fill applied here.
func (b *SixelImageBuilder) SetRaster(pan, pad int, size Size) {
	b.aspectNum, b.aspectDen = pan, pad
	b.size = clampSize(size, b.maxSize)
	b.pixels = make([]RGBAColor, b.size.W*b.size.H)
	b.Clear(b.background)
}

// UseColor implements Events, selecting the active palette index modulo
// the palette's current length.
func (b *SixelImageBuilder) UseColor(index int) {
	n := b.palette.Len()
	if n == 0 {
		b.currentColor = 0
		return
	}
	index %= n
	if index < 0 {
		index += n
	}
	b.currentColor = index
}

// SetColor implements Events by delegating to the palette.
func (b *SixelImageBuilder) SetColor(index int, rgb RGBColor) {
	b.palette.SetColor(index, rgb)
}

// Render implements Events. It writes up to 6 vertical pixels at the
// current cursor column using the active palette color, then advances the
// column by one. If the column is already at or beyond size.W, no pixels
// are written and the cursor does not advance.
func (b *SixelImageBuilder) Render(sixel byte) {
	if b.cursorCol >= b.size.W {
		return
	}
	c := b.palette.At(b.currentColor).Opaque()
	for i := 0; i < 6; i++ {
		if sixel&(1<<uint(i)) != 0 {
			b.write(b.cursorCol, b.cursorRow+i, c)
		}
	}
	b.cursorCol++
}

// Rewind implements Events: return to column 0, row unchanged.
func (b *SixelImageBuilder) Rewind() {
	b.cursorCol = 0
}

// Newline implements Events: return to column 0 and advance the row by 6
// pixels, provided the next full band still fits inside the image.
func (b *SixelImageBuilder) Newline() {
	b.cursorCol = 0
	next := b.cursorRow + 6
	if next+6 <= b.size.H {
		b.cursorRow = next
	}
}

// Clear paints every pixel with fill.
func (b *SixelImageBuilder) Clear(fill RGBAColor) {
	for i := range b.pixels {
		b.pixels[i] = fill
	}
}

// At reads the pixel at (col, row), wrapping both coordinates modulo the
// current size. Returns the zero color if the buffer is empty.
func (b *SixelImageBuilder) At(col, row int) RGBAColor {
	if b.size.W == 0 || b.size.H == 0 {
		return RGBAColor{}
	}
	col = wrap(col, b.size.W)
	row = wrap(row, b.size.H)
	return b.pixels[row*b.size.W+col]
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// write sets the pixel at (col, row) if in bounds; out-of-bounds writes
// are silently dropped, per spec.
func (b *SixelImageBuilder) write(col, row int, c RGBAColor) {
	if col < 0 || col >= b.size.W || row < 0 || row >= b.size.H {
		return
	}
	b.pixels[row*b.size.W+col] = c
}

// RGBA returns the builder's buffer as a flat byte slice, 4 bytes per
// pixel, row-major, suitable for handing to ImagePool.Create. The returned
// slice is a fresh copy; mutating it does not affect the builder.
func (b *SixelImageBuilder) RGBA() []byte {
	out := make([]byte, len(b.pixels)*4)
	for i, c := range b.pixels {
		out[i*4+0] = c.R
		out[i*4+1] = c.G
		out[i*4+2] = c.B
		out[i*4+3] = c.A
	}
	return out
}

var _ Events = (*SixelImageBuilder)(nil)

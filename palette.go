package sixelcore

// SixelColorPalette is a resizable, bounded-capacity array of RGB colors,
// seeded from the VT340 default palette. Lookups wrap modulo the current
// length, matching real sixel decoders' tolerance of out-of-range indices.
//
// A palette may be shared across multiple SixelImageBuilder instances; it
// carries no image-specific state itself.
type SixelColorPalette struct {
	palette []RGBColor
	maxSize int
}

// NewSixelColorPalette creates a palette of the given initial size (colors
// beyond the VT340 default count start black) capped at maxSize. If size
// exceeds maxSize it is clamped down.
func NewSixelColorPalette(size, maxSize int) *SixelColorPalette {
	if maxSize < 0 {
		maxSize = 0
	}
	if size > maxSize {
		size = maxSize
	}
	if size < 0 {
		size = 0
	}
	p := &SixelColorPalette{
		palette: make([]RGBColor, size),
		maxSize: maxSize,
	}
	p.Reset()
	return p
}

// Len returns the current palette size.
func (p *SixelColorPalette) Len() int {
	return len(p.palette)
}

// MaxSize returns the capacity ceiling passed at construction.
func (p *SixelColorPalette) MaxSize() int {
	return p.maxSize
}

// Reset copies the VT340 default palette into the first min(Len(), 16)
// slots. Slots beyond 16, if any, are left untouched.
func (p *SixelColorPalette) Reset() {
	n := len(p.palette)
	if n > len(vt340DefaultPalette) {
		n = len(vt340DefaultPalette)
	}
	copy(p.palette[:n], vt340DefaultPalette[:n])
}

// At returns the color at index i, wrapping modulo the current length. At
// returns the zero RGBColor (black) if the palette is empty.
func (p *SixelColorPalette) At(i int) RGBColor {
	n := len(p.palette)
	if n == 0 {
		return RGBColor{}
	}
	i %= n
	if i < 0 {
		i += n
	}
	return p.palette[i]
}

// SetColor stores rgb at index i, growing the palette up to i+1 slots if
// needed. A call with i >= MaxSize is a no-op.
func (p *SixelColorPalette) SetColor(i int, rgb RGBColor) {
	if i < 0 || i >= p.maxSize {
		return
	}
	if i >= len(p.palette) {
		grown := make([]RGBColor, i+1)
		copy(grown, p.palette)
		p.palette = grown
	}
	p.palette[i] = rgb
}

// SetSize resizes the palette to min(n, MaxSize). New slots default to
// black; existing slots beyond the new size are dropped.
func (p *SixelColorPalette) SetSize(n int) {
	if n > p.maxSize {
		n = p.maxSize
	}
	if n < 0 {
		n = 0
	}
	if n == len(p.palette) {
		return
	}
	resized := make([]RGBColor, n)
	copy(resized, p.palette)
	p.palette = resized
}

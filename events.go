package sixelcore

// Size is a pixel width/height pair, used for raster extents and cell
// dimensions throughout this package.
type Size struct {
	W, H int
}

// Events is the sink a SixelParser drives as it consumes sixel bytes.
// SixelImageBuilder is the canonical implementation; tests may supply a
// narrower fake to assert on individual callbacks.
type Events interface {
	// Render draws a 6-pixel column for the given sixel value (0-63, bit 0
	// = topmost pixel) at the current cursor position, then advances the
	// cursor one column.
	Render(sixel byte)
	// SetRaster establishes the aspect-ratio numerator/denominator and the
	// intended pixel size of the image.
	SetRaster(pan, pad int, size Size)
	// UseColor selects the active palette index for subsequent Render calls.
	UseColor(index int)
	// SetColor defines palette index i as rgb.
	SetColor(index int, rgb RGBColor)
	// Rewind returns the cursor to column 0 without changing the row.
	Rewind()
	// Newline returns the cursor to column 0 and advances the row by 6
	// pixels, provided 6 more rows still fit inside the image.
	Newline()
}

// NoopEvents implements Events with all callbacks discarding their input.
// Useful in tests that only care about a subset of parser behavior, or as
// a placeholder sink while wiring up a caller.
type NoopEvents struct{}

func (NoopEvents) Render(sixel byte)                {}
func (NoopEvents) SetRaster(pan, pad int, s Size)   {}
func (NoopEvents) UseColor(index int)               {}
func (NoopEvents) SetColor(index int, rgb RGBColor) {}
func (NoopEvents) Rewind()                          {}
func (NoopEvents) Newline()                         {}

var _ Events = NoopEvents{}

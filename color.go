package sixelcore

// RGBColor is an 8-bit-per-channel red/green/blue color, the unit the
// sixel palette is defined in terms of.
type RGBColor struct {
	R, G, B uint8
}

// RGBAColor adds an 8-bit alpha channel to RGBColor. Pixel buffers and
// fragments are expressed in this type.
type RGBAColor struct {
	R, G, B, A uint8
}

// Opaque returns c with alpha set to fully opaque (255).
func (c RGBColor) Opaque() RGBAColor {
	return RGBAColor{R: c.R, G: c.G, B: c.B, A: 255}
}

// vt340DefaultPalette is the 16-entry VT340 default sixel palette, used to
// seed a SixelColorPalette on construction and on Reset. Values match the
// DEC VT340 hardware defaults (not the ANSI terminal 16-color palette).
var vt340DefaultPalette = [16]RGBColor{
	{0, 0, 0},       // 0: black
	{51, 51, 204},   // 1: blue
	{204, 33, 33},   // 2: red
	{51, 204, 51},   // 3: green
	{204, 51, 204},  // 4: magenta
	{51, 204, 204},  // 5: cyan
	{204, 204, 51},  // 6: yellow
	{135, 135, 135}, // 7: gray 50%
	{66, 66, 66},    // 8: gray 25%
	{84, 84, 153},   // 9: blue*
	{153, 66, 66},   // 10: red*
	{84, 153, 84},   // 11: green*
	{153, 84, 153},  // 12: magenta*
	{84, 153, 153},  // 13: cyan*
	{153, 153, 84},  // 14: yellow*
	{204, 204, 204}, // 15: gray 75%
}

package sixelcore

import (
	"bytes"
	"testing"
)

func solidBuffer(c RGBAColor, w, h int) []byte {
	out := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		out[i*4+0] = c.R
		out[i*4+1] = c.G
		out[i*4+2] = c.B
		out[i*4+3] = c.A
	}
	return out
}

func TestDecodeSixelBlank(t *testing.T) {
	rgba, size := DecodeSixel(nil, Size{W: 10, H: 6}, nil)
	if size != (Size{W: 10, H: 6}) {
		t.Fatalf("size = %v, want {10 6}", size)
	}
	want := solidBuffer(RGBAColor{A: 255}, 10, 6)
	if !bytes.Equal(rgba, want) {
		t.Errorf("blank decode did not produce an all-black opaque buffer")
	}
}

func TestDecodeSixelSingle(t *testing.T) {
	palette := NewSixelColorPalette(16, 256)
	palette.SetColor(1, RGBColor{R: 255})
	rgba, size := DecodeSixel([]byte("#1?~"), Size{W: 10, H: 6}, palette)
	if size != (Size{W: 10, H: 6}) {
		t.Fatalf("size = %v", size)
	}
	// '?' is code 63, value 0: it paints nothing but advances to column 1.
	// '~' is code 126, value 63 = all 6 bits set, so column 1 rows 0..5 are red.
	for row := 0; row < 6; row++ {
		off := (row*10 + 1) * 4
		got := RGBAColor{R: rgba[off], G: rgba[off+1], B: rgba[off+2], A: rgba[off+3]}
		if got != (RGBAColor{R: 255, A: 255}) {
			t.Errorf("row %d col 1 = %v, want red", row, got)
		}
	}
	// column 0 stays background.
	off := (0*10 + 0) * 4
	got := RGBAColor{R: rgba[off], G: rgba[off+1], B: rgba[off+2], A: rgba[off+3]}
	if got != (RGBAColor{A: 255}) {
		t.Errorf("col 0 row 0 = %v, want black background", got)
	}
}

func TestDecodeSixelRepeatScenario(t *testing.T) {
	palette := NewSixelColorPalette(16, 256)
	palette.SetColor(2, RGBColor{G: 255})
	// code 78 = 'N', value 78-63 = 15 = bits 001111: rows 0-3 set, rows 4-5 clear.
	rgba, size := DecodeSixel([]byte("#2!4N"), Size{W: 10, H: 6}, palette)
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			off := (row*size.W + col) * 4
			got := RGBAColor{R: rgba[off], G: rgba[off+1], B: rgba[off+2], A: rgba[off+3]}
			if got != (RGBAColor{G: 255, A: 255}) {
				t.Errorf("col %d row %d = %v, want green", col, row, got)
			}
		}
		for row := 4; row < 6; row++ {
			off := (row*size.W + col) * 4
			got := RGBAColor{R: rgba[off], G: rgba[off+1], B: rgba[off+2], A: rgba[off+3]}
			if got != (RGBAColor{A: 255}) {
				t.Errorf("col %d row %d = %v, want background", col, row, got)
			}
		}
	}
}

func TestDecodeSixelNewline(t *testing.T) {
	palette := NewSixelColorPalette(16, 256)
	palette.SetColor(1, RGBColor{R: 255})
	rgba, size := DecodeSixel([]byte("#1~-~"), Size{W: 10, H: 12}, palette)
	for _, row := range []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11} {
		off := (row*size.W + 0) * 4
		got := RGBAColor{R: rgba[off], G: rgba[off+1], B: rgba[off+2], A: rgba[off+3]}
		if got != (RGBAColor{R: 255, A: 255}) {
			t.Errorf("row %d col 0 = %v, want red (both bands painted)", row, got)
		}
	}
}

func TestDecodeSixelRasterSetting(t *testing.T) {
	_, size := DecodeSixel([]byte(`"1;1;20;12`), Size{W: 1000, H: 1000}, nil)
	if size != (Size{W: 20, H: 12}) {
		t.Fatalf("size after raster setting = %v, want {20 12}", size)
	}
}

func TestDecodeSixelColorDefinition(t *testing.T) {
	builder := NewSixelImageBuilder(Size{W: 1, H: 1})
	parser := NewSixelParser(builder)
	parser.Parse([]byte("#5;2;100;0;0"))
	parser.Finalize()
	got := builder.Palette().At(5)
	if got != (RGBColor{R: 255, G: 0, B: 0}) {
		t.Errorf("palette[5] = %v, want {255 0 0}", got)
	}
}

func TestScale100to255(t *testing.T) {
	if got := scale100to255(100); got != 255 {
		t.Errorf("scale100to255(100) = %d, want 255", got)
	}
	if got := scale100to255(0); got != 0 {
		t.Errorf("scale100to255(0) = %d, want 0", got)
	}
	if got := scale100to255(50); got != 127 {
		t.Errorf("scale100to255(50) = %d, want 127", got)
	}
}

func TestHSLColorSpaceIsNoop(t *testing.T) {
	builder := NewSixelImageBuilder(Size{W: 1, H: 1})
	before := builder.Palette().At(3)
	parser := NewSixelParser(builder)
	parser.Parse([]byte("#3;1;50;50;50")) // space == 1 (HSL), not RGB
	parser.Finalize()
	after := builder.Palette().At(3)
	if before != after {
		t.Errorf("HSL color definition mutated palette: before %v, after %v", before, after)
	}
}

func TestParserFinalizeFlushesPendingRaster(t *testing.T) {
	builder := NewSixelImageBuilder(Size{W: 1, H: 1})
	parser := NewSixelParser(builder)
	parser.Parse([]byte(`"1;1;8;8`)) // no trailing non-digit byte to trigger the leave action
	parser.Finalize()
	if builder.Size() != (Size{W: 8, H: 8}) {
		t.Errorf("Size() = %v after Finalize, want {8 8}", builder.Size())
	}
}

func TestParserFinalizer(t *testing.T) {
	called := false
	parser := NewSixelParser(NoopEvents{}, WithFinalizer(func() { called = true }))
	parser.Finalize()
	if !called {
		t.Error("finalizer was not invoked by Finalize")
	}
}

func TestParserMalformedRasterDropped(t *testing.T) {
	builder := NewSixelImageBuilder(Size{W: 5, H: 5})
	parser := NewSixelParser(builder)
	parser.Parse([]byte(`"1;2;3A`)) // only 3 params, not 4 — leave action drops it
	parser.Finalize()
	if builder.Size() != (Size{W: 5, H: 5}) {
		t.Errorf("Size() = %v, want unchanged {5 5}", builder.Size())
	}
}

package sixelcore

import "testing"

func TestBuilderBufferSizeAfterSetRaster(t *testing.T) {
	tests := []struct {
		name    string
		raster  Size
		maxSize Size
		want    Size
	}{
		{"within bounds", Size{W: 20, H: 12}, Size{W: 1000, H: 1000}, Size{W: 20, H: 12}},
		{"clamped width", Size{W: 2000, H: 12}, Size{W: 100, H: 100}, Size{W: 100, H: 12}},
		{"clamped both", Size{W: -5, H: -5}, Size{W: 100, H: 100}, Size{W: 0, H: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewSixelImageBuilder(Size{W: 1, H: 1}, WithMaxSize(tt.maxSize))
			b.SetRaster(1, 1, tt.raster)
			if b.Size() != tt.want {
				t.Fatalf("Size() = %v, want %v", b.Size(), tt.want)
			}
			if got, want := len(b.RGBA()), 4*tt.want.W*tt.want.H; got != want {
				t.Errorf("len(RGBA()) = %d, want %d", got, want)
			}
		})
	}
}

func TestBuilderCursorDiscipline(t *testing.T) {
	b := NewSixelImageBuilder(Size{W: 10, H: 18})
	for i := 0; i < 15; i++ {
		b.Render(0x3F)
	}
	b.Newline()
	b.Render(0x3F)
	b.Rewind()
	b.Newline()

	if b.cursorRow%6 != 0 {
		t.Errorf("cursorRow = %d, not a multiple of 6", b.cursorRow)
	}
	if b.cursorCol < 0 || b.cursorCol > b.size.W {
		t.Errorf("cursorCol = %d out of [0, %d]", b.cursorCol, b.size.W)
	}
}

func TestBuilderSixelBitSemantics(t *testing.T) {
	for code := 63; code <= 126; code++ {
		b := NewSixelImageBuilder(Size{W: 1, H: 6}, WithBackground(RGBAColor{A: 255}))
		palette := b.Palette()
		palette.SetColor(0, RGBColor{R: 255, G: 255, B: 255})

		b.Render(sixelValue(rune(code)))

		v := code - 63
		for row := 0; row < 6; row++ {
			want := (v>>uint(row))&1 == 1
			px := b.At(0, row)
			isFg := px.R != 0
			if isFg != want {
				t.Errorf("code %d row %d: foreground = %v, want %v", code, row, isFg, want)
			}
		}
	}
}

func TestBuilderRepeat(t *testing.T) {
	builder := NewSixelImageBuilder(Size{W: 10, H: 6})
	parser := NewSixelParser(builder)
	parser.Parse([]byte(`#0!3?`)) // value 0 = all-background, but exercises the repeat count
	parser.Finalize()
	if builder.cursorCol != 3 {
		t.Errorf("cursorCol after repeat = %d, want 3", builder.cursorCol)
	}
}

func TestBuilderNewlineDropsPartialBand(t *testing.T) {
	b := NewSixelImageBuilder(Size{W: 4, H: 6})
	b.Newline()
	if b.cursorRow != 0 {
		t.Errorf("cursorRow = %d, want 0 (next band does not fit in a 6-row image)", b.cursorRow)
	}
}

func TestBuilderNewlineExactFit(t *testing.T) {
	b := NewSixelImageBuilder(Size{W: 4, H: 12})
	b.Newline()
	if b.cursorRow != 6 {
		t.Errorf("cursorRow = %d, want 6", b.cursorRow)
	}
}

func TestBuilderClear(t *testing.T) {
	b := NewSixelImageBuilder(Size{W: 2, H: 2}, WithBackground(RGBAColor{R: 1, G: 2, B: 3, A: 4}))
	for _, px := range b.pixels {
		if px != (RGBAColor{R: 1, G: 2, B: 3, A: 4}) {
			t.Fatalf("pixel = %v, want background fill", px)
		}
	}
}

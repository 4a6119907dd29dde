package sixelcore

import (
	stdimage "image"

	"golang.org/x/image/draw"
)

// Alignment controls where a smaller-than-canvas image sits within its
// cellSpan*cellSize canvas when ResizePolicy is ResizeNone.
type Alignment int

const (
	AlignTopLeft Alignment = iota
	AlignCenter
	AlignBottomRight
)

// ResizePolicy controls how the image is fit into its cellSpan*cellSize
// canvas. ResizeStretch scales the image to exactly fill the canvas using
// plain nearest-neighbor resampling; it does not preserve aspect ratio.
type ResizePolicy int

const (
	ResizeNone ResizePolicy = iota
	ResizeStretch
)

// RasterizedImage fits an Image to a cell grid: cellSpan columns/rows of
// cellSize pixels each, with an alignment and resize policy and a
// defaultColor used to pad any area the image does not cover. Rasterizing
// never mutates the underlying Image.
type RasterizedImage struct {
	ref          *ImageRef
	alignment    Alignment
	resize       ResizePolicy
	defaultColor RGBAColor
	cellSpan     Size
	cellSize     Size

	// composed, when non-nil, is a precomputed cellSpan*cellSize canvas
	// (built by alignment offset or by resize) that Fragment slices
	// directly. When nil (the default AlignTopLeft+ResizeNone case),
	// Fragment reads directly from the underlying Image: a mirrored-row
	// copy of whatever the image covers, with any trailing area the image
	// doesn't cover filled with defaultColor.
	composed     []byte
	composedSize Size
}

func newRasterizedImage(ref *ImageRef, alignment Alignment, resize ResizePolicy, defaultColor RGBAColor, cellSpan, cellSize Size) *RasterizedImage {
	r := &RasterizedImage{
		ref:          ref,
		alignment:    alignment,
		resize:       resize,
		defaultColor: defaultColor,
		cellSpan:     cellSpan,
		cellSize:     cellSize,
	}
	r.compose()
	return r
}

// Image returns the underlying Image this rasterization was built from.
func (r *RasterizedImage) Image() *Image {
	return r.ref.Image()
}

// CellSpan returns the columns x rows of cells this rasterization occupies.
func (r *RasterizedImage) CellSpan() Size {
	return r.cellSpan
}

// CellSize returns the pixel size of one cell.
func (r *RasterizedImage) CellSize() Size {
	return r.cellSize
}

func (r *RasterizedImage) compose() {
	if r.resize == ResizeNone && r.alignment == AlignTopLeft {
		// Fragment reads the Image directly; no canvas needed.
		return
	}

	img := r.ref.Image()
	canvasW := r.cellSpan.W * r.cellSize.W
	canvasH := r.cellSpan.H * r.cellSize.H
	canvas := make([]byte, canvasW*canvasH*4)
	fillBuffer(canvas, r.defaultColor)

	switch r.resize {
	case ResizeStretch:
		stretchInto(canvas, canvasW, canvasH, img.data, img.size)
	default:
		ox, oy := r.alignOffset(canvasW, canvasH, img.size)
		placeInto(canvas, canvasW, canvasH, img.data, img.size, ox, oy)
	}

	r.composed = canvas
	r.composedSize = Size{W: canvasW, H: canvasH}
}

func (r *RasterizedImage) alignOffset(canvasW, canvasH int, imgSize Size) (int, int) {
	var ox, oy int
	switch r.alignment {
	case AlignCenter:
		ox = (canvasW - imgSize.W) / 2
		oy = (canvasH - imgSize.H) / 2
	case AlignBottomRight:
		ox = canvasW - imgSize.W
		oy = canvasH - imgSize.H
	default:
		ox, oy = 0, 0
	}
	if ox < 0 {
		ox = 0
	}
	if oy < 0 {
		oy = 0
	}
	return ox, oy
}

// effective returns the data/size Fragment should read from: the
// precomputed canvas if one was built, otherwise the Image itself.
func (r *RasterizedImage) effective() ([]byte, Size) {
	if r.composed != nil {
		return r.composed, r.composedSize
	}
	img := r.ref.Image()
	return img.data, img.size
}

// Fragment produces the RGBA tile for cell (col, row): exactly
// cellSize.W*cellSize.H*4 bytes. Rows are copied with the image's vertical
// coordinate mirrored within the available band, and any area the image
// does not cover (image smaller than cellSpan*cellSize) is filled with
// defaultColor.
//
// xOffset = col*cellSize.W and yOffset = row*cellSize.H must not exceed
// the effective image's width/height; calling Fragment with a cell
// position outside that range is a programming error and panics.
func (r *RasterizedImage) Fragment(col, row int) []byte {
	data, size := r.effective()

	xOffset := col * r.cellSize.W
	yOffset := row * r.cellSize.H
	if xOffset > size.W || yOffset > size.H || xOffset < 0 || yOffset < 0 {
		panic("sixelcore: Fragment cell position out of range")
	}

	availW := size.W - xOffset
	if availW > r.cellSize.W {
		availW = r.cellSize.W
	}
	availH := size.H - yOffset
	if availH > r.cellSize.H {
		availH = r.cellSize.H
	}

	out := make([]byte, r.cellSize.W*r.cellSize.H*4)
	rowBytes := r.cellSize.W * 4

	for y := 0; y < r.cellSize.H; y++ {
		dst := out[y*rowBytes : (y+1)*rowBytes]
		if y >= availH {
			fillRow(dst, r.defaultColor)
			continue
		}
		srcRow := yOffset + (availH - 1 - y)
		srcStart := srcRow * size.W * 4
		srcRowBytes := data[srcStart : srcStart+size.W*4]
		copy(dst[:availW*4], srcRowBytes[xOffset*4:xOffset*4+availW*4])
		if availW < r.cellSize.W {
			fillRow(dst[availW*4:], r.defaultColor)
		}
	}
	return out
}

func fillBuffer(buf []byte, c RGBAColor) {
	for i := 0; i+4 <= len(buf); i += 4 {
		buf[i+0] = c.R
		buf[i+1] = c.G
		buf[i+2] = c.B
		buf[i+3] = c.A
	}
}

func fillRow(row []byte, c RGBAColor) {
	for i := 0; i+4 <= len(row); i += 4 {
		row[i+0] = c.R
		row[i+1] = c.G
		row[i+2] = c.B
		row[i+3] = c.A
	}
}

// placeInto copies src (srcSize) into dst (dstW x dstH) at pixel offset
// (ox, oy), clipping to dst's bounds.
func placeInto(dst []byte, dstW, dstH int, src []byte, srcSize Size, ox, oy int) {
	for y := 0; y < srcSize.H; y++ {
		dy := oy + y
		if dy < 0 || dy >= dstH {
			continue
		}
		w := srcSize.W
		if ox+w > dstW {
			w = dstW - ox
		}
		if w <= 0 {
			continue
		}
		srcStart := y * srcSize.W * 4
		dstStart := (dy*dstW + ox) * 4
		copy(dst[dstStart:dstStart+w*4], src[srcStart:srcStart+w*4])
	}
}

// stretchInto scales src (srcSize) to exactly fill dst (dstW x dstH) using
// nearest-neighbor resampling. It does not preserve aspect ratio.
func stretchInto(dst []byte, dstW, dstH int, src []byte, srcSize Size) {
	if srcSize.W == 0 || srcSize.H == 0 || dstW == 0 || dstH == 0 {
		return
	}
	srcImg := &stdimage.RGBA{
		Pix:    src,
		Stride: srcSize.W * 4,
		Rect:   stdimage.Rect(0, 0, srcSize.W, srcSize.H),
	}
	dstImg := &stdimage.RGBA{
		Pix:    dst,
		Stride: dstW * 4,
		Rect:   stdimage.Rect(0, 0, dstW, dstH),
	}
	draw.NearestNeighbor.Scale(dstImg, dstImg.Rect, srcImg, srcImg.Rect, draw.Src, nil)
}

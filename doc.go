// Package sixelcore implements the decoder core of a terminal SIXEL
// graphics subsystem: a streaming SIXEL parser, the pixel-buffer image
// builder it drives, and the image pool that interns decoded images and
// slices them into cell-sized fragments for display.
//
// This package does not implement a terminal emulator. It is the core a
// CSI/OSC dispatcher hands SIXEL bytes to; see [SixelParser] and [Events]
// for that boundary.
//
// # Quick Start
//
// Decode a sixel byte stream into an RGBA buffer:
//
//	builder := sixelcore.NewSixelImageBuilder(sixelcore.Size{W: 100, H: 100})
//	parser := sixelcore.NewSixelParser(builder)
//	parser.Parse([]byte(`#1;2;100;0;0#1~`))
//	parser.Finalize()
//
//	rgba := builder.RGBA() // 4 bytes/pixel, row-major
//	size := builder.Size()
//
// Or use the one-shot convenience wrapper:
//
//	rgba, size := sixelcore.DecodeSixel(data, sixelcore.Size{W: 800, H: 600}, nil)
//
// # Architecture
//
//   - [SixelParser]: a streaming state machine over SIXEL control bytes
//     (Ground, RepeatIntroducer, ColorIntroducer, ColorParam,
//     RasterSettings), driving an [Events] sink one code point at a time.
//   - [SixelImageBuilder]: the canonical Events sink. Holds the evolving
//     RGBA pixel buffer and a 6-pixel-tall "sixel cursor".
//   - [SixelColorPalette]: a resizable, bounded-capacity RGB palette
//     seeded from the VT340 default colors, wrapping on out-of-range
//     lookups.
//   - [ImagePool]: owns decoded [Image]s and their [RasterizedImage]
//     fittings to a cell grid, producing per-cell RGBA [RasterizedImage.Fragment]
//     tiles for the display layer.
//
// # Streaming Decode
//
// SixelParser is driven one code point at a time via [SixelParser.Feed],
// or in bulk via [SixelParser.Parse]. It never fails: malformed or
// out-of-state bytes are silently dropped, so a partial or interrupted
// stream still yields a usable (if incomplete) image. Call
// [SixelParser.Finalize] once input ends to flush any pending parameter
// state (e.g. a raster-settings or color-definition command with no
// trailing byte to trigger it).
//
// # Events Sink
//
// The parser's collaborator is the six-method [Events] interface
// ([Events.Render], [Events.SetRaster], [Events.UseColor],
// [Events.SetColor], [Events.Rewind], [Events.Newline]).
// [SixelImageBuilder] is the canonical implementation; [NoopEvents]
// discards everything, useful for tests exercising only a subset.
//
// # Image Pool
//
// ImagePool owns [Image] storage (pointer-stable from [ImagePool.Create]
// until erased) and reference-counted [ImageRef] handles. Image removal
// can be requested from any thread via [ImagePool.Release], which only
// enqueues the id; the removal observer and map erase run on the next
// [ImagePool.FlushRemovals] call, which should be driven from one owning
// thread (the renderer), matching the "defer discards to the render
// thread" pattern a GPU-backed caller needs.
//
//	pool := sixelcore.NewImagePool()
//	pool.SetRemovalObserver(func(img *sixelcore.Image) {
//	    // release GPU-side texture for img.ID()
//	})
//	ref, err := pool.Create(sixelcore.ImageFormatRGBA, size, rgba)
//	handle := pool.Rasterize(ref, sixelcore.AlignTopLeft, sixelcore.ResizeNone,
//	    sixelcore.RGBAColor{A: 255}, cellSpan, cellSize)
//	tile := handle.Fragment(0, 0) // first cell's RGBA bytes
//	pool.Release(ref)
//	pool.FlushRemovals()
//
// # Thread Safety
//
// SixelParser and SixelImageBuilder are single-threaded and synchronous:
// no operation suspends, and each Feed call completes before the next is
// accepted. ImagePool's own maps are protected by an internal mutex, and
// [ImagePool.Release] is additionally safe to call from any thread.
package sixelcore

package sixelcore

// DecodeSixel is a convenience wrapper that runs data through a
// SixelParser/SixelImageBuilder pair and returns the resulting RGBA
// buffer and size, for callers that don't need to hold onto the parser or
// builder themselves.
//
// maxSize bounds the raster extent if the data never sends a raster
// settings command (or sends one exceeding it); palette is optional and,
// if nil, a fresh 16-entry/256-cap palette is used.
func DecodeSixel(data []byte, maxSize Size, palette *SixelColorPalette) ([]byte, Size) {
	opts := []BuilderOption{WithMaxSize(maxSize)}
	if palette != nil {
		opts = append(opts, WithPalette(palette))
	}
	builder := NewSixelImageBuilder(maxSize, opts...)
	parser := NewSixelParser(builder)
	parser.Parse(data)
	parser.Finalize()
	return builder.RGBA(), builder.Size()
}

package sixelcore

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// ImageFormat identifies the pixel layout of data handed to ImagePool.Create.
// Every format other than RGBA is converted to RGBA before storage; the
// pool never keeps non-RGBA bytes around.
type ImageFormat int

const (
	ImageFormatRGBA ImageFormat = iota // 32-bit RGBA, 4 bytes/pixel
	ImageFormatRGB                     // 24-bit RGB, 3 bytes/pixel, alpha assumed opaque
)

// Image is a decoded image owned by an ImagePool: a unique id, its size,
// and an RGBA byte buffer. Image's storage address is stable from Create
// until the pool erases it (see ImagePool.FlushRemovals); rasterizing an
// Image never mutates it.
type Image struct {
	id   uint64
	size Size
	data []byte // always RGBA, len == size.W*size.H*4

	refs int32 // atomic; reaching 0 enqueues the image for removal
}

// ID returns the image's pool-unique id.
func (img *Image) ID() uint64 {
	return img.id
}

// Size returns the image's pixel dimensions.
func (img *Image) Size() Size {
	return img.size
}

// RGBA returns the image's pixel buffer. Callers must not mutate it.
func (img *Image) RGBA() []byte {
	return img.data
}

// ConvertToRGBA converts data of the given format to an RGBA buffer of
// size.W*size.H*4 bytes. RGBA input is validated and returned as-is; RGB
// input is expanded to RGBA by inserting a forced-opaque (255) alpha byte
// after each pixel's three color bytes. Unsupported formats error.
func ConvertToRGBA(format ImageFormat, data []byte, size Size) ([]byte, error) {
	pixels := size.W * size.H
	switch format {
	case ImageFormatRGBA:
		want := pixels * 4
		if len(data) != want {
			return nil, fmt.Errorf("sixelcore: RGBA data length %d does not match %dx%d (want %d)", len(data), size.W, size.H, want)
		}
		return data, nil

	case ImageFormatRGB:
		want := pixels * 3
		if len(data) < want {
			return nil, fmt.Errorf("sixelcore: RGB data length %d too short for %dx%d (want %d)", len(data), size.W, size.H, want)
		}
		out := make([]byte, pixels*4)
		for i := 0; i < pixels; i++ {
			out[i*4+0] = data[i*3+0]
			out[i*4+1] = data[i*3+1]
			out[i*4+2] = data[i*3+2]
			out[i*4+3] = 255
		}
		return out, nil

	default:
		return nil, fmt.Errorf("sixelcore: unsupported image format %v", format)
	}
}

// ImageRef is a shared handle to an Image. Retain returns a second handle
// sharing the same underlying Image; each outstanding ImageRef must be
// released exactly once via ImagePool.Release. The image is only queued
// for removal once the last handle is released.
type ImageRef struct {
	pool *ImagePool
	img  *Image
}

// Image returns the referenced Image. The pointer remains valid for as
// long as this ImageRef (or any handle retained from it) has not been
// released.
func (r *ImageRef) Image() *Image {
	return r.img
}

// Retain returns a new handle to the same Image, incrementing its
// reference count.
func (r *ImageRef) Retain() *ImageRef {
	atomic.AddInt32(&r.img.refs, 1)
	return &ImageRef{pool: r.pool, img: r.img}
}

// RemovalObserver is invoked with the Image about to be erased, just
// before ImagePool.FlushRemovals removes it from the pool. Implementations
// typically release GPU-side resources (texture atlas slots, etc.).
//
// MUST be safe to call from any thread calling FlushRemovals; actual
// GPU-side work should itself be deferred to the render thread if the
// observer is invoked off it (see ImagePool.Release/FlushRemovals).
type RemovalObserver func(*Image)

// ImagePool owns a set of decoded Images and the RasterizedImages derived
// from them. Image storage is pointer-stable from Create until removal.
// Image removal may be requested (via Release) from any thread; the
// actual removal-observer call and map mutation only happen when the
// owning thread calls FlushRemovals, so GPU-side cleanup in the observer
// always runs on the thread that drives FlushRemovals, never on whatever
// goroutine called Release.
type ImagePool struct {
	mu sync.Mutex

	images         map[uint64]*Image
	rasterizations map[uint64]*RasterizedImage
	named          map[string]*ImageRef

	nextImageID    uint64
	nextRasterID   uint64
	pendingRemoval []uint64

	removalObserver RemovalObserver
}

// NewImagePool creates an empty pool.
func NewImagePool() *ImagePool {
	return &ImagePool{
		images:         make(map[uint64]*Image),
		rasterizations: make(map[uint64]*RasterizedImage),
		named:          make(map[string]*ImageRef),
	}
}

// SetRemovalObserver installs the callback run just before an Image is
// erased by FlushRemovals. Passing nil disables the callback.
func (p *ImagePool) SetRemovalObserver(obs RemovalObserver) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removalObserver = obs
}

// Create converts data to RGBA (per format) and appends a new Image,
// returning a strong ImageRef the caller owns and must eventually Release.
func (p *ImagePool) Create(format ImageFormat, size Size, data []byte) (*ImageRef, error) {
	rgba, err := ConvertToRGBA(format, data, size)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.nextImageID++
	id := p.nextImageID
	img := &Image{id: id, size: size, data: rgba, refs: 1}
	p.images[id] = img
	p.mu.Unlock()

	return &ImageRef{pool: p, img: img}, nil
}

// Release decrements ref's reference count. Once it reaches zero the image
// is enqueued for removal; the removal observer and map erase happen on
// the next FlushRemovals call, which may run on a different thread than
// the Release call.
func (p *ImagePool) Release(ref *ImageRef) {
	if ref == nil {
		return
	}
	if atomic.AddInt32(&ref.img.refs, -1) == 0 {
		p.mu.Lock()
		p.pendingRemoval = append(p.pendingRemoval, ref.img.id)
		p.mu.Unlock()
	}
}

// FlushRemovals drains the pending-removal queue, invoking the removal
// observer for each image before erasing it from the pool. Intended to be
// called from a single owning thread (e.g. the renderer) at a safe point.
func (p *ImagePool) FlushRemovals() {
	p.mu.Lock()
	pending := p.pendingRemoval
	p.pendingRemoval = nil
	p.mu.Unlock()

	for _, id := range pending {
		p.mu.Lock()
		img, ok := p.images[id]
		obs := p.removalObserver
		p.mu.Unlock()
		if !ok {
			continue
		}
		if obs != nil {
			obs(img)
		}
		p.mu.Lock()
		delete(p.images, id)
		p.mu.Unlock()
	}
}

// ImageCount returns the number of images in the pool. Images queued for
// removal by Release are still counted until FlushRemovals erases them.
func (p *ImagePool) ImageCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.images)
}

// Rasterize appends a RasterizedImage that rasterizes ref's image against
// cellSpan cells of cellSize pixels each, returning a handle the caller
// owns. Rasterizing never mutates the underlying Image.
func (p *ImagePool) Rasterize(ref *ImageRef, alignment Alignment, resize ResizePolicy, defaultColor RGBAColor, cellSpan, cellSize Size) *RasterizedImageHandle {
	owned := ref.Retain()
	ri := newRasterizedImage(owned, alignment, resize, defaultColor, cellSpan, cellSize)

	p.mu.Lock()
	p.nextRasterID++
	id := p.nextRasterID
	p.rasterizations[id] = ri
	p.mu.Unlock()

	return &RasterizedImageHandle{pool: p, id: id, RasterizedImage: ri}
}

// RemoveRasterization evicts the rasterization with the given handle,
// releasing its retained reference to the underlying Image. This only
// evicts from the rasterization list; the Image itself is untouched.
func (p *ImagePool) RemoveRasterization(h *RasterizedImageHandle) {
	if h == nil {
		return
	}
	p.mu.Lock()
	_, ok := p.rasterizations[h.id]
	if ok {
		delete(p.rasterizations, h.id)
	}
	p.mu.Unlock()
	if ok {
		p.Release(h.ref)
	}
}

// RasterizationCount returns the number of live rasterizations.
func (p *ImagePool) RasterizationCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.rasterizations)
}

// Link associates name with ref, overwriting any previous entry. The pool
// retains its own reference so the named image stays alive until Unlink.
func (p *ImagePool) Link(name string, ref *ImageRef) {
	owned := ref.Retain()

	p.mu.Lock()
	old, hadOld := p.named[name]
	p.named[name] = owned
	p.mu.Unlock()

	if hadOld {
		p.Release(old)
	}
}

// FindImageByName returns the image linked under name, if any.
func (p *ImagePool) FindImageByName(name string) (*Image, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ref, ok := p.named[name]
	if !ok {
		return nil, false
	}
	return ref.img, true
}

// Unlink removes name's association, releasing the pool's strong
// reference to the underlying image.
func (p *ImagePool) Unlink(name string) {
	p.mu.Lock()
	ref, ok := p.named[name]
	if ok {
		delete(p.named, name)
	}
	p.mu.Unlock()
	if ok {
		p.Release(ref)
	}
}

// RasterizedImageHandle is the caller-owned result of ImagePool.Rasterize,
// bundling the id the pool tracks it under with the RasterizedImage itself.
type RasterizedImageHandle struct {
	*RasterizedImage
	pool *ImagePool
	id   uint64
}

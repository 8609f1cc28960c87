// Package raster implements a small typed pixel-buffer core: per-pixel
// access over a flat sample slice, coordinate wrapping and clamping,
// 2D convolution with toroidal sampling, gaussian kernel generation with
// caching, and grayscale luminance conversion.
//
// The package owns no I/O. Images enter and leave through the standard
// library image types; decoding and encoding are the host's concern.
package raster

import (
	"fmt"
	"math/rand/v2"
)

// Sample is the closed set of sample domains: 8-bit clamped values for
// RGBA interchange and float32 values, nominally in [0, 1], for
// grayscale and kernel math.
type Sample interface {
	uint8 | float32
}

// Image is a width*height grid of pixels with a fixed channel count.
type Image[T Sample] struct {
	// Pix holds the samples, row-major and channel-interleaved. The pixel
	// at (x, y) occupies Pix[(y*Width+x)*Channels : +Channels].
	Pix      []T
	Width    int
	Height   int
	Channels int
}

// New returns a zero-filled image. It panics if width, height or
// channels is not positive.
func New[T Sample](width, height, channels int) *Image[T] {
	if width <= 0 || height <= 0 || channels <= 0 {
		panic(fmt.Sprintf("raster: invalid image geometry %dx%dx%d", width, height, channels))
	}
	return &Image[T]{
		Pix:      make([]T, width*height*channels),
		Width:    width,
		Height:   height,
		Channels: channels,
	}
}

// PixelIndex returns the flat pixel index of (x, y). Defined only for
// in-bounds coordinates.
func (im *Image[T]) PixelIndex(x, y int) int {
	return y*im.Width + x
}

// PixelCoords is the inverse of PixelIndex.
func (im *Image[T]) PixelCoords(nth int) (x, y int) {
	return nth % im.Width, nth / im.Width
}

// Pixel returns the nth pixel's channel samples as a view into Pix.
// Mutating the returned slice mutates the image.
func (im *Image[T]) Pixel(nth int) []T {
	return im.Pix[nth*im.Channels : (nth+1)*im.Channels]
}

// InBounds reports whether (x, y) lies inside the image, with no
// wrapping or clamping.
func (im *Image[T]) InBounds(x, y int) bool {
	return x >= 0 && x < im.Width && y >= 0 && y < im.Height
}

// WrapCoords reduces (x, y) into [0, Width)x[0, Height) by true
// mathematical modulo, so negative coordinates wrap to the opposite
// edge. This is what makes toroidal sampling during convolution work.
func (im *Image[T]) WrapCoords(x, y int) (int, int) {
	x %= im.Width
	if x < 0 {
		x += im.Width
	}
	y %= im.Height
	if y < 0 {
		y += im.Height
	}
	return x, y
}

// ClampCoords clamps each coordinate independently into valid range.
func (im *Image[T]) ClampCoords(x, y int) (int, int) {
	return min(max(x, 0), im.Width-1), min(max(y, 0), im.Height-1)
}

// PixelAt returns a view of the pixel at (x, y). Out-of-range
// coordinates wrap around the edges when wrap is true and clamp to the
// nearest edge otherwise, so the lookup never fails.
func (im *Image[T]) PixelAt(x, y int, wrap bool) []T {
	if wrap {
		x, y = im.WrapCoords(x, y)
	} else {
		x, y = im.ClampCoords(x, y)
	}
	return im.Pixel(im.PixelIndex(x, y))
}

// ValueAt reads a single sample with the same wrap policy as PixelAt.
// The channel is not bounds-checked: a channel outside [0, Channels)
// reads into a neighboring pixel or panics past the buffer end.
func (im *Image[T]) ValueAt(x, y, channel int, wrap bool) T {
	return im.PixelAt(x, y, wrap)[channel]
}

// SetValueAt writes a single sample with the same wrap policy as
// PixelAt. The channel is not bounds-checked, as in ValueAt.
func (im *Image[T]) SetValueAt(x, y, channel int, wrap bool, v T) {
	im.PixelAt(x, y, wrap)[channel] = v
}

// Copy returns a deep clone. The clone shares no storage with the
// receiver.
func (im *Image[T]) Copy() *Image[T] {
	pix := make([]T, len(im.Pix))
	copy(pix, im.Pix)
	return &Image[T]{
		Pix:      pix,
		Width:    im.Width,
		Height:   im.Height,
		Channels: im.Channels,
	}
}

// MapSelf applies f to every sample in place, in row-major flat-index
// order, and returns the receiver for chaining.
func (im *Image[T]) MapSelf(f func(v T, x, y, i int) T) *Image[T] {
	for i, v := range im.Pix {
		x, y := im.PixelCoords(i / im.Channels)
		im.Pix[i] = f(v, x, y, i)
	}
	return im
}

// RandomPixel returns the view of a uniformly chosen pixel. The
// selection is not seeded or reproducible.
func (im *Image[T]) RandomPixel() PixelRef[T] {
	nth := rand.IntN(im.Width * im.Height)
	x, y := im.PixelCoords(nth)
	return PixelRef[T]{X: x, Y: y, Pix: im.Pixel(nth)}
}

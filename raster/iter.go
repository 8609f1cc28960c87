package raster

import "iter"

// PixelRef is a pixel's coordinates together with a live view of its
// channel samples.
type PixelRef[T Sample] struct {
	X, Y int
	Pix  []T
}

// Coordinates returns a restartable sequence of all (x, y) pairs in
// row-major order: y outer, x inner.
func (im *Image[T]) Coordinates() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for y := range im.Height {
			for x := range im.Width {
				if !yield(x, y) {
					return
				}
			}
		}
	}
}

// Pixels returns a restartable sequence of all pixels in row-major
// order. The pixel views alias the image buffer.
func (im *Image[T]) Pixels() iter.Seq[PixelRef[T]] {
	return func(yield func(PixelRef[T]) bool) {
		for x, y := range im.Coordinates() {
			if !yield(PixelRef[T]{X: x, Y: y, Pix: im.PixelAt(x, y, false)}) {
				return
			}
		}
	}
}

// Max returns the pixel with the largest channel-0 value. Ties go to
// the first occurrence in row-major order. The second return is false
// for an image with no pixels.
func (im *Image[T]) Max() (PixelRef[T], bool) {
	var best PixelRef[T]
	found := false
	for p := range im.Pixels() {
		if !found || p.Pix[0] > best.Pix[0] {
			best = p
			found = true
		}
	}
	return best, found
}

// Min returns the pixel with the smallest channel-0 value, with the
// same tie and empty-image behavior as Max.
func (im *Image[T]) Min() (PixelRef[T], bool) {
	var best PixelRef[T]
	found := false
	for p := range im.Pixels() {
		if !found || p.Pix[0] < best.Pix[0] {
			best = p
			found = true
		}
	}
	return best, found
}

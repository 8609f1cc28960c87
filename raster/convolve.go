package raster

import (
	"fmt"
	"math"
)

// Convolve computes the full 2D convolution of the image with the
// kernel and returns the result as a new image; the receiver is left
// unmodified. Sampling past the edges wraps around, as if the image
// tiled the plane. Only channel 0 of the result is written; the other
// channels keep their original values.
//
// The kernel must have odd width and height so that a unique center
// sample exists. Convolve panics otherwise: an even-dimensioned kernel
// is a fatal precondition violation, not a recoverable error.
//
// The cost is O(W*H*kW*kH); there is no separable-kernel fast path.
func (im *Image[T]) Convolve(kernel *Gray) *Image[T] {
	if kernel.Width%2 == 0 || kernel.Height%2 == 0 {
		panic(fmt.Sprintf("raster: convolution kernel must have odd dimensions, got %dx%d",
			kernel.Width, kernel.Height))
	}

	out := im.Copy()
	cx, cy := kernel.Width/2, kernel.Height/2
	for y := range im.Height {
		for x := range im.Width {
			var sum float64
			for ky := range kernel.Height {
				for kx := range kernel.Width {
					v := im.ValueAt(x+kx-cx, y+ky-cy, 0, true)
					sum += float64(v) * float64(kernel.Pix[kernel.PixelIndex(kx, ky)])
				}
			}
			out.Pix[out.PixelIndex(x, y)*out.Channels] = clampSample[T](sum)
		}
	}
	return out
}

// clampSample converts an accumulated value back into the sample
// domain: rounded and clamped to [0, 255] for uint8, passed through
// for float32.
func clampSample[T Sample](v float64) T {
	var zero T
	if _, ok := any(zero).(uint8); ok {
		switch {
		case v < 0:
			v = 0
		case v > 255:
			v = 255
		default:
			v = math.Round(v)
		}
	}
	return T(v)
}

package raster

import (
	"fmt"
	"image"
	"math"
)

// Gray is the 1-channel image over float32 samples, nominally in
// [0, 1] but not forcibly clamped. Gray doubles as the convolution
// kernel type.
type Gray struct {
	Image[float32]
}

// NewGray returns a zero-filled grayscale image.
func NewGray(width, height int) *Gray {
	return &Gray{Image: *New[float32](width, height, 1)}
}

// GrayFromPix copies the given samples. It panics if len(pix) !=
// width*height.
func GrayFromPix(pix []float32, width, height int) *Gray {
	g := NewGray(width, height)
	if len(pix) != len(g.Pix) {
		panic(fmt.Sprintf("raster: pixel data length %d does not match %dx%dx1", len(pix), width, height))
	}
	copy(g.Pix, pix)
	return g
}

// GrayFromImage converts a decoded bitmap to grayscale by materializing
// it as RGBA first and reducing every pixel to its luminance. Alpha is
// ignored; the color information is discarded for good.
func GrayFromImage(img image.Image) *Gray {
	return GrayFromRGBA(RGBAFromImage(img))
}

// GrayFromRGBA reduces an RGBA image to its luminance.
func GrayFromRGBA(p *RGBA) *Gray {
	g := NewGray(p.Width, p.Height)
	for i := range g.Pix {
		px := p.Pixel(i)
		g.Pix[i] = float32(BrightnessU8(px[0], px[1], px[2]) / 255)
	}
	return g
}

// ToImage expands every sample v into an opaque gray bitmap pixel with
// R = G = B = round(v*255), clamped to [0, 255]. Together with
// GrayFromImage this round-trip is intentionally lossy.
func (g *Gray) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for i, v := range g.Pix {
		u := uint8(math.Round(min(max(float64(v), 0), 1) * 255))
		img.Pix[i*4+0] = u
		img.Pix[i*4+1] = u
		img.Pix[i*4+2] = u
		img.Pix[i*4+3] = 255
	}
	return img
}

// Copy returns a deep clone.
func (g *Gray) Copy() *Gray {
	return &Gray{Image: *g.Image.Copy()}
}

// Convolve is Image.Convolve preserving the Gray type.
func (g *Gray) Convolve(kernel *Gray) *Gray {
	return &Gray{Image: *g.Image.Convolve(kernel)}
}

// NormalizeSelf divides every sample by the sum of all samples, so
// that the image sums to 1 (L1 normalization). It mutates in place and
// returns the receiver for chaining. An all-zero image is left
// unchanged; the operation stays total and no NaN leaks into later
// convolutions.
func (g *Gray) NormalizeSelf() *Gray {
	var sum float64
	for _, v := range g.Pix {
		sum += float64(v)
	}
	if sum == 0 {
		return g
	}
	for i := range g.Pix {
		g.Pix[i] = float32(float64(g.Pix[i]) / sum)
	}
	return g
}

// GaussianBlur convolves the image against a gaussian kernel from
// DefaultKernelCache. Width and height that are not positive take the
// kernel's default size for stdDev.
//
// The kernel is used raw, without normalization, so overall brightness
// is not preserved; use GaussianBlurNormalized for that, or normalize
// a kernel copy yourself.
func (g *Gray) GaussianBlur(stdDev float64, width, height int) *Gray {
	return g.GaussianBlurWith(DefaultKernelCache, stdDev, width, height)
}

// GaussianBlurWith is GaussianBlur against an explicit kernel cache.
// A nil cache falls back to DefaultKernelCache.
func (g *Gray) GaussianBlurWith(cache *KernelCache, stdDev float64, width, height int) *Gray {
	if cache == nil {
		cache = DefaultKernelCache
	}
	return g.Convolve(cache.GaussianKernel(stdDev, width, height))
}

// GaussianBlurNormalized blurs against an L1-normalized copy of the
// cached kernel, preserving overall brightness.
func (g *Gray) GaussianBlurNormalized(stdDev float64, width, height int) *Gray {
	return g.Convolve(GaussianKernel(stdDev, width, height).NormalizeSelf())
}

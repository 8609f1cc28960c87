package raster

import (
	"fmt"
	"image"
	"image/draw"
)

// RGBA is the 4-channel, 8-bit interchange image: row-major
// RGBA-interleaved samples clamped to [0, 255].
type RGBA struct {
	Image[uint8]
}

// NewRGBA returns a zero-filled (transparent black) RGBA image.
func NewRGBA(width, height int) *RGBA {
	return &RGBA{Image: *New[uint8](width, height, 4)}
}

// RGBAFromPix copies the given RGBA-interleaved samples verbatim. It
// panics if len(pix) != width*height*4.
func RGBAFromPix(pix []uint8, width, height int) *RGBA {
	p := NewRGBA(width, height)
	if len(pix) != len(p.Pix) {
		panic(fmt.Sprintf("raster: pixel data length %d does not match %dx%dx4", len(pix), width, height))
	}
	copy(p.Pix, pix)
	return p
}

// RGBAFromImage copies a decoded bitmap into a new RGBA image. The
// result owns its samples; the source is never aliased or retained.
func RGBAFromImage(img image.Image) *RGBA {
	b := img.Bounds()
	tmp := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(tmp, tmp.Bounds(), img, b.Min, draw.Src)
	return RGBAFromPix(tmp.Pix, b.Dx(), b.Dy())
}

// ToImage returns a standard library bitmap holding a copy of the
// samples. Mutating the result does not affect the image.
func (p *RGBA) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	copy(img.Pix, p.Pix)
	return img
}

// Copy returns a deep clone.
func (p *RGBA) Copy() *RGBA {
	return &RGBA{Image: *p.Image.Copy()}
}

// Convolve is Image.Convolve preserving the RGBA type.
func (p *RGBA) Convolve(kernel *Gray) *RGBA {
	return &RGBA{Image: *p.Image.Convolve(kernel)}
}

// Brightness maps a normalized RGB triple to perceptual brightness in
// [0, 1] using fixed luminance weights. Pure; alpha plays no part.
func Brightness(r, g, b float64) float64 {
	return 0.21*r + 0.72*g + 0.07*b
}

// BrightnessU8 is Brightness over 8-bit channel values, scaled back to
// the 8-bit domain: BrightnessU8(255, 255, 255) == 255 up to floating
// rounding.
func BrightnessU8(r, g, b uint8) float64 {
	return 255 * Brightness(float64(r)/255, float64(g)/255, float64(b)/255)
}

package proc

import (
	"image"
	"image/color"
	"log/slog"
	"testing"
)

func validCmd(t *testing.T) *CLICmd {
	t.Helper()
	return &CLICmd{Scan: t.TempDir(), Dest: "processed", Format: "unsup:png"}
}

func TestValidateRejectsBadTransforms(t *testing.T) {
	tests := []struct {
		name  string
		tweak func(*CLICmd)
	}{
		{"negative blur", func(c *CLICmd) { c.Blur = -1 }},
		{"even kernel width", func(c *CLICmd) { c.Blur = 1; c.KernelWidth = 4 }},
		{"even kernel height", func(c *CLICmd) { c.Blur = 1; c.KernelHeight = 2 }},
		{"kernel without stddev", func(c *CLICmd) { c.KernelWidth = 3 }},
		{"resize without dimensions", func(c *CLICmd) { c.Resize = true }},
		{"negative resize width", func(c *CLICmd) { c.Resize = true; c.Width = -10 }},
		{"bad fill color", func(c *CLICmd) { c.Fill = "red" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCmd(t)
			tt.tweak(c)
			if err := c.Validate(nil); err == nil {
				t.Errorf("Validate accepted %s", tt.name)
			}
		})
	}
}

func TestValidateAcceptsBlurConfig(t *testing.T) {
	c := validCmd(t)
	c.Blur = 1.5
	c.KernelWidth = 9
	c.KernelHeight = 5

	if err := c.Validate(nil); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateParsesFillColor(t *testing.T) {
	c := validCmd(t)
	c.Resize = true
	c.Width = 100
	c.Fill = "#336699"

	if err := c.Validate(nil); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.FillColor != (color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xFF}) {
		t.Errorf("FillColor = %v, want #336699", c.FillColor)
	}
}

func TestTransformProducesGrayPixels(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i+0] = 250
		src.Pix[i+1] = 10
		src.Pix[i+2] = 120
		src.Pix[i+3] = 255
	}

	c := &CLICmd{Gray: true}
	out := c.transform(slog.Default(), src)

	rgba, ok := out.(*image.RGBA)
	if !ok {
		t.Fatalf("transform returned %T, want *image.RGBA", out)
	}
	for i := 0; i < len(rgba.Pix); i += 4 {
		if rgba.Pix[i] != rgba.Pix[i+1] || rgba.Pix[i+1] != rgba.Pix[i+2] {
			t.Fatalf("pixel %d not gray: %v", i/4, rgba.Pix[i:i+4])
		}
	}
}

func TestTransformBlursImpulse(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 9, 9))
	src.SetRGBA(4, 4, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	for y := range 9 {
		for x := range 9 {
			if x != 4 || y != 4 {
				src.SetRGBA(x, y, color.RGBA{A: 255})
			}
		}
	}

	c := &CLICmd{Blur: 1}
	out := c.transform(slog.Default(), src).(*image.RGBA)

	if center, next := out.RGBAAt(4, 4).R, out.RGBAAt(5, 4).R; center <= next || next == 0 {
		t.Errorf("impulse not smoothed: center %d, neighbor %d", center, next)
	}
}

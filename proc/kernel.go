package proc

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"github.com/KristijanJovanovski/surma.dev/raster"

	"github.com/alecthomas/kong"
)

// KernelCmd renders a gaussian kernel to a PNG, scaled so its peak is
// white. Handy for eyeballing kernel sizes before batch runs.
type KernelCmd struct {
	StdDev float64 `help:"Gaussian standard deviation" default:"1"`
	Width  int     `help:"Kernel width, odd. Defaults to covering 3 standard deviations"`
	Height int     `help:"Kernel height, odd. Defaults to covering 3 standard deviations"`
	Out    string  `help:"Output PNG file" default:"kernel.png" type:"path"`
}

func (c *KernelCmd) Validate(kctx *kong.Context) error {
	switch {
	case c.StdDev < 0:
		return fmt.Errorf("invalid standard deviation: %g", c.StdDev)
	case (c.Width < 0) || (c.Width > 0 && c.Width%2 == 0):
		return fmt.Errorf("kernel width must be odd: %d", c.Width)
	case (c.Height < 0) || (c.Height > 0 && c.Height%2 == 0):
		return fmt.Errorf("kernel height must be odd: %d", c.Height)
	}
	return nil
}

func (c *KernelCmd) Run() (err error) {
	k := raster.GaussianKernel(c.StdDev, c.Width, c.Height)
	if peak, ok := k.Max(); ok && peak.Pix[0] > 0 {
		scale := peak.Pix[0]
		k.MapSelf(func(v float32, _, _, _ int) float32 { return v / scale })
	}
	slog.Info("rendering kernel", "stddev", c.StdDev, "width", k.Width, "height", k.Height, "file", c.Out)

	outFile, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("could not create destination %q: %w", c.Out, err)
	}
	defer func() {
		if defErr := outFile.Close(); defErr != nil {
			err = fmt.Errorf("could not close destination %q: %w", c.Out, defErr)
		}
	}()

	if err = png.Encode(outFile, k.ToImage()); err != nil {
		return fmt.Errorf("could not encode PNG destination %q: %w", c.Out, err)
	}
	return err
}

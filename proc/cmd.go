// Package proc implements the batch processing command: scan a folder,
// push every image through the raster core (grayscale luminance,
// gaussian blur, optional resize) and save the results.
package proc

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/KristijanJovanovski/surma.dev/parallel"
	"github.com/KristijanJovanovski/surma.dev/raster"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Scan         string      `help:"Source folder to scan" default:"."`
	Dest         string      `help:"Destination folder for processed pictures. Relative to scan dir if not absolute. If same as scan dir, will overwrite source files." default:"processed"`
	Gray         bool        `help:"Convert to grayscale luminance" default:"false" group:"transform"`
	Blur         float64     `help:"Gaussian blur standard deviation (implies grayscale)" default:"0" group:"transform"`
	KernelWidth  int         `help:"Blur kernel width, odd. Defaults to covering 3 standard deviations" group:"transform"`
	KernelHeight int         `help:"Blur kernel height, odd. Defaults to covering 3 standard deviations" group:"transform"`
	Raw          bool        `help:"Blur with the raw unnormalized gaussian kernel, darkening the result" default:"false" group:"transform"`
	Resize       bool        `help:"Resize image before processing" default:"false" group:"resize"`
	Width        int         `help:"Max width" group:"resize"`
	Height       int         `help:"Max height" group:"resize"`
	Crop         bool        `help:"Crop image to maintain requested aspect ratio" default:"false" group:"resize"`
	Fill         string      `help:"If given and not cropping, will fill background with this color to maintain destination aspect ratio" group:"resize"`
	Format       string      `help:"Output format of processed image. If prefixed with 'unsup:' will convert only unsupported formats" enum:"same,gif,unsup:gif,jpeg,unsup:jpeg,png,unsup:png,bmp,unsup:bmp,tiff,unsup:tiff,webp,unsup:webp" default:"unsup:png"`
	FillColor    color.Color `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	switch {
	case c.Blur < 0:
		return fmt.Errorf("invalid blur standard deviation: %g", c.Blur)
	case (c.KernelWidth < 0) || (c.KernelWidth > 0 && c.KernelWidth%2 == 0):
		return fmt.Errorf("blur kernel width must be odd: %d", c.KernelWidth)
	case (c.KernelHeight < 0) || (c.KernelHeight > 0 && c.KernelHeight%2 == 0):
		return fmt.Errorf("blur kernel height must be odd: %d", c.KernelHeight)
	case (c.KernelWidth > 0 || c.KernelHeight > 0) && (c.Blur == 0):
		return fmt.Errorf("blur kernel dimensions given without a standard deviation")
	}

	if c.Resize {
		switch {
		case (c.Width < 0):
			return fmt.Errorf("invalid resize width: %d", c.Width)
		case (c.Height < 0):
			return fmt.Errorf("invalid resize height: %d", c.Height)
		case (c.Width == 0) && (c.Height == 0):
			return fmt.Errorf("no resize dimensions given")
		}
	}

	if (!c.Crop) && (c.Fill != "") {
		if c.FillColor, err = parseHexToColor(c.Fill); err != nil {
			return err
		}
	}

	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, os.ModeDir); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				filePath := filepath.Join(c.Scan, fileName)
				logger := slog.Default().With("file", filePath)

				imgFile, err := os.Open(filePath)
				if err != nil {
					errCount.Add(1)
					logger.Error("could not open image", "error", err)
					return
				}

				img, imgType, err := image.Decode(imgFile)
				if err != nil {
					errCount.Add(1)
					logger.Error("could not decode image", "error", err)
					return
				}

				if c.Resize {
					img, err = resize(logger, img, c.Width, c.Height, c.Crop, c.FillColor)
					if err != nil {
						errCount.Add(1)
						logger.Error("could not resize image", "error", err)
						return
					}
				}

				if c.Gray || c.Blur > 0 {
					img = c.transform(logger, img)
				}

				if err = save(img, imgType, c.Format, c.Dest, fileName); err != nil {
					errCount.Add(1)
					logger.Error("could not save image", "dir", c.Dest, "error", err)
					return
				}
				processedCount.Add(1)
			}
		}(file.Name()))
	}

	wait(true)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

// transform runs the raster pipeline: bitmap in, luminance, optional
// blur, bitmap out.
func (c *CLICmd) transform(logger *slog.Logger, img image.Image) image.Image {
	gray := raster.GrayFromImage(img)
	if c.Blur > 0 {
		logger.Info("blurring", "stddev", c.Blur, "raw", c.Raw)
		if c.Raw {
			gray = gray.GaussianBlur(c.Blur, c.KernelWidth, c.KernelHeight)
		} else {
			gray = gray.GaussianBlurNormalized(c.Blur, c.KernelWidth, c.KernelHeight)
		}
	}
	return gray.ToImage()
}

func parseHexToColor(s string) (color.Color, error) {
	var c color.RGBA
	switch len(s) {
	case 4:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		if err != nil {
			return nil, fmt.Errorf("could not read color: %w", err)
		} else if n < 3 {
			return nil, fmt.Errorf("insufficient fill color fields: %d", n)
		}

		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A = 0xFF
	case 5:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x%x", &c.R, &c.G, &c.B, &c.A)
		if err != nil {
			return nil, fmt.Errorf("could not read color: %w", err)
		} else if n < 3 {
			return nil, fmt.Errorf("insufficient fill color fields: %d", n)
		}

		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A |= c.A << 4
	case 7:
		n, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
		if err != nil {
			return nil, fmt.Errorf("could not read color: %w", err)
		} else if n < 3 {
			return nil, fmt.Errorf("insufficient fill color fields: %d", n)
		}

		c.A = 0xFF
	case 8:
		n, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
		if err != nil {
			return nil, fmt.Errorf("could not read color: %w", err)
		} else if n < 3 {
			return nil, fmt.Errorf("insufficient fill color fields: %d", n)
		}
	default:
		return nil, fmt.Errorf("invalid fill color, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA")
	}

	return c, nil
}

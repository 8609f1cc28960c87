package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/KristijanJovanovski/surma.dev/parallel"
	"github.com/KristijanJovanovski/surma.dev/proc"

	"github.com/alecthomas/kong"
)

var cli struct {
	Proc    proc.CLICmd    `cmd:"" help:"Process all images in a folder: grayscale luminance, gaussian blur, resize"`
	Kernel  proc.KernelCmd `cmd:"" help:"Render a gaussian kernel to a PNG"`
	Workers int            `help:"Number of parallel workers, 0 for one per CPU" default:"0"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("surmaproc"),
		kong.Description("Typed pixel-buffer image processing."),
		kong.UsageOnError(),
	)

	var err error
	switch kctx.Command() {
	case "proc":
		pool := parallel.New(cli.Workers)
		err = cli.Proc.Run(pool.Do, pool.Wait)
	case "kernel":
		err = cli.Kernel.Run()
	default:
		err = fmt.Errorf("unsupported operation %q", kctx.Command())
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

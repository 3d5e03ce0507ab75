// Package main is the quadcompress command itself.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	goutils "go.viam.com/utils"

	"go.viam.com/quadcompress/compressor"
	"go.viam.com/quadcompress/logging"
	"go.viam.com/quadcompress/rimage"
	"go.viam.com/quadcompress/utils"
)

const (
	// Flags.
	flagImage       = "image"
	flagDestination = "destination"
	flagLines       = "lines"
	flagGIF         = "gif"
	flagDepth       = "depth"
	flagMaxDepth    = "max-depth"
	flagThreshold   = "threshold"
	flagConcurrency = "concurrency"
	flagDelay       = "delay"
	flagDebug       = "debug"
	flagLogLevel    = "log-level"

	defaultDepth = 7
	envPrefix    = "QUADCOMPRESS_"
)

func envVar(name string) []string {
	return []string{envPrefix + name}
}

func main() {
	if err := realMain(context.Background(), os.Args); err != nil {
		logging.Global().Fatal(err)
	}
}

func realMain(ctx context.Context, args []string) error {
	return newApp(nil).RunContext(ctx, args)
}

// newApp builds the command. A nil logger is replaced by a stdout logger once flags are
// parsed; either way the logger becomes the global one at the level the flags ask for.
func newApp(logger logging.Logger) *cli.App {
	return &cli.App{
		Name:      "quadcompress",
		Usage:     "approximate an image with an adaptive quadtree",
		UsageText: "quadcompress --image FILE [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     flagImage,
				Aliases:  []string{"i"},
				Usage:    "image to compress",
				Required: true,
				EnvVars:  envVar("IMAGE"),
			},
			&cli.StringFlag{
				Name:    flagDestination,
				Aliases: []string{"o"},
				Usage:   "where to write the output; defaults to images/<name>_compressed.jpg or images/<name>_compressing.gif",
				EnvVars: envVar("DESTINATION"),
			},
			&cli.BoolFlag{
				Name:    flagLines,
				Aliases: []string{"l"},
				Usage:   "outline every quadrant in black",
				EnvVars: envVar("LINES"),
			},
			&cli.BoolFlag{
				Name:    flagGIF,
				Aliases: []string{"g"},
				Usage:   "write an animation of every depth instead of a single image",
				EnvVars: envVar("GIF"),
			},
			&cli.IntFlag{
				Name:    flagDepth,
				Aliases: []string{"d"},
				Usage: fmt.Sprintf("depth to render, 0 to %d; a depth the tree never reached renders its "+
					"deepest level with a warning", compressor.MaxDepthLimit),
				Value:   defaultDepth,
				EnvVars: envVar("DEPTH"),
			},
			&cli.IntFlag{
				Name:    flagMaxDepth,
				Usage:   "depth at which subdivision stops",
				Value:   compressor.DefaultMaxDepth,
				EnvVars: envVar("MAX_DEPTH"),
			},
			&cli.Float64Flag{
				Name:    flagThreshold,
				Usage:   "detail at or below which a region is left whole",
				Value:   compressor.DefaultDetailThreshold,
				EnvVars: envVar("THRESHOLD"),
			},
			&cli.IntFlag{
				Name:    flagConcurrency,
				Usage:   "goroutines used to build the tree; 0 uses one per CPU",
				EnvVars: envVar("CONCURRENCY"),
			},
			&cli.DurationFlag{
				Name:    flagDelay,
				Usage:   "how long each animation frame is shown",
				Value:   compressor.DefaultGIFOptions().Delay,
				EnvVars: envVar("DELAY"),
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging; same as --log-level debug",
				EnvVars: envVar("DEBUG"),
			},
			&cli.StringFlag{
				Name:    flagLogLevel,
				Usage:   "one of debug, info, warn, error",
				Value:   logging.INFO.String(),
				EnvVars: envVar("LOG_LEVEL"),
			},
		},
		Before: func(c *cli.Context) error {
			level, err := logging.LevelFromString(c.String(flagLogLevel))
			if err != nil {
				return err
			}
			if c.Bool(flagDebug) {
				level = logging.DEBUG
			}
			if logger == nil {
				logger = logging.NewLogger("quadcompress")
			}
			logger.SetLevel(level)
			logging.ReplaceGlobal(logger)
			return nil
		},
		After: func(c *cli.Context) error {
			if logger != nil {
				goutils.UncheckedErrorFunc(logger.Sync)
			}
			return nil
		},
		Action: func(c *cli.Context) error {
			return compressAction(c, logger)
		},
	}
}

func compressAction(c *cli.Context, logger logging.Logger) error {
	cfg := compressor.Config{
		MaxDepth:        c.Int(flagMaxDepth),
		DetailThreshold: c.Float64(flagThreshold),
		Concurrency:     c.Int(flagConcurrency),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	depth := c.Int(flagDepth)
	if err := cfg.ValidateDepth(depth); err != nil {
		return err
	}

	imagePath := c.String(flagImage)
	animated := c.Bool(flagGIF)
	destination := lo.Ternary(c.IsSet(flagDestination), c.String(flagDestination),
		utils.DefaultDestination(imagePath, animated))

	src, err := rimage.ReadImageFromFile(imagePath)
	if err != nil {
		return errors.Wrap(err, "cannot compress image")
	}
	logger.Infow("compressing image", "image", imagePath, "width", src.Width(), "height", src.Height())

	start := time.Now()
	comp, err := compressor.New(c.Context, src, cfg, logger.Sublogger("compressor"))
	if err != nil {
		return err
	}

	if animated {
		opts := compressor.GIFOptions{
			Delay:     c.Duration(flagDelay),
			ShowLines: c.Bool(flagLines),
		}
		if err := comp.WriteGIF(destination, opts); err != nil {
			utils.RemoveFileNoError(destination)
			return err
		}
	} else {
		if depth > comp.Depth() {
			logger.Warnw("requested depth is deeper than the tree; rendering the deepest level instead",
				"requested", depth, "realized", comp.Depth())
			depth = comp.Depth()
		}
		if err := comp.WriteImage(destination, depth, c.Bool(flagLines)); err != nil {
			utils.RemoveFileNoError(destination)
			return err
		}
	}

	logger.Infow("wrote compressed image", "destination", destination, "elapsed", time.Since(start))
	return nil
}

// Package main is the phaseunwrap command line tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	pu "phaseunwrap/pkg/phaseunwrap"
)

const (
	// Flags.
	flagConfig        = "config"
	flagDebug         = "debug"
	flagWorkers       = "workers"
	flagWidth         = "width"
	flagHeight        = "height"
	flagWavelength    = "wavelength"
	flagShift         = "shift"
	flagGrayImages    = "gray-images"
	flagGrayThreshold = "gray-threshold"
	flagOut           = "out"
	flagFringes       = "fringes"
	flagGray          = "gray"
	flagExt           = "ext"
	flagBayer         = "bayer"
	flagCSV           = "csv"
	flagImage         = "image"
	flagPlot          = "plot"
	flagPreview       = "preview"
	flagRow           = "row"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newApp().RunContext(ctx, args)
}

// app carries state set up in Before and shared by the commands.
type app struct {
	logger *zap.SugaredLogger
}

func newApp() *cli.App {
	a := &app{logger: zap.NewNop().Sugar()}
	return &cli.App{
		Name:  "phaseunwrap",
		Usage: "recover absolute phase from double three-step fringes and Gray codes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load configuration from JSON `FILE`",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			var (
				logger *zap.Logger
				err    error
			)
			if c.Bool(flagDebug) {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			if err != nil {
				return errors.Wrap(err, "logger")
			}
			a.logger = logger.Sugar()
			return nil
		},
		After: func(*cli.Context) error {
			// Syncing stderr fails on some terminals; nothing to report.
			_ = a.logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "synth",
				Usage:  "write synthetic fringe and Gray-code patterns",
				Flags:  append(append(sizeFlags(), patternFlags()...), outFlag(".")),
				Action: a.synth,
			},
			{
				Name:  "run",
				Usage: "unwrap captured patterns",
				Flags: append(patternFlags(),
					&cli.StringFlag{Name: flagFringes, Value: "phase_pattern_", Usage: "fringe capture path prefix"},
					&cli.StringFlag{Name: flagGray, Value: "gray_pattern_", Usage: "Gray-code capture path prefix"},
					&cli.StringFlag{Name: flagExt, Value: ".png", Usage: "capture file extension"},
					&cli.BoolFlag{Name: flagBayer, Usage: "captures are raw RGGB mosaics"},
					&cli.IntFlag{Name: flagWorkers, Usage: "row workers per stage (0 uses every CPU)"},
					&cli.StringFlag{Name: flagCSV, Usage: "write the unwrapped map as CSV to `FILE`"},
					&cli.StringFlag{Name: flagImage, Value: "unwrappedPhaseMap.png", Usage: "write the normalized map to `FILE` (empty to skip)"},
					&cli.StringFlag{Name: flagPlot, Usage: "plot one row to `FILE`"},
					&cli.StringFlag{Name: flagPreview, Usage: "write a JPEG preview to `FILE`"},
					rowFlag(),
				),
				Action: a.run,
			},
			{
				Name:      "plot",
				Usage:     "plot one row of a CSV phase map",
				ArgsUsage: "<phase.csv>",
				Flags:     []cli.Flag{outFlag("row.png"), rowFlag()},
				Action:    a.plot,
			},
		},
	}
}

// sizeFlags only apply to synth; run takes the size from its captures.
func sizeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: flagWidth, Usage: "pattern width in pixels"},
		&cli.IntFlag{Name: flagHeight, Usage: "pattern height in pixels"},
	}
}

func patternFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{Name: flagWavelength, Usage: "fringe period in pixels"},
		&cli.Float64Flag{Name: flagShift, Usage: "phase step between frames in degrees"},
		&cli.IntFlag{Name: flagGrayImages, Usage: "number of Gray-code images"},
		&cli.UintFlag{Name: flagGrayThreshold, Usage: "binarize Gray captures above this level (0 keeps nonzero)"},
	}
}

func outFlag(def string) cli.Flag {
	return &cli.StringFlag{Name: flagOut, Aliases: []string{"o"}, Value: def, Usage: "output path"}
}

func rowFlag() cli.Flag {
	return &cli.IntFlag{Name: flagRow, Value: -1, Usage: "plotted row (-1 is the middle row)"}
}

// loadConfig reads the --config file over the defaults, then applies any
// explicitly set flags.
func loadConfig(c *cli.Context) (pu.Config, error) {
	cfg := pu.DefaultConfig()
	if path := c.String(flagConfig); path != "" {
		var err error
		if cfg, err = pu.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	if c.IsSet(flagWidth) {
		cfg.Width = c.Int(flagWidth)
	}
	if c.IsSet(flagHeight) {
		cfg.Height = c.Int(flagHeight)
	}
	if c.IsSet(flagWavelength) {
		cfg.Wavelength = c.Float64(flagWavelength)
	}
	if c.IsSet(flagShift) {
		cfg.PhaseShiftDeg = c.Float64(flagShift)
	}
	if c.IsSet(flagGrayImages) {
		cfg.NumGrayImages = c.Int(flagGrayImages)
	}
	if c.IsSet(flagGrayThreshold) {
		v := c.Uint(flagGrayThreshold)
		if v > 0xFFFF {
			return cfg, errors.Errorf("gray threshold %d exceeds 65535", v)
		}
		cfg.GrayThreshold = uint16(v)
	}
	return cfg, cfg.Validate()
}

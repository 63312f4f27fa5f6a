package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"phaseunwrap/pkg/capture"
	"phaseunwrap/pkg/export"
	pu "phaseunwrap/pkg/phaseunwrap"
)

func (a *app) synth(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	fringes, err := pu.SynthesizeFringes(cfg)
	if err != nil {
		return err
	}
	gray, err := pu.SynthesizeGrayCode(cfg)
	if err != nil {
		return err
	}

	dir := c.String(flagOut)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}
	if err := capture.SaveSequence(filepath.Join(dir, "phase_pattern_"), fringes); err != nil {
		return err
	}
	if err := capture.SaveSequence(filepath.Join(dir, "gray_pattern_"), gray); err != nil {
		return err
	}
	a.logger.Infow("patterns written", "dir", dir, "fringes", len(fringes), "gray", len(gray))
	fmt.Printf("Wrote %d fringe and %d Gray-code patterns to %s\n", len(fringes), len(gray), dir)
	return nil
}

func (a *app) run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	loader := capture.NewFileLoader(capture.Options{Bayer: c.Bool(flagBayer), Logger: a.logger})
	ext := c.String(flagExt)
	fringes, err := capture.LoadSequence(c.Context, loader, c.String(flagFringes), ext, cfg.FringeCount())
	if err != nil {
		return errors.Wrap(err, "loading fringes")
	}
	gray, err := capture.LoadSequence(c.Context, loader, c.String(flagGray), ext, cfg.NumGrayImages)
	if err != nil {
		return errors.Wrap(err, "loading Gray codes")
	}

	// Captures define the scan size.
	if c.String(flagConfig) != "" && (cfg.Width != fringes[0].Width() || cfg.Height != fringes[0].Height()) {
		a.logger.Warnw("config size differs from captures, using capture size",
			"config_width", cfg.Width, "config_height", cfg.Height,
			"width", fringes[0].Width(), "height", fringes[0].Height())
	}
	cfg.Width, cfg.Height = fringes[0].Width(), fringes[0].Height()

	var sinks export.Multi
	if path := c.String(flagCSV); path != "" {
		sinks = append(sinks, export.CSV{Path: path})
	}
	if path := c.String(flagImage); path != "" {
		sinks = append(sinks, export.Image{Path: path})
	}
	if path := c.String(flagPlot); path != "" {
		sinks = append(sinks, export.RowPlot{Path: path, Row: c.Int(flagRow)})
	}
	if path := c.String(flagPreview); path != "" {
		caption := fmt.Sprintf("wavelength %g px, %d Gray images", cfg.Wavelength, cfg.NumGrayImages)
		sinks = append(sinks, export.Preview{Path: path, Caption: caption})
	}

	p, err := pu.New(cfg,
		pu.WithLogger(a.logger),
		pu.WithWorkers(c.Int(flagWorkers)),
		pu.WithSink(sinks),
	)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := p.Run(c.Context, pu.Inputs{Fringes: fringes, Gray: gray})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	s := res.Summary
	fmt.Println()
	fmt.Printf("=== Phase Unwrapping Results (%.2fs) ===\n", elapsed.Seconds())
	fmt.Printf("  Image size:      %d x %d\n", s.Width, s.Height)
	fmt.Printf("  Wrapped mean:    %.4f rad\n", s.WrappedMean)
	fmt.Printf("  Unwrapped range: [%.4f, %.4f] rad\n", s.UnwrappedMin, s.UnwrappedMax)
	fmt.Printf("  Max order:       %d of %d\n", s.MaxOrder, cfg.MaxOrder())
	fmt.Println("========================================")
	return nil
}

func (a *app) plot(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: phaseunwrap plot [--out FILE] [--row N] <phase.csv>")
	}
	f, err := os.Open(c.Args().First())
	if err != nil {
		return errors.Wrap(err, "open phase map")
	}
	defer f.Close()
	m, err := capture.ReadPhaseCSV(f)
	if err != nil {
		return err
	}
	out := c.String(flagOut)
	if err := (export.RowPlot{Path: out, Row: c.Int(flagRow)}).Consume(c.Context, m); err != nil {
		return err
	}
	a.logger.Infow("row plotted", "map", c.Args().First(), "out", out)
	return nil
}

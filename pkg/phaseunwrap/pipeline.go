package phaseunwrap

import (
	"context"
	"image"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Inputs are the grids of one run.
type Inputs struct {
	// Fringes holds two three-step sets: frames 0-2 and frames 3-5.
	Fringes []*SampleGrid
	// Gray holds NumGrayImages binary captures, most significant bit first.
	Gray []*SampleGrid
}

// Result holds the maps a run produced.
type Result struct {
	Wrapped   *WrappedPhaseMap
	Order     *FringeOrderMap
	Unwrapped *UnwrappedPhaseMap
	Summary   Summary
}

// Pipeline runs demodulation, averaging, Gray decoding and unwrapping over
// explicitly supplied grids. A Pipeline holds no state between runs and may be
// shared by concurrent callers.
type Pipeline struct {
	cfg     Config
	logger  *zap.SugaredLogger
	workers int
	sink    Sink
}

// Option configures a Pipeline.
type Option func(*Pipeline)

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithWorkers bounds the goroutines each stage uses. Zero or less means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(p *Pipeline) { p.workers = n }
}

// WithSink hands every successful result to sink before Run returns.
func WithSink(sink Sink) Option {
	return func(p *Pipeline) { p.sink = sink }
}

func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{cfg: cfg, logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(p)
	}
	if !cfg.ExactStep() {
		p.logger.Warnw("three-step formula is exact only for 120° steps; wrapped phase will be biased",
			"phase_shift_deg", cfg.PhaseShiftDeg)
	}
	return p, nil
}

func (p *Pipeline) Config() Config { return p.cfg }

// Run executes one pipeline pass. Every input is validated before any stage
// starts; the first failing stage aborts the run and no partial Result is
// returned.
func (p *Pipeline) Run(ctx context.Context, in Inputs) (*Result, error) {
	if err := p.validate(in); err != nil {
		return nil, err
	}
	start := time.Now()

	gray := in.Gray
	if p.cfg.GrayThreshold > 0 {
		gray = make([]*SampleGrid, len(in.Gray))
		for i, g := range in.Gray {
			gray[i] = Binarize(g, p.cfg.GrayThreshold)
		}
	}

	var (
		wrapped1, wrapped2, wrapped *WrappedPhaseMap
		order                       *FringeOrderMap
		unwrapped                   *UnwrappedPhaseMap
	)
	steps := []struct {
		stage string
		run   func() error
	}{
		{StageDemodulate, func() (err error) {
			wrapped1, err = demodulate(ctx, p.workers, in.Fringes[0], in.Fringes[1], in.Fringes[2])
			if err != nil {
				return err
			}
			wrapped2, err = demodulate(ctx, p.workers, in.Fringes[3], in.Fringes[4], in.Fringes[5])
			return err
		}},
		{StageAverage, func() (err error) {
			wrapped, err = average(ctx, p.workers, wrapped1, wrapped2)
			return err
		}},
		{StageDecodeGray, func() (err error) {
			order, err = decodeGray(ctx, p.workers, gray)
			return err
		}},
		{StageUnwrap, func() (err error) {
			unwrapped, err = unwrap(ctx, p.workers, wrapped, order)
			return err
		}},
	}
	for _, step := range steps {
		stepStart := time.Now()
		if err := step.run(); err != nil {
			p.logger.Errorw("stage failed", "stage", step.stage, "error", err)
			return nil, errors.Wrapf(err, "%s stage", step.stage)
		}
		p.logger.Debugw("stage done", "stage", step.stage, "elapsed", time.Since(stepStart))
	}

	res := &Result{
		Wrapped:   wrapped,
		Order:     order,
		Unwrapped: unwrapped,
		Summary:   Summarize(wrapped, order, unwrapped),
	}
	p.logger.Infow("phase unwrapped",
		"width", res.Summary.Width,
		"height", res.Summary.Height,
		"max_order", res.Summary.MaxOrder,
		"unwrapped_min", res.Summary.UnwrappedMin,
		"unwrapped_max", res.Summary.UnwrappedMax,
		"elapsed", time.Since(start))

	if p.sink != nil {
		if err := p.sink.Consume(ctx, unwrapped); err != nil {
			return nil, errors.Wrap(err, "sink")
		}
	}
	return res, nil
}

// validate checks counts and sizes of every input against the config.
func (p *Pipeline) validate(in Inputs) error {
	if n, want := len(in.Fringes), p.cfg.FringeCount(); n != want {
		return errors.Wrapf(ErrMissingInput, "%s: got %d fringe images, want %d", StagePipeline, n, want)
	}
	if n, want := len(in.Gray), p.cfg.NumGrayImages; n != want {
		return errors.Wrapf(ErrMissingInput, "%s: got %d Gray-code images, want %d", StagePipeline, n, want)
	}
	ref := fixedSize{X: p.cfg.Width, Y: p.cfg.Height}
	check := func(kind string, grids []*SampleGrid) error {
		all := make([]sized, 0, len(grids)+1)
		all = append(all, ref)
		for _, g := range grids {
			all = append(all, g)
		}
		if err := checkSameSize(StagePipeline+"/"+kind, all...); err != nil {
			// Report indexes relative to the caller's slice, not the reference grid.
			switch e := err.(type) {
			case *MissingGridError:
				e.Index--
			case *DimensionError:
				e.Index--
			}
			return err
		}
		return nil
	}
	if err := check("fringe", in.Fringes); err != nil {
		return err
	}
	return check("gray", in.Gray)
}

// fixedSize stands in for the configured grid size in size checks.
type fixedSize image.Point

func (s fixedSize) Size() image.Point { return image.Point(s) }

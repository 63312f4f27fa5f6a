package export

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"phaseunwrap/pkg/capture"
	pu "phaseunwrap/pkg/phaseunwrap"
)

// CSV writes the map as CSV rows to Path.
type CSV struct {
	Path string
}

func (c CSV) Consume(_ context.Context, m *pu.UnwrappedPhaseMap) error {
	f, err := createFile(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := capture.WritePhaseCSV(f, m); err != nil {
		return err
	}
	return errors.Wrap(f.Close(), "close csv")
}

// Image writes the map, normalized to the full 16-bit range, to Path.
type Image struct {
	Path string
}

func (i Image) Consume(_ context.Context, m *pu.UnwrappedPhaseMap) error {
	if m.Empty() {
		return errEmptyMap
	}
	return WriteImage(i.Path, m)
}

// Multi hands the map to every sink, even after one fails, and returns the
// combined errors.
type Multi []pu.Sink

func (ms Multi) Consume(ctx context.Context, m *pu.UnwrappedPhaseMap) error {
	var err error
	for _, s := range ms {
		if cerr := ctx.Err(); cerr != nil {
			return multierr.Append(err, cerr)
		}
		err = multierr.Append(err, s.Consume(ctx, m))
	}
	return err
}

package phaseunwrap

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minRowsPerBand keeps tiny grids from being split into more bands than is useful.
const minRowsPerBand = 8

// forEachRow calls fn for every row in [0, height), splitting rows into
// contiguous bands run on at most workers goroutines. Each band owns its rows
// exclusively. It returns once every band finished.
func forEachRow(ctx context.Context, height, workers int, fn func(y int)) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	bands := workers
	if maxBands := (height + minRowsPerBand - 1) / minRowsPerBand; bands > maxBands {
		bands = maxBands
	}
	if bands <= 1 {
		for y := 0; y < height; y++ {
			fn(y)
		}
		return ctx.Err()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	per := (height + bands - 1) / bands
	for start := 0; start < height; start += per {
		end := min(start+per, height)
		g.Go(func() error {
			for y := start; y < end; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				fn(y)
			}
			return nil
		})
	}
	return g.Wait()
}

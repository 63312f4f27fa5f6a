package export

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	pu "phaseunwrap/pkg/phaseunwrap"
)

// MiddleRow selects the row at height/2.
const MiddleRow = -1

// RowPlot plots the unwrapped phase along one row of the map and saves it to
// Path. The image format follows the file extension.
type RowPlot struct {
	Path string
	// Row is the plotted row; MiddleRow plots height/2.
	Row int
}

func (r RowPlot) Consume(_ context.Context, m *pu.UnwrappedPhaseMap) error {
	p, err := newRowPlot(m, r.Row)
	if err != nil {
		return err
	}
	f, err := createFile(r.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := writePlot(f, p, formatOf(r.Path)); err != nil {
		return err
	}
	return errors.Wrap(f.Close(), "close row plot")
}

// WriteRowPlot renders the row plot to w. Format is a gonum/plot format name
// such as "png" or "svg".
func WriteRowPlot(w io.Writer, m *pu.UnwrappedPhaseMap, row int, format string) error {
	p, err := newRowPlot(m, row)
	if err != nil {
		return err
	}
	return writePlot(w, p, format)
}

func writePlot(w io.Writer, p *plot.Plot, format string) error {
	wt, err := p.WriterTo(14*vg.Inch, 6*vg.Inch, format)
	if err != nil {
		return errors.Wrap(err, "row plot format")
	}
	_, err = wt.WriteTo(w)
	return errors.Wrap(err, "write row plot")
}

func newRowPlot(m *pu.UnwrappedPhaseMap, row int) (*plot.Plot, error) {
	if m.Empty() {
		return nil, errEmptyMap
	}
	if row == MiddleRow {
		row = m.Height() / 2
	}
	if row < 0 || row >= m.Height() {
		return nil, errors.Errorf("row %d outside map of height %d", row, m.Height())
	}

	values := m.Row(row)
	pts := make(plotter.XYs, len(values))
	for x, v := range values {
		pts[x] = plotter.XY{X: float64(x), Y: v}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Unwrapped phase - row %d", row)
	p.X.Label.Text = "Column"
	p.Y.Label.Text = "Phase (rad)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, errors.Wrap(err, "row plot line")
	}
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	line.Width = vg.Points(1)
	p.Add(line)
	return p, nil
}

// formatOf returns the plot format for a file path.
func formatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// createFile opens path for writing, creating parent directories.
func createFile(path string) (*os.File, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	return f, errors.Wrap(err, "create output file")
}

func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		return errors.Wrap(os.MkdirAll(dir, 0o755), "create output directory")
	}
	return nil
}

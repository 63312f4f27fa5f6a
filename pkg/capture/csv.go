package capture

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"

	pu "phaseunwrap/pkg/phaseunwrap"
)

// WritePhaseCSV writes one CSV record per row of m. Values use the shortest
// representation that round-trips.
func WritePhaseCSV(w io.Writer, m *pu.Grid[float64]) error {
	cw := csv.NewWriter(w)
	record := make([]string, m.Width())
	for y := 0; y < m.Height(); y++ {
		for x, v := range m.Row(y) {
			record[x] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "writing row %d", y)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}

// ReadPhaseCSV reads a map written by WritePhaseCSV. Every record must have
// the same number of fields.
func ReadPhaseCSV(r io.Reader) (*pu.Grid[float64], error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	var (
		data  []float64
		width int
		rows  int
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading csv")
		}
		if rows == 0 {
			width = len(record)
		}
		for x, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d column %d", rows, x)
			}
			data = append(data, v)
		}
		rows++
	}
	return pu.GridFromSlice(width, rows, data)
}

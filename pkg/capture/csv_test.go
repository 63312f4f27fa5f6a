package capture

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pu "phaseunwrap/pkg/phaseunwrap"
)

func TestPhaseCSVRoundTrip(t *testing.T) {
	m := pu.NewGrid[float64](3, 2)
	m.Set(0, 0, math.Pi)
	m.Set(2, 1, -1.0/3)
	m.Set(1, 1, 4*math.Pi+0.1)

	var buf bytes.Buffer
	require.NoError(t, WritePhaseCSV(&buf, m))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))

	got, err := ReadPhaseCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Size(), got.Size())
	if diff := cmp.Diff(m.Data(), got.Data()); diff != "" {
		t.Errorf("phase map changed (-want +got):\n%s", diff)
	}
}

func TestReadPhaseCSVErrors(t *testing.T) {
	tests := []struct {
		name, in string
	}{
		{"ragged", "1,2,3\n4,5\n"},
		{"not a number", "1,x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPhaseCSV(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestReadPhaseCSVEmpty(t *testing.T) {
	m, err := ReadPhaseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.True(t, m.Empty())
}

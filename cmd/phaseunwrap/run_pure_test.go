//go:build purego

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phaseunwrap/pkg/capture"
)

func TestRunSynthesizedScan(t *testing.T) {
	dir := t.TempDir()
	scan := []string{"--width", "64", "--height", "2", "--wavelength", "16", "--gray-images", "3"}
	require.NoError(t, newApp().Run(append(append([]string{"phaseunwrap", "synth"}, scan...), "--out", dir)))

	csvPath := filepath.Join(dir, "phase.csv")
	args := append([]string{"phaseunwrap", "run"}, scan...)
	args = append(args,
		"--fringes", filepath.Join(dir, "phase_pattern_"),
		"--gray", filepath.Join(dir, "gray_pattern_"),
		"--csv", csvPath,
		"--image", filepath.Join(dir, "unwrapped.png"),
		"--preview", filepath.Join(dir, "preview.jpg"),
	)
	require.NoError(t, newApp().Run(args))

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	m, err := capture.ReadPhaseCSV(f)
	require.NoError(t, err)
	assert.Equal(t, 64, m.Width())
	assert.Equal(t, 2, m.Height())
	assert.FileExists(t, filepath.Join(dir, "unwrapped.png"))
	assert.FileExists(t, filepath.Join(dir, "preview.jpg"))
}

func TestRunMissingCapture(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, newApp().Run([]string{"phaseunwrap", "synth",
		"--width", "20", "--height", "1", "--gray-images", "2", "--out", dir}))

	err := newApp().Run([]string{"phaseunwrap", "run",
		"--width", "20", "--height", "1", "--gray-images", "3",
		"--fringes", filepath.Join(dir, "phase_pattern_"),
		"--gray", filepath.Join(dir, "gray_pattern_"),
		"--image", "",
	})
	var le *capture.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 2, le.Index)
}

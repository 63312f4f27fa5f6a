//go:build purego || js

package capture

import (
	"os"

	"github.com/pkg/errors"

	pu "phaseunwrap/pkg/phaseunwrap"
)

const backendName = "purego"

func decodeFile(path string) (*pu.SampleGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening image")
	}
	defer f.Close()
	return Decode(f)
}

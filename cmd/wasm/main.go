//go:build js && wasm

package main

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"syscall/js"

	"phaseunwrap/pkg/capture"
	"phaseunwrap/pkg/export"
	pu "phaseunwrap/pkg/phaseunwrap"
)

var (
	lastMap    *pu.UnwrappedPhaseMap
	lastConfig pu.Config
)

func main() {
	js.Global().Set("unwrapPhase", js.FuncOf(unwrapPhase))
	js.Global().Set("renderPreview", js.FuncOf(renderPreview))
	js.Global().Set("renderRowPlot", js.FuncOf(renderRowPlot))
	select {} // block forever
}

// unwrapPhase(fringeFiles, grayFiles, options) decodes the uploaded images
// and runs the pipeline. Both file arguments are arrays of Uint8Array.
func unwrapPhase(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("usage: unwrapPhase(fringeFiles, grayFiles, options)")
	}

	cfg := pu.DefaultConfig()
	bayer := false
	if len(args) >= 3 && args[2].Type() == js.TypeObject {
		opts := args[2]
		if v := opts.Get("wavelength"); v.Type() == js.TypeNumber {
			cfg.Wavelength = v.Float()
		}
		if v := opts.Get("shift"); v.Type() == js.TypeNumber {
			cfg.PhaseShiftDeg = v.Float()
		}
		if v := opts.Get("threshold"); v.Type() == js.TypeNumber {
			t := v.Float()
			if t < 0 || t > math.MaxUint16 || t != math.Trunc(t) {
				return errorResult(fmt.Sprintf("threshold must be an integer in 0..%d, got %g", math.MaxUint16, t))
			}
			cfg.GrayThreshold = uint16(t)
		}
		if v := opts.Get("debayer"); v.Type() == js.TypeBoolean {
			bayer = v.Bool()
		}
	}

	fringes, err := decodeAll(args[0], bayer)
	if err != nil {
		return errorResult("fringe " + err.Error())
	}
	gray, err := decodeAll(args[1], bayer)
	if err != nil {
		return errorResult("Gray-code " + err.Error())
	}
	if len(fringes) == 0 || len(gray) == 0 {
		return errorResult("no images")
	}
	cfg.Width, cfg.Height = fringes[0].Width(), fringes[0].Height()
	cfg.NumGrayImages = len(gray)

	p, err := pu.New(cfg)
	if err != nil {
		return errorResult("config error: " + err.Error())
	}
	res, err := p.Run(context.Background(), pu.Inputs{Fringes: fringes, Gray: gray})
	if err != nil {
		return errorResult("unwrap error: " + err.Error())
	}
	lastMap = res.Unwrapped
	lastConfig = cfg

	s := res.Summary
	return js.ValueOf(map[string]interface{}{
		"width":        s.Width,
		"height":       s.Height,
		"wrappedMean":  s.WrappedMean,
		"unwrappedMin": s.UnwrappedMin,
		"unwrappedMax": s.UnwrappedMax,
		"maxOrder":     int(s.MaxOrder),
		"exactStep":    cfg.ExactStep(),
	})
}

func decodeAll(files js.Value, bayer bool) ([]*pu.SampleGrid, error) {
	n := files.Length()
	grids := make([]*pu.SampleGrid, n)
	for i := 0; i < n; i++ {
		jsBytes := files.Index(i)
		data := make([]byte, jsBytes.Get("length").Int())
		js.CopyBytesToGo(data, jsBytes)

		decode := capture.Decode
		if capture.IsFITS(data) {
			decode = capture.DecodeFITS
		}
		g, err := decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
		if bayer {
			g = capture.DebayerRGGB(g)
		}
		grids[i] = g
	}
	return grids, nil
}

func renderPreview(this js.Value, args []js.Value) interface{} {
	if lastMap == nil {
		return js.Null()
	}
	caption := fmt.Sprintf("wavelength %g px, %d Gray images", lastConfig.Wavelength, lastConfig.NumGrayImages)
	jpegBytes, err := export.PreviewBytes(lastMap, caption)
	if err != nil {
		return js.Null()
	}
	return toUint8Array(jpegBytes)
}

// renderRowPlot(row) returns a PNG plot of one row; -1 or no argument plots
// the middle row.
func renderRowPlot(this js.Value, args []js.Value) interface{} {
	if lastMap == nil {
		return js.Null()
	}
	row := export.MiddleRow
	if len(args) >= 1 && args[0].Type() == js.TypeNumber {
		row = args[0].Int()
	}
	var buf bytes.Buffer
	if err := export.WriteRowPlot(&buf, lastMap, row, "png"); err != nil {
		return js.Null()
	}
	return toUint8Array(buf.Bytes())
}

func toUint8Array(b []byte) js.Value {
	uint8Array := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(uint8Array, b)
	return uint8Array
}

func errorResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{
		"error": msg,
	})
}

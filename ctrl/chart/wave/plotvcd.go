// Package wave renders signals from a value change dump as a timing diagram:
// one row per signal, green step traces on black, a shared time axis below.
package wave

import (
	"fmt"
	"github.com/celskeggs/vlauto/ctrl/util"
	"github.com/celskeggs/vlauto/ctrl/vcd"
	"github.com/pkg/errors"
	"path/filepath"
	"strings"
)

type NoSignalsError struct {
	Module    string
	Available []string
}

func (e *NoSignalsError) Error() string {
	return fmt.Sprintf("no signals found for module %q; available signals: %s",
		e.Module, strings.Join(e.Available, ", "))
}

func NewFigure(tracePath string, panels []*Panel) *Figure {
	return &Figure{
		Title:  "Waveform Plot - " + filepath.Base(tracePath),
		Panels: panels,
	}
}

// PlotVCD renders the selected signals of the trace at tracePath into a PNG
// at outPath. A missing trace or an empty selection is an error and leaves
// outPath untouched.
func PlotVCD(tracePath, outPath string, sel Selection) (err error) {
	if !util.Exists(tracePath) {
		return errors.Errorf("VCD file not found: %s", tracePath)
	}
	trace, err := vcd.Open(tracePath)
	if err != nil {
		return err
	}
	panels := Select(trace, sel)
	if len(panels) == 0 {
		return &NoSignalsError{Module: sel.module(), Available: trace.Names()}
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("rendering %s: %v", tracePath, r)
		}
	}()
	return errors.Wrapf(NewFigure(tracePath, panels).Save(outPath), "writing %s", outPath)
}

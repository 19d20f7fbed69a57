package wave

import (
	"github.com/celskeggs/vlauto/ctrl/vcd"
	"gonum.org/v1/plot/plotter"
	"strconv"
	"strings"
)

// TimeDivisor scales trace timestamps down to display units. The division is
// exact rather than floored, so transitions closer together than the divisor
// stay apart on the time axis.
const TimeDivisor = 1000

// DefaultModule is the scope name used when none is configured. Under this
// scope unqualified signal names are eligible as well.
const DefaultModule = "TEST"

type Selection struct {
	// Variables restricts the plot to these signal names; nil selects all.
	Variables []string
	Module    string
}

func (s Selection) module() string {
	if s.Module == "" {
		return DefaultModule
	}
	return s.Module
}

// allows matches a signal by its name with or without the declared bit
// range, so both "count" and "count[3:0]" pick out a 4-bit count.
func (s Selection) allows(name, bitRange string) bool {
	if s.Variables == nil {
		return true
	}
	for _, v := range s.Variables {
		if v == name || v == name+bitRange {
			return true
		}
	}
	return false
}

// Panel is the step series of one signal, ready to be drawn as one row of a
// timing diagram.
type Panel struct {
	Name string
	// Points holds one point per sample plus a terminal point at the end of
	// the trace that repeats the last value.
	Points plotter.XYs
	// Labels annotates every point but the terminal one.
	Labels   []string
	MaxValue float64
}

// ValueOf converts a sample value to an integer. Anything that is not a
// binary number, including x and z bits, reads as zero.
func ValueOf(value string) uint64 {
	n, err := strconv.ParseUint(value, 2, 64)
	if err != nil {
		return 0
	}
	return n
}

func scaleTime(t uint64) float64 {
	return float64(t) / TimeDivisor
}

func NewPanel(name string, signal *vcd.Signal) *Panel {
	panel := &Panel{
		Name:   name,
		Points: make(plotter.XYs, 0, len(signal.Samples)+1),
		Labels: make([]string, 0, len(signal.Samples)),
	}
	for _, sample := range signal.Samples {
		value := float64(ValueOf(sample.Value))
		panel.Points = append(panel.Points, plotter.XY{X: scaleTime(sample.Time), Y: value})
		panel.Labels = append(panel.Labels, "0b"+sample.Value)
		if value > panel.MaxValue {
			panel.MaxValue = value
		}
	}
	last, ok := signal.Last()
	if !ok {
		panel.MaxValue = 1
	}
	panel.Points = append(panel.Points, plotter.XY{
		X: scaleTime(signal.EndTime),
		Y: float64(ValueOf(last.Value)),
	})
	return panel
}

// Select picks the signals of a trace that belong to the selection's module
// and strips the module qualifier from their names. Signals nested deeper in
// the hierarchy are skipped. Panels are named with the bit range of vectors,
// as in "count[3:0]". If two signals strip to the same name the later one
// wins, keeping the position of the first.
func Select(trace *vcd.Trace, sel Selection) []*Panel {
	module := sel.module()
	prefix := module + "."
	var panels []*Panel
	index := make(map[string]int)
	for _, signal := range trace.Signals {
		name := signal.Name
		if strings.HasPrefix(name, prefix) {
			name = strings.TrimPrefix(name, prefix)
		} else if module != DefaultModule {
			continue
		}
		if strings.Contains(name, ".") || !sel.allows(name, signal.Range) {
			continue
		}
		full := name + signal.Range
		panel := NewPanel(full, signal)
		if i, ok := index[full]; ok {
			panels[i] = panel
		} else {
			index[full] = len(panels)
			panels = append(panels, panel)
		}
	}
	return panels
}

// Package vcd reads four-state value change dump files as written by Verilog
// simulators ($dumpfile/$dumpvars).
package vcd

import (
	"github.com/pkg/errors"
	"os"
)

// Sample is one recorded value of a signal. Vector values are stored without
// their 'b' prefix, scalars as a single character.
type Sample struct {
	Time  uint64
	Value string
}

type Signal struct {
	// Name is the reference qualified by its enclosing scopes, joined by '.'.
	Name  string
	Type  string
	Width int
	// Range is the bit range written after the reference, such as "[7:0]".
	Range   string
	Samples []Sample
	EndTime uint64
}

// FullName is the name as declared, with the bit range appended, such as
// "TEST.count[3:0]".
func (s *Signal) FullName() string {
	return s.Name + s.Range
}

// Last returns the most recent sample, if any.
func (s *Signal) Last() (Sample, bool) {
	if len(s.Samples) == 0 {
		return Sample{}, false
	}
	return s.Samples[len(s.Samples)-1], true
}

func (s *Signal) record(time uint64, value string) {
	if n := len(s.Samples); n > 0 && s.Samples[n-1].Time == time {
		s.Samples[n-1].Value = value
		return
	}
	s.Samples = append(s.Samples, Sample{Time: time, Value: value})
}

type Trace struct {
	Date      string
	Version   string
	Timescale string
	// Signals are listed in declaration order.
	Signals []*Signal
	EndTime uint64

	byName map[string]*Signal
}

func (t *Trace) lookup(name string) (*Signal, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// Names lists the full names of all signals in declaration order.
func (t *Trace) Names() []string {
	names := make([]string, len(t.Signals))
	for i, s := range t.Signals {
		names[i] = s.FullName()
	}
	return names
}

func Open(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	trace, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return trace, nil
}

package vcd

import (
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const counterDump = `$date
	Tue Oct 14 12:00:00 2025
$end
$version
	Icarus Verilog
$end
$timescale
	1ps
$end
$scope module TEST $end
$var wire 1 ! clk $end
$var reg 4 " count [3:0] $end
$scope module dut $end
$var wire 1 ! clk $end
$var wire 4 # q [3:0] $end
$upscope $end
$upscope $end
$enddefinitions $end
$comment
	initial values follow
$end
#0
$dumpvars
0!
b0000 "
bxxxx #
$end
#5000
1!
b0001 "
b0001 #
#10000
0!
#15000
1!
b0010 "
b0010 "
#20000
`

func parseString(t *testing.T, text string) *Trace {
	trace, err := Parse(strings.NewReader(text))
	require.NoError(t, err)
	return trace
}

func TestParseHeader(t *testing.T) {
	trace := parseString(t, counterDump)
	require.Equal(t, "Tue Oct 14 12:00:00 2025", trace.Date)
	require.Equal(t, "Icarus Verilog", trace.Version)
	require.Equal(t, "1ps", trace.Timescale)
	require.Equal(t, []string{"TEST.clk", "TEST.count[3:0]", "TEST.dut.clk", "TEST.dut.q[3:0]"}, trace.Names())
}

func TestParseDeclarations(t *testing.T) {
	trace := parseString(t, counterDump)
	count, ok := trace.lookup("TEST.count")
	require.True(t, ok)
	require.Equal(t, "reg", count.Type)
	require.Equal(t, 4, count.Width)
	require.Equal(t, "[3:0]", count.Range)
	require.Equal(t, "TEST.count[3:0]", count.FullName())

	_, ok = trace.lookup("TEST.missing")
	require.False(t, ok)
}

func TestParseSamples(t *testing.T) {
	trace := parseString(t, counterDump)
	clk, _ := trace.lookup("TEST.clk")
	require.Equal(t, []Sample{
		{Time: 0, Value: "0"},
		{Time: 5000, Value: "1"},
		{Time: 10000, Value: "0"},
		{Time: 15000, Value: "1"},
	}, clk.Samples)

	count, _ := trace.lookup("TEST.count")
	require.Equal(t, []Sample{
		{Time: 0, Value: "0000"},
		{Time: 5000, Value: "0001"},
		{Time: 15000, Value: "0010"},
	}, count.Samples)
}

func TestSharedIdentifierCode(t *testing.T) {
	trace := parseString(t, counterDump)
	outer, _ := trace.lookup("TEST.clk")
	inner, _ := trace.lookup("TEST.dut.clk")
	require.Equal(t, outer.Samples, inner.Samples)
}

func TestEndTime(t *testing.T) {
	trace := parseString(t, counterDump)
	require.EqualValues(t, 20000, trace.EndTime)
	for _, s := range trace.Signals {
		require.EqualValues(t, 20000, s.EndTime, s.Name)
	}
	last, ok := trace.Signals[0].Last()
	require.True(t, ok)
	require.EqualValues(t, 15000, last.Time)
}

func TestSameTimeChangesCollapse(t *testing.T) {
	trace := parseString(t, `$var wire 1 ! a $end
$enddefinitions $end
#0
0!
1!
#3
0!
#3
1!
`)
	a, _ := trace.lookup("a")
	require.Equal(t, []Sample{{Time: 0, Value: "1"}, {Time: 3, Value: "1"}}, a.Samples)
}

func TestRealAndFourStateValues(t *testing.T) {
	trace := parseString(t, `$scope module top $end
$var real 64 % temp $end
$var wire 1 & en $end
$upscope $end
$enddefinitions $end
#0
r1.5 %
X&
#2
Z&
`)
	temp, _ := trace.lookup("top.temp")
	require.Equal(t, []Sample{{Time: 0, Value: "1.5"}}, temp.Samples)
	en, _ := trace.lookup("top.en")
	require.Equal(t, []Sample{{Time: 0, Value: "x"}, {Time: 2, Value: "z"}}, en.Samples)
}

func TestSignalWithoutChanges(t *testing.T) {
	trace := parseString(t, `$var wire 1 ! idle $end
$enddefinitions $end
#42
`)
	idle, _ := trace.lookup("idle")
	require.Empty(t, idle.Samples)
	require.EqualValues(t, 42, idle.EndTime)
	_, ok := idle.Last()
	require.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	for name, text := range map[string]string{
		"unknown code":     "$var wire 1 ! a $end\n$enddefinitions $end\n#0\n1?\n",
		"bad timestamp":    "$var wire 1 ! a $end\n$enddefinitions $end\n#zero\n",
		"time goes back":   "$var wire 1 ! a $end\n$enddefinitions $end\n#5\n#4\n",
		"truncated var":    "$var wire 1 ! a\n",
		"short var":        "$var wire 1 $end\n",
		"unclosed scope":   "$scope module TEST $end\n$var wire 1 ! a $end\n",
		"stray upscope":    "$upscope $end\n",
		"vector sans code": "$var wire 2 ! a $end\n$enddefinitions $end\n#0\nb10",
		"garbage":          "$enddefinitions $end\n?!\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(text))
			require.Error(t, err)
		})
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter.vcd")
	require.NoError(t, os.WriteFile(path, []byte(counterDump), 0o644))
	trace, err := Open(path)
	require.NoError(t, err)
	require.Len(t, trace.Signals, 4)

	_, err = Open(filepath.Join(t.TempDir(), "absent.vcd"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}

func TestOpenWrapsParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.vcd")
	require.NoError(t, os.WriteFile(path, []byte("#1\n#0\n"), 0o644))
	_, err := Open(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), path)
}

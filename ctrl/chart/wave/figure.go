package wave

import (
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"image/color"
)

var (
	PageColor  = color.RGBA{0xBB, 0xBB, 0xBB, 0xFF}
	PlotColor  = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	TraceColor = color.RGBA{0x00, 0xFF, 0x00, 0xFF}
	LabelColor = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	// grid lines are #0080FF at reduced opacity
	GridColor    = color.NRGBA{0x00, 0x80, 0xFF, 0x66}
	DividerColor = color.NRGBA{0x00, 0x80, 0xFF, 0x33}
)

const (
	TimeLabel = "Time (ps)"
	// RowPad is added below the lowest and above the highest value of a row.
	RowPad = 0.2
)

var (
	FigureWidth = 12 * vg.Inch
	RowHeight   = 0.8 * vg.Inch
	// ChromeHeight leaves room for the title and the time axis.
	ChromeHeight = 1.1 * vg.Inch
	DPI          = 300
)

var (
	monoFont = font.Font{Typeface: "Liberation", Variant: "Mono"}
	boldFont = font.Font{Typeface: "Liberation", Variant: "Sans", Weight: xfont.WeightBold}
	sansFont = font.Font{Typeface: "Liberation", Variant: "Sans"}
)

func textStyle(fnt font.Font, size vg.Length, c color.Color) text.Style {
	return text.Style{
		Color:   c,
		Font:    font.From(fnt, size),
		XAlign:  draw.XCenter,
		YAlign:  draw.YCenter,
		Handler: plot.DefaultTextHandler,
	}
}

// plotArea darkens the data area behind every row.
type plotArea struct {
	Color color.Color
}

func (a plotArea) Plot(c draw.Canvas, _ *plot.Plot) {
	c.SetColor(a.Color)
	c.Fill(c.Rectangle.Path())
}

// WaveRow draws one panel into the band [Location, Location+1] of the y axis.
type WaveRow struct {
	Panel       *Panel
	Location    float64
	LineStyle   draw.LineStyle
	TextStyle   draw.TextStyle
	DividerLine draw.LineStyle
}

var _ plot.Plotter = &WaveRow{}
var _ plot.DataRanger = &WaveRow{}

func NewWaveRow(panel *Panel, loc float64) *WaveRow {
	label := textStyle(monoFont, vg.Points(10), LabelColor)
	label.XAlign = draw.XLeft
	return &WaveRow{
		Panel:    panel,
		Location: loc,
		LineStyle: draw.LineStyle{
			Color: TraceColor,
			Width: vg.Points(2),
		},
		TextStyle: label,
		DividerLine: draw.LineStyle{
			Color: DividerColor,
			Width: vg.Points(0.3),
		},
	}
}

// rowY maps a value into the row, with the padded value range filling it.
func (w *WaveRow) rowY(v float64) float64 {
	lo, hi := -RowPad, w.Panel.MaxValue+RowPad
	return w.Location + (v-lo)/(hi-lo)
}

func (w *WaveRow) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	bottom := trY(w.Location)
	if c.ContainsY(bottom) && w.Location > 0 {
		c.StrokeLine2(w.DividerLine, c.Min.X, bottom, c.Max.X, bottom)
	}

	pts := make(plotter.XYs, len(w.Panel.Points))
	for i, pt := range w.Panel.Points {
		pts[i] = plotter.XY{X: pt.X, Y: w.rowY(pt.Y)}
	}
	if len(pts) > 0 {
		line := &plotter.Line{
			XYs:       pts,
			StepStyle: plotter.PostStep,
			LineStyle: w.LineStyle,
		}
		line.Plot(c, plt)
	}

	center := trY(w.rowY(w.Panel.MaxValue / 2))
	pad := vg.Points(2)
	for i, label := range w.Panel.Labels {
		x := trX(w.Panel.Points[i].X)
		if !c.ContainsX(x) {
			continue
		}
		c.FillText(w.TextStyle, vg.Point{X: x + pad, Y: center}, label)
	}
}

func (w *WaveRow) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax, _, _ = plotter.XYRange(w.Panel.Points)
	return xmin, xmax, w.Location, w.Location + 1
}

// Figure stacks one row per panel over a shared time axis, first panel on
// top.
type Figure struct {
	Title  string
	Panels []*Panel
}

func (f *Figure) Size() (width, height vg.Length) {
	return FigureWidth, ChromeHeight + RowHeight*vg.Length(len(f.Panels))
}

func (f *Figure) Plot() *plot.Plot {
	p := plot.New()
	p.BackgroundColor = PageColor

	p.Title.Text = f.Title
	p.Title.TextStyle = textStyle(boldFont, vg.Points(14), color.Black)

	p.X.Label.Text = TimeLabel
	p.X.Label.TextStyle = textStyle(boldFont, vg.Points(10), color.Black)
	p.X.Padding = 0
	p.X.LineStyle = draw.LineStyle{Color: color.Black, Width: vg.Points(1)}
	p.X.Tick.Label = textStyle(sansFont, vg.Points(8), color.Black)
	p.X.Tick.Label.YAlign = draw.YTop
	p.X.Tick.LineStyle = draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)}

	p.Y.Padding = 0
	p.Y.LineStyle.Width = 0
	p.Y.Tick.Length = 0
	p.Y.Tick.Label = textStyle(boldFont, vg.Points(10), color.Black)
	p.Y.Tick.Label.XAlign = draw.XRight

	p.Add(plotArea{Color: PlotColor})
	grid := plotter.NewGrid()
	grid.Vertical = draw.LineStyle{Color: GridColor, Width: vg.Points(0.5)}
	grid.Horizontal.Color = nil
	p.Add(grid)

	var ticks []plot.Tick
	for i, panel := range f.Panels {
		loc := float64(len(f.Panels) - 1 - i)
		p.Add(NewWaveRow(panel, loc))
		ticks = append(ticks, plot.Tick{Value: loc + 0.5, Label: panel.Name})
	}
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Min, p.Y.Max = 0, float64(len(f.Panels))
	if p.X.Min == p.X.Max {
		p.X.Max = p.X.Min + 1
	}
	return p
}

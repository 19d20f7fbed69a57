package wave

import (
	"bytes"
	"github.com/celskeggs/vlauto/ctrl/util"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"image"
	"image/color"
	"io"
	"os"
)

// CropPad is the page margin left around the drawn content.
var CropPad = 0.1 * vg.Inch

// contentBounds finds the smallest rectangle holding every pixel that differs
// from background, grown by pad and clipped to the image. An image with no
// content keeps its full bounds.
func contentBounds(img image.Image, background color.Color, pad int) image.Rectangle {
	bounds := img.Bounds()
	br, bg, bb, ba := background.RGBA()
	var box image.Rectangle
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if r == br && g == bg && b == bb && a == ba {
				continue
			}
			box = box.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	if box.Empty() {
		return bounds
	}
	return box.Inset(-pad).Intersect(bounds)
}

// Render draws the figure once to measure its content, then draws it again
// onto a page cropped to that content and encodes the result as PNG.
func (f *Figure) Render(output io.Writer) error {
	width, height := f.Size()
	full := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(DPI))
	f.Plot().Draw(draw.New(full))

	dot := vg.Inch / vg.Length(DPI)
	page := full.Image().Bounds()
	box := contentBounds(full.Image(), PageColor, int(CropPad/dot))

	cropped := vgimg.NewWith(
		vgimg.UseWH(vg.Length(box.Dx())*dot, vg.Length(box.Dy())*dot),
		vgimg.UseDPI(DPI),
		vgimg.UseBackgroundColor(PageColor),
	)
	// shift the full page so the content box lands on the cropped canvas;
	// image rows count down from the top, canvas coordinates count up
	origin := vg.Point{
		X: -vg.Length(box.Min.X-page.Min.X) * dot,
		Y: -vg.Length(page.Max.Y-box.Max.Y) * dot,
	}
	f.Plot().Draw(draw.Canvas{
		Canvas: cropped,
		Rectangle: vg.Rectangle{
			Min: origin,
			Max: origin.Add(vg.Point{X: vg.Length(page.Dx()) * dot, Y: vg.Length(page.Dy()) * dot}),
		},
	})
	_, err := vgimg.PngCanvas{Canvas: cropped}.WriteTo(output)
	return err
}

func writeClose(data []byte, output io.WriteCloser) (err error) {
	defer func() {
		e := output.Close()
		err = util.CombineErrors(err, e)
	}()
	_, err = output.Write(data)
	return err
}

// Save renders the whole image before touching path, so a failed render
// leaves any earlier image in place.
func (f *Figure) Save(path string) error {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return err
	}
	output, err := os.Create(path)
	if err != nil {
		return err
	}
	return writeClose(buf.Bytes(), output)
}

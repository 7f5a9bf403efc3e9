package main

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/fogleman/gg"
)

const exportMargin = 20.0

func (q ExportQuality) Scale() float64 {
	if q == ExportHigh {
		return 2.0
	}
	return 1.0
}

// RenderImage draws the diagram at the given scale, cropped to its contents.
func (c *Canvas) RenderImage(scale float64) (image.Image, error) {
	dc, err := c.renderContext(scale)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func (c *Canvas) renderContext(scale float64) (*gg.Context, error) {
	primitives := c.Primitives()
	if len(primitives) == 0 {
		return nil, ErrEmptyDiagram
	}
	if scale <= 0 {
		scale = 1.0
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range primitives {
		minX, minY = math.Min(minX, p.X), math.Min(minY, p.Y)
		maxX, maxY = math.Max(maxX, p.Right()), math.Max(maxY, p.Bottom())
	}

	imageWidth := int(math.Ceil((maxX-minX)*scale + 2*exportMargin))
	imageHeight := int(math.Ceil((maxY-minY)*scale + 2*exportMargin))

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	ttfFont, err := loadMonoFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(newMonoFace(ttfFont, labelFontSize*scale))
	ascent := labelAscent() * scale
	lineHeight := dc.FontHeight()

	px := func(x float64) float64 { return (x-minX)*scale + exportMargin }
	py := func(y float64) float64 { return (y-minY)*scale + exportMargin }

	for _, p := range primitives {
		switch p.Shape {
		case ShapeRect:
			dc.SetRGB(0, 0, 0)
			dc.DrawRectangle(px(p.X), py(p.Y), p.Width*scale, p.Height*scale)
			dc.Fill()
		case ShapeLine:
			dc.SetRGB(0.1, 0.2, 0.6)
			dc.SetLineWidth(lineThickness * scale)
			dc.SetLineCapRound()
			dc.DrawLine(px(p.X1), py(p.Y1), px(p.X2), py(p.Y2))
			dc.Stroke()
		case ShapeGuide:
			dc.SetRGB(0.7, 0.7, 0.7)
			dc.SetLineWidth(scale)
			dc.DrawLine(px(p.X1), py(p.Y1), px(p.X2), py(p.Y2))
			dc.Stroke()
		case ShapeMarker:
			dc.SetRGB(0.7, 0.1, 0.1)
			dc.DrawCircle(px(p.X+p.Width/2), py(p.Y+p.Height/2), p.Width/2*scale)
			dc.Fill()
		case ShapeText:
			dc.SetRGB(0, 0, 0)
			for i, line := range strings.Split(p.Text, "\n") {
				dc.DrawString(line, px(p.X), py(p.Y)+ascent+float64(i)*lineHeight)
			}
		}
	}
	return dc, nil
}

// ExportPNG writes the diagram as a PNG and returns the path used.
func (d *Document) ExportPNG(path string, quality ExportQuality) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), exportExtension) {
		path += exportExtension
	}

	dc, err := d.canvas.renderContext(quality.Scale())
	if err != nil {
		d.report(err)
		return path, err
	}
	if err := dc.SavePNG(path); err != nil {
		d.log.Error().Err(err).Str("path", path).Msg("export failed")
		d.notifier.Notify("Could not export", "An error occurred while exporting the image.")
		return path, fmt.Errorf("export %s: %w", path, err)
	}

	d.log.Info().Str("path", path).Float64("scale", quality.Scale()).Msg("export")
	return path, nil
}

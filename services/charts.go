package services

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"house-insights/models"
)

var (
	lineColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	barColor  = color.RGBA{R: 99, G: 110, B: 250, A: 255}
)

// ChartRenderer draws report data as PNG images.
type ChartRenderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewChartRenderer creates a renderer with the dashboard's chart size.
func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{Width: 8 * vg.Inch, Height: 4 * vg.Inch}
}

// RenderSeries draws a line chart. With dateAxis the X values are read as
// Unix seconds. An empty series draws empty axes.
func (c *ChartRenderer) RenderSeries(w io.Writer, s models.Series, dateAxis bool) error {
	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel
	if dateAxis {
		p.X.Tick.Marker = plot.TimeTicks{Format: NormalizedDateLayout}
	}

	if len(s.Points) > 0 {
		xys := make(plotter.XYs, 0, len(s.Points))
		for _, pt := range s.Points {
			if !pt.Y.IsFinite() {
				continue
			}
			xys = append(xys, plotter.XY{X: pt.X, Y: float64(pt.Y)})
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("chart %q: %w", s.Title, err)
		}
		line.Color = lineColor
		line.Width = vg.Points(1.5)
		p.Add(line)
	}

	return c.write(w, p)
}

// RenderHistogram draws pre-binned counts. A histogram without bins draws empty axes.
func (c *ChartRenderer) RenderHistogram(w io.Writer, h models.Histogram) error {
	p := plot.New()
	p.Title.Text = h.Title
	p.X.Label.Text = h.Attribute
	p.Y.Label.Text = "count"

	if len(h.Bins) > 0 {
		bins := make([]plotter.HistogramBin, len(h.Bins))
		for i, b := range h.Bins {
			bins[i] = plotter.HistogramBin{Min: b.Min, Max: b.Max, Weight: float64(b.Count)}
		}
		hist := &plotter.Histogram{
			Bins:      bins,
			Width:     h.Bins[len(h.Bins)-1].Max - h.Bins[0].Min,
			FillColor: barColor,
			LineStyle: plotter.DefaultLineStyle,
		}
		p.Add(hist)
	}

	return c.write(w, p)
}

func (c *ChartRenderer) write(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(c.Width, c.Height, "png")
	if err != nil {
		return fmt.Errorf("chart %q: %w", p.Title.Text, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("chart %q: write: %w", p.Title.Text, err)
	}
	return nil
}

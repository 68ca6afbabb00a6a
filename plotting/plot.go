// Package plotting renders fitted univariate models and training curves
// with gonum/plot.
package plotting

import (
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/unigrad/core/model"
	"github.com/YuminosukeSato/unigrad/pkg/errors"
)

var (
	// Width and Height are the dimensions of saved images.
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch

	dataColor = color.RGBA{R: 90, G: 180, B: 234, A: 255}
	fitColor  = color.RGBA{R: 220, G: 60, B: 60, A: 255}
)

// FitPlot draws the (x, y) samples and the line predicted by p over the
// range of x, and saves it to path. The image format follows the file
// extension (png, svg, pdf, ...).
func FitPlot(x, y []float64, p model.Predictor, path string) (err error) {
	defer errors.Recover(&err, "plotting.FitPlot")

	if len(x) == 0 {
		return errors.NewValueError("FitPlot", "empty data")
	}
	if len(x) != len(y) {
		return errors.NewDimensionError("FitPlot", len(x), len(y), 0)
	}

	xMin, xMax := floats.Min(x), floats.Max(x)
	yMin, err := p.Predict(xMin)
	if err != nil {
		return errors.Wrap(err, "FitPlot: predict lower bound")
	}
	yMax, err := p.Predict(xMax)
	if err != nil {
		return errors.Wrap(err, "FitPlot: predict upper bound")
	}

	pl := plot.New()
	pl.Title.Text = "Univariate linear regression"
	pl.X.Label.Text = "x"
	pl.Y.Label.Text = "y"

	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "could not create scatter plot")
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.Color = dataColor

	line, err := plotter.NewLine(plotter.XYs{{X: xMin, Y: yMin}, {X: xMax, Y: yMax}})
	if err != nil {
		return errors.Wrap(err, "could not create regression line")
	}
	line.Color = fitColor
	line.Width = vg.Points(1.5)

	pl.Add(scatter, line, plotter.NewGrid())
	pl.Legend.Add("samples", scatter)
	pl.Legend.Add("fit", line)
	pl.Legend.Top = true
	pl.Legend.Left = true

	if err := pl.Save(Width, Height, path); err != nil {
		return errors.Wrapf(err, "could not save plot to %s", path)
	}
	return nil
}

// CostCurve draws the cost per iteration and saves it to path. With logScale
// the y axis is logarithmic and non-positive costs are left out.
func CostCurve(history []float64, path string, logScale bool) (err error) {
	defer errors.Recover(&err, "plotting.CostCurve")

	pts := make(plotter.XYs, 0, len(history))
	for i, c := range history {
		if logScale && c <= 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: c})
	}
	if len(pts) == 0 {
		return errors.NewValueError("CostCurve", "no cost values to plot")
	}

	pl := plot.New()
	pl.Title.Text = "Cost per iteration"
	pl.X.Label.Text = "iteration"
	pl.Y.Label.Text = "cost"
	if logScale {
		pl.Y.Scale = plot.LogScale{}
		pl.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "could not create cost line")
	}
	line.Color = fitColor
	pl.Add(line, plotter.NewGrid())

	if err := pl.Save(Width, Height, path); err != nil {
		return errors.Wrapf(err, "could not save plot to %s", path)
	}
	return nil
}

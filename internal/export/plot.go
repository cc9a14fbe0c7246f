// Package export renders simulation trajectories to PNG plots.
package export

import (
	"bufio"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/askalov/cartpend/internal/sim"
)

var lineColors = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
}

// TrajectoryPNG writes positions.png (x, θ) and velocities.png (ẋ, θ̇)
// into dir.
func TrajectoryPNG(dir string, result *sim.Result) error {
	if len(result.States) == 0 {
		return fmt.Errorf("export: empty trajectory")
	}

	positions := [][]float64{column(result, 0), column(result, 1)}
	velocities := [][]float64{column(result, 2), column(result, 3)}

	if err := linesPNG(filepath.Join(dir, "positions.png"), "configuration", result.Times,
		positions, []string{"x", "theta"}); err != nil {
		return err
	}
	return linesPNG(filepath.Join(dir, "velocities.png"), "velocity", result.Times,
		velocities, []string{"dx", "dtheta"})
}

func column(result *sim.Result, i int) []float64 {
	col := make([]float64, len(result.States))
	for j, s := range result.States {
		col[j] = s[i]
	}
	return col
}

func linesPNG(path, title string, xs []float64, series [][]float64, labels []string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time [s]"
	p.Legend.Top = true

	for i, ys := range series {
		pts := make(plotter.XYs, len(xs))
		for j := range xs {
			pts[j].X = xs[j]
			pts[j].Y = ys[j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = lineColors[i%len(lineColors)]
		p.Add(line)
		p.Legend.Add(labels[i], line)
	}

	return savePNG(p, 6, 4, path)
}

func savePNG(p *plot.Plot, widthIn, heightIn float64, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: cannot create directory: %w", err)
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(150),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	defer bw.Flush()

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(bw); err != nil {
		return fmt.Errorf("export: cannot write png: %w", err)
	}
	return nil
}

package topicplot

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	defaultColor   = color.RGBA{R: 0x06, G: 0x74, B: 0xcc, A: 0xff}
	highlightColor = color.RGBA{R: 0xff, A: 0xff}
)

const (
	figureWidth = 10 * vg.Inch
	panelHeight = 3 * vg.Inch
)

var barWidth = vg.Points(14)

func maxWeight(fig Figure) float64 {
	var out float64
	for _, panel := range fig.Panels {
		for _, w := range panel.Weights {
			out = max(out, w)
		}
	}
	return out
}

func barChart(values plotter.Values, fill color.Color) (*plotter.BarChart, error) {
	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return nil, err
	}
	bars.Horizontal = true
	bars.Color = fill
	bars.LineStyle.Width = 0
	return bars, nil
}

func panelPlot(panel Panel, xmax float64, bottom bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panel.Title

	// the y axis counts upwards, so the heaviest term goes last
	n := len(panel.Terms)
	names := make([]string, n)
	normal := make(plotter.Values, n)
	flagged := make(plotter.Values, n)
	for i := 0; i < n; i++ {
		src := n - 1 - i
		names[i] = panel.Terms[src]
		if panel.Flagged[src] {
			flagged[i] = panel.Weights[src]
		} else {
			normal[i] = panel.Weights[src]
		}
	}

	normalBars, err := barChart(normal, defaultColor)
	if err != nil {
		return nil, err
	}
	flaggedBars, err := barChart(flagged, highlightColor)
	if err != nil {
		return nil, err
	}
	p.Add(normalBars, flaggedBars)
	p.NominalY(names...)

	p.X.Min = 0
	p.X.Max = xmax
	if bottom {
		p.X.Label.Text = "Weight"
	}
	return p, nil
}

// Render draws the figure with one panel per row. format is one of the
// formats gonum/plot can write, like "pdf", "svg" or "png".
func Render(fig Figure, w io.Writer, format string) error {
	if len(fig.Panels) == 0 {
		return ErrNoPanels
	}

	xmax := maxWeight(fig)
	if xmax <= 0 {
		xmax = 1
	}

	plots := make([][]*plot.Plot, len(fig.Panels))
	for i, panel := range fig.Panels {
		p, err := panelPlot(panel, xmax, i == len(fig.Panels)-1)
		if err != nil {
			return fmt.Errorf("panel %q: %w", panel.Title, err)
		}
		plots[i] = []*plot.Plot{p}
	}

	canvas, err := draw.NewFormattedCanvas(
		figureWidth,
		panelHeight*vg.Length(len(fig.Panels)),
		format,
	)
	if err != nil {
		return err
	}
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadY:      vg.Points(12),
		PadTop:    vg.Points(6),
		PadBottom: vg.Points(6),
		PadLeft:   vg.Points(6),
		PadRight:  vg.Points(12),
	}
	canvases := plot.Align(plots, tiles, draw.New(canvas))
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	_, err = canvas.WriteTo(w)
	return err
}

// Save renders the figure into dir/name, replacing any existing file. The
// format follows the file extension and defaults to pdf. dir must exist.
func Save(fig Figure, dir, name string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("plot directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("plot directory: %s is not a directory", dir)
	}

	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if format == "" {
		format = "pdf"
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	err = Render(fig, f, format)
	if err != nil {
		return "", err
	}
	return path, f.Close()
}

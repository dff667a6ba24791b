// package charts renders histograms and pie charts to base64 PNG data URIs
package charts

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Bins is the number of histogram bins.
const Bins = 10

const dataURIPrefix = "data:image/png;base64,"

var (
	ErrEmptySample = errors.New("charts: empty sample")
	ErrInvalidURI  = errors.New("charts: not a PNG data URI")
)

// Slice is one wedge of a pie chart.
type Slice struct {
	Label string
	Count int
}

// Renderer draws charts. Every call builds and discards its own canvas, so a Renderer
// may be shared across goroutines.
type Renderer interface {
	Histogram(title, xLabel string, sample []float64) (string, error)
	EmptyHistogram(title, xLabel string) (string, error)
	Pie(title string, slices []Slice) (string, error)
}

// PNGRenderer renders histograms with gonum/plot and pie charts with go-chart.
type PNGRenderer struct {
	Width  vg.Length
	Height vg.Length
	// PieSize is the pie canvas edge in pixels.
	PieSize int
	Fill    color.Color
}

// NewPNGRenderer returns a renderer with 6x4 inch histograms and 512px pies.
func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{
		Width:   6 * vg.Inch,
		Height:  4 * vg.Inch,
		PieSize: 512,
		Fill:    color.RGBA{R: 0x1d, G: 0xb9, B: 0x54, A: 0xff},
	}
}

// Histogram renders sample into [Bins] equal-width bins with labelled axes.
func (r *PNGRenderer) Histogram(title, xLabel string, sample []float64) (string, error) {
	if len(sample) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptySample, title)
	}
	for _, v := range sample {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", fmt.Errorf("charts: %s: sample contains %v", title, v)
		}
	}

	bins, width := BinSample(sample, Bins)

	p := newHistogramPlot(title, xLabel)
	p.Add(&plotter.Histogram{
		Bins:      bins,
		Width:     width,
		FillColor: r.Fill,
		LineStyle: plotter.DefaultLineStyle,
	})
	return r.encode(p, title)
}

// EmptyHistogram renders titled, labelled axes with no bars, for a table with no data.
func (r *PNGRenderer) EmptyHistogram(title, xLabel string) (string, error) {
	p := newHistogramPlot(title, xLabel)
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	return r.encode(p, title)
}

func newHistogramPlot(title, xLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Frequency"
	return p
}

func (r *PNGRenderer) encode(p *plot.Plot, title string) (string, error) {
	w, err := p.WriterTo(r.Width, r.Height, "png")
	if err != nil {
		return "", fmt.Errorf("charts: %s: %w", title, err)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("charts: %s: %w", title, err)
	}
	return EncodeDataURI(buf.Bytes()), nil
}

// Pie renders one wedge per slice, labelled with its share of the total.
func (r *PNGRenderer) Pie(title string, slices []Slice) (string, error) {
	total := 0
	for _, s := range slices {
		total += s.Count
	}
	if total == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptySample, title)
	}

	values := make([]chart.Value, 0, len(slices))
	for _, s := range slices {
		if s.Count <= 0 {
			continue
		}
		pct := float64(s.Count) / float64(total) * 100
		values = append(values, chart.Value{
			Value: float64(s.Count),
			Label: fmt.Sprintf("%s %.1f%%", s.Label, pct),
		})
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  r.PieSize,
		Height: r.PieSize,
		Background: chart.Style{
			FillColor: drawing.ColorWhite,
		},
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return "", fmt.Errorf("charts: %s: %w", title, err)
	}
	return EncodeDataURI(buf.Bytes()), nil
}

// BinSample splits sample into n equal-width bins over [min, max]; the last bin is closed.
// A sample with a single distinct value is centred in a range of width 1.
func BinSample(sample []float64, n int) ([]plotter.HistogramBin, float64) {
	lo, hi := sample[0], sample[0]
	for _, v := range sample[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(n)
	bins := make([]plotter.HistogramBin, n)
	for i := range bins {
		bins[i].Min = lo + float64(i)*width
		bins[i].Max = lo + float64(i+1)*width
	}

	for _, v := range sample {
		idx := int((v - lo) / width)
		if idx >= n {
			idx = n - 1
		}
		if idx < 0 {
			idx = 0
		}
		bins[idx].Weight++
	}
	return bins, width
}

// SortedSlices turns a frequency table into slices ordered by key.
func SortedSlices(counts map[int]int, label func(int) string) []Slice {
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	slices := make([]Slice, 0, len(keys))
	for _, k := range keys {
		slices = append(slices, Slice{Label: label(k), Count: counts[k]})
	}
	return slices
}

// EncodeDataURI wraps PNG bytes in a data URI.
func EncodeDataURI(png []byte) string {
	return dataURIPrefix + base64.StdEncoding.EncodeToString(png)
}

// DecodeDataURI returns the PNG bytes of a data URI produced by [EncodeDataURI].
func DecodeDataURI(uri string) ([]byte, error) {
	payload, ok := strings.CutPrefix(uri, dataURIPrefix)
	if !ok {
		return nil, ErrInvalidURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	return data, nil
}

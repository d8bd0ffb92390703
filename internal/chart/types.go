// Package chart renders the console's dashboard and report charts as inline
// SVG.
package chart

// Series is one named run of values.
type Series struct {
	Label  string
	Color  string
	Values []float64
}

// Slice is one share of a distribution.
type Slice struct {
	Label string
	Color string
	Value float64
}

// Opts customises the renderers.
type Opts struct {
	Title       string
	Description string
	AxisColor   string
	GridColor   string
	Padding     float64
	TickCount   int
	Stacked     bool
	ShowDots    bool
}

// Defaults for console charts.
const (
	DefaultWidth   = 640
	DefaultHeight  = 240
	DefaultPadding = 28.0
	DefaultTicks   = 5
)

// palette is used for series without a colour.
var palette = []string{"#2563eb", "#ef4444", "#f59e0b", "#10b981", "#8b5cf6", "#64748b"}

func colorAt(i int, c string) string {
	if c != "" {
		return c
	}
	return palette[i%len(palette)]
}

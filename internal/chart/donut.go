package chart

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Donut renders a distribution as a ring with a legend.
func Donut(size int, slices []Slice, opts Opts) (template.HTML, error) {
	if len(slices) == 0 {
		return "", fmt.Errorf("chart: at least one slice required")
	}
	total := 0.0
	for _, s := range slices {
		if s.Value < 0 {
			return "", fmt.Errorf("chart: slice %q is negative", s.Label)
		}
		total += s.Value
	}
	if size <= 0 {
		size = DefaultHeight
	}
	axisColor := fallback(opts.AxisColor, "#475569")

	legendWidth := 160
	width := size + legendWidth
	cx, cy := float64(size)/2, float64(size)/2
	outer := float64(size)/2 - 8
	inner := outer * 0.6

	var b strings.Builder
	f := frame{width: width, height: size}
	f.open(&b, opts, "donut")

	if total == 0 {
		fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="#e2e8f0" stroke-width="%.2f"></circle>`,
			cx, cy, (outer+inner)/2, outer-inner)
	}

	start := -math.Pi / 2
	for i, s := range slices {
		if total == 0 || s.Value == 0 {
			continue
		}
		sweep := s.Value / total * 2 * math.Pi
		color := colorAt(i, s.Color)
		if sweep >= 2*math.Pi-1e-9 {
			fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="%.2f"><title>%s</title></circle>`,
				cx, cy, (outer+inner)/2, color, outer-inner, template.HTMLEscapeString(s.Label))
			break
		}
		end := start + sweep
		large := 0
		if sweep > math.Pi {
			large = 1
		}
		fmt.Fprintf(&b, `<path d="M%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 0 %.2f %.2f Z" fill="%s"><title>%s: %s</title></path>`,
			cx+outer*math.Cos(start), cy+outer*math.Sin(start),
			outer, outer, large, cx+outer*math.Cos(end), cy+outer*math.Sin(end),
			cx+inner*math.Cos(end), cy+inner*math.Sin(end),
			inner, inner, large, cx+inner*math.Cos(start), cy+inner*math.Sin(start),
			color, template.HTMLEscapeString(s.Label), formatTick(s.Value))
		start = end
	}

	for i, s := range slices {
		y := 20 + float64(i)*18
		fmt.Fprintf(&b, `<rect x="%d" y="%.2f" width="10" height="10" fill="%s"></rect>`, size+8, y-9, colorAt(i, s.Color))
		fmt.Fprintf(&b, `<text x="%d" y="%.2f" fill="%s" font-size="11">%s (%s)</text>`,
			size+24, y, axisColor, template.HTMLEscapeString(s.Label), formatTick(s.Value))
	}
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

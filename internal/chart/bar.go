package chart

import (
	"fmt"
	"html/template"
	"strings"
)

// Bars renders grouped bars, one group per label. With opts.Stacked the
// series of a group are stacked instead; stacked values must not be
// negative.
func Bars(width, height int, labels []string, series []Series, opts Opts) (template.HTML, error) {
	if err := validateSeries(series, labels); err != nil {
		return "", err
	}

	minVal, maxVal := 0.0, 0.0
	for i := range labels {
		total := 0.0
		for _, s := range series {
			v := s.Values[i]
			if opts.Stacked {
				if v < 0 {
					return "", fmt.Errorf("chart: stacked series %q has a negative value", s.Label)
				}
				total += v
				continue
			}
			minVal = min(minVal, v)
			maxVal = max(maxVal, v)
		}
		maxVal = max(maxVal, total)
	}

	f, err := newFrame(width, height, opts, minVal, maxVal)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	f.open(&b, opts, "bar")
	f.grid(&b)

	groupWidth := f.chartWidth() / float64(len(labels))
	barWidth := groupWidth * 0.7
	if !opts.Stacked {
		barWidth /= float64(len(series))
	}

	for i, label := range labels {
		left := f.padding + float64(i)*groupWidth + groupWidth*0.15
		base := 0.0
		for j, s := range series {
			v := s.Values[i]
			x := left
			var top, bottom float64
			if opts.Stacked {
				top, bottom = f.y(base+v), f.y(base)
				base += v
			} else {
				x = left + float64(j)*barWidth
				top, bottom = f.y(max(v, 0)), f.y(min(v, 0))
			}
			fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"><title>%s %s: %s</title></rect>`,
				x, top, barWidth, bottom-top, colorAt(j, s.Color),
				template.HTMLEscapeString(s.Label), template.HTMLEscapeString(label), formatTick(v))
		}
		f.label(&b, f.padding+float64(i)*groupWidth+groupWidth/2, label)
	}

	if len(series) > 1 {
		f.legend(&b, series)
	}
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

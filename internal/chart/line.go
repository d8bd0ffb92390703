package chart

import (
	"fmt"
	"html/template"
	"strings"
)

// Line renders one polyline per series over shared labels.
func Line(width, height int, labels []string, series []Series, opts Opts) (template.HTML, error) {
	if err := validateSeries(series, labels); err != nil {
		return "", err
	}

	minVal, maxVal := series[0].Values[0], series[0].Values[0]
	for _, s := range series {
		for _, v := range s.Values {
			minVal = min(minVal, v)
			maxVal = max(maxVal, v)
		}
	}

	f, err := newFrame(width, height, opts, minVal, maxVal)
	if err != nil {
		return "", err
	}

	x := func(i int) float64 {
		if len(labels) == 1 {
			return f.padding + f.chartWidth()/2
		}
		return f.padding + float64(i)*f.chartWidth()/float64(len(labels)-1)
	}

	var b strings.Builder
	f.open(&b, opts, "line")
	f.grid(&b)

	for j, s := range series {
		color := colorAt(j, s.Color)
		var path strings.Builder
		for i, v := range s.Values {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			fmt.Fprintf(&path, "%s%.2f %.2f ", cmd, x(i), f.y(v))
		}
		fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="2" stroke-linejoin="round" stroke-linecap="round"></path>`,
			strings.TrimSpace(path.String()), color)
		if opts.ShowDots {
			for i, v := range s.Values {
				fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="3" fill="%s"></circle>`, x(i), f.y(v), color)
			}
		}
	}

	for i, label := range labels {
		f.label(&b, x(i), label)
	}
	if len(series) > 1 {
		f.legend(&b, series)
	}
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

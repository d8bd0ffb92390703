package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/web"
)

// Engine renders HTML pages. Every page is parsed together with the shared
// layout and partials.
type Engine struct {
	pages map[string]*template.Template
}

// NavItem is one entry of the side navigation.
type NavItem struct {
	Route  domain.Route
	Title  string
	Active bool
}

// Flash is a one-shot notice shown above the page content.
type Flash struct {
	Kind    string
	Message string
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	AppName     string
	CurrentPath string
	RequestID   string
	Identity    *domain.Identity
	Nav         []NavItem
	Flash       *Flash
	Data        any
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	base, err := template.New("root").Funcs(funcMap()).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: parse layouts: %w", err)
	}
	files, err := fs.Glob(web.Templates, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: list pages: %w", err)
	}

	e := &Engine{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		page, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := page.ParseFS(web.Templates, file); err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", file, err)
		}
		e.pages[strings.TrimSuffix(path.Base(file), ".html")] = page
	}
	return e, nil
}

// Has reports whether a page exists.
func (e *Engine) Has(page string) bool {
	_, ok := e.pages[page]
	return ok
}

// Render executes the layout for page. Output is buffered so a failing
// template never leaves a half-written response.
func (e *Engine) Render(w io.Writer, page string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	tpl, ok := e.pages[page]
	if !ok {
		return fmt.Errorf("view: unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("view: render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatDate": formatDate,
		"initials":   initials,
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"money": func(v any) string {
			switch n := v.(type) {
			case float64:
				return formatMoney(n)
			case *float64:
				if n == nil {
					return "-"
				}
				return formatMoney(*n)
			case int:
				return formatMoney(float64(n))
			}
			return "-"
		},
		"percent": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v)
		},
		"hours": func(v float64) string {
			return fmt.Sprintf("%.1f h", v)
		},
		"badge": badgeClass,
	}
}

// formatDate accepts the date layouts the backend sends.
func formatDate(s string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02 Jan 2006")
		}
	}
	return s
}

func initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(part))[0])
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

func formatMoney(v float64) string {
	whole := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(whole, "-")
	whole = strings.TrimPrefix(whole, "-")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// badgeClass maps record statuses to badge styles.
func badgeClass(status string) string {
	switch status {
	case "Approved", "Present", "Active", "Completed", "up":
		return "badge-success"
	case "Rejected", "Absent", "Terminated", "Canceled", "down":
		return "badge-danger"
	case "Pending", "Pending Approval", "Late", "Early Departure", "On Leave", "warning":
		return "badge-warning"
	case "In Progress":
		return "badge-info"
	default:
		return "badge-neutral"
	}
}

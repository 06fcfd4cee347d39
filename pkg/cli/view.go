package cli

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/mchmarny/churnpulse/pkg/customer"
	"github.com/mchmarny/churnpulse/pkg/engine"
	"github.com/mchmarny/churnpulse/pkg/view"
)

var templateFuncs = template.FuncMap{
	"selected": func(got, want string) bool { return got == want },
}

type option struct {
	Value string
	Label string
}

var (
	countryOptions = []option{
		{Value: "france", Label: "France"},
		{Value: "germany", Label: "Germany"},
		{Value: "spain", Label: "Spain"},
	}

	yesNoOptions = []option{
		{Value: "yes", Label: "Yes"},
		{Value: "no", Label: "No"},
	}
)

type notice struct {
	Message  string
	Severity engine.Severity
}

type page struct {
	Version   string
	Commit    string
	BuildDate string
	Form      customer.Input
	Model     view.Model
	Notice    *notice
	Countries []option
	Genders   []option
	YesNo     []option
}

func newPage(in customer.Input) *page {
	genders := make([]option, 0, len(customer.Genders))
	for _, g := range customer.Genders {
		genders = append(genders, option{Value: string(g), Label: view.Capitalize(string(g))})
	}
	if in == nil {
		in = customer.Input{}
	}
	return &page{
		Version:   version,
		Commit:    commit,
		BuildDate: date,
		Form:      in,
		Model:     view.Empty(),
		Countries: countryOptions,
		Genders:   genders,
		YesNo:     yesNoOptions,
	}
}

// Render implements engine.Sink.
func (p *page) Render(m view.Model) error {
	p.Model = m
	return nil
}

// Notify implements engine.Notifier.
func (p *page) Notify(message string, severity engine.Severity) {
	p.Notice = &notice{Message: message, Severity: severity}
}

func faviconHandler(w http.ResponseWriter, r *http.Request) {
	file, err := embedFS.ReadFile("assets/img/favicon.svg")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if _, err = w.Write(file); err != nil {
		slog.Error("failed to write favicon", "error", err)
	}
}

func homeViewHandler(tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, tmpl, http.StatusOK, newPage(nil))
	}
}

func predictViewHandler(tmpl *template.Template, eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}

		in := customer.FromValues(r.PostForm)
		p := newPage(in)

		s, err := eng.NewSession(p, p)
		if err != nil {
			slog.Error("failed to create session", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		status := http.StatusOK
		if err := s.Submit(in); err != nil {
			if _, ok := customer.AsValidationError(err); !ok {
				slog.Error("prediction failed", "error", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			status = http.StatusUnprocessableEntity
		}

		renderPage(w, tmpl, status, p)
	}
}

func resetViewHandler(tmpl *template.Template, eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := newPage(nil)

		s, err := eng.NewSession(p, p)
		if err == nil {
			err = s.Reset()
		}
		if err != nil {
			slog.Error("reset failed", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		renderPage(w, tmpl, http.StatusOK, p)
	}
}

func renderPage(w http.ResponseWriter, tmpl *template.Template, status int, p *page) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "home", p); err != nil {
		slog.Error("template render failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write page", "error", err)
	}
}

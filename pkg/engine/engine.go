package engine

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/mchmarny/churnpulse/pkg/customer"
	"github.com/mchmarny/churnpulse/pkg/scoring"
	"github.com/mchmarny/churnpulse/pkg/view"
)

// Severity of a user notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Sink is the output surface receiving the rendered view model.
type Sink interface {
	Render(m view.Model) error
}

// Notifier is the fire-and-forget user alert surface.
type Notifier interface {
	Notify(message string, severity Severity)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(m view.Model) error

func (f SinkFunc) Render(m view.Model) error { return f(m) }

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string, severity Severity)

func (f NotifierFunc) Notify(message string, severity Severity) { f(message, severity) }

// Observer is told about every submission outcome.
type Observer interface {
	Predicted(m view.Model)
	Rejected(err *customer.ValidationError)
}

type Option func(*Engine)

// WithSource sets the jitter source.
func WithSource(src scoring.Source) Option {
	return func(e *Engine) { e.source = src }
}

// WithLogger sets the logger, slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithIDFunc sets the submission id generator.
func WithIDFunc(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// WithObserver registers an observer of submission outcomes.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// Engine turns raw form input into rendered predictions. It is safe for
// concurrent use as long as its Source is.
type Engine struct {
	source   scoring.Source
	logger   *slog.Logger
	newID    func() string
	observer Observer
}

// New creates an engine with a time seeded jitter source.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, o := range opts {
		o(e)
	}
	if e.source == nil {
		e.source = scoring.NewSource()
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	return e
}

// Evaluate parses and scores the input without touching any surface.
func (e *Engine) Evaluate(in customer.Input) (view.Model, error) {
	r, err := customer.Parse(in)
	if err != nil {
		if ve, ok := customer.AsValidationError(err); ok && e.observer != nil {
			e.observer.Rejected(ve)
		}
		return view.Model{}, err
	}

	id := e.newID()
	v := scoring.Predict(r, e.source)
	m := view.New(id, r, v)

	e.logger.Debug("prediction computed",
		"id", id,
		"base", scoring.Base(r),
		"record", r.String(),
	)
	if e.observer != nil {
		e.observer.Predicted(m)
	}
	return m, nil
}

// Check validates a single field value and returns a warning message, or
// an empty string when the value is acceptable.
func (e *Engine) Check(field, value string) string {
	if ve := customer.CheckField(field, value); ve != nil {
		return ve.Message
	}
	return ""
}

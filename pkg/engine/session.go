package engine

import (
	"errors"
	"fmt"

	"github.com/mchmarny/churnpulse/pkg/customer"
	"github.com/mchmarny/churnpulse/pkg/view"
)

var errNoSink = errors.New("output sink required")

// Session binds an engine to one output surface and one notification
// surface.
type Session struct {
	engine   *Engine
	sink     Sink
	notifier Notifier
}

// NewSession creates a session. A nil notifier drops notifications.
func (e *Engine) NewSession(sink Sink, n Notifier) (*Session, error) {
	if sink == nil {
		return nil, errNoSink
	}
	if n == nil {
		n = NotifierFunc(func(string, Severity) {})
	}
	return &Session{engine: e, sink: sink, notifier: n}, nil
}

// Submit validates and scores the input and renders the result. Validation
// failures are sent to the notifier and returned; nothing is rendered.
func (s *Session) Submit(in customer.Input) error {
	m, err := s.engine.Evaluate(in)
	if err != nil {
		if ve, ok := customer.AsValidationError(err); ok {
			s.notifier.Notify(ve.Message, SeverityError)
		}
		return err
	}

	if err := s.sink.Render(m); err != nil {
		return fmt.Errorf("rendering prediction %s: %w", m.ID, err)
	}
	return nil
}

// Reset discards the current submission and renders the placeholder state.
func (s *Session) Reset() error {
	if err := s.sink.Render(view.Empty()); err != nil {
		return fmt.Errorf("rendering placeholder: %w", err)
	}
	return nil
}

// Check validates a single field and sends a warning when it is invalid.
func (s *Session) Check(field, value string) bool {
	msg := s.engine.Check(field, value)
	if msg == "" {
		return true
	}
	s.notifier.Notify(msg, SeverityWarning)
	return false
}

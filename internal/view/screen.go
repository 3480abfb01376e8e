package view

import (
	"context"
	"io"

	service "github.com/okian/tianwen/internal/app"
	"github.com/okian/tianwen/pkg/logger"
	"github.com/okian/tianwen/pkg/metrics"
)

// LoadFunc produces the report shown by a Screen.
type LoadFunc func(ctx context.Context) (service.Report, error)

// Option applies a configuration option to the Screen.
type Option func(*Screen)

// WithRenderer sets the renderer. Defaults to NewRenderer().
func WithRenderer(r *Renderer) Option {
	return func(s *Screen) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithMetrics sets the manager that counts state transitions.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Screen) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithLogger sets a custom logger for the screen.
func WithLogger(l logger.Logger) Option {
	return func(s *Screen) {
		if l != nil {
			s.logger = l
		}
	}
}

// Screen couples the state machine with the last loaded report or error.
// It is not safe for concurrent use.
type Screen struct {
	machine  *Machine
	renderer *Renderer
	metrics  *metrics.Manager
	logger   logger.Logger

	report service.Report
	err    error
}

// NewScreen returns an idle Screen.
func NewScreen(opts ...Option) *Screen {
	s := &Screen{metrics: metrics.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = NewRenderer()
	}
	if s.logger == nil {
		if l := logger.Safe(); l != nil {
			s.logger = l.Named("view")
		} else {
			s.logger = logger.Discard()
		}
	}
	s.machine = NewMachine(s.metrics)
	return s
}

func (s *Screen) State() State { return s.machine.State() }

// Report returns the loaded report; ok is false unless the screen is Ready.
func (s *Screen) Report() (service.Report, bool) {
	if s.State() != StateReady {
		return service.Report{}, false
	}
	return s.report, true
}

// Err returns the load error while the screen is in StateError.
func (s *Screen) Err() error {
	if s.State() != StateError {
		return nil
	}
	return s.err
}

// Load enters Loading, runs fn and settles in Ready or Error. It returns the
// error from fn, or ErrIllegalTransition when called while already loading.
func (s *Screen) Load(ctx context.Context, fn LoadFunc) error {
	if fn == nil {
		return ErrNoLoader
	}
	if err := s.machine.Transition(StateLoading); err != nil {
		return err
	}
	s.logger.Debug(ctx, "loading report")

	report, err := fn(ctx)
	if err != nil {
		s.report, s.err = service.Report{}, err
		s.logger.Debug(ctx, "report load failed", logger.Error(err))
		return s.settle(StateError, err)
	}

	s.report, s.err = report, nil
	s.logger.Debug(ctx, "report ready", logger.Int("records", report.Distribution.Total))
	return s.settle(StateReady, nil)
}

func (s *Screen) settle(to State, loadErr error) error {
	if err := s.machine.Transition(to); err != nil {
		return err
	}
	return loadErr
}

// Render writes the view for the current state to w.
func (s *Screen) Render(w io.Writer) error {
	switch s.State() {
	case StateReady:
		return s.renderer.Render(w, s.report)
	case StateError:
		return s.renderer.RenderError(w, s.err)
	default:
		return s.renderer.RenderState(w, s.State())
	}
}

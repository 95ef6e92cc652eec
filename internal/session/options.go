package session

import (
	"log/slog"

	"github.com/born-ml/lazygraph/internal/ops"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFeedValidation toggles the check that every fed value has its node's shape.
// Validation is on by default.
func WithFeedValidation(enabled bool) Option {
	return func(s *Session) {
		s.validate = enabled
	}
}

// WithBackend sets the compute backend kernels run on.
func WithBackend(b ops.Backend) Option {
	return func(s *Session) {
		if b != nil {
			s.backend = b
		}
	}
}

// WithRegistry sets the operator registry used to resolve kernels.
func WithRegistry(r *ops.Registry) Option {
	return func(s *Session) {
		if r != nil {
			s.registry = r
		}
	}
}

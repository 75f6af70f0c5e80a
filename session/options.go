package session

import (
	"log/slog"
	"time"

	"github.com/poiesic/scout/logic"
	"github.com/poiesic/scout/ranking"
)

// settings holds the configuration shared by Session and PostSearch.
type settings struct {
	logger       *slog.Logger
	parseTimeout time.Duration
	newID        func() string
	monitor      logic.EvaluationMonitor
	ranker       *ranking.Ranker
}

// Option configures a Session or a PostSearch. Options that do not apply
// to the value being built are ignored.
type Option func(*settings) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithParseTimeout bounds each parser call. Zero disables the bound.
// Sessions default to no bound; post searches default to five seconds.
func WithParseTimeout(timeout time.Duration) Option {
	return func(s *settings) error {
		if timeout < 0 {
			return ErrInvalidTimeout
		}
		s.parseTimeout = timeout
		return nil
	}
}

// WithIDGenerator sets the function that names new query nodes.
// Default is a random UUID.
func WithIDGenerator(newID func() string) Option {
	return func(s *settings) error {
		if newID != nil {
			s.newID = newID
		}
		return nil
	}
}

// WithMonitor sets the monitor Results reports evaluation to.
func WithMonitor(monitor logic.EvaluationMonitor) Option {
	return func(s *settings) error {
		s.monitor = monitor
		return nil
	}
}

// WithRanker makes post searches score posts on a shared worker pool.
// The caller keeps ownership and releases it.
func WithRanker(ranker *ranking.Ranker) Option {
	return func(s *settings) error {
		s.ranker = ranker
		return nil
	}
}

func applyOptions(s *settings, opts []Option) error {
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return err
		}
	}
	return nil
}

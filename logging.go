package formstate

import "time"

// LogEvent describes one store action for logging.
type LogEvent struct {
	Action   string
	Target   string
	Duration time.Duration
	Err      error
}

// Logger records store actions.
type Logger interface {
	LogAction(LogEvent)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(LogEvent)

// LogAction implements Logger.
func (f LoggerFunc) LogAction(event LogEvent) {
	if f != nil {
		f(event)
	}
}

type noopLogger struct{}

func (noopLogger) LogAction(LogEvent) {}

func (s *Store) logger() Logger {
	if s.cfg.logger != nil {
		return s.cfg.logger
	}
	return noopLogger{}
}

// logAction reports an action and its duration since start.
func (s *Store) logAction(action, target string, start time.Time, err error) {
	s.logger().LogAction(LogEvent{
		Action:   action,
		Target:   target,
		Duration: time.Since(start),
		Err:      err,
	})
}

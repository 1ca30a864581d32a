package ports

// Logger defines the interface for logging.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Info logs an informational message with optional key-value pairs.
	Info(msg string, kv ...any)
	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, kv ...any)
	// Error logs an error.
	Error(err error)
}

package rpn

// Options configures an Evaluator.
type Options struct {
	// Logger receives trace and failure logs. If nil, a stderr logger at
	// LogLevel is used, or no logging at all when LogLevel is empty.
	Logger Logger

	// LogLevel: "error", "warn", "info", "debug" (default: "").
	LogLevel string
}

// DefaultOptions returns the default configuration, which logs nothing.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) logger() Logger {
	if o.Logger != nil {
		return o.Logger
	}
	if o.LogLevel != "" {
		return NewLogger(ParseLogLevel(o.LogLevel), nil)
	}
	return NewNoopLogger()
}

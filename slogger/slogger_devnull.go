package slogger

// DevNull is a Logger that discards everything. It is the default for
// library types when no logger is configured.
var DevNull Logger = devNullLogger{}

type devNullLogger struct{}

func (devNullLogger) Debug(msg string, keysAndValues ...any) {}
func (devNullLogger) Info(msg string, keysAndValues ...any)  {}
func (devNullLogger) Warn(msg string, keysAndValues ...any)  {}
func (devNullLogger) Error(msg string, keysAndValues ...any) {}
func (devNullLogger) With(keysAndValues ...any) Logger       { return devNullLogger{} }

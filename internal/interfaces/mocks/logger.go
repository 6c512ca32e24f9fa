package mocks

// NopLogger satisfies interfaces.Logger and discards everything. Tests
// that only need a logger present use this instead of a mock with
// expectations.
type NopLogger struct{}

func (NopLogger) Info(msg string, keyvals ...interface{})  {}
func (NopLogger) Warn(msg string, keyvals ...interface{})  {}
func (NopLogger) Error(msg string, keyvals ...interface{}) {}
func (NopLogger) Debug(msg string, keyvals ...interface{}) {}
func (NopLogger) SetLevel(level string)                    {}

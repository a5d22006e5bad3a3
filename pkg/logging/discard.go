package logging

// noopLogger swallows every message. Agent tests use it when log output is
// just noise.
type noopLogger struct{}

func (n noopLogger) WithField(string, interface{}) Interface { return n }
func (n noopLogger) WithError(error) Interface               { return n }

func (noopLogger) Debug(string) {}
func (noopLogger) Info(string)  {}
func (noopLogger) Warn(string)  {}
func (noopLogger) Error(string) {}
func (noopLogger) Fatal(string) {}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Warnf(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}
func (noopLogger) Fatalf(string, ...interface{}) {}

// Discard returns a logger that drops everything.
func Discard() Interface {
	return noopLogger{}
}

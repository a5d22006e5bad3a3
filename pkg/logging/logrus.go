package logging

import "github.com/sirupsen/logrus"

// logrusAdapter exposes a logrus entry through the logging Interface. It
// exists for NewTestLogger: logrus prints human-readable lines without any
// of the zap setup, which is what a unit test wants.
type logrusAdapter struct {
	entry *logrus.Entry
}

func (l logrusAdapter) WithField(key string, value interface{}) Interface {
	return logrusAdapter{entry: l.entry.WithField(key, value)}
}

func (l logrusAdapter) WithError(err error) Interface {
	return logrusAdapter{entry: l.entry.WithError(err)}
}

func (l logrusAdapter) Debug(msg string) { l.entry.Debug(msg) }
func (l logrusAdapter) Info(msg string)  { l.entry.Info(msg) }
func (l logrusAdapter) Warn(msg string)  { l.entry.Warn(msg) }
func (l logrusAdapter) Error(msg string) { l.entry.Error(msg) }
func (l logrusAdapter) Fatal(msg string) { l.entry.Fatal(msg) }

func (l logrusAdapter) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l logrusAdapter) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l logrusAdapter) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l logrusAdapter) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
func (l logrusAdapter) Fatalf(format string, args ...interface{}) { l.entry.Fatalf(format, args...) }

// ForLogrus wraps a logrus entry in the logging Interface.
func ForLogrus(entry *logrus.Entry) Interface {
	return logrusAdapter{entry: entry}
}

package go_maplegw

type Logger interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	WithField(key string, value interface{}) Logger
	WithError(err error) Logger
}

// NullLogger discards everything, it is used in tests and when no logger is configured.
type NullLogger struct{}

func (l *NullLogger) Tracef(string, ...interface{}) {}
func (l *NullLogger) Debugf(string, ...interface{}) {}
func (l *NullLogger) Infof(string, ...interface{})  {}
func (l *NullLogger) Warnf(string, ...interface{})  {}
func (l *NullLogger) Errorf(string, ...interface{}) {}

func (l *NullLogger) WithField(string, interface{}) Logger { return l }
func (l *NullLogger) WithError(error) Logger               { return l }

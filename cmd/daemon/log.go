package main

import (
	maplegw "github.com/maplegw/go-maplegw"
	"github.com/sirupsen/logrus"
)

type LogrusAdapter struct {
	Log *logrus.Entry
}

func (l LogrusAdapter) Tracef(format string, args ...interface{}) {
	l.Log.Tracef(format, args...)
}

func (l LogrusAdapter) Debugf(format string, args ...interface{}) {
	l.Log.Debugf(format, args...)
}

func (l LogrusAdapter) Infof(format string, args ...interface{}) {
	l.Log.Infof(format, args...)
}

func (l LogrusAdapter) Warnf(format string, args ...interface{}) {
	l.Log.Warnf(format, args...)
}

func (l LogrusAdapter) Errorf(format string, args ...interface{}) {
	l.Log.Errorf(format, args...)
}

func (l LogrusAdapter) WithField(key string, value interface{}) maplegw.Logger {
	return LogrusAdapter{l.Log.WithField(key, value)}
}

func (l LogrusAdapter) WithError(err error) maplegw.Logger {
	return LogrusAdapter{l.Log.WithError(err)}
}

func newLogger(level string) (maplegw.Logger, error) {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetLevel(logLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return LogrusAdapter{Log: logrus.NewEntry(l)}, nil
}

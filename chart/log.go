package chart

import (
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

type loggerBox struct {
	l logrus.FieldLogger
}

var logger atomic.Pointer[loggerBox]

func init() {
	logger.Store(&loggerBox{l: discard()})
}

func discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// SetLogger sets the logger used by every chart. Charts log nothing until a
// logger is set; passing nil restores that behavior. It is safe to call
// concurrently with drawing.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = discard()
	}
	logger.Store(&loggerBox{l: l})
}

// Logger returns the current chart logger.
func Logger() logrus.FieldLogger {
	return logger.Load().l
}

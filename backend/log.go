package backend

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
	SetLogger(nil)
}

// SetLogger sets the logger used for loading and watching data. Nothing is
// logged until a logger is set; nil restores that.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		d := logrus.New()
		d.SetOutput(io.Discard)
		d.SetLevel(logrus.PanicLevel)
		l = d
	}
	logger.Store(&loggerBox{l: l})
}

func Logger() logrus.FieldLogger {
	return logger.Load().l
}

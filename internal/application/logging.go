package application

import (
	"io"

	"github.com/sirupsen/logrus"
)

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func loggerOrDiscard(l *logrus.Logger) *logrus.Logger {
	if l == nil {
		return discard
	}
	return l
}

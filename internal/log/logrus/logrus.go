package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/mirrorops/drcmd/internal/log"
)

type logger struct {
	*logrus.Entry
}

// NewLogrus returns a log.Logger implemented with a logrus entry.
func NewLogrus(entry *logrus.Entry) log.Logger {
	return logger{Entry: entry}
}

func (l logger) WithValues(kv log.Kv) log.Logger {
	return logger{Entry: l.Entry.WithFields(logrus.Fields(kv))}
}

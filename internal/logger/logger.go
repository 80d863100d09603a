package logger

import (
	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// Init inicializa el logger estructurado.
func Init(level string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// JSON en production, texto en development.
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter cambia a formato de texto (para development).
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

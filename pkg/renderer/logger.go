package renderer

import (
	"github.com/golang/glog"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// GlogLogger implements core.Logger on top of glog's info log
type GlogLogger struct{}

// Printf logs a formatted line at info severity
func (GlogLogger) Printf(format string, args ...interface{}) {
	glog.Infof(format, args...)
}

// NewDefaultLogger creates the logger used when none is supplied
func NewDefaultLogger() core.Logger {
	return GlogLogger{}
}

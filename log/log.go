package log

import (
	"fmt"
	"io"
	"os"
	"runtime"

	log "github.com/sirupsen/logrus"
)

var Logger *log.Logger

func init() {
	Logger = log.New()
	Logger.SetOutput(os.Stderr)
	Logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	Logger.SetLevel(log.InfoLevel)
}

func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// SetLevel accepts logrus level names: trace, debug, info, warn, error...
func SetLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger.SetLevel(lvl)
	return nil
}

// SetJSON switches to the logrus JSON formatter.
func SetJSON(on bool) {
	if on {
		Logger.SetFormatter(&log.JSONFormatter{})
	} else {
		Logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func WithFields(fields log.Fields) *log.Entry {
	return Logger.WithFields(fields)
}

func WithError(err error) *log.Entry {
	return Logger.WithError(err)
}

func Debug(args ...interface{}) {
	Logger.Debug(args...)
}

func Info(args ...interface{}) {
	Logger.Info(args...)
}

func Warn(args ...interface{}) {
	Logger.Warn(args...)
}

func Error(args ...interface{}) {
	Logger.Error(args...)
}

func Debugf(format string, args ...interface{}) {
	Logger.Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	Logger.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	Logger.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	Logger.Errorf(format, args...)
}

//use for defer recover, the optional err receives the panic value
func PrintPanicStack(err ...*error) {
	if x := recover(); x != nil {
		Logger.Errorf("Recovered %v\nStack:%s", x, DumpStack())
		if len(err) > 0 && err[0] != nil {
			*err[0] = fmt.Errorf("panic: %v", x)
		}
	}
}

func DumpStack() []byte {
	buf := make([]byte, 64<<10)
	n := runtime.Stack(buf, false)
	return buf[:n]
}

package log

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// The storage layer logs through this thin wrapper so call sites can pass a
// context (ignored today, reserved for request-scoped fields) followed by
// alternating key/value pairs, with a trailing error allowed as a bare value.
//
//	log.Debug(ctx, "Purged empty releases", "totalDeleted", c)
//	log.Error("Migration failed", err)

var logger = logrus.New()

func init() {
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// SetLevel accepts the usual logrus level names ("debug", "info", ...).
// Unknown names leave the level untouched.
func SetLevel(level string) {
	if l, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(l)
	}
}

func IsGreaterOrEqualTo(level logrus.Level) bool {
	return logger.IsLevelEnabled(level)
}

func Error(args ...any) { log(logrus.ErrorLevel, args...) }
func Warn(args ...any)  { log(logrus.WarnLevel, args...) }
func Info(args ...any)  { log(logrus.InfoLevel, args...) }
func Debug(args ...any) { log(logrus.DebugLevel, args...) }
func Trace(args ...any) { log(logrus.TraceLevel, args...) }

// Fatal logs and exits. Used for violations of the transaction discipline
// when DevCheckTx is on, and for fatal errors reported by goose.
func Fatal(args ...any) {
	msg, fields := parseArgs(args)
	logger.WithFields(fields).Fatal(msg)
}

func log(level logrus.Level, args ...any) {
	if !logger.IsLevelEnabled(level) {
		return
	}
	msg, fields := parseArgs(args)
	logger.WithFields(fields).Log(level, msg)
}

func parseArgs(args []any) (string, logrus.Fields) {
	var msg string
	i := 0
	if len(args) > 0 {
		if _, ok := args[0].(context.Context); ok {
			i++
		}
	}
	if i < len(args) {
		msg = fmt.Sprint(args[i])
		i++
	}
	fields := logrus.Fields{}
	for ; i < len(args); i++ {
		if err, ok := args[i].(error); ok {
			fields["error"] = err.Error()
			continue
		}
		if i+1 < len(args) {
			fields[fmt.Sprint(args[i])] = args[i+1]
			i++
			continue
		}
		fields["msg2"] = fmt.Sprint(args[i])
	}
	return msg, fields
}

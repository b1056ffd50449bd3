package log

import (
	"fmt"
	"strings"

	"github.com/astaxie/beego/logs"
	"github.com/copernet/kernel/conf"
)

func init() {
	if err := Init(conf.Cfg.Log.Level); err != nil {
		panic(err)
	}
}

func validLogLevel(strLevel string) (level int, ok bool) {
	ok = true
	switch strings.ToLower(strLevel) {
	case "emergency":
		level = logs.LevelEmergency
	case "alert":
		level = logs.LevelAlert
	case "critical":
		level = logs.LevelCritical
	case "error":
		level = logs.LevelError
	case "warn":
		level = logs.LevelWarn
	case "notice":
		level = logs.LevelNotice
	case "info":
		level = logs.LevelInfo
	case "debug":
		level = logs.LevelDebug
	case "trace":
		level = logs.LevelTrace
	default:
		ok = false
	}
	return
}

// Init configures the beego logger at the given level. The console adapter
// is used; a host that wants file rotation configures beego itself.
func Init(strLevel string) error {
	level, ok := validLogLevel(strLevel)
	if !ok {
		return fmt.Errorf("mismatch the logLevel %s", strLevel)
	}
	logs.SetLevel(level)
	return nil
}

// Print logs at the given level when module is enabled in the configuration.
func Print(module string, level string, format string, reason ...interface{}) {
	if !isIncludeModule(module) {
		return
	}
	switch strings.ToLower(level) {
	case "emergency":
		logs.Emergency(format, reason...)
	case "alert":
		logs.Alert(format, reason...)
	case "critical":
		logs.Critical(format, reason...)
	case "error":
		logs.Error(format, reason...)
	case "warn":
		logs.Warn(format, reason...)
	case "notice":
		logs.Notice(format, reason...)
	case "info":
		logs.Info(format, reason...)
	case "debug":
		logs.Debug(format, reason...)
	case "trace":
		logs.Trace(format, reason...)
	}
}

func isIncludeModule(module string) bool {
	for _, item := range conf.Cfg.Log.Module {
		if item == module {
			return true
		}
	}
	return false
}

func Emergency(format string, v ...interface{}) {
	logs.Emergency(format, v...)
}

func Alert(format string, v ...interface{}) {
	logs.Alert(format, v...)
}

func Critical(format string, v ...interface{}) {
	logs.Critical(format, v...)
}

func Error(format string, v ...interface{}) {
	logs.Error(format, v...)
}

func Warn(format string, v ...interface{}) {
	logs.Warn(format, v...)
}

func Notice(format string, v ...interface{}) {
	logs.Notice(format, v...)
}

func Info(format string, v ...interface{}) {
	logs.Info(format, v...)
}

func Debug(format string, v ...interface{}) {
	logs.Debug(format, v...)
}

func Trace(format string, v ...interface{}) {
	logs.Trace(format, v...)
}

package log

import (
	"fmt"
	"io"
	"time"
)

func registerNewSubLogger(name string) *SubLogger {
	sl := &SubLogger{
		name:  name,
		info:  true,
		warn:  true,
		error: true,
	}
	mu.Lock()
	subLoggers[name] = sl
	mu.Unlock()
	return sl
}

// SetOutput redirects all subloggers to w
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}

// SetDebug toggles debug output on every registered sublogger
func SetDebug(enabled bool) {
	mu.Lock()
	for _, sl := range subLoggers {
		sl.debug = enabled
	}
	mu.Unlock()
}

func (sl *SubLogger) stage(header, msg string) {
	if sl == nil {
		return
	}
	switch header {
	case debugHeader:
		if !sl.debug {
			return
		}
	case infoHeader:
		if !sl.info {
			return
		}
	case warnHeader:
		if !sl.warn {
			return
		}
	case errorHeader:
		if !sl.error {
			return
		}
	}
	fmt.Fprintf(output, "%s %s %s %s\n",
		time.Now().Format(timestampFormat),
		header,
		sl.name,
		msg)
}

// Info takes a pointer sublogger and writes an info level message
func Info(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(infoHeader, data)
}

// Infoln writes the operands at info level
func Infoln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(infoHeader, fmt.Sprintln(v...))
}

// Infof formats and writes at info level
func Infof(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(infoHeader, fmt.Sprintf(data, v...))
}

// Debug takes a pointer sublogger and writes a debug level message
func Debug(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(debugHeader, data)
}

// Debugf formats and writes at debug level
func Debugf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(debugHeader, fmt.Sprintf(data, v...))
}

// Warn takes a pointer sublogger and writes a warning level message
func Warn(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(warnHeader, data)
}

// Warnf formats and writes at warning level
func Warnf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(warnHeader, fmt.Sprintf(data, v...))
}

// Error takes a pointer sublogger and writes an error level message
func Error(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(errorHeader, fmt.Sprint(v...))
}

// Errorf formats and writes at error level
func Errorf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(errorHeader, fmt.Sprintf(data, v...))
}

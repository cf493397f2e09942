// 指示: miu200521358
package logging

import "sync"

// LogLevel はログ出力レベルを表す。
type LogLevel int

const (
	// LOG_LEVEL_DEBUG はデバッグ出力。
	LOG_LEVEL_DEBUG LogLevel = 10
	// LOG_LEVEL_INFO は通常出力。
	LOG_LEVEL_INFO LogLevel = 20
	// LOG_LEVEL_WARN は警告出力。
	LOG_LEVEL_WARN LogLevel = 30
	// LOG_LEVEL_ERROR はエラー出力。
	LOG_LEVEL_ERROR LogLevel = 40
)

// ParseLogLevel は設定値の文字列からレベルを解決する。未知の値は INFO とみなす。
func ParseLogLevel(name string) LogLevel {
	switch name {
	case "debug", "DEBUG":
		return LOG_LEVEL_DEBUG
	case "warn", "WARN", "warning":
		return LOG_LEVEL_WARN
	case "error", "ERROR":
		return LOG_LEVEL_ERROR
	default:
		return LOG_LEVEL_INFO
	}
}

// String はレベル名を返す。
func (l LogLevel) String() string {
	switch l {
	case LOG_LEVEL_DEBUG:
		return "DEBUG"
	case LOG_LEVEL_WARN:
		return "WARN"
	case LOG_LEVEL_ERROR:
		return "ERROR"
	default:
		return "INFO"
	}
}

// IMessageBuffer は出力済みメッセージの保持先を表す。
type IMessageBuffer interface {
	Lines() []string
	Clear()
}

// ILogger はアプリ全体で共有するロガーの契約を表す。
type ILogger interface {
	Level() LogLevel
	SetLevel(level LogLevel)
	Debug(format string, params ...any)
	Info(format string, params ...any)
	Warn(format string, params ...any)
	Error(format string, params ...any)
	MessageBuffer() IMessageBuffer
}

var (
	defaultLoggerMu sync.RWMutex
	defaultLogger   ILogger
)

// DefaultLogger は既定ロガーを返す。未設定の場合は nil。
func DefaultLogger() ILogger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger は既定ロガーを差し替える。
func SetDefaultLogger(logger ILogger) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	defaultLogger = logger
}

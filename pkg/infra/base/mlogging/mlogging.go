// 指示: miu200521358
package mlogging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/miu200521358/mu_physmigrate/pkg/shared/base/logging"
)

// maxBufferedLines はメッセージバッファが保持する最大行数。
const maxBufferedLines = 1000

// messageBuffer は直近の出力行を保持する。
type messageBuffer struct {
	mu    sync.Mutex
	lines []string
}

// Lines は保持中の行を複製して返す。
func (b *messageBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lines...)
}

// Clear は保持中の行を破棄する。
func (b *messageBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
}

func (b *messageBuffer) append(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
	if over := len(b.lines) - maxBufferedLines; over > 0 {
		b.lines = append(b.lines[:0], b.lines[over:]...)
	}
}

// Logger は slog を出力先とするロガー実装を表す。
type Logger struct {
	mu     sync.RWMutex
	level  logging.LogLevel
	sink   *slog.Logger
	buffer *messageBuffer
}

// NewLogger はロガーを生成する。out が nil の場合はメッセージバッファにのみ保持する。
func NewLogger(out io.Writer) *Logger {
	logger := &Logger{
		level:  logging.LOG_LEVEL_INFO,
		buffer: &messageBuffer{},
	}
	if out != nil {
		logger.sink = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return logger
}

// Level は現在のレベルを返す。
func (l *Logger) Level() logging.LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// SetLevel はレベルを設定する。
func (l *Logger) SetLevel(level logging.LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// MessageBuffer は出力済みメッセージの保持先を返す。
func (l *Logger) MessageBuffer() logging.IMessageBuffer {
	return l.buffer
}

// Debug はデバッグログを出力する。
func (l *Logger) Debug(format string, params ...any) {
	l.output(logging.LOG_LEVEL_DEBUG, slog.LevelDebug, format, params...)
}

// Info は情報ログを出力する。
func (l *Logger) Info(format string, params ...any) {
	l.output(logging.LOG_LEVEL_INFO, slog.LevelInfo, format, params...)
}

// Warn は警告ログを出力する。
func (l *Logger) Warn(format string, params ...any) {
	l.output(logging.LOG_LEVEL_WARN, slog.LevelWarn, format, params...)
}

// Error はエラーログを出力する。
func (l *Logger) Error(format string, params ...any) {
	l.output(logging.LOG_LEVEL_ERROR, slog.LevelError, format, params...)
}

// output はレベル判定後にバッファと出力先へ書き出す。
func (l *Logger) output(level logging.LogLevel, slogLevel slog.Level, format string, params ...any) {
	if level < l.Level() {
		return
	}
	message := format
	if len(params) > 0 {
		message = fmt.Sprintf(format, params...)
	}
	l.buffer.append(message)
	if l.sink != nil {
		l.sink.Log(context.Background(), slogLevel, message)
	}
}

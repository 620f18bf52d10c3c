package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"log/slog"
)

var (
	levelVar   slog.LevelVar
	loggerMu   sync.RWMutex
	baseLogger = newLogger(os.Stdout)
)

func newLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: &levelVar})
	return slog.New(handler)
}

func SetOutput(w io.Writer) {
	loggerMu.Lock()
	baseLogger = newLogger(w)
	loggerMu.Unlock()
}

// SetLevel 解析配置中的级别字符串，无法识别时回落到 info。
func SetLevel(level string) {
	levelVar.Set(parseLevel(level))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func activeLogger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return baseLogger
}

func Debugf(format string, v ...any) {
	activeLogger().Debug(fmt.Sprintf(format, v...))
}

func Infof(format string, v ...any) {
	activeLogger().Info(fmt.Sprintf(format, v...))
}

func Warnf(format string, v ...any) {
	activeLogger().Warn(fmt.Sprintf(format, v...))
}

func Errorf(format string, v ...any) {
	activeLogger().Error(fmt.Sprintf(format, v...))
}

// InfoBlock 将多行文本逐行按 info 级输出，用于启动摘要这类成块内容。
func InfoBlock(block string) {
	block = strings.TrimSpace(block)
	if block == "" {
		return
	}
	for _, line := range strings.Split(block, "\n") {
		Infof("%s", line)
	}
}

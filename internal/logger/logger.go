package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger 无法识别的日志级别按 info 处理
func NewLogger(logLevel string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()

	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	cfg.Level = zap.NewAtomicLevelAt(level)
	// 本地工具不需要 warn 级别的堆栈
	cfg.DisableStacktrace = level > zapcore.DebugLevel

	lgr, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("构建日志器失败: %w", err)
	}

	return lgr, nil
}

func InitLogger(logLevel string) {
	lgr, err := NewLogger(logLevel)
	if err != nil {
		panic(err)
	}

	zap.ReplaceGlobals(lgr)
}

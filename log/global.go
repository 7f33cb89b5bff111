package log

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var global atomic.Pointer[Logger]

func init() {
	global.Store(New())
}

// G 返回全局日志实例
func G() *Logger {
	return global.Load()
}

// SetGlobalLogger 替换全局日志实例，nil 被忽略
// 已通过 G() 取得旧实例的组件不受影响
func SetGlobalLogger(logger *Logger) {
	if logger != nil {
		global.Store(logger)
	}
}

// SetGlobalLevel 调整全局日志实例的级别
func SetGlobalLevel(level zerolog.Level) {
	G().SetLevel(level)
}

func Debug() *zerolog.Event { return G().Debug() }
func Info() *zerolog.Event  { return G().Info() }
func Warn() *zerolog.Event  { return G().Warn() }

// Error 带堆栈的 error 事件
func Error() *zerolog.Event { return G().Error().Stack() }

// Infof 格式化输出 info 日志
func Infof(format string, args ...any) {
	G().Info().Msgf(format, args...)
}

// Errorf 格式化输出带堆栈的 error 日志
func Errorf(format string, args ...any) {
	G().Error().Stack().Msgf(format, args...)
}

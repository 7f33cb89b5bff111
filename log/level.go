package log

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// levelFilter 可在运行时调整的最低日志级别
// zerolog.Logger 是值类型，直接修改其级别会与并发写日志产生竞争，
// 因此底层 Logger 固定为 trace 级别，由 Hook 按当前级别丢弃事件
type levelFilter struct {
	min atomic.Int32
}

func newLevelFilter(level zerolog.Level) *levelFilter {
	f := &levelFilter{}
	f.set(level)
	return f
}

func (f *levelFilter) get() zerolog.Level {
	return zerolog.Level(f.min.Load())
}

func (f *levelFilter) set(level zerolog.Level) {
	f.min.Store(int32(level))
}

// Run 实现 zerolog.Hook
func (f *levelFilter) Run(e *zerolog.Event, level zerolog.Level, _ string) {
	if level < f.get() {
		e.Discard()
	}
}

// GetLevel 返回当前生效的日志级别
func (l *Logger) GetLevel() zerolog.Level {
	return l.level.get()
}

// SetLevel 调整日志级别，所有持有该 Logger 的组件立即生效
func (l *Logger) SetLevel(level zerolog.Level) {
	l.level.set(level)
}

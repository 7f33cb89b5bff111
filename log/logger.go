package log

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/kochabx/jwekit/core/tag"
	"github.com/kochabx/jwekit/log/desensitize"
	"github.com/kochabx/jwekit/log/writer"
)

// Logger 日志记录器
type Logger struct {
	zerolog.Logger
	level           *levelFilter
	desensitizeHook *desensitize.Hook
	closer          io.Closer
}

func init() {
	zerolog.TimeFieldFormat = time.DateTime
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// GetDesensitizeHook 获取脱敏钩子
func (l *Logger) GetDesensitizeHook() *desensitize.Hook {
	return l.desensitizeHook
}

// Close 关闭文件 writer
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// newLogger 先收集选项，再一次性构建 zerolog.Logger，脱敏 writer 包在最外层
func newLogger(w io.Writer, opts ...Option) *Logger {
	o := options{level: zerolog.InfoLevel}
	for _, opt := range opts {
		opt(&o)
	}

	if o.desensitizeHook != nil {
		w = desensitize.NewWriter(w, o.desensitizeHook)
	}

	level := newLevelFilter(o.level)
	ctx := zerolog.New(w).Level(zerolog.TraceLevel).Hook(level).With().Timestamp()
	if o.caller {
		ctx = ctx.CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + o.callerSkip)
	}
	for k, v := range o.fields {
		ctx = ctx.Str(k, v)
	}

	return &Logger{
		Logger:          ctx.Logger(),
		level:           level,
		desensitizeHook: o.desensitizeHook,
	}
}

// New 创建输出到控制台(stderr)的 Logger
func New(opts ...Option) *Logger {
	return newLogger(writer.Console(), opts...)
}

// NewWriter 创建输出到任意 writer 的 JSON Logger
func NewWriter(w io.Writer, opts ...Option) *Logger {
	return newLogger(w, opts...)
}

// NewFile 创建文件输出的 Logger
func NewFile(c FileConfig, opts ...Option) (*Logger, error) {
	fw, err := openFile(&c)
	if err != nil {
		return nil, err
	}

	logger := newLogger(fw, opts...)
	logger.closer = fw
	return logger, nil
}

// NewMulti 创建同时输出到文件和控制台的 Logger
func NewMulti(c FileConfig, opts ...Option) (*Logger, error) {
	fw, err := openFile(&c)
	if err != nil {
		return nil, err
	}

	logger := newLogger(zerolog.MultiLevelWriter(fw, writer.Console()), opts...)
	logger.closer = fw
	return logger, nil
}

// NewFromConfig 按配置创建 Logger
// 默认值由配置加载阶段填充，这里不再调用 tag.ApplyDefaults，否则显式关闭的布尔项会被覆盖
func NewFromConfig(c Config, opts ...Option) (*Logger, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	base := []Option{WithLevel(level)}
	if c.Caller {
		base = append(base, WithCaller())
	}
	if c.Desensitize {
		base = append(base, WithDesensitize(desensitize.NewHook(desensitize.KeyMaterialRules()...)))
	}
	opts = append(base, opts...)

	switch c.Output {
	case OutputConsole, "":
		return New(opts...), nil
	case OutputFile:
		return NewFile(c.File, opts...)
	case OutputMulti:
		return NewMulti(c.File, opts...)
	default:
		return nil, fmt.Errorf("unsupported log output: %q", c.Output)
	}
}

func openFile(c *FileConfig) (io.WriteCloser, error) {
	if err := tag.ApplyDefaults(c); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	rotation, err := c.rotation()
	if err != nil {
		return nil, err
	}

	fw, err := writer.File(c.Filepath, c.Filename, c.FileExt, rotation)
	if err != nil {
		return nil, fmt.Errorf("failed to create file writer: %w", err)
	}
	return fw, nil
}

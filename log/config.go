package log

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kochabx/jwekit/log/writer"
)

// Output 日志输出目标
const (
	OutputConsole = "console"
	OutputFile    = "file"
	OutputMulti   = "multi"
)

// Config 日志配置
type Config struct {
	Level       string     `json:"level" mapstructure:"level" default:"info" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Output      string     `json:"output" mapstructure:"output" default:"console" validate:"oneof=console file multi"`
	Caller      bool       `json:"caller" mapstructure:"caller"`
	Desensitize bool       `json:"desensitize" mapstructure:"desensitize" default:"true"`
	File        FileConfig `json:"file" mapstructure:"file"`
}

// FileConfig 日志文件配置
type FileConfig struct {
	Filepath         string           `json:"filepath" mapstructure:"filepath" default:"log"`
	Filename         string           `json:"filename" mapstructure:"filename" default:"jwekit"`
	FileExt          string           `json:"file_ext" mapstructure:"file_ext" default:"log"`
	RotateMode       string           `json:"rotate_mode" mapstructure:"rotate_mode" default:"size" validate:"oneof=time size"`
	RotatelogsConfig RotatelogsConfig `json:"rotatelogs_config" mapstructure:"rotatelogs_config"`
	LumberjackConfig LumberjackConfig `json:"lumberjack_config" mapstructure:"lumberjack_config"`
}

// RotatelogsConfig 按时间轮转配置
type RotatelogsConfig struct {
	MaxAge       int `json:"max_age" mapstructure:"max_age" default:"24"`
	RotationTime int `json:"rotation_time" mapstructure:"rotation_time" default:"1"`
}

// LumberjackConfig 按大小轮转配置
type LumberjackConfig struct {
	MaxSize    int  `json:"max_size" mapstructure:"max_size" default:"100"`
	MaxBackups int  `json:"max_backups" mapstructure:"max_backups" default:"5"`
	MaxAge     int  `json:"max_age" mapstructure:"max_age" default:"30"`
	Compress   bool `json:"compress" mapstructure:"compress"`
}

// ParseLevel 解析日志级别，空字符串视为 info
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// rotation 按 RotateMode 选择轮转策略
func (c *FileConfig) rotation() (writer.Rotation, error) {
	switch strings.ToLower(c.RotateMode) {
	case "size", "":
		l := c.LumberjackConfig
		return writer.BySize{MaxSizeMB: l.MaxSize, MaxBackups: l.MaxBackups, MaxAgeDays: l.MaxAge, Compress: l.Compress}, nil
	case "time":
		r := c.RotatelogsConfig
		return writer.ByTime{
			Every:  time.Duration(r.RotationTime) * time.Hour,
			MaxAge: time.Duration(r.MaxAge) * time.Hour,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported rotate mode: %q", c.RotateMode)
	}
}

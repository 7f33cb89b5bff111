package writer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation 日志文件轮转策略
type Rotation interface {
	open(path string) (io.WriteCloser, error)
}

// ByTime 按时间轮转，文件名追加时间后缀，原路径保留为指向当前文件的软链接
type ByTime struct {
	Every  time.Duration // 轮转间隔
	MaxAge time.Duration // 保留时长
}

func (r ByTime) open(path string) (io.WriteCloser, error) {
	ext := filepath.Ext(path)
	pattern := path[:len(path)-len(ext)] + ".%Y%m%d%H%M" + ext

	w, err := rotatelogs.New(pattern,
		rotatelogs.WithLinkName(path),
		rotatelogs.WithRotationTime(r.Every),
		rotatelogs.WithMaxAge(r.MaxAge),
	)
	if err != nil {
		return nil, fmt.Errorf("rotatelogs: %w", err)
	}
	return w, nil
}

// BySize 按大小轮转，由 lumberjack 负责备份与清理
type BySize struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func (r BySize) open(path string) (io.WriteCloser, error) {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    r.MaxSizeMB,
		MaxBackups: r.MaxBackups,
		MaxAge:     r.MaxAgeDays,
		Compress:   r.Compress,
	}, nil
}

// File 打开 <dir>/<name>.<ext> 的轮转 writer，调用方负责 Close
func File(dir, name, ext string, rotation Rotation) (io.WriteCloser, error) {
	if rotation == nil {
		return nil, errors.New("log file: rotation is required")
	}
	if name == "" {
		return nil, errors.New("log file: name is required")
	}
	return rotation.open(filepath.Join(dir, name+"."+ext))
}

package writer

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Console 创建控制台输出 writer，默认写到 stderr，stdout 留给命令输出
func Console(out ...io.Writer) zerolog.ConsoleWriter {
	var w io.Writer = os.Stderr
	if len(out) > 0 && out[0] != nil {
		w = out[0]
	}

	return zerolog.ConsoleWriter{
		Out:         w,
		TimeFormat:  time.DateTime,
		FormatLevel: formatLevel,
	}
}

// formatLevel 格式化日志级别显示
func formatLevel(i any) string {
	return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
}

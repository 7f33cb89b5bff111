package desensitize

import "io"

// Writer 在写入下游前对每条日志脱敏
type Writer struct {
	out  io.Writer
	hook *Hook
}

// NewWriter 创建脱敏 writer，out 与 hook 均不能为 nil
func NewWriter(out io.Writer, hook *Hook) *Writer {
	if out == nil || hook == nil {
		panic("desensitize: NewWriter requires a writer and a hook")
	}
	return &Writer{out: out, hook: hook}
}

// Write 实现 io.Writer
// 脱敏后长度会变化，成功时返回 len(p)，否则 zerolog 会判定为短写
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 || w.hook.RuleCount() == 0 {
		return w.out.Write(p)
	}

	text := string(p)
	masked := w.hook.Desensitize(text)
	if masked == text {
		return w.out.Write(p)
	}
	if _, err := io.WriteString(w.out, masked); err != nil {
		return 0, err
	}
	return len(p), nil
}

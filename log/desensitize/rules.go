package desensitize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
)

var (
	ErrEmptyName    = errors.New("desensitize: rule name cannot be empty")
	ErrEmptyField   = errors.New("desensitize: field name cannot be empty")
	ErrEmptyPattern = errors.New("desensitize: pattern cannot be empty")
)

// Rule 脱敏规则
type Rule interface {
	Name() string
	Enabled() bool
	SetEnabled(enabled bool)
	// Process 返回脱敏后的字符串
	Process(s string) string
}

// toggle 规则共用的名称与开关，默认启用
type toggle struct {
	name string
	off  atomic.Bool
}

func (t *toggle) Name() string            { return t.name }
func (t *toggle) Enabled() bool           { return !t.off.Load() }
func (t *toggle) SetEnabled(enabled bool) { t.off.Store(!enabled) }

// jsonString 匹配 JSON 字符串值，允许转义的引号
const jsonString = `"((?:[^"\\]|\\.)*)"`

func compile(name, pattern string) (*regexp.Regexp, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("desensitize: rule %q: %w", name, err)
	}
	return re, nil
}

func must[R Rule](r R, err error) R {
	if err != nil {
		panic(err)
	}
	return r
}

// ContentRule 对整段文本做正则替换
type ContentRule struct {
	toggle
	re          *regexp.Regexp
	replacement string
}

// NewContentRule 创建内容规则，replacement 支持 $1 形式的分组引用
func NewContentRule(name, pattern, replacement string) (*ContentRule, error) {
	re, err := compile(name, pattern)
	if err != nil {
		return nil, err
	}
	return &ContentRule{toggle: toggle{name: name}, re: re, replacement: replacement}, nil
}

// MustNewContentRule 同 NewContentRule，出错时 panic，用于内置规则
func MustNewContentRule(name, pattern, replacement string) *ContentRule {
	return must(NewContentRule(name, pattern, replacement))
}

func (r *ContentRule) Process(s string) string {
	if !r.Enabled() {
		return s
	}
	return r.re.ReplaceAllString(s, r.replacement)
}

// FieldRule 按 JSON 字段名定位字符串值，只对值中匹配 pattern 的部分做替换
type FieldRule struct {
	toggle
	field       *regexp.Regexp // 分组 1 为 "字段":，分组 2 为值
	value       *regexp.Regexp
	replacement string
}

// NewFieldRule 创建作用于单个字段的规则
func NewFieldRule(name, fieldName, pattern, replacement string) (*FieldRule, error) {
	return newFieldRule(name, []string{fieldName}, pattern, replacement)
}

// MustNewFieldRule 同 NewFieldRule，出错时 panic
func MustNewFieldRule(name, fieldName, pattern, replacement string) *FieldRule {
	return must(NewFieldRule(name, fieldName, pattern, replacement))
}

// NewMaskRule 创建将若干字段的整个值替换为 mask 的规则
func NewMaskRule(name, mask string, fields ...string) (*FieldRule, error) {
	return newFieldRule(name, fields, `.+`, mask)
}

func newFieldRule(name string, fields []string, pattern, replacement string) (*FieldRule, error) {
	value, err := compile(name, pattern)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrEmptyField
	}

	quoted := make([]string, len(fields))
	for i, f := range fields {
		if f == "" {
			return nil, ErrEmptyField
		}
		quoted[i] = regexp.QuoteMeta(f)
	}
	field := regexp.MustCompile(`("(?:` + strings.Join(quoted, "|") + `)"\s*:\s*)` + jsonString)

	return &FieldRule{
		toggle:      toggle{name: name},
		field:       field,
		value:       value,
		replacement: replacement,
	}, nil
}

func (r *FieldRule) Process(s string) string {
	if !r.Enabled() {
		return s
	}
	return r.field.ReplaceAllStringFunc(s, func(m string) string {
		sub := r.field.FindStringSubmatch(m)
		return sub[1] + `"` + r.value.ReplaceAllString(sub[2], r.replacement) + `"`
	})
}

package desensitize

import (
	"slices"
	"sync"
)

// Hook 脱敏钩子，规则按添加顺序依次应用
// 规则切片写时复制，Desensitize 读取时无需持锁遍历
type Hook struct {
	mu    sync.RWMutex
	rules []Rule
}

// NewHook 创建脱敏钩子
func NewHook(rules ...Rule) *Hook {
	h := &Hook{}
	h.AddRules(rules...)
	return h
}

// AddRule 添加规则，同名规则会被替换
func (h *Hook) AddRule(rule Rule) {
	if rule == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if i := h.indexLocked(rule.Name()); i >= 0 {
		rules := slices.Clone(h.rules)
		rules[i] = rule
		h.rules = rules
		return
	}
	h.rules = append(slices.Clip(h.rules), rule)
}

// AddRules 批量添加规则
func (h *Hook) AddRules(rules ...Rule) {
	for _, rule := range rules {
		h.AddRule(rule)
	}
}

// AddContentRule 添加基于内容匹配的规则
func (h *Hook) AddContentRule(name, pattern, replacement string) error {
	rule, err := NewContentRule(name, pattern, replacement)
	if err != nil {
		return err
	}
	h.AddRule(rule)
	return nil
}

// AddFieldRule 添加基于 JSON 字段名匹配的规则
func (h *Hook) AddFieldRule(name, fieldName, pattern, replacement string) error {
	rule, err := NewFieldRule(name, fieldName, pattern, replacement)
	if err != nil {
		return err
	}
	h.AddRule(rule)
	return nil
}

// RemoveRule 移除规则
func (h *Hook) RemoveRule(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.indexLocked(name)
	if i < 0 {
		return false
	}
	h.rules = slices.Concat(h.rules[:i], h.rules[i+1:])
	return true
}

// GetRule 获取规则
func (h *Hook) GetRule(name string) (Rule, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i := h.indexLocked(name); i >= 0 {
		return h.rules[i], true
	}
	return nil, false
}

// GetRules 按顺序列出规则名称
func (h *Hook) GetRules() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, len(h.rules))
	for i, r := range h.rules {
		names[i] = r.Name()
	}
	return names
}

// RuleCount 返回规则数量
func (h *Hook) RuleCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rules)
}

// Desensitize 对字符串进行脱敏
func (h *Hook) Desensitize(s string) string {
	if s == "" {
		return s
	}

	h.mu.RLock()
	rules := h.rules
	h.mu.RUnlock()

	for _, rule := range rules {
		if rule.Enabled() {
			s = rule.Process(s)
		}
	}
	return s
}

func (h *Hook) indexLocked(name string) int {
	return slices.IndexFunc(h.rules, func(r Rule) bool { return r.Name() == name })
}

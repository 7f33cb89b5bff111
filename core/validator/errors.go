package validator

import (
	"errors"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// FieldError 单个字段的校验失败。不保留字段值，避免密钥材料进入日志或响应
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`

	fe          validator.FieldError
	translators map[string]ut.Translator
}

// Translate 以指定语言返回消息，语言未启用时返回默认消息
func (e FieldError) Translate(lang string) string {
	if trans, ok := e.translators[lang]; ok && e.fe != nil {
		return e.fe.Translate(trans)
	}
	return e.Message
}

// ValidationErrors 一次校验中的全部字段错误
type ValidationErrors []FieldError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Fields 返回字段名到消息的映射，同一字段多条错误时保留第一条
func (es ValidationErrors) Fields() map[string]string {
	m := make(map[string]string, len(es))
	for _, e := range es {
		if _, ok := m[e.Field]; !ok {
			m[e.Field] = e.Message
		}
	}
	return m
}

// AsValidationErrors 从错误链中取出 ValidationErrors
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ves ValidationErrors
	ok := errors.As(err, &ves)
	return ves, ok
}

// IsValidationError 是否为校验错误
func IsValidationError(err error) bool {
	_, ok := AsValidationErrors(err)
	return ok
}

// HasFieldError 是否存在指定字段的错误
func HasFieldError(err error, field string) bool {
	ves, _ := AsValidationErrors(err)
	for _, e := range ves {
		if e.Field == field {
			return true
		}
	}
	return false
}

package http

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"

	"github.com/kochabx/jwekit/core/validator"
)

var bindingOnce sync.Once

// structValidator 让 gin 绑定使用带领域规则和翻译的校验器
type structValidator struct {
	v validator.Validator
}

var _ binding.StructValidator = structValidator{}

func (s structValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return s.v.Struct(obj)
}

func (s structValidator) Engine() any {
	return s.v.GetValidator()
}

// useValidator 替换 gin 的全局校验器，只执行一次
func useValidator(v validator.Validator) {
	bindingOnce.Do(func() {
		binding.Validator = structValidator{v: v}
	})
}

// Package validator 封装 go-playground/validator，注册密钥、JWE 与 kid 等领域规则，
// 并将校验失败翻译为可读消息。字段名优先取 json 标签，与请求体中的名称保持一致。
package validator

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// ErrNilTarget 校验目标为空
var ErrNilTarget = errors.New("validator: validation target cannot be nil")

// Validator 校验器
type Validator interface {
	Struct(s any) error
	StructCtx(ctx context.Context, s any) error
	// Var 按标签校验单个值，如 Var(pub, TagPublicKey)
	Var(field any, tag string) error
	// GetValidator 返回底层实例，供 gin binding 等需要原始实例的场景使用
	GetValidator() *validator.Validate
}

// Validate 全局校验器，已注册领域规则
var Validate = New()

type options struct {
	tagName string
	langs   []string
	lang    string
}

// Option 校验器选项
type Option func(*options)

// WithTagName 设置结构体校验标签名，默认 validate
func WithTagName(name string) Option {
	return func(o *options) { o.tagName = name }
}

// WithLanguages 设置启用的翻译语言，支持 en 与 zh
func WithLanguages(langs ...string) Option {
	return func(o *options) { o.langs = langs }
}

// WithDefaultLang 设置错误消息使用的语言
func WithDefaultLang(lang string) Option {
	return func(o *options) { o.lang = lang }
}

type validate struct {
	v           *validator.Validate
	translators map[string]ut.Translator
	lang        string
}

// New 创建校验器，默认启用中英文翻译，错误消息使用英文
func New(opts ...Option) Validator {
	o := options{langs: []string{"en", "zh"}, lang: "en"}
	for _, opt := range opts {
		opt(&o)
	}

	v := validator.New()
	if o.tagName != "" {
		v.SetTagName(o.tagName)
	}
	v.RegisterTagNameFunc(jsonName)
	registerRules(v)

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, zh.New())
	translators := make(map[string]ut.Translator, len(o.langs))
	for _, lang := range o.langs {
		trans, ok := uni.GetTranslator(lang)
		if !ok {
			continue
		}
		switch lang {
		case "en":
			_ = en_translations.RegisterDefaultTranslations(v, trans)
		case "zh":
			_ = zh_translations.RegisterDefaultTranslations(v, trans)
		default:
			continue
		}
		registerRuleTranslations(v, lang, trans)
		translators[lang] = trans
	}

	return &validate{v: v, translators: translators, lang: o.lang}
}

// jsonName 取 json 标签中的字段名，无标签或为 "-" 时返回空串以沿用结构体字段名
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

func (v *validate) Struct(s any) error {
	return v.StructCtx(context.Background(), s)
}

func (v *validate) StructCtx(ctx context.Context, s any) error {
	if s == nil {
		return ErrNilTarget
	}
	return v.wrap(v.v.StructCtx(ctx, s))
}

func (v *validate) Var(field any, tag string) error {
	return v.wrap(v.v.Var(field, tag))
}

func (v *validate) GetValidator() *validator.Validate {
	return v.v
}

// wrap 将 validator.ValidationErrors 转换为 ValidationErrors，其余错误原样返回
func (v *validate) wrap(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	trans := v.translators[v.lang]
	out := make(ValidationErrors, 0, len(ves))
	for _, fe := range ves {
		msg := fe.Error()
		if trans != nil {
			msg = fe.Translate(trans)
		}
		out = append(out, FieldError{
			Field:       fe.Field(),
			Tag:         fe.Tag(),
			Message:     msg,
			fe:          fe,
			translators: v.translators,
		})
	}
	return out
}

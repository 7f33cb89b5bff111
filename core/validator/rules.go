package validator

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/kochabx/jwekit/core/crypto/p256"
)

// 领域校验标签
const (
	TagPublicKey  = "p256pub"  // SPKI 前缀 + 未压缩点的十六进制公钥
	TagPrivateKey = "p256priv" // 十六进制私钥（标量、iOS 导出格式或 DER）
	TagCompactJWE = "jwe"      // 5 段紧凑 JWE
	TagKeyID      = "kid"      // 可打印 ASCII，不含点号
)

type rule struct {
	tag  string
	fn   validator.Func
	text map[string]string // 语言 -> 翻译模板
}

var rules = []rule{
	{
		tag: TagPublicKey,
		fn: func(fl validator.FieldLevel) bool {
			_, err := p256.ParsePublicKeyHex(fl.Field().String())
			return err == nil
		},
		text: map[string]string{
			"en": "{0} must be a hex encoded P-256 public key",
			"zh": "{0}必须是十六进制编码的P-256公钥",
		},
	},
	{
		tag: TagPrivateKey,
		fn: func(fl validator.FieldLevel) bool {
			priv, err := p256.ParsePrivateKeyHex(fl.Field().String())
			if err != nil {
				return false
			}
			priv.Destroy()
			return true
		},
		text: map[string]string{
			"en": "{0} must be a hex encoded P-256 private key",
			"zh": "{0}必须是十六进制编码的P-256私钥",
		},
	},
	{
		tag: TagCompactJWE,
		fn: func(fl validator.FieldLevel) bool {
			return strings.Count(fl.Field().String(), ".") == 4
		},
		text: map[string]string{
			"en": "{0} must be a compact JWE with 5 segments",
			"zh": "{0}必须是5段紧凑格式的JWE",
		},
	},
	{
		tag: TagKeyID,
		fn: func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if s == "" || len(s) > 256 {
				return false
			}
			for i := 0; i < len(s); i++ {
				if c := s[i]; c < 0x20 || c > 0x7e || c == '.' {
					return false
				}
			}
			return true
		},
		text: map[string]string{
			"en": "{0} must be 1-256 printable ASCII characters without '.'",
			"zh": "{0}必须是1-256个不含'.'的可打印ASCII字符",
		},
	},
}

// registerRules 注册领域校验规则
func registerRules(v *validator.Validate) {
	for _, r := range rules {
		_ = v.RegisterValidation(r.tag, r.fn)
	}
}

// registerRuleTranslations 注册领域规则在 lang 下的翻译，未提供该语言的规则沿用默认消息
func registerRuleTranslations(v *validator.Validate, lang string, trans ut.Translator) {
	for _, r := range rules {
		text, ok := r.text[lang]
		if !ok {
			continue
		}
		tag := r.tag
		_ = v.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(tag, text, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				msg, err := ut.T(tag, fe.Field())
				if err != nil {
					return fe.Error()
				}
				return msg
			},
		)
	}
}

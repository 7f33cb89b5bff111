package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/jwekit/core/crypto/p256"
)

// sessionRequest 模拟解密请求
type sessionRequest struct {
	KeyID      string `json:"keyId" validate:"required,kid"`
	PublicKey  string `json:"publicKey" validate:"required,p256pub"`
	PrivateKey string `json:"privateKey" validate:"required,p256priv"`
	Data       string `json:"data" validate:"required,jwe"`
}

func validRequest(t *testing.T) sessionRequest {
	t.Helper()
	local := p256.MustGenerateKey()
	peer := p256.MustGenerateKey()
	return sessionRequest{
		KeyID:      "k1",
		PublicKey:  peer.Public().WireHex(),
		PrivateKey: local.Hex(),
		Data:       "a.b.c.d.e",
	}
}

// TestValidatorCreation 测试校验器创建
func TestValidatorCreation(t *testing.T) {
	assert.NotNil(t, Validate)
	assert.NotNil(t, New(WithTagName("validate"), WithLanguages("en")))
	assert.NotNil(t, New().GetValidator())
}

// TestDomainRules 测试领域规则
func TestDomainRules(t *testing.T) {
	v := New()

	req := validRequest(t)
	require.NoError(t, v.Struct(&req))

	tests := []struct {
		name   string
		mutate func(r *sessionRequest)
		field  string
	}{
		{"public key without prefix still valid point", func(r *sessionRequest) { r.PublicKey = p256.StripPrefix(r.PublicKey) }, ""},
		{"public key not hex", func(r *sessionRequest) { r.PublicKey = "zz" }, "publicKey"},
		{"public key truncated", func(r *sessionRequest) { r.PublicKey = r.PublicKey[:100] }, "publicKey"},
		{"private key too short", func(r *sessionRequest) { r.PrivateKey = "abcd" }, "privateKey"},
		{"jwe with 3 segments", func(r *sessionRequest) { r.Data = "a.b.c" }, "data"},
		{"kid with dot", func(r *sessionRequest) { r.KeyID = "k.1" }, "keyId"},
		{"kid with newline", func(r *sessionRequest) { r.KeyID = "k\n1" }, "keyId"},
		{"missing kid", func(r *sessionRequest) { r.KeyID = "" }, "keyId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := req
			tt.mutate(&r)
			err := v.Struct(&r)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.True(t, HasFieldError(err, tt.field), "expected error on %s, got %v", tt.field, err)
		})
	}
}

// TestTranslations 测试领域规则的中英文翻译
func TestTranslations(t *testing.T) {
	req := validRequest(t)
	req.PublicKey = "zz"

	err := New().Struct(&req)
	require.Error(t, err)
	assert.Equal(t, "publicKey must be a hex encoded P-256 public key", err.Error())

	ves, ok := AsValidationErrors(err)
	require.True(t, ok)
	require.Len(t, ves, 1)
	assert.Equal(t, TagPublicKey, ves[0].Tag)
	assert.Equal(t, "publicKey必须是十六进制编码的P-256公钥", ves[0].Translate("zh"))
	assert.Equal(t, ves[0].Message, ves[0].Translate("fr"))

	zhErr := New(WithDefaultLang("zh")).Struct(&req)
	require.Error(t, zhErr)
	assert.Contains(t, zhErr.Error(), "P-256公钥")

	// 仅启用英文时中文回退到默认消息
	enOnly := New(WithLanguages("en")).Struct(&req)
	ves, _ = AsValidationErrors(enOnly)
	require.Len(t, ves, 1)
	assert.Equal(t, ves[0].Message, ves[0].Translate("zh"))
}

// TestBuiltinTranslations 测试内置规则，无 json 标签时使用结构体字段名
func TestBuiltinTranslations(t *testing.T) {
	type payload struct {
		Name string `validate:"required"`
		Size int    `validate:"gte=1,lte=10"`
		Skip string `json:"-" validate:"required"`
	}

	err := New().Struct(&payload{Size: 11})
	require.Error(t, err)

	ves, ok := AsValidationErrors(err)
	require.True(t, ok)
	fields := ves.Fields()
	assert.Len(t, fields, 3)
	assert.Equal(t, "Name is a required field", fields["Name"])
	assert.Contains(t, fields, "Size")
	assert.Contains(t, fields, "Skip")
}

// TestNoValueInErrors 测试错误中不包含字段值
func TestNoValueInErrors(t *testing.T) {
	req := validRequest(t)
	secret := req.PrivateKey[:60]
	req.PrivateKey = secret

	err := New().Struct(&req)
	require.Error(t, err)
	assert.True(t, HasFieldError(err, "privateKey"))
	assert.NotContains(t, err.Error(), secret)
}

// TestVar 测试单值校验
func TestVar(t *testing.T) {
	v := New()
	pub := p256.MustGenerateKey().Public().WireHex()

	assert.NoError(t, v.Var(pub, TagPublicKey))
	assert.Error(t, v.Var("00", TagPublicKey))
	assert.NoError(t, v.Var("a.b.c.d.e", TagCompactJWE))
	assert.Error(t, v.Var("a.b.c.d", TagCompactJWE))
}

// TestNilTarget 测试空目标
func TestNilTarget(t *testing.T) {
	assert.ErrorIs(t, New().Struct(nil), ErrNilTarget)
	assert.False(t, IsValidationError(ErrNilTarget))
}

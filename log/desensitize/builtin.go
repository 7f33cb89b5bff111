package desensitize

const masked = "******"

var (
	// SecretFieldRule 私钥与派生密钥字段：请求体 privateKey、密钥对输出 pvt、
	// 日志字段 private_key，以及 cek 与 secret
	SecretFieldRule = must(NewMaskRule("secret_fields", masked,
		"privateKey", "pvt", "private_key", "cek", "secret"))

	// ScalarRule 独立出现的 32 字节十六进制串（私钥标量或共享密钥）
	// 公钥是更长的连续十六进制串，不会被 \b 边界匹配
	ScalarRule = MustNewContentRule("scalar", `\b[0-9a-fA-F]{64}\b`, "[REDACTED]")
)

// KeyMaterialRules 返回密钥相关的内置规则，按应用顺序排列
func KeyMaterialRules() []Rule {
	return []Rule{SecretFieldRule, ScalarRule}
}

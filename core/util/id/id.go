package id

import (
	"github.com/google/uuid"
)

// RequestID 生成请求 ID (UUID v4)
func RequestID() string {
	return uuid.NewString()
}

// KeyID 生成会话 key id
// 使用 UUID v7，按生成时间有序，便于在日志里对齐同一会话的密钥
func KeyID() string {
	u, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return u.String()
}

// Valid 判断 s 是否为合法 UUID
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}

package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Level 二维码纠错级别
type Level = qrcode.RecoveryLevel

const (
	Low     Level = qrcode.Low
	Medium  Level = qrcode.Medium
	High    Level = qrcode.High
	Highest Level = qrcode.Highest
)

// DefaultSize PNG 边长(像素)
const DefaultSize = 256

// PNG 生成二维码 PNG
// 公钥线格式有 182 个字符，使用 Medium 纠错即可容纳
func PNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(content, Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qrcode: encode: %w", err)
	}
	return png, nil
}

// WriteFile 生成二维码并写入 PNG 文件
func WriteFile(content string, size int, filename string) error {
	if size <= 0 {
		size = DefaultSize
	}
	if err := qrcode.WriteFile(content, Medium, size, filename); err != nil {
		return fmt.Errorf("qrcode: write %s: %w", filename, err)
	}
	return nil
}

// Terminal 生成适合终端显示的二维码字符串
func Terminal(content string) (string, error) {
	q, err := qrcode.New(content, Low)
	if err != nil {
		return "", fmt.Errorf("qrcode: encode: %w", err)
	}
	return q.ToSmallString(false), nil
}

package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{":8080", true},
		{"127.0.0.1:8080", true},
		{"[::1]:443", true},
		{"localhost:65535", true},
		{"api.example.com:80", true},
		{"", false},
		{"8080", false},
		{":0", false},
		{":65536", false},
		{":http", false},
		{"-bad.example.com:80", false},
		{"a..b:80", false},
		{"under_score:80", false},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateAddress(tt.addr))
		})
	}
}

package redis

import (
	"errors"
	"time"
)

var (
	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("redis: invalid configuration")
	// ErrEmptyAddrs 地址列表为空
	ErrEmptyAddrs = errors.New("redis: addrs cannot be empty")
	// ErrInvalidTimeout 超时配置无效
	ErrInvalidTimeout = errors.New("redis: invalid timeout value")
)

// Config Redis 配置（支持单机/集群/哨兵模式）
type Config struct {
	// Addrs Redis 地址列表
	// 单机模式: ["localhost:6379"]
	// 集群模式: ["node1:6379", "node2:6379"]
	// 哨兵模式: ["sentinel1:26379", "sentinel2:26379"]
	Addrs []string `json:"addrs" mapstructure:"addrs"`

	// MasterName 哨兵模式的主节点名称
	MasterName string `json:"master_name" mapstructure:"master_name"`

	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`

	// DB 数据库索引，集群模式忽略
	DB int `json:"db" mapstructure:"db"`

	DialTimeout  time.Duration `json:"dial_timeout" mapstructure:"dial_timeout" default:"5s"`
	ReadTimeout  time.Duration `json:"read_timeout" mapstructure:"read_timeout" default:"3s"`
	WriteTimeout time.Duration `json:"write_timeout" mapstructure:"write_timeout" default:"3s"`

	// PoolSize 连接池最大连接数，0 使用 go-redis 默认值
	PoolSize int `json:"pool_size" mapstructure:"pool_size"`

	// MaxRetries 命令失败后的最大重试次数，-1 禁用重试
	MaxRetries int `json:"max_retries" mapstructure:"max_retries"`
}

// Validate 验证配置
func (c *Config) Validate() error {
	if len(c.Addrs) == 0 {
		return ErrEmptyAddrs
	}
	if c.DialTimeout < 0 || c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// IsSentinel 是否为哨兵模式
func (c *Config) IsSentinel() bool {
	return c.MasterName != ""
}

// IsCluster 是否为集群模式
func (c *Config) IsCluster() bool {
	return len(c.Addrs) > 1 && c.MasterName == ""
}

// Mode 返回部署模式
func (c *Config) Mode() string {
	switch {
	case c.IsSentinel():
		return "sentinel"
	case c.IsCluster():
		return "cluster"
	default:
		return "single"
	}
}

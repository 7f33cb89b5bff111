package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/kochabx/jwekit/core/tag"
	"github.com/kochabx/jwekit/log"
)

// Client Redis 客户端，按配置选择单机/集群/哨兵模式
type Client struct {
	client redis.UniversalClient
	config Config
	logger *log.Logger
}

type Option func(*Client)

// WithLogger 设置日志记录器
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New 创建客户端并 Ping 一次，连接失败时关闭客户端
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	if err := tag.ApplyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: cfg,
		logger: log.G(),
		client: redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:        cfg.Addrs,
			MasterName:   cfg.MasterName,
			Username:     cfg.Username,
			Password:     cfg.Password,
			DB:           cfg.DB,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			PoolSize:     cfg.PoolSize,
			MaxRetries:   cfg.MaxRetries,
		}),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.Ping(ctx); err != nil {
		_ = c.client.Close()
		return nil, err
	}

	c.logger.Debug().Str("mode", cfg.Mode()).Strs("addrs", cfg.Addrs).Msg("redis client created")
	return c, nil
}

// UniversalClient 获取底层客户端
func (c *Client) UniversalClient() redis.UniversalClient {
	return c.client
}

// Ping 测试连接
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close 关闭客户端，签名适配 app.WithClose
func (c *Client) Close(context.Context) error {
	err := c.client.Close()
	c.logger.Debug().Msg("redis client closed")
	return err
}

// Stats 连接池统计
func (c *Client) Stats() *redis.PoolStats {
	return c.client.PoolStats()
}

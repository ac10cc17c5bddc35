package connpool

import "time"

// Config 连接池配置
type Config struct {
	// PoolSize 全局空闲连接保有上限
	//
	// 默认值: 20
	PoolSize int

	// IdleTimeout 空闲超时，超过后连接视为陈旧
	//
	// 默认值: 90s
	IdleTimeout time.Duration

	// MaxConnsPerHost 每端点并发连接上限
	//
	// 默认值: 6
	MaxConnsPerHost int

	// EnableKeepAlive 是否在归还时保留连接复用
	//
	// 默认值: true
	EnableKeepAlive bool
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		PoolSize:        20,
		IdleTimeout:     90 * time.Second,
		MaxConnsPerHost: 6,
		EnableKeepAlive: true,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.PoolSize <= 0 {
		return ErrInvalidConfig
	}
	if c.IdleTimeout <= 0 {
		return ErrInvalidConfig
	}
	if c.MaxConnsPerHost <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

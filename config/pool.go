package config

import "time"

// PoolConfig 连接池配置
type PoolConfig struct {
	// PoolSize 全池保留的空闲连接上限
	//
	// 归还连接时若空闲总数已达该值，连接被关闭而非放回。
	// 默认值: 20
	PoolSize int `json:"pool_size"`

	// IdleTimeout 空闲连接超时
	//
	// 超过该时长未被复用的空闲连接在下一次 Acquire 时被惰性丢弃。
	// 默认值: 90s
	IdleTimeout Duration `json:"idle_timeout"`

	// MaxConnsPerHost 单端点活跃连接上限
	//
	// 达到上限时 Acquire 阻塞等待其他连接归还（可被 ctx 取消）。
	// 默认值: 6
	MaxConnsPerHost int `json:"max_connections_per_host"`

	// EnableKeepAlive 是否保留归还的连接供复用
	//
	// 关闭后归还的连接被直接关闭。
	// 默认值: true
	EnableKeepAlive bool `json:"enable_keepalive"`
}

// DefaultPoolConfig 返回默认的连接池配置
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		PoolSize:        20,
		IdleTimeout:     Duration(90 * time.Second),
		MaxConnsPerHost: 6,
		EnableKeepAlive: true,
	}
}

// Validate 验证连接池配置
func (c *PoolConfig) Validate() error {
	if c.PoolSize <= 0 {
		return ErrInvalidConfig
	}
	if c.IdleTimeout < 0 {
		return ErrInvalidConfig
	}
	if c.MaxConnsPerHost <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

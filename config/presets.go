package config

import "time"

// ════════════════════════════════════════════════════════════════════════════
//                              预设配置
// ════════════════════════════════════════════════════════════════════════════

// NewMobileConfig 创建移动端配置
//
// 低资源占用：较少并发、较小连接池与缓存。
func NewMobileConfig() *Config {
	cfg := NewConfig()
	cfg.Scheduler.MaxConcurrent = 4
	cfg.Pool.PoolSize = 8
	cfg.Pool.MaxConnsPerHost = 4
	cfg.Pool.IdleTimeout = Duration(60 * time.Second)
	cfg.Cache.MaxSizeBytes = 512 << 10
	return cfg
}

// NewServerConfig 创建服务器配置
//
// 高资源配置：大并发、大连接池与缓存。
func NewServerConfig() *Config {
	cfg := NewConfig()
	cfg.Scheduler.MaxConcurrent = 64
	cfg.Pool.PoolSize = 128
	cfg.Pool.MaxConnsPerHost = 32
	cfg.Cache.MaxSizeBytes = 16 << 20
	return cfg
}

// NewMinimalConfig 创建最小配置
//
// 单并发、无缓存、归还即断开，适合测试与调试。
func NewMinimalConfig() *Config {
	cfg := NewConfig()
	cfg.Scheduler.MaxConcurrent = 1
	cfg.Pool.PoolSize = 1
	cfg.Pool.MaxConnsPerHost = 1
	cfg.Pool.EnableKeepAlive = false
	cfg.Cache.Enabled = false
	return cfg
}

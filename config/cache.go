package config

// CacheConfig 响应缓存配置
type CacheConfig struct {
	// Enabled 是否启用缓存
	//
	// 禁用时 Get 恒定未命中，Store 静默成功。
	// 默认值: true
	Enabled bool `json:"enabled"`

	// MaxSizeBytes 缓存总体积上限（字节）
	//
	// 任何一次 Store 返回后都满足 current ≤ MaxSizeBytes；
	// 单条目超过该值的响应不会被缓存。
	// 默认值: 1 MiB
	MaxSizeBytes uint64 `json:"max_size_bytes"`

	// MaxAgeSeconds 条目最大存活秒数（TTL）
	//
	// 过期条目在下一次命中时被惰性移除。
	// 默认值: 3600（1 小时）
	MaxAgeSeconds uint64 `json:"max_age_seconds"`
}

// DefaultCacheConfig 返回默认的缓存配置
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:       true,
		MaxSizeBytes:  1 << 20,
		MaxAgeSeconds: 3600,
	}
}

// Validate 验证缓存配置
func (c *CacheConfig) Validate() error {
	if c.Enabled && c.MaxSizeBytes == 0 {
		return ErrInvalidConfig
	}
	return nil
}

package respcache

// Config 响应缓存配置
type Config struct {
	// Enabled 是否启用缓存
	//
	// 默认值: true
	Enabled bool

	// MaxSizeBytes 缓存总字节数上限
	//
	// 默认值: 1 MiB
	MaxSizeBytes uint64

	// MaxAgeSeconds 条目存活时间（秒）
	//
	// 默认值: 3600
	MaxAgeSeconds uint64
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		MaxSizeBytes:  1 << 20,
		MaxAgeSeconds: 3600,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.Enabled && c.MaxSizeBytes == 0 {
		return ErrInvalidConfig
	}
	return nil
}

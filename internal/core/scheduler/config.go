package scheduler

// Config 调度器配置
type Config struct {
	// MaxConcurrent 并发请求上限
	//
	// 默认值: 6
	MaxConcurrent int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		MaxConcurrent: 6,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.MaxConcurrent <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

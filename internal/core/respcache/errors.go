package respcache

import "errors"

// 缓存错误定义
var (
	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("respcache: invalid config")
)

package scheduler

import "errors"

// 调度器错误定义
var (
	// ErrRequestNotFound 请求 ID 未知（已完成、已取消或从未存在）
	ErrRequestNotFound = errors.New("scheduler: request not found")

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("scheduler: invalid config")
)

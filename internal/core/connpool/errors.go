package connpool

import "errors"

// 连接池错误定义
var (
	// ErrPoolClosed 连接池已关闭
	ErrPoolClosed = errors.New("connpool: pool closed")

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("connpool: invalid config")

	// ErrNilTransport 未提供传输层
	ErrNilTransport = errors.New("connpool: nil transport")
)

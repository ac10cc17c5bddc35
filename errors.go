package netstack

import "errors"

// 网络栈错误定义
var (
	// ErrStackClosed 网络栈已关闭
	ErrStackClosed = errors.New("netstack: stack closed")

	// ErrAlreadyStarted 网络栈已启动
	ErrAlreadyStarted = errors.New("netstack: already started")

	// ErrNotStarted 网络栈未启动
	ErrNotStarted = errors.New("netstack: not started")

	// ErrNilTransport 未提供传输层
	ErrNilTransport = errors.New("netstack: transport is required")

	// ErrNilRequest 请求为空
	ErrNilRequest = errors.New("netstack: nil request")

	// ErrNetworkOffline 当前处于离线模式
	ErrNetworkOffline = errors.New("netstack: network is offline")
)

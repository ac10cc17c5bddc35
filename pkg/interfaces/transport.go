package interfaces

import (
	"context"

	"github.com/dep2p/go-netstack/pkg/types"
)

// TransportConn 传输层连接句柄
//
// 对核心完全透明：核心只负责池化与生命周期，
// 永远不检查流经它的字节。
type TransportConn interface {
	// Close 关闭底层连接
	Close() error
}

// Transport 外部传输层能力
//
// 协议握手、帧编解码、TLS、名字解析都在这一侧，属于核心的
// 外部协作者。核心只通过 Dial 建立连接、通过 RoundTrip 执行
// 一次请求往返。
type Transport interface {
	// Dial 建立到端点的新连接
	//
	// 这是真实的网络 I/O；失败即 ConnectionFailed，错误原样
	// 上抛给 Acquire 的调用方。
	Dial(ctx context.Context, ep types.Endpoint) (TransportConn, error)

	// RoundTrip 在给定连接上执行一次请求往返
	RoundTrip(ctx context.Context, conn TransportConn, req *types.Request) (*types.Response, error)
}

package interfaces

import (
	"context"
	"time"

	"github.com/dep2p/go-netstack/pkg/types"
)

// Connection 池化连接
//
// 连接在被借出期间由借用方独占；归还（Release）后回到空闲列表
// 或被关闭。核心永远不会让两个调用方同时访问同一个连接。
type Connection interface {
	// ID 连接的唯一标识（用于日志与复用断言）
	ID() string

	// Endpoint 连接所属的端点
	Endpoint() types.Endpoint

	// LastUsed 最近一次归还时间
	LastUsed() time.Time

	// Transport 返回底层传输句柄（对核心透明）
	Transport() TransportConn
}

// ConnectionPool 连接池
//
// 按端点复用连接：Acquire 优先复用空闲连接（惰性丢弃超过
// IdleTimeout 的陈旧项），未命中时通过 Transport 建立新连接。
// 每端点活跃连接数受 MaxConnsPerHost 约束，达到上限时 Acquire
// 阻塞等待（可被 ctx 取消）。
type ConnectionPool interface {
	// Acquire 获取一个到指定端点的连接
	//
	// 这是流水线的主要阻塞点：池未命中时会执行真实的网络连接。
	// 建连失败时错误原样返回，且不做任何计数（不会泄漏容量）。
	Acquire(ctx context.Context, ep types.Endpoint) (Connection, error)

	// Release 归还连接
	//
	// 若池禁用 keep-alive，连接被直接关闭而非放回；
	// 否则刷新其 LastUsed 并追加到端点的空闲列表。
	Release(conn Connection)

	// Discard 丢弃连接（传输层出错后调用，不放回空闲列表）
	Discard(conn Connection)

	// Stats 返回连接池统计快照
	Stats() PoolStats

	// Close 关闭连接池，关闭所有空闲连接
	Close() error
}

// PoolStats 连接池统计快照
type PoolStats struct {
	// IdleTotal 所有端点的空闲连接总数
	IdleTotal int

	// ActiveTotal 所有端点的借出连接总数
	ActiveTotal int

	// PerEndpoint 各端点的 (空闲, 活跃) 计数
	PerEndpoint map[types.Endpoint]EndpointStats
}

// EndpointStats 单端点连接计数
type EndpointStats struct {
	Idle   int
	Active int
}

package connpool

import (
	"time"

	"github.com/google/uuid"

	pkgif "github.com/dep2p/go-netstack/pkg/interfaces"
	"github.com/dep2p/go-netstack/pkg/types"
)

// pooledConn 池化连接
//
// lastUsed 仅由连接池在持锁状态下更新。
type pooledConn struct {
	id       string
	endpoint types.Endpoint
	lastUsed time.Time
	tc       pkgif.TransportConn
}

// 确保实现接口
var _ pkgif.Connection = (*pooledConn)(nil)

// newPooledConn 包装一条底层传输连接
func newPooledConn(ep types.Endpoint, tc pkgif.TransportConn, now time.Time) *pooledConn {
	return &pooledConn{
		id:       uuid.New().String(),
		endpoint: ep,
		lastUsed: now,
		tc:       tc,
	}
}

// ID 返回连接唯一标识
func (c *pooledConn) ID() string {
	return c.id
}

// Endpoint 返回连接所属端点
func (c *pooledConn) Endpoint() types.Endpoint {
	return c.endpoint
}

// LastUsed 返回最近一次归还时间
func (c *pooledConn) LastUsed() time.Time {
	return c.lastUsed
}

// Transport 返回底层传输连接
func (c *pooledConn) Transport() pkgif.TransportConn {
	return c.tc
}

// close 关闭底层连接
func (c *pooledConn) close() error {
	return c.tc.Close()
}

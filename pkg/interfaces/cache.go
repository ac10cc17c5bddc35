package interfaces

import (
	"time"

	"github.com/dep2p/go-netstack/pkg/types"
)

// CachedResponse 缓存命中结果
//
// Response 是存储副本的深拷贝，调用方可以随意修改。
type CachedResponse struct {
	// Response 缓存的响应副本
	Response *types.Response

	// CachedAt 入缓存时间
	CachedAt time.Time

	// ExpiresAt 过期时间
	ExpiresAt time.Time
}

// Age 返回该缓存项的已存活时长
func (c *CachedResponse) Age(now time.Time) time.Duration {
	if now.Before(c.CachedAt) {
		return 0
	}
	return now.Sub(c.CachedAt)
}

// ResponseCache 响应缓存
//
// 有界内存的新鲜度缓存：TTL 惰性过期 + 严格 LRU 体积驱逐。
// 缓存键由规范化 URL 与 HTTP 方法共同构成，同一 URL 的 GET 与
// POST 占用独立条目。所有公开操作对调用方都不可失败——
// 资源耗尽（条目过大）静默退化为"不缓存"，因为缓存是优化
// 而非正确性要求。
type ResponseCache interface {
	// Get 查询缓存
	//
	// 未命中返回 nil。命中但已过期的条目被当场移除（惰性过期，
	// 对外与未命中无异，但会修改内部状态）；命中且新鲜时返回
	// 副本并刷新其 LRU 新近度。
	Get(req *types.Request) *CachedResponse

	// Store 写入缓存
	//
	// 缓存全局禁用或条目单体超过 MaxSizeBytes 时静默成功（不写入）。
	// 否则按严格 LRU 逐出直至 current+new ≤ MaxSizeBytes 再插入。
	Store(req *types.Request, resp *types.Response)

	// Clear 清空缓存
	Clear()

	// CurrentSize 返回当前占用字节数
	CurrentSize() uint64

	// EntryCount 返回当前条目数
	EntryCount() int

	// IsEnabled 缓存是否启用
	IsEnabled() bool
}

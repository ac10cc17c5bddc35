package respcache

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	lru "github.com/hashicorp/golang-lru/v2/simplelru"

	pkgif "github.com/dep2p/go-netstack/pkg/interfaces"
	"github.com/dep2p/go-netstack/pkg/lib/log"
	"github.com/dep2p/go-netstack/pkg/types"
)

var logger = log.Logger("core/respcache")

// 条目数上限的推导参数：按平均 10 KiB 估算单条目大小，下限 16 条
const (
	avgEntrySize = 10240
	minEntries   = 16
)

// entry 缓存条目
type entry struct {
	resp      *types.Response
	cachedAt  time.Time
	expiresAt time.Time
	size      uint64
}

// Cache 响应缓存实现
//
// 实现 pkgif.ResponseCache 接口。
// LRU 按条目数定容，字节容量由 currentSize 单独核算；
// 驱逐回调负责扣减字节数，保证两套账目一致。
type Cache struct {
	cfg   Config
	clock clock.Clock

	mu          sync.Mutex
	entries     *lru.LRU[cacheKey, *entry]
	currentSize uint64
}

// 确保实现接口
var _ pkgif.ResponseCache = (*Cache)(nil)

// New 创建响应缓存
func New(cfg Config) (*Cache, error) {
	return NewWithClock(cfg, clock.New())
}

// NewWithClock 创建响应缓存并指定时钟源（测试用）
func NewWithClock(cfg Config, clk clock.Clock) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Cache{
		cfg:   cfg,
		clock: clk,
	}

	capacity := int(cfg.MaxSizeBytes / avgEntrySize)
	if capacity < minEntries {
		capacity = minEntries
	}

	entries, err := lru.NewLRU[cacheKey, *entry](capacity, c.onEvict)
	if err != nil {
		return nil, err
	}
	c.entries = entries

	return c, nil
}

// onEvict 驱逐回调，扣减字节账目
//
// 由 LRU 在 Remove/RemoveOldest/Purge 及容量驱逐时回调，此时已持锁。
func (c *Cache) onEvict(_ cacheKey, e *entry) {
	c.currentSize -= e.size
}

// ============================================================================
//                              读写操作
// ============================================================================

// Get 查询缓存的响应
//
// 命中时刷新条目的 LRU 位次并返回响应副本；
// 已过期的条目就地移除并按未命中处理。
func (c *Cache) Get(req *types.Request) *pkgif.CachedResponse {
	if !c.cfg.Enabled {
		return nil
	}

	key := makeKey(req)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Peek(key)
	if !ok {
		return nil
	}

	// 到达 expiresAt 即视为过期
	if !c.clock.Now().Before(e.expiresAt) {
		c.entries.Remove(key)
		logger.Debug("缓存条目已过期", "method", req.Method, "url", req.URL)
		return nil
	}

	// 刷新访问顺序
	c.entries.Get(key)

	return &pkgif.CachedResponse{
		Response:  e.resp.Clone(),
		CachedAt:  e.cachedAt,
		ExpiresAt: e.expiresAt,
	}
}

// Store 写入响应
//
// 缓存未启用或单条超过容量上限时静默跳过。
// 同键写入先移除旧条目再入账；容量不足时从最久未用侧驱逐直到放得下。
func (c *Cache) Store(req *types.Request, resp *types.Response) {
	if !c.cfg.Enabled {
		return
	}

	size := resp.BodySize()
	if size > c.cfg.MaxSizeBytes {
		logger.Debug("响应超过缓存容量，跳过", "url", req.URL, "size", size)
		return
	}

	key := makeKey(req)
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	// 替换旧条目，驱逐回调扣减旧账
	c.entries.Remove(key)

	for c.currentSize+size > c.cfg.MaxSizeBytes {
		if _, _, ok := c.entries.RemoveOldest(); !ok {
			break
		}
	}

	c.entries.Add(key, &entry{
		resp:      resp.Clone(),
		cachedAt:  now,
		expiresAt: now.Add(time.Duration(c.cfg.MaxAgeSeconds) * time.Second),
		size:      size,
	})
	c.currentSize += size

	logger.Debug("响应已缓存", "method", req.Method, "url", req.URL, "size", size)
}

// ============================================================================
//                              维护操作
// ============================================================================

// Clear 清空全部缓存条目
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Purge()
	logger.Info("缓存已清空")
}

// CurrentSize 返回当前占用字节数
func (c *Cache) CurrentSize() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentSize
}

// EntryCount 返回当前条目数
func (c *Cache) EntryCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// IsEnabled 返回缓存是否启用
func (c *Cache) IsEnabled() bool {
	return c.cfg.Enabled
}

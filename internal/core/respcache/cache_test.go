package respcache

import (
	"fmt"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-netstack/pkg/types"
)

// ============================================================================
//                              测试辅助
// ============================================================================

func newTestCache(t *testing.T, cfg Config) (*Cache, *clock.Mock) {
	t.Helper()
	clk := clock.NewMock()
	c, err := NewWithClock(cfg, clk)
	if err != nil {
		t.Fatalf("NewWithClock() 失败: %v", err)
	}
	return c, clk
}

func cacheRequest(url string) *types.Request {
	return &types.Request{Method: "GET", URL: url}
}

func cacheResponse(bodySize int) *types.Response {
	return &types.Response{
		Status:     200,
		StatusText: "OK",
		Body:       make([]byte, bodySize),
	}
}

// ============================================================================
//                              基础读写测试
// ============================================================================

func TestStoreAndGet(t *testing.T) {
	c, _ := newTestCache(t, DefaultConfig())
	req := cacheRequest("https://example.com/a")

	c.Store(req, cacheResponse(100))

	cached := c.Get(req)
	if cached == nil {
		t.Fatal("写入后应能命中")
	}
	if cached.Response.Status != 200 {
		t.Errorf("Status = %d, want 200", cached.Response.Status)
	}
	if got := c.CurrentSize(); got != 100 {
		t.Errorf("CurrentSize = %d, want 100", got)
	}
	if got := c.EntryCount(); got != 1 {
		t.Errorf("EntryCount = %d, want 1", got)
	}
}

func TestGet_Miss(t *testing.T) {
	c, _ := newTestCache(t, DefaultConfig())

	if cached := c.Get(cacheRequest("https://example.com/missing")); cached != nil {
		t.Errorf("未写入的键应未命中, got %+v", cached)
	}
}

// 缓存键区分方法：GET 与 HEAD 同 URL 互不命中
func TestGet_KeyIncludesMethod(t *testing.T) {
	c, _ := newTestCache(t, DefaultConfig())

	getReq := &types.Request{Method: "GET", URL: "https://example.com/a"}
	headReq := &types.Request{Method: "HEAD", URL: "https://example.com/a"}

	c.Store(getReq, cacheResponse(50))

	if c.Get(headReq) != nil {
		t.Error("HEAD 不应命中 GET 的条目")
	}
	if c.Get(getReq) == nil {
		t.Error("GET 应命中自己的条目")
	}
}

// 返回的是副本，调用方修改不影响缓存
func TestGet_ReturnsClone(t *testing.T) {
	c, _ := newTestCache(t, DefaultConfig())
	req := cacheRequest("https://example.com/a")

	c.Store(req, cacheResponse(10))

	first := c.Get(req)
	first.Response.Body[0] = 0xFF
	first.Response.Header = map[string]string{"X-Mutated": "yes"}

	second := c.Get(req)
	if second.Response.Body[0] == 0xFF {
		t.Error("修改返回值不应影响缓存内容")
	}
}

// 同键重写替换旧条目并更新账目
func TestStore_ReplaceSameKey(t *testing.T) {
	c, _ := newTestCache(t, DefaultConfig())
	req := cacheRequest("https://example.com/a")

	c.Store(req, cacheResponse(100))
	c.Store(req, cacheResponse(300))

	if got := c.CurrentSize(); got != 300 {
		t.Errorf("替换后 CurrentSize = %d, want 300", got)
	}
	if got := c.EntryCount(); got != 1 {
		t.Errorf("替换后 EntryCount = %d, want 1", got)
	}
}

// ============================================================================
//                              TTL 测试
// ============================================================================

// 过期条目按未命中处理并被就地移除
func TestGet_ExpiredEntryRemoved(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAgeSeconds = 60
	c, clk := newTestCache(t, cfg)
	req := cacheRequest("https://example.com/a")

	c.Store(req, cacheResponse(100))

	clk.Add(61 * time.Second)

	if cached := c.Get(req); cached != nil {
		t.Errorf("过期条目应未命中, got %+v", cached)
	}
	if got := c.EntryCount(); got != 0 {
		t.Errorf("过期条目应被移除, EntryCount = %d", got)
	}
	if got := c.CurrentSize(); got != 0 {
		t.Errorf("过期移除后 CurrentSize = %d, want 0", got)
	}
}

// 恰好到达 expiresAt 即视为过期
func TestGet_ExpiresAtBoundary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAgeSeconds = 60
	c, clk := newTestCache(t, cfg)
	req := cacheRequest("https://example.com/a")

	c.Store(req, cacheResponse(100))

	clk.Add(60 * time.Second)

	if cached := c.Get(req); cached != nil {
		t.Errorf("到达 expiresAt 应未命中, got %+v", cached)
	}
	if got := c.EntryCount(); got != 0 {
		t.Errorf("到期条目应被移除, EntryCount = %d", got)
	}
}

func TestGet_WithinTTL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAgeSeconds = 60
	c, clk := newTestCache(t, cfg)
	req := cacheRequest("https://example.com/a")

	c.Store(req, cacheResponse(100))
	clk.Add(59 * time.Second)

	cached := c.Get(req)
	if cached == nil {
		t.Fatal("TTL 内应命中")
	}
	if got := cached.Age(clk.Now()); got != 59*time.Second {
		t.Errorf("Age = %v, want 59s", got)
	}
}

// ============================================================================
//                              容量与驱逐测试（场景 3）
// ============================================================================

// 超出字节容量时从最久未用侧驱逐
func TestStore_EvictsLRU(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSizeBytes = 1000
	c, _ := newTestCache(t, cfg)

	reqA := cacheRequest("https://example.com/a")
	reqB := cacheRequest("https://example.com/b")
	reqC := cacheRequest("https://example.com/c")

	c.Store(reqA, cacheResponse(400))
	c.Store(reqB, cacheResponse(400))

	// 触发 A 的 LRU 位次刷新，使 B 成为最久未用
	c.Get(reqA)

	c.Store(reqC, cacheResponse(400))

	if c.Get(reqB) != nil {
		t.Error("最久未用的 B 应被驱逐")
	}
	if c.Get(reqA) == nil {
		t.Error("最近访问的 A 不应被驱逐")
	}
	if c.Get(reqC) == nil {
		t.Error("新写入的 C 应存在")
	}
	if got := c.CurrentSize(); got != 800 {
		t.Errorf("驱逐后 CurrentSize = %d, want 800", got)
	}
}

// 单条超过容量上限的响应静默跳过
func TestStore_OversizedSkipped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSizeBytes = 1000
	c, _ := newTestCache(t, cfg)

	reqA := cacheRequest("https://example.com/a")
	c.Store(reqA, cacheResponse(400))

	big := cacheRequest("https://example.com/big")
	c.Store(big, cacheResponse(2000))

	if c.Get(big) != nil {
		t.Error("超限响应不应被缓存")
	}
	if c.Get(reqA) == nil {
		t.Error("超限写入不应扰动现有条目")
	}
	if got := c.CurrentSize(); got != 400 {
		t.Errorf("CurrentSize = %d, want 400", got)
	}
}

// 容量账目在任意写入序列下保持 ≤ 上限
func TestStore_SizeNeverExceedsLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSizeBytes = 2048
	c, _ := newTestCache(t, cfg)

	for i := 0; i < 50; i++ {
		req := cacheRequest(fmt.Sprintf("https://example.com/r%d", i))
		c.Store(req, cacheResponse(100+i*17))
		if got := c.CurrentSize(); got > cfg.MaxSizeBytes {
			t.Fatalf("第 %d 次写入后 CurrentSize = %d 超过上限 %d", i, got, cfg.MaxSizeBytes)
		}
	}
}

// ============================================================================
//                              开关与维护测试
// ============================================================================

func TestDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	c, _ := newTestCache(t, cfg)
	req := cacheRequest("https://example.com/a")

	c.Store(req, cacheResponse(100))

	if c.Get(req) != nil {
		t.Error("未启用时 Get 应返回 nil")
	}
	if c.IsEnabled() {
		t.Error("IsEnabled 应返回 false")
	}
	if got := c.CurrentSize(); got != 0 {
		t.Errorf("未启用时 CurrentSize = %d, want 0", got)
	}
}

func TestClear(t *testing.T) {
	c, _ := newTestCache(t, DefaultConfig())

	for i := 0; i < 5; i++ {
		c.Store(cacheRequest(fmt.Sprintf("https://example.com/r%d", i)), cacheResponse(100))
	}
	c.Clear()

	if got := c.EntryCount(); got != 0 {
		t.Errorf("Clear 后 EntryCount = %d, want 0", got)
	}
	if got := c.CurrentSize(); got != 0 {
		t.Errorf("Clear 后 CurrentSize = %d, want 0", got)
	}
}

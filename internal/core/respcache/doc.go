// Package respcache 实现有界内存的响应缓存
//
// 核心功能：
//   - TTL 过期 + LRU 驱逐的双重淘汰策略
//   - 以字节数为准的容量上限，超限时从最久未用侧驱逐
//   - 过期条目在读取时惰性移除
//   - 单条超过容量上限的响应静默跳过，不扰动现有条目
//
// 快速开始：
//
//	cache, err := respcache.New(respcache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
//	if cached := cache.Get(req); cached != nil {
//		return cached.Response
//	}
//	// ... 发起请求 ...
//	cache.Store(req, resp)
//
// 注意事项：
//   - 缓存键为 (method, url)，调用方负责只缓存可缓存的响应
//   - Get 返回的响应是副本，调用方可任意修改
package respcache

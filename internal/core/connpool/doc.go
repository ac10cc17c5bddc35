// Package connpool 实现按端点复用的连接池
//
// 核心功能：
//   - 按 (scheme, host, port) 端点维护空闲连接列表
//   - 获取时惰性剔除超过空闲超时的陈旧连接
//   - 每端点并发连接上限（信号量阻塞，支持 ctx 取消）
//   - 全局空闲连接数量上限，超出时关闭而非滞留
//
// 快速开始：
//
//	pool, err := connpool.New(connpool.DefaultConfig(), transport)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	conn, err := pool.Acquire(ctx, endpoint)
//	if err != nil {
//		return err
//	}
//	// ... 使用连接 ...
//	pool.Release(conn)
//
// 注意事项：
//   - Release 与 Discard 必须恰好调用其一，否则端点信号量泄漏
//   - 拨号失败不占用任何池状态，调用方可直接重试
package connpool

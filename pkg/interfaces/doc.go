// Package interfaces 定义 go-netstack 核心组件的公共接口
//
// 四个核心组件（调度器、连接池、响应缓存、带宽限速器）各自持有
// 独立状态，互不嵌套加锁；本包只声明能力接口与统计快照类型，
// 实现位于 internal/core 下的对应包。
//
// # 依赖顺序
//
// ResponseCache 与 BandwidthLimiter 是叶子组件，不依赖核心内其他组件；
// ConnectionPool 同样自包含；RequestScheduler 在结构上不依赖三者，
// 但在流水线上位于它们之前（准入门）。
package interfaces

// Package bandwidth 实现基于预约的带宽限速器
//
// 核心功能：
//   - 上下行独立限速，按字节数计算理想传输时间并预约时隙
//   - 附加延迟注入，模拟链路往返耗时
//   - 预置网络条件（Offline / Slow2G / 2G / 3G / 4G / WiFi）一键套用
//   - 上下行字节数与运行时长统计
//
// 快速开始：
//
//	limiter := bandwidth.New(bandwidth.DefaultConfig())
//	limiter.ApplyCondition(bandwidth.Condition3G)
//
//	delay, err := limiter.ThrottleDownload(ctx, uint64(len(body)))
//	if err != nil {
//		return err
//	}
//
// 注意事项：
//   - 限速值 0 表示离线（近乎无限等待），负值表示不限速
//   - 时隙在休眠前即被预约，并发调用会自然排队累积延迟
package bandwidth

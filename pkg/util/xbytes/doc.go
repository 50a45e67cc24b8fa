// Package xbytes 提供字节数与人类可读表示之间的双向转换。
//
// # 核心功能
//
//   - human.go: [Humanize] 字节数 → "1.5 KiB" / "1.5 kB" 风格字符串
//   - parse.go: [ParseSize] "10kb" / "5.2 mb" / "1 gigabyte" 风格字符串 → 字节数
//
// # 设计决策
//
//   - [Humanize] 区分二进制（步进 1024，KiB/MiB）与十进制（步进 1000，kB/MB）
//     两套单位，精度 0-3 位小数，带舍入升档保护（1023.95 B 的量级不会被
//     格式化成 "1024.0 KiB"）
//   - [ParseSize] 的全部单位后缀按 1024 的幂换算（历史口径：kb == 1024），
//     与 [Humanize] 的 metric 模式不构成往返
//   - [ParseSize] 返回 uint64：Go 侧没有 128 位整数的使用场景，
//     超出 uint64 的换算结果（约 16 EiB 以上）返回 [ErrSizeTooLarge]
//
// # 快速示例
//
//	s, _ := xbytes.Humanize(5452595.2, false, 1) // "5.2 MiB"
//	n, _ := xbytes.ParseSize("5.2 mb")           // 5452595
package xbytes

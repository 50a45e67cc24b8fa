// Package xsysinfo 提供进程与主机级的运行时信息采集和资源限制管理。
//
// # 功能概览
//
//   - [ProcessInfo]: 当前进程的内存（RSS）与 CPU 占用，带节流缓存
//   - [SysInfo]: 主机级的内存、CPU、负载与静态主机信息，带节流缓存
//   - [ProcessID] / [ProcessName]: 当前进程的 PID 与名称
//   - [SetFileLimit] / [GetFileLimit]: 进程最大打开文件数（Unix 平台生效，
//     非 Unix 返回 [ErrUnsupportedPlatform]）
//
// # 节流采样
//
// 底层指标来自 gopsutil 对 /proc 与系统调用的读取，高频轮询没有意义且
// 会让基于时间片差值的 CPU 百分比失真。读取方法按需刷新，两次真实采样
// 的间隔不低于 [MinRefreshInterval]（[ProcessInfo] 可经 SetInterval 调整，
// 上限 [MaxRefreshInterval]）。间隔内的读取直接返回缓存值，
// 并发到达的刷新请求经 singleflight 合并为一次采样。
//
// 采样的单项失败保留对应旧值，不影响其余指标的更新。
//
// # 平台支持
//
// SetFileLimit 和 GetFileLimit 在所有 Unix 平台（Linux、macOS、FreeBSD 等）上
// 通过 RLIMIT_NOFILE 系统调用实现。在 Windows 等非 Unix 平台上返回
// [ErrUnsupportedPlatform]。参数校验（如零值检查）在所有平台上行为一致。
// 指标采集依赖 gopsutil 的平台支持，个别字段（如 Buffers/Cached）
// 仅在 Linux 上有值。
package xsysinfo

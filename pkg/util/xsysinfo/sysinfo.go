package xsysinfo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"golang.org/x/sync/singleflight"

	"github.com/omeyang/ipkit/pkg/util/xbytes"
)

// SysStatic 是启动后不再变化的主机信息，采集一次后复用。
type SysStatic struct {
	Hostname  string `json:"hostname"`
	OSName    string `json:"os_name"`
	OSVersion string `json:"os_ver"`
	Kernel    string `json:"kernel"`
	Distro    string `json:"distro"`
	BootTime  uint64 `json:"boot_time"`
	NumCores  int    `json:"num_cores"`
}

// MemoryStats 是一次内存采样的快照（单位字节）。
type MemoryStats struct {
	Total     uint64 `json:"total"`
	Free      uint64 `json:"free"`
	Avail     uint64 `json:"avail"`
	Buffers   uint64 `json:"buffers"`
	Cached    uint64 `json:"cached"`
	SwapTotal uint64 `json:"swap_total"`
	SwapUsed  uint64 `json:"swap_used"`
}

// SysDynamic 是一次动态指标采样的快照。
type SysDynamic struct {
	Mem  MemoryStats `json:"mem"`
	CPU  float64     `json:"cpu"`
	Load [3]float64  `json:"load"`
	When time.Time   `json:"when"`
}

// SysInfo 提供主机级的内存、CPU 与负载信息，带节流缓存。
//
// 静态信息在构造时采集一次，动态指标由读取方法按需刷新，
// 刷新频率不超过 [MinRefreshInterval]。并发读取安全，
// 同一时刻的并发刷新经 singleflight 合并为一次采样。
type SysInfo struct {
	// Static 是构造时采集的静态主机信息。
	Static SysStatic

	sf singleflight.Group

	mu  sync.RWMutex
	dyn SysDynamic
}

// NewSysInfo 采集静态主机信息并完成动态指标的首次采样。
// 静态信息的单项采集失败以零值补位，不阻止构造；
// ctx 控制底层 /proc 与系统调用采集的超时。
func NewSysInfo(ctx context.Context) (*SysInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := &SysInfo{Static: collectStatic(ctx)}
	s.sample(ctx)
	return s, nil
}

// collectStatic 采集静态主机信息，失败项以 "unknown"/零值补位。
func collectStatic(ctx context.Context) SysStatic {
	st := SysStatic{
		Hostname:  "unknown",
		OSName:    "unknown",
		OSVersion: "unknown",
		Kernel:    "unknown",
		NumCores:  1,
	}
	if info, err := host.InfoWithContext(ctx); err == nil {
		st.Hostname = info.Hostname
		st.OSName = info.OS
		st.OSVersion = info.PlatformVersion
		st.Kernel = info.KernelVersion
		st.Distro = info.Platform
		st.BootTime = info.BootTime
	}
	if n, err := cpu.CountsWithContext(ctx, false); err == nil && n > 0 {
		st.NumCores = n
	}
	return st
}

// refresh 按需采样：距上次采样不足 [MinRefreshInterval] 时直接返回缓存。
func (s *SysInfo) refresh(ctx context.Context) {
	s.mu.RLock()
	stale := time.Since(s.dyn.When) >= MinRefreshInterval
	s.mu.RUnlock()
	if !stale {
		return
	}
	_, _, _ = s.sf.Do("refresh", func() (any, error) {
		s.sample(ctx)
		return nil, nil
	})
}

// sample 无条件执行一次动态指标采样并更新缓存。
// 单项采集失败保留对应旧值。
func (s *SysInfo) sample(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm != nil {
		s.dyn.Mem.Total = vm.Total
		s.dyn.Mem.Free = vm.Free
		s.dyn.Mem.Avail = vm.Available
		s.dyn.Mem.Buffers = vm.Buffers
		s.dyn.Mem.Cached = vm.Cached
	}
	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil && sw != nil {
		s.dyn.Mem.SwapTotal = sw.Total
		s.dyn.Mem.SwapUsed = sw.Used
	}
	// interval 0: 相对上一次调用的时间片计算全局占用
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.dyn.CPU = pcts[0]
	}
	if avg, err := load.AvgWithContext(ctx); err == nil && avg != nil {
		s.dyn.Load = [3]float64{avg.Load1, avg.Load5, avg.Load15}
	}
	s.dyn.When = time.Now()
}

// Snapshot 返回动态指标的一致快照。调用时按需刷新。
func (s *SysInfo) Snapshot(ctx context.Context) SysDynamic {
	s.refresh(ctx)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dyn
}

// Mem 返回总内存字节数。调用时按需刷新。
func (s *SysInfo) Mem(ctx context.Context) uint64 {
	return s.Snapshot(ctx).Mem.Total
}

// MemUsed 返回已用内存字节数（total - available）。调用时按需刷新。
func (s *SysInfo) MemUsed(ctx context.Context) uint64 {
	d := s.Snapshot(ctx)
	return d.Mem.Total - d.Mem.Avail
}

// MemAvail 返回可用内存字节数。调用时按需刷新。
func (s *SysInfo) MemAvail(ctx context.Context) uint64 {
	return s.Snapshot(ctx).Mem.Avail
}

// MemFree 返回空闲内存字节数。调用时按需刷新。
func (s *SysInfo) MemFree(ctx context.Context) uint64 {
	return s.Snapshot(ctx).Mem.Free
}

// CPU 返回全局 CPU 占用百分比。调用时按需刷新。
func (s *SysInfo) CPU(ctx context.Context) float64 {
	return s.Snapshot(ctx).CPU
}

// Load 返回最近 1、5、15 分钟的系统负载。调用时按需刷新。
func (s *SysInfo) Load(ctx context.Context) (l1, l5, l15 float64) {
	d := s.Snapshot(ctx)
	return d.Load[0], d.Load[1], d.Load[2]
}

// Summary 返回单行摘要，
// 格式 "mem: 1.00 GiB used: 200.00 MiB avail: 800.00 MiB CPU: 5.55% load: 0.30 0.20 0.10"。
func (s *SysInfo) Summary(ctx context.Context) string {
	d := s.Snapshot(ctx)
	return fmt.Sprintf("mem: %s used: %s avail: %s CPU: %.2f%% load: %.2f %.2f %.2f",
		num2human(d.Mem.Total),
		num2human(d.Mem.Total-d.Mem.Avail),
		num2human(d.Mem.Avail),
		d.CPU,
		d.Load[0], d.Load[1], d.Load[2],
	)
}

// num2human 将字节数转为二进制单位的人类可读形式。
func num2human(n uint64) string {
	s, err := xbytes.Humanize(float64(n), false, 2)
	if err != nil {
		return "0.0"
	}
	return s
}

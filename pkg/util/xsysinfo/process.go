package xsysinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sync/singleflight"
)

// 采样间隔的允许范围。下限是硬约束：更高频率的轮询适得其反，
// 且受底层 /proc 采样方式影响会产生失真的 CPU 百分比。
const (
	MinRefreshInterval = 200 * time.Millisecond
	MaxRefreshInterval = 5 * time.Second
)

// osExecutable 是 os.Executable 的包级变量，支持测试中 mock。
var osExecutable = os.Executable

// processName 缓存进程名称，避免每次调用都执行 readlink 系统调用。
var (
	processNameOnce  sync.Once
	processNameValue string
)

// ProcessID 返回当前进程 ID。
func ProcessID() int {
	return os.Getpid()
}

// baseName 提取路径的基础文件名。
// 对 [filepath.Base] 返回的特殊值（"."、".."、路径分隔符）返回空字符串。
func baseName(path string) string {
	name := filepath.Base(path)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

// resolveProcessName 执行实际的进程名称解析。
func resolveProcessName() string {
	if exe, err := osExecutable(); err == nil && exe != "" {
		if name := baseName(exe); name != "" {
			return name
		}
	}
	if len(os.Args) == 0 || os.Args[0] == "" {
		return ""
	}
	return baseName(os.Args[0])
}

// ProcessName 返回当前进程名称（不含路径）。
// 结果在首次调用时缓存（包括空字符串），后续调用直接返回缓存值，无系统调用开销。
//
// 优先使用 [os.Executable] 获取可执行文件路径（不受 os.Args 修改影响），
// 失败时回退到 os.Args[0]。
// 在极端情况下（所有来源均无效）返回空字符串，调用方可据此判断是否获取成功。
func ProcessName() string {
	processNameOnce.Do(func() {
		processNameValue = resolveProcessName()
	})
	return processNameValue
}

// ProcessInfo 提供当前进程的内存与 CPU 占用信息，带节流缓存。
//
// 读取方法（[ProcessInfo.Mem]、[ProcessInfo.CPU] 等）会按需刷新底层数据，
// 刷新频率不超过配置的最小间隔；间隔内的读取直接返回缓存值。
// 并发读取安全，同一时刻的并发刷新经 singleflight 合并为一次采样。
type ProcessInfo struct {
	// Pid 是当前进程 ID。
	Pid int32

	proc *process.Process
	sf   singleflight.Group

	mu   sync.RWMutex
	mem  uint64
	cpu  float64
	upd  time.Time
	ival time.Duration
}

// NewProcessInfo 创建当前进程的信息句柄并完成首次采样。
// 首次采样的 CPU 百分比恒为 0（需要两个采样点才能计算差值）。
func NewProcessInfo() (*ProcessInfo, error) {
	pid := int32(os.Getpid())
	proc, err := process.NewProcess(pid)
	if err != nil {
		return nil, fmt.Errorf("%w: pid %d: %w", ErrProcessUnavailable, pid, err)
	}
	p := &ProcessInfo{
		Pid:  pid,
		proc: proc,
		ival: MinRefreshInterval,
	}
	p.sample()
	return p, nil
}

// SetInterval 设置两次采样之间的最小间隔。
// 超出 [MinRefreshInterval, MaxRefreshInterval] 的值被就近收拢到边界。
func (p *ProcessInfo) SetInterval(d time.Duration) {
	d = min(max(d, MinRefreshInterval), MaxRefreshInterval)
	p.mu.Lock()
	p.ival = d
	p.mu.Unlock()
}

// refresh 按需采样：距上次采样不足最小间隔时直接返回缓存。
// 并发到达的刷新请求合并为一次真实采样。
func (p *ProcessInfo) refresh() {
	p.mu.RLock()
	stale := time.Since(p.upd) >= p.ival
	p.mu.RUnlock()
	if !stale {
		return
	}
	_, _, _ = p.sf.Do("refresh", func() (any, error) {
		p.sample()
		return nil, nil
	})
}

// sample 无条件执行一次真实采样并更新缓存。
// 单项采样失败时保留对应的旧值，不中断另一项的更新。
func (p *ProcessInfo) sample() {
	var mem uint64
	var cpu float64
	memOK, cpuOK := false, false

	if mi, err := p.proc.MemoryInfo(); err == nil && mi != nil {
		mem = mi.RSS
		memOK = true
	}
	// CPUPercent 基于与上一次调用之间的时间片计算占用百分比
	if pct, err := p.proc.CPUPercent(); err == nil {
		cpu = pct
		cpuOK = true
	}

	p.mu.Lock()
	if memOK {
		p.mem = mem
	}
	if cpuOK {
		p.cpu = cpu
	}
	p.upd = time.Now()
	p.mu.Unlock()
}

// Mem 返回进程的常驻内存（RSS）字节数。调用时按需刷新。
func (p *ProcessInfo) Mem() uint64 {
	p.refresh()
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mem
}

// CPU 返回进程的 CPU 占用百分比。调用时按需刷新。
// 多核机器上的值可以超过 100。
func (p *ProcessInfo) CPU() float64 {
	p.refresh()
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cpu
}

// MemString 返回人类可读的常驻内存占用，如 "1.20 GiB"。
func (p *ProcessInfo) MemString() string {
	return num2human(p.Mem())
}

// CPUString 返回人类可读的 CPU 占用，如 "10.25%"。
func (p *ProcessInfo) CPUString() string {
	return fmt.Sprintf("%.2f%%", p.CPU())
}

// String 返回单行摘要，格式 "pid: 123 mem: 10.00 MiB CPU: 5.55%"。
func (p *ProcessInfo) String() string {
	return fmt.Sprintf("pid: %d mem: %s CPU: %s", p.Pid, p.MemString(), p.CPUString())
}

package xsysinfo_test

import (
	"context"
	"fmt"

	"github.com/omeyang/ipkit/pkg/util/xsysinfo"
)

func ExampleProcessInfo() {
	p, err := xsysinfo.NewProcessInfo()
	if err != nil {
		fmt.Println("进程信息不可用:", err)
		return
	}
	// 读取方法按需刷新，间隔内的调用直接返回缓存值。
	fmt.Println(p.String()) // 形如 "pid: 1234 mem: 12.50 MiB CPU: 0.00%"
}

func ExampleSysInfo() {
	s, err := xsysinfo.NewSysInfo(context.Background())
	if err != nil {
		fmt.Println("主机信息不可用:", err)
		return
	}
	fmt.Println(s.Static.Hostname, s.Static.NumCores)
	fmt.Println(s.Summary(context.Background()))
}

func ExampleSetFileLimit() {
	// SetFileLimit 设置进程最大打开文件数（Unix 平台生效，非 Unix 返回 ErrUnsupportedPlatform）。
	// 通常在进程启动时调用一次。
	err := xsysinfo.SetFileLimit(65536)
	if err != nil {
		fmt.Println("设置文件限制失败:", err)
	}
}

func ExampleGetFileLimit() {
	soft, hard, err := xsysinfo.GetFileLimit()
	if err != nil {
		fmt.Println("查询文件限制失败:", err)
		return
	}
	fmt.Printf("soft=%d, hard=%d\n", soft, hard)
}

// ipcollapse 是 xip 地址收敛工具的命令行入口。
//
// 用法:
//
//	ipcollapse [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config   YAML 配置文件路径（可选，提供 gap/format 默认值）
//	-v, --verbose  输出跳过原因等诊断信息
//
// 命令:
//
//	collapse       将 CIDR/地址/范围收敛为最少的 CIDR 集合
//	expand         将单个 IP/CIDR/范围展开为逐个地址
//	sysinfo        查看进程与主机资源占用
//	help           显示帮助信息
//
// collapse 命令说明:
//
//	输入记号来自命令行参数、--file 指定的文件或标准输入（按空白分隔）。
//	默认宽松模式：无法解析的记号被跳过（--verbose 可查看原因）；
//	--ranges 切换为严格模式，所有记号必须是合法的 beg-end 范围，
//	任一解析失败即报错退出。
//	--gap 接受纯数字或带尺寸后缀的计数（如 "4k" = 4096），
//	非零时启用模糊合并：间隙不超过该值的相邻同族区间被并入同一块。
//	--output 将结果写入文件，父目录不存在时自动创建。
//
// expand 命令说明:
//
//	逐个展开记号，单个记号失败不中断后续记号；
//	存在失败记号时以退出码 1 结束，成功部分仍正常输出。
//
// 退出码:
//
//	0: 命令执行成功
//	1: 执行失败（输入文件不可读、展开超限、部分记号展开失败等）
//	2: 参数错误（无效 gap、未知命令、严格模式解析失败等）
//
// 示例:
//
//	ipcollapse collapse 10.0.0.0/25 10.0.0.128/25      # 输出 10.0.0.0/24
//	cat cidrs.txt | ipcollapse collapse                 # 从标准输入读取
//	ipcollapse collapse --gap 2 172.16.0.8/30 172.16.0.14/31
//	ipcollapse collapse --ranges 10.0.0.1-10.0.0.6      # 严格范围模式
//	ipcollapse expand 192.168.0.0/30                    # 逐个列出可用主机
//	ipcollapse -c ipcollapse.yaml collapse --file ips.txt -o out/cidrs.txt
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "ipcollapse",
		Usage:   "IP 地址/范围/CIDR 收敛工具",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML 配置文件路径",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "输出跳过原因等诊断信息",
			},
		},
		Commands:       createCommands(),
		DefaultCommand: "help",
		Authors: []any{
			"ipkit Team",
		},
		// 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			// ExitCoder 错误（如未知命令）的消息需在此输出，
			// 替代 HandleExitCoder 的默认 os.Exit 行为。
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
		Description: `ipcollapse 将任意顺序、可能重叠的 IPv4/IPv6 输入
（CIDR、单个地址、beg-end 范围）收敛为覆盖完全相同地址集合的
最少 CIDR 集合，并支持有界展开与模糊合并。

配置文件 (YAML，均为可选项):
  gap:    默认模糊合并间隙（同 --gap 语法）
  format: 默认输出格式 (cidr | range)`,
	}
}

func run() int {
	app := createApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandler(cancel)

	if err := app.Run(ctx, os.Args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		// CLI 框架产生的参数错误（如未知 flag、未知命令）也返回退出码 2，
		// 与文档契约"参数错误 → 退出码 2"保持一致。
		if isCLIUsageError(err) {
			// ExitErrHandler 或 flag 解析器已向 stderr 输出错误详情，此处仅设置退出码
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}

// isCLIUsageError 判断错误是否由 CLI 框架的参数解析产生。
func isCLIUsageError(err error) bool {
	if _, ok := err.(cli.ExitCoder); ok {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "flag provided but not defined") ||
		strings.HasPrefix(msg, "unknown command") ||
		strings.Contains(msg, "No help topic")
}

// setupSignalHandler 设置信号处理。
// 第一次信号优雅取消，第二次信号强制退出（退出码 130 = 128 + SIGINT）。
// 当命令阻塞在标准输入时，用户可通过再次 Ctrl+C 强制退出。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel() // 第一次信号: 优雅取消

		<-sigCh
		signal.Stop(sigCh) // 回收订阅
		os.Exit(130) // 第二次信号: 强制退出
	}()
}

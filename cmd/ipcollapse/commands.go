package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/omeyang/ipkit/pkg/util/xfile"
	"github.com/omeyang/ipkit/pkg/util/xip"
	"github.com/omeyang/ipkit/pkg/util/xsysinfo"
)

// tokenCacheSize 是记号解析缓存的容量。
// 大流量标准输入中重复记号很常见（日志导出、扫描结果），
// 缓存命中可跳过整个解析路径。
const tokenCacheSize = 4096

// exitError 表示需要非零退出码但已完成输出的场景。
// 命令内部已完成所有输出，main 只需设置退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// usageError 表示参数错误，run() 将其映射为退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createCollapseCommand(),
		createExpandCommand(),
		createSysinfoCommand(),
	}
}

// newLogger 创建诊断日志器。verbose 关闭时为 no-op。
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// createCollapseCommand 创建 collapse 子命令。
func createCollapseCommand() *cli.Command {
	return &cli.Command{
		Name:      "collapse",
		Aliases:   []string{"c"},
		Usage:     "将 CIDR/地址/范围收敛为最少的 CIDR 集合",
		ArgsUsage: "[token...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "gap",
				Aliases: []string{"g"},
				Usage:   "模糊合并间隙（纯数字或尺寸后缀，如 4k）",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "输出格式 (cidr | range)",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "从文件读取输入记号（按空白分隔）",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "结果写入文件（父目录不存在时自动创建，默认标准输出）",
			},
			&cli.BoolFlag{
				Name:  "ranges",
				Usage: "严格模式：所有记号必须是合法的 beg-end 范围",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdCollapse(ctx, cmd)
		},
	}
}

// createExpandCommand 创建 expand 子命令。
func createExpandCommand() *cli.Command {
	return &cli.Command{
		Name:      "expand",
		Aliases:   []string{"x"},
		Usage:     "将单个 IP/CIDR/范围展开为逐个地址",
		ArgsUsage: "<token...>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdExpand(ctx, cmd)
		},
	}
}

// createSysinfoCommand 创建 sysinfo 子命令。
func createSysinfoCommand() *cli.Command {
	return &cli.Command{
		Name:  "sysinfo",
		Usage: "查看进程与主机资源占用",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdSysinfo(ctx, cmd)
		},
	}
}

// cmdCollapse 执行 collapse 命令。
func cmdCollapse(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(cmd.Bool("verbose"))
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	gapStr := cmd.String("gap")
	if gapStr == "" {
		gapStr = cfg.Gap
	}
	gap, err := parseGap(gapStr)
	if err != nil {
		return &usageError{msg: err.Error()}
	}

	format := cmd.String("format")
	if format == "" {
		format = cfg.Format
	}
	if format != formatCidr && format != formatRange {
		return &usageError{msg: fmt.Sprintf("无效的输出格式 %q（可选 cidr | range）", format)}
	}

	tokens, err := gatherTokens(ctx, cmd, logger)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return &usageError{msg: "没有可处理的输入记号"}
	}

	ranges, err := collectRanges(tokens, cmd.Bool("ranges"), logger)
	if err != nil {
		return err
	}

	cidrs := xip.CollapseRanges(ranges, gap)
	logger.Debug("collapse 完成",
		zap.Int("tokens", len(tokens)),
		zap.Int("ranges", len(ranges)),
		zap.Int("cidrs", len(cidrs)),
		zap.String("gap", gap.String()),
	)

	out, err := openOutput(cmd.String("output"))
	if err != nil {
		return err
	}
	if err := writeCidrs(out, cidrs, format); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// openOutput 打开收敛结果的输出目标。path 为空时写标准输出。
// 文件路径先经 SanitizePath 做格式校验，父目录不存在时自动创建。
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	clean, err := xfile.SanitizePath(path)
	if err != nil {
		return nil, &usageError{msg: fmt.Sprintf("输出路径无效: %v", err)}
	}
	if err := xfile.EnsureDir(clean); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, fmt.Errorf("打开输出文件失败: %w", err)
	}
	return f, nil
}

// nopWriteCloser 包装标准输出，Close 不做事。
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// gatherTokens 收集输入记号。优先级：命令行参数 > --file > 标准输入。
func gatherTokens(ctx context.Context, cmd *cli.Command, logger *zap.Logger) ([]string, error) {
	if args := cmd.Args().Slice(); len(args) > 0 {
		return args, nil
	}

	if path := cmd.String("file"); path != "" {
		canonical, err := xfile.CheckReadableFile(path)
		if err != nil {
			return nil, fmt.Errorf("输入文件不可读: %w", err)
		}
		f, err := os.Open(canonical)
		if err != nil {
			return nil, fmt.Errorf("打开输入文件失败: %w", err)
		}
		defer f.Close()
		return readTokens(ctx, f)
	}

	// 标准输入可能承载海量记号，预先抬高文件描述符上限。
	raiseFileLimit(logger)
	return readTokens(ctx, os.Stdin)
}

// raiseFileLimit 尽力将 RLIMIT_NOFILE 的 soft limit 抬到 hard limit。
// 失败不致命（非 Unix 平台、受限容器），仅记录诊断日志。
func raiseFileLimit(logger *zap.Logger) {
	soft, hard, err := xsysinfo.GetFileLimit()
	if err != nil || soft >= hard {
		return
	}
	if err := xsysinfo.SetFileLimit(hard); err != nil {
		logger.Debug("抬高文件描述符上限失败", zap.Error(err))
		return
	}
	logger.Debug("文件描述符上限已抬高",
		zap.Uint64("from", soft), zap.Uint64("to", hard))
}

// readTokens 按空白分隔读取全部记号。
func readTokens(ctx context.Context, r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var tokens []string
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取输入失败: %w", err)
	}
	return tokens, nil
}

// tokenToRange 将单个记号解析为范围。
// 接受 CIDR（含裸地址的主机 CIDR）和 beg-end 范围（含短格式）。
func tokenToRange(token string) (xip.IpRange, error) {
	if strings.Contains(token, "-") {
		return xip.ParseIpRange(token)
	}
	c, err := xip.ParseCidr(token)
	if err != nil {
		return xip.IpRange{}, err
	}
	beg, end := c.Bounds()
	return xip.NewIpRange(beg, end)
}

// collectRanges 将记号批量解析为范围。
// 宽松模式跳过无法解析的记号；strict 模式（--ranges）要求
// 所有记号均为合法的 beg-end 范围，任一失败即返回参数错误。
// 成功解析的记号经 LRU 缓存复用，海量重复输入时跳过解析路径。
func collectRanges(tokens []string, strict bool, logger *zap.Logger) ([]xip.IpRange, error) {
	cache, err := lru.New[string, xip.IpRange](tokenCacheSize)
	if err != nil {
		return nil, err
	}

	ranges := make([]xip.IpRange, 0, len(tokens))
	skipped := 0
	for _, token := range tokens {
		if r, ok := cache.Get(token); ok {
			ranges = append(ranges, r)
			continue
		}

		var r xip.IpRange
		var parseErr error
		if strict {
			r, parseErr = xip.ParseIpRange(token)
			if parseErr != nil {
				return nil, &usageError{msg: fmt.Sprintf("记号 %q 不是合法范围: %v", token, parseErr)}
			}
		} else {
			r, parseErr = tokenToRange(token)
			if parseErr != nil {
				skipped++
				logger.Debug("跳过无法解析的记号",
					zap.String("token", token), zap.Error(parseErr))
				continue
			}
		}

		cache.Add(token, r)
		ranges = append(ranges, r)
	}

	if skipped > 0 {
		logger.Info("部分记号被跳过", zap.Int("skipped", skipped))
	}
	return ranges, nil
}

// writeCidrs 按指定格式输出收敛结果，每行一条。
func writeCidrs(w io.Writer, cidrs []xip.Cidr, format string) error {
	bw := bufio.NewWriter(w)
	for _, c := range cidrs {
		var line string
		if format == formatRange {
			beg, end := c.Bounds()
			line = fmt.Sprintf("%s-%s", beg, end)
		} else {
			line = c.String()
		}
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// cmdExpand 执行 expand 命令。
func cmdExpand(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(cmd.Bool("verbose"))
	defer func() { _ = logger.Sync() }()

	tokens := cmd.Args().Slice()
	if len(tokens) == 0 {
		return &usageError{msg: "expand 命令需要至少一个 IP/CIDR/范围记号"}
	}
	return expandTokens(ctx, os.Stdout, os.Stderr, tokens, logger)
}

// expandTokens 逐个展开记号并输出地址。
// 单个记号失败不中断后续记号，失败详情写入 errW；
// 全部处理完后若存在失败记号，以退出码 1 的 exitError 收尾。
func expandTokens(ctx context.Context, w, errW io.Writer, tokens []string, logger *zap.Logger) error {
	bw := bufio.NewWriter(w)
	failed := 0
	for _, token := range tokens {
		if err := ctx.Err(); err != nil {
			return err
		}
		addrs, err := xip.ParseAddrOrRange(token)
		if err != nil {
			failed++
			fmt.Fprintf(errW, "展开 %q 失败: %v\n", token, err)
			continue
		}
		logger.Debug("记号已展开",
			zap.String("token", token), zap.Int("addrs", len(addrs)))
		if err := writeAddrs(bw, addrs); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return &exitError{code: 1}
	}
	return nil
}

// writeAddrs 逐行输出地址。
func writeAddrs(w io.Writer, addrs []netip.Addr) error {
	for _, a := range addrs {
		if _, err := fmt.Fprintln(w, a); err != nil {
			return err
		}
	}
	return nil
}

// cmdSysinfo 执行 sysinfo 命令。
func cmdSysinfo(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(cmd.Bool("verbose"))
	defer func() { _ = logger.Sync() }()

	p, err := xsysinfo.NewProcessInfo()
	if err != nil {
		return err
	}
	s, err := xsysinfo.NewSysInfo(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("主机: %s (%s %s, 内核 %s, %d 核)\n",
		s.Static.Hostname, s.Static.OSName, s.Static.OSVersion,
		s.Static.Kernel, s.Static.NumCores)
	fmt.Printf("进程: %s (%s)\n", xsysinfo.ProcessName(), p.String())
	fmt.Printf("系统: %s\n", s.Summary(ctx))

	if soft, hard, err := xsysinfo.GetFileLimit(); err == nil {
		fmt.Printf("文件描述符上限: soft=%d hard=%d\n", soft, hard)
	} else {
		logger.Debug("查询文件描述符上限失败", zap.Error(err))
	}
	return nil
}

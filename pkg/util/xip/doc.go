// Package xip 提供 IP 地址范围工具库：解析、区间运算与 CIDR 收敛。
//
// xip 基于 Go 标准库 [net/netip] 构建，地址统一使用 [netip.Addr] 值类型，
// 内部区间运算建立在 128 位无符号整数 [Uint128] 之上，IPv4 与 IPv6
// 共用同一套算法。interop.go 提供与 [go4.org/netipx] 的双向转换。
//
// # 核心功能
//
//   - family.go: 地址族类型 [Family] 及 [AddrFamily] 判断函数
//   - uint128.go: [Uint128] 128 位整数运算（饱和加减、移位、掩码）
//   - convert.go: [netip.Addr] 与 [Uint128] 互转
//   - cidr.go: [Cidr] 类型，解析、网络边界计算、懒惰地址迭代
//   - iprange.go: [IpRange] 闭区间类型，严格构造校验
//   - parse.go: [ParseAddrOrRange] 多语法解析（单 IP / CIDR / 显式范围 / 短格式范围）
//   - collapse.go: [CollapseCidrs] 等收敛函数族（精确合并 / 模糊合并 / 最小 CIDR 分解）
//   - interop.go: 与 [netip.Prefix]、[netipx.IPRange] 互转
//
// # 快速示例
//
// 解析混合语法为地址列表：
//
//	addrs, _ := xip.ParseAddrOrRange("192.168.1.0/30")   // 2 个可用主机地址
//	addrs, _ = xip.ParseAddrOrRange("10.0.0.1-10.0.0.3") // 3 个地址
//	addrs, _ = xip.ParseAddrOrRange("10.0.0.1-5")        // 短格式，5 个地址
//
// 收敛 CIDR 列表：
//
//	out := xip.CollapseStrings([]string{
//	    "10.0.0.0/25", "10.0.0.128/25",  // 相邻，合并为 /24
//	    "10.0.1.5",                      // 单 IP
//	}, xip.Uint128{})
//
// 大范围走懒惰迭代，不物化切片：
//
//	c := xip.MustParseCidr("10.0.0.0/8")
//	for addr := range c.Addrs() {
//	    if process(addr) { break }
//	}
//
// # 设计决策
//
//   - 直接使用 [netip.Addr] 值类型，零分配比较，可做 map key
//   - IPv4-mapped IPv6（::ffff:a.b.c.d）一律视为 IPv4 处理
//   - 拒绝带 IPv6 zone ID 的地址（如 "fe80::1%eth0"）：整数化运算
//     会静默丢弃 zone 信息，导致收敛结果与输入语义不符
//   - [IpRange] 构造是严格的：族不匹配、端点倒序都返回错误，不静默交换
//   - 区间长度用 [Uint128] 表示，整个 IPv6 空间（2^128）以 [MaxUint128]
//     为饱和哨兵值，[Cidr.Len] 文档明确这一约定
//   - 所有可失败函数返回 error，预定义错误变量支持 errors.Is
//
// # 地址物化上限
//
// [ParseAddrOrRange] 和 [GenerateRange] 将范围物化为 []netip.Addr，
// 地址数量达到 [MaxRangeSize]（65536）即返回 [ErrRangeTooLarge]，
// 防止 "10.0.0.0/8" 之类的输入意外耗尽内存。错误携带
// [*RangeTooLargeError]，可取出实际数量。收敛函数族与 [Cidr.Addrs] /
// [IpRange.Addrs] 迭代器不受此上限约束：前者从不物化地址，
// 后者由调用方决定何时停止。
//
// # CIDR 主机展开规则
//
// [ParseAddrOrRange] 展开 CIDR 时按惯例剔除非主机地址：
//   - IPv4 前缀 < /31：剔除网络地址和广播地址（/24 → 254 个）
//   - IPv4 /31、/32：全部地址（RFC 3021 点对点链路）
//   - IPv6 前缀 < /127：仅剔除网络地址
//   - 全位宽前缀（/32、/128）：即该地址本身
//
// # 短格式范围
//
// "10.0.0.1-5" 表示 10.0.0.1-10.0.0.5：结尾的纯数字只替换起始地址的
// 最后一个八位段（IPv4，≤255）或最后一个十六位段（IPv6，≤65535），
// 不做进位。替换后仍需满足 beg ≤ end，倒序（如 "10.0.0.5-1"）返回
// [ErrRangeOrder]。
//
// # 收敛与模糊合并
//
// 收敛管线：归一化 → 按 (地址族, 起始, 结束) 排序 → 精确合并
// → 可选模糊合并 → 贪心最小 CIDR 分解。输出是输入覆盖的唯一最小
// CIDR 集合，IPv4 块在前，同族按地址升序。
//
// maxGap > 0 时启用模糊合并：间隔不超过 maxGap 个地址的区间被吞并。
// 这是有意的过度近似，适合压缩告警清单、聚合扫描结果等场景；
// 需要精确覆盖时传 maxGap 为零值。两个族共用同一个 maxGap。
//
// # 错误处理
//
// 预定义错误变量支持 errors.Is 判断：
//
//	_, err := xip.ParseAddrOrRange("10.0.0.0/8")
//	if errors.Is(err, xip.ErrRangeTooLarge) {
//	    // 走懒惰迭代路径
//	}
//
// 语法类错误（单 IP / CIDR 均不匹配）包装 [ErrInvalid]；范围解析的
// 各阶段失败有专属哨兵（[ErrInvalidRangeFormat]、[ErrInvalidRangeStart]
// 等），便于调用方给出精确提示。
package xip

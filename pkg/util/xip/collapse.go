package xip

import (
	"net/netip"
	"slices"
)

// CollapseCidrs 将一组 CIDR 收敛为等价的最小 CIDR 集合：
//   - 去除被更大前缀覆盖的冗余子前缀
//   - 合并相邻 / 重叠的块
//
// 输入的 Addr 不要求是网络地址，主机位非零的块会先归一化。
// 输出按 (地址族, 起始地址) 升序排列，IPv4 块在前，块间互不重叠。
//
// maxGap > 0 时额外做模糊合并：间隔不超过 maxGap 个地址的相邻区间
// 也会被吞并。这是有意的过度近似——被吞掉的间隙中的地址并不在输入里,
// 却会出现在输出覆盖中。maxGap == 0 时合并是精确的。
func CollapseCidrs(input []Cidr, maxGap Uint128) []Cidr {
	spans := make([]span, 0, len(input))
	for _, c := range input {
		if !c.Addr.IsValid() {
			continue
		}
		spans = append(spans, c.toSpan())
	}
	return collapseSpans(spans, maxGap)
}

// CollapseAddrs 将一组单 IP 收敛为等价的最小 CIDR 集合。
// 语义同 [CollapseCidrs]，每个地址视为 /32 或 /128 主机块。
func CollapseAddrs(input []netip.Addr, maxGap Uint128) []Cidr {
	cidrs := make([]Cidr, 0, len(input))
	for _, addr := range input {
		if !addr.IsValid() {
			continue
		}
		cidrs = append(cidrs, AddrToHostCidr(addr))
	}
	return CollapseCidrs(cidrs, maxGap)
}

// CollapseStrings 将一组字符串（CIDR 或单 IP）收敛为最小 CIDR 集合。
// 含 "/" 的 token 按 CIDR 解析，其余按裸地址解析。
//
// 宽容模式：无法解析的 token 被逐个跳过而非使整批失败，
// 适合清洗来源混杂的地址清单。需要逐 token 报错时请自行调用
// [ParseCidr] 后使用 [CollapseCidrs]。
func CollapseStrings(input []string, maxGap Uint128) []Cidr {
	cidrs := make([]Cidr, 0, len(input))
	for _, s := range input {
		c, err := ParseCidr(s)
		if err != nil {
			continue
		}
		cidrs = append(cidrs, c)
	}
	return CollapseCidrs(cidrs, maxGap)
}

// CollapseRanges 将一组闭区间收敛为等价的最小 CIDR 集合。
//
// 全程基于区间运算，从不物化单个地址，因此对任意大的范围
// （包括整个 IPv6 地址空间）都能安全使用。[IpRange] 的构造校验
// 保证了两端同族有序，本函数没有失败路径；零值区间被跳过。
func CollapseRanges(input []IpRange, maxGap Uint128) []Cidr {
	spans := make([]span, 0, len(input))
	for _, r := range input {
		if !r.IsValid() {
			continue
		}
		spans = append(spans, r.toSpan())
	}
	return collapseSpans(spans, maxGap)
}

// CollapseRangePairs 是 [CollapseRanges] 的便捷重载，接受 (beg, end)
// 地址对。每一对都走 [NewIpRange] 严格构造：族不匹配返回
// [ErrFamilyMismatch]，端点顺序颠倒返回 [ErrRangeOrder]（不静默交换）。
func CollapseRangePairs(pairs [][2]netip.Addr, maxGap Uint128) ([]Cidr, error) {
	ranges := make([]IpRange, 0, len(pairs))
	for _, p := range pairs {
		r, err := NewIpRange(p[0], p[1])
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return CollapseRanges(ranges, maxGap), nil
}

// collapseSpans 是所有收敛入口共用的管线：
// 排序 → 精确合并 → （可选）模糊合并 → 最小 CIDR 分解。
func collapseSpans(spans []span, maxGap Uint128) []Cidr {
	slices.SortFunc(spans, compareSpan)

	merged := mergeSpans(spans)
	if !maxGap.IsZero() {
		merged = mergeSpansFuzzy(merged, maxGap)
	}

	var out []Cidr
	for _, r := range merged {
		out = spanToCidrs(r, out)
	}
	return out
}

// mergeSpans 对已排序的区间做单趟从左到右的精确合并。
// 同族且 next.beg <= cur.end+1（重叠或恰好相邻）时并入当前累积区间，
// 否则当前区间定稿、next 开启新的累积。产出唯一的最小不相交覆盖。
// 加一运算饱和，区间顶到地址空间上界时不会回绕。
func mergeSpans(sorted []span) []span {
	out := make([]span, 0, len(sorted))
	for _, r := range sorted {
		if len(out) > 0 {
			last := &out[len(out)-1]
			if last.fam == r.fam && r.beg.Cmp(last.end.SatAdd64(1)) <= 0 {
				if r.end.Cmp(last.end) > 0 {
					last.end = r.end
				}
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// mergeSpansFuzzy 对已精确合并且有序的区间做第二趟间隙容忍合并：
// 同族且间隙（next.beg - (cur.end+1)，饱和）不超过 maxGap 时吞并间隙。
// 输入必须先经 [mergeSpans] 处理，否则结果不可靠。
func mergeSpansFuzzy(merged []span, maxGap Uint128) []span {
	out := make([]span, 0, len(merged))
	for _, r := range merged {
		if len(out) > 0 {
			last := &out[len(out)-1]
			if last.fam == r.fam {
				gap := r.beg.SatSub(last.end.SatAdd64(1))
				if gap.Cmp(maxGap) <= 0 {
					if r.end.Cmp(last.end) > 0 {
						last.end = r.end
					}
					continue
				}
			}
		}
		out = append(out, r)
	}
	return out
}

// spanToCidrs 将一个闭区间贪心分解为最小有序 CIDR 块列表，追加到 dst。
//
// 每一步在当前位置取可行的最大块：块大小受两个独立上界约束——
// 起点的幂对齐（start 的尾零位数，封顶于位宽）和剩余长度的容纳
// （floor(log2(end-start+1))）。两者换算成前缀后取较大值（更小的块），
// 即由更紧的约束决定实际块大小。该贪心产出任意闭区间的标准最小
// CIDR 分解。
func spanToCidrs(r span, dst []Cidr) []Cidr {
	bits := r.fam.Bits()

	// 全 IPv6 地址空间特判：长度 2^128 无法参与 128 位剩余量计算
	if bits == 128 && r.beg.IsZero() && r.end == MaxUint128 {
		return append(dst, Cidr{Addr: netip.IPv6Unspecified(), Prefix: 0})
	}

	start := r.beg
	for start.Cmp(r.end) <= 0 {
		// 对齐约束：start 低位有多少个 0，就允许多大的对齐块
		tz := min(start.TrailingZeros(), bits)
		alignPrefix := bits - tz

		// 容纳约束：剩余长度内能装下的最大 2 的幂
		remaining := r.end.SatSub(start).SatAdd64(1)
		fitPrefix := bits - uint8(remaining.BitLen()-1)

		prefix := max(alignPrefix, fitPrefix)
		dst = append(dst, Cidr{Addr: AddrFromUint128(r.fam, start), Prefix: prefix})

		// /0 的块大小是 2^128，128 位移位表达不了
		if bits == 128 && prefix == 0 {
			break
		}

		// 推进 start 一个块的距离（2^(bits-prefix)），饱和防止最后
		// 一个块顶到地址空间上界时回绕
		blockSize := Uint128From64(1).Lsh(bits - prefix)
		next := start.SatAdd(blockSize)
		if next == start {
			break
		}
		start = next
	}
	return dst
}

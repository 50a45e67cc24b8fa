package xip

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// MaxRangeSize 是有界展开入口允许物化的最大地址数量。
// 达到该数量的展开请求（如一个完整的 IPv4 /16）会被拒绝，
// 防止特别是 IPv6 场景下的意外海量分配。
// 更大的跨度请使用惰性迭代器（[Cidr.Addrs] / [IpRange.Addrs]）
// 或基于区间的收敛入口（[CollapseRanges]），它们从不物化单个地址。
const MaxRangeSize = 65536

// maxRangeCount 是 MaxRangeSize 的 Uint128 形式，便于与区间长度比较。
var maxRangeCount = Uint128From64(MaxRangeSize)

// ParseAddrOrRange 将一个字符串 token 解析为其包含的全部 IP 地址。
//
// 按固定优先级依次尝试，返回第一个成功的形式：
//  1. 单 IP: "10.10.10.1"
//  2. CIDR: "10.10.10.0/28" — 展开为可用主机地址（见下）
//  3. 短格式范围: "10.10.10.1-10"（仅替换末段）
//  4. 完整范围: "10.10.10.1-10.10.10.10"
//
// CIDR 展开遵循常规"可用主机"语义：IPv4 前缀 < 31 时排除网络地址与
// 广播地址（/31、/32 返回全部地址，RFC 3021）；IPv6 前缀 < 127 时排除
// 网络地址。主机部分为空的满宽前缀恰好返回网络地址本身。
//
// 任何会物化超过 [MaxRangeSize] 个地址的展开请求都会返回
// [RangeTooLargeError] 而非分配内存。
func ParseAddrOrRange(s string) ([]netip.Addr, error) {
	s = strings.TrimSpace(s)

	// 形式 1: 单 IP。拒绝 zone ID：整数归一化会静默丢弃 zone，
	// 展开/收敛结果与原地址不再对应。
	if addr, err := netip.ParseAddr(s); err == nil {
		if addr.Zone() != "" {
			return nil, fmt.Errorf("%w: IPv6 zone ID is not supported: %s", ErrInvalid, s)
		}
		return []netip.Addr{addr}, nil
	}

	// 形式 2: CIDR
	if strings.Contains(s, "/") {
		c, err := ParseCidr(s)
		if err != nil {
			return nil, err
		}
		return expandCidr(c)
	}

	// 形式 3/4: 范围
	if strings.Contains(s, "-") {
		r, err := ParseIpRange(s)
		if err != nil {
			return nil, err
		}
		return GenerateRange(r.Beg(), r.End())
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalid, s)
}

// expandCidr 将 CIDR 展开为可用主机地址列表。
// 展开前先按块总大小（而非主机数）做 MaxRangeSize 守卫。
func expandCidr(c Cidr) ([]netip.Addr, error) {
	if total := c.Len(); total.Cmp(maxRangeCount) >= 0 {
		return nil, &RangeTooLargeError{Count: total}
	}

	r := c.toSpan()
	bits := r.fam.Bits()
	switch {
	case c.Prefix >= bits:
		// 主机部分为空：返回网络地址本身
		return []netip.Addr{AddrFromUint128(r.fam, r.beg)}, nil
	case r.fam == V4 && c.Prefix < 31:
		// 排除网络地址与广播地址
		r.beg = r.beg.SatAdd64(1)
		r.end = r.end.SatSub(Uint128From64(1))
	case r.fam == V6 && c.Prefix < 127:
		// IPv6 无广播概念，仅排除网络地址（子网路由任播）
		r.beg = r.beg.SatAdd64(1)
	}

	return materializeSpan(r), nil
}

// ParseIpRange 解析范围表示：
//   - 短格式 "10.10.10.1-10"：结束部分是裸十进制数，仅替换起始地址的
//     末段（IPv4 末八位组，上限 255；IPv6 末十六位组，上限 65535），
//     其余高位段全部继承自起始地址
//   - 完整格式 "10.10.10.1-10.10.10.10"：结束部分含地址分隔符（. 或 :），
//     按同族完整地址字面量解析
//
// 两端必须同族且 beg <= end，经 [NewIpRange] 严格校验。
func ParseIpRange(s string) (IpRange, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return IpRange{}, fmt.Errorf("%w: %q", ErrInvalidRangeFormat, s)
	}

	begStr := strings.TrimSpace(parts[0])
	endStr := strings.TrimSpace(parts[1])

	beg, err := netip.ParseAddr(begStr)
	if err != nil {
		return IpRange{}, fmt.Errorf("%w: %q: %w", ErrInvalidRangeStart, begStr, err)
	}
	if beg.Zone() != "" {
		return IpRange{}, fmt.Errorf("%w: IPv6 zone ID is not supported: %q", ErrInvalidRangeStart, begStr)
	}

	var end netip.Addr
	if strings.ContainsAny(endStr, ".:") {
		end, err = netip.ParseAddr(endStr)
		if err != nil {
			return IpRange{}, fmt.Errorf("%w: %q: %w", ErrInvalidRangeEnd, endStr, err)
		}
		if end.Zone() != "" {
			return IpRange{}, fmt.Errorf("%w: IPv6 zone ID is not supported: %q", ErrInvalidRangeEnd, endStr)
		}
	} else {
		end, err = parseShortRangeEnd(beg, endStr)
		if err != nil {
			return IpRange{}, err
		}
	}

	return NewIpRange(beg, end)
}

// MustParseIpRange 解析范围，失败时 panic。仅建议用于测试和示例。
func MustParseIpRange(s string) IpRange {
	r, err := ParseIpRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

// parseShortRangeEnd 解析短格式范围的结束值（如 "192.168.1.1-10" 中的 "10"），
// 仅替换起始地址的末段。
//
// 注意：末段替换不进位。当起始地址的末段本就大于给定值时（如
// "10.0.0.200-10"），组合出的结束地址小于起始地址，由后续的
// 顺序校验统一拒绝（[ErrRangeOrder]），不会产生回绕。
func parseShortRangeEnd(beg netip.Addr, endStr string) (netip.Addr, error) {
	val, err := strconv.ParseUint(endStr, 10, 32)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %q: %w", ErrInvalidRangeEndValue, endStr, err)
	}

	if AddrFamily(beg) == V4 {
		if val > 255 {
			return netip.Addr{}, fmt.Errorf("%w: %d", ErrInvalidV4Octet, val)
		}
		b := beg.Unmap().As4()
		b[3] = byte(val)
		return netip.AddrFrom4(b), nil
	}

	if val > 65535 {
		return netip.Addr{}, fmt.Errorf("%w: %d", ErrInvalidV6Hextet, val)
	}
	b := beg.As16()
	b[14] = byte(val >> 8)
	b[15] = byte(val)
	return netip.AddrFrom16(b), nil
}

// GenerateRange 物化 [beg, end] 闭区间内的全部地址（升序）。
//
// 两端必须同族（[ErrFamilyMismatch]）且 beg <= end（[ErrRangeOrder]）。
// 地址数量达到 [MaxRangeSize] 时返回 [RangeTooLargeError]；
// 确实需要更大跨度时请改用 [IpRange.Addrs] 惰性迭代。
func GenerateRange(beg, end netip.Addr) ([]netip.Addr, error) {
	b, bFam := AddrToUint128(beg)
	e, eFam := AddrToUint128(end)
	if bFam == V0 || eFam == V0 {
		return nil, fmt.Errorf("%w: invalid range address", ErrInvalid)
	}
	if bFam != eFam {
		return nil, fmt.Errorf("%w: %s - %s", ErrFamilyMismatch, beg, end)
	}
	if b.Cmp(e) > 0 {
		return nil, fmt.Errorf("%w: %s > %s", ErrRangeOrder, beg, end)
	}

	r := span{fam: bFam, beg: b, end: e}
	if count := r.length(); count.Cmp(maxRangeCount) >= 0 {
		return nil, &RangeTooLargeError{Count: count}
	}
	return materializeSpan(r), nil
}

// materializeSpan 将区间物化为地址切片。
// 调用方负责先做 MaxRangeSize 守卫，保证数量可安全转为 int。
func materializeSpan(r span) []netip.Addr {
	count := r.length()
	out := make([]netip.Addr, 0, int(count.Lo))
	iterateSpan(r, func(addr netip.Addr) bool {
		out = append(out, addr)
		return true
	})
	return out
}

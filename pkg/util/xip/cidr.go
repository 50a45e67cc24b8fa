package xip

import (
	"fmt"
	"iter"
	"net/netip"
	"strconv"
	"strings"
)

// Cidr 表示一个 CIDR 块：地址加前缀长度。
//
// Cidr 是不可变值类型，可直接比较（==）和用作 map key。
//
// Addr 不强制为网络地址（主机位可以非零）：相等性与 [Cidr.String]
// 按存储的字段原样工作，解析什么就显示什么。需要规范形式的算法
// （如 [CollapseCidrs]）会自行归一化，调用方也可通过 [Cidr.Bounds]
// 获取归一化后的边界。
type Cidr struct {
	// Addr 是块内的地址（通常但不必是网络地址）。
	Addr netip.Addr
	// Prefix 是前缀长度：IPv4 取值 0..=32，IPv6 取值 0..=128。
	Prefix uint8
}

// ParseCidr 从字符串解析 CIDR。
//
// 支持两种形式：
//   - "addr/prefix": 标准 CIDR 表示，前缀必须在地址族位宽内
//   - "addr": 裸地址，视为满宽前缀的主机块（/32 或 /128）
//
// 输入自动去除首尾空白；"/" 两侧的空白同样容忍。
// 拒绝携带 IPv6 zone ID 的地址（如 fe80::1%eth0）：整数表示会
// 静默丢弃 zone 信息，导致合并与分解结果与原地址不再对应。
func ParseCidr(s string) (Cidr, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "%") {
		return Cidr{}, fmt.Errorf("%w: IPv6 zone ID is not supported: %s", ErrInvalid, s)
	}

	idx := strings.Index(s, "/")
	if idx < 0 {
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return Cidr{}, fmt.Errorf("%w: %q", ErrInvalid, s)
		}
		return AddrToHostCidr(addr), nil
	}

	addrPart := strings.TrimSpace(s[:idx])
	prefixPart := strings.TrimSpace(s[idx+1:])
	if strings.Contains(prefixPart, "/") {
		return Cidr{}, fmt.Errorf("%w: invalid CIDR format: %q", ErrInvalid, s)
	}

	addr, err := netip.ParseAddr(addrPart)
	if err != nil {
		return Cidr{}, fmt.Errorf("%w: invalid CIDR address: %q", ErrInvalid, addrPart)
	}

	prefix, err := strconv.ParseUint(prefixPart, 10, 8)
	if err != nil {
		return Cidr{}, fmt.Errorf("%w: invalid CIDR prefix: %q", ErrInvalid, prefixPart)
	}

	if maxBits := AddrFamily(addr).Bits(); uint8(prefix) > maxBits {
		return Cidr{}, fmt.Errorf("%w: prefix /%d out of range for %s", ErrInvalid, prefix, AddrFamily(addr))
	}

	return Cidr{Addr: addr, Prefix: uint8(prefix)}, nil
}

// MustParseCidr 解析 CIDR，失败时 panic。仅建议用于测试和常量初始化。
func MustParseCidr(s string) Cidr {
	c, err := ParseCidr(s)
	if err != nil {
		panic(err)
	}
	return c
}

// AddrToHostCidr 将单个地址转换为等价的主机 CIDR（/32 或 /128）。
func AddrToHostCidr(addr netip.Addr) Cidr {
	return Cidr{Addr: addr, Prefix: AddrFamily(addr).Bits()}
}

// String 返回 "addr/prefix" 形式的字符串，地址按存储字段原样输出，
// 不做网络地址归一化。与 [ParseCidr] 构成精确往返。
func (c Cidr) String() string {
	return c.Addr.String() + "/" + strconv.FormatUint(uint64(c.Prefix), 10)
}

// Family 返回块的地址族。无效地址返回 V0。
func (c Cidr) Family() Family {
	return AddrFamily(c.Addr)
}

// Is4 报告块是否为 IPv4。
func (c Cidr) Is4() bool {
	return c.Family() == V4
}

// Is6 报告块是否为 IPv6。
func (c Cidr) Is6() bool {
	return c.Family() == V6
}

// IsHost 报告块是否表示单个主机地址（满宽前缀）。
func (c Cidr) IsHost() bool {
	bits := c.Family().Bits()
	return bits != 0 && c.Prefix == bits
}

// Len 返回块包含的地址数量：2^(位宽-前缀)。
// 全 IPv6 地址空间（::/0）的数量 2^128 无法用 128 位表示，
// 返回 [MaxUint128] 哨兵值（饱和语义）。
func (c Cidr) Len() Uint128 {
	bits := c.Family().Bits()
	if bits == 0 {
		return Uint128{}
	}
	hostBits := bits - min(c.Prefix, bits)
	if bits == 128 && hostBits == 128 {
		return MaxUint128
	}
	return Uint128From64(1).Lsh(hostBits)
}

// LenV4 返回 IPv4 块包含的地址数量。
// 非 IPv4 块返回 (0, false)。IPv4 全空间（/0）为 2^32，uint64 足够容纳。
func (c Cidr) LenV4() (uint64, bool) {
	if !c.Is4() {
		return 0, false
	}
	hostBits := 32 - min(c.Prefix, 32)
	return 1 << hostBits, true
}

// toSpan 将块归一化为覆盖区间 [网络地址, 广播地址]。
// 主机位非零的地址在此处被掩码归零。
func (c Cidr) toSpan() span {
	v, fam := AddrToUint128(c.Addr)
	bits := fam.Bits()
	mask := MaskOf(bits, min(c.Prefix, bits))
	if bits == 32 {
		// 取反后限制在低 32 位内，避免污染高位
		v32 := MaskOf(32, 32)
		net := v.And(mask)
		return span{fam: fam, beg: net, end: net.Or(mask.Not().And(v32))}
	}
	net := v.And(mask)
	return span{fam: fam, beg: net, end: net.Or(mask.Not())}
}

// Bounds 返回块归一化后的首尾地址（网络地址与最高地址）。
// 无效块返回零值地址对。
func (c Cidr) Bounds() (beg, end netip.Addr) {
	if !c.Addr.IsValid() {
		return netip.Addr{}, netip.Addr{}
	}
	r := c.toSpan()
	return AddrFromUint128(r.fam, r.beg), AddrFromUint128(r.fam, r.end)
}

// Addrs 返回块内全部地址的惰性升序迭代器（含网络地址与最高地址）。
// 迭代器可重复调用，每次都会从头产生相同序列，不会修改 c 本身。
//
// 注意：不设数量上限。对大块（极端如 ::/0）迭代可能产生天文数字级别的
// 地址，约束迭代量是调用方的责任；有界展开请使用 [ParseAddrOrRange]。
//
// 示例：
//
//	c := xip.MustParseCidr("192.168.1.0/30")
//	for addr := range c.Addrs() {
//	    fmt.Println(addr)
//	}
func (c Cidr) Addrs() iter.Seq[netip.Addr] {
	return func(yield func(netip.Addr) bool) {
		if !c.Addr.IsValid() {
			return
		}
		r := c.toSpan()
		iterateSpan(r, yield)
	}
}

// iterateSpan 按升序产出区间内的每个地址。
// 通过整数自增推进，产出含端点 end 后停止；饱和自增防止
// 区间顶到地址空间上界时回绕成死循环。
func iterateSpan(r span, yield func(netip.Addr) bool) {
	for cur := r.beg; ; {
		if !yield(AddrFromUint128(r.fam, cur)) {
			return
		}
		if cur == r.end {
			return
		}
		cur = cur.SatAdd64(1)
	}
}

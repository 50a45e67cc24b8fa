package xip

import (
	"fmt"
	"iter"
	"net/netip"
)

// IpRange 表示首尾地址均包含在内的 IP 地址闭区间。
//
// 只能通过 [NewIpRange] 或 [ParseIpRange] 构造：两端必须同族且
// beg <= end，构造完成后不可变。零值表示无效区间（[IpRange.IsValid]
// 返回 false）。
type IpRange struct {
	beg netip.Addr
	end netip.Addr
}

// NewIpRange 创建 IpRange，校验两端地址有效、同族且顺序正确。
// 地址族不同返回 [ErrFamilyMismatch]；beg > end 返回 [ErrRangeOrder]。
// 这是严格构造路径：给反了的端点不会被静默交换。
func NewIpRange(beg, end netip.Addr) (IpRange, error) {
	b, bFam := AddrToUint128(beg)
	e, eFam := AddrToUint128(end)
	if bFam == V0 || eFam == V0 {
		return IpRange{}, fmt.Errorf("%w: invalid range address", ErrInvalid)
	}
	if bFam != eFam {
		return IpRange{}, fmt.Errorf("%w: %s - %s", ErrFamilyMismatch, beg, end)
	}
	if b.Cmp(e) > 0 {
		return IpRange{}, fmt.Errorf("%w: %s > %s", ErrRangeOrder, beg, end)
	}
	return IpRange{beg: beg, end: end}, nil
}

// Beg 返回区间起始地址（含）。
func (r IpRange) Beg() netip.Addr {
	return r.beg
}

// End 返回区间结束地址（含）。
func (r IpRange) End() netip.Addr {
	return r.end
}

// IsValid 报告 r 是否为有效构造的区间。零值返回 false。
func (r IpRange) IsValid() bool {
	return r.beg.IsValid() && r.end.IsValid()
}

// Family 返回区间的地址族。无效区间返回 V0。
func (r IpRange) Family() Family {
	return AddrFamily(r.beg)
}

// Len 返回区间包含的地址数量（饱和，全 IPv6 空间返回 [MaxUint128] 哨兵）。
// 无效区间返回 0。
func (r IpRange) Len() Uint128 {
	if !r.IsValid() {
		return Uint128{}
	}
	return r.toSpan().length()
}

// String 返回 "beg-end" 形式的字符串。无效区间返回空字符串。
func (r IpRange) String() string {
	if !r.IsValid() {
		return ""
	}
	return r.beg.String() + "-" + r.end.String()
}

// toSpan 将区间归一化为整数工作表示。
// 构造校验保证两端同族有序，此处无失败路径。
func (r IpRange) toSpan() span {
	b, fam := AddrToUint128(r.beg)
	e, _ := AddrToUint128(r.end)
	return span{fam: fam, beg: b, end: e}
}

// Addrs 返回区间内全部地址的惰性升序迭代器（含两端）。
// 迭代器可重复调用，每次从头产生相同序列，不修改 r 本身。
// 与 [Cidr.Addrs] 相同，不设数量上限；有界展开请使用 [GenerateRange]。
func (r IpRange) Addrs() iter.Seq[netip.Addr] {
	return func(yield func(netip.Addr) bool) {
		if !r.IsValid() {
			return
		}
		iterateSpan(r.toSpan(), yield)
	}
}

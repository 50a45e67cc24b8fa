package xip

import (
	"fmt"
	"net/netip"

	"go4.org/netipx"
)

// CidrPrefix 将 Cidr 转换为标准库的 netip.Prefix。
// Addr 无效或前缀超出地址族位宽时返回包装了 [ErrInvalid] 的错误。
func CidrPrefix(c Cidr) (netip.Prefix, error) {
	if !c.Addr.IsValid() {
		return netip.Prefix{}, fmt.Errorf("%w: zero cidr", ErrInvalid)
	}
	if c.Prefix > c.Family().Bits() {
		return netip.Prefix{}, fmt.Errorf("%w: prefix /%d out of range for %s", ErrInvalid, c.Prefix, c.Family())
	}
	return netip.PrefixFrom(c.Addr.Unmap(), int(c.Prefix)), nil
}

// CidrFromPrefix 从 netip.Prefix 构造 Cidr。无效前缀返回零值 Cidr。
func CidrFromPrefix(p netip.Prefix) Cidr {
	if !p.IsValid() {
		return Cidr{}
	}
	return Cidr{Addr: p.Addr(), Prefix: uint8(p.Bits())}
}

// IpRangeToNetipx 将 IpRange 转换为 netipx.IPRange，
// 便于接入 netipx 的 IPSet 等集合运算。零值区间转换为零值 IPRange。
func IpRangeToNetipx(r IpRange) netipx.IPRange {
	if !r.IsValid() {
		return netipx.IPRange{}
	}
	return netipx.IPRangeFrom(r.Beg().Unmap(), r.End().Unmap())
}

// IpRangeFromNetipx 从 netipx.IPRange 构造 IpRange，
// 走与 [NewIpRange] 相同的严格校验。
func IpRangeFromNetipx(r netipx.IPRange) (IpRange, error) {
	return NewIpRange(r.From(), r.To())
}

// CollapseToPrefixes 是 [CollapseCidrs] 的 netip.Prefix 版本，
// 输入输出都使用标准库前缀类型。无效前缀被跳过（宽容语义，
// 与 [CollapseStrings] 一致）。
func CollapseToPrefixes(input []netip.Prefix, maxGap Uint128) []netip.Prefix {
	cidrs := make([]Cidr, 0, len(input))
	for _, p := range input {
		if !p.IsValid() {
			continue
		}
		cidrs = append(cidrs, CidrFromPrefix(p))
	}
	collapsed := CollapseCidrs(cidrs, maxGap)
	out := make([]netip.Prefix, 0, len(collapsed))
	for _, c := range collapsed {
		out = append(out, netip.PrefixFrom(c.Addr.Unmap(), int(c.Prefix)))
	}
	return out
}

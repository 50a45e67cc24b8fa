package xip

import "net/netip"

// Family 表示 IP 地址族。
type Family uint8

const (
	// V0 表示无效或未知的地址族。
	V0 Family = 0
	// V4 表示 IPv4。
	V4 Family = 4
	// V6 表示 IPv6。
	V6 Family = 6
)

// String 返回地址族的字符串表示。
func (f Family) String() string {
	switch f {
	case V4:
		return "IPv4"
	case V6:
		return "IPv6"
	default:
		return "unknown"
	}
}

// Bits 返回地址族的位宽：IPv4 为 32，IPv6 为 128，无效地址族为 0。
// 全包的整数运算均以此位宽为准。
func (f Family) Bits() uint8 {
	switch f {
	case V4:
		return 32
	case V6:
		return 128
	default:
		return 0
	}
}

// AddrFamily 返回 addr 的地址族（V4 或 V6）。
// IPv4-mapped IPv6 地址视为 V4。
// 无效地址返回 V0。
func AddrFamily(addr netip.Addr) Family {
	if addr.Is4() || addr.Is4In6() {
		return V4
	}
	if addr.IsValid() {
		return V6
	}
	return V0
}

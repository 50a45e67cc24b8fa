package xip

import (
	"encoding/binary"
	"net/netip"
)

// AddrToUint128 将地址转换为其地址族原生位宽下的大端无符号整数。
// IPv4 的值位于低 32 位（IPv4-mapped IPv6 先归一化为纯 IPv4）。
// 返回值与地址在各自地址族内一一对应，可经 [AddrFromUint128] 精确还原。
// 无效地址返回 (Uint128{}, V0)。
func AddrToUint128(addr netip.Addr) (Uint128, Family) {
	switch {
	case addr.Is4() || addr.Is4In6():
		b := addr.Unmap().As4()
		return Uint128From64(uint64(binary.BigEndian.Uint32(b[:]))), V4
	case addr.IsValid():
		b := addr.As16()
		return Uint128{
			Hi: binary.BigEndian.Uint64(b[:8]),
			Lo: binary.BigEndian.Uint64(b[8:]),
		}, V6
	default:
		return Uint128{}, V0
	}
}

// AddrFromUint128 从整数值构造指定地址族的地址。
// V4 只取低 32 位，V6 取全部 128 位。
// 调用方负责保证值在地址族范围内（本包内部只会产生范围内的值），
// 超范围的高位被静默截断。
// 无效地址族返回零值地址。
func AddrFromUint128(fam Family, v Uint128) netip.Addr {
	switch fam {
	case V4:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(v.Lo))
		return netip.AddrFrom4(b)
	case V6:
		var b [16]byte
		binary.BigEndian.PutUint64(b[:8], v.Hi)
		binary.BigEndian.PutUint64(b[8:], v.Lo)
		return netip.AddrFrom16(b)
	default:
		return netip.Addr{}
	}
}

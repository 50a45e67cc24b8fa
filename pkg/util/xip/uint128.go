package xip

import (
	"math/big"
	"math/bits"
)

// Uint128 表示 128 位无符号整数，由两个 uint64 组成（大端语义：Hi 为高 64 位）。
//
// Uint128 是不可变值类型：
//   - 零值表示数值 0，可直接使用
//   - 可直接比较（==）和用作 map key
//   - 所有运算返回新值，并发安全
//
// IPv4 与 IPv6 地址统一以 Uint128 表示参与排序、合并与分解运算，
// IPv4 的 32 位值存放于低 32 位。地址与整数的互转见 [AddrToUint128]
// 和 [AddrFromUint128]。
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// MaxUint128 是可表示的最大值（全 1）。
// 同时用作"全 IPv6 地址空间大小"的哨兵值：2^128 无法用 128 位表示，
// 以最大值代替（不存在更大的可表示值）。
var MaxUint128 = Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}

// Uint128From64 从 uint64 构造 Uint128。
func Uint128From64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// IsZero 报告 u 是否为 0。
func (u Uint128) IsZero() bool {
	return u.Hi|u.Lo == 0
}

// Cmp 比较两个值。返回 -1 (u < v)、0 (u == v)、1 (u > v)。
func (u Uint128) Cmp(v Uint128) int {
	switch {
	case u.Hi < v.Hi:
		return -1
	case u.Hi > v.Hi:
		return 1
	case u.Lo < v.Lo:
		return -1
	case u.Lo > v.Lo:
		return 1
	default:
		return 0
	}
}

// And 返回按位与（u & v）。
func (u Uint128) And(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi & v.Hi, Lo: u.Lo & v.Lo}
}

// Or 返回按位或（u | v）。
func (u Uint128) Or(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi | v.Hi, Lo: u.Lo | v.Lo}
}

// Not 返回按位取反（^u）。
func (u Uint128) Not() Uint128 {
	return Uint128{Hi: ^u.Hi, Lo: ^u.Lo}
}

// SatAdd 返回饱和加法结果：溢出时返回 [MaxUint128]。
func (u Uint128) SatAdd(v Uint128) Uint128 {
	lo, carry := bits.Add64(u.Lo, v.Lo, 0)
	hi, carry := bits.Add64(u.Hi, v.Hi, carry)
	if carry != 0 {
		return MaxUint128
	}
	return Uint128{Hi: hi, Lo: lo}
}

// SatAdd64 返回 u 与 64 位值的饱和加法结果。
func (u Uint128) SatAdd64(v uint64) Uint128 {
	return u.SatAdd(Uint128From64(v))
}

// SatSub 返回饱和减法结果：下溢时返回 0。
func (u Uint128) SatSub(v Uint128) Uint128 {
	lo, borrow := bits.Sub64(u.Lo, v.Lo, 0)
	hi, borrow := bits.Sub64(u.Hi, v.Hi, borrow)
	if borrow != 0 {
		return Uint128{}
	}
	return Uint128{Hi: hi, Lo: lo}
}

// Lsh 返回左移 n 位的结果。n >= 128 时返回 0。
func (u Uint128) Lsh(n uint8) Uint128 {
	switch {
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Hi: u.Lo << (n - 64)}
	case n == 0:
		return u
	default:
		return Uint128{
			Hi: u.Hi<<n | u.Lo>>(64-n),
			Lo: u.Lo << n,
		}
	}
}

// TrailingZeros 返回低位连续 0 的个数。u == 0 时返回 128。
func (u Uint128) TrailingZeros() uint8 {
	if u.Lo != 0 {
		return uint8(bits.TrailingZeros64(u.Lo))
	}
	return uint8(64 + bits.TrailingZeros64(u.Hi))
}

// BitLen 返回表示 u 所需的最小位数。u == 0 时返回 0。
// 对 x >= 1，floor(log2(x)) == x.BitLen() - 1。
func (u Uint128) BitLen() int {
	if u.Hi != 0 {
		return 64 + bits.Len64(u.Hi)
	}
	return bits.Len64(u.Lo)
}

// BigInt 返回等值的 [*big.Int]（始终非负）。
func (u Uint128) BigInt() *big.Int {
	v := new(big.Int).SetUint64(u.Hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(u.Lo))
}

// String 返回十进制字符串表示。
func (u Uint128) String() string {
	if u.Hi == 0 {
		// uint64 快速路径，避免 big.Int 分配
		return new(big.Int).SetUint64(u.Lo).String()
	}
	return u.BigInt().String()
}

// MaskOf 返回给定位宽下的前缀掩码：宽度内高 prefix 位为 1，低 bits-prefix 位为 0。
// IPv4（bits=32）的掩码占据低 32 位，与地址的整数表示对齐。
//
// 边界情况必须显式分支处理：prefix == 0 返回全 0；prefix >= bits 返回宽度内全 1。
// 朴素的 (1 << (bits-prefix)) - 1 在 prefix == 0 时移位量等于宽度，结果未定义。
func MaskOf(bitsWidth, prefix uint8) Uint128 {
	if prefix == 0 {
		return Uint128{}
	}
	all := MaxUint128
	if bitsWidth < 128 {
		all = Uint128From64(1).Lsh(bitsWidth).SatSub(Uint128From64(1))
	}
	if prefix >= bitsWidth {
		return all
	}
	low := Uint128From64(1).Lsh(bitsWidth - prefix).SatSub(Uint128From64(1))
	return all.And(low.Not())
}

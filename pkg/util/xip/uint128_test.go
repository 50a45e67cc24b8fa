package xip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUint128Cmp(t *testing.T) {
	tests := []struct {
		name string
		u    Uint128
		v    Uint128
		want int
	}{
		{name: "equal zero", u: Uint128{}, v: Uint128{}, want: 0},
		{name: "equal max", u: MaxUint128, v: MaxUint128, want: 0},
		{name: "lo less", u: Uint128From64(1), v: Uint128From64(2), want: -1},
		{name: "lo greater", u: Uint128From64(3), v: Uint128From64(2), want: 1},
		{name: "hi dominates lo", u: Uint128{Hi: 1}, v: Uint128{Lo: ^uint64(0)}, want: 1},
		{name: "hi less", u: Uint128{Hi: 1, Lo: 100}, v: Uint128{Hi: 2}, want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.u.Cmp(tt.v))
		})
	}
}

func TestUint128SatAdd(t *testing.T) {
	tests := []struct {
		name string
		u    Uint128
		v    Uint128
		want Uint128
	}{
		{name: "small", u: Uint128From64(1), v: Uint128From64(2), want: Uint128From64(3)},
		{name: "lo carry into hi", u: Uint128{Lo: ^uint64(0)}, v: Uint128From64(1), want: Uint128{Hi: 1}},
		{name: "saturate at max", u: MaxUint128, v: Uint128From64(1), want: MaxUint128},
		{name: "saturate far past max", u: MaxUint128, v: MaxUint128, want: MaxUint128},
		{name: "add zero", u: Uint128{Hi: 5, Lo: 7}, v: Uint128{}, want: Uint128{Hi: 5, Lo: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.u.SatAdd(tt.v))
		})
	}
}

func TestUint128SatSub(t *testing.T) {
	tests := []struct {
		name string
		u    Uint128
		v    Uint128
		want Uint128
	}{
		{name: "small", u: Uint128From64(5), v: Uint128From64(2), want: Uint128From64(3)},
		{name: "borrow from hi", u: Uint128{Hi: 1}, v: Uint128From64(1), want: Uint128{Lo: ^uint64(0)}},
		{name: "saturate at zero", u: Uint128From64(1), v: Uint128From64(2), want: Uint128{}},
		{name: "zero minus max", u: Uint128{}, v: MaxUint128, want: Uint128{}},
		{name: "max minus max", u: MaxUint128, v: MaxUint128, want: Uint128{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.u.SatSub(tt.v))
		})
	}
}

func TestUint128Lsh(t *testing.T) {
	tests := []struct {
		name string
		u    Uint128
		n    uint8
		want Uint128
	}{
		{name: "shift zero", u: Uint128From64(1), n: 0, want: Uint128From64(1)},
		{name: "shift within lo", u: Uint128From64(1), n: 32, want: Uint128From64(1 << 32)},
		{name: "shift into hi", u: Uint128From64(1), n: 64, want: Uint128{Hi: 1}},
		{name: "cross boundary", u: Uint128From64(0xFF), n: 60, want: Uint128{Hi: 0xF, Lo: 0xF << 60}},
		{name: "shift 127", u: Uint128From64(1), n: 127, want: Uint128{Hi: 1 << 63}},
		{name: "shift 128 overflows to zero", u: Uint128From64(1), n: 128, want: Uint128{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.u.Lsh(tt.n))
		})
	}
}

func TestUint128TrailingZeros(t *testing.T) {
	tests := []struct {
		name string
		u    Uint128
		want uint8
	}{
		{name: "zero", u: Uint128{}, want: 128},
		{name: "one", u: Uint128From64(1), want: 0},
		{name: "low bit 4", u: Uint128From64(16), want: 4},
		{name: "only hi set", u: Uint128{Hi: 1}, want: 64},
		{name: "hi top bit", u: Uint128{Hi: 1 << 63}, want: 127},
		{name: "max", u: MaxUint128, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.u.TrailingZeros())
		})
	}
}

func TestUint128BitLen(t *testing.T) {
	tests := []struct {
		name string
		u    Uint128
		want int
	}{
		{name: "zero", u: Uint128{}, want: 0},
		{name: "one", u: Uint128From64(1), want: 1},
		{name: "256", u: Uint128From64(256), want: 9},
		{name: "hi one", u: Uint128{Hi: 1}, want: 65},
		{name: "max", u: MaxUint128, want: 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.u.BitLen())
		})
	}
}

func TestUint128String(t *testing.T) {
	tests := []struct {
		name string
		u    Uint128
		want string
	}{
		{name: "zero", u: Uint128{}, want: "0"},
		{name: "uint64 fast path", u: Uint128From64(65536), want: "65536"},
		{name: "hi one is 2^64", u: Uint128{Hi: 1}, want: "18446744073709551616"},
		{name: "max", u: MaxUint128, want: "340282366920938463463374607431768211455"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.u.String())
			assert.Equal(t, tt.want, tt.u.BigInt().String())
		})
	}
}

func TestMaskOf(t *testing.T) {
	tests := []struct {
		name   string
		bits   uint8
		prefix uint8
		want   Uint128
	}{
		{name: "v4 /0", bits: 32, prefix: 0, want: Uint128{}},
		{name: "v4 /24", bits: 32, prefix: 24, want: Uint128From64(0xFFFFFF00)},
		{name: "v4 /32", bits: 32, prefix: 32, want: Uint128From64(0xFFFFFFFF)},
		{name: "v4 prefix past width clamps", bits: 32, prefix: 40, want: Uint128From64(0xFFFFFFFF)},
		{name: "v6 /0", bits: 128, prefix: 0, want: Uint128{}},
		{name: "v6 /64", bits: 128, prefix: 64, want: Uint128{Hi: ^uint64(0)}},
		{name: "v6 /96", bits: 128, prefix: 96, want: Uint128{Hi: ^uint64(0), Lo: 0xFFFFFFFF00000000}},
		{name: "v6 /128", bits: 128, prefix: 128, want: MaxUint128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskOf(tt.bits, tt.prefix))
		})
	}
}

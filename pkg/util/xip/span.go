package xip

// span 是内部统一的工作表示：按地址族标记的闭区间整数范围。
// IPv4 与 IPv6 经 [AddrToUint128] 归一化为 span 后共用同一套
// 排序 / 合并 / 分解代码路径。
// 不变式：beg <= end。
type span struct {
	fam Family
	beg Uint128
	end Uint128 // 含端点
}

// compareSpan 按 (fam, beg, end) 升序比较，用作全序排序键。
// 地址族是首要键：输出始终按族分组。
func compareSpan(a, b span) int {
	switch {
	case a.fam < b.fam:
		return -1
	case a.fam > b.fam:
		return 1
	}
	if c := a.beg.Cmp(b.beg); c != 0 {
		return c
	}
	return a.end.Cmp(b.end)
}

// length 返回区间包含的地址数量（饱和）。
// 全 IPv6 地址空间的数量为 2^128，无法用 128 位表示，
// 返回 [MaxUint128] 哨兵值。
func (r span) length() Uint128 {
	diff := r.end.SatSub(r.beg)
	if diff == MaxUint128 {
		return MaxUint128
	}
	return diff.SatAdd64(1)
}

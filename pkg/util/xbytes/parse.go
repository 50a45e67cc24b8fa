package xbytes

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// sizeSuffix 将一个单位后缀映射到字节乘数（以 2 为底的指数形式，
// 1024^7 起就超出 uint64，乘数统一用指数保存，换算时走浮点）。
type sizeSuffix struct {
	suffix string
	exp    int // 字节数 = 数值 * 2^exp
}

// 后缀表按长度降序排列：长形式优先匹配，避免 "kilobyte" 的结尾
// 字母被当成单字母单位吞掉。所有乘数都是 1024 的幂。
var sizeSuffixes = []sizeSuffix{
	{"kilobyte", 10},
	{"megabyte", 20},
	{"gigabyte", 30},
	{"terabyte", 40},
	{"petabyte", 50},
	{"exabyte", 60},
	{"zetabyte", 70},
	{"yottabyte", 80},
	{"kb", 10},
	{"mb", 20},
	{"gb", 30},
	{"tb", 40},
	{"pb", 50},
	{"eb", 60},
	{"zb", 70},
	{"yb", 80},
	{"k", 10},
	{"m", 20},
	{"g", 30},
	{"t", 40},
	{"p", 50},
	{"e", 60},
	{"z", 70},
	{"y", 80},
}

// ParseSize 将大小描述字符串换算为字节数。
//
// 识别的单位后缀（大小写不敏感，可带复数 s，数字与单位间可有空格）：
//   - 单字母: k, m, g, t, p, e, z, y
//   - 双字母: kb, mb, gb, tb, pb, eb, zb, yb
//   - 长形式: kilobyte, megabyte, ..., yottabyte
//
// 所有乘数均为 1024 的幂（"10kb" = 10240）。数字部分按浮点解析，
// 支持 "5.2 mb" 这样的小数。以 "b"/"byte" 结尾或不带后缀的输入
// 按纯字节数解析（此时必须是非负整数）。
//
// 负数返回 [ErrInvalidSize]；换算结果超出 uint64 返回 [ErrSizeTooLarge]。
func ParseSize(s string) (uint64, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	t = strings.TrimSuffix(t, "s")

	for _, suf := range sizeSuffixes {
		rest, ok := strings.CutSuffix(t, suf.suffix)
		if !ok {
			continue
		}
		num, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil {
			// 如 "kilobyte" 命中单字母 "e" 后剩下 "kilobyt"：
			// 不是数字就继续尝试更短的后缀
			continue
		}
		return scaleSize(num, suf.exp)
	}

	// 以 b/byte 结尾或无后缀：按纯字节数解析
	if rest, ok := strings.CutSuffix(t, "byte"); ok {
		t = rest
	} else {
		t = strings.TrimSuffix(t, "b")
	}
	v, err := strconv.ParseUint(strings.TrimSpace(t), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	return v, nil
}

// scaleSize 计算 num * 2^exp 并校验可表示性。
func scaleSize(num float64, exp int) (uint64, error) {
	if num < 0 || math.IsNaN(num) {
		return 0, fmt.Errorf("%w: negative or NaN size", ErrInvalidSize)
	}
	result := num * math.Ldexp(1, exp)
	if result >= math.MaxUint64 {
		return 0, fmt.Errorf("%w: %g bytes", ErrSizeTooLarge, result)
	}
	return uint64(result), nil
}

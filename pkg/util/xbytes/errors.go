package xbytes

import "errors"

// 预定义错误变量，支持 errors.Is 判断。
var (
	// ErrNotANumber 表示输入不是常规数值（NaN 或 Inf）。
	ErrNotANumber = errors.New("xbytes: not a regular number")

	// ErrPrecision 表示精度参数超出 0-3 的支持范围。
	ErrPrecision = errors.New("xbytes: precision must be in range 0-3")

	// ErrInvalidSize 表示大小字符串无法解析（数字部分非法或为负数）。
	ErrInvalidSize = errors.New("xbytes: invalid size string")

	// ErrSizeTooLarge 表示换算出的字节数超出 uint64 可表示范围。
	ErrSizeTooLarge = errors.New("xbytes: size too large")
)

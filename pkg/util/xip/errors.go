package xip

import (
	"errors"
	"fmt"
)

// 预定义错误变量，支持 errors.Is 判断。
var (
	// ErrInvalid 表示输入不符合单 IP / CIDR / 范围中的任何一种语法。
	ErrInvalid = errors.New("xip: invalid IP, CIDR or range")

	// ErrInvalidRangeFormat 表示范围 token 无法按 "-" 拆分为恰好两部分。
	ErrInvalidRangeFormat = errors.New("xip: invalid range format")

	// ErrInvalidRangeStart 表示范围起始部分不是合法的 IP 地址。
	ErrInvalidRangeStart = errors.New("xip: invalid range start")

	// ErrInvalidRangeEnd 表示范围结束部分不是合法的 IP 地址。
	ErrInvalidRangeEnd = errors.New("xip: invalid range end")

	// ErrInvalidRangeEndValue 表示短格式范围的结束部分不是合法的十进制数。
	ErrInvalidRangeEndValue = errors.New("xip: invalid range end value")

	// ErrInvalidV4Octet 表示短格式结束值超出 IPv4 末段上限（255）。
	ErrInvalidV4Octet = errors.New("xip: IPv4 octet out of range")

	// ErrInvalidV6Hextet 表示短格式结束值超出 IPv6 末组上限（65535）。
	ErrInvalidV6Hextet = errors.New("xip: IPv6 hextet out of range")

	// ErrRangeOrder 表示范围起始地址大于结束地址。
	ErrRangeOrder = errors.New("xip: range start greater than end")

	// ErrRangeTooLarge 表示地址展开数量达到 [MaxRangeSize] 上限。
	// 具体数量通过 [RangeTooLargeError] 传递。
	ErrRangeTooLarge = errors.New("xip: range too large")

	// ErrFamilyMismatch 表示同一范围内的两个地址不属于同一地址族。
	ErrFamilyMismatch = errors.New("xip: IP family mismatch")
)

// RangeTooLargeError 携带被拒绝展开的地址数量，便于诊断。
// errors.Is(err, ErrRangeTooLarge) 对本类型返回 true。
type RangeTooLargeError struct {
	// Count 是请求展开的地址总数。
	Count Uint128
}

// Error 实现 error 接口。
func (e *RangeTooLargeError) Error() string {
	return fmt.Sprintf("xip: range too large: %s addresses (max %d)", e.Count, MaxRangeSize)
}

// Is 支持 errors.Is(err, ErrRangeTooLarge) 统一分流。
func (e *RangeTooLargeError) Is(target error) bool {
	return target == ErrRangeTooLarge
}

package xsysinfo

import "errors"

var (
	// ErrInvalidFileLimit 表示文件限制值无效。
	ErrInvalidFileLimit = errors.New("xsysinfo: file limit must be greater than 0")

	// ErrUnsupportedPlatform 表示当前平台不支持此操作。
	ErrUnsupportedPlatform = errors.New("xsysinfo: unsupported platform")

	// ErrProcessUnavailable 表示当前进程的信息句柄初始化失败。
	ErrProcessUnavailable = errors.New("xsysinfo: process info unavailable")
)

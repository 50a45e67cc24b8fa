package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// containsNullByte 检测路径是否包含空字节。
// Linux 内核在 VFS 层会在空字节处截断路径，导致 Go 代码与操作系统看到的路径不一致。
func containsNullByte(path string) bool {
	return strings.ContainsRune(path, 0)
}

// hasDotDotSegment 检测路径中是否包含 ".." 作为独立路径段。
// 使用逐字符扫描实现零内存分配，避免 strings.FieldsFunc 的 []string 开销。
// 同时将 '/' 和 '\' 视为分隔符，以检测 Windows 风格路径穿越（即使在 Linux 上）。
func hasDotDotSegment(path string) bool {
	i := 0
	for i < len(path) {
		// 跳过分隔符
		if path[i] == '/' || path[i] == '\\' {
			i++
			continue
		}
		// 找到段的结束位置
		j := i
		for j < len(path) && path[j] != '/' && path[j] != '\\' {
			j++
		}
		// 检查段是否恰好为 ".."
		if j-i == 2 && path[i] == '.' && path[i+1] == '.' {
			return true
		}
		i = j
	}
	return false
}

// SanitizePath 对文件路径进行安全检查和规范化
//
// 安全边界：本函数仅做格式净化，不防护绝对路径穿越。
//
// 功能：
//   - 路径规范化（消除 . 和冗余斜杠）
//   - 阻止相对路径穿越（如 "../etc/passwd"）
//   - 拒绝空路径和显式目录路径（尾随 "/" 或 "\"）
//
// 重要限制：
//   - 本函数接受绝对路径（包括 Windows 格式如 "C:\..." 和 UNC "\\server\..."）
//   - 绝对路径的 ".." 会被 filepath.Clean 正常解析
//   - 例如："/var/log/../etc" -> "/etc"（这是合法的绝对路径，不是穿越）
//
// 适用场景：
//   - 验证用户输入的文件名格式（如输出文件参数）
//   - 防止相对路径穿越攻击
//
// 不适用场景：
//   - 需要防止绝对路径访问敏感文件（请用系统权限控制）
//
// 返回规范化后的路径，或错误（如果路径格式无效）。
//
// 设计决策: 函数名 SanitizePath 表示"格式净化"（空路径、空字节、穿越、目录路径），
// 不等同于"沙箱隔离"。
func SanitizePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}

	if containsNullByte(filename) {
		return "", fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}

	// 先检查原始路径是否以分隔符结尾（表示目录）
	// 必须在 filepath.Clean 之前检查，因为 Clean 会移除尾部斜杠
	// 同时检查 / 和 \ 以确保跨平台兼容性：Windows 接受两种分隔符，
	// 拒绝尾部 \ 可防止 Windows 路径被误传入后产生语义歧义
	//
	// 设计决策: 在 Linux 上反斜杠是合法的文件名字符，以 "\" 结尾的文件名理论上合法，
	// 但极为罕见且几乎总是跨平台拼接错误。为安全起见统一拒绝，避免语义歧义。
	if strings.HasSuffix(filename, "/") || strings.HasSuffix(filename, "\\") {
		return "", fmt.Errorf("path is a directory: %w", ErrInvalidPath)
	}

	// 规范化路径
	cleaned := filepath.Clean(filename)

	// 检查路径穿越：规范化后不应包含 ".." 目录段
	//
	// 不能使用 strings.Contains(cleaned, "..")：
	//   - 会误伤合法文件名（如 "app..2024.log"）
	// 这里按路径段精确判断：只要某个 segment 恰好是 ".." 就拒绝。
	if hasDotDotSegment(cleaned) {
		return "", fmt.Errorf("path traversal in filename: %w", ErrPathTraversal)
	}

	// 获取文件名部分，确保不为空
	base := filepath.Base(cleaned)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("no file name specified: %w", ErrInvalidPath)
	}

	return cleaned, nil
}

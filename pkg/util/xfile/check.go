package xfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// CheckReadableDir 校验路径指向一个可读目录，并返回其规范化
// （绝对、符号链接已解析）后的路径。
//
// 校验顺序：
//  1. 路径存在且元数据可获取（不存在时错误包装 os.ErrNotExist，
//     可用 errors.Is 判断）
//  2. 是目录（否则返回 [ErrNotDirectory]）
//  3. 实际可打开读取（权限不足时返回底层 *os.PathError）
//
// 返回的规范化路径适合存入配置后续复用：不随工作目录变化，
// 也不受中途的符号链接重定向影响。
func CheckReadableDir(path string) (string, error) {
	info, err := statPath(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}

	// stat 通过不代表可读，真实打开一次确认
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open directory: %w", err)
	}
	_ = f.Close()

	return canonicalize(path)
}

// CheckReadableFile 校验路径指向一个可读的普通文件，并返回其规范化
// （绝对、符号链接已解析）后的路径。
//
// 目录、设备文件、socket 等非普通文件返回 [ErrNotRegularFile]。
// 其余语义同 [CheckReadableDir]。
func CheckReadableFile(path string) (string, error) {
	info, err := statPath(path)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	_ = f.Close()

	return canonicalize(path)
}

// statPath 做公共的前置校验：非空、无空字节、元数据可获取。
// os.Stat 跟随符号链接，符号链接指向的最终目标参与类型判断。
func statPath(path string) (os.FileInfo, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required: %w", ErrEmptyPath)
	}
	if containsNullByte(path) {
		return nil, fmt.Errorf("path contains null byte: %w", ErrNullByte)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return info, nil
}

// canonicalize 将已确认存在的路径解析为绝对、无符号链接的规范形式。
func canonicalize(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", fmt.Errorf("resolve symlinks: %w", err)
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}
	return abs, nil
}

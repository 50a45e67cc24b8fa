// Package xfile 提供通用文件系统操作工具。
//
// 本包提供安全、便捷的文件和目录操作函数，是逐步积累的工具集。
// 所有函数都考虑了安全性（如路径穿越防护）和跨平台兼容性。
//
// # 核心功能
//
//   - path.go: [SanitizePath] 路径格式净化与相对穿越防护
//   - dir.go: [EnsureDir] / [EnsureDirWithPerm] 确保文件父目录存在
//   - check.go: [CheckReadableDir] / [CheckReadableFile] 可读性校验，
//     返回规范化（绝对、符号链接已解析）路径
//
// # 路径穿越检测
//
// 路径穿越检测使用精确的路径段匹配，只有 ".." 作为独立路径段时才被视为穿越攻击。
// 以 ".." 开头的合法文件名（如 "..config"、"...hidden"）不会被误判：
//
//	SanitizePath("..config")        // ✓ 合法
//	SanitizePath("../etc/passwd")   // ✗ 拒绝 -> 路径穿越
//
// # 空字节防护
//
// 所有入口均拒绝包含空字节（\x00）的路径。Linux 内核在 VFS 层
// 会在空字节处截断路径，导致 Go 代码与操作系统实际操作的路径不一致。
//
// # URL 编码注意事项（前置条件）
//
// 本包处理文件系统路径，不处理 URL 编码。"%2e%2e"、"%2f"、"%5c" 等编码序列
// 被视为合法的文件名字符，不会被识别为路径穿越或分隔符。
// 如果输入来自 HTTP 请求，调用方必须先完成 URL 解码再传入本包的任何函数。
//
// # 可读性校验与 TOCTOU
//
// [CheckReadableDir] / [CheckReadableFile] 通过真实 open 确认可读性，
// 并返回规范化路径供后续复用。注意校验与实际使用之间存在 TOCTOU
// （Time-of-Check-Time-of-Use）窗口，本包适用于可信环境下的启动期
// 参数校验（如配置目录、输入文件），不能替代对抗性环境下的安全文件访问。
//
// # 错误处理
//
// 预定义错误变量支持 [errors.Is] 判断：
//
//	_, err := xfile.CheckReadableDir("/no/such/dir")
//	if errors.Is(err, os.ErrNotExist) {
//	    // 目录不存在
//	}
//	_, err = xfile.CheckReadableDir("/etc/hosts")
//	if errors.Is(err, xfile.ErrNotDirectory) {
//	    // 存在但不是目录
//	}
package xfile

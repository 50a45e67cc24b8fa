// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xbytes: 字节尺寸工具，人类可读格式化与尺寸后缀解析
//   - xfile: 文件操作工具，目录创建、路径处理、可读性校验
//   - xip: IP 地址工具库，基于 net/netip 的 CIDR/范围解析、有界展开与最少 CIDR 收敛
//   - xsysinfo: 进程与主机资源信息采集，文件描述符上限管理
//
// 设计原则：
//   - 库代码保持纯值语义，不做网络 I/O
//   - 安全处理路径遍历和符号链接
//   - 跨平台兼容
package util

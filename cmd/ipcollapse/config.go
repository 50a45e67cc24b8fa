package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/omeyang/ipkit/pkg/util/xbytes"
	"github.com/omeyang/ipkit/pkg/util/xfile"
	"github.com/omeyang/ipkit/pkg/util/xip"
)

// 输出格式。
const (
	formatCidr  = "cidr"
	formatRange = "range"
)

// appConfig 是配置文件提供的默认值，命令行 flag 优先。
type appConfig struct {
	// Gap 默认模糊合并间隙，语法同 --gap。
	Gap string `koanf:"gap"`
	// Format 默认输出格式（cidr | range）。
	Format string `koanf:"format"`
}

// defaultConfig 返回零配置时的默认值。
func defaultConfig() appConfig {
	return appConfig{Gap: "0", Format: formatCidr}
}

// loadConfig 从 YAML 文件加载配置。path 为空时返回默认配置。
// 文件经 xfile.CheckReadableFile 校验后整体读入，再交给 koanf 解析。
func loadConfig(path string) (appConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	canonical, err := xfile.CheckReadableFile(path)
	if err != nil {
		return cfg, fmt.Errorf("配置文件不可读: %w", err)
	}

	data, err := os.ReadFile(canonical)
	if err != nil {
		return cfg, fmt.Errorf("读取配置文件失败: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return cfg, fmt.Errorf("解析配置文件失败: %w", err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("配置字段映射失败: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// validateConfig 校验配置值的合法性。
func validateConfig(cfg appConfig) error {
	if _, err := parseGap(cfg.Gap); err != nil {
		return fmt.Errorf("配置项 gap 无效: %w", err)
	}
	switch cfg.Format {
	case formatCidr, formatRange:
		return nil
	default:
		return fmt.Errorf("配置项 format 无效: %q（可选 cidr | range）", cfg.Format)
	}
}

// parseGap 解析模糊合并间隙。
// 接受纯十进制数字（"1024"）或带尺寸后缀的计数（"4k" = 4096，
// 后缀语法见 xbytes.ParseSize）。空串与 "0" 均表示禁用模糊合并。
func parseGap(s string) (xip.Uint128, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return xip.Uint128{}, nil
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return xip.Uint128From64(n), nil
	}
	n, err := xbytes.ParseSize(s)
	if err != nil {
		return xip.Uint128{}, fmt.Errorf("无法解析间隙 %q: %w", s, err)
	}
	return xip.Uint128From64(n), nil
}

package app

import (
	"fmt"
	"strings"

	brcfg "tracer/internal/config"
)

// StartupSummary 汇总本次运行的关键配置，启动时打印一次。
type StartupSummary struct {
	SourcePath    string
	TrimSentinels bool
	Infected      []string
	StoreEnabled  bool
	ReportEnabled bool
	ServeEnabled  bool
	HTTPAddr      string
}

func buildSummary(cfg *brcfg.Config) *StartupSummary {
	return &StartupSummary{
		SourcePath:    cfg.Contacts.Path,
		TrimSentinels: cfg.Contacts.TrimSentinels,
		Infected:      cfg.Contacts.Infected,
		StoreEnabled:  cfg.Store.Enabled,
		ReportEnabled: cfg.Report.Enabled,
		ServeEnabled:  cfg.Serve.Enabled,
		HTTPAddr:      cfg.Serve.HTTPAddr,
	}
}

// Render 渲染摘要文本块，交给 logger.InfoBlock 逐行输出，
// 避免与标准输出上的结果映射混在一起。
func (s *StartupSummary) Render() string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "启动配置摘要 (STARTUP SUMMARY)")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "  输入文件: %s\n", s.SourcePath)
	fmt.Fprintf(&b, "  去除首尾占位记录: %v\n", s.TrimSentinels)
	fmt.Fprintf(&b, "  感染者 ID (%d):\n", len(s.Infected))
	for _, id := range s.Infected {
		fmt.Fprintf(&b, "    - %s\n", id)
	}
	fmt.Fprintf(&b, "  存储: %v  报表: %v\n", s.StoreEnabled, s.ReportEnabled)
	if s.ServeEnabled {
		fmt.Fprintf(&b, "  常驻模式: HTTP %s\n", s.HTTPAddr)
	}
	fmt.Fprint(&b, rule)
	return b.String()
}

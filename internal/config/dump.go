package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Dump 渲染生效后的完整配置（含默认值），用于 debug 级日志排查。
func (c *Config) Dump() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("config dump failed: %v", err)
	}
	return string(out)
}

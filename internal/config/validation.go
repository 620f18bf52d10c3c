package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func validate(c *Config) error {
	if !validLogLevels[strings.ToLower(c.App.LogLevel)] {
		return fmt.Errorf("app.log_level 不合法: %q", c.App.LogLevel)
	}
	if strings.TrimSpace(c.Contacts.Path) == "" {
		return fmt.Errorf("contacts.path cannot be empty")
	}
	seen := make(map[string]bool, len(c.Contacts.Infected))
	for i, id := range c.Contacts.Infected {
		id = strings.TrimSpace(id)
		if id == "" {
			return fmt.Errorf("contacts.infected[%d] cannot be empty", i)
		}
		if seen[id] {
			return fmt.Errorf("contacts.infected 存在重复 ID: %s", id)
		}
		seen[id] = true
		c.Contacts.Infected[i] = id
	}
	if c.Store.Enabled && strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("store.path cannot be empty when store is enabled")
	}
	if c.Report.Enabled && strings.TrimSpace(c.Report.OutputDir) == "" {
		return fmt.Errorf("report.output_dir cannot be empty when report is enabled")
	}
	if c.Serve.Enabled && strings.TrimSpace(c.Serve.HTTPAddr) == "" {
		return fmt.Errorf("serve.http_addr cannot be empty when serve is enabled")
	}
	return nil
}

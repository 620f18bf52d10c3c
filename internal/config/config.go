package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Load 读取配置文件并返回完整配置。
// 支持 include 字段引用其它配置文件，被引用文件先合并、主文件最后覆盖。
func Load(path string) (*Config, error) {
	files, err := resolveIncludes(path)
	if err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetConfigType("yaml")
	for _, file := range files {
		if err := mergeConfigFile(v, file); err != nil {
			return nil, fmt.Errorf("reading config file failed (%s): %w", file, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "toml"
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	cfg.applyDefaults()
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func mergeConfigFile(v *viper.Viper, path string) error {
	tmp := viper.New()
	tmp.SetConfigFile(path)
	if err := tmp.ReadInConfig(); err != nil {
		return err
	}
	return v.MergeConfigMap(tmp.AllSettings())
}

// resolveIncludes 展开 include 链，返回按合并顺序排列的文件列表（主文件最后）。
func resolveIncludes(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("config path cannot be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	stack := make(map[string]bool)
	files, err := collectFiles(abs, seen, stack)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return []string{abs}, nil
	}
	return files, nil
}

func collectFiles(path string, seen, stack map[string]bool) ([]string, error) {
	path = filepath.Clean(path)
	if stack[path] {
		return nil, fmt.Errorf("include cycle detected: %s", path)
	}
	if seen[path] {
		return nil, nil
	}
	stack[path] = true
	includes, err := includeList(path)
	if err != nil {
		return nil, fmt.Errorf("parsing include failed (%s): %w", path, err)
	}
	dir := filepath.Dir(path)
	var ordered []string
	for _, inc := range includes {
		inc = strings.TrimSpace(inc)
		if inc == "" {
			continue
		}
		incPath := inc
		if !filepath.IsAbs(inc) {
			incPath = filepath.Join(dir, inc)
		}
		sub, err := collectFiles(incPath, seen, stack)
		if err != nil {
			return nil, err
		}
		ordered = append(ordered, sub...)
	}
	delete(stack, path)
	seen[path] = true
	ordered = append(ordered, path)
	return ordered, nil
}

func includeList(path string) ([]string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	raw := v.Get("include")
	if raw == nil {
		return nil, nil
	}
	switch val := raw.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("include only supports strings")
			}
			if str = strings.TrimSpace(str); str != "" {
				out = append(out, str)
			}
		}
		return out, nil
	case []string:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("include must be a string array")
	}
}

package config

// Config 为顶层配置结构，字段与 YAML 配置文件一一对应。
type Config struct {
	App      AppConfig      `toml:"app"`
	Contacts ContactsConfig `toml:"contacts"`
	Store    StoreConfig    `toml:"store"`
	Report   ReportConfig   `toml:"report"`
	Serve    ServeConfig    `toml:"serve"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	LogPath  string `toml:"log_path"`
}

// ContactsConfig 描述输入文件与追踪目标。
type ContactsConfig struct {
	// Path 接触记录 JSON 文件路径。
	Path string `toml:"path"`
	// TrimSentinels 丢弃数组首尾的占位记录（上游无法生成空数组时的补偿）。
	TrimSentinels bool `toml:"trim_sentinels"`
	// Infected 感染者 ID 列表，顺序决定输出顺序。
	Infected []string `toml:"infected"`
}

type StoreConfig struct {
	Enabled    bool   `toml:"enabled"`
	Path       string `toml:"path"`
	RunLogPath string `toml:"run_log_path"`
}

type ReportConfig struct {
	Enabled   bool   `toml:"enabled"`
	OutputDir string `toml:"output_dir"`
}

// ServeConfig 控制常驻模式：HTTP API 与文件监听。
type ServeConfig struct {
	Enabled  bool   `toml:"enabled"`
	Watch    bool   `toml:"watch"`
	HTTPAddr string `toml:"http_addr"`
}

package config

// 两个观测到的感染者 ID，未配置 contacts.infected 时使用。
var DefaultInfected = []string{
	"64c0a6f2-9900-44d7-ac44-17d8b3e388e0",
	"1a57a4a3-0815-48a2-98be-00375fa5bda8",
}

const (
	DefaultContactPath = "contact_list"
	DefaultHTTPAddr    = ":9991"
	DefaultStorePath   = "data/tracer.db"
	DefaultRunLogPath  = "data/runlog.db"
	DefaultReportDir   = "reports"
)

// applyDefaults 填充未设置的字段。bool 类字段的零值即默认值，不在此处理。
func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Contacts.Path == "" {
		c.Contacts.Path = DefaultContactPath
	}
	if len(c.Contacts.Infected) == 0 {
		c.Contacts.Infected = append([]string(nil), DefaultInfected...)
	}
	if c.Store.Path == "" {
		c.Store.Path = DefaultStorePath
	}
	if c.Store.RunLogPath == "" {
		c.Store.RunLogPath = DefaultRunLogPath
	}
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = DefaultReportDir
	}
	if c.Serve.HTTPAddr == "" {
		c.Serve.HTTPAddr = DefaultHTTPAddr
	}
}

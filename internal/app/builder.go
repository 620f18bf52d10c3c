package app

import (
	"context"
	"fmt"

	brcfg "tracer/internal/config"
	"tracer/internal/contacts"
	"tracer/internal/logger"
	"tracer/internal/report"
	"tracer/internal/store"
	"tracer/internal/store/runlog"
	"tracer/internal/store/sqlite"
	tracehttp "tracer/internal/transport/http/trace"
	"tracer/internal/watch"

	"github.com/google/uuid"
)

// AppBuilder 按配置装配各组件，可注入替身用于测试。
type AppBuilder struct {
	cfg *brcfg.Config

	storeFn  func(string) (store.Store, error)
	runLogFn func(string) (*runlog.RunLogStore, error)
	httpFn   func(tracehttp.ServerConfig) (*tracehttp.Server, error)

	storeOverride  store.Store
	runLogOverride *runlog.RunLogStore
}

type AppBuilderOption func(*AppBuilder)

// WithStore 注入外部存储实例（测试用）。
func WithStore(st store.Store) AppBuilderOption {
	return func(b *AppBuilder) { b.storeOverride = st }
}

// WithRunLog 注入外部流水账实例（测试用）。
func WithRunLog(rl *runlog.RunLogStore) AppBuilderOption {
	return func(b *AppBuilder) { b.runLogOverride = rl }
}

func NewAppBuilder(cfg *brcfg.Config, opts ...AppBuilderOption) *AppBuilder {
	b := &AppBuilder{
		cfg:      cfg,
		storeFn:  func(path string) (store.Store, error) { return sqlite.NewSqliteStore(path) },
		runLogFn: runlog.NewRunLogStore,
		httpFn:   tracehttp.NewServer,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build 装配 App。存储、报表、HTTP、watcher 都按配置可选。
func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	cfg := b.cfg
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	warnNonUUID(cfg.Contacts.Infected)

	loader := contacts.NewLoader(cfg.Contacts.Path, cfg.Contacts.TrimSentinels)
	runner := NewTraceRunner(loader, cfg.Contacts.Infected)

	if cfg.Store.Enabled {
		st := b.storeOverride
		if st == nil {
			var err error
			st, err = b.storeFn(cfg.Store.Path)
			if err != nil {
				return nil, fmt.Errorf("初始化存储失败: %w", err)
			}
		}
		runner.WithStore(st)

		rl := b.runLogOverride
		if rl == nil {
			var err error
			rl, err = b.runLogFn(cfg.Store.RunLogPath)
			if err != nil {
				return nil, fmt.Errorf("初始化 run log 失败: %w", err)
			}
		}
		runner.WithRunLog(rl)
	}

	if cfg.Report.Enabled {
		runner.WithReport(report.NewWriter(cfg.Report.OutputDir))
	}

	app := &App{
		cfg:     cfg,
		runner:  runner,
		Summary: buildSummary(cfg),
	}

	if cfg.Serve.Enabled {
		srv, err := b.httpFn(tracehttp.ServerConfig{Addr: cfg.Serve.HTTPAddr, Service: runner})
		if err != nil {
			return nil, fmt.Errorf("初始化 HTTP 服务失败: %w", err)
		}
		app.http = srv

		if cfg.Serve.Watch {
			watcher, err := watch.NewFileWatcher(cfg.Contacts.Path, func() {
				if err := runner.Recompute(context.Background()); err != nil {
					logger.Errorf("重新计算失败: %v", err)
				}
			})
			if err != nil {
				return nil, fmt.Errorf("初始化 watcher 失败: %w", err)
			}
			app.watcher = watcher
		}
	}
	return app, nil
}

// warnNonUUID 感染者 ID 通常是 UUID；格式不符不算错误，只提示一次。
func warnNonUUID(ids []string) {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			logger.Warnf("感染者 ID 不是 UUID 格式：%s", id)
		}
	}
}

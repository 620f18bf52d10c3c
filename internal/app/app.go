package app

import (
	"context"
	"fmt"

	brcfg "tracer/internal/config"
	"tracer/internal/logger"
	tracehttp "tracer/internal/transport/http/trace"
	"tracer/internal/watch"

	"golang.org/x/sync/errgroup"
)

// App 负责应用级编排：加载配置→初始化依赖→执行追踪计算。
// serve 关闭时为一次性批处理：算完打印即退出。
type App struct {
	cfg     *brcfg.Config
	runner  *TraceRunner
	http    *tracehttp.Server
	watcher *watch.FileWatcher
	Summary *StartupSummary
}

// NewApp 根据配置构建应用对象（不启动）。
func NewApp(cfg *brcfg.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)
	return buildAppWithWire(context.Background(), cfg)
}

// Run 执行一次追踪计算；serve 模式下随后常驻提供 HTTP 与文件监听。
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	if a.runner == nil {
		return fmt.Errorf("trace runner not initialized")
	}
	defer a.runner.Close()

	if a.Summary != nil {
		logger.InfoBlock(a.Summary.Render())
	}
	logger.Debugf("生效配置：\n%s", a.cfg.Dump())

	result, err := a.runner.Execute(ctx)
	if err != nil {
		return err
	}
	fmt.Println(result.Format())

	if !a.cfg.Serve.Enabled {
		return nil
	}

	group, ctx := errgroup.WithContext(ctx)
	if a.http != nil {
		group.Go(func() error {
			if err := a.http.Start(ctx); err != nil {
				return fmt.Errorf("trace http server error: %w", err)
			}
			return nil
		})
	}
	if a.watcher != nil {
		group.Go(func() error {
			return a.watcher.Run(ctx)
		})
	}
	return group.Wait()
}

// Runner 暴露底层 TraceRunner 实例（供测试使用）。
func (a *App) Runner() *TraceRunner {
	if a == nil {
		return nil
	}
	return a.runner
}

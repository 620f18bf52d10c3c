package main

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"tracer/internal/app"
	brcfg "tracer/internal/config"
	"tracer/internal/logger"
)

func main() {
	ctx := context.Background()
	cfgPath := os.Getenv("TRACER_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}

	cfg, err := brcfg.Load(cfgPath)
	if err != nil {
		log.Fatalf("读取配置失败: %v", err)
	}
	logFile, err := setupLogOutput(cfg.App.LogPath)
	if err != nil {
		log.Fatalf("初始化日志文件失败: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logger.SetLevel(cfg.App.LogLevel)
	logger.Infof("✓ 配置加载成功（环境=%s，输入=%s）", cfg.App.Env, cfg.Contacts.Path)

	app, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("初始化应用失败: %v", err)
	}
	if err := app.Run(ctx); err != nil {
		log.Fatalf("运行失败: %v", err)
	}
}

func setupLogOutput(path string) (*os.File, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	dir := filepath.Dir(trimmed)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	mw := io.MultiWriter(os.Stdout, file)
	log.SetOutput(mw)
	logger.SetOutput(mw)
	return file, nil
}

package tracehttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"tracer/internal/logger"

	"github.com/gin-gonic/gin"
)

// Server 提供最小化的 /api/trace HTTP 服务（结果查询 + 手动重算）。
type Server struct {
	addr   string
	router *gin.Engine
}

// ServerConfig 描述 trace HTTP 服务依赖。
type ServerConfig struct {
	Addr    string
	Service TraceService
}

// NewServer 构建 trace HTTP server。
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Service == nil {
		return nil, errors.New("trace http server requires a service")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":9991"
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	traceRouter := NewRouter(cfg.Service)
	traceRouter.Register(router.Group("/api/trace"))

	return &Server{addr: cfg.Addr, router: router}, nil
}

// Start 启动监听并在 ctx 取消时优雅退出。
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Addr 返回监听地址。
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.addr
}

// Handler 暴露底层 gin 引擎，供测试使用。
func (s *Server) Handler() http.Handler {
	if s == nil {
		return nil
	}
	return s.router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		client := c.ClientIP()
		c.Next()
		dur := time.Since(start)
		status := c.Writer.Status()
		fullPath := path
		if query != "" {
			fullPath = path + "?" + query
		}
		logger.Debugf("HTTP %s %s status=%d ip=%s dur=%s", method, fullPath, status, client, dur)
	}
}

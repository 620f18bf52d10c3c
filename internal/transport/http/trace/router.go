package tracehttp

import (
	"context"
	"net/http"
	"strconv"

	"tracer/internal/store/model"
	"tracer/internal/store/runlog"

	"github.com/gin-gonic/gin"
)

// TraceService 供 app 层实现，以响应查询与手动重算。
type TraceService interface {
	// LatestResult 返回最近一次计算的结果映射，尚未计算过时返回 nil。
	LatestResult() map[string][]string
	// RecentRuns 返回最近的持久化 run 记录；存储未启用时返回空。
	RecentRuns(ctx context.Context, limit int) ([]model.TraceRunModel, error)
	// RunLogEntries 返回最近的执行流水；流水未启用时返回空。
	RunLogEntries(ctx context.Context, limit int) ([]runlog.Entry, error)
	// Recompute 立即重新加载输入并计算。
	Recompute(ctx context.Context) error
}

// Router 暴露追踪结果相关的查询接口。
type Router struct {
	svc TraceService
}

func NewRouter(svc TraceService) *Router {
	return &Router{svc: svc}
}

// Register 将 /api/trace 路由挂载到给定分组下。
func (r *Router) Register(group *gin.RouterGroup) {
	if group == nil {
		return
	}
	group.GET("/latest", r.handleLatest)
	group.GET("/runs", r.handleRuns)
	group.GET("/log", r.handleRunLog)
	group.POST("/run", r.handleRecompute)
}

func (r *Router) handleLatest(c *gin.Context) {
	result := r.svc.LatestResult()
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no trace result yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (r *Router) handleRuns(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 20)
	runs, err := r.svc.RecentRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (r *Router) handleRunLog(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 50)
	entries, err := r.svc.RunLogEntries(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (r *Router) handleRecompute(c *gin.Context) {
	if err := r.svc.Recompute(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": r.svc.LatestResult()})
}

func parseLimit(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

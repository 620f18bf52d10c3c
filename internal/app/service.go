package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"tracer/internal/contacts"
	"tracer/internal/logger"
	"tracer/internal/report"
	"tracer/internal/store"
	"tracer/internal/store/model"
	"tracer/internal/store/runlog"
	"tracer/internal/trace"

	"github.com/google/uuid"
)

// TraceRunner 封装一次追踪计算的完整流程：加载→计算→持久化→报表。
// HTTP 与 watcher 都会并发触发 Execute，用互斥锁保证同一时刻只有一次计算。
type TraceRunner struct {
	loader   *contacts.Loader
	infected []string

	store  store.Store
	runLog *runlog.RunLogStore
	report *report.Writer

	mu     sync.RWMutex
	latest *trace.Result
}

func NewTraceRunner(loader *contacts.Loader, infected []string) *TraceRunner {
	return &TraceRunner{loader: loader, infected: append([]string(nil), infected...)}
}

func (s *TraceRunner) WithStore(st store.Store) *TraceRunner {
	s.store = st
	return s
}

func (s *TraceRunner) WithRunLog(rl *runlog.RunLogStore) *TraceRunner {
	s.runLog = rl
	return s
}

func (s *TraceRunner) WithReport(w *report.Writer) *TraceRunner {
	s.report = w
	return s
}

// Execute 执行一次完整计算。加载或解析失败时直接返回错误，不产生部分结果。
// 持久化与报表失败只记日志，不影响计算结果本身。
func (s *TraceRunner) Execute(ctx context.Context) (*trace.Result, error) {
	start := time.Now()
	runID := uuid.NewString()

	list, err := s.loader.Load()
	if err != nil {
		s.appendRunLog(ctx, runID, "failed", errorClass(err), start)
		return nil, err
	}
	result := trace.Run(list, s.infected)

	s.mu.Lock()
	s.latest = result
	s.mu.Unlock()

	if s.store != nil {
		if err := s.persist(ctx, runID, result, len(list)); err != nil {
			logger.Errorf("持久化 run %s 失败: %v", runID, err)
		}
	}
	if s.report != nil {
		path, err := s.report.Write(result, runID)
		if err != nil {
			logger.Errorf("生成报表失败: %v", err)
		} else {
			logger.Infof("报表已生成：%s", path)
		}
	}
	s.appendRunLog(ctx, runID, "ok", "", start)
	logger.Debugf("run %s 完成，记录=%d 感染者=%d 耗时=%s", runID, len(list), len(s.infected), time.Since(start))
	return result, nil
}

func (s *TraceRunner) persist(ctx context.Context, runID string, result *trace.Result, contactCount int) error {
	raw, err := json.Marshal(result.Map())
	if err != nil {
		return fmt.Errorf("marshal result failed: %w", err)
	}
	run := &model.TraceRunModel{
		RunID:         runID,
		SourcePath:    s.loader.Path,
		Trimmed:       s.loader.TrimSentinels,
		ContactCount:  contactCount,
		InfectedCount: len(s.infected),
		Result:        raw,
		CreatedAtUnix: time.Now().Unix(),
	}
	var exposures []model.ExposureModel
	for _, id := range result.Infected() {
		for pos, contactID := range result.Contacts(id) {
			exposures = append(exposures, model.ExposureModel{
				RunID:      runID,
				InfectedID: id,
				ContactID:  contactID,
				Position:   pos,
			})
		}
	}
	return s.store.Runs().Save(ctx, run, exposures)
}

func (s *TraceRunner) appendRunLog(ctx context.Context, runID, status, class string, start time.Time) {
	if s.runLog == nil {
		return
	}
	entry := runlog.Entry{
		RunID:      runID,
		SourcePath: s.loader.Path,
		Status:     status,
		ErrorClass: class,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err := s.runLog.Append(ctx, entry); err != nil {
		logger.Errorf("写入 run log 失败: %v", err)
	}
}

// LatestResult 实现 tracehttp.TraceService。
func (s *TraceRunner) LatestResult() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil
	}
	return s.latest.Map()
}

// RecentRuns 实现 tracehttp.TraceService。
func (s *TraceRunner) RecentRuns(ctx context.Context, limit int) ([]model.TraceRunModel, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.Runs().ListRecent(ctx, limit)
}

// RunLogEntries 实现 tracehttp.TraceService。
func (s *TraceRunner) RunLogEntries(ctx context.Context, limit int) ([]runlog.Entry, error) {
	if s.runLog == nil {
		return nil, nil
	}
	return s.runLog.List(ctx, limit)
}

// Recompute 实现 tracehttp.TraceService。
func (s *TraceRunner) Recompute(ctx context.Context) error {
	_, err := s.Execute(ctx)
	return err
}

// Close 释放持有的存储连接。
func (s *TraceRunner) Close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			logger.Errorf("关闭存储失败: %v", err)
		}
	}
	if s.runLog != nil {
		if err := s.runLog.Close(); err != nil {
			logger.Errorf("关闭 run log 失败: %v", err)
		}
	}
}

// errorClass 将加载错误映射为流水账中的错误类别。
func errorClass(err error) string {
	switch {
	case errors.Is(err, contacts.ErrNotFound):
		return "not_found"
	case errors.Is(err, contacts.ErrParse):
		return "parse"
	case errors.Is(err, contacts.ErrMissingField):
		return "missing_field"
	default:
		return "other"
	}
}

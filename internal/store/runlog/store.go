package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// RunLogStore 管理追踪计算的流水账，方便后续排查。
// 与主存储分离：即使主存储关闭，流水账照常追加。
type RunLogStore struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// Entry 代表一次计算的执行记录。Status 为 ok / failed。
type Entry struct {
	ID         int64  `json:"id"`
	RunID      string `json:"run_id"`
	Timestamp  int64  `json:"ts"`
	SourcePath string `json:"source_path"`
	Status     string `json:"status"`
	ErrorClass string `json:"error_class,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// NewRunLogStore 初始化 SQLite 存储。
func NewRunLogStore(path string) (*RunLogStore, error) {
	if path == "" {
		return nil, fmt.Errorf("run log path 不能为空")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)
	if err := ensureRunLogSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &RunLogStore{db: db, path: path}, nil
}

// Close 关闭底层 DB。
func (s *RunLogStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func ensureRunLogSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trace_run_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			ts INTEGER NOT NULL,
			source_path TEXT,
			status TEXT NOT NULL,
			error_class TEXT,
			duration_ms INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trace_run_logs_ts ON trace_run_logs(ts)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Append 追加一条执行记录。
func (s *RunLogStore) Append(ctx context.Context, e Entry) error {
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().UnixMilli()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return fmt.Errorf("run log store 已关闭")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trace_run_logs (run_id, ts, source_path, status, error_class, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Timestamp, e.SourcePath, e.Status, e.ErrorClass, e.DurationMS)
	return err
}

// List 返回最近的执行记录，新在前。
func (s *RunLogStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, fmt.Errorf("run log store 已关闭")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, ts, source_path, status, error_class, duration_ms
		 FROM trace_run_logs ORDER BY ts DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var errClass sql.NullString
		if err := rows.Scan(&e.ID, &e.RunID, &e.Timestamp, &e.SourcePath, &e.Status, &errClass, &e.DurationMS); err != nil {
			return nil, err
		}
		e.ErrorClass = errClass.String
		out = append(out, e)
	}
	return out, rows.Err()
}

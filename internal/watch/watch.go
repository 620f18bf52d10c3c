package watch

import (
	"context"
	"path/filepath"
	"time"

	"tracer/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// debounce 间隔：导出器通常分多次写入，合并一小段时间内的事件。
const debounceInterval = 500 * time.Millisecond

// FileWatcher 监听单个文件的写入事件并触发回调。
// 监听目标是文件所在目录：很多工具通过 rename 原子替换文件，直接监听文件会丢事件。
type FileWatcher struct {
	path     string
	onChange func()
}

func NewFileWatcher(path string, onChange func()) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &FileWatcher{path: abs, onChange: onChange}, nil
}

// Run 阻塞运行直到 ctx 取消。
func (w *FileWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	logger.Infof("开始监听接触文件：%s", w.path)

	var timer *time.Timer
	// 退出时停掉未触发的去抖定时器，防止回调打到已关停的应用上
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	fire := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(evt.Name) != w.path {
				continue
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceInterval, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			logger.Infof("检测到接触文件更新，重新计算：%s", w.path)
			if w.onChange != nil {
				w.onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("watcher error: %v", err)
		}
	}
}

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tracer/internal/trace"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartWidth  = "900px"
	chartHeight = "480px"
)

// Writer 将追踪结果渲染为 HTML 报表（感染者直接接触数柱状图）。
type Writer struct {
	OutputDir string
}

func NewWriter(dir string) *Writer {
	return &Writer{OutputDir: dir}
}

// Write 渲染结果并落盘，返回生成文件的路径。
func (w *Writer) Write(result *trace.Result, runID string) (string, error) {
	if result == nil {
		return "", fmt.Errorf("result cannot be nil")
	}
	if err := os.MkdirAll(w.OutputDir, 0o755); err != nil {
		return "", err
	}

	infected := result.Infected()
	counts := result.Counts()
	bars := make([]opts.BarData, 0, len(counts))
	for _, n := range counts {
		bars = append(bars, opts.BarData{Value: n})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{
			Title:    "直接接触统计",
			Subtitle: fmt.Sprintf("run %s · %s", runID, time.Now().Format("2006-01-02 15:04:05")),
		}),
	)
	bar.SetXAxis(shortIDs(infected)).AddSeries("contacts", bars)

	page := components.NewPage()
	page.AddCharts(bar)

	name := fmt.Sprintf("trace_%s.html", runID)
	path := filepath.Join(w.OutputDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return "", err
	}
	return path, nil
}

// shortIDs 截短 UUID 形式的 ID，避免 X 轴标签过长。
func shortIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if len(id) > 8 {
			out = append(out, id[:8])
		} else {
			out = append(out, id)
		}
	}
	return out
}

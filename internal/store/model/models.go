package model

import (
	"gorm.io/datatypes"
)

// TraceRunModel 记录一次完整的追踪计算。
type TraceRunModel struct {
	ID            int64          `gorm:"column:id;primaryKey"`
	RunID         string         `gorm:"column:run_id;uniqueIndex"`
	SourcePath    string         `gorm:"column:source_path"`
	Trimmed       bool           `gorm:"column:trimmed"`
	ContactCount  int            `gorm:"column:contact_count"`
	InfectedCount int            `gorm:"column:infected_count"`
	Result        datatypes.JSON `gorm:"column:result"`
	CreatedAtUnix int64          `gorm:"column:created_at"`
}

func (TraceRunModel) TableName() string { return "trace_runs" }

// ExposureModel 记录单条感染者→接触者暴露，Position 为接触记录在输入中的出现顺序。
type ExposureModel struct {
	ID         int64  `gorm:"column:id;primaryKey"`
	RunID      string `gorm:"column:run_id;index"`
	InfectedID string `gorm:"column:infected_id;index"`
	ContactID  string `gorm:"column:contact_id"`
	Position   int    `gorm:"column:position"`
}

func (ExposureModel) TableName() string { return "exposures" }

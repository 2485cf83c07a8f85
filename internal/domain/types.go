package domain

import (
	"encoding/json"
	"time"
)

// Profile describes one generation run: how big the dataset is, where it
// goes, and any per-table adjustments. Profiles can be loaded from YAML/JSON
// files or assembled from CLI flags.
type Profile struct {
	ID           string           `json:"id,omitempty" yaml:"id,omitempty"`
	Name         string           `json:"name" yaml:"name"`
	ScaleFactor  float64          `json:"scale_factor" yaml:"scale_factor"`
	Seed         *int64           `json:"seed,omitempty" yaml:"seed,omitempty"`
	OutDir       string           `json:"out_dir,omitempty" yaml:"out_dir,omitempty"`
	Tables       []string         `json:"tables,omitempty" yaml:"tables,omitempty"`
	RowOverrides map[string]int64 `json:"row_overrides,omitempty" yaml:"row_overrides,omitempty"`
	LineCount    *LineCountRange  `json:"line_count,omitempty" yaml:"line_count,omitempty"`
}

// LineCountRange bounds the per-order lineitem fan-out. The TPC-H default is
// uniform over [1,7]; it is kept configurable rather than hard-coded.
type LineCountRange struct {
	Min int64 `json:"min" yaml:"min"`
	Max int64 `json:"max" yaml:"max"`
}

type Run struct {
	ID          string          `json:"id"`
	ProfileID   string          `json:"profile_id,omitempty"`
	ProfileName string          `json:"profile_name"`
	ScaleFactor float64         `json:"scale_factor"`
	Seed        int64           `json:"seed"`
	OutDir      string          `json:"out_dir"`
	ConfigHash  string          `json:"config_hash"`
	Status      RunStatus       `json:"status"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Stats       json.RawMessage `json:"stats,omitempty"`
	Error       string          `json:"error,omitempty"`
}

type RunStatus string

const (
	RunStatusPending RunStatus = "pending"
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

type RunStats struct {
	TablesGenerated int             `json:"tables_generated"`
	TotalRows       int64           `json:"total_rows"`
	DurationSeconds float64         `json:"duration_seconds"`
	TableStats      []TableRunStats `json:"table_stats"`
}

type TableRunStats struct {
	TableName       string  `json:"table_name"`
	Rows            int64   `json:"rows"`
	DurationSeconds float64 `json:"duration_seconds"`
}

package db

import (
	"time"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// ConversionRecord is one finished conversion request. Document contents are
// never stored, only metadata about them.
type ConversionRecord struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	From         string    `gorm:"column:from_format;index" json:"from"`
	To           string    `gorm:"column:to_format;index" json:"to"`
	FileName     string    `json:"file_name"`
	UploadMD5    string    `gorm:"column:upload_md5" json:"upload_md5"`
	DetectedMIME string    `gorm:"column:detected_mime" json:"detected_mime"`
	InputBytes   int64     `json:"input_bytes"`
	OutputBytes  int64     `json:"output_bytes"`
	Status       Status    `gorm:"index" json:"status"`
	ExitCode     int       `json:"exit_code"`
	Error        string    `json:"error,omitempty"`
	Bundled      bool      `json:"bundled"`
	MediaCount   int       `json:"media_count"`
	DurationMs   int64     `json:"duration_ms"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

// Stats aggregates the stored history.
type Stats struct {
	Total         int64            `json:"total"`
	Success       int64            `json:"success"`
	Failed        int64            `json:"failed"`
	InputBytes    int64            `json:"input_bytes"`
	OutputBytes   int64            `json:"output_bytes"`
	AvgDurationMs float64          `json:"avg_duration_ms"`
	ByTarget      map[string]int64 `json:"by_target"`
}

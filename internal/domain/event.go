package domain

import "time"

const EventExportCompleted = "export.completed"

// ExportEvent публикуется после каждой успешной выгрузки.
type ExportEvent struct {
	Type       string    `json:"type"`
	ExportID   string    `json:"export_id"`
	Format     string    `json:"format"`
	Charset    string    `json:"charset"`
	Rows       int       `json:"rows"`
	Requested  int       `json:"requested"`
	MissingIDs []int64   `json:"missing_ids,omitempty"`
	Columns    []string  `json:"columns"`
	ExportedAt time.Time `json:"exported_at"`
}

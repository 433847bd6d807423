package models

import (
	"database/sql"
	"time"
)

// Import session lifecycle.
const (
	SessionStatusUploaded   = "uploaded"
	SessionStatusMapping    = "mapping"
	SessionStatusQueued     = "queued"
	SessionStatusProcessing = "processing"
	SessionStatusCompleted  = "completed"
	SessionStatusFailed     = "failed"
)

// ImportSession tracks one uploaded file from upload through import.
type ImportSession struct {
	ID            int            `db:"id" json:"id"`
	SessionCode   string         `db:"session_code" json:"session_code"`
	UserID        int            `db:"user_id" json:"user_id"`
	ObjectID      sql.NullInt64  `db:"object_id" json:"object_id"`
	Filename      string         `db:"filename" json:"filename"`
	FilePath      string         `db:"file_path" json:"file_path"`
	Columns       string         `db:"columns" json:"columns"` // JSON array, header order
	TotalRows     int            `db:"total_rows" json:"total_rows"`
	ImportedRows  int            `db:"imported_rows" json:"imported_rows"`
	FailedRows    int            `db:"failed_rows" json:"failed_rows"`
	Status        string         `db:"status" json:"status"`
	ErrorMessage  sql.NullString `db:"error_message" json:"error_message"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// SourceRow is one raw row of the uploaded file, stored as a JSON object
// keyed by column label.
type SourceRow struct {
	ID        int64  `db:"id" json:"id"`
	SessionID int    `db:"session_id" json:"session_id"`
	RowIndex  int    `db:"row_index" json:"row_index"`
	Data      string `db:"data" json:"data"`
}

// CRMRecord is one imported record after the mapping has been applied:
// a JSON object keyed by field key suffix.
type CRMRecord struct {
	ID        int64     `db:"id" json:"id"`
	SessionID int       `db:"session_id" json:"session_id"`
	ObjectID  int       `db:"object_id" json:"object_id"`
	RowIndex  int       `db:"row_index" json:"row_index"`
	Data      string    `db:"data" json:"data"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

package models

import "time"

// FieldImportError records one rejected row during a schema catalog
// import (objects/fields uploaded from a spreadsheet).
type FieldImportError struct {
	Row      int    `json:"row"`
	FieldKey string `json:"field_key"`
	Column   string `json:"column"`
	Error    string `json:"error"`
	Value    string `json:"value"`
}

// FieldImportResult is the outcome of a schema catalog import with
// per-row validation details.
type FieldImportResult struct {
	ValidFields      []CRMField         `json:"valid_fields"`
	ValidationErrors []FieldImportError `json:"validation_errors"`
	TotalRows        int                `json:"total_rows"`
	ValidCount       int                `json:"valid_count"`
	ErrorCount       int                `json:"error_count"`
	ImportTime       time.Time          `json:"import_time"`
}

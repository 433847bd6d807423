package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"crm-import-web/internal/mapping"

	"github.com/xuri/excelize/v2"
)

type FileService struct{}

func NewFileService() *FileService {
	return &FileService{}
}

// ParseFile reads an uploaded .csv or .xlsx file and returns the header
// labels in file order plus the data rows keyed by those labels.
func (s *FileService) ParseFile(filePath string) ([]string, []mapping.Row, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		return s.parseCSV(filePath)
	case ".xlsx", ".xls":
		return s.parseXLSX(filePath)
	default:
		return nil, nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filePath))
	}
}

func (s *FileService) parseCSV(filePath string) ([]string, []mapping.Row, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("file is empty")
	}

	columns := dedupeColumns(records[0])
	rows := make([]mapping.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, rowFromRecord(columns, record))
	}
	return columns, rows, nil
}

func (s *FileService) parseXLSX(filePath string) ([]string, []mapping.Row, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("no sheets found in Excel file")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("file is empty")
	}

	columns := dedupeColumns(records[0])
	rows := make([]mapping.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, rowFromRecord(columns, record))
	}
	return columns, rows, nil
}

// dedupeColumns makes duplicate header labels distinct by position,
// suffixing repeats with " (n)". The mapping engine keys entries by
// label, so labels must be unique before it sees them.
func dedupeColumns(header []string) []string {
	seen := make(map[string]int, len(header))
	columns := make([]string, 0, len(header))
	for _, label := range header {
		label = strings.TrimSpace(label)
		seen[label]++
		if seen[label] > 1 {
			label = fmt.Sprintf("%s (%d)", label, seen[label])
		}
		columns = append(columns, label)
	}
	return columns
}

func rowFromRecord(columns []string, record []string) mapping.Row {
	row := make(mapping.Row, len(columns))
	for i, col := range columns {
		if i < len(record) {
			row[col] = record[i]
		} else {
			row[col] = ""
		}
	}
	return row
}

// BuildFieldTemplate generates a header-only spreadsheet whose columns
// are the object's field display names, for users who want a file that
// auto-matches cleanly.
func (s *FileService) BuildFieldTemplate(fields []mapping.Field) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, field := range fields {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, field.DisplayName()); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err == nil && len(fields) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(fields), 1)
		_ = f.SetCellStyle(sheet, "A1", last, headerStyle)
	}

	return f, nil
}

package service

import (
	"fmt"
	"strings"
	"time"

	"crm-import-web/internal/mapping"
	"crm-import-web/internal/models"
	"crm-import-web/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type SchemaService struct {
	schemaRepo *repository.SchemaRepository
	logger     *logrus.Logger
}

func NewSchemaService(schemaRepo *repository.SchemaRepository, logger *logrus.Logger) *SchemaService {
	return &SchemaService{
		schemaRepo: schemaRepo,
		logger:     logger,
	}
}

// FieldsForObject loads an object's active field descriptors in the shape
// the mapping engine consumes.
func (s *SchemaService) FieldsForObject(objectID int) ([]mapping.Field, error) {
	records, err := s.schemaRepo.GetFieldsByObjectID(objectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load fields for object %d: %w", objectID, err)
	}
	return ToEngineFields(records), nil
}

// ToEngineFields converts catalog rows to engine field descriptors.
func ToEngineFields(records []models.CRMField) []mapping.Field {
	fields := make([]mapping.Field, 0, len(records))
	for _, rec := range records {
		fields = append(fields, mapping.Field{
			Key:      rec.FieldKey,
			Name:     rec.DisplayName,
			DataType: rec.DataType,
			Required: rec.IsRequired,
		})
	}
	return fields
}

// ImportFields parses a field catalog spreadsheet (columns: field_key,
// display_name, data_type, is_required) and bulk-inserts the valid rows
// for the given object. Invalid rows are reported, not fatal.
func (s *SchemaService) ImportFields(filePath string, objectID int) (*models.FieldImportResult, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("file must contain at least header row and one data row")
	}

	result := &models.FieldImportResult{
		ImportTime: time.Now(),
		TotalRows:  len(rows) - 1,
	}

	object, err := s.schemaRepo.GetObjectByID(objectID)
	if err != nil {
		return nil, fmt.Errorf("object %d not found: %w", objectID, err)
	}

	seen := map[string]bool{}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		fieldKey := strings.TrimSpace(getCell(row, 0))

		if fieldKey == "" {
			result.ValidationErrors = append(result.ValidationErrors, models.FieldImportError{
				Row: i + 1, Column: "field_key", Error: "field key is required",
			})
			continue
		}
		if !strings.HasPrefix(fieldKey, object.ObjectKey+".") {
			result.ValidationErrors = append(result.ValidationErrors, models.FieldImportError{
				Row: i + 1, FieldKey: fieldKey, Column: "field_key", Value: fieldKey,
				Error: fmt.Sprintf("field key must be qualified under %q", object.ObjectKey),
			})
			continue
		}
		if seen[fieldKey] {
			result.ValidationErrors = append(result.ValidationErrors, models.FieldImportError{
				Row: i + 1, FieldKey: fieldKey, Column: "field_key", Value: fieldKey,
				Error: "duplicate field key in file",
			})
			continue
		}
		seen[fieldKey] = true

		result.ValidFields = append(result.ValidFields, models.CRMField{
			ObjectID:    objectID,
			FieldKey:    fieldKey,
			DisplayName: strings.TrimSpace(getCell(row, 1)),
			DataType:    strings.TrimSpace(getCell(row, 2)),
			IsRequired:  parseBool(getCell(row, 3)),
			SortOrder:   i,
			IsActive:    true,
		})
	}

	result.ValidCount = len(result.ValidFields)
	result.ErrorCount = len(result.ValidationErrors)

	if err := s.schemaRepo.BulkInsertFields(result.ValidFields); err != nil {
		return nil, fmt.Errorf("failed to insert fields: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"object_id": objectID,
		"valid":     result.ValidCount,
		"errors":    result.ErrorCount,
	}).Info("field catalog imported")

	return result, nil
}

func getCell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

package service

import (
	"os"
	"path/filepath"
	"testing"

	"crm-import-web/internal/mapping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupeColumns(t *testing.T) {
	columns := dedupeColumns([]string{"Email", "Phone", "Email", " Email ", "Notes"})
	assert.Equal(t, []string{"Email", "Phone", "Email (2)", "Email (3)", "Notes"}, columns)
}

func TestDedupeColumnsNoDuplicates(t *testing.T) {
	columns := dedupeColumns([]string{"A", "B", "C"})
	assert.Equal(t, []string{"A", "B", "C"}, columns)
}

func TestParseCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contacts.csv")
	content := "Email,First Name,Notes\na@x.com,Ada,vip\nb@x.com,Grace\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	svc := NewFileService()
	columns, rows, err := svc.ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Email", "First Name", "Notes"}, columns)
	require.Len(t, rows, 2)
	assert.Equal(t, mapping.Row{"Email": "a@x.com", "First Name": "Ada", "Notes": "vip"}, rows[0])
	// Ragged row: missing trailing cells read as empty.
	assert.Equal(t, mapping.Row{"Email": "b@x.com", "First Name": "Grace", "Notes": ""}, rows[1])
}

func TestParseFileUnsupportedType(t *testing.T) {
	svc := NewFileService()
	_, _, err := svc.ParseFile("data.json")
	assert.Error(t, err)
}

func TestBuildFieldTemplate(t *testing.T) {
	svc := NewFileService()
	fields := []mapping.Field{
		{Key: "crm.contact.email", Name: "Email"},
		{Key: "crm.contact.first_name", Name: "First Name"},
		{Key: "crm.contact.notes"}, // no display name, falls back to suffix
	}

	f, err := svc.BuildFieldTemplate(fields)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Email", "First Name", "notes"}, rows[0])
}

package service

import (
	"testing"

	"crm-import-web/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestToEngineFields(t *testing.T) {
	records := []models.CRMField{
		{FieldKey: "crm.contact.email", DisplayName: "Email", DataType: "string", IsRequired: true},
		{FieldKey: "crm.contact.notes", DataType: "string"},
	}

	fields := ToEngineFields(records)
	assert.Len(t, fields, 2)
	assert.Equal(t, "crm.contact.email", fields[0].Key)
	assert.Equal(t, "Email", fields[0].Name)
	assert.True(t, fields[0].Required)
	assert.False(t, fields[1].Required)
	assert.Equal(t, "notes", fields[1].KeySuffix())
}

func TestParseBool(t *testing.T) {
	assert.True(t, parseBool("1"))
	assert.True(t, parseBool("true"))
	assert.True(t, parseBool(" Yes "))
	assert.False(t, parseBool("0"))
	assert.False(t, parseBool(""))
	assert.False(t, parseBool("no"))
}

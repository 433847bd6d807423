package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func contactFields() []Field {
	return []Field{
		{Key: "crm.contact.email", Name: "Email", Required: true},
		{Key: "crm.contact.phone", Name: "Phone"},
		{Key: "crm.contact.last_name", Name: "Last Name", Required: true},
	}
}

func TestValidateCleanMapping(t *testing.T) {
	m := NewMapping([]string{"Email", "Phone", "Surname"})
	m.Set("Email", "crm.contact.email", true)
	m.Set("Phone", "crm.contact.phone", true)
	m.Set("Surname", "crm.contact.last_name", false)

	report := Validate(m, contactFields())
	assert.True(t, report.CanProceed)
	assert.Empty(t, report.Errors)
	assert.NotNil(t, report.Warnings)
	assert.Empty(t, report.Warnings)
}

func TestValidateDuplicateAssignment(t *testing.T) {
	m := NewMapping([]string{"Email", "Backup Email", "Surname"})
	m.Set("Email", "crm.contact.email", true)
	m.Set("Backup Email", "crm.contact.email", false) // user edit
	m.Set("Surname", "crm.contact.last_name", true)

	report := Validate(m, contactFields())
	assert.False(t, report.CanProceed)
	// One error per duplicated field, however many columns share it.
	assert.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], `"Email"`)
}

func TestValidateDuplicateThreeWay(t *testing.T) {
	m := NewMapping([]string{"A", "B", "C", "Surname"})
	m.Set("A", "crm.contact.email", false)
	m.Set("B", "crm.contact.email", false)
	m.Set("C", "crm.contact.email", false)
	m.Set("Surname", "crm.contact.last_name", true)

	report := Validate(m, contactFields())
	assert.False(t, report.CanProceed)
	assert.Len(t, report.Errors, 1)
}

func TestValidateDuplicateUnknownFieldNamesKeySuffix(t *testing.T) {
	m := NewMapping([]string{"A", "B"})
	m.Set("A", "crm.contact.middle_name", false)
	m.Set("B", "crm.contact.middle_name", false)

	report := Validate(m, nil)
	assert.False(t, report.CanProceed)
	assert.Contains(t, report.Errors[0], `"middle_name"`)
}

func TestValidateMissingRequired(t *testing.T) {
	m := NewMapping([]string{"Phone"})
	m.Set("Phone", "crm.contact.phone", true)

	report := Validate(m, contactFields())
	assert.False(t, report.CanProceed)
	assert.Len(t, report.Errors, 2)
	assert.Contains(t, report.Errors[0], `"Email"`)
	assert.Contains(t, report.Errors[1], `"Last Name"`)
}

func TestValidateBothChecksRun(t *testing.T) {
	// Duplicate assignment and missing required field at the same time;
	// both must be reported.
	m := NewMapping([]string{"A", "B"})
	m.Set("A", "crm.contact.phone", false)
	m.Set("B", "crm.contact.phone", false)

	report := Validate(m, contactFields())
	assert.False(t, report.CanProceed)
	assert.Len(t, report.Errors, 3) // 1 duplicate + 2 missing required
}

func TestValidateIdempotent(t *testing.T) {
	m := NewMapping([]string{"Email", "B"})
	m.Set("Email", "crm.contact.email", true)
	m.Set("B", "crm.contact.email", false)

	first := Validate(m, contactFields())
	second := Validate(m, contactFields())
	assert.Equal(t, first, second)
}

func TestValidateEmptyInputs(t *testing.T) {
	report := Validate(Mapping{}, nil)
	assert.True(t, report.CanProceed)
	assert.Empty(t, report.Errors)
	assert.NotNil(t, report.Warnings)

	// No columns but a required field: coverage is unachievable.
	report = Validate(Mapping{}, contactFields())
	assert.False(t, report.CanProceed)
	assert.Len(t, report.Errors, 2)
}

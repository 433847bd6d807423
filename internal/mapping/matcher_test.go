package mapping

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutoMatchSynonym(t *testing.T) {
	fields := []Field{{Key: "obj.contact.email", Name: "Email", Required: true}}

	m := AutoMatch([]string{"Email Address"}, fields)

	entry := m.Entry("Email Address")
	assert.Equal(t, "obj.contact.email", entry.FieldKey)
	assert.True(t, entry.AutoMatched)

	report := Validate(m, fields)
	assert.True(t, report.CanProceed)
	assert.Empty(t, report.Errors)
}

func TestAutoMatchExactKeyBeatsDisplayName(t *testing.T) {
	fields := []Field{
		{Key: "obj.deal.status", Name: "State"},
		{Key: "obj.deal.state", Name: "Status"},
	}

	// "status" matches obj.deal.status by key (1.0) even though the other
	// field's display name is also "Status" (capped at 0.95).
	m := AutoMatch([]string{"status"}, fields)
	assert.Equal(t, "obj.deal.status", m.Entry("status").FieldKey)
}

func TestAutoMatchDisplayName(t *testing.T) {
	fields := []Field{{Key: "obj.contact.mobile_no", Name: "Mobile Phone"}}

	m := AutoMatch([]string{"Mobile Phone"}, fields)
	assert.Equal(t, "obj.contact.mobile_no", m.Entry("Mobile Phone").FieldKey)
}

func TestAutoMatchFieldUsedOnce(t *testing.T) {
	fields := []Field{{Key: "obj.contact.email", Name: "Email", Required: true}}

	m := AutoMatch([]string{"Email Address", "Backup Email"}, fields)

	// First column in header order wins; the second stays unassigned.
	assert.Equal(t, "obj.contact.email", m.Entry("Email Address").FieldKey)
	assert.False(t, m.Entry("Backup Email").Assigned())
	assert.False(t, m.Entry("Backup Email").AutoMatched)

	// The unmapped column does not affect required coverage.
	report := Validate(m, fields)
	assert.True(t, report.CanProceed)
}

func TestAutoMatchNoDuplicateTargets(t *testing.T) {
	fields := []Field{
		{Key: "obj.contact.email", Name: "Email"},
		{Key: "obj.contact.phone", Name: "Phone"},
		{Key: "obj.contact.first_name", Name: "First Name"},
	}
	columns := []string{"Email", "E-mail", "Mail", "Phone", "Telephone", "First Name", "fname"}

	m := AutoMatch(columns, fields)

	seen := map[string]string{}
	for col, e := range m.Entries {
		if !e.Assigned() {
			continue
		}
		prev, dup := seen[e.FieldKey]
		assert.False(t, dup, "field %s assigned to both %s and %s", e.FieldKey, prev, col)
		seen[e.FieldKey] = col
	}
}

func TestAutoMatchBelowFloorUnassigned(t *testing.T) {
	fields := []Field{{Key: "obj.x.phone", Name: "Phone", Required: true}}

	m := AutoMatch([]string{"Notes"}, fields)
	assert.False(t, m.Entry("Notes").Assigned())

	report := Validate(m, fields)
	assert.False(t, report.CanProceed)
	assert.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "Phone")
}

func TestAutoMatchReservedColumns(t *testing.T) {
	// A schema crafted to match the reserved labels exactly; they must
	// still be seeded unassigned.
	fields := []Field{
		{Key: "obj.meta.id", Name: "id"},
		{Key: "obj.meta.external_id", Name: "external_id"},
		{Key: "obj.meta.object_key", Name: "object_key"},
		{Key: "obj.meta.created_at", Name: "created_at"},
		{Key: "obj.meta.updated_at", Name: "updated_at"},
	}

	for _, label := range []string{"id", "External_ID", " created_at ", "UPDATED_AT", "object_key"} {
		m := AutoMatch([]string{label}, fields)
		entry := m.Entry(label)
		assert.False(t, entry.Assigned(), "reserved column %q was matched", label)
		assert.False(t, entry.AutoMatched)
	}
}

func TestAutoMatchGreedyLeftToRight(t *testing.T) {
	fields := []Field{{Key: "obj.contact.email", Name: "Email"}}

	// Both columns normalize into the email concept; the leftmost takes
	// the field regardless of relative score.
	m := AutoMatch([]string{"Mail", "Email"}, fields)
	assert.Equal(t, "obj.contact.email", m.Entry("Mail").FieldKey)
	assert.False(t, m.Entry("Email").Assigned())
}

func TestAutoMatchDegenerateInputs(t *testing.T) {
	m := AutoMatch(nil, nil)
	assert.Empty(t, m.Columns)
	assert.Empty(t, m.Entries)

	m = AutoMatch([]string{"Email"}, nil)
	assert.False(t, m.Entry("Email").Assigned())

	m = AutoMatch(nil, []Field{{Key: "obj.contact.email", Name: "Email"}})
	assert.Empty(t, m.Entries)
}

func TestAutoMatchManyColumns(t *testing.T) {
	fields := []Field{
		{Key: "crm.contact.first_name", Name: "First Name", Required: true},
		{Key: "crm.contact.last_name", Name: "Last Name", Required: true},
		{Key: "crm.contact.email", Name: "Email", Required: true},
		{Key: "crm.contact.phone", Name: "Phone"},
		{Key: "crm.contact.company", Name: "Company"},
		{Key: "crm.contact.city", Name: "City"},
		{Key: "crm.contact.zip", Name: "ZIP"},
		{Key: "crm.contact.notes", Name: "Notes"},
	}
	columns := []string{
		"id", "First Name", "Surname", "E-Mail Address", "Telephone",
		"Organisation", "City", "Postal Code", "Comments", "created_at",
	}

	m := AutoMatch(columns, fields)

	want := map[string]string{
		"First Name":     "crm.contact.first_name",
		"Surname":        "crm.contact.last_name",
		"E-Mail Address": "crm.contact.email",
		"Telephone":      "crm.contact.phone",
		"Organisation":   "crm.contact.company",
		"City":           "crm.contact.city",
		"Postal Code":    "crm.contact.zip",
		"Comments":       "crm.contact.notes",
	}
	for col, key := range want {
		assert.Equal(t, key, m.Entry(col).FieldKey, col)
	}
	assert.False(t, m.Entry("id").Assigned())
	assert.False(t, m.Entry("created_at").Assigned())

	report := Validate(m, fields)
	assert.True(t, report.CanProceed, fmt.Sprintf("errors: %v", report.Errors))
}

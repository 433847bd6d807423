package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyMappingRenamesAndDrops(t *testing.T) {
	m := NewMapping([]string{"Email Address", "Telephone", "Internal Ref"})
	m.Set("Email Address", "crm.contact.email", true)
	m.Set("Telephone", "crm.contact.phone", true)
	// "Internal Ref" stays unassigned.

	rows := []Row{
		{"Email Address": "a@example.com", "Telephone": "555-0101", "Internal Ref": "X1"},
		{"Email Address": "b@example.com", "Telephone": "", "Internal Ref": "X2"},
	}

	out := ApplyMapping(rows, m)
	assert.Equal(t, []Row{
		{"email": "a@example.com", "phone": "555-0101"},
		{"email": "b@example.com", "phone": ""},
	}, out)
}

func TestApplyMappingOutputKeysAreExactlyAssignedSuffixes(t *testing.T) {
	m := NewMapping([]string{"A", "B", "C"})
	m.Set("A", "crm.deal.amount", true)
	m.Set("C", "crm.deal.stage", false)

	out := ApplyMapping([]Row{{"A": "10", "B": "x", "C": "won", "D": "stray"}}, m)
	assert.Len(t, out, 1)
	assert.Equal(t, Row{"amount": "10", "stage": "won"}, out[0])
}

func TestApplyMappingLastWriteWins(t *testing.T) {
	// An invalid mapping (two columns on one field) still transforms;
	// the later column in column order overwrites the earlier.
	m := NewMapping([]string{"Primary Email", "Backup Email"})
	m.Set("Primary Email", "crm.contact.email", true)
	m.Set("Backup Email", "crm.contact.email", false)

	out := ApplyMapping([]Row{{"Primary Email": "a@x.com", "Backup Email": "b@x.com"}}, m)
	assert.Equal(t, Row{"email": "b@x.com"}, out[0])
}

func TestApplyMappingMissingColumnInRow(t *testing.T) {
	m := NewMapping([]string{"Email", "Phone"})
	m.Set("Email", "crm.contact.email", true)
	m.Set("Phone", "crm.contact.phone", true)

	out := ApplyMapping([]Row{{"Email": "a@x.com"}}, m)
	assert.Equal(t, Row{"email": "a@x.com"}, out[0])
}

func TestApplyMappingEmptyInputs(t *testing.T) {
	assert.Empty(t, ApplyMapping(nil, Mapping{}))
	assert.Empty(t, ApplyMapping([]Row{}, NewMapping([]string{"A"})))

	out := ApplyMapping([]Row{{"A": "1"}}, Mapping{})
	assert.Equal(t, []Row{{}}, out)
}

package mapping

import "strings"

// Field describes one attribute of the target CRM object. The dot-qualified
// Key is the field's identity; Name and DataType are descriptive only.
type Field struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	DataType string `json:"dataType"`
	Required bool   `json:"required,omitempty"`
}

// KeySuffix returns the portion of a dot-qualified field key after the
// last dot, e.g. "contact.info.email" -> "email".
func KeySuffix(key string) string {
	if i := strings.LastIndex(key, "."); i >= 0 {
		return key[i+1:]
	}
	return key
}

// KeySuffix returns the trailing segment of the field's key.
func (f Field) KeySuffix() string {
	return KeySuffix(f.Key)
}

// DisplayName returns the field's display name, falling back to the key
// suffix when no display name is set.
func (f Field) DisplayName() string {
	if f.Name != "" {
		return f.Name
	}
	return f.KeySuffix()
}

// Entry assigns one CSV column to at most one target field.
// An empty FieldKey means the column is unassigned.
type Entry struct {
	FieldKey    string `json:"fieldKey"`
	AutoMatched bool   `json:"autoMatched"`
}

// Assigned reports whether the entry references a field.
func (e Entry) Assigned() bool {
	return e.FieldKey != ""
}

// Mapping holds the per-column field assignments for one import session.
// Columns preserves the source file's header order, which drives both the
// matcher's greedy pass and the transformer's write order.
type Mapping struct {
	Columns []string         `json:"columns"`
	Entries map[string]Entry `json:"entries"`
}

// NewMapping seeds an empty mapping for the given columns.
func NewMapping(columns []string) Mapping {
	m := Mapping{
		Columns: append([]string(nil), columns...),
		Entries: make(map[string]Entry, len(columns)),
	}
	for _, col := range columns {
		m.Entries[col] = Entry{}
	}
	return m
}

// Entry returns the entry for a column; unknown columns read as unassigned.
func (m Mapping) Entry(column string) Entry {
	return m.Entries[column]
}

// Set replaces the entry for one column. Both the target field and the
// auto-matched flag change in the same operation. Columns not seen before
// are appended to the column order.
func (m *Mapping) Set(column, fieldKey string, autoMatched bool) {
	if m.Entries == nil {
		m.Entries = make(map[string]Entry)
	}
	if _, known := m.Entries[column]; !known {
		m.Columns = append(m.Columns, column)
	}
	m.Entries[column] = Entry{FieldKey: fieldKey, AutoMatched: autoMatched}
}

// AssignedKeys returns the set of field keys referenced by the mapping.
func (m Mapping) AssignedKeys() map[string]bool {
	keys := make(map[string]bool)
	for _, e := range m.Entries {
		if e.Assigned() {
			keys[e.FieldKey] = true
		}
	}
	return keys
}

// Report is the result of validating a mapping against a field set.
// Warnings is always non-nil so callers can render a warnings section
// without a nil check; it is reserved for future type-mismatch checks.
type Report struct {
	CanProceed bool     `json:"canProceed"`
	Errors     []string `json:"errors"`
	Warnings   []string `json:"warnings"`
}

// Row is one record of tabular data, keyed by column label before
// transformation and by field key suffix after.
type Row map[string]string

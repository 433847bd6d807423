package mapping

import "fmt"

// Validate checks a possibly user-edited mapping against the target field
// set and reports every violation. Two independent checks always run:
// duplicate field assignment (the matcher prevents this by construction,
// but user edits can reintroduce it) and required-field coverage.
// CanProceed is true iff no errors were found. The report is recomputed
// in full on every call; it performs no I/O and is cheap enough to run on
// every edit.
func Validate(m Mapping, fields []Field) Report {
	report := Report{
		Errors:   []string{},
		Warnings: []string{},
	}

	byKey := make(map[string]Field, len(fields))
	for _, f := range fields {
		byKey[f.Key] = f
	}

	// Duplicate assignment: one error per distinct duplicated field,
	// in first-seen column order.
	counts := make(map[string]int)
	var seen []string
	for _, col := range m.Columns {
		e := m.Entries[col]
		if !e.Assigned() {
			continue
		}
		if counts[e.FieldKey] == 0 {
			seen = append(seen, e.FieldKey)
		}
		counts[e.FieldKey]++
	}
	for _, key := range seen {
		if counts[key] < 2 {
			continue
		}
		name := KeySuffix(key)
		if f, ok := byKey[key]; ok {
			name = f.DisplayName()
		}
		report.Errors = append(report.Errors,
			fmt.Sprintf("field %q is assigned to more than one column", name))
	}

	// Required coverage: every required field must be the target of some
	// entry, in field declaration order.
	assigned := m.AssignedKeys()
	for _, f := range fields {
		if f.Required && !assigned[f.Key] {
			report.Errors = append(report.Errors,
				fmt.Sprintf("required field %q has no column assigned", f.DisplayName()))
		}
	}

	report.CanProceed = len(report.Errors) == 0
	return report
}

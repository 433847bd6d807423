package mapping

// ApplyMapping renames each row's columns to their assigned field's key
// suffix, dropping columns with no entry or an unassigned entry. It is a
// mechanical renaming step: it does not consult the validator, so callers
// must gate on Report.CanProceed first. Given an invalid mapping it still
// produces a best-effort result, with duplicate targets resolved
// last-write-wins in column order.
func ApplyMapping(rows []Row, m Mapping) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		rec := Row{}
		for _, col := range m.Columns {
			val, ok := row[col]
			if !ok {
				continue
			}
			e := m.Entries[col]
			if !e.Assigned() {
				continue
			}
			rec[KeySuffix(e.FieldKey)] = val
		}
		out = append(out, rec)
	}
	return out
}

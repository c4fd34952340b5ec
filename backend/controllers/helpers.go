package controllers

// setField adds a column assignment for every field the request actually
// carried, so partial updates never zero out the rest of the row.
func setField[T any](fields map[string]interface{}, column string, value *T) {
	if value != nil {
		fields[column] = *value
	}
}

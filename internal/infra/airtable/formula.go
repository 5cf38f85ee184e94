package airtable

import (
	"fmt"
	"strings"
)

// Formula helpers for the store's filter expression language. Values
// are always quoted and escaped here so record ids and user input can
// never break out of the expression.

// EscapeValue quotes a string literal for use inside a formula.
func EscapeValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// FieldEquals builds a {field} = 'value' clause.
func FieldEquals(field, value string) string {
	return fmt.Sprintf("{%s} = %s", field, EscapeValue(value))
}

// And combines clauses; a single clause passes through unchanged.
func And(clauses ...string) string {
	if len(clauses) == 1 {
		return clauses[0]
	}
	return fmt.Sprintf("AND(%s)", strings.Join(clauses, ", "))
}

// Or combines clauses; a single clause passes through unchanged.
func Or(clauses ...string) string {
	if len(clauses) == 1 {
		return clauses[0]
	}
	return fmt.Sprintf("OR(%s)", strings.Join(clauses, ", "))
}

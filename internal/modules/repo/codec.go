// Package repo is the record access gateway: per-entity CRUD over the
// external tabular store, translating domain fields to store columns
// and store records back to validated domain objects.
package repo

import "strings"

// listSep is the delimiter the store uses for list-valued cells. The
// domain works with real slices; the encoding exists only at this
// boundary.
const listSep = ", "

func joinList(vs []string) string {
	return strings.Join(vs, listSep)
}

func splitList(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	parts := strings.Split(cell, listSep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

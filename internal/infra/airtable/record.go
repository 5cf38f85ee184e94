package airtable

import "time"

// Typed accessors over the raw column map. Absent or mistyped cells
// read as the zero value; the repo layer decides which absences are
// validation failures.

func (r *Record) Str(field string) string {
	v, _ := r.Fields[field].(string)
	return v
}

func (r *Record) Bool(field string) bool {
	v, _ := r.Fields[field].(bool)
	return v
}

// Int reads a numeric cell. The store serializes numbers as float64.
func (r *Record) Int(field string) int {
	switch v := r.Fields[field].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func (r *Record) Time(field string) time.Time {
	s, ok := r.Fields[field].(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Has reports whether the cell is present at all. Empty cells are
// omitted from the store's JSON, so missing required columns show up
// here.
func (r *Record) Has(field string) bool {
	_, ok := r.Fields[field]
	return ok
}

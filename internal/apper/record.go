package apper

import "time"

// Record is one raw table record as sent to or received from the remote
// store. Read responses decode into it; write requests are built from it.
// Values follow encoding/json conventions: numbers are float64, everything
// the table stores as text is string.
type Record map[string]any

// String returns the named field as a string, or "" when the field is
// absent or not a string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Int returns the named field as an int, or 0 when the field is absent.
// JSON numbers decode as float64; the remote also returns ids as whole
// numbers, so truncation is safe.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// Time parses the named field as an RFC 3339 timestamp. Absent or
// unparseable values yield the zero time — remote system fields are
// display-only and a bad timestamp must not fail the whole record.
func (r Record) Time(key string) time.Time {
	s := r.String(key)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

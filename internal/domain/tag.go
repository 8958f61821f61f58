package domain

import "strings"

// Tags are stored remotely as a single comma-delimited string and handled
// locally as an ordered list of trimmed strings. The codec is deliberately
// dumb: order is preserved, duplicates are kept, and empty segments
// produced by consecutive delimiters survive decoding ("a,,b" decodes to
// ["a", "", "b"]). Only per-segment whitespace is lost, so
// DecodeTags(EncodeTags(t)) == t for any already-trimmed list whose
// elements contain no delimiter.

// EncodeTags joins a tag list into the remote wire representation.
// An empty or nil list encodes to the empty string.
func EncodeTags(tags []string) string {
	return strings.Join(tags, ",")
}

// DecodeTags splits a remote tag string into an ordered list of trimmed
// tags. The empty string decodes to an empty list, never nil, so callers
// can range and marshal without a nil check.
func DecodeTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, len(parts))
	for i, p := range parts {
		tags[i] = strings.TrimSpace(p)
	}
	return tags
}

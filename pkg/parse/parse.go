// Package parse converts the loosely formatted free-text replies of a
// vision model into the fixed record shapes of pkg/types.
//
// All three parsers are single-pass line scanners: a recognized section
// header assigns its value and switches the current section; other lines
// are either continuations of the current free-text field, key-value
// entries of the current sub-block, or chatter that is silently ignored.
// Missing optional fields never fail a parse; only entirely empty input
// does. Rejecting a record that lacks its identity fields is the
// caller's job.
package parse

import (
	"errors"
	"strings"
)

// ErrEmptyInput is returned when there is no text to parse at all.
var ErrEmptyInput = errors.New("no text provided to parse")

// lines splits text into trimmed, non-blank lines.
func lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// afterColon returns the trimmed text after the first colon on the line.
// Subsequent colons are part of the value.
func afterColon(line string) string {
	if _, v, ok := strings.Cut(line, ":"); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// splitKV splits a line on its first colon into a trimmed key and value.
func splitKV(line string) (key, value string, ok bool) {
	k, v, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(k), strings.TrimSpace(v), true
}

// trimBullet strips one leading list marker from the line, if any.
func trimBullet(line string) (string, bool) {
	for _, marker := range []string{"-", "*", "•"} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):]), true
		}
	}
	return line, false
}

// appendText space-joins a continuation line onto an existing field value.
func appendText(existing, line string) string {
	if existing == "" {
		return line
	}
	return existing + " " + line
}

// cleanKey case-folds a sub-block key and strips everything but letters,
// so "Stress Management" and " stress-management " both become
// "stressmanagement".
func cleanKey(key string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(key) {
		if r >= 'a' && r <= 'z' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

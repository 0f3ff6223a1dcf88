// Package history implements the wire codecs for the two append-only logs a
// lead carries: the status/note history and the payment history. Both are
// stored as a single delimited string; the stored order is chronological
// (oldest first) while callers present entries newest first.
package history

import (
	"strings"
	"time"

	"github.com/Iamalive23802/Dream-Trade/internal/leads/domain"
	"github.com/Iamalive23802/Dream-Trade/platform/apperr"
)

const (
	entrySep = "||"
	fieldSep = "__"
)

// StatusEntry is one record of the status/note log.
type StatusEntry struct {
	Status    string
	Note      string
	Timestamp string
}

// EncodeStatus serializes entries in the given (chronological) order.
// Entries whose status and note are both empty are dropped. Fields must not
// contain the delimiter sequences; such input is rejected rather than
// silently truncated.
func EncodeStatus(entries []StatusEntry) (string, error) {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Status == "" && entry.Note == "" {
			continue
		}
		if containsDelimiter(entry.Status) || containsDelimiter(entry.Note) || containsDelimiter(entry.Timestamp) {
			return "", apperr.Validation("note fields may not contain reserved delimiter sequences")
		}
		parts = append(parts, entry.Status+fieldSep+entry.Note+fieldSep+entry.Timestamp)
	}
	return strings.Join(parts, entrySep), nil
}

// DecodeStatus parses an encoded status log back into chronological entries.
// Malformed entries are recovered, never surfaced: an entry with fewer than
// three fields becomes {New, firstField, now}. Two field orders exist in old
// data; when the first field is not a known status the entry is read in the
// legacy note-first order.
func DecodeStatus(encoded string) []StatusEntry {
	if strings.TrimSpace(encoded) == "" {
		return nil
	}

	raw := strings.Split(encoded, entrySep)
	entries := make([]StatusEntry, 0, len(raw))
	for _, part := range raw {
		if part == "" {
			continue
		}
		entries = append(entries, decodeStatusEntry(part))
	}
	return entries
}

func decodeStatusEntry(part string) StatusEntry {
	fields := strings.Split(part, fieldSep)
	if len(fields) < 3 {
		return StatusEntry{
			Status:    domain.StatusNew,
			Note:      fields[0],
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
	}

	if domain.IsKnownStatus(fields[0]) {
		return StatusEntry{Status: fields[0], Note: fields[1], Timestamp: fields[2]}
	}

	// Legacy order: note__status__timestamp.
	return StatusEntry{Status: fields[1], Note: fields[0], Timestamp: fields[2]}
}

// ReverseStatus returns a copy of entries in the opposite order. Used to flip
// between the chronological wire order and newest-first presentation.
func ReverseStatus(entries []StatusEntry) []StatusEntry {
	out := make([]StatusEntry, len(entries))
	for i, entry := range entries {
		out[len(entries)-1-i] = entry
	}
	return out
}

func containsDelimiter(value string) bool {
	return strings.Contains(value, entrySep) || strings.Contains(value, fieldSep)
}

package history

import "testing"

func TestStatusRoundTrip(t *testing.T) {
	entries := []StatusEntry{
		{Status: "New", Note: "first contact", Timestamp: "2024-01-01T10:00:00Z"},
		{Status: "Follow Up", Note: "", Timestamp: "2024-01-02T10:00:00Z"},
		{Status: "Won", Note: "closed the deal", Timestamp: "2024-01-03T10:00:00Z"},
	}

	encoded, err := EncodeStatus(entries)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded := DecodeStatus(encoded)
	if len(decoded) != len(entries) {
		t.Fatalf("decoded %d entries, want %d", len(decoded), len(entries))
	}
	for i := range entries {
		if decoded[i] != entries[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, decoded[i], entries[i])
		}
	}
}

func TestStatusLegacyFieldOrder(t *testing.T) {
	decoded := DecodeStatus("NoteText__Won__2024-01-01T00:00:00Z")
	if len(decoded) != 1 {
		t.Fatalf("decoded %d entries, want 1", len(decoded))
	}
	entry := decoded[0]
	if entry.Status != "Won" || entry.Note != "NoteText" || entry.Timestamp != "2024-01-01T00:00:00Z" {
		t.Fatalf("legacy decode = %+v", entry)
	}
}

func TestStatusShortEntryFallback(t *testing.T) {
	decoded := DecodeStatus("just a bare note")
	if len(decoded) != 1 {
		t.Fatalf("decoded %d entries, want 1", len(decoded))
	}
	entry := decoded[0]
	if entry.Status != "New" {
		t.Fatalf("fallback status = %q, want New", entry.Status)
	}
	if entry.Note != "just a bare note" {
		t.Fatalf("fallback note = %q", entry.Note)
	}
	if entry.Timestamp == "" {
		t.Fatal("fallback timestamp should be set")
	}
}

func TestStatusEncodeDropsEmptyEntries(t *testing.T) {
	entries := []StatusEntry{
		{Status: "", Note: "", Timestamp: "2024-01-01T10:00:00Z"},
		{Status: "Follow Up", Note: "", Timestamp: "2024-01-02T10:00:00Z"},
	}
	encoded, err := EncodeStatus(entries)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded := DecodeStatus(encoded)
	if len(decoded) != 1 {
		t.Fatalf("decoded %d entries, want 1", len(decoded))
	}
	if decoded[0].Status != "Follow Up" {
		t.Fatalf("kept entry = %+v", decoded[0])
	}
}

func TestStatusEncodeRejectsDelimiters(t *testing.T) {
	if _, err := EncodeStatus([]StatusEntry{{Status: "New", Note: "a||b", Timestamp: "t"}}); err == nil {
		t.Fatal("note containing entry delimiter should be rejected")
	}
	if _, err := EncodeStatus([]StatusEntry{{Status: "New", Note: "a__b", Timestamp: "t"}}); err == nil {
		t.Fatal("note containing field delimiter should be rejected")
	}
}

func TestStatusDecodeEmpty(t *testing.T) {
	if got := DecodeStatus(""); got != nil {
		t.Fatalf("decode of empty string = %v, want nil", got)
	}
	if got := DecodeStatus("   "); got != nil {
		t.Fatalf("decode of blank string = %v, want nil", got)
	}
}

func TestReverseStatus(t *testing.T) {
	entries := []StatusEntry{
		{Status: "New", Note: "a", Timestamp: "1"},
		{Status: "Won", Note: "b", Timestamp: "2"},
	}
	reversed := ReverseStatus(entries)
	if reversed[0].Status != "Won" || reversed[1].Status != "New" {
		t.Fatalf("reverse = %+v", reversed)
	}
	// Original slice must not be mutated.
	if entries[0].Status != "New" {
		t.Fatal("reverse mutated its input")
	}
}

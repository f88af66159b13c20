package store

import (
	"encoding/json"
	"testing"

	"github.com/rcliao/convo-memory/internal/model"
)

func TestExportImportRoundTrip(t *testing.T) {
	s := seedStore(t)
	before := s.All()

	blob := s.ExportAll()

	fresh, _ := newTestStore(t)
	fresh.Add(model.Memory{Content: "will be replaced", Importance: 5})
	if !fresh.ImportAll(blob) {
		t.Fatal("expected import to succeed")
	}

	after := fresh.All()
	if len(after) != len(before) {
		t.Fatalf("expected %d records, got %d", len(before), len(after))
	}
	for i := range before {
		if before[i].ID != after[i].ID || before[i].Content != after[i].Content || before[i].Importance != after[i].Importance {
			t.Errorf("record %d differs: %+v vs %+v", i, before[i], after[i])
		}
	}
}

func TestExportAll_EmptyIsArray(t *testing.T) {
	s, _ := newTestStore(t)
	var v []any
	if err := json.Unmarshal(s.ExportAll(), &v); err != nil {
		t.Fatalf("expected valid JSON array: %v", err)
	}
	if len(v) != 0 {
		t.Errorf("expected empty array, got %v", v)
	}
}

func TestImportAll_RejectsNonArray(t *testing.T) {
	s := seedStore(t)
	before := s.Len()

	for _, blob := range []string{
		`{not an array}`,
		`{"id":"x","content":"object"}`,
		`null`,
		`"text"`,
		``,
		`[1, 2, 3]`,
		`[{"content": "unterminated"`,
	} {
		if s.ImportAll([]byte(blob)) {
			t.Errorf("expected import of %q to fail", blob)
		}
		if s.Len() != before {
			t.Errorf("import of %q mutated the store", blob)
		}
	}
}

func TestImportAll_Normalizes(t *testing.T) {
	s, _ := newTestStore(t, WithCapacity(2))
	blob := `[
		{"content": "no id yet", "importance": 50, "type": "personal"},
		{"content": "   ", "importance": 5},
		{"id": "keep-me", "content": "low one", "importance": -1, "type": "bogus"},
		{"id": "third", "content": "middle one", "importance": 5}
	]`
	if !s.ImportAll([]byte(blob)) {
		t.Fatal("expected import to succeed")
	}
	all := s.All()
	if len(all) != 2 {
		t.Fatalf("expected truncation to capacity 2, got %d", len(all))
	}
	if all[0].ID == "" || all[0].Importance != 10 {
		t.Errorf("expected id assigned and importance clamped: %+v", all[0])
	}
	if all[1].ID != "third" {
		t.Errorf("expected lowest record evicted, got %+v", all[1])
	}
}

package snapshot

import (
	"strings"
	"testing"
	"time"

	"github.com/okazmin/kompas/internal/board"
	"github.com/okazmin/kompas/internal/model"
)

func sampleReport() *board.Report {
	return &board.Report{
		CustomerName: "Acme Corp",
		GeneratedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Method:       "saw",
		Entries: []board.Entry{
			{
				Card:  model.DecisionCardConfig{ID: "D001", Title: "Card"},
				State: model.DecisionCardState{CardID: "D001", Status: model.StatusRed},
				Score: 0.8,
			},
		},
	}
}

func TestFreezeAndLoad(t *testing.T) {
	mgr, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	configHash := Hash([]byte("config"))
	dataHash := Hash([]byte("data"))
	snap, err := mgr.Freeze(sampleReport(), configHash, dataHash)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(snap.ID, "acme-corp_") {
		t.Errorf("unexpected snapshot id %q", snap.ID)
	}
	if snap.ConfigHash != configHash || snap.DataHash != dataHash {
		t.Error("provenance hashes not preserved")
	}

	loaded, err := mgr.Load(snap.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.ID != snap.ID || loaded.Report.CustomerName != "Acme Corp" {
		t.Errorf("loaded snapshot differs: %+v", loaded)
	}
	if len(loaded.Report.Entries) != 1 || loaded.Report.Entries[0].State.Status != model.StatusRed {
		t.Errorf("report entries lost: %+v", loaded.Report.Entries)
	}
}

func TestList_NewestFirst(t *testing.T) {
	mgr, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if ids, err := mgr.List(); err != nil || len(ids) != 0 {
		t.Fatalf("expected empty list, got %v (%v)", ids, err)
	}

	first, err := mgr.Freeze(sampleReport(), "c", "d")
	if err != nil {
		t.Fatal(err)
	}

	ids, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != first.ID {
		t.Errorf("unexpected list: %v", ids)
	}
}

func TestLoad_Missing(t *testing.T) {
	mgr, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Load("absent"); err == nil {
		t.Error("expected error for missing snapshot")
	}
}

func TestHash_Deterministic(t *testing.T) {
	if Hash([]byte("a")) != Hash([]byte("a")) {
		t.Error("hash must be deterministic")
	}
	if Hash([]byte("a")) == Hash([]byte("b")) {
		t.Error("hash must distinguish inputs")
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Acme Corp":  "acme-corp",
		"ACME!!":     "acme",
		"":           "board",
		"---":        "board",
		"Team 42 HR": "team-42-hr",
	}
	for in, want := range cases {
		if got := slug(in); got != want {
			t.Errorf("slug(%q) = %q, want %q", in, got, want)
		}
	}
}

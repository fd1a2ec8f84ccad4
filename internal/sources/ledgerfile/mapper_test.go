package ledgerfile

import (
	"testing"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
)

func TestMapLedgers(t *testing.T) {
	score := 72
	f := File{Ledgers: []Ledger{
		{
			User: "alice",
			Applications: []Application{
				{ID: "acme-sre", Role: "SRE", Company: "Acme", Status: "Interview", Date: "2026-02-01", TruthScore: &score},
				{Role: "Data Engineer", Company: "Initech", Date: "2026-02-10", GhostRisk: "HIGH"},
				{Role: "", Company: "Nobody"},
				{Role: "PM", Company: "Globex", Status: "waiting"},
			},
		},
		{
			Applications: []Application{{Role: "SWE", Company: "Hooli", Priority: "low"}},
		},
	}}

	ledgers, skipped, err := MapLedgers(f, "")
	if err != nil {
		t.Fatalf("MapLedgers() error = %v", err)
	}

	if got := len(ledgers["alice"]); got != 2 {
		t.Fatalf("alice has %d entries, want 2", got)
	}
	if got := len(ledgers[DefaultUser]); got != 1 {
		t.Errorf("default user has %d entries, want 1", got)
	}
	if len(skipped) != 2 {
		t.Errorf("skipped %d applications, want 2", len(skipped))
	}

	first := ledgers["alice"][0]
	if first.ID != "acme-sre" || first.Status != domain.StatusInterview {
		t.Errorf("first entry = {%s %s}, want {acme-sre interview}", first.ID, first.Status)
	}
	second := ledgers["alice"][1]
	if second.Status != domain.StatusApplied {
		t.Errorf("missing status should default to applied, got %s", second.Status)
	}
	if second.GhostRisk != domain.RiskHigh {
		t.Errorf("ghost risk = %s, want high", second.GhostRisk)
	}
	if len(second.ID) != 16 {
		t.Errorf("generated ID %q should be 16 hex chars", second.ID)
	}
	if p := ledgers[DefaultUser][0].Priority; p != domain.PriorityLow {
		t.Errorf("priority = %s, want low", p)
	}
}

func TestMapLedgersEmpty(t *testing.T) {
	_, _, err := MapLedgers(File{Ledgers: []Ledger{{User: "bob", Applications: []Application{{Role: "x"}}}}}, "")
	if err == nil {
		t.Error("MapLedgers() should fail when nothing is usable")
	}
}

func TestEntryIDStable(t *testing.T) {
	a := entryID("alice", "Acme", "SRE", "2026-02-01")
	b := entryID("alice", "acme", "sre", " 2026-02-01 ")
	if a != b {
		t.Errorf("entryID() should ignore case and padding: %s != %s", a, b)
	}
	if c := entryID("bob", "Acme", "SRE", "2026-02-01"); c == a {
		t.Error("entryID() should differ per user")
	}
}

func TestMapLedgersDefaultOwner(t *testing.T) {
	f := File{Ledgers: []Ledger{{Applications: []Application{{Role: "SWE", Company: "Hooli"}}}}}

	ledgers, _, err := MapLedgers(f, "carol")
	if err != nil {
		t.Fatalf("MapLedgers() error = %v", err)
	}
	if len(ledgers["carol"]) != 1 {
		t.Errorf("unnamed ledger should belong to carol, got %v", ledgers)
	}
}

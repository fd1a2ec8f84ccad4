package ledgerfile

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `---
ledgers:
  - user: alice
    applications:
      - id: acme-sre
        role: SRE
        company: Acme
        url: https://jobs.example/acme/1
        status: interview
        date: 2026-02-01
        truth_score: 72
      - role: Data Engineer
        company: ${LEDGER_TEST_COMPANY}
        date: 2026-02-10
        ghost_risk: high
`

func TestLoaderLoad(t *testing.T) {
	t.Setenv("LEDGER_TEST_COMPANY", "Initech")

	path := filepath.Join(t.TempDir(), "ledger.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	f, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(f.Ledgers) != 1 {
		t.Fatalf("Load() returned %d ledgers, want 1", len(f.Ledgers))
	}
	apps := f.Ledgers[0].Applications
	if len(apps) != 2 {
		t.Fatalf("Load() returned %d applications, want 2", len(apps))
	}
	if apps[0].Date != "2026-02-01" {
		t.Errorf("date = %q, want 2026-02-01", apps[0].Date)
	}
	if apps[0].TruthScore == nil || *apps[0].TruthScore != 72 {
		t.Errorf("truth_score = %v, want 72", apps[0].TruthScore)
	}
	if apps[1].Company != "Initech" {
		t.Errorf("company = %q, want env expansion to Initech", apps[1].Company)
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	_, err := NewLoader("/nonexistent/path/ledger.yaml").Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("ledgers: [unterminated")); err == nil {
		t.Error("Parse() should reject malformed yaml")
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("LEDGER_TEST_VAR", "value")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"set variable", "a: ${LEDGER_TEST_VAR}", "a: value"},
		{"unset variable", "a: ${LEDGER_TEST_UNSET_VAR}", "a: "},
		{"no reference", "plain text", "plain text"},
		{"bare dollar", "cost: $5", "cost: $5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(expandEnv([]byte(tt.input))); got != tt.expected {
				t.Errorf("expandEnv() = %q, want %q", got, tt.expected)
			}
		})
	}
}

package ledgerfile

// Application is one tracked application as written in the ledger file.
type Application struct {
	ID           string `yaml:"id"`
	Role         string `yaml:"role"`
	Company      string `yaml:"company"`
	URL          string `yaml:"url"`
	Status       string `yaml:"status"`
	Date         string `yaml:"date"`
	LastActivity string `yaml:"last_activity"`
	Priority     string `yaml:"priority"`
	GhostRisk    string `yaml:"ghost_risk"`
	TruthScore   *int   `yaml:"truth_score"`
	Note         string `yaml:"note"`
}

// Ledger groups the applications of one user.
type Ledger struct {
	User         string        `yaml:"user"`
	Applications []Application `yaml:"applications"`
}

// File is the root structure of a ledger file:
//
//	ledgers:
//	  - user: default
//	    applications:
//	      - role: SRE
//	        company: Acme
//	        date: 2026-02-01
type File struct {
	Ledgers []Ledger `yaml:"ledgers"`
}

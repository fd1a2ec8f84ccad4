package ledgerfile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
)

// DefaultUser owns ledgers that do not name a user when the caller gives
// no other owner.
const DefaultUser = "default"

// Skipped describes an application the mapper dropped.
type Skipped struct {
	User   string
	Index  int
	Reason string
}

// MapLedgers converts a File into domain entries grouped by user. Ledgers
// without a user belong to defaultUser.
// Invalid applications are skipped and reported, not fatal. An error is
// returned only when nothing usable is left.
func MapLedgers(f File, defaultUser string) (map[string][]domain.TrackedApplication, []Skipped, error) {
	if defaultUser = strings.TrimSpace(defaultUser); defaultUser == "" {
		defaultUser = DefaultUser
	}
	out := make(map[string][]domain.TrackedApplication)
	var skipped []Skipped

	for _, l := range f.Ledgers {
		user := strings.TrimSpace(l.User)
		if user == "" {
			user = defaultUser
		}
		for i, a := range l.Applications {
			entry, err := mapApplication(user, a)
			if err != nil {
				skipped = append(skipped, Skipped{User: user, Index: i, Reason: err.Error()})
				continue
			}
			out[user] = append(out[user], entry)
		}
	}

	if len(out) == 0 {
		return nil, skipped, fmt.Errorf("no valid applications found in ledger file")
	}
	return out, skipped, nil
}

func mapApplication(user string, a Application) (domain.TrackedApplication, error) {
	role := strings.TrimSpace(a.Role)
	company := strings.TrimSpace(a.Company)
	if role == "" || company == "" {
		return domain.TrackedApplication{}, fmt.Errorf("role and company are required")
	}

	status := domain.StatusApplied
	if a.Status != "" {
		st, err := domain.ParseStatus(a.Status)
		if err != nil {
			return domain.TrackedApplication{}, err
		}
		status = st
	}

	var priority domain.Priority
	if a.Priority != "" {
		p, err := domain.ParsePriority(a.Priority)
		if err != nil {
			return domain.TrackedApplication{}, err
		}
		priority = p
	}

	risk, err := domain.ParseGhostRisk(a.GhostRisk)
	if err != nil {
		return domain.TrackedApplication{}, err
	}

	if a.TruthScore != nil && (*a.TruthScore < 0 || *a.TruthScore > 100) {
		return domain.TrackedApplication{}, fmt.Errorf("truth_score must be within 0..100")
	}

	id := strings.TrimSpace(a.ID)
	if id == "" {
		id = entryID(user, company, role, a.Date)
	}

	return domain.TrackedApplication{
		ID:           id,
		Role:         role,
		Company:      company,
		URL:          strings.TrimSpace(a.URL),
		Status:       status,
		Date:         strings.TrimSpace(a.Date),
		LastActivity: strings.TrimSpace(a.LastActivity),
		Priority:     priority,
		GhostRisk:    risk,
		TruthScore:   a.TruthScore,
		Note:         strings.TrimSpace(a.Note),
	}, nil
}

// entryID derives a stable ID so reimporting the same file never creates
// duplicates.
func entryID(user, company, role, date string) string {
	key := strings.ToLower(strings.Join([]string{user, company, role, strings.TrimSpace(date)}, "\x00"))
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])[:16]
}

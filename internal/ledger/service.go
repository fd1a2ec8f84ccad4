// Package ledger keeps every user's application ledger automated.
//
// The in-memory index is the primary copy. Redis persistence is best effort:
// a failed write is logged and the in-memory state stays authoritative.
// Every path that touches an entry runs it through domain.Automate.
package ledger

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
	"github.com/MrSnakeDoc/rolewithai/internal/index"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
	"github.com/MrSnakeDoc/rolewithai/internal/validation"
)

// Persister writes ledger entries to durable storage.
type Persister interface {
	SaveEntry(ctx context.Context, userID string, entry domain.TrackedApplication) error
	SaveEntriesMany(ctx context.Context, userID string, entries []domain.TrackedApplication) error
	DeleteEntry(ctx context.Context, userID, id string) error
}

// ScoreLookup returns the latest known score of a posting. A miss is (nil, nil).
type ScoreLookup interface {
	GetCachedScore(ctx context.Context, jobURL string) (*domain.ScoreSnapshot, error)
}

// OpenRequest is the input for adding an application to a ledger.
type OpenRequest struct {
	Role       string `json:"role" validate:"required,max=200"`
	Company    string `json:"company" validate:"required,max=200"`
	URL        string `json:"url,omitempty" validate:"omitempty,url"`
	Date       string `json:"date,omitempty"`
	Status     string `json:"status,omitempty"`
	TruthScore *int   `json:"truthScore,omitempty" validate:"omitempty,gte=0,lte=100"`
	GhostRisk  string `json:"ghostRisk,omitempty"`
	Note       string `json:"note,omitempty" validate:"max=1000"`
}

// SweepReport summarizes one automation pass over every ledger.
type SweepReport struct {
	Users    int           `json:"users"`
	Entries  int           `json:"entries"`
	Changed  int           `json:"changed"`
	Duration time.Duration `json:"duration"`
}

type Service struct {
	idx      *index.LedgerIndex
	store    Persister
	scores   ScoreLookup
	logger   logger.Logger
	validate *validation.Validator
	now      func() time.Time

	// mu serializes read-automate-write cycles so concurrent calls never
	// resurrect a deleted entry or drop a status change. Score lookups hit
	// Redis and always happen before it is taken.
	mu sync.Mutex
}

// NewService creates a ledger service. store and scores may be nil.
func NewService(idx *index.LedgerIndex, store Persister, scores ScoreLookup, log logger.Logger) *Service {
	return &Service{
		idx:      idx,
		store:    store,
		scores:   scores,
		logger:   log,
		validate: validation.New(),
		now:      time.Now,
	}
}

// Open adds a new application to userID's ledger.
func (s *Service) Open(ctx context.Context, userID string, req OpenRequest) (domain.TrackedApplication, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.TrackedApplication{}, err
	}

	status := domain.StatusApplied
	if req.Status != "" {
		st, err := domain.ParseStatus(req.Status)
		if err != nil {
			return domain.TrackedApplication{}, err
		}
		status = st
	}
	risk, err := domain.ParseGhostRisk(req.GhostRisk)
	if err != nil {
		return domain.TrackedApplication{}, err
	}

	now := s.now()
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = now.UTC().Format("2006-01-02")
	}

	entry := domain.TrackedApplication{
		ID:         uuid.NewString(),
		Role:       strings.TrimSpace(req.Role),
		Company:    strings.TrimSpace(req.Company),
		URL:        strings.TrimSpace(req.URL),
		Status:     status,
		Date:       date,
		GhostRisk:  risk,
		TruthScore: req.TruthScore,
		Note:       strings.TrimSpace(req.Note),
	}
	// Priority starts empty so the first pass always renders a note.
	res := domain.Automate(entry, nil, now)
	entry = res.Entry
	if req.Note != "" {
		entry.Note = strings.TrimSpace(req.Note)
	}

	s.mu.Lock()
	s.idx.Put(userID, entry)
	s.mu.Unlock()

	s.persist(ctx, userID, entry)
	s.logger.Info("ledger entry opened",
		logger.String("user_id", userID),
		logger.String("id", entry.ID),
		logger.String("company", entry.Company),
		logger.String("priority", string(entry.Priority)))
	return entry, nil
}

// List returns userID's ledger, automated as of now.
func (s *Service) List(ctx context.Context, userID string) []domain.TrackedApplication {
	scores := s.scoresFor(ctx, s.idx.List(userID))

	s.mu.Lock()
	entries := s.idx.List(userID)
	changed := s.automate(userID, entries, scores)
	s.mu.Unlock()

	if len(changed) > 0 {
		s.persistMany(ctx, userID, changed)
	}
	return entries
}

// Get returns one automated entry.
func (s *Service) Get(ctx context.Context, userID, id string) (domain.TrackedApplication, error) {
	entry, ok := s.idx.Get(userID, id)
	if !ok {
		return domain.TrackedApplication{}, domain.ErrNotFound
	}
	scores := s.scoresFor(ctx, []domain.TrackedApplication{entry})

	s.mu.Lock()
	if entry, ok = s.idx.Get(userID, id); !ok {
		s.mu.Unlock()
		return domain.TrackedApplication{}, domain.ErrNotFound
	}
	entries := []domain.TrackedApplication{entry}
	changed := s.automate(userID, entries, scores)
	s.mu.Unlock()

	if len(changed) > 0 {
		s.persistMany(ctx, userID, changed)
	}
	return entries[0], nil
}

// UpdateStatus records a manual status change. The change counts as
// activity, so the inactivity clock restarts.
func (s *Service) UpdateStatus(ctx context.Context, userID, id, status string) (domain.TrackedApplication, error) {
	st, err := domain.ParseStatus(status)
	if err != nil {
		return domain.TrackedApplication{}, err
	}

	entry, ok := s.idx.Get(userID, id)
	if !ok {
		return domain.TrackedApplication{}, domain.ErrNotFound
	}
	scores := s.scoresFor(ctx, []domain.TrackedApplication{entry})

	s.mu.Lock()
	if entry, ok = s.idx.Get(userID, id); !ok {
		s.mu.Unlock()
		return domain.TrackedApplication{}, domain.ErrNotFound
	}

	now := s.now()
	previous := entry.Status
	entry.Status = st
	entry.LastActivity = now.UTC().Format(time.RFC3339)

	res := domain.Automate(entry, scoreOf(scores, entry), now)
	entry = res.Entry
	if previous != st && !res.NoteRegenerated {
		entry.Note = domain.NoteFor(entry, entry.DaysSinceActivity)
	}
	s.idx.Put(userID, entry)
	s.mu.Unlock()

	s.persist(ctx, userID, entry)
	s.logger.Info("ledger status updated",
		logger.String("user_id", userID),
		logger.String("id", id),
		logger.String("from", string(previous)),
		logger.String("to", string(entry.Status)))
	return entry, nil
}

// Delete removes an entry from userID's ledger.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	ok := s.idx.Delete(userID, id)
	s.mu.Unlock()
	if !ok {
		return domain.ErrNotFound
	}

	if s.store != nil {
		if err := s.store.DeleteEntry(ctx, userID, id); err != nil {
			s.logger.Warn("failed to delete persisted ledger entry",
				logger.String("user_id", userID),
				logger.String("id", id),
				logger.Error(err))
		}
	}
	return nil
}

// Sweep automates every ledger. It is what the scheduler runs.
func (s *Service) Sweep(ctx context.Context) SweepReport {
	start := time.Now()

	var scores map[string]int
	for _, entries := range s.idx.Snapshot() {
		scores = s.mergeScores(ctx, scores, entries)
	}

	s.mu.Lock()
	all := s.idx.Snapshot()
	report := SweepReport{Users: len(all)}
	changed := make(map[string][]domain.TrackedApplication)
	for user, entries := range all {
		report.Entries += len(entries)
		if c := s.automate(user, entries, scores); len(c) > 0 {
			changed[user] = c
			report.Changed += len(c)
		}
	}
	s.idx.MarkSwept(s.now())
	s.mu.Unlock()

	for user, entries := range changed {
		s.persistMany(ctx, user, entries)
	}
	report.Duration = time.Since(start)
	return report
}

// Import adds entries whose IDs are not in userID's ledger yet. Entries
// without an ID get one. It returns how many entries were added.
func (s *Service) Import(ctx context.Context, userID string, entries []domain.TrackedApplication) int {
	now := s.now()
	scores := s.scoresFor(ctx, entries)

	var added []domain.TrackedApplication
	s.mu.Lock()
	for _, e := range entries {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if _, exists := s.idx.Get(userID, e.ID); exists {
			continue
		}
		e = domain.Automate(e, scoreOf(scores, e), now).Entry
		s.idx.Put(userID, e)
		added = append(added, e)
	}
	s.mu.Unlock()

	if len(added) > 0 {
		s.persistMany(ctx, userID, added)
	}
	return len(added)
}

// automate rewrites entries in place and stores the ones that changed in the
// index. It returns the changed entries. Callers hold s.mu.
func (s *Service) automate(userID string, entries []domain.TrackedApplication, scores map[string]int) []domain.TrackedApplication {
	now := s.now()
	var changed []domain.TrackedApplication
	for i, e := range entries {
		res := domain.Automate(e, scoreOf(scores, e), now)
		entries[i] = res.Entry
		if res.Changed() || res.Entry.Note != e.Note {
			s.idx.Put(userID, res.Entry)
			changed = append(changed, res.Entry)
		}
	}
	return changed
}

// scoresFor looks up the cached score of every entry that can use one,
// keyed by URL. Callers must not hold s.mu.
func (s *Service) scoresFor(ctx context.Context, entries []domain.TrackedApplication) map[string]int {
	return s.mergeScores(ctx, nil, entries)
}

func (s *Service) mergeScores(ctx context.Context, scores map[string]int, entries []domain.TrackedApplication) map[string]int {
	if s.scores == nil {
		return scores
	}
	for _, e := range entries {
		if !wantsScore(e) {
			continue
		}
		if _, seen := scores[e.URL]; seen {
			continue
		}
		snap, err := s.scores.GetCachedScore(ctx, e.URL)
		if err != nil {
			s.logger.Debug("score lookup failed", logger.String("url", e.URL), logger.Error(err))
			continue
		}
		if snap == nil {
			continue
		}
		if scores == nil {
			scores = make(map[string]int)
		}
		scores[e.URL] = snap.TruthScore
	}
	return scores
}

// wantsScore reports whether the score-drop rule can apply to e.
func wantsScore(e domain.TrackedApplication) bool {
	return e.URL != "" && e.TruthScore != nil
}

func scoreOf(scores map[string]int, e domain.TrackedApplication) *int {
	if !wantsScore(e) {
		return nil
	}
	v, ok := scores[e.URL]
	if !ok {
		return nil
	}
	return &v
}

func (s *Service) persist(ctx context.Context, userID string, entry domain.TrackedApplication) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveEntry(ctx, userID, entry); err != nil {
		s.warnPersist(userID, 1, err)
	}
}

func (s *Service) persistMany(ctx context.Context, userID string, entries []domain.TrackedApplication) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveEntriesMany(ctx, userID, entries); err != nil {
		s.warnPersist(userID, len(entries), err)
	}
}

func (s *Service) warnPersist(userID string, n int, err error) {
	level := s.logger.Warn
	if errors.Is(err, context.Canceled) {
		level = s.logger.Debug
	}
	level("failed to persist ledger entries",
		logger.String("user_id", userID),
		logger.Int("count", n),
		logger.Error(err))
}

package redis

import "strings"

const (
	// KeyPrefixScore is the prefix for cached Truth Scores, keyed by job URL
	KeyPrefixScore = "rwai:score:"
	// KeyPrefixLedger is the prefix for per-user ledger hashes (entry ID -> JSON)
	KeyPrefixLedger = "rwai:ledger:"
	// KeyLedgerUsers is the set of users that own a ledger
	KeyLedgerUsers = "rwai:ledgers:users"
	// KeyPrefixProfile is the prefix for user profiles
	KeyPrefixProfile = "rwai:profile:"
)

// ScoreKey returns the Redis key for a cached score. URLs are trimmed so
// the same posting with surrounding whitespace shares a key.
func ScoreKey(jobURL string) string {
	return KeyPrefixScore + strings.TrimSpace(jobURL)
}

// LedgerKey returns the hash holding a user's tracked applications
func LedgerKey(userID string) string {
	return KeyPrefixLedger + userID
}

// LedgerUsersKey returns the key for the set of ledger owners
func LedgerUsersKey() string {
	return KeyLedgerUsers
}

// ProfileKey returns the Redis key for a user profile
func ProfileKey(userID string) string {
	return KeyPrefixProfile + userID
}

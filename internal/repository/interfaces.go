package repository

import "context"

// Keys of the two persisted records.
const (
	ProfileKey   = "german_learner_profile"
	ChatUsageKey = "german_chat_usage"
)

// KeyValueRepository is the durable local store. Get reports found=false for
// an absent key; values are opaque bytes (JSON in practice).
type KeyValueRepository interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

package services

import (
	"context"
	"encoding/json"

	"github.com/vytor/wortflash/internal/errors"
	"github.com/vytor/wortflash/internal/logger"
	"github.com/vytor/wortflash/internal/repository"
)

// loadJSON reads key into dst. It reports false when the record is absent,
// unreadable or malformed; failures are logged and never returned.
func loadJSON(ctx context.Context, repo repository.KeyValueRepository, key string, dst any) bool {
	log := logger.FromContext(ctx).WithPrefix("store")

	raw, found, err := repo.Get(ctx, key)
	if err != nil {
		log.Warn("%v", &errors.PersistenceError{Op: "read", Key: key, Err: err})
		return false
	}
	if !found {
		log.Debug("no record for %s, using defaults", key)
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Warn("%v", &errors.PersistenceError{Op: "decode", Key: key, Err: err})
		return false
	}
	return true
}

// saveJSON writes v under key. Failures are logged and dropped.
func saveJSON(ctx context.Context, repo repository.KeyValueRepository, key string, v any) {
	log := logger.FromContext(ctx).WithPrefix("store")

	raw, err := json.Marshal(v)
	if err != nil {
		log.Error("%v", &errors.PersistenceError{Op: "encode", Key: key, Err: err})
		return
	}
	if err := repo.Set(ctx, key, raw); err != nil {
		log.Warn("%v", &errors.PersistenceError{Op: "write", Key: key, Err: err})
		return
	}
	log.Debug("saved %s (%d bytes)", key, len(raw))
}

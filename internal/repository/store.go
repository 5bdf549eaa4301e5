package repository

import (
	"context"
	"hash/fnv"

	"gorm.io/gorm"

	"fleet-service/internal/service"
)

// Store is the postgres-backed FleetStore. Plain reads run against the pool;
// WithLock opens one transaction and takes a pg advisory lock per resource
// key before running the callback, so the conflict check and the writes that
// follow it are a single atomic unit.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) WithLock(ctx context.Context, keys []service.ResourceKey, fn func(tx service.FleetTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Locks are transaction-scoped and release on commit/rollback.
		// Acquisition follows the global key order to avoid deadlock.
		for _, key := range service.SortKeys(keys) {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", lockID(key)).Error; err != nil {
				return err
			}
		}
		return fn(&Store{db: tx})
	})
}

// lockID maps a resource key onto the int64 space pg_advisory_xact_lock
// expects. Kind is part of the hash so a vehicle and a driver sharing a uuid
// still get distinct locks.
func lockID(key service.ResourceKey) int64 {
	h := fnv.New64a()
	h.Write([]byte(key.Kind))
	h.Write([]byte(key.ID.String()))
	return int64(h.Sum64())
}

package plan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/poupanca/poupanca/internal/storage"
	log "github.com/sirupsen/logrus"
)

// StateKey is the key under which the whole plan collection is
// persisted in the key-value storage.
const StateKey = "poupanca_10k_data"

type Repo interface {
	// Load reads the persisted collection. The second return value is
	// false when nothing has been persisted yet. A malformed payload is
	// returned as an error; there is no silent recovery for corrupt data.
	Load(ctx context.Context) ([]SavingsPlan, bool, error)
	// Save serializes the full collection. Called on every mutation.
	Save(ctx context.Context, plans []SavingsPlan) error
}

type StorageRepo struct {
	store storage.Store
}

func NewStorageRepo(store storage.Store) *StorageRepo {
	return &StorageRepo{store: store}
}

func (r *StorageRepo) Load(ctx context.Context) ([]SavingsPlan, bool, error) {
	raw, found, err := r.store.Get(ctx, StateKey)
	if err != nil {
		return nil, false, fmt.Errorf("could not read persisted plans: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var plans []SavingsPlan
		if err := json.Unmarshal(trimmed, &plans); err != nil {
			return nil, false, fmt.Errorf("could not parse persisted plans: %w", err)
		}
		return plans, true, nil
	}

	// Backward compatibility: a single legacy plan object is wrapped
	// into a one-element collection.
	var legacy SavingsPlan
	if err := json.Unmarshal(trimmed, &legacy); err != nil {
		return nil, false, fmt.Errorf("could not parse persisted plans: %w", err)
	}
	if legacy.ID == "" {
		legacy.ID = FallbackPlanID
	}
	if legacy.CreatedAt == 0 {
		legacy.CreatedAt = time.Now().UnixMilli()
	}
	log.Infof("migrated legacy single-plan state to a collection (plan %s)", legacy.ID)
	return []SavingsPlan{legacy}, true, nil
}

func (r *StorageRepo) Save(ctx context.Context, plans []SavingsPlan) error {
	raw, err := json.Marshal(plans)
	if err != nil {
		err := fmt.Errorf("could not serialize plans: %w", err)
		log.Error(err)
		return err
	}
	if err := r.store.Put(ctx, StateKey, string(raw)); err != nil {
		return fmt.Errorf("could not persist plans: %w", err)
	}
	return nil
}

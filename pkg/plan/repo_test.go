package plan

import (
	"testing"
	"time"

	"github.com/poupanca/poupanca/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTime() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestStorageRepo_Load(t *testing.T) {
	t.Run("returns not found when nothing was persisted", func(t *testing.T) {
		repo := NewStorageRepo(storage.NewStubStore())

		plans, found, err := repo.Load(ctx)

		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, plans)
	})

	t.Run("round-trips a saved collection", func(t *testing.T) {
		repo := NewStorageRepo(storage.NewStubStore())
		original := []SavingsPlan{NewDefaultPlan(testTime())}
		original[0].Entries[0].IsSaved = true
		require.NoError(t, repo.Save(ctx, original))

		plans, found, err := repo.Load(ctx)

		require.NoError(t, err)
		require.True(t, found)
		require.Len(t, plans, 1)
		assert.Equal(t, FallbackPlanID, plans[0].ID)
		assert.True(t, plans[0].Entries[0].IsSaved)
		assert.True(t, plans[0].Entries[0].Value.Equal(decimal.NewFromInt(120)))
	})

	t.Run("wraps a legacy single-plan object into a collection", func(t *testing.T) {
		stub := storage.NewStubStore()
		legacy := `{"title":"Juntando 10K","target":10000,"isCouple":true,` +
			`"entries":[{"month":1,"value":120,"isSaved":true},{"month":2,"value":180,"isSaved":false}]}`
		require.NoError(t, stub.Put(ctx, StateKey, legacy))
		repo := NewStorageRepo(stub)

		plans, found, err := repo.Load(ctx)

		require.NoError(t, err)
		require.True(t, found)
		require.Len(t, plans, 1)
		assert.Equal(t, FallbackPlanID, plans[0].ID, "legacy plans get the fallback identifier")
		assert.NotZero(t, plans[0].CreatedAt)
		assert.True(t, plans[0].IsCouple)
		assert.True(t, plans[0].Entries[0].IsSaved)
	})

	t.Run("keeps the identifier of a legacy plan that has one", func(t *testing.T) {
		stub := storage.NewStubStore()
		require.NoError(t, stub.Put(ctx, StateKey, `{"id":"my-plan","title":"Meta","entries":[]}`))
		repo := NewStorageRepo(stub)

		plans, _, err := repo.Load(ctx)

		require.NoError(t, err)
		assert.Equal(t, "my-plan", plans[0].ID)
	})

	t.Run("malformed state propagates as a parse error", func(t *testing.T) {
		stub := storage.NewStubStore()
		require.NoError(t, stub.Put(ctx, StateKey, `{"title": not json`))
		repo := NewStorageRepo(stub)

		_, _, err := repo.Load(ctx)

		assert.Error(t, err)
	})

	t.Run("malformed array state propagates as a parse error", func(t *testing.T) {
		stub := storage.NewStubStore()
		require.NoError(t, stub.Put(ctx, StateKey, `[{"title":`))
		repo := NewStorageRepo(stub)

		_, _, err := repo.Load(ctx)

		assert.Error(t, err)
	})
}

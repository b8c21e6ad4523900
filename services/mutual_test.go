package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	models "github.com/phillip/venturelink/models"
	store "github.com/phillip/venturelink/store"
)

// mutualFixture satisfies all three preconditions for f.investor on f.idea.
func mutualFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := newFixture(t)
	_, _, err := f.catalog.ToggleLike(ctx, f.investor.ID, f.idea.ID)
	require.NoError(t, err)
	_, err = f.ledger.ExpressInterest(ctx, f.investor, f.idea.ID, "$50k")
	require.NoError(t, err)
	_, ok := f.ledger.LikeBack(ctx, f.investor.ID, f.idea.ID)
	require.True(t, ok)
	return f
}

func TestHasMutualInterestRequiresEveryCondition(t *testing.T) {
	ctx := context.Background()

	t.Run("all hold", func(t *testing.T) {
		f := mutualFixture(t)
		assert.True(t, f.eval.HasMutualInterest(ctx, f.founder.ID, f.investor.ID, f.idea.ID))
	})

	t.Run("like removed", func(t *testing.T) {
		f := mutualFixture(t)
		_, _, err := f.catalog.ToggleLike(ctx, f.investor.ID, f.idea.ID)
		require.NoError(t, err)
		assert.False(t, f.eval.HasMutualInterest(ctx, f.founder.ID, f.investor.ID, f.idea.ID))
	})

	t.Run("record withdrawn", func(t *testing.T) {
		f := mutualFixture(t)
		inv, _ := f.ledger.Find(ctx, f.investor.ID, f.idea.ID)
		require.NoError(t, f.ledger.Withdraw(ctx, inv.ID, f.investor.ID))
		assert.False(t, f.eval.HasMutualInterest(ctx, f.founder.ID, f.investor.ID, f.idea.ID))
	})

	t.Run("status not liked back", func(t *testing.T) {
		f := mutualFixture(t)
		inv, _ := f.ledger.Find(ctx, f.investor.ID, f.idea.ID)
		declined := models.InterestDeclined
		_, err := f.ledger.Update(ctx, f.founder, inv.ID, InterestUpdate{Status: &declined})
		require.NoError(t, err)
		assert.False(t, f.eval.HasMutualInterest(ctx, f.founder.ID, f.investor.ID, f.idea.ID))
	})

	t.Run("interest without like back", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.catalog.ToggleLike(ctx, f.investor.ID, f.idea.ID)
		require.NoError(t, err)
		_, err = f.ledger.ExpressInterest(ctx, f.investor, f.idea.ID, "$1")
		require.NoError(t, err)
		assert.False(t, f.eval.HasMutualInterest(ctx, f.founder.ID, f.investor.ID, f.idea.ID))
	})
}

func TestMutualFor(t *testing.T) {
	ctx := context.Background()
	f := mutualFixture(t)

	for _, uid := range []string{f.founder.ID, f.investor.ID} {
		pairs := f.eval.MutualFor(ctx, uid)
		require.Len(t, pairs, 1, uid)
		assert.Equal(t, f.idea.ID, pairs[0].Idea.ID)
		assert.Equal(t, ChannelID(f.founder.ID, f.investor.ID, f.idea.ID), pairs[0].ChatID)
	}
	assert.Empty(t, f.eval.MutualFor(ctx, "stranger"))
}

// countingBackend counts Load calls per collection.
type countingBackend struct {
	store.Backend
	mu    sync.Mutex
	loads map[store.Collection]int
}

func (c *countingBackend) Load(ctx context.Context, coll store.Collection, out any) (bool, error) {
	c.mu.Lock()
	c.loads[coll]++
	c.mu.Unlock()
	return c.Backend.Load(ctx, coll, out)
}

func (c *countingBackend) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loads = map[store.Collection]int{}
}

func TestMutualForReadsEachCollectionOnce(t *testing.T) {
	ctx := context.Background()
	backend := &countingBackend{Backend: store.NewMemoryBackend(), loads: map[store.Collection]int{}}
	st := store.New(backend, zap.NewNop())
	log := zap.NewNop()
	catalog := NewCatalog(st, log)
	ledger := NewLedger(st, &recordingNotifier{}, log)
	eval := NewEvaluator(st)

	founder := models.User{ID: "f1", Name: "Ada Founder", Email: "ada@example.com", Role: models.RoleFounder}
	users := []models.User{founder}
	for i := 0; i < 4; i++ {
		users = append(users, models.User{ID: fmt.Sprintf("i%d", i), Name: "Investor", Email: fmt.Sprintf("i%d@example.com", i), Role: models.RoleInvestor})
	}
	st.Users.Save(ctx, users)
	idea := catalog.AddIdea(ctx, founder, NewIdea{Title: "Solar kiosks", Category: "CleanTech"})

	for _, inv := range users[1:] {
		_, _, err := catalog.ToggleLike(ctx, inv.ID, idea.ID)
		require.NoError(t, err)
		_, err = ledger.ExpressInterest(ctx, inv, idea.ID, "$10k")
		require.NoError(t, err)
		_, ok := ledger.LikeBack(ctx, inv.ID, idea.ID)
		require.True(t, ok)
	}

	backend.reset()
	pairs := eval.MutualFor(ctx, founder.ID)
	assert.Len(t, pairs, 4)
	assert.Equal(t, 1, backend.loads[store.Likes])
	assert.Equal(t, 1, backend.loads[store.Investments])
	assert.Equal(t, 1, backend.loads[store.Ideas])
}

package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	models "github.com/phillip/venturelink/models"
	store "github.com/phillip/venturelink/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type sentMail struct {
	To, Name, Subject, Body string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
}

func (r *recordingNotifier) Notify(_ context.Context, to, name, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMail{to, name, subject, body})
	return nil
}

type fixture struct {
	store    *store.Store
	catalog  *Catalog
	ledger   *Ledger
	eval     *Evaluator
	chats    *ChatManager
	users    *Users
	notifier *recordingNotifier

	founder  models.User
	investor models.User
	idea     models.Idea
}

func fixedClock() func() time.Time {
	t := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

// newFixture builds services over an in-memory store holding one founder, one
// investor and one idea owned by the founder.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := store.New(store.NewMemoryBackend(), zap.NewNop())
	log := zap.NewNop()

	f := &fixture{
		store:    st,
		catalog:  NewCatalog(st, log),
		eval:     NewEvaluator(st),
		chats:    NewChatManager(st, log),
		users:    NewUsers(st, log),
		notifier: &recordingNotifier{},
	}
	f.ledger = NewLedger(st, f.notifier, log)

	clock := fixedClock()
	f.catalog.now, f.ledger.now, f.chats.now, f.users.now = clock, clock, clock, clock
	f.users.cost = 4 // bcrypt.MinCost

	f.founder = models.User{ID: "f1", Name: "Ada Founder", Email: "ada@example.com", Role: models.RoleFounder, Company: "Ada Labs"}
	f.investor = models.User{ID: "i1", Name: "Ivan Investor", Email: "ivan@example.com", Role: models.RoleInvestor, Company: "Seed Fund"}
	st.Users.Save(ctx, []models.User{f.founder, f.investor})

	f.idea = f.catalog.AddIdea(ctx, f.founder, NewIdea{
		Title:       "Solar kiosks",
		Description: "Pay-as-you-go solar charging kiosks for rural markets.",
		Category:    "CleanTech",
		FundingGoal: "$250k",
	})
	return f
}

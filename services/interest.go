package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"go.uber.org/zap"

	models "github.com/phillip/venturelink/models"
	store "github.com/phillip/venturelink/store"
	utils "github.com/phillip/venturelink/utils"
)

// Ledger records investors' interest in ideas and the founder's response to it.
// The interestedInvestors list on each idea is a display copy refreshed on every write
// here; the Investment records are authoritative.
type Ledger struct {
	store    *store.Store
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewLedger(st *store.Store, notifier Notifier, log *zap.Logger) *Ledger {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Ledger{store: st, notifier: notifier, log: log.Named("ledger"), now: time.Now}
}

// ExpressInterest creates an "interested" record for (investor, idea). A second call
// for the same pair is rejected.
func (l *Ledger) ExpressInterest(ctx context.Context, investor models.User, ideaID, amount string) (models.Investment, error) {
	l.store.Lock()

	idea, ok := l.store.Ideas.Find(ctx, func(i models.Idea) bool { return i.ID == ideaID })
	if !ok {
		l.store.Unlock()
		return models.Investment{}, fail(ErrNotFound, "Idea not found")
	}

	invs := l.store.Investments.All(ctx)
	for _, inv := range invs {
		if inv.IdeaID == ideaID && inv.InvestorID == investor.ID {
			l.store.Unlock()
			return models.Investment{}, fail(ErrConflict, "You have already expressed interest in this idea")
		}
	}

	now := l.now().UTC()
	inv := models.Investment{
		ID:           utils.NewID(),
		IdeaID:       ideaID,
		InvestorID:   investor.ID,
		InvestorName: investor.Name,
		Amount:       amount,
		Status:       models.InterestInterested,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	l.store.Investments.Save(ctx, append(invs, inv))
	l.refreshSnapshot(ctx, inv, investor.Company)
	l.store.Unlock()

	l.log.Info("interest expressed",
		zap.String("investment_id", inv.ID), zap.String("idea_id", ideaID), zap.String("investor_id", investor.ID))

	l.notifyUser(ctx, idea.FounderID,
		"New interest in "+idea.Title,
		fmt.Sprintf("<p>%s is interested in <b>%s</b> with %s.</p>",
			html.EscapeString(investor.Name), html.EscapeString(idea.Title), html.EscapeString(amount)))
	return inv, nil
}

// LikeBack marks the investor's record on the idea as reciprocated. ok is false when
// no record exists for the pair.
func (l *Ledger) LikeBack(ctx context.Context, investorID, ideaID string) (models.Investment, bool) {
	l.store.Lock()

	invs := l.store.Investments.All(ctx)
	idx := -1
	for i := range invs {
		if invs[i].InvestorID == investorID && invs[i].IdeaID == ideaID {
			idx = i
			break
		}
	}
	if idx == -1 {
		l.store.Unlock()
		return models.Investment{}, false
	}
	invs[idx].Status = models.InterestLikedBack
	invs[idx].UpdatedAt = l.now().UTC()
	l.store.Investments.Save(ctx, invs)
	inv := invs[idx]
	l.refreshSnapshot(ctx, inv, "")
	l.store.Unlock()

	l.log.Info("interest liked back", zap.String("investment_id", inv.ID), zap.String("idea_id", ideaID))
	l.notifyLikedBack(ctx, inv)
	return inv, true
}

// notifyLikedBack tells the investor the founder reciprocated.
func (l *Ledger) notifyLikedBack(ctx context.Context, inv models.Investment) {
	title := inv.IdeaID
	if idea, ok := l.store.Ideas.Find(ctx, func(i models.Idea) bool { return i.ID == inv.IdeaID }); ok {
		title = idea.Title
	}
	l.notifyUser(ctx, inv.InvestorID,
		"The founder liked you back",
		fmt.Sprintf("<p>The founder of <b>%s</b> liked you back. You can now start a conversation.</p>",
			html.EscapeString(title)))
}

type InterestUpdate struct {
	Status *string
	Amount *string
}

// Update applies a change requested by a user. The investor may change the amount;
// the founder owning the idea may change the status.
func (l *Ledger) Update(ctx context.Context, requester models.User, id string, upd InterestUpdate) (models.Investment, error) {
	inv, likedBack, err := l.update(ctx, requester, id, upd)
	if err != nil {
		return models.Investment{}, err
	}
	if likedBack {
		l.log.Info("interest liked back", zap.String("investment_id", inv.ID), zap.String("idea_id", inv.IdeaID))
		l.notifyLikedBack(ctx, inv)
	}
	return inv, nil
}

// update applies upd under the store lock. likedBack reports a move into liked_back.
func (l *Ledger) update(ctx context.Context, requester models.User, id string, upd InterestUpdate) (models.Investment, bool, error) {
	l.store.Lock()
	defer l.store.Unlock()

	invs := l.store.Investments.All(ctx)
	idx := -1
	for i := range invs {
		if invs[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Investment{}, false, fail(ErrNotFound, "Investment not found")
	}
	inv := invs[idx]

	idea, _ := l.store.Ideas.Find(ctx, func(i models.Idea) bool { return i.ID == inv.IdeaID })
	isInvestor := inv.InvestorID == requester.ID
	isFounder := idea.FounderID != "" && idea.FounderID == requester.ID

	if upd.Amount != nil && !isInvestor {
		return models.Investment{}, false, fail(ErrForbidden, "Only the investor can change the amount")
	}
	if upd.Status != nil && !isFounder {
		return models.Investment{}, false, fail(ErrForbidden, "Only the founder of this idea can change the status")
	}
	if upd.Amount == nil && upd.Status == nil {
		return inv, false, nil
	}

	likedBack := false
	if upd.Amount != nil {
		inv.Amount = *upd.Amount
	}
	if upd.Status != nil {
		likedBack = *upd.Status == models.InterestLikedBack && inv.Status != models.InterestLikedBack
		inv.Status = *upd.Status
	}
	inv.UpdatedAt = l.now().UTC()
	invs[idx] = inv
	l.store.Investments.Save(ctx, invs)
	l.refreshSnapshot(ctx, inv, "")
	return inv, likedBack, nil
}

// Withdraw deletes a record. Only the investor who created it may do so.
func (l *Ledger) Withdraw(ctx context.Context, recordID, requesterID string) error {
	l.store.Lock()
	defer l.store.Unlock()

	invs := l.store.Investments.All(ctx)
	idx := -1
	for i := range invs {
		if invs[i].ID == recordID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fail(ErrNotFound, "Investment not found")
	}
	inv := invs[idx]
	if inv.InvestorID != requesterID {
		return fail(ErrForbidden, "You can only withdraw your own investments")
	}

	l.store.Investments.Save(ctx, append(invs[:idx], invs[idx+1:]...))
	l.dropSnapshot(ctx, inv)

	l.log.Info("interest withdrawn", zap.String("investment_id", inv.ID), zap.String("idea_id", inv.IdeaID))
	return nil
}

func (l *Ledger) Get(ctx context.Context, id string) (models.Investment, bool) {
	return l.store.Investments.Find(ctx, func(inv models.Investment) bool { return inv.ID == id })
}

// Find returns the record for (investor, idea).
func (l *Ledger) Find(ctx context.Context, investorID, ideaID string) (models.Investment, bool) {
	return l.store.Investments.Find(ctx, func(inv models.Investment) bool {
		return inv.InvestorID == investorID && inv.IdeaID == ideaID
	})
}

func (l *Ledger) ForIdea(ctx context.Context, ideaID string) []models.Investment {
	return l.store.Investments.Filter(ctx, func(inv models.Investment) bool { return inv.IdeaID == ideaID })
}

func (l *Ledger) ForInvestor(ctx context.Context, investorID string) []models.Investment {
	return l.store.Investments.Filter(ctx, func(inv models.Investment) bool { return inv.InvestorID == investorID })
}

// ForFounder returns the records on every idea the founder owns.
func (l *Ledger) ForFounder(ctx context.Context, founderID string) []models.Investment {
	owned := map[string]bool{}
	for _, idea := range l.store.Ideas.All(ctx) {
		if idea.FounderID == founderID {
			owned[idea.ID] = true
		}
	}
	return l.store.Investments.Filter(ctx, func(inv models.Investment) bool { return owned[inv.IdeaID] })
}

// refreshSnapshot upserts the investor's display entry on the idea. An empty firm keeps
// the one already recorded. Caller holds the store lock.
func (l *Ledger) refreshSnapshot(ctx context.Context, inv models.Investment, firm string) {
	ideas := l.store.Ideas.All(ctx)
	for i := range ideas {
		if ideas[i].ID != inv.IdeaID {
			continue
		}
		entries := ideas[i].InterestedInvestors
		for j := range entries {
			if entries[j].InvestorID == inv.InvestorID {
				if firm == "" {
					firm = entries[j].Firm
				}
				entries[j] = inv.Snapshot(firm)
				l.store.Ideas.Save(ctx, ideas)
				return
			}
		}
		ideas[i].InterestedInvestors = append(entries, inv.Snapshot(firm))
		l.store.Ideas.Save(ctx, ideas)
		return
	}
}

// dropSnapshot removes the investor's display entry. Caller holds the store lock.
func (l *Ledger) dropSnapshot(ctx context.Context, inv models.Investment) {
	ideas := l.store.Ideas.All(ctx)
	for i := range ideas {
		if ideas[i].ID != inv.IdeaID {
			continue
		}
		kept := []models.InterestedInvestor{}
		for _, e := range ideas[i].InterestedInvestors {
			if e.InvestorID != inv.InvestorID {
				kept = append(kept, e)
			}
		}
		ideas[i].InterestedInvestors = kept
		l.store.Ideas.Save(ctx, ideas)
		return
	}
}

// notifyUser mails a user if they can be resolved. Failures are logged only.
func (l *Ledger) notifyUser(ctx context.Context, userID, subject, body string) {
	user, ok := l.store.Users.Find(ctx, func(u models.User) bool { return u.ID == userID })
	if !ok || user.Email == "" {
		return
	}
	if err := l.notifier.Notify(ctx, user.Email, user.Name, subject, body); err != nil {
		l.log.Warn("notification failed", zap.String("user_id", userID), zap.Error(err))
	}
}

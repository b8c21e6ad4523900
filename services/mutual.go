package services

import (
	"context"

	models "github.com/phillip/venturelink/models"
	store "github.com/phillip/venturelink/store"
)

// Evaluator decides whether a founder and an investor may chat about an idea.
type Evaluator struct {
	store *store.Store
}

func NewEvaluator(st *store.Store) *Evaluator {
	return &Evaluator{store: st}
}

// HasMutualInterest holds when the investor liked the idea, expressed interest in it,
// and that interest was liked back. founderID is accepted for symmetry with the chat
// identifier and is not consulted.
func (e *Evaluator) HasMutualInterest(ctx context.Context, founderID, investorID, ideaID string) bool {
	_, liked := e.store.Likes.Find(ctx, func(l models.Like) bool {
		return l.UserID == investorID && l.IdeaID == ideaID
	})
	if !liked {
		return false
	}
	_, likedBack := e.store.Investments.Find(ctx, func(inv models.Investment) bool {
		return inv.InvestorID == investorID && inv.IdeaID == ideaID && inv.Status == models.InterestLikedBack
	})
	return likedBack
}

// Pair is one mutual match from a user's point of view.
type Pair struct {
	Idea       models.Idea       `json:"idea"`
	Investment models.Investment `json:"investment"`
	ChatID     string            `json:"chatId"`
}

// MutualFor lists every mutual match the user takes part in, as founder or investor.
// Each collection is read once.
func (e *Evaluator) MutualFor(ctx context.Context, userID string) []Pair {
	ideas := map[string]models.Idea{}
	for _, idea := range e.store.Ideas.All(ctx) {
		ideas[idea.ID] = idea
	}
	liked := map[[2]string]bool{}
	for _, l := range e.store.Likes.All(ctx) {
		liked[[2]string{l.UserID, l.IdeaID}] = true
	}

	out := []Pair{}
	for _, inv := range e.store.Investments.All(ctx) {
		if inv.Status != models.InterestLikedBack || !liked[[2]string{inv.InvestorID, inv.IdeaID}] {
			continue
		}
		idea, ok := ideas[inv.IdeaID]
		if !ok || (inv.InvestorID != userID && idea.FounderID != userID) {
			continue
		}
		out = append(out, Pair{Idea: idea, Investment: inv, ChatID: ChannelID(idea.FounderID, inv.InvestorID, idea.ID)})
	}
	return out
}

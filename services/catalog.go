package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	models "github.com/phillip/venturelink/models"
	store "github.com/phillip/venturelink/store"
	utils "github.com/phillip/venturelink/utils"
)

// Catalog manages ideas and the likes that feed their counters.
type Catalog struct {
	store *store.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewCatalog(st *store.Store, log *zap.Logger) *Catalog {
	return &Catalog{store: st, log: log.Named("catalog"), now: time.Now}
}

type NewIdea struct {
	Title       string
	Description string
	Category    string
	FundingGoal string
	Document    *models.Document
}

// AddIdea creates an active idea with no likes and puts it first in the catalogue.
func (c *Catalog) AddIdea(ctx context.Context, founder models.User, in NewIdea) models.Idea {
	c.store.Lock()
	defer c.store.Unlock()

	now := c.now().UTC()
	idea := models.Idea{
		ID:          utils.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		FounderID:   founder.ID,
		Founder: models.FounderSnapshot{
			Name:    founder.Name,
			Company: founder.Company,
		},
		Likes:               0,
		Status:              models.IdeaActive,
		FundingGoal:         in.FundingGoal,
		Document:            in.Document,
		InterestedInvestors: []models.InterestedInvestor{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	ideas := c.store.Ideas.All(ctx)
	c.store.Ideas.Save(ctx, append([]models.Idea{idea}, ideas...))

	c.log.Info("idea created", zap.String("idea_id", idea.ID), zap.String("founder_id", founder.ID))
	return idea
}

func (c *Catalog) GetIdea(ctx context.Context, id string) (models.Idea, bool) {
	return c.store.Ideas.Find(ctx, func(i models.Idea) bool { return i.ID == id })
}

func (c *Catalog) GetIdeasByFounder(ctx context.Context, founderID string) []models.Idea {
	return c.store.Ideas.Filter(ctx, func(i models.Idea) bool { return i.FounderID == founderID })
}

// UpdateIdea merges patch into the idea. ok is false when the id is unknown.
func (c *Catalog) UpdateIdea(ctx context.Context, id string, patch models.IdeaPatch) (models.Idea, bool) {
	c.store.Lock()
	defer c.store.Unlock()

	ideas := c.store.Ideas.All(ctx)
	for i := range ideas {
		if ideas[i].ID != id {
			continue
		}
		patch.Apply(&ideas[i])
		ideas[i].UpdatedAt = c.now().UTC()
		c.store.Ideas.Save(ctx, ideas)
		return ideas[i], true
	}
	return models.Idea{}, false
}

// DeleteIdea removes the idea together with its likes and interest records.
func (c *Catalog) DeleteIdea(ctx context.Context, id string) (models.Idea, bool) {
	c.store.Lock()
	defer c.store.Unlock()

	ideas := c.store.Ideas.All(ctx)
	var removed models.Idea
	found := false
	kept := ideas[:0]
	for _, idea := range ideas {
		if idea.ID == id {
			removed, found = idea, true
			continue
		}
		kept = append(kept, idea)
	}
	if !found {
		return models.Idea{}, false
	}
	c.store.Ideas.Save(ctx, kept)

	likes := c.store.Likes.Filter(ctx, func(l models.Like) bool { return l.IdeaID != id })
	c.store.Likes.Save(ctx, likes)
	invs := c.store.Investments.Filter(ctx, func(inv models.Investment) bool { return inv.IdeaID != id })
	c.store.Investments.Save(ctx, invs)

	c.log.Info("idea deleted", zap.String("idea_id", id))
	return removed, true
}

type IdeaQuery struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// List filters by category (case-insensitive, "all" disables) and free-text search
// over title, description and founder, then pages the result.
func (c *Catalog) List(ctx context.Context, q IdeaQuery) models.IdeaPage {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageLimit
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))

	matched := c.store.Ideas.Filter(ctx, func(i models.Idea) bool {
		if q.Category != "" && !strings.EqualFold(q.Category, "all") && !strings.EqualFold(i.Category, q.Category) {
			return false
		}
		if search == "" {
			return true
		}
		return strings.Contains(strings.ToLower(i.Title), search) ||
			strings.Contains(strings.ToLower(i.Description), search) ||
			strings.Contains(strings.ToLower(i.Founder.Name), search) ||
			strings.Contains(strings.ToLower(i.Founder.Company), search)
	})

	start := (q.Page - 1) * q.Limit
	end := start + q.Limit
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}
	return models.IdeaPage{
		Data:  matched[start:end],
		Total: len(matched),
		Page:  q.Page,
		Limit: q.Limit,
	}
}

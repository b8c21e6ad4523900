package services

import (
	"context"

	"go.uber.org/zap"

	models "github.com/phillip/venturelink/models"
	utils "github.com/phillip/venturelink/utils"
)

// ToggleLike removes the user's like on the idea if present, otherwise adds one, and
// moves the idea's counter with it. The counter never drops below zero.
func (c *Catalog) ToggleLike(ctx context.Context, userID, ideaID string) (bool, models.Like, error) {
	c.store.Lock()
	defer c.store.Unlock()

	ideas := c.store.Ideas.All(ctx)
	idx := -1
	for i := range ideas {
		if ideas[i].ID == ideaID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, models.Like{}, fail(ErrNotFound, "Idea not found")
	}

	likes := c.store.Likes.All(ctx)
	liked := true
	var like models.Like
	kept := likes[:0]
	for _, l := range likes {
		if l.IdeaID == ideaID && l.UserID == userID {
			liked, like = false, l
			continue
		}
		kept = append(kept, l)
	}

	if liked {
		like = models.Like{
			ID:        utils.NewID(),
			IdeaID:    ideaID,
			UserID:    userID,
			CreatedAt: c.now().UTC(),
		}
		kept = append(kept, like)
		ideas[idx].Likes++
	} else if ideas[idx].Likes > 0 {
		ideas[idx].Likes--
	}
	ideas[idx].UpdatedAt = c.now().UTC()

	c.store.Likes.Save(ctx, kept)
	c.store.Ideas.Save(ctx, ideas)

	c.log.Debug("like toggled",
		zap.String("idea_id", ideaID), zap.String("user_id", userID), zap.Bool("liked", liked))
	return liked, like, nil
}

func (c *Catalog) LikesForIdea(ctx context.Context, ideaID string) []models.Like {
	return c.store.Likes.Filter(ctx, func(l models.Like) bool { return l.IdeaID == ideaID })
}

func (c *Catalog) LikesForUser(ctx context.Context, userID string) []models.Like {
	return c.store.Likes.Filter(ctx, func(l models.Like) bool { return l.UserID == userID })
}

func (c *Catalog) HasLiked(ctx context.Context, userID, ideaID string) bool {
	_, ok := c.store.Likes.Find(ctx, func(l models.Like) bool {
		return l.UserID == userID && l.IdeaID == ideaID
	})
	return ok
}

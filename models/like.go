package models

import "time"

// Like is unique per (idea, user); toggling removes or creates it.
type Like struct {
	ID        string    `bson:"_id" json:"id"`
	IdeaID    string    `bson:"idea_id" json:"ideaId"`
	UserID    string    `bson:"user_id" json:"userId"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

package models

import "time"

type Message struct {
	ID         string    `bson:"id" json:"id"`
	SenderID   string    `bson:"sender_id" json:"senderId"`
	SenderName string    `bson:"sender_name" json:"senderName"` // copied from the sender at send time
	Body       string    `bson:"message" json:"message"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}

// Chat is the thread for one (founder, investor, idea) triple. Messages keep insertion order.
type Chat struct {
	ID         string    `bson:"_id" json:"id"`
	FounderID  string    `bson:"founder_id" json:"founderId"`
	InvestorID string    `bson:"investor_id" json:"investorId"`
	IdeaID     string    `bson:"idea_id" json:"ideaId"`
	Messages   []Message `bson:"messages" json:"messages"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

// HasParticipant reports whether userID is the founder or the investor of the chat.
func (c Chat) HasParticipant(userID string) bool {
	return c.FounderID == userID || c.InvestorID == userID
}

package models

import "time"

// Investment statuses. interested -> liked_back | declined.
const (
	InterestInterested = "interested"
	InterestLikedBack  = "liked_back"
	InterestDeclined   = "declined"
)

// Investment is an investor's expressed interest in an idea. At most one per (idea, investor).
type Investment struct {
	ID           string    `bson:"_id" json:"id"`
	IdeaID       string    `bson:"idea_id" json:"ideaId"`
	InvestorID   string    `bson:"investor_id" json:"investorId"`
	InvestorName string    `bson:"investor_name" json:"investorName"`
	Amount       string    `bson:"amount" json:"amount"` // free-form, e.g. "$250k"
	Status       string    `bson:"status" json:"status"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// Snapshot returns the display copy stored on the idea.
func (inv Investment) Snapshot(firm string) InterestedInvestor {
	return InterestedInvestor{
		ID:         inv.InvestorID,
		InvestorID: inv.InvestorID,
		Name:       inv.InvestorName,
		Firm:       firm,
		Amount:     inv.Amount,
		Status:     inv.Status,
	}
}

package models

import "time"

// Idea statuses
const (
	IdeaActive = "active"
	IdeaFunded = "funded"
	IdeaClosed = "closed"
)

// Categories accepted by the idea form.
var Categories = []string{
	"FinTech", "HealthTech", "EdTech", "E-commerce", "SaaS", "AI/ML",
	"Blockchain", "IoT", "CleanTech", "FoodTech", "Mobility", "Other",
}

type FounderSnapshot struct {
	Name    string `bson:"name" json:"name"`
	Company string `bson:"company,omitempty" json:"company,omitempty"`
}

type Document struct {
	Filename string `bson:"filename" json:"filename"`
	URL      string `bson:"url" json:"url"`
}

// InterestedInvestor is a display copy of an Investment kept on the idea.
// The Investment record stays authoritative for status.
type InterestedInvestor struct {
	ID         string `bson:"id" json:"id"`
	InvestorID string `bson:"investor_id" json:"investorId"`
	Name       string `bson:"name" json:"name"`
	Firm       string `bson:"firm,omitempty" json:"firm,omitempty"`
	Amount     string `bson:"amount" json:"amount"`
	Status     string `bson:"status" json:"status"`
}

type Idea struct {
	ID                  string               `bson:"_id" json:"id"`
	Title               string               `bson:"title" json:"title"`
	Description         string               `bson:"description" json:"description"`
	Category            string               `bson:"category" json:"category"`
	FounderID           string               `bson:"founder_id" json:"founderId"`
	Founder             FounderSnapshot      `bson:"founder" json:"founder"`
	Likes               int                  `bson:"likes" json:"likes"`
	Status              string               `bson:"status" json:"status"` // active, funded, closed
	FundingGoal         string               `bson:"funding_goal,omitempty" json:"fundingGoal,omitempty"`
	Document            *Document            `bson:"document,omitempty" json:"document,omitempty"`
	InterestedInvestors []InterestedInvestor `bson:"interested_investors" json:"interestedInvestors"`
	CreatedAt           time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time            `bson:"updated_at" json:"updatedAt"`
}

// IdeaPatch is a merge-patch for an Idea. Nil fields are left untouched.
type IdeaPatch struct {
	Title       *string
	Description *string
	Category    *string
	FundingGoal *string
	Status      *string
	Document    *Document
}

func (p IdeaPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.FundingGoal == nil && p.Status == nil && p.Document == nil
}

// Apply merges the patch into idea.
func (p IdeaPatch) Apply(idea *Idea) {
	if p.Title != nil {
		idea.Title = *p.Title
	}
	if p.Description != nil {
		idea.Description = *p.Description
	}
	if p.Category != nil {
		idea.Category = *p.Category
	}
	if p.FundingGoal != nil {
		idea.FundingGoal = *p.FundingGoal
	}
	if p.Status != nil {
		idea.Status = *p.Status
	}
	if p.Document != nil {
		idea.Document = p.Document
	}
}

// IdeaPage is one page of a filtered idea listing.
type IdeaPage struct {
	Data  []Idea `json:"data"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

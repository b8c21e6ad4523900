package store

import (
	"time"

	models "github.com/phillip/venturelink/models"
)

// DemoIdeas is the catalogue shown on a fresh install. Like counters start at zero
// because no Like records back them.
func DemoIdeas() []models.Idea {
	created := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}
	return []models.Idea{
		{
			ID:          "1",
			Title:       "AI-Powered Personal Finance Assistant",
			Description: "An intelligent chatbot that helps users manage their finances, track expenses, and provide personalized investment advice using machine learning.",
			Category:    "FinTech",
			FounderID:   "demo_founder_1",
			Founder:     models.FounderSnapshot{Name: "John Smith", Company: "FinanceAI Inc."},
			Status:      models.IdeaActive,
			FundingGoal: "$500k",
			CreatedAt:   created("2024-01-15T10:00:00Z"),
			UpdatedAt:   created("2024-01-15T10:00:00Z"),
		},
		{
			ID:          "2",
			Title:       "Sustainable Fashion Marketplace",
			Description: "A platform connecting eco-conscious consumers with sustainable fashion brands, featuring carbon footprint tracking and ethical sourcing verification.",
			Category:    "E-commerce",
			FounderID:   "demo_founder_2",
			Founder:     models.FounderSnapshot{Name: "Emily Chen", Company: "EcoWear"},
			Status:      models.IdeaActive,
			FundingGoal: "$300k",
			CreatedAt:   created("2024-01-10T10:00:00Z"),
			UpdatedAt:   created("2024-01-10T10:00:00Z"),
		},
	}
}

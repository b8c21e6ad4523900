package models

import "time"

const (
	RoleFounder  = "founder"
	RoleInvestor = "investor"
)

type User struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Role         string    `bson:"role" json:"role"` // founder, investor
	Company      string    `bson:"company,omitempty" json:"company,omitempty"`
	Bio          string    `bson:"bio,omitempty" json:"bio,omitempty"`
	PasswordHash string    `bson:"password_hash,omitempty" json:"passwordHash,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// Sanitize strips credentials before the user leaves the server.
func (u User) Sanitize() User {
	u.PasswordHash = ""
	return u
}

package models

import "time"

// Role values carried in session claims. Only the configured admin uid ever gets RoleAdmin.
const (
	RoleAdmin   = "admin"
	RoleVisitor = "visitor"
)

type User struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"` // bcrypt hash
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

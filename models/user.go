package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role names understood by the authorization policy.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User represents a noticeboard member. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Username     string     `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Roles        []UserRole `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// UserRole records a single role membership.
type UserRole struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	UserID string `gorm:"size:36;not null;uniqueIndex:idx_user_role" json:"user_id"`
	Name   string `gorm:"size:32;not null;uniqueIndex:idx_user_role" json:"name"`
}

// BeforeCreate assigns the UUID primary key when the caller did not.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// RoleNames flattens the loaded role rows.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

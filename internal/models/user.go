// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username     string     `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Role         UserRole   `json:"role" gorm:"type:varchar(20);not null;default:'member'"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`

	// Relationships
	Listings  []Listing        `json:"listings,omitempty" gorm:"foreignKey:CreatorID"`
	Bids      []Bid            `json:"bids,omitempty" gorm:"foreignKey:BidderID"`
	Comments  []Comment        `json:"comments,omitempty" gorm:"foreignKey:CommenterID"`
	Watchlist []WatchlistEntry `json:"watchlist,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

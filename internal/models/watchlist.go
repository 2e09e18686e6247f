// internal/models/watchlist.go
package models

import "github.com/google/uuid"

// WatchlistEntry links a user to a listing they follow. At most one row
// exists per (user, listing); removal is a hard delete.
type WatchlistEntry struct {
	RecordModel
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_watchlist_user_listing"`
	ListingID uuid.UUID `json:"listing_id" gorm:"type:uuid;not null;uniqueIndex:idx_watchlist_user_listing;index"`

	// Relationships
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
}

func (WatchlistEntry) TableName() string {
	return "watchlist_entries"
}

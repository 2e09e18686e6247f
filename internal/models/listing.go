// internal/models/listing.go
package models

import (
	"github.com/google/uuid"
)

// Listing is an item open for bidding. CurrentPrice starts at StartingPrice
// and only moves up through accepted bids. Once Active is false the row is
// never written again.
type Listing struct {
	BaseModel
	Title         string     `json:"title" gorm:"size:100;not null"`
	Description   string     `json:"description" gorm:"type:text;not null"`
	StartingPrice Money      `json:"starting_price" gorm:"type:decimal(10,2);not null"`
	CurrentPrice  Money      `json:"current_price" gorm:"type:decimal(10,2);not null"`
	ImageURL      string     `json:"image_url,omitempty" gorm:"size:500"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty" gorm:"type:uuid;index"`
	CreatorID     uuid.UUID  `json:"creator_id" gorm:"type:uuid;not null;index"`
	Active        bool       `json:"active" gorm:"not null;default:true;index"`

	// Relationships
	Category *Category        `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Creator  *User            `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Bids     []Bid            `json:"bids,omitempty" gorm:"foreignKey:ListingID"`
	Comments []Comment        `json:"comments,omitempty" gorm:"foreignKey:ListingID"`
	Watchers []WatchlistEntry `json:"-" gorm:"foreignKey:ListingID"`
}

func (l *Listing) Status() ListingStatus {
	if l.Active {
		return ListingStatusActive
	}
	return ListingStatusClosed
}

func (l *Listing) IsCreator(userID uuid.UUID) bool {
	return l.CreatorID == userID
}

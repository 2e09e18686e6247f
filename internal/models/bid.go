// internal/models/bid.go
package models

import (
	"github.com/google/uuid"
)

type Bid struct {
	RecordModel
	ListingID uuid.UUID `json:"listing_id" gorm:"type:uuid;not null;index"`
	BidderID  uuid.UUID `json:"bidder_id" gorm:"type:uuid;not null;index"`
	Amount    Money     `json:"amount" gorm:"type:decimal(10,2);not null"`

	// Relationships
	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
	Bidder  *User    `json:"bidder,omitempty" gorm:"foreignKey:BidderID"`
}

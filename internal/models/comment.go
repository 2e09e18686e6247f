// internal/models/comment.go
package models

import "github.com/google/uuid"

type Comment struct {
	RecordModel
	ListingID   uuid.UUID `json:"listing_id" gorm:"type:uuid;not null;index"`
	CommenterID uuid.UUID `json:"commenter_id" gorm:"type:uuid;not null;index"`
	Content     string    `json:"content" gorm:"type:text;not null"`

	// Relationships
	Listing   *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
	Commenter *User    `json:"commenter,omitempty" gorm:"foreignKey:CommenterID"`
}

// ShortContent truncates the comment for list views.
func (c *Comment) ShortContent(limit int) string {
	runes := []rune(c.Content)
	if len(runes) <= limit {
		return c.Content
	}
	return string(runes[:limit]) + "..."
}

// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/auctionhub-backend/internal/models"
	"github.com/javajoker/auctionhub-backend/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

// UserProfile is the public view of a member and their activity.
type UserProfile struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	MemberSince    string    `json:"member_since"`
	ActiveListings int64     `json:"active_listings"`
	ClosedListings int64     `json:"closed_listings"`
	BidsPlaced     int64     `json:"bids_placed"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetPublicProfile(userID uuid.UUID) (*UserProfile, error) {
	var user models.User
	if err := s.db.Select("id", "username", "created_at").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	profile := &UserProfile{
		ID:          user.ID,
		Username:    user.Username,
		MemberSince: user.CreatedAt.Format("2006-01-02"),
	}

	if err := s.db.Model(&models.Listing{}).Where("creator_id = ? AND active = ?", userID, true).Count(&profile.ActiveListings).Error; err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}
	if err := s.db.Model(&models.Listing{}).Where("creator_id = ? AND active = ?", userID, false).Count(&profile.ClosedListings).Error; err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}
	if err := s.db.Model(&models.Bid{}).Where("bidder_id = ?", userID).Count(&profile.BidsPlaced).Error; err != nil {
		return nil, fmt.Errorf("failed to count bids: %w", err)
	}

	return profile, nil
}

// ListingsByCreator returns everything the user has listed, active or closed.
func (s *UserService) ListingsByCreator(userID uuid.UUID, params utils.PaginationParams) ([]models.Listing, int64, error) {
	query := s.db.Model(&models.Listing{}).Where("creator_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	allowedSortFields := []string{"created_at", "title", "current_price", "active"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var listings []models.Listing
	if err := query.Preload("Category").Find(&listings).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch listings: %w", err)
	}

	return listings, total, nil
}

// BidsByBidder returns the user's bids, newest first, with their listings.
func (s *UserService) BidsByBidder(userID uuid.UUID, params utils.PaginationParams) ([]models.Bid, int64, error) {
	query := s.db.Model(&models.Bid{}).Where("bidder_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bids: %w", err)
	}

	var bids []models.Bid
	if err := utils.ApplyPagination(query.Order("created_at DESC"), params).
		Preload("Listing").
		Find(&bids).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch bids: %w", err)
	}

	return bids, total, nil
}

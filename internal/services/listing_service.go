// internal/services/listing_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/auctionhub-backend/internal/database"
	"github.com/javajoker/auctionhub-backend/internal/models"
	"github.com/javajoker/auctionhub-backend/internal/utils"
)

// ListingService owns the listing lifecycle: creation, bidding, closing,
// comments and watchlists. Price and state changes are conditional updates so
// concurrent requests cannot accept a bid below the stored price or bid on a
// listing that was closed in between.
type ListingService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type CreateListingRequest struct {
	Title         string          `json:"title" validate:"required,max=100"`
	Description   string          `json:"description" validate:"required"`
	StartingPrice decimal.Decimal `json:"starting_price"`
	ImageURL      string          `json:"image_url,omitempty" validate:"omitempty,url,max=500"`
	CategoryID    *uuid.UUID      `json:"category_id,omitempty"`
}

type PlaceBidRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type AddCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// ListingDetail is the listing page as seen by a particular viewer.
type ListingDetail struct {
	Listing    *models.Listing  `json:"listing"`
	Status     string           `json:"status"`
	Comments   []models.Comment `json:"comments"`
	BidCount   int64            `json:"bid_count"`
	HighestBid *models.Bid      `json:"highest_bid,omitempty"`
	IsWatching bool             `json:"is_watching"`
	IsCreator  bool             `json:"is_creator"`
	IsWinner   bool             `json:"is_winner"`
}

func NewListingService(db *gorm.DB, notificationService *NotificationService) *ListingService {
	return &ListingService{
		db:                  db,
		notificationService: notificationService,
	}
}

func (s *ListingService) CreateListing(creatorID uuid.UUID, req *CreateListingRequest) (*models.Listing, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.ImageURL = strings.TrimSpace(req.ImageURL)

	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !validMoney(req.StartingPrice) {
		return nil, ErrInvalidPrice
	}

	if err := requireUser(s.db, creatorID); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		var category models.Category
		if err := s.db.First(&category, "id = ?", *req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	listing := &models.Listing{
		Title:         req.Title,
		Description:   req.Description,
		StartingPrice: models.NewMoney(req.StartingPrice),
		CurrentPrice:  models.NewMoney(req.StartingPrice),
		ImageURL:      req.ImageURL,
		CategoryID:    req.CategoryID,
		CreatorID:     creatorID,
		Active:        true,
	}

	if err := s.db.Create(listing).Error; err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"listing_id":     listing.ID,
		"creator_id":     creatorID,
		"starting_price": listing.StartingPrice.StringFixed(moneyScale),
	}).Info("Listing created")

	return s.GetListing(listing.ID)
}

// requireUser fails with ErrUserNotFound unless userID names a stored user.
func requireUser(db *gorm.DB, userID uuid.UUID) error {
	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *ListingService) GetListing(id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	if err := s.db.Preload("Category").Preload("Creator").First(&listing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &listing, nil
}

// PlaceBid accepts amount iff the listing is active and amount is strictly
// above its current price at the moment of the write.
func (s *ListingService) PlaceBid(listingID, bidderID uuid.UUID, amount decimal.Decimal) (*models.Bid, error) {
	if !validMoney(amount) {
		return nil, ErrInvalidAmount
	}

	var bid *models.Bid
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := requireUser(tx, bidderID); err != nil {
			return err
		}

		result := tx.Model(&models.Listing{}).
			Where("id = ? AND active = ? AND current_price < ?", listingID, true, amount).
			Update("current_price", amount)
		if result.Error != nil {
			return fmt.Errorf("failed to update current price: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			return bidRejection(tx, listingID)
		}

		bid = &models.Bid{
			ListingID: listingID,
			BidderID:  bidderID,
			Amount:    models.NewMoney(amount),
		}
		if err := tx.Create(bid).Error; err != nil {
			return fmt.Errorf("failed to record bid: %w", err)
		}
		return nil
	})

	fields := logrus.Fields{
		"listing_id": listingID,
		"bidder_id":  bidderID,
		"amount":     amount.StringFixed(moneyScale),
	}
	if err != nil {
		logrus.WithFields(fields).WithError(err).Warn("Bid rejected")
		return nil, err
	}

	logrus.WithFields(fields).Info("Bid accepted")
	return bid, nil
}

// bidRejection explains why the conditional price update matched no row.
func bidRejection(tx *gorm.DB, listingID uuid.UUID) error {
	var listing models.Listing
	if err := tx.Select("id", "active", "current_price").First(&listing, "id = ?", listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListingNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if !listing.Active {
		return ErrListingInactive
	}
	return fmt.Errorf("%w: current price is %s", ErrBidTooLow, FormatMoney(listing.CurrentPrice.Decimal))
}

// CloseListing moves an active listing to closed. Only its creator may do so
// and the transition happens at most once.
func (s *ListingService) CloseListing(listingID, requesterID uuid.UUID) (*models.Listing, error) {
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		result := tx.Model(&models.Listing{}).
			Where("id = ? AND creator_id = ? AND active = ?", listingID, requesterID, true).
			Update("active", false)
		if result.Error != nil {
			return fmt.Errorf("failed to close listing: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			return closeRejection(tx, listingID, requesterID)
		}
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"listing_id":   listingID,
			"requester_id": requesterID,
		}).WithError(err).Warn("Close listing rejected")
		return nil, err
	}

	listing, err := s.GetListing(listingID)
	if err != nil {
		return nil, err
	}

	winner, err := s.HighestBid(listingID)
	if err != nil && !errors.Is(err, ErrNoBids) {
		return nil, err
	}

	entry := logrus.WithField("listing_id", listingID)
	if winner != nil {
		entry = entry.WithFields(logrus.Fields{
			"winner_id":     winner.BidderID,
			"winning_price": winner.Amount.StringFixed(moneyScale),
		})
	}
	entry.Info("Listing closed")

	if s.notificationService != nil {
		if err := s.notificationService.SendListingClosedNotifications(listing, winner); err != nil {
			entry.WithError(err).Warn("Failed to send listing closed notifications")
		}
	}

	return listing, nil
}

func closeRejection(tx *gorm.DB, listingID, requesterID uuid.UUID) error {
	var listing models.Listing
	if err := tx.Select("id", "creator_id", "active").First(&listing, "id = ?", listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListingNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if !listing.IsCreator(requesterID) {
		return ErrNotAuthorized
	}
	return ErrListingInactive
}

// HighestBid returns the leading bid: highest amount, earliest on ties.
func (s *ListingService) HighestBid(listingID uuid.UUID) (*models.Bid, error) {
	var bid models.Bid
	err := s.db.Preload("Bidder").
		Where("listing_id = ?", listingID).
		Order("amount DESC").Order("created_at ASC").
		First(&bid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoBids
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &bid, nil
}

// Winner is the highest bid of a closed listing.
func (s *ListingService) Winner(listingID uuid.UUID) (*models.Bid, error) {
	listing, err := s.GetListing(listingID)
	if err != nil {
		return nil, err
	}

	if listing.Active {
		return nil, ErrListingStillActive
	}

	return s.HighestBid(listingID)
}

func (s *ListingService) Bids(listingID uuid.UUID) ([]models.Bid, error) {
	if _, err := s.GetListing(listingID); err != nil {
		return nil, err
	}

	var bids []models.Bid
	if err := s.db.Preload("Bidder").
		Where("listing_id = ?", listingID).
		Order("amount DESC").Order("created_at ASC").
		Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch bids: %w", err)
	}
	return bids, nil
}

func (s *ListingService) AddComment(listingID, commenterID uuid.UUID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}

	if _, err := s.GetListing(listingID); err != nil {
		return nil, err
	}
	if err := requireUser(s.db, commenterID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ListingID:   listingID,
		CommenterID: commenterID,
		Content:     content,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.db.Preload("Commenter").First(comment, "id = ?", comment.ID)
	return comment, nil
}

func (s *ListingService) Comments(listingID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.Preload("Commenter").
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	return comments, nil
}

// ToggleWatchlist flips the user's watch on a listing and reports whether the
// listing is watched afterwards.
func (s *ListingService) ToggleWatchlist(userID, listingID uuid.UUID) (bool, error) {
	if _, err := s.GetListing(listingID); err != nil {
		return false, err
	}
	if err := requireUser(s.db, userID); err != nil {
		return false, err
	}

	watching := false
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND listing_id = ?", userID, listingID).Delete(&models.WatchlistEntry{})
		if result.Error != nil {
			return fmt.Errorf("failed to remove watchlist entry: %w", result.Error)
		}
		if result.RowsAffected > 0 {
			return nil
		}

		entry := &models.WatchlistEntry{UserID: userID, ListingID: listingID}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to add watchlist entry: %w", err)
		}
		watching = true
		return nil
	})
	if err != nil {
		// A concurrent toggle inserted the same pair first.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"listing_id": listingID,
		"watching":   watching,
	}).Debug("Watchlist toggled")
	return watching, nil
}

func (s *ListingService) IsWatching(userID, listingID uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.Model(&models.WatchlistEntry{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check watchlist: %w", err)
	}
	return count > 0, nil
}

// Watchlist returns every listing the user watches, active or closed.
func (s *ListingService) Watchlist(userID uuid.UUID) ([]models.Listing, error) {
	var listings []models.Listing
	if err := s.db.Model(&models.Listing{}).
		Joins("JOIN watchlist_entries ON watchlist_entries.listing_id = listings.id").
		Where("watchlist_entries.user_id = ?", userID).
		Order("watchlist_entries.created_at DESC").
		Preload("Category").
		Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch watchlist: %w", err)
	}
	return listings, nil
}

// ActiveListings is the index page: open listings, newest first by default.
func (s *ListingService) ActiveListings(params utils.PaginationParams) ([]models.Listing, int64, error) {
	query := s.db.Model(&models.Listing{}).Where("active = ?", true)

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	allowedSortFields := []string{"created_at", "title", "current_price"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var listings []models.Listing
	if err := query.Preload("Category").Preload("Creator").Find(&listings).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch listings: %w", err)
	}

	return listings, total, nil
}

// ListingsByCategory returns the category's active listings, newest first.
func (s *ListingService) ListingsByCategory(categoryID uuid.UUID, params utils.PaginationParams) (*models.Category, []models.Listing, int64, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, 0, ErrCategoryNotFound
		}
		return nil, nil, 0, fmt.Errorf("database error: %w", err)
	}

	query := s.db.Model(&models.Listing{}).Where("category_id = ? AND active = ?", categoryID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	var listings []models.Listing
	if err := utils.ApplyPagination(query.Order("created_at DESC"), params).
		Preload("Creator").
		Find(&listings).Error; err != nil {
		return nil, nil, 0, fmt.Errorf("failed to fetch listings: %w", err)
	}

	return &category, listings, total, nil
}

func (s *ListingService) GetListingDetail(listingID uuid.UUID, viewerID *uuid.UUID) (*ListingDetail, error) {
	listing, err := s.GetListing(listingID)
	if err != nil {
		return nil, err
	}

	detail := &ListingDetail{Listing: listing, Status: string(listing.Status())}

	if detail.Comments, err = s.Comments(listingID); err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Bid{}).Where("listing_id = ?", listingID).Count(&detail.BidCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count bids: %w", err)
	}

	highest, err := s.HighestBid(listingID)
	if err != nil && !errors.Is(err, ErrNoBids) {
		return nil, err
	}
	detail.HighestBid = highest

	if viewerID != nil {
		detail.IsCreator = listing.IsCreator(*viewerID)
		if detail.IsWatching, err = s.IsWatching(*viewerID, listingID); err != nil {
			return nil, err
		}
		detail.IsWinner = !listing.Active && highest != nil && highest.BidderID == *viewerID
	}

	return detail, nil
}

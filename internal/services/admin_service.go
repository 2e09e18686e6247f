// internal/services/admin_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/auctionhub-backend/internal/config"
	"github.com/javajoker/auctionhub-backend/internal/models"
	"github.com/javajoker/auctionhub-backend/internal/utils"
)

// Comments are truncated to this many characters in back-office lists.
const adminCommentPreviewLength = 50

// AdminService backs the read-only back-office views.
type AdminService struct {
	db              *gorm.DB
	categoryService *CategoryService
	site            config.AdminConfig
}

type AdminSiteInfo struct {
	SiteHeader string `json:"site_header"`
	SiteTitle  string `json:"site_title"`
	IndexTitle string `json:"index_title"`
}

type AdminDashboardStats struct {
	TotalUsers        int64 `json:"total_users"`
	NewUsersThisMonth int64 `json:"new_users_this_month"`
	TotalCategories   int64 `json:"total_categories"`
	ActiveListings    int64 `json:"active_listings"`
	ClosedListings    int64 `json:"closed_listings"`
	TotalBids         int64 `json:"total_bids"`
	TotalComments     int64 `json:"total_comments"`
	WatchlistEntries  int64 `json:"watchlist_entries"`
}

type AdminCategoryRow struct {
	CategorySummary
	Badge string `json:"badge"`
}

type AdminListingFilter struct {
	utils.PaginationParams
	Active     *bool      `json:"active,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
}

type AdminListingRow struct {
	models.Listing
	Status   models.ListingStatus `json:"status"`
	BidCount int64                `json:"bid_count"`
	BidLabel string               `json:"bid_label"`
}

type AdminBidFilter struct {
	utils.PaginationParams
	ListingID *uuid.UUID `json:"listing_id,omitempty"`
}

type AdminBidRow struct {
	models.Bid
	AmountDisplay string `json:"amount_display"`
}

type AdminCommentRow struct {
	models.Comment
	ShortContent string `json:"short_content"`
}

type AdminWatchlistFilter struct {
	utils.PaginationParams
	Active *bool `json:"active,omitempty"`
}

type AdminWatchlistRow struct {
	models.WatchlistEntry
	ListingStatus models.ListingStatus `json:"listing_status"`
}

func NewAdminService(db *gorm.DB, categoryService *CategoryService, site config.AdminConfig) *AdminService {
	return &AdminService{
		db:              db,
		categoryService: categoryService,
		site:            site,
	}
}

func (s *AdminService) SiteInfo() AdminSiteInfo {
	return AdminSiteInfo{
		SiteHeader: s.site.SiteHeader,
		SiteTitle:  s.site.SiteTitle,
		IndexTitle: s.site.IndexTitle,
	}
}

// Dashboard Statistics
func (s *AdminService) GetDashboardStats() (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{s.db.Model(&models.User{}), &stats.TotalUsers},
		{s.db.Model(&models.User{}).Where("created_at >= ?", monthStart), &stats.NewUsersThisMonth},
		{s.db.Model(&models.Category{}), &stats.TotalCategories},
		{s.db.Model(&models.Listing{}).Where("active = ?", true), &stats.ActiveListings},
		{s.db.Model(&models.Listing{}).Where("active = ?", false), &stats.ClosedListings},
		{s.db.Model(&models.Bid{}), &stats.TotalBids},
		{s.db.Model(&models.Comment{}), &stats.TotalComments},
		{s.db.Model(&models.WatchlistEntry{}), &stats.WatchlistEntries},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
		}
	}

	return stats, nil
}

// GetCategoryReport lists categories with an "N active" badge.
func (s *AdminService) GetCategoryReport() ([]AdminCategoryRow, error) {
	summaries, err := s.categoryService.ListCategories()
	if err != nil {
		return nil, err
	}

	rows := make([]AdminCategoryRow, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, AdminCategoryRow{
			CategorySummary: summary,
			Badge:           fmt.Sprintf("%d active", summary.ActiveCount),
		})
	}
	return rows, nil
}

func (s *AdminService) GetListings(filter AdminListingFilter) ([]AdminListingRow, int64, error) {
	query := s.db.Model(&models.Listing{})

	// Apply filters
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		query = query.Where("title LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	allowedSortFields := []string{"created_at", "title", "current_price", "active"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var listings []models.Listing
	if err := query.Preload("Category").Preload("Creator").Find(&listings).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch listings: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(listings))
	for _, listing := range listings {
		ids = append(ids, listing.ID)
	}
	bidCounts, err := s.BidCountsByListing(ids)
	if err != nil {
		return nil, 0, err
	}

	rows := make([]AdminListingRow, 0, len(listings))
	for _, listing := range listings {
		count := bidCounts[listing.ID]
		rows = append(rows, AdminListingRow{
			Listing:  listing,
			Status:   listing.Status(),
			BidCount: count,
			BidLabel: bidLabel(count),
		})
	}

	return rows, total, nil
}

// BidCountsByListing returns the number of bids per listing ID. Listings
// without bids are absent from the map.
func (s *AdminService) BidCountsByListing(ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		ListingID uuid.UUID
		Count     int64
	}
	if err := s.db.Model(&models.Bid{}).
		Select("listing_id, COUNT(*) AS count").
		Where("listing_id IN ?", ids).
		Group("listing_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count bids: %w", err)
	}

	for _, row := range rows {
		counts[row.ListingID] = row.Count
	}
	return counts, nil
}

func (s *AdminService) GetBids(filter AdminBidFilter) ([]AdminBidRow, int64, error) {
	query := s.db.Model(&models.Bid{})
	if filter.ListingID != nil {
		query = query.Where("listing_id = ?", *filter.ListingID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bids: %w", err)
	}

	var bids []models.Bid
	if err := utils.ApplyPagination(query.Order("created_at DESC"), filter.PaginationParams).
		Preload("Listing").Preload("Bidder").
		Find(&bids).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch bids: %w", err)
	}

	rows := make([]AdminBidRow, 0, len(bids))
	for _, bid := range bids {
		rows = append(rows, AdminBidRow{Bid: bid, AmountDisplay: FormatMoney(bid.Amount.Decimal)})
	}
	return rows, total, nil
}

func (s *AdminService) GetComments(params utils.PaginationParams) ([]AdminCommentRow, int64, error) {
	query := s.db.Model(&models.Comment{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	var comments []models.Comment
	if err := utils.ApplyPagination(query.Order("created_at DESC"), params).
		Preload("Listing").Preload("Commenter").
		Find(&comments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch comments: %w", err)
	}

	rows := make([]AdminCommentRow, 0, len(comments))
	for i := range comments {
		rows = append(rows, AdminCommentRow{
			Comment:      comments[i],
			ShortContent: comments[i].ShortContent(adminCommentPreviewLength),
		})
	}
	return rows, total, nil
}

func (s *AdminService) GetWatchlist(filter AdminWatchlistFilter) ([]AdminWatchlistRow, int64, error) {
	query := s.db.Model(&models.WatchlistEntry{})
	if filter.Active != nil {
		query = query.Joins("JOIN listings ON listings.id = watchlist_entries.listing_id").
			Where("listings.active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count watchlist entries: %w", err)
	}

	var entries []models.WatchlistEntry
	if err := utils.ApplyPagination(query.Order("watchlist_entries.created_at DESC"), filter.PaginationParams).
		Preload("Listing").Preload("User").
		Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch watchlist entries: %w", err)
	}

	rows := make([]AdminWatchlistRow, 0, len(entries))
	for _, entry := range entries {
		row := AdminWatchlistRow{WatchlistEntry: entry}
		if entry.Listing != nil {
			row.ListingStatus = entry.Listing.Status()
		}
		rows = append(rows, row)
	}
	return rows, total, nil
}

func bidLabel(count int64) string {
	if count == 1 {
		return "1 bid"
	}
	return fmt.Sprintf("%d bids", count)
}

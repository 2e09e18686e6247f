// internal/handlers/admin.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/auctionhub-backend/internal/i18n"
	"github.com/javajoker/auctionhub-backend/internal/services"
	"github.com/javajoker/auctionhub-backend/internal/utils"
)

type AdminHandler struct {
	adminService    *services.AdminService
	categoryService *services.CategoryService
}

func NewAdminHandler(adminService *services.AdminService, categoryService *services.CategoryService) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		categoryService: categoryService,
	}
}

// queryBool parses an optional boolean filter such as ?active=true.
func queryBool(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

func queryUUID(c *gin.Context, name string) *uuid.UUID {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// GET /admin/site
func (h *AdminHandler) GetSiteInfo(c *gin.Context) {
	utils.SuccessResponse(c, h.adminService.SiteInfo())
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats": stats,
	})
}

// GET /admin/categories
func (h *AdminHandler) GetCategories(c *gin.Context) {
	rows, err := h.adminService.GetCategoryReport()
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"categories": rows,
	})
}

// POST /admin/categories
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.CreateCategory(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCategoryCreated),
		"category": category,
	})
}

// GET /admin/listings
func (h *AdminHandler) GetListings(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := services.AdminListingFilter{
		PaginationParams: params,
		Active:           queryBool(c, "active"),
		CategoryID:       queryUUID(c, "category_id"),
	}

	rows, total, err := h.adminService.GetListings(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(rows, total, params))
}

// GET /admin/bids
func (h *AdminHandler) GetBids(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := services.AdminBidFilter{
		PaginationParams: params,
		ListingID:        queryUUID(c, "listing_id"),
	}

	rows, total, err := h.adminService.GetBids(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(rows, total, params))
}

// GET /admin/comments
func (h *AdminHandler) GetComments(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	rows, total, err := h.adminService.GetComments(params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(rows, total, params))
}

// GET /admin/watchlist
func (h *AdminHandler) GetWatchlist(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := services.AdminWatchlistFilter{
		PaginationParams: params,
		Active:           queryBool(c, "active"),
	}

	rows, total, err := h.adminService.GetWatchlist(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(rows, total, params))
}

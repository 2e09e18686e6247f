// internal/handlers/category.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/auctionhub-backend/internal/services"
	"github.com/javajoker/auctionhub-backend/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
	listingService  *services.ListingService
}

func NewCategoryHandler(categoryService *services.CategoryService, listingService *services.ListingService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		listingService:  listingService,
	}
}

// GET /categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"categories": categories,
	})
}

// GET /categories/:id/listings
func (h *CategoryHandler) GetCategoryListings(c *gin.Context) {
	categoryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	category, listings, total, err := h.listingService.ListingsByCategory(categoryID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	result := utils.CreatePaginationResult(listings, total, params)
	utils.SetPaginationHeaders(c, result)
	utils.SuccessResponseWithMeta(c, gin.H{
		"category": category,
		"listings": listings,
	}, gin.H{
		"pagination": gin.H{
			"page":        result.Page,
			"limit":       result.Limit,
			"total":       result.Total,
			"total_pages": result.TotalPages,
		},
	})
}

// internal/handlers/listing.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/auctionhub-backend/internal/i18n"
	"github.com/javajoker/auctionhub-backend/internal/services"
	"github.com/javajoker/auctionhub-backend/internal/utils"
)

type ListingHandler struct {
	listingService *services.ListingService
	storageService *services.StorageService
}

func NewListingHandler(listingService *services.ListingService, storageService *services.StorageService) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		storageService: storageService,
	}
}

// GET /listings
func (h *ListingHandler) GetActiveListings(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	listings, total, err := h.listingService.ActiveListings(params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(listings, total, params))
}

// POST /listings
func (h *ListingHandler) CreateListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateListingRequest
	if !bindJSON(c, &req) {
		return
	}

	listing, err := h.listingService.CreateListing(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListingCreated),
		"listing": listing,
	})
}

// POST /listings/upload-image
func (h *ListingHandler) UploadImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "image"), nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadListingImage(file, header)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"file":    result,
	})
}

// GET /listings/:id
func (h *ListingHandler) GetListing(c *gin.Context) {
	listingID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	detail, err := h.listingService.GetListingDetail(listingID, optionalUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, detail)
}

// GET /listings/:id/bids
func (h *ListingHandler) GetBids(c *gin.Context) {
	listingID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	bids, err := h.listingService.Bids(listingID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"bids":  bids,
		"count": len(bids),
	})
}

// POST /listings/:id/bids
func (h *ListingHandler) PlaceBid(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	listingID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.PlaceBidRequest
	if !bindJSON(c, &req) {
		return
	}

	bid, err := h.listingService.PlaceBid(listingID, userID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":       i18n.T(lang, i18n.KeyBidPlaced),
		"bid":           bid,
		"current_price": bid.Amount,
	})
}

// POST /listings/:id/close
func (h *ListingHandler) CloseListing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	listingID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	listing, err := h.listingService.CloseListing(listingID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyListingClosed),
		"listing": listing,
	})
}

// GET /listings/:id/winner
func (h *ListingHandler) GetWinner(c *gin.Context) {
	listingID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	winner, err := h.listingService.Winner(listingID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"bid":    winner,
		"winner": winner.Bidder,
		"amount": winner.Amount,
	})
}

// POST /listings/:id/comments
func (h *ListingHandler) AddComment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	listingID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.AddCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.listingService.AddComment(listingID, userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCommentAdded),
		"comment": comment,
	})
}

// POST /listings/:id/watch
func (h *ListingHandler) ToggleWatchlist(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	listingID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	watching, err := h.listingService.ToggleWatchlist(userID, listingID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := i18n.T(lang, i18n.KeyWatchlistRemoved)
	if watching {
		message = i18n.T(lang, i18n.KeyWatchlistAdded)
	}

	utils.SuccessResponse(c, gin.H{
		"message":  message,
		"watching": watching,
	})
}

// GET /watchlist
func (h *ListingHandler) GetWatchlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listings, err := h.listingService.Watchlist(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"listings": listings,
		"count":    len(listings),
	})
}

// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthPasswordMismatch   = "auth.password_mismatch"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAccessDenied           = "auth.access_denied"

	// Users
	KeyUserNotFound = "user.not_found"

	// Listings
	KeyListingCreated     = "listing.created"
	KeyListingClosed      = "listing.closed"
	KeyListingNotFound    = "listing.not_found"
	KeyListingInactive    = "listing.inactive"
	KeyListingStillActive = "listing.still_active"
	KeyListingNotCreator  = "listing.not_creator"
	KeyInvalidPrice       = "listing.invalid_price"

	// Bids
	KeyBidPlaced        = "bid.placed"
	KeyBidTooLow        = "bid.too_low"
	KeyBidInvalidAmount = "bid.invalid_amount"
	KeyBidNotFound      = "bid.not_found"

	// Comments
	KeyCommentAdded = "comment.added"
	KeyCommentEmpty = "comment.empty"

	// Watchlist
	KeyWatchlistAdded   = "watchlist.added"
	KeyWatchlistRemoved = "watchlist.removed"

	// Categories
	KeyCategoryCreated  = "category.created"
	KeyCategoryNotFound = "category.not_found"
	KeyCategoryExists   = "category.exists"

	// Payments
	KeyPaymentUnavailable = "payment.unavailable"
	KeyPaymentNotWinner   = "payment.not_winner"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"

	// Generic
	KeyRateLimited   = "rate.limited"
	KeyInternalError = "error.internal"
)

// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/auctionhub-backend/internal/i18n"
	"github.com/javajoker/auctionhub-backend/internal/services"
	"github.com/javajoker/auctionhub-backend/internal/utils"
)

type errorMapping struct {
	err  error
	code string
	key  string
}

// Specific error codes, checked in order before falling back to the kind.
var errorMappings = []errorMapping{
	{services.ErrBidTooLow, "BID_TOO_LOW", i18n.KeyBidTooLow},
	{services.ErrListingInactive, "LISTING_INACTIVE", i18n.KeyListingInactive},
	{services.ErrListingStillActive, "LISTING_STILL_ACTIVE", i18n.KeyListingStillActive},
	{services.ErrNoBids, "NO_BIDS", i18n.KeyBidNotFound},
	{services.ErrListingNotFound, "LISTING_NOT_FOUND", i18n.KeyListingNotFound},
	{services.ErrCategoryNotFound, "CATEGORY_NOT_FOUND", i18n.KeyCategoryNotFound},
	{services.ErrUserNotFound, "USER_NOT_FOUND", i18n.KeyUserNotFound},
	{services.ErrInvalidAmount, "INVALID_AMOUNT", i18n.KeyBidInvalidAmount},
	{services.ErrInvalidPrice, "INVALID_PRICE", i18n.KeyInvalidPrice},
	{services.ErrEmptyComment, "EMPTY_COMMENT", i18n.KeyCommentEmpty},
	{services.ErrPasswordMismatch, "PASSWORD_MISMATCH", i18n.KeyAuthPasswordMismatch},
	{services.ErrFileTooLarge, "INVALID_FILE", i18n.KeyFileUploadFailed},
	{services.ErrInvalidFileType, "INVALID_FILE", i18n.KeyFileUploadFailed},
	{services.ErrInvalidInput, "VALIDATION_ERROR", i18n.KeyValidationInvalid},
	{services.ErrInvalidCredentials, "INVALID_CREDENTIALS", i18n.KeyAuthInvalidCredentials},
	{services.ErrInvalidToken, "INVALID_TOKEN", i18n.KeyAuthTokenExpired},
	{services.ErrNotAuthorized, "NOT_AUTHORIZED", i18n.KeyAccessDenied},
	{services.ErrUserExists, "USER_EXISTS", i18n.KeyAuthUserExists},
	{services.ErrCategoryExists, "CATEGORY_EXISTS", i18n.KeyCategoryExists},
	{services.ErrPaymentsDisabled, "PAYMENTS_UNAVAILABLE", i18n.KeyPaymentUnavailable},
}

var kindStatus = map[services.ErrorKind]int{
	services.KindValidation:     http.StatusBadRequest,
	services.KindAuthentication: http.StatusUnauthorized,
	services.KindAuthorization:  http.StatusForbidden,
	services.KindNotFound:       http.StatusNotFound,
	services.KindState:          http.StatusConflict,
	services.KindUnavailable:    http.StatusServiceUnavailable,
}

// respondError writes the error envelope for a service error.
func respondError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	status, ok := kindStatus[services.KindOf(err)]
	if !ok {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("Request failed")
		c.Error(err)
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyInternalError))
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			message := i18n.T(lang, m.key)
			if m.key == i18n.KeyValidationInvalid {
				message = i18n.T(lang, m.key, "input")
			}
			utils.ErrorResponse(c, status, m.code, message, err.Error())
			return
		}
	}

	utils.ErrorResponse(c, status, "ERROR", err.Error(), nil)
}

// pathUUID parses a UUID path parameter, answering 400 when malformed.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, name), nil)
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID returns the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	return userID, true
}

// optionalUserID is the viewer on routes that allow anonymous access.
func optionalUserID(c *gin.Context) *uuid.UUID {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		return nil
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil
	}
	return &userID
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

// internal/services/errors.go
package services

import "errors"

// Validation errors
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidPrice     = errors.New("starting price must be a positive number")
	ErrInvalidAmount    = errors.New("bid amount must be a positive number with at most two decimals")
	ErrEmptyComment     = errors.New("comment content is empty")
	ErrPasswordMismatch = errors.New("passwords must match")
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidFileType  = errors.New("invalid file type")
)

// Authentication and authorization errors
var (
	ErrInvalidCredentials = errors.New("invalid username and/or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotAuthorized      = errors.New("not authorized")
)

// Lookup errors
var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrNoBids           = errors.New("no bids placed on listing")
)

// State errors
var (
	ErrBidTooLow          = errors.New("bid too low")
	ErrListingInactive    = errors.New("listing inactive")
	ErrListingStillActive = errors.New("listing still active")
	ErrUserExists         = errors.New("username or email already taken")
	ErrCategoryExists     = errors.New("category already exists")
)

// Service unavailable
var ErrPaymentsDisabled = errors.New("payments are not configured")

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindState
	KindUnavailable
)

var errorKinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrInvalidInput, KindValidation},
	{ErrInvalidPrice, KindValidation},
	{ErrInvalidAmount, KindValidation},
	{ErrEmptyComment, KindValidation},
	{ErrPasswordMismatch, KindValidation},
	{ErrFileTooLarge, KindValidation},
	{ErrInvalidFileType, KindValidation},
	{ErrInvalidCredentials, KindAuthentication},
	{ErrInvalidToken, KindAuthentication},
	{ErrNotAuthorized, KindAuthorization},
	{ErrListingNotFound, KindNotFound},
	{ErrCategoryNotFound, KindNotFound},
	{ErrUserNotFound, KindNotFound},
	{ErrNoBids, KindNotFound},
	{ErrBidTooLow, KindState},
	{ErrListingInactive, KindState},
	{ErrListingStillActive, KindState},
	{ErrUserExists, KindState},
	{ErrCategoryExists, KindState},
	{ErrPaymentsDisabled, KindUnavailable},
}

// KindOf classifies err for the request boundary. Unknown errors are internal.
func KindOf(err error) ErrorKind {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

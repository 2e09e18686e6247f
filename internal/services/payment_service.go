// internal/services/payment_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"

	"github.com/javajoker/auctionhub-backend/internal/config"
	"github.com/javajoker/auctionhub-backend/internal/models"
)

// PaymentIntents is the slice of the Stripe API used for checkout.
// *paymentintent.Client satisfies it.
type PaymentIntents interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type PaymentService struct {
	listingService *ListingService
	intents        PaymentIntents
	currency       string
}

type CheckoutResponse struct {
	ClientSecret string       `json:"client_secret"`
	PaymentID    string       `json:"payment_id"`
	Status       string       `json:"status"`
	Amount       models.Money `json:"amount"`
	Currency     string       `json:"currency"`
}

// NewPaymentService leaves payments disabled when no Stripe key is set.
func NewPaymentService(listingService *ListingService, cfg *config.Config) *PaymentService {
	var intents PaymentIntents
	if cfg.Payment.StripeSecretKey != "" {
		intents = client.New(cfg.Payment.StripeSecretKey, nil).PaymentIntents
	}
	return NewPaymentServiceWithIntents(listingService, intents, cfg)
}

func NewPaymentServiceWithIntents(listingService *ListingService, intents PaymentIntents, cfg *config.Config) *PaymentService {
	currency := cfg.Payment.Currency
	if currency == "" {
		currency = "usd"
	}
	return &PaymentService{
		listingService: listingService,
		intents:        intents,
		currency:       currency,
	}
}

func (s *PaymentService) Enabled() bool {
	return s.intents != nil
}

// CreateWinnerCheckout opens a payment intent for the winning bid of a closed
// listing. Only the winner may check out. Repeated calls for the same listing
// reuse the same Stripe idempotency key.
func (s *PaymentService) CreateWinnerCheckout(listingID, userID uuid.UUID) (*CheckoutResponse, error) {
	if !s.Enabled() {
		return nil, ErrPaymentsDisabled
	}

	winner, err := s.listingService.Winner(listingID)
	if err != nil {
		return nil, err
	}

	if winner.BidderID != userID {
		return nil, ErrNotAuthorized
	}

	amountInCents := winner.Amount.Shift(2).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String(s.currency),
	}
	params.AddMetadata("listing_id", listingID.String())
	params.AddMetadata("bid_id", winner.ID.String())
	params.AddMetadata("user_id", userID.String())
	params.SetIdempotencyKey("checkout-" + winner.ID.String())

	pi, err := s.intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"listing_id": listingID,
		"user_id":    userID,
		"payment_id": pi.ID,
		"amount":     winner.Amount.StringFixed(moneyScale),
	}).Info("Winner checkout created")

	return &CheckoutResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
		Amount:       winner.Amount,
		Currency:     s.currency,
	}, nil
}

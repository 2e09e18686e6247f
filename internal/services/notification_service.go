// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/javajoker/auctionhub-backend/internal/config"
	"github.com/javajoker/auctionhub-backend/internal/models"
)

// Mailer delivers composed messages. *gomail.Dialer satisfies it.
type Mailer interface {
	DialAndSend(m ...*gomail.Message) error
}

type NotificationService struct {
	mailer   Mailer
	from     string
	fromName string
	baseURL  string
}

type EmailTemplate struct {
	Subject string
	Body    string
}

// NewNotificationService dials SMTP only when a host is configured. Without
// one, messages are logged instead of sent.
func NewNotificationService(cfg *config.Config) *NotificationService {
	var mailer Mailer
	if cfg.Email.SMTPHost != "" {
		mailer = gomail.NewDialer(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPUsername, cfg.Email.SMTPPassword)
	}
	return NewNotificationServiceWithMailer(mailer, cfg)
}

func NewNotificationServiceWithMailer(mailer Mailer, cfg *config.Config) *NotificationService {
	return &NotificationService{
		mailer:   mailer,
		from:     cfg.Email.FromEmail,
		fromName: cfg.Email.FromName,
		baseURL:  cfg.Frontend.BaseURL,
	}
}

func (s *NotificationService) SendWelcomeEmail(user *models.User) error {
	data := map[string]interface{}{
		"Username":   user.Username,
		"ListingURL": s.baseURL + "/listings",
	}
	return s.send(user.Email, "welcome", data)
}

// SendListingClosedNotifications tells the creator how the auction ended and,
// when there is one, tells the winner what they won. winner may be nil.
func (s *NotificationService) SendListingClosedNotifications(listing *models.Listing, winner *models.Bid) error {
	listingURL := fmt.Sprintf("%s/listings/%s", s.baseURL, listing.ID)

	if listing.Creator != nil {
		data := map[string]interface{}{
			"CreatorName":  listing.Creator.Username,
			"ListingTitle": listing.Title,
			"ListingURL":   listingURL,
			"HasWinner":    winner != nil,
		}
		if winner != nil {
			data["WinningBid"] = FormatMoney(winner.Amount.Decimal)
			if winner.Bidder != nil {
				data["WinnerName"] = winner.Bidder.Username
			}
		}
		if err := s.send(listing.Creator.Email, "listing_closed", data); err != nil {
			return err
		}
	}

	if winner != nil && winner.Bidder != nil {
		data := map[string]interface{}{
			"WinnerName":   winner.Bidder.Username,
			"ListingTitle": listing.Title,
			"WinningBid":   FormatMoney(winner.Amount.Decimal),
			"ListingURL":   listingURL,
		}
		if err := s.send(winner.Bidder.Email, "listing_won", data); err != nil {
			return err
		}
	}

	return nil
}

// Helper methods
func (s *NotificationService) send(to, templateType string, data map[string]interface{}) error {
	tmpl := s.getEmailTemplate(templateType)

	subject, err := s.renderTemplate(tmpl.Subject, data)
	if err != nil {
		return fmt.Errorf("failed to render email subject: %w", err)
	}
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(to, subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.mailer == nil {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("Email not sent, SMTP is not configured")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.from, s.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := s.mailer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"welcome": {
			Subject: "Welcome to AuctionHub",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Welcome {{.Username}}!</h2>
	<p>Your account is ready. Browse what is up for auction:</p>
	<a href="{{.ListingURL}}">Active Listings</a>
	<p>Best regards,<br>AuctionHub Team</p>
</body>
</html>`,
		},
		"listing_closed": {
			Subject: "Your auction has closed - {{.ListingTitle}}",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Auction Closed</h2>
	<p>Hello {{.CreatorName}},</p>
	{{if .HasWinner}}
	<p>"{{.ListingTitle}}" sold to {{.WinnerName}} for {{.WinningBid}}.</p>
	{{else}}
	<p>"{{.ListingTitle}}" closed without any bids.</p>
	{{end}}
	<a href="{{.ListingURL}}">View Listing</a>
	<p>Best regards,<br>AuctionHub Team</p>
</body>
</html>`,
		},
		"listing_won": {
			Subject: "You won {{.ListingTitle}}",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Congratulations {{.WinnerName}}!</h2>
	<p>You won "{{.ListingTitle}}" with a bid of {{.WinningBid}}.</p>
	<a href="{{.ListingURL}}">Complete your purchase</a>
	<p>Best regards,<br>AuctionHub Team</p>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	// Default template
	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}

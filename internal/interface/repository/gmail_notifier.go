package repository

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/yokuflik/price-tracker/internal/domain/repository"
	"github.com/yokuflik/price-tracker/pkg/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// UserEmailLookup resolves a user id to the address alerts go to.
type UserEmailLookup interface {
	GetUserEmail(ctx context.Context, userID int64) (string, error)
}

// GmailNotifier delivers price alerts through the Gmail API.
type GmailNotifier struct {
	service *gmail.Service
	users   UserEmailLookup
	from    string
	logger  logger.Logger
}

// NewGmailNotifier creates a Gmail-backed notifier
func NewGmailNotifier(ctx context.Context, tokenSource oauth2.TokenSource, users UserEmailLookup, from string, log logger.Logger) (repository.Notifier, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}

	return &GmailNotifier{
		service: service,
		users:   users,
		from:    from,
		logger:  log,
	}, nil
}

// NotifyUser sends one alert email to the flight's owner.
func (n *GmailNotifier) NotifyUser(ctx context.Context, userID int64, subject, body string) error {
	recipient, err := n.users.GetUserEmail(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve recipient: %w", err)
	}

	raw := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		n.from, recipient, subject, body)
	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	if _, err := n.service.Users.Messages.Send("me", message).Context(ctx).Do(); err != nil {
		return fmt.Errorf("send alert to %s: %w", recipient, err)
	}

	n.logger.Info("Price alert sent", "userId", userID, "recipient", recipient, "subject", subject)
	return nil
}

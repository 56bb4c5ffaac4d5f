package service

import (
	"context"
	"fmt"
	"strings"

	"dinoverse/internal/models"
	"dinoverse/internal/notification"
	"dinoverse/internal/repository"
)

type AsyncNotifier interface {
	NotifyAsync(msg notification.Message)
}

type ContactService struct {
	Repo     repository.Repository
	Notifier AsyncNotifier
}

// Submit stores the message and fires the alert without waiting on it.
func (s *ContactService) Submit(ctx context.Context, item *models.Contact) error {
	item.Status = models.ContactStatusNew
	if err := s.Repo.CreateContact(ctx, item); err != nil {
		return err
	}
	if s.Notifier != nil {
		s.Notifier.NotifyAsync(ContactMessage(item))
	}
	return nil
}

func ContactMessage(c *models.Contact) notification.Message {
	subject := "New contact from " + c.Name
	if c.Subject != "" {
		subject += ": " + c.Subject
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\n", c.Name, c.Email)
	if c.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	}
	if c.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", c.Company)
	}
	b.WriteString("\n")
	b.WriteString(c.Message)
	return notification.Message{Event: "contact.created", Subject: subject, Text: b.String()}
}

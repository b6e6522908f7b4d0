// Package services provides external service integrations and technical concerns like notifications
package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	businessflow "github.com/attestix/attestix/business_flow"
	"github.com/attestix/attestix/repository"
)

// NotificationService handles sending notifications via email
type NotificationService interface {
	SendEmail(email, subject, message string) error
	SendInterviewInvitation(ctx context.Context, contactID uint, interviewName, accessCode string) error
}

// NotificationServiceImpl implements NotificationService
type NotificationServiceImpl struct {
	emailProvider EmailProvider
	contactRepo   repository.ContactRepository
}

// EmailProvider interface for email sending
type EmailProvider interface {
	SendEmail(email, subject, message string) error
}

// NewNotificationService creates a new notification service
func NewNotificationService(emailProvider EmailProvider, contactRepo repository.ContactRepository) NotificationService {
	return &NotificationServiceImpl{
		emailProvider: emailProvider,
		contactRepo:   contactRepo,
	}
}

// SendEmail sends an email to the specified email address
func (s *NotificationServiceImpl) SendEmail(email, subject, message string) error {
	if s.emailProvider == nil {
		return fmt.Errorf("email provider not configured")
	}

	// Basic email validation
	if len(email) == 0 || !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address: %s", email)
	}

	return s.emailProvider.SendEmail(email, subject, message)
}

// SendInterviewInvitation looks up the contact and emails them the access
// code for their interview
func (s *NotificationServiceImpl) SendInterviewInvitation(ctx context.Context, contactID uint, interviewName, accessCode string) error {
	if s.contactRepo == nil {
		return fmt.Errorf("contact repository not configured")
	}

	contact, err := s.contactRepo.ByID(ctx, contactID)
	if err != nil {
		return fmt.Errorf("failed to look up contact %d: %w", contactID, err)
	}
	if contact == nil {
		return fmt.Errorf("contact %d: %w", contactID, businessflow.ErrContactNotFound)
	}
	if contact.Email == "" {
		return fmt.Errorf("contact %d has no email address", contactID)
	}

	subject := fmt.Sprintf("You have been invited to: %s", interviewName)
	message := fmt.Sprintf(
		"Hello %s,\n\nYou have been invited to participate in %s.\nYour access code is: %s\n\nThis code is personal, please do not share it.",
		contact.FullName(), interviewName, accessCode,
	)

	return s.SendEmail(contact.Email, subject, message)
}

type MockEmailProvider struct{}

func NewMockEmailProvider() EmailProvider {
	return &MockEmailProvider{}
}

func (p *MockEmailProvider) SendEmail(email, subject, message string) error {
	log.Printf("Email sent to %s [%s]: %s", email, subject, message)
	return nil
}

type SMTPEmailProvider struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
}

func NewSMTPEmailProvider(host string, port int, username, password, fromEmail string) EmailProvider {
	return &SMTPEmailProvider{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromEmail: fromEmail,
	}
}

func (p *SMTPEmailProvider) SendEmail(email, subject, message string) error {
	// Implementation would use net/smtp package or a library like gomail

	log.Printf("Sending email via SMTP to %s [%s]: %s", email, subject, message)

	return nil
}

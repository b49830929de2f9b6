// File: internal/contact/service.go
package contact

import (
	"context"
	"fmt"
	"strings"

	"propmatics_backend/internal/common"
	"propmatics_backend/internal/config"
	"propmatics_backend/internal/mailer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for contact form business logic.
type Service interface {
	CreateMessage(ctx context.Context, req CreateMessageRequest) (*Message, error)
	ListMessages(ctx context.Context, query common.PaginationQuery) ([]Message, *common.Pagination, error)
	MarkMessageRead(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo         Repository
	mail         mailer.Mailer
	operatorAddr string
	logger       *zap.Logger
}

// NewService creates a new contact service.
func NewService(repo Repository, mail mailer.Mailer, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		repo:         repo,
		mail:         mail,
		operatorAddr: cfg.MailOperator,
		logger:       logger,
	}
}

// CreateMessage stores a contact form submission and notifies the site
// operator by email. The email is best-effort; a mail failure never
// fails the submission.
func (s *service) CreateMessage(ctx context.Context, req CreateMessageRequest) (*Message, error) {
	message := &Message{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Subject:      strings.TrimSpace(req.Subject),
		Body:         strings.TrimSpace(req.Message),
		PropertySlug: req.PropertySlug,
	}
	if err := s.repo.Create(ctx, message); err != nil {
		s.logger.Error("Failed to store contact message", zap.Error(err), zap.String("email", req.Email))
		return nil, common.ErrInternalServer.WithDetails("Could not submit your message.")
	}
	s.logger.Info("Contact message received",
		zap.String("id", message.ID.String()), zap.String("email", message.Email))

	if s.operatorAddr != "" {
		subject := "New enquiry from " + message.Name
		if message.PropertySlug != "" {
			subject = fmt.Sprintf("New enquiry about %s from %s", message.PropertySlug, message.Name)
		}
		if message.Subject != "" {
			subject = message.Subject
		}
		body := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s",
			message.Name, message.Email, message.Phone, message.Body)
		if err := s.mail.Send([]string{s.operatorAddr}, subject, body); err != nil {
			s.logger.Warn("Failed to send enquiry notification email", zap.Error(err))
		}
	}
	return message, nil
}

func (s *service) ListMessages(ctx context.Context, query common.PaginationQuery) ([]Message, *common.Pagination, error) {
	messages, pagination, err := s.repo.FindAll(ctx, query)
	if err != nil {
		s.logger.Error("Failed to list contact messages", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Could not retrieve contact messages.")
	}
	return messages, pagination, nil
}

func (s *service) MarkMessageRead(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Contact message marked read", zap.String("id", id.String()))
	return nil
}

package contact

import (
	"context"
	"errors"
	"testing"

	"propmatics_backend/internal/common"
	"propmatics_backend/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockContactRepository is a mock type for contact.Repository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, message *Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockContactRepository) FindAll(ctx context.Context, query common.PaginationQuery) ([]Message, *common.Pagination, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]Message), args.Get(1).(*common.Pagination), args.Error(2)
}

func (m *MockContactRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMailer is a mock type for mailer.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to []string, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func TestCreateMessageNotifiesOperator(t *testing.T) {
	repo := new(MockContactRepository)
	mail := new(MockMailer)
	cfg := &config.Config{MailOperator: "sales@example.com"}
	svc := NewService(repo, mail, cfg, zap.NewNop())

	repo.On("Create", mock.Anything, mock.AnythingOfType("*contact.Message")).Return(nil)
	mail.On("Send", []string{"sales@example.com"}, mock.Anything, mock.Anything).Return(nil)

	message, err := svc.CreateMessage(context.Background(), CreateMessageRequest{
		Name:         "Ravi",
		Email:        "ravi@example.com",
		Message:      "Is this property still available?",
		PropertySlug: "lakeview-towers",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ravi", message.Name)
	assert.Equal(t, "lakeview-towers", message.PropertySlug)
	mail.AssertCalled(t, "Send", []string{"sales@example.com"},
		"New enquiry about lakeview-towers from Ravi", mock.Anything)
}

func TestCreateMessageMailFailureStillSucceeds(t *testing.T) {
	repo := new(MockContactRepository)
	mail := new(MockMailer)
	cfg := &config.Config{MailOperator: "sales@example.com"}
	svc := NewService(repo, mail, cfg, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mail.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	_, err := svc.CreateMessage(context.Background(), CreateMessageRequest{
		Name:    "Ravi",
		Email:   "ravi@example.com",
		Message: "Please call me back about pricing.",
	})

	require.NoError(t, err)
}

func TestCreateMessageNoOperatorSkipsMail(t *testing.T) {
	repo := new(MockContactRepository)
	mail := new(MockMailer)
	svc := NewService(repo, mail, &config.Config{}, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CreateMessage(context.Background(), CreateMessageRequest{
		Name:    "Ravi",
		Email:   "ravi@example.com",
		Message: "General question about the site.",
	})

	require.NoError(t, err)
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateMessageStoreFailure(t *testing.T) {
	repo := new(MockContactRepository)
	mail := new(MockMailer)
	svc := NewService(repo, mail, &config.Config{MailOperator: "ops@example.com"}, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := svc.CreateMessage(context.Background(), CreateMessageRequest{
		Name:    "Ravi",
		Email:   "ravi@example.com",
		Message: "This should not send mail.",
	})

	require.Error(t, err)
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkMessageRead(t *testing.T) {
	repo := new(MockContactRepository)
	svc := NewService(repo, new(MockMailer), &config.Config{}, zap.NewNop())

	id := uuid.New()
	repo.On("MarkRead", mock.Anything, id).Return(nil)

	require.NoError(t, svc.MarkMessageRead(context.Background(), id))
	repo.AssertExpectations(t)
}

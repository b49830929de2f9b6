package property

import (
	"context"
	"errors"
	"testing"

	"propmatics_backend/internal/common"
	"propmatics_backend/internal/config"
	"propmatics_backend/internal/content"
	"propmatics_backend/internal/contentful"
	"propmatics_backend/internal/mailer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPropertyRepository is a mock type for property.Repository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Property), args.Error(1)
}

func (m *MockPropertyRepository) FindBySlug(ctx context.Context, slug string) (*Property, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Property), args.Error(1)
}

func (m *MockPropertyRepository) Search(ctx context.Context, query PropertySearchQuery) ([]Property, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Property), args.Error(1)
}

func (m *MockPropertyRepository) FindRelated(ctx context.Context, city string, excludeID uuid.UUID, limit int) ([]Property, error) {
	args := m.Called(ctx, city, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Property), args.Error(1)
}

func (m *MockPropertyRepository) FindBySyncStatus(ctx context.Context, status SyncStatus) ([]Property, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Property), args.Error(1)
}

func (m *MockPropertyRepository) MarkSynced(ctx context.Context, id uuid.UUID, remoteEntryID string) error {
	args := m.Called(ctx, id, remoteEntryID)
	return args.Error(0)
}

func (m *MockPropertyRepository) Update(ctx context.Context, property *Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

// MockContentResolver is a mock type for property.ContentResolver
type MockContentResolver struct {
	mock.Mock
}

func (m *MockContentResolver) ListProperties(ctx context.Context) ([]content.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]content.Property), args.Error(1)
}

func (m *MockContentResolver) GetPropertyBySlug(ctx context.Context, slug string) (*content.Property, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Property), args.Error(1)
}

// MockSyncPublisher is a mock type for property.SyncPublisher
type MockSyncPublisher struct {
	mock.Mock
}

func (m *MockSyncPublisher) PublishProperty(ctx context.Context, draft contentful.PropertyDraft) (string, error) {
	args := m.Called(ctx, draft)
	return args.String(0), args.Error(1)
}

func newTestService(source string) (Service, *MockPropertyRepository, *MockContentResolver, *MockSyncPublisher) {
	repo := new(MockPropertyRepository)
	resolver := new(MockContentResolver)
	publisher := new(MockSyncPublisher)
	cfg := &config.Config{ContentSource: source}
	mail := mailer.NewSMTPMailer(cfg, zap.NewNop())
	svc := NewService(repo, resolver, publisher, mail, cfg, zap.NewNop())
	return svc, repo, resolver, publisher
}

func TestListPropertiesRemoteSourceFiltersInMemory(t *testing.T) {
	svc, _, resolver, _ := newTestService(config.ContentSourceContentful)

	resolver.On("ListProperties", mock.Anything).Return([]content.Property{
		{Slug: "a", Title: "Green Villa", City: "Pune", PropertyType: content.PropertyIndependentVilla},
		{Slug: "b", Title: "Sky Towers", City: "Mumbai", PropertyType: content.PropertyTowers},
		{Slug: "c", Title: "Green Heights", City: "Mumbai", PropertyType: content.PropertyTowers},
	}, nil)

	result, err := svc.ListProperties(context.Background(), PropertySearchQuery{
		SearchTerm:   "green",
		PropertyType: "towers",
	})

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "c", result[0].Slug)
}

func TestListPropertiesRemoteFailureDegradesToEmpty(t *testing.T) {
	svc, _, resolver, _ := newTestService(config.ContentSourceContentful)
	resolver.On("ListProperties", mock.Anything).Return(nil, errors.New("upstream down"))

	result, err := svc.ListProperties(context.Background(), PropertySearchQuery{})

	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestListPropertiesDatabaseSource(t *testing.T) {
	svc, repo, _, _ := newTestService(config.ContentSourceDatabase)
	repo.On("Search", mock.Anything, mock.Anything).Return([]Property{
		{Title: "DB Villa", Slug: "db-villa", City: "Pune"},
	}, nil)

	result, err := svc.ListProperties(context.Background(), PropertySearchQuery{})

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "db-villa", result[0].Slug)
	repo.AssertExpectations(t)
}

func TestGetPropertyBySlugRemoteAbsentIsNotFound(t *testing.T) {
	svc, _, resolver, _ := newTestService(config.ContentSourceContentful)
	resolver.On("GetPropertyBySlug", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.GetPropertyBySlug(context.Background(), "missing")

	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrNotFound.StatusCode, apiErr.StatusCode)
}

func TestGetPropertyBySlugRemoteFailureIsUnavailable(t *testing.T) {
	svc, _, resolver, _ := newTestService(config.ContentSourceContentful)
	resolver.On("GetPropertyBySlug", mock.Anything, "flaky").Return(nil, errors.New("timeout"))

	_, err := svc.GetPropertyBySlug(context.Background(), "flaky")

	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrServiceUnavailable.StatusCode, apiErr.StatusCode)
}

func TestGetRelatedPropertiesRemoteSameCityCapped(t *testing.T) {
	svc, _, resolver, _ := newTestService(config.ContentSourceContentful)

	target := &content.Property{Slug: "target", City: "Mumbai"}
	resolver.On("GetPropertyBySlug", mock.Anything, "target").Return(target, nil)

	all := []content.Property{{Slug: "target", City: "Mumbai"}}
	for _, s := range []string{"m1", "m2", "m3", "m4", "m5"} {
		all = append(all, content.Property{Slug: s, City: "mumbai"})
	}
	all = append(all, content.Property{Slug: "p1", City: "Pune"})
	resolver.On("ListProperties", mock.Anything).Return(all, nil)

	related, err := svc.GetRelatedProperties(context.Background(), "target")

	require.NoError(t, err)
	require.Len(t, related, 4)
	for _, p := range related {
		assert.NotEqual(t, "target", p.Slug)
		assert.True(t, p.City == "Mumbai" || p.City == "mumbai")
	}
}

func TestCreatePropertySyncsImmediately(t *testing.T) {
	svc, repo, _, publisher := newTestService(config.ContentSourceDatabase)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*property.Property")).Run(func(args mock.Arguments) {
		p := args.Get(1).(*Property)
		p.ID = uuid.New()
	}).Return(nil)
	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, errors.New("not preloaded"))
	publisher.On("PublishProperty", mock.Anything, mock.Anything).Return("entry-77", nil)
	repo.On("MarkSynced", mock.Anything, mock.Anything, "entry-77").Return(nil)

	created, err := svc.CreateProperty(context.Background(), CreatePropertyRequest{
		Title:        "New Launch Villa",
		PropertyType: "independent_villa",
		Price:        4200000,
		City:         "Bangalore",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "new-launch-villa", created.Slug)
	assert.Equal(t, SyncSynced, created.SyncStatus)
	assert.Equal(t, "entry-77", created.RemoteEntryID)
	// Geocode ran at creation time.
	assert.Equal(t, 12.9716, created.Latitude)
	publisher.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestCreatePropertyPublishFailureLeavesPending(t *testing.T) {
	svc, repo, _, publisher := newTestService(config.ContentSourceDatabase)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, errors.New("skip"))
	publisher.On("PublishProperty", mock.Anything, mock.Anything).Return("", errors.New("cma down"))

	created, err := svc.CreateProperty(context.Background(), CreatePropertyRequest{
		Title:        "Deferred Sync",
		PropertyType: "towers",
		Price:        100,
		City:         "Pune",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, SyncPending, created.SyncStatus)
	assert.Empty(t, created.RemoteEntryID)
}

func TestSyncPendingPropertiesContinuesPastFailures(t *testing.T) {
	svc, repo, _, publisher := newTestService(config.ContentSourceDatabase)

	pending := []Property{
		{Slug: "ok-1", Title: "Ok One", PropertyType: content.PropertyTowers, Price: 1, City: "Pune"},
		{Slug: "bad", Title: "Bad", PropertyType: content.PropertyTowers, Price: 1, City: "Pune"},
		{Slug: "ok-2", Title: "Ok Two", PropertyType: content.PropertyTowers, Price: 1, City: "Pune"},
	}
	repo.On("FindBySyncStatus", mock.Anything, SyncPending).Return(pending, nil)

	publisher.On("PublishProperty", mock.Anything, mock.MatchedBy(func(d contentful.PropertyDraft) bool {
		return d.Slug == "bad"
	})).Return("", errors.New("validation failed"))
	publisher.On("PublishProperty", mock.Anything, mock.MatchedBy(func(d contentful.PropertyDraft) bool {
		return d.Slug != "bad"
	})).Return("entry-x", nil)
	repo.On("MarkSynced", mock.Anything, mock.Anything, "entry-x").Return(nil)

	synced, err := svc.SyncPendingProperties(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, synced)
}

func TestSyncPendingPropertiesStopsWhenNotConfigured(t *testing.T) {
	svc, repo, _, publisher := newTestService(config.ContentSourceDatabase)

	repo.On("FindBySyncStatus", mock.Anything, SyncPending).Return([]Property{
		{Slug: "a"}, {Slug: "b"},
	}, nil)
	publisher.On("PublishProperty", mock.Anything, mock.Anything).Return("", contentful.ErrNotConfigured).Once()

	synced, err := svc.SyncPendingProperties(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, synced)
	publisher.AssertNumberOfCalls(t, "PublishProperty", 1)
}

package contentful

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(srv *httptest.Server) *Client {
	return &Client{
		spaceID:           "space1",
		environment:       "master",
		cdaToken:          "cda-token",
		cmaToken:          "cma-token",
		httpClient:        srv.Client(),
		logger:            zap.NewNop(),
		deliveryBaseURL:   srv.URL,
		managementBaseURL: srv.URL,
		uploadBaseURL:     srv.URL,
	}
}

func newTestResolver(srv *httptest.Server) *Resolver {
	client := testClient(srv)
	return NewResolver(client, NewParser(zap.NewNop()), zap.NewNop())
}

func deliveryResponse(t *testing.T, items []map[string]interface{}) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"total": len(items),
		"items": items,
	})
	require.NoError(t, err)
	return body
}

func TestListPropertiesQueriesDeliveryAPI(t *testing.T) {
	var gotPath string
	var gotAuth string
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		w.Write(deliveryResponse(t, []map[string]interface{}{
			{"sys": map[string]interface{}{"id": "p1"}, "fields": map[string]interface{}{"title": "One", "slug": "one"}},
			{"sys": map[string]interface{}{"id": "p2"}, "fields": map[string]interface{}{"title": "Two", "slug": "two"}},
		}))
	}))
	defer srv.Close()

	properties, err := newTestResolver(srv).ListProperties(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "/spaces/space1/environments/master/entries", gotPath)
	assert.Equal(t, "Bearer cda-token", gotAuth)
	assert.Equal(t, []string{"property"}, gotQuery["content_type"])
	assert.Equal(t, []string{"-sys.createdAt"}, gotQuery["order"])
	assert.Equal(t, []string{"1"}, gotQuery["include"])

	require.Len(t, properties, 2)
	assert.Equal(t, "One", properties[0].Title)
	assert.Equal(t, "Two", properties[1].Title)
}

func TestGetPropertyBySlugAbsentIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "no-such-slug", r.URL.Query().Get("fields.slug"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Write(deliveryResponse(t, nil))
	}))
	defer srv.Close()

	property, err := newTestResolver(srv).GetPropertyBySlug(context.Background(), "no-such-slug")

	require.NoError(t, err)
	assert.Nil(t, property)
}

func TestGetPropertyBySlugFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(deliveryResponse(t, []map[string]interface{}{
			{"sys": map[string]interface{}{"id": "p1"}, "fields": map[string]interface{}{"title": "Found", "slug": "found"}},
		}))
	}))
	defer srv.Close()

	property, err := newTestResolver(srv).GetPropertyBySlug(context.Background(), "found")

	require.NoError(t, err)
	require.NotNil(t, property)
	assert.Equal(t, "Found", property.Title)
}

func TestResolverUpstreamFailureIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"boom"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	resolver := newTestResolver(srv)

	_, err := resolver.ListProperties(context.Background())
	assert.Error(t, err)

	_, err = resolver.GetPropertyBySlug(context.Background(), "any")
	assert.Error(t, err)
}

func TestResolverNotConfigured(t *testing.T) {
	client := &Client{httpClient: http.DefaultClient, logger: zap.NewNop()}
	resolver := NewResolver(client, NewParser(zap.NewNop()), zap.NewNop())

	_, err := resolver.ListProperties(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestListNotificationsOrderAndLimit(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write(deliveryResponse(t, nil))
	}))
	defer srv.Close()

	_, err := newTestResolver(srv).ListNotifications(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, []string{"notification"}, gotQuery["content_type"])
	assert.Equal(t, []string{"-fields.date"}, gotQuery["order"])
	assert.Equal(t, []string{"5"}, gotQuery["limit"])
}

func TestListDevelopersOrderedByName(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write(deliveryResponse(t, nil))
	}))
	defer srv.Close()

	_, err := newTestResolver(srv).ListDevelopers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"developer"}, gotQuery["content_type"])
	assert.Equal(t, []string{"fields.name"}, gotQuery["order"])
}

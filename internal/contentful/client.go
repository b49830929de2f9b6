// File: internal/contentful/client.go

// Package contentful integrates with the remote content store. The read
// path (Resolver) uses the delivery API, the write path (Publisher and
// Uploader) uses the management API. Credentials are handed in once at
// construction; missing credentials put the components into an explicit
// "not configured" state instead of failing per call.
package contentful

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"propmatics_backend/internal/config"

	"go.uber.org/zap"
)

const (
	defaultLocale  = "en-US"
	defaultTimeout = 30 * time.Second
)

// ErrNotConfigured is returned by operations whose credential scope
// (delivery or management) was not supplied. Callers degrade to empty
// results rather than failing the process.
var ErrNotConfigured = errors.New("contentful: credentials not configured")

// Client is the low-level transport for both Contentful API scopes.
type Client struct {
	spaceID     string
	environment string
	cdaToken    string
	cmaToken    string

	httpClient *http.Client
	logger     *zap.Logger

	// Base URLs are fields so tests can point the client at a fake server.
	deliveryBaseURL   string
	managementBaseURL string
	uploadBaseURL     string
}

// NewClient creates a Contentful client from application configuration.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		spaceID:           cfg.ContentfulSpaceID,
		environment:       cfg.ContentfulEnvironment,
		cdaToken:          cfg.ContentfulCDAToken,
		cmaToken:          cfg.ContentfulCMAToken,
		httpClient:        &http.Client{Timeout: defaultTimeout},
		logger:            logger,
		deliveryBaseURL:   "https://cdn.contentful.com",
		managementBaseURL: "https://api.contentful.com",
		uploadBaseURL:     "https://upload.contentful.com",
	}
}

// ReadConfigured reports whether the delivery (read-only) scope is usable.
func (c *Client) ReadConfigured() bool {
	return c.spaceID != "" && c.cdaToken != ""
}

// WriteConfigured reports whether the management (read-write) scope is usable.
func (c *Client) WriteConfigured() bool {
	return c.spaceID != "" && c.cmaToken != ""
}

// Sys is the system metadata envelope on every remote record.
type Sys struct {
	ID          string    `json:"id"`
	Type        string    `json:"type,omitempty"`
	LinkType    string    `json:"linkType,omitempty"`
	Version     int       `json:"version,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	ContentType *struct {
		Sys struct {
			ID string `json:"id"`
		} `json:"sys"`
	} `json:"contentType,omitempty"`
}

// Entry is a raw remote record: entries and assets share this shape on the
// delivery API. Fields stay raw until the parser extracts them by name.
type Entry struct {
	Sys    Sys                        `json:"sys"`
	Fields map[string]json.RawMessage `json:"fields"`
}

// EntryCollection is the delivery API's query result, including linked
// records resolved one level deep.
type EntryCollection struct {
	Total    int     `json:"total"`
	Items    []Entry `json:"items"`
	Includes struct {
		Entry []Entry `json:"Entry"`
		Asset []Entry `json:"Asset"`
	} `json:"includes"`
}

// QueryEntries runs one delivery-API query and returns the raw collection.
func (c *Client) QueryEntries(ctx context.Context, params url.Values) (*EntryCollection, error) {
	if !c.ReadConfigured() {
		return nil, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/spaces/%s/environments/%s/entries?%s",
		c.deliveryBaseURL, c.spaceID, c.environment, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build entries request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cdaToken)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var collection EntryCollection
	if err := json.Unmarshal(body, &collection); err != nil {
		return nil, fmt.Errorf("parse entries response: %w", err)
	}
	return &collection, nil
}

// --- Management API ---

// ManagedResource is a management-API record (upload, asset or entry).
type ManagedResource struct {
	Sys    Sys                        `json:"sys"`
	Fields map[string]json.RawMessage `json:"fields"`
}

// FileURL returns the processed file URL of an asset resource, or ""
// while processing has not completed yet.
func (r *ManagedResource) FileURL() string {
	raw, ok := r.Fields["file"]
	if !ok {
		return ""
	}
	var file map[string]struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		return ""
	}
	return file[defaultLocale].URL
}

// CreateUpload pushes raw file bytes and returns the upload resource ID.
func (c *Client) CreateUpload(ctx context.Context, data []byte) (string, error) {
	endpoint := fmt.Sprintf("%s/spaces/%s/uploads", c.uploadBaseURL, c.spaceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resource, err := c.doManagement(req)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	return resource.Sys.ID, nil
}

// CreateAsset creates an unprocessed asset entry referencing an upload.
func (c *Client) CreateAsset(ctx context.Context, title, filename, contentType, uploadID string) (*ManagedResource, error) {
	payload := map[string]interface{}{
		"fields": map[string]interface{}{
			"title": map[string]interface{}{defaultLocale: title},
			"file": map[string]interface{}{
				defaultLocale: map[string]interface{}{
					"contentType": contentType,
					"fileName":    filename,
					"uploadFrom": map[string]interface{}{
						"sys": map[string]interface{}{
							"type":     "Link",
							"linkType": "Upload",
							"id":       uploadID,
						},
					},
				},
			},
		},
	}

	req, err := c.managementRequest(ctx, http.MethodPost, "/assets", payload)
	if err != nil {
		return nil, err
	}
	resource, err := c.doManagement(req)
	if err != nil {
		return nil, fmt.Errorf("create asset: %w", err)
	}
	return resource, nil
}

// ProcessAsset asks the remote store to process the asset's file.
func (c *Client) ProcessAsset(ctx context.Context, assetID string, version int) error {
	path := fmt.Sprintf("/assets/%s/files/%s/process", assetID, defaultLocale)
	req, err := c.managementRequest(ctx, http.MethodPut, path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Contentful-Version", fmt.Sprintf("%d", version))
	if _, err := c.doManagement(req); err != nil {
		return fmt.Errorf("process asset %s: %w", assetID, err)
	}
	return nil
}

// GetAsset fetches an asset's current management-API state.
func (c *Client) GetAsset(ctx context.Context, assetID string) (*ManagedResource, error) {
	req, err := c.managementRequest(ctx, http.MethodGet, "/assets/"+assetID, nil)
	if err != nil {
		return nil, err
	}
	resource, err := c.doManagement(req)
	if err != nil {
		return nil, fmt.Errorf("get asset %s: %w", assetID, err)
	}
	return resource, nil
}

// PublishAsset makes a processed asset visible to delivery queries.
func (c *Client) PublishAsset(ctx context.Context, assetID string, version int) error {
	req, err := c.managementRequest(ctx, http.MethodPut, "/assets/"+assetID+"/published", nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Contentful-Version", fmt.Sprintf("%d", version))
	if _, err := c.doManagement(req); err != nil {
		return fmt.Errorf("publish asset %s: %w", assetID, err)
	}
	return nil
}

// CreateEntry creates an entry of the given content type from an assembled
// locale-wrapped field set.
func (c *Client) CreateEntry(ctx context.Context, contentType string, fields map[string]interface{}) (*ManagedResource, error) {
	req, err := c.managementRequest(ctx, http.MethodPost, "/entries", map[string]interface{}{"fields": fields})
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Contentful-Content-Type", contentType)

	resource, err := c.doManagement(req)
	if err != nil {
		return nil, fmt.Errorf("create %s entry: %w", contentType, err)
	}
	return resource, nil
}

// PublishEntry makes a created entry visible to delivery queries.
func (c *Client) PublishEntry(ctx context.Context, entryID string, version int) error {
	req, err := c.managementRequest(ctx, http.MethodPut, "/entries/"+entryID+"/published", nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Contentful-Version", fmt.Sprintf("%d", version))
	if _, err := c.doManagement(req); err != nil {
		return fmt.Errorf("publish entry %s: %w", entryID, err)
	}
	return nil
}

func (c *Client) managementRequest(ctx context.Context, method, path string, payload interface{}) (*http.Request, error) {
	endpoint := fmt.Sprintf("%s/spaces/%s/environments/%s%s",
		c.managementBaseURL, c.spaceID, c.environment, path)

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode management payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build management request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/vnd.contentful.management.v1+json")
	}
	return req, nil
}

func (c *Client) doManagement(req *http.Request) (*ManagedResource, error) {
	if !c.WriteConfigured() {
		return nil, ErrNotConfigured
	}
	req.Header.Set("Authorization", "Bearer "+c.cmaToken)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	// Some management operations answer 204 with no body.
	var resource ManagedResource
	if len(body) > 0 {
		if err := json.Unmarshal(body, &resource); err != nil {
			return nil, fmt.Errorf("parse management response: %w", err)
		}
	}
	return &resource, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s returned status %d: %s",
			req.Method, req.URL.Path, resp.StatusCode, truncate(string(body), 256))
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

package contentful

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUploader(client *Client) *Uploader {
	return &Uploader{
		client:       client,
		pollInterval: 5 * time.Millisecond,
		pollTimeout:  200 * time.Millisecond,
		logger:       zap.NewNop(),
	}
}

func assetStateJSON(version int, url string) string {
	fields := ""
	if url != "" {
		fields = fmt.Sprintf(`,"fields":{"file":{"en-US":{"url":%q}}}`, url)
	}
	return fmt.Sprintf(`{"sys":{"id":"asset-1","version":%d}%s}`, version, fields)
}

func TestUploadImageLifecycle(t *testing.T) {
	var processCalls, publishCalls int32
	var getCalls int32
	var uploadedBytes []byte
	var processVersion, publishVersion string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/spaces/space1/uploads":
			assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
			assert.Equal(t, "Bearer cma-token", r.Header.Get("Authorization"))
			uploadedBytes, _ = io.ReadAll(r.Body)
			w.Write([]byte(`{"sys":{"id":"upload-1"}}`))

		case r.Method == http.MethodPost && r.URL.Path == "/spaces/space1/environments/master/assets":
			body, _ := io.ReadAll(r.Body)
			var payload map[string]interface{}
			require.NoError(t, json.Unmarshal(body, &payload))
			fields := payload["fields"].(map[string]interface{})
			assert.Contains(t, fields["title"], "en-US")
			file := fields["file"].(map[string]interface{})["en-US"].(map[string]interface{})
			assert.Equal(t, "villa.jpg", file["fileName"])
			assert.Equal(t, "image/jpeg", file["contentType"])
			link := file["uploadFrom"].(map[string]interface{})["sys"].(map[string]interface{})
			assert.Equal(t, "upload-1", link["id"])
			w.Write([]byte(assetStateJSON(1, "")))

		case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/assets/asset-1/files/en-US/process"):
			atomic.AddInt32(&processCalls, 1)
			processVersion = r.Header.Get("X-Contentful-Version")
			w.WriteHeader(http.StatusNoContent)

		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/assets/asset-1"):
			// First poll: still processing. Second poll: done.
			if atomic.AddInt32(&getCalls, 1) == 1 {
				w.Write([]byte(assetStateJSON(2, "")))
			} else {
				w.Write([]byte(assetStateJSON(2, "//images.example.com/villa.jpg")))
			}

		case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/assets/asset-1/published"):
			atomic.AddInt32(&publishCalls, 1)
			publishVersion = r.Header.Get("X-Contentful-Version")
			w.Write([]byte(assetStateJSON(3, "//images.example.com/villa.jpg")))

		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	uploader := newTestUploader(testClient(srv))
	assetID, err := uploader.UploadImage(context.Background(), []byte("jpegdata"), "villa.jpg", "image/jpeg", "Villa photo")

	require.NoError(t, err)
	assert.Equal(t, "asset-1", assetID)
	assert.Equal(t, []byte("jpegdata"), uploadedBytes)
	assert.EqualValues(t, 1, processCalls)
	assert.EqualValues(t, 1, publishCalls)
	assert.EqualValues(t, 2, getCalls)
	assert.Equal(t, "1", processVersion)
	// Publish uses the version observed after processing completed.
	assert.Equal(t, "2", publishVersion)
}

func TestUploadImagePollingTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/uploads"):
			w.Write([]byte(`{"sys":{"id":"upload-1"}}`))
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/assets"):
			w.Write([]byte(assetStateJSON(1, "")))
		case strings.HasSuffix(r.URL.Path, "/process"):
			w.WriteHeader(http.StatusNoContent)
		default:
			// Never finishes processing.
			w.Write([]byte(assetStateJSON(2, "")))
		}
	}))
	defer srv.Close()

	uploader := newTestUploader(testClient(srv))
	_, err := uploader.UploadImage(context.Background(), []byte("x"), "a.png", "image/png", "a")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not processed within")
}

func TestUploadImageRespectsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/uploads"):
			w.Write([]byte(`{"sys":{"id":"upload-1"}}`))
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/assets"):
			w.Write([]byte(assetStateJSON(1, "")))
		case strings.HasSuffix(r.URL.Path, "/process"):
			w.WriteHeader(http.StatusNoContent)
		default:
			w.Write([]byte(assetStateJSON(2, "")))
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	uploader := newTestUploader(testClient(srv))
	uploader.pollTimeout = 10 * time.Second

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := uploader.UploadImage(ctx, []byte("x"), "a.png", "image/png", "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUploadImageRejectsEmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty payload")
	}))
	defer srv.Close()

	uploader := newTestUploader(testClient(srv))
	_, err := uploader.UploadImage(context.Background(), nil, "a.png", "image/png", "a")
	assert.Error(t, err)
}

func TestUploadImageNotConfigured(t *testing.T) {
	client := &Client{httpClient: http.DefaultClient, logger: zap.NewNop()}
	uploader := newTestUploader(client)

	_, err := uploader.UploadImage(context.Background(), []byte("x"), "a.png", "image/png", "a")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

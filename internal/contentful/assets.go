// File: internal/contentful/assets.go
package contentful

import (
	"context"
	"fmt"
	"time"

	"propmatics_backend/internal/config"

	"go.uber.org/zap"
)

// Uploader pushes binary assets through the remote store's
// upload -> create -> process -> publish lifecycle.
type Uploader struct {
	client       *Client
	pollInterval time.Duration
	pollTimeout  time.Duration
	logger       *zap.Logger
}

// NewUploader creates an asset uploader. Poll bounds come from config so
// deployments can tune how long asset processing may take.
func NewUploader(client *Client, cfg *config.Config, logger *zap.Logger) *Uploader {
	interval := cfg.AssetPollInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	timeout := cfg.AssetPollTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Uploader{
		client:       client,
		pollInterval: interval,
		pollTimeout:  timeout,
		logger:       logger,
	}
}

// UploadImage uploads image bytes, waits for asynchronous processing to
// complete and publishes the result, returning the stable asset ID.
// Processing is polled with a bounded timeout instead of a blind sleep;
// exceeding the bound is reported as a failure. Callers treat any failure
// here as best-effort and proceed without an image.
func (u *Uploader) UploadImage(ctx context.Context, data []byte, filename, contentType, title string) (string, error) {
	if !u.client.WriteConfigured() {
		return "", ErrNotConfigured
	}
	if len(data) == 0 {
		return "", fmt.Errorf("upload image: empty payload")
	}

	uploadID, err := u.client.CreateUpload(ctx, data)
	if err != nil {
		return "", err
	}

	asset, err := u.client.CreateAsset(ctx, title, filename, contentType, uploadID)
	if err != nil {
		return "", err
	}
	assetID := asset.Sys.ID

	if err := u.client.ProcessAsset(ctx, assetID, asset.Sys.Version); err != nil {
		return "", err
	}

	processed, err := u.waitForProcessing(ctx, assetID)
	if err != nil {
		return "", err
	}

	if err := u.client.PublishAsset(ctx, assetID, processed.Sys.Version); err != nil {
		return "", err
	}

	u.logger.Info("Uploaded image to remote content store",
		zap.String("assetID", assetID),
		zap.String("filename", filename),
	)
	return assetID, nil
}

// waitForProcessing polls the asset until its processed file URL appears.
func (u *Uploader) waitForProcessing(ctx context.Context, assetID string) (*ManagedResource, error) {
	deadline := time.Now().Add(u.pollTimeout)
	timer := time.NewTimer(u.pollInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("wait for asset %s processing: %w", assetID, ctx.Err())
		case <-timer.C:
		}

		asset, err := u.client.GetAsset(ctx, assetID)
		if err != nil {
			return nil, err
		}
		if asset.FileURL() != "" {
			return asset, nil
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("asset %s not processed within %s", assetID, u.pollTimeout)
		}
		timer.Reset(u.pollInterval)
	}
}

package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/frahmantamala/document-management/internal"
	"github.com/google/uuid"
)

// Client is a thin object-store client. Version payload bytes never pass
// through this service; the client only builds the object paths recorded on
// document versions and answers health probes against the store endpoint.
type Client struct {
	baseURL        string
	bucket         string
	accessKey      string
	requestTimeout time.Duration
	httpClient     *http.Client
	logger         *slog.Logger
}

func NewClient(cfg internal.StorageConfig, logger *slog.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:        cfg.BaseURL(),
		bucket:         cfg.Bucket,
		accessKey:      cfg.AccessKey,
		requestTimeout: timeout,
		httpClient:     &http.Client{Timeout: timeout},
		logger:         logger,
	}
}

// BuildObjectPath returns the object URL recorded for a new document version.
// A random key segment keeps re-uploads of the same file name from colliding.
func (c *Client) BuildObjectPath(documentID int64, fileName string) string {
	objectKey := path.Join(
		fmt.Sprintf("documents/%d", documentID),
		uuid.New().String(),
		fileName,
	)
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.bucket, objectKey)
}

// Ping checks that the store endpoint answers. Used by the health handler.
func (c *Client) Ping(ctx context.Context) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s", c.baseURL, c.bucket)
	req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create storage request: %w", err)
	}
	if c.accessKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storage endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("storage endpoint returned status %d", resp.StatusCode)
	}

	return nil
}

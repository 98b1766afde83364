package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	pkgerrors "event-registry-service/pkg/errors"
)

// ErrObjectNotFound is returned by Get when the requested key has no blob.
// Callers that treat a missing blob as first-run bootstrap check for it
// with errors.Is.
var ErrObjectNotFound = errors.New("blob: object not found")

// Config holds the blob proxy connection settings. It is passed explicitly
// at construction; the client never reads ambient environment state.
type Config struct {
	BaseURL string        // proxy base URL, e.g. http://localhost:3001/api
	Token   string        // bearer token forwarded to the object store
	Timeout time.Duration // per-request timeout, zero means 10s
}

// ObjectInfo describes one stored blob as reported by the list endpoint.
type ObjectInfo struct {
	Pathname   string    `json:"pathname"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Client talks to the key/blob object store through its HTTP proxy.
// Keys are opaque strings like "users/users.json"; values are opaque bytes.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	log     *zap.Logger
}

// NewClient creates a blob store client for the given proxy.
func NewClient(cfg Config, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		log:     log,
	}
}

// Get fetches the blob stored at key. A 404 maps to ErrObjectNotFound;
// transport failures and server errors map to StorageUnavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, c.blobURL(key), nil)
	if err != nil {
		return nil, pkgerrors.NewStorageUnavailableError("blob fetch failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.log.Debug("blob not found", zap.String("key", key))
		return nil, ErrObjectNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, pkgerrors.NewStorageUnavailableError(
			fmt.Sprintf("blob fetch returned status %d", resp.StatusCode), nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.NewStorageUnavailableError("blob read failed", err)
	}

	c.log.Debug("blob fetched", zap.String("key", key), zap.Int("bytes", len(data)))
	return data, nil
}

// Put overwrites the blob at key in full. The write is not transactional:
// a crash mid-write can leave either the old or the new state behind.
func (c *Client) Put(ctx context.Context, key string, data []byte) error {
	resp, err := c.do(ctx, http.MethodPut, c.blobURL(key), bytes.NewReader(data))
	if err != nil {
		return pkgerrors.NewStorageUnavailableError("blob write failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return pkgerrors.NewStorageUnavailableError(
			fmt.Sprintf("blob write returned status %d", resp.StatusCode), nil)
	}

	c.log.Debug("blob written", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// Delete removes the blob at key. Deleting a missing key is a success.
func (c *Client) Delete(ctx context.Context, key string) error {
	resp, err := c.do(ctx, http.MethodDelete, c.blobURL(key), nil)
	if err != nil {
		return pkgerrors.NewStorageUnavailableError("blob delete failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return pkgerrors.NewStorageUnavailableError(
			fmt.Sprintf("blob delete returned status %d", resp.StatusCode), nil)
	}

	c.log.Debug("blob deleted", zap.String("key", key))
	return nil
}

// List returns the blobs stored under prefix.
func (c *Client) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	listURL := fmt.Sprintf("%s/list?prefix=%s", c.baseURL, url.QueryEscape(prefix))

	resp, err := c.do(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, pkgerrors.NewStorageUnavailableError("blob list failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, pkgerrors.NewStorageUnavailableError(
			fmt.Sprintf("blob list returned status %d", resp.StatusCode), nil)
	}

	var payload struct {
		Blobs []ObjectInfo `json:"blobs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, pkgerrors.NewStorageUnavailableError("blob list decode failed", err)
	}

	return payload.Blobs, nil
}

func (c *Client) blobURL(key string) string {
	return fmt.Sprintf("%s/blob/%s", c.baseURL, strings.TrimLeft(key, "/"))
}

func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/MEETJOGANI/MEETA-DRIVE/internal/config"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/httpx"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/logging"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/models"
)

// SessionCookieName is the cookie carrying the session credential.
const SessionCookieName = "meeta_session"

// REST paths consumed by the client. FilesPath doubles as the listing
// cache endpoint key.
const (
	FilesPath        = "/api/files"
	FoldersPath      = "/api/folders"
	FolderUploadPath = "/api/folders/upload-fast"
)

// retryLogger adapts the internal logger to retryablehttp.LeveledLogger.
// Only errors and warnings are surfaced.
type retryLogger struct {
	logger *logging.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {}

// Client is the MEETA DRIVE API client.
//
// JSON calls (list, create folder, delete) go through a retrying client.
// Transfers use RawClient: their bodies are one-shot streams and a transfer
// is a single attempt.
type Client struct {
	jsonClient *nethttp.Client
	rawClient  *nethttp.Client
	baseURL    string
	session    string
	logger     *logging.Logger
}

// NewClient creates a new API client from the given config.
func NewClient(cfg *config.Config, logger *logging.Logger) (*Client, error) {
	if cfg.PlatformURL == "" {
		return nil, fmt.Errorf("API base URL is empty: %w", config.ErrMissingPlatformURL)
	}
	if logger == nil {
		logger = logging.NewDefaultCLILogger()
	}

	rawClient := httpx.NewClient()

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = httpx.NewClient()
	retryClient.RetryMax = 4
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 15 * time.Second
	retryClient.Logger = &retryLogger{logger: logger}

	return &Client{
		jsonClient: retryClient.StandardClient(),
		rawClient:  rawClient,
		baseURL:    strings.TrimSuffix(cfg.PlatformURL, "/"),
		session:    cfg.SessionCookie,
		logger:     logger,
	}, nil
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session returns the session cookie value.
func (c *Client) Session() string {
	return c.session
}

// RawClient returns the non-retrying HTTP client used for transfers.
func (c *Client) RawClient() *nethttp.Client {
	return c.rawClient
}

// doRequest performs a JSON request with session credentials.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*nethttp.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := nethttp.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.AddCookie(&nethttp.Cookie{Name: SessionCookieName, Value: c.session})
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.jsonClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("API call failed")
		return nil, &NetworkError{Err: err}
	}
	return resp, nil
}

// ListFolder returns the entries of a folder. An empty folderID lists the
// drive root.
func (c *Client) ListFolder(ctx context.Context, folderID string) ([]models.Entry, error) {
	path := FilesPath
	if folderID != "" {
		path += "?parentId=" + url.QueryEscape(folderID)
	}

	resp, err := c.doRequest(ctx, nethttp.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !IsSuccess(resp.StatusCode) {
		return nil, &HTTPError{Status: resp.StatusCode}
	}

	var entries []models.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode folder listing: %w", err)
	}
	return entries, nil
}

// CreateFolder creates a folder entry under parentID. An empty parentID
// creates the folder at the drive root.
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (*models.Entry, error) {
	req := models.CreateFolderRequest{
		Name:     name,
		ParentID: parentID,
		MimeType: models.MimeTypeFolder,
	}

	resp, err := c.doRequest(ctx, nethttp.MethodPost, FoldersPath, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !IsSuccess(resp.StatusCode) {
		return nil, &HTTPError{Status: resp.StatusCode}
	}

	var entry models.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return nil, fmt.Errorf("failed to decode created folder: %w", err)
	}
	return &entry, nil
}

// DeleteFile deletes a file or folder by ID.
func (c *Client) DeleteFile(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, nethttp.MethodDelete, FilesPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if !IsSuccess(resp.StatusCode) {
		return &HTTPError{Status: resp.StatusCode}
	}
	return nil
}

// DownloadFile streams a file's content to w. onProgress, if non-nil, is
// called with cumulative bytes received and the total from Content-Length
// (total is -1 when the server does not announce a length).
func (c *Client) DownloadFile(ctx context.Context, id string, w io.Writer, onProgress func(current, total int64)) error {
	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet,
		c.baseURL+FilesPath+"/"+url.PathEscape(id)+"/download", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.AddCookie(&nethttp.Cookie{Name: SessionCookieName, Value: c.session})

	resp, err := c.rawClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if !IsSuccess(resp.StatusCode) {
		io.Copy(io.Discard, resp.Body)
		return &HTTPError{Status: resp.StatusCode}
	}

	total := resp.ContentLength
	var current int64
	buf := make([]byte, 64*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return fmt.Errorf("failed to write download data: %w", werr)
			}
			current += int64(n)
			if onProgress != nil {
				onProgress(current, total)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return &NetworkError{Err: readErr}
		}
	}
}

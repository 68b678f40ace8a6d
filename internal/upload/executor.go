package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	nethttp "net/http"
	"sync"

	"github.com/MEETJOGANI/MEETA-DRIVE/internal/api"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/logging"
)

// ProgressFunc receives transfer progress: a percentage in [0,100] and the
// estimated index of the item currently being sent. The index assumes a
// uniform per-byte distribution across files; it is not an exact per-file
// boundary signal.
type ProgressFunc func(percent float64, itemIndex int)

// Executor performs the multipart transfer for a payload.
//
// One request, one attempt: the multipart body is a one-shot stream, so
// there is no automatic retry. Callers re-invoke on failure. Cancellation
// mid-flight is not exposed; a cancelled context surfaces as a transport
// failure.
type Executor struct {
	client  *nethttp.Client
	baseURL string
	session string
	logger  *logging.Logger
}

// NewExecutor creates a transfer executor. client must not retry requests.
func NewExecutor(client *nethttp.Client, baseURL, session string, logger *logging.Logger) *Executor {
	if logger == nil {
		logger = logging.NewDefaultCLILogger()
	}
	return &Executor{
		client:  client,
		baseURL: baseURL,
		session: session,
		logger:  logger,
	}
}

// Do encodes the payload as multipart form data and posts it to the
// endpoint selected by the payload mode. onProgress, if non-nil, receives
// byte-level progress mapped to a completion percentage.
//
// A response status in [200,300) returns nil. Any other status returns
// *api.HTTPError; a transport-level failure returns *api.NetworkError.
func (e *Executor) Do(ctx context.Context, payload *TransferPayload, onProgress ProgressFunc) error {
	body, contentType, err := encodePayload(payload)
	if err != nil {
		return err
	}

	endpoint := api.FilesPath
	if payload.IsFolder() {
		endpoint = api.FolderUploadPath
	}

	total := int64(body.Len())
	reader := newProgressReader(body, total, len(payload.Files), onProgress)

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodPost, e.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = total
	req.AddCookie(&nethttp.Cookie{Name: api.SessionCookieName, Value: e.session})

	e.logger.Debug().
		Str("endpoint", endpoint).
		Int("files", len(payload.Files)).
		Int64("bytes", total).
		Msg("starting transfer")

	resp, err := e.client.Do(req)
	if err != nil {
		return &api.NetworkError{Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if !api.IsSuccess(resp.StatusCode) {
		return &api.HTTPError{Status: resp.StatusCode}
	}

	// The transport has consumed the whole body by now, but guarantee the
	// terminal 100% event even if the last read callback was elided.
	reader.finish()
	return nil
}

// encodePayload serializes the payload into a multipart form body.
//
// Field layout (fixed by the backend contract):
//   - folderName, paths (JSON array of strings) for folder transfers
//   - parentId when a destination folder is set
//   - files, repeated once per file, in selection order
func encodePayload(payload *TransferPayload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if payload.IsFolder() {
		if err := w.WriteField("folderName", payload.FolderName); err != nil {
			return nil, "", fmt.Errorf("failed to write folderName field: %w", err)
		}
		pathsJSON, err := json.Marshal(payload.Paths)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode paths: %w", err)
		}
		if err := w.WriteField("paths", string(pathsJSON)); err != nil {
			return nil, "", fmt.Errorf("failed to write paths field: %w", err)
		}
	}

	if payload.ParentID != "" {
		if err := w.WriteField("parentId", payload.ParentID); err != nil {
			return nil, "", fmt.Errorf("failed to write parentId field: %w", err)
		}
	}

	for _, f := range payload.Files {
		part, err := w.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file %s: %w", f.Name, err)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, "", fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		_, err = io.Copy(part, rc)
		rc.Close()
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

// progressReader counts bytes consumed by the transport and maps them to
// percentage progress. Reads only ever advance, so the reported percentage
// is monotonically non-decreasing.
type progressReader struct {
	reader     io.Reader
	total      int64
	totalItems int
	onProgress ProgressFunc

	mu       sync.Mutex
	sent     int64
	finished bool
}

func newProgressReader(r io.Reader, total int64, totalItems int, onProgress ProgressFunc) *progressReader {
	return &progressReader{
		reader:     r,
		total:      total,
		totalItems: totalItems,
		onProgress: onProgress,
	}
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	if n > 0 {
		pr.mu.Lock()
		pr.sent += int64(n)
		sent := pr.sent
		if sent >= pr.total {
			pr.finished = true
		}
		pr.mu.Unlock()
		pr.report(sent)
	}
	return n, err
}

// finish emits the terminal 100% event exactly once.
func (pr *progressReader) finish() {
	pr.mu.Lock()
	if pr.finished {
		pr.mu.Unlock()
		return
	}
	pr.finished = true
	pr.sent = pr.total
	pr.mu.Unlock()
	pr.report(pr.total)
}

func (pr *progressReader) report(sent int64) {
	if pr.onProgress == nil || pr.total <= 0 {
		return
	}
	percent := float64(sent) / float64(pr.total) * 100
	if percent > 100 {
		percent = 100
	}
	index := int(percent / 100 * float64(pr.totalItems))
	if index > pr.totalItems {
		index = pr.totalItems
	}
	pr.onProgress(percent, index)
}

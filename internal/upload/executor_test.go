package upload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MEETJOGANI/MEETA-DRIVE/internal/api"
)

func testExecutor(t *testing.T, server *httptest.Server) *Executor {
	t.Helper()
	return NewExecutor(server.Client(), server.URL, "test-session", nil)
}

func TestExecutorFlatUpload(t *testing.T) {
	var (
		gotPath     string
		gotParentID string
		gotFiles    int
		gotCookie   string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if c, err := r.Cookie(api.SessionCookieName); err == nil {
			gotCookie = c.Value
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
		}
		gotParentID = r.FormValue("parentId")
		gotFiles = len(r.MultipartForm.File["files"])
		if r.MultipartForm.Value["paths"] != nil {
			t.Error("flat upload must not carry a paths field")
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	payload, err := BuildFlatPayload(FileSelection{
		MemoryHandle("a.txt", "", []byte("hello")),
		MemoryHandle("b.txt", "", []byte("world!")),
	}, "42")
	if err != nil {
		t.Fatal(err)
	}

	if err := testExecutor(t, server).Do(context.Background(), payload, nil); err != nil {
		t.Fatalf("Do() error = %v, want nil", err)
	}

	if gotPath != api.FilesPath {
		t.Errorf("request path = %q, want %q", gotPath, api.FilesPath)
	}
	if gotParentID != "42" {
		t.Errorf("parentId = %q, want %q", gotParentID, "42")
	}
	if gotFiles != 2 {
		t.Errorf("received %d files, want 2", gotFiles)
	}
	if gotCookie != "test-session" {
		t.Errorf("session cookie = %q, want %q", gotCookie, "test-session")
	}
}

func TestExecutorFolderUpload(t *testing.T) {
	var (
		gotPath       string
		gotFolderName string
		gotPaths      string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
		}
		gotFolderName = r.FormValue("folderName")
		gotPaths = r.FormValue("paths")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	payload, err := BuildFolderPayload(FileSelection{
		MemoryHandle("a.txt", "proj/a.txt", []byte("aaa")),
		MemoryHandle("b.txt", "proj/sub/b.txt", []byte("bbb")),
	}, "")
	if err != nil {
		t.Fatal(err)
	}

	if err := testExecutor(t, server).Do(context.Background(), payload, nil); err != nil {
		t.Fatalf("Do() error = %v, want nil", err)
	}

	if gotPath != api.FolderUploadPath {
		t.Errorf("request path = %q, want %q", gotPath, api.FolderUploadPath)
	}
	if gotFolderName != "proj" {
		t.Errorf("folderName = %q, want %q", gotFolderName, "proj")
	}
	if gotPaths != `["proj/a.txt","proj/sub/b.txt"]` {
		t.Errorf("paths = %q, want positional JSON array", gotPaths)
	}
}

func TestExecutorHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	payload, _ := BuildFlatPayload(FileSelection{
		MemoryHandle("a.txt", "", []byte("x")),
	}, "")

	err := testExecutor(t, server).Do(context.Background(), payload, nil)
	if !api.IsHTTPStatus(err, http.StatusInternalServerError) {
		t.Errorf("Do() error = %v, want HTTPError with status 500", err)
	}
}

func TestExecutorNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := server.Client()
	server.Close() // connection refused from here on

	payload, _ := BuildFlatPayload(FileSelection{
		MemoryHandle("a.txt", "", []byte("x")),
	}, "")

	executor := NewExecutor(client, server.URL, "s", nil)
	err := executor.Do(context.Background(), payload, nil)

	var netErr *api.NetworkError
	if !errors.As(err, &netErr) {
		t.Errorf("Do() error = %v, want NetworkError", err)
	}
}

func TestExecutorProgressMonotonicAndTerminal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	selection := FileSelection{
		MemoryHandle("a.bin", "", make([]byte, 64*1024)),
		MemoryHandle("b.bin", "", make([]byte, 64*1024)),
		MemoryHandle("c.bin", "", make([]byte, 64*1024)),
	}
	payload, err := BuildFlatPayload(selection, "")
	if err != nil {
		t.Fatal(err)
	}

	var percents []float64
	var indices []int
	err = testExecutor(t, server).Do(context.Background(), payload, func(percent float64, itemIndex int) {
		percents = append(percents, percent)
		indices = append(indices, itemIndex)
	})
	if err != nil {
		t.Fatalf("Do() error = %v, want nil", err)
	}

	if len(percents) == 0 {
		t.Fatal("no progress events received")
	}
	for i := 1; i < len(percents); i++ {
		if percents[i] < percents[i-1] {
			t.Fatalf("progress not monotonic: %f after %f", percents[i], percents[i-1])
		}
	}
	if last := percents[len(percents)-1]; last != 100 {
		t.Errorf("final percent = %f, want exactly 100", last)
	}
	for i, p := range percents {
		want := int(p / 100 * float64(len(selection)))
		if indices[i] != want {
			t.Errorf("itemIndex at %.2f%% = %d, want floor(percent/100*total) = %d", p, indices[i], want)
		}
		if indices[i] > len(selection) {
			t.Errorf("itemIndex %d exceeds total items %d", indices[i], len(selection))
		}
	}
	// 100 is reached only at the terminal event.
	for _, p := range percents[:len(percents)-1] {
		if p == 100 && percents[len(percents)-1] != 100 {
			t.Error("percent reached 100 before the terminal event")
		}
	}
}

func TestEncodePayloadFieldOrder(t *testing.T) {
	payload, err := BuildFolderPayload(FileSelection{
		MemoryHandle("a.txt", "proj/a.txt", []byte("data")),
	}, "9")
	if err != nil {
		t.Fatal(err)
	}

	body, contentType, err := encodePayload(payload)
	if err != nil {
		t.Fatalf("encodePayload() error = %v", err)
	}
	if contentType == "" {
		t.Error("empty content type")
	}
	if body.Len() == 0 {
		t.Error("empty body")
	}
}

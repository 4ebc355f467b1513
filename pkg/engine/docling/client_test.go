package docling_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arcline/textsweep/pkg/engine"
	"github.com/arcline/textsweep/pkg/engine/docling"

	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scan.png")
	require.NoError(t, os.WriteFile(path, []byte("image-bytes"), 0o644))

	return path
}

func TestExtractText(t *testing.T) {
	var polls atomic.Int32

	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/convert/file/async", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		_, header, err := r.FormFile("files")
		require.NoError(t, err)
		require.Equal(t, "scan.png", header.Filename)

		w.Write([]byte(`{"task_id": "task-1"}`))
	})

	mux.HandleFunc("GET /v1/status/poll/task-1", func(w http.ResponseWriter, r *http.Request) {
		if polls.Add(1) == 1 {
			w.Write([]byte(`{"task_id": "task-1", "task_status": "started"}`))
			return
		}

		w.Write([]byte(`{"task_id": "task-1", "task_status": "success"}`))
	})

	mux.HandleFunc("GET /v1/result/task-1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"task_id": "task-1", "task_status": "success", "document": {"filename": "scan.png", "md_content": "# Heading\n\nBody text"}}`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	c, err := docling.New(server.URL, docling.WithPollInterval(time.Millisecond))
	require.NoError(t, err)

	text, err := c.ExtractText(context.Background(), writeImage(t))
	require.NoError(t, err)
	require.Equal(t, "# Heading\n\nBody text", text)

	require.GreaterOrEqual(t, polls.Load(), int32(2))
}

func TestExtractTextPrefersPlainText(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/convert/file/async", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"task_id": "task-2"}`))
	})

	mux.HandleFunc("GET /v1/status/poll/task-2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"task_id": "task-2", "task_status": "success"}`))
	})

	mux.HandleFunc("GET /v1/result/task-2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"task_id": "task-2", "task_status": "success", "document": {"text_content": "plain", "md_content": "markdown"}}`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	c, err := docling.New(server.URL, docling.WithPollInterval(time.Millisecond))
	require.NoError(t, err)

	text, err := c.ExtractText(context.Background(), writeImage(t))
	require.NoError(t, err)
	require.Equal(t, "plain", text)
}

func TestExtractTextTaskFailure(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/convert/file/async", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"task_id": "task-3"}`))
	})

	mux.HandleFunc("GET /v1/status/poll/task-3", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"task_id": "task-3", "task_status": "failure"}`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	c, err := docling.New(server.URL, docling.WithPollInterval(time.Millisecond))
	require.NoError(t, err)

	_, err = c.ExtractText(context.Background(), writeImage(t))
	require.Error(t, err)

	var extractionErr *engine.ExtractionError
	require.True(t, errors.As(err, &extractionErr))
}

func TestExtractTextMissingFile(t *testing.T) {
	c, err := docling.New("http://localhost:5001")
	require.NoError(t, err)

	_, err = c.ExtractText(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)

	var extractionErr *engine.ExtractionError
	require.True(t, errors.As(err, &extractionErr))
}

func TestNewRequiresURL(t *testing.T) {
	_, err := docling.New("")
	require.Error(t, err)
}

func TestValidateInvalidURL(t *testing.T) {
	c, err := docling.New("::invalid::")
	require.NoError(t, err)

	err = c.Validate(context.Background())
	require.Error(t, err)

	var configErr *engine.ConfigurationError
	require.True(t, errors.As(err, &configErr))
}

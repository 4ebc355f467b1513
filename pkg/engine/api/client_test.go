package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/arcline/textsweep/pkg/engine"
	"github.com/arcline/textsweep/pkg/engine/api"

	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scan.jpg")
	require.NoError(t, os.WriteFile(path, []byte("image-bytes"), 0o644))

	return path
}

func TestExtractText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		require.Equal(t, "scan.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "extracted content"}`))
	}))

	defer server.Close()

	c, err := api.New(server.URL, api.WithToken("secret"))
	require.NoError(t, err)

	text, err := c.ExtractText(context.Background(), writeImage(t))
	require.NoError(t, err)
	require.Equal(t, "extracted content", text)
}

func TestExtractTextServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "processing failed", http.StatusUnprocessableEntity)
	}))

	defer server.Close()

	c, err := api.New(server.URL, api.WithToken("secret"))
	require.NoError(t, err)

	_, err = c.ExtractText(context.Background(), writeImage(t))
	require.Error(t, err)

	var extractionErr *engine.ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	require.Contains(t, err.Error(), "processing failed")
}

func TestExtractTextMissingFile(t *testing.T) {
	c, err := api.New("https://extract.example.com", api.WithToken("secret"))
	require.NoError(t, err)

	_, err = c.ExtractText(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"))
	require.Error(t, err)

	var extractionErr *engine.ExtractionError
	require.True(t, errors.As(err, &extractionErr))
}

func TestNewRequiresURL(t *testing.T) {
	_, err := api.New("")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	c, err := api.New("https://extract.example.com", api.WithToken("secret"))
	require.NoError(t, err)
	require.NoError(t, c.Validate(context.Background()))
}

func TestValidateMissingToken(t *testing.T) {
	c, err := api.New("https://extract.example.com")
	require.NoError(t, err)

	err = c.Validate(context.Background())
	require.Error(t, err)

	var configErr *engine.ConfigurationError
	require.True(t, errors.As(err, &configErr))
}

func TestValidateInvalidURL(t *testing.T) {
	c, err := api.New("not-a-url", api.WithToken("secret"))
	require.NoError(t, err)

	err = c.Validate(context.Background())
	require.Error(t, err)

	var configErr *engine.ConfigurationError
	require.True(t, errors.As(err, &configErr))
}

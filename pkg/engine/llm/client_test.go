package llm_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/arcline/textsweep/pkg/engine"
	"github.com/arcline/textsweep/pkg/engine/llm"

	"github.com/stretchr/testify/require"
)

func TestNewRequiresModel(t *testing.T) {
	_, err := llm.New("")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	c, err := llm.New("gpt-4o-mini")
	require.NoError(t, err)

	require.NoError(t, c.Validate(context.Background()))
}

func TestExtractText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "cmpl-1",
			"object": "chat.completion",
			"choices": [
				{
					"index": 0,
					"finish_reason": "stop",
					"message": {"role": "assistant", "content": "transcribed text"}
				}
			]
		}`))
	}))

	defer server.Close()

	c, err := llm.New("gpt-4o-mini", llm.WithURL(server.URL), llm.WithToken("secret"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "scan.png")
	require.NoError(t, os.WriteFile(path, []byte("image-bytes"), 0o644))

	text, err := c.ExtractText(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "transcribed text", text)
}

func TestExtractTextUnsupportedType(t *testing.T) {
	c, err := llm.New("gpt-4o-mini")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "scan.tiff")
	require.NoError(t, os.WriteFile(path, []byte("image-bytes"), 0o644))

	_, err = c.ExtractText(context.Background(), path)
	require.Error(t, err)

	var extractionErr *engine.ExtractionError
	require.True(t, errors.As(err, &extractionErr))
}

func TestExtractTextMissingFile(t *testing.T) {
	c, err := llm.New("gpt-4o-mini")
	require.NoError(t, err)

	_, err = c.ExtractText(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)

	var extractionErr *engine.ExtractionError
	require.True(t, errors.As(err, &extractionErr))
}

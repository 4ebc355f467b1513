package factory_test

import (
	"testing"

	"github.com/arcline/textsweep/pkg/engine"
	"github.com/arcline/textsweep/pkg/engine/factory"

	"github.com/stretchr/testify/require"
)

func TestSupportedTypes(t *testing.T) {
	require.Equal(t, []string{"api", "docling", "llm", "passthrough", "tesseract"}, factory.SupportedTypes())
}

func TestNewPassthrough(t *testing.T) {
	e, err := factory.New("passthrough", engine.PassthroughConfig{})
	require.NoError(t, err)
	require.NotNil(t, e)
}

func TestNewDocling(t *testing.T) {
	e, err := factory.New("docling", engine.DoclingConfig{URL: "http://localhost:5001"})
	require.NoError(t, err)
	require.NotNil(t, e)
}

func TestNewAPI(t *testing.T) {
	e, err := factory.New("api", engine.APIConfig{URL: "https://extract.example.com", Token: "secret"})
	require.NoError(t, err)
	require.NotNil(t, e)
}

func TestNewLLM(t *testing.T) {
	e, err := factory.New("llm", engine.LLMConfig{Model: "gpt-4o-mini"})
	require.NoError(t, err)
	require.NotNil(t, e)
}

func TestNewUnsupportedType(t *testing.T) {
	_, err := factory.New("carrier-pigeon", engine.PassthroughConfig{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "carrier-pigeon")
	require.Contains(t, err.Error(), "passthrough")
	require.Contains(t, err.Error(), "docling")
}

func TestNewConfigMismatch(t *testing.T) {
	_, err := factory.New("docling", engine.LLMConfig{Model: "gpt-4o-mini"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "engine.DoclingConfig")

	_, err = factory.New("llm", engine.DoclingConfig{URL: "http://localhost:5001"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "engine.LLMConfig")

	_, err = factory.New("api", engine.PassthroughConfig{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "engine.APIConfig")

	_, err = factory.New("passthrough", engine.APIConfig{URL: "https://extract.example.com"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "engine.PassthroughConfig")

	_, err = factory.New("tesseract", engine.PassthroughConfig{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "engine.TesseractConfig")
}

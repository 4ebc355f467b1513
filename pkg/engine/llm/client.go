package llm

import (
	"context"
	"encoding/base64"
	"errors"
	neturl "net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcline/textsweep/pkg/engine"

	"github.com/openai/openai-go/v3"
)

var _ engine.Engine = &Client{}

const systemPrompt = "You are an OCR engine. Transcribe all text visible in the image. Return the text only, without commentary."

// Client extracts text by sending the image to an OpenAI-compatible
// chat completion endpoint as a vision request.
type Client struct {
	config *Config

	completions openai.ChatCompletionService
}

func New(model string, options ...Option) (*Client, error) {
	if model == "" {
		return nil, errors.New("invalid model")
	}

	cfg := &Config{
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Client{
		config: cfg,

		completions: openai.NewChatCompletionService(cfg.Options()...),
	}, nil
}

func (c *Client) Validate(ctx context.Context) error {
	if c.config.model == "" {
		return &engine.ConfigurationError{Engine: "llm", Err: errors.New("model is required")}
	}

	if c.config.url != "" {
		u, err := neturl.Parse(c.config.url)

		if err != nil || u.Scheme == "" || u.Host == "" {
			return &engine.ConfigurationError{Engine: "llm", Err: errors.New("invalid url: " + c.config.url)}
		}
	}

	return nil
}

func (c *Client) ExtractText(ctx context.Context, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)

	if err != nil {
		return "", &engine.ExtractionError{Path: imagePath, Err: err}
	}

	mime := detectMime(imagePath)

	if mime == "" {
		return "", &engine.ExtractionError{Path: imagePath, Err: errors.New("unsupported image type")}
	}

	imageURL := openai.ChatCompletionContentPartImageImageURLParam{
		URL: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
	}

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart("Extract all text from this image."),
		openai.ImageContentPart(imageURL),
	}

	req := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.config.model),

		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(parts),
		},
	}

	if c.config.temperature != nil {
		req.Temperature = openai.Float(*c.config.temperature)
	}

	if c.config.maxTokens != nil {
		req.MaxTokens = openai.Int(int64(*c.config.maxTokens))
	}

	completion, err := c.completions.New(ctx, req)

	if err != nil {
		return "", &engine.ExtractionError{Path: imagePath, Err: err}
	}

	if len(completion.Choices) == 0 {
		return "", &engine.ExtractionError{Path: imagePath, Err: errors.New("no completion choices")}
	}

	return completion.Choices[0].Message.Content, nil
}

func detectMime(imagePath string) string {
	switch strings.ToLower(filepath.Ext(imagePath)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"

	case ".png":
		return "image/png"

	case ".webp":
		return "image/webp"

	case ".gif":
		return "image/gif"

	default:
		return ""
	}
}

package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	neturl "net/url"
	"os"
	"path/filepath"

	"github.com/arcline/textsweep/pkg/engine"
)

var _ engine.Engine = &Client{}

// Client extracts text through a generic extraction service: the image
// is posted as multipart form data and the response is a JSON document
// carrying the extracted text.
type Client struct {
	client *http.Client

	url   string
	token string
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" {
		return nil, errors.New("invalid url")
	}

	c := &Client{
		client: http.DefaultClient,

		url: url,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Validate(ctx context.Context) error {
	u, err := neturl.Parse(c.url)

	if err != nil || u.Scheme == "" || u.Host == "" {
		return &engine.ConfigurationError{Engine: "api", Err: errors.New("invalid url: " + c.url)}
	}

	if c.token == "" {
		return &engine.ConfigurationError{Engine: "api", Err: errors.New("token is required")}
	}

	return nil
}

func (c *Client) ExtractText(ctx context.Context, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)

	if err != nil {
		return "", &engine.ExtractionError{Path: imagePath, Err: err}
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	file, err := w.CreateFormFile("file", filepath.Base(imagePath))

	if err != nil {
		return "", &engine.ExtractionError{Path: imagePath, Err: err}
	}

	if _, err := file.Write(data); err != nil {
		return "", &engine.ExtractionError{Path: imagePath, Err: err}
	}

	w.Close()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)

	if err != nil {
		return "", &engine.ExtractionError{Path: imagePath, Err: err}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &engine.ExtractionError{Path: imagePath, Err: convertError(resp)}
	}

	var result struct {
		Text string `json:"text"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &engine.ExtractionError{Path: imagePath, Err: err}
	}

	return result.Text, nil
}

// InsecureClient returns an http.Client that skips TLS verification,
// for services behind self-signed certificates.
func InsecureClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	if len(data) == 0 {
		return errors.New(http.StatusText(resp.StatusCode))
	}

	return errors.New(string(data))
}

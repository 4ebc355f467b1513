package docling

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	neturl "net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arcline/textsweep/pkg/engine"
)

var _ engine.Engine = &Client{}

// Client extracts text through a docling-serve instance. Conversion is
// asynchronous on the server side: submit, poll, fetch.
type Client struct {
	client *http.Client

	url   string
	token string

	pollInterval time.Duration
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" {
		return nil, errors.New("invalid url")
	}

	c := &Client{
		client: http.DefaultClient,

		url: url,

		pollInterval: 2 * time.Second,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Validate(ctx context.Context) error {
	u, err := neturl.Parse(c.url)

	if err != nil || u.Scheme == "" || u.Host == "" {
		return &engine.ConfigurationError{Engine: "docling", Err: errors.New("invalid url: " + c.url)}
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

	file, err := w.CreateFormFile("files", filepath.Base(imagePath))

	if err != nil {
		return "", &engine.ExtractionError{Path: imagePath, Err: err}
	}

	if _, err := file.Write(data); err != nil {
		return "", &engine.ExtractionError{Path: imagePath, Err: err}
	}

	w.Close()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.url, "/")+"/v1/convert/file/async", &body)
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

	var convertResult struct {
		TaskID string `json:"task_id"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&convertResult); err != nil {
		return "", &engine.ExtractionError{Path: imagePath, Err: err}
	}

	if err := c.awaitTask(ctx, convertResult.TaskID); err != nil {
		return "", &engine.ExtractionError{Path: imagePath, Err: err}
	}

	text, err := c.readDocument(ctx, convertResult.TaskID)

	if err != nil {
		return "", &engine.ExtractionError{Path: imagePath, Err: err}
	}

	return text, nil
}

func (c *Client) awaitTask(ctx context.Context, taskID string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-time.After(c.pollInterval):
		}

		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.url, "/")+"/v1/status/poll/"+taskID, nil)

		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.client.Do(req)

		if err != nil {
			return err
		}

		var task TaskResult

		err = json.NewDecoder(resp.Body).Decode(&task)
		resp.Body.Close()

		if err != nil {
			return err
		}

		if task.TaskStatus == TaskStatusStarted || task.TaskStatus == TaskStatusPending {
			continue
		}

		if task.TaskStatus == TaskStatusSuccess {
			return nil
		}

		return errors.New("conversion task failed")
	}
}

func (c *Client) readDocument(ctx context.Context, taskID string) (string, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.url, "/")+"/v1/result/"+taskID, nil)

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)

	if err != nil {
		return "", err
	}

	defer resp.Body.Close()

	var task TaskResult

	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return "", err
	}

	if task.TaskStatus != TaskStatusSuccess {
		return "", errors.New("conversion task not successful")
	}

	if task.Document == nil {
		return "", errors.New("no document content")
	}

	if task.Document.Text != "" {
		return task.Document.Text, nil
	}

	if task.Document.Markdown != "" {
		return task.Document.Markdown, nil
	}

	return "", errors.New("no text content")
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	if len(data) == 0 {
		return errors.New(http.StatusText(resp.StatusCode))
	}

	return errors.New(string(data))
}

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

const maxResponseBytes = 8 << 20

// Envelope is the {success, message, data} wrapper used by every API response.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// wireEnvelope keeps success optional so a body without the flag is not read as a failure.
type wireEnvelope[T any] struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Get issues a GET and returns the unwrapped data.
func Get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	return call[T](ctx, c, http.MethodGet, path, query, nil)
}

// Send issues method with a JSON body and returns the unwrapped data.
func Send[T any](ctx context.Context, c *Client, method, path string, payload any) (T, error) {
	return call[T](ctx, c, method, path, nil, payload)
}

// Exec issues method with a JSON body and discards the data.
func Exec(ctx context.Context, c *Client, method, path string, payload any) error {
	_, err := call[json.RawMessage](ctx, c, method, path, nil, payload)
	return err
}

// Upload posts a single file as multipart/form-data.
func Upload[T any](ctx context.Context, c *Client, path, field, filename string, content io.Reader) (T, error) {
	var zero T
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return zero, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return zero, fmt.Errorf("copy upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return zero, fmt.Errorf("close multipart: %w", err)
	}

	req, err := c.NewRequest(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return zero, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return doEnvelope[T](c, req, path)
}

func call[T any](ctx context.Context, c *Client, method, path string, query url.Values, payload any) (T, error) {
	var zero T
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return zero, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := c.NewRequest(ctx, method, path, body)
	if err != nil {
		return zero, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	return doEnvelope[T](c, req, path)
}

func doEnvelope[T any](c *Client, req *http.Request, path string) (T, error) {
	var zero T
	res, err := c.Do(req)
	if err != nil {
		return zero, fmt.Errorf("%w: %s %s: %w", ErrTransport, req.Method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return zero, newStatusError(req.Method, path, res.StatusCode, body)
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return zero, fmt.Errorf("%w: %s %s: %w", ErrTransport, req.Method, path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return zero, nil
	}

	var env wireEnvelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, fmt.Errorf("%w: %s %s: %v", ErrDecode, req.Method, path, err)
	}
	if env.Success != nil && !*env.Success {
		return zero, &Error{Status: res.StatusCode, Message: env.Message, Method: req.Method, Path: path, kind: ErrRejected}
	}
	return env.Data, nil
}

// Package payload submits structured content to the content repository.
package payload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"cfmigrate/internal/logger"
	"cfmigrate/pkg/utils"
)

// Payload errors.
var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrUnknownEntityKind    = errors.New("unknown entity kind")
)

// maxErrorBody caps how much of a failed response is kept for logs.
const maxErrorBody = 200

// Client defines the interface for posting forms to the repository.
type Client interface {
	PostForm(ctx context.Context, target string, form Form) error
}

// Ensure HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)

// HTTPClient posts multipart forms with the session cookie and CSRF token.
type HTTPClient struct {
	httpClient *http.Client
	headers    *utils.HTTPHelper
	strings    *utils.StringHelper
	logger     *logger.Logger
	cookie     string
	csrfToken  string
}

// NewHTTPClient creates a new repository client.
func NewHTTPClient(cookie, csrfToken string, timeout time.Duration, log *logger.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &HTTPClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers:   utils.NewHTTPHelper(),
		strings:   utils.NewStringHelper(),
		logger:    log,
		cookie:    cookie,
		csrfToken: csrfToken,
	}
}

// PostForm sends form as multipart/form-data. Any non-2xx status is an error.
func (c *HTTPClient) PostForm(ctx context.Context, target string, form Form) (err error) {
	body, contentType, err := encodeMultipart(form)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header = c.headers.BuildHeaders(map[string]string{
		"Content-Type": contentType,
		"Cookie":       c.cookie,
		"Csrf-Token":   c.csrfToken,
	})

	if c.logger != nil {
		c.logger.Debug(fmt.Sprintf("POST %s (%d fields)", target, form.Len()))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))

	return fmt.Errorf("%w: %d: %s", ErrUnexpectedStatusCode, resp.StatusCode, c.strings.Preview(string(snippet), maxErrorBody))
}

func encodeMultipart(form Form) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)

	for _, field := range form.Fields() {
		if err := w.WriteField(field.Name, field.Value); err != nil {
			return nil, "", fmt.Errorf("failed to encode field %s: %w", field.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

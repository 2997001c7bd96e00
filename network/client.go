package network

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to the spinner platform over HTTP
// Each call applies a per-attempt timeout and a bounded retry count
type Client struct {
	cfg    *Config
	http   *http.Client
	logger *zap.Logger
	base   string
}

// NewClient creates a client; nil httpClient uses a dedicated default, nil logger discards
func NewClient(cfg *Config, httpClient *http.Client, logger *zap.Logger) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if httpClient == nil {
		httpClient = &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:    cfg,
		http:   httpClient,
		logger: logger.Named("network"),
		base:   strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// FetchValueSet retrieves the ordered prize value set
func (c *Client) FetchValueSet(ctx context.Context) ([]int, error) {
	var res ValuesResponse
	err := c.call(ctx, "values", http.MethodGet, PathValues, nil, c.cfg.ValuesTimeout, c.cfg.ValuesRetries, func(body []byte) error {
		res = ValuesResponse{}
		if err := json.Unmarshal(body, &res); err != nil {
			return fmt.Errorf("%w: %w", ErrParseFailed, err)
		}
		if res.SpinnerValues == nil {
			return fmt.Errorf("%w: missing spinnerValues", ErrParseFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res.SpinnerValues, nil
}

// Spin asks the platform for an authoritative result
func (c *Client) Spin(ctx context.Context) (int, error) {
	var value int
	err := c.call(ctx, "spin", http.MethodPost, PathSpin, spinRequestBody, c.cfg.Timeout, c.cfg.Retries, func(body []byte) error {
		var res SpinResponse
		if err := json.Unmarshal(body, &res); err != nil {
			return fmt.Errorf("%w: %w", ErrParseFailed, err)
		}
		if res.SpinnerValue == nil {
			return fmt.Errorf("%w: missing spinnerValue", ErrParseFailed)
		}
		value = *res.SpinnerValue
		return nil
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}

// call runs up to retries+1 attempts, stopping early when ctx ends
func (c *Client) call(ctx context.Context, op, method, path string, body []byte, timeout time.Duration, retries int, decode func([]byte) error) error {
	url := c.base + path
	if retries < 0 {
		retries = 0
	}
	reqID := uuid.NewString()

	var (
		lastErr    error
		lastStatus int
		attempts   int
	)
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 && c.cfg.RetryBackoff > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(c.cfg.RetryBackoff):
			}
		}
		if ctx.Err() != nil {
			if lastErr == nil {
				lastErr = fmt.Errorf("%w: %w", ErrFetchFailed, ctx.Err())
			}
			break
		}

		attempts++
		start := time.Now()
		respBody, status, err := c.attempt(ctx, method, url, body, timeout, reqID)
		if err == nil {
			err = decode(respBody)
		}
		if err == nil {
			c.logger.Debug("request ok",
				zap.String("op", op),
				zap.String("request_id", reqID),
				zap.Int("attempt", attempts),
				zap.Duration("latency", time.Since(start)),
			)
			return nil
		}

		lastErr, lastStatus = err, status
		c.logger.Warn("request attempt failed",
			zap.String("op", op),
			zap.String("method", method),
			zap.String("url", url),
			zap.String("request_id", reqID),
			zap.Int("attempt", attempts),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	return &RequestError{
		Op:       op,
		Method:   method,
		URL:      url,
		Status:   lastStatus,
		Attempts: attempts,
		Err:      lastErr,
	}
}

// attempt performs one HTTP exchange and returns the raw body of a 2xx response
func (c *Client) attempt(ctx context.Context, method, url string, body []byte, timeout time.Duration, reqID string) ([]byte, int, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.CopyN(io.Discard, resp.Body, 1024)
		return nil, resp.StatusCode, fmt.Errorf("%w: http status %d", ErrFetchFailed, resp.StatusCode)
	}

	limit := c.cfg.MaxBodySize
	if limit <= 0 {
		limit = DefaultConfig().MaxBodySize
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read body: %w", ErrFetchFailed, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, resp.StatusCode, fmt.Errorf("%w: empty response", ErrParseFailed)
	}
	return data, resp.StatusCode, nil
}

package l1client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	. "github.com/constellationnetwork/metagraph-go"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// HttpClient performs JSON requests against a single L1 base URL and
// normalizes every failure mode into *constellation.NetworkError. It holds
// no per-call state, so one instance is safe for concurrent use.
type HttpClient struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

func NewHttpClient(baseURL string, timeout time.Duration) *HttpClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &HttpClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: timeout,
		client:  &http.Client{},
	}
}

func (c *HttpClient) Get(path string, target any, options *RequestOptions) (err error) {
	return c.request(http.MethodGet, path, nil, target, options)
}

func (c *HttpClient) Post(path string, body any, target any, options *RequestOptions) (err error) {
	return c.request(http.MethodPost, path, body, target, options)
}

func (c *HttpClient) request(method, path string, body, target any, options *RequestOptions) (err error) {
	timeout := c.timeout
	if options != nil && options.Timeout > 0 {
		timeout = options.Timeout
	}

	var reader io.Reader
	if body != nil {
		jsn, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return NewNetworkError(fmt.Sprintf("failed to marshal request body: %v", marshalErr), 0, "")
		}
		reader = bytes.NewReader(jsn)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err2 := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err2 != nil {
		return NewNetworkError(err2.Error(), 0, "")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if options != nil {
		for k, v := range options.Headers {
			req.Header.Set(k, v)
		}
	}

	rsp, err2 := c.client.Do(req)
	if err2 != nil {
		if isTimeout(err2) {
			return NewNetworkError(fmt.Sprintf("Request timeout after %gs", timeout.Seconds()), 0, "")
		}
		return NewNetworkError(fmt.Sprintf("Network error: %v", err2), 0, "")
	}
	defer func() {
		_ = rsp.Body.Close()
	}()

	// best effort: an unreadable body still yields a status-coded error below
	out, _ := io.ReadAll(rsp.Body)

	if rsp.StatusCode < 200 || rsp.StatusCode >= 300 {
		return NewNetworkError(
			fmt.Sprintf("HTTP %d: %s", rsp.StatusCode, http.StatusText(rsp.StatusCode)),
			rsp.StatusCode,
			string(out),
		)
	}

	if target == nil || len(out) == 0 {
		return
	}

	if !gjson.ValidBytes(out) {
		// nodes occasionally answer a success status with plain text
		switch v := target.(type) {
		case *string:
			*v = string(out)
			return
		case *any:
			*v = string(out)
			return
		}
		return NewNetworkError("failed to unmarshal response: not json", 0, string(out))
	}

	if err2 = json.Unmarshal(out, target); err2 != nil {
		return NewNetworkError(fmt.Sprintf("failed to unmarshal response: %v", err2), 0, string(out))
	}

	return
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	if errors.As(err, &t) && t.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func first(opts []*RequestOptions) *RequestOptions {
	if len(opts) > 0 {
		return opts[0]
	}
	return nil
}

package relayclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"postman-backend/internal/model/entity"

	"github.com/rs/zerolog"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxBodyBytes = 10 << 20
	userAgent           = "postman-backend-relay/1.0"
)

// Config holds the configuration for the relay client
type Config struct {
	Timeout      time.Duration // whole-call ceiling (default 30s)
	MaxBodyBytes int64         // response bodies above this fail the call (default 10 MiB)
}

// Client performs outbound calls against arbitrary target servers. It is safe
// for concurrent use.
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}
}

// Do performs call and always returns an Outcome. Any HTTP status counts as a
// response; only transport failures set Outcome.Err.
func (c *Client) Do(ctx context.Context, call Call) Outcome {
	log := zerolog.Ctx(ctx)

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := c.newRequest(ctx, call)
	if err != nil {
		return failure(&TransportError{Method: call.Method, URL: call.URL, Err: err}, 0)
	}

	log.Debug().Str("method", call.Method).Str("url", req.URL.String()).Msg("relaying request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		elapsed := time.Since(start)
		return failure(c.transportError(call, 0, err), elapsed)
	}
	defer resp.Body.Close()

	body, err := c.readBody(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		return failure(c.transportError(call, resp.StatusCode, err), elapsed)
	}

	log.Debug().
		Str("method", call.Method).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("relay response received")

	return Outcome{
		StatusCode: resp.StatusCode,
		Body:       normalizeBody(body),
		Elapsed:    elapsed,
	}
}

// Forward sends body to target and returns the upstream response verbatim.
func (c *Client) Forward(ctx context.Context, method, target string, body []byte) (*ForwardResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var bodyReader io.Reader
	if len(body) > 0 {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(Call{Method: method, URL: target}, 0, err)
	}
	defer resp.Body.Close()

	respBody, err := c.readBody(resp.Body)
	if err != nil {
		return nil, c.transportError(Call{Method: method, URL: target}, resp.StatusCode, err)
	}

	return &ForwardResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, call Call) (*http.Request, error) {
	if err := checkTarget(call.URL); err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if !call.Body.IsNull() {
		bodyReader = bytes.NewReader(call.Body.Raw())
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, call.URL, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	for k, v := range call.Headers {
		req.Header.Set(k, v)
	}
	if bodyReader != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if host := req.Header.Get("Host"); host != "" {
		req.Host = host
	}
	return req, nil
}

// ApplyParams merges params into the query of rawURL, replacing keys already present.
func ApplyParams(rawURL string, params map[string]string) (string, error) {
	if err := checkTarget(rawURL); err != nil {
		return "", err
	}
	if len(params) == 0 {
		return rawURL, nil
	}
	target, _ := url.Parse(rawURL)
	query := target.Query()
	for k, v := range params {
		query.Set(k, v)
	}
	target.RawQuery = query.Encode()
	return target.String(), nil
}

func checkTarget(rawURL string) error {
	target, err := url.Parse(rawURL)
	if err != nil || target.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	return nil
}

func (c *Client) readBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, c.config.MaxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > c.config.MaxBodyBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, c.config.MaxBodyBytes)
	}
	return body, nil
}

func (c *Client) transportError(call Call, status int, err error) *TransportError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		err = timeoutError(err)
	}
	return &TransportError{Method: call.Method, URL: call.URL, StatusCode: status, Err: err}
}

// failure builds the outcome stored for a call that got no usable response.
func failure(err *TransportError, elapsed time.Duration) Outcome {
	status := err.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return Outcome{
		StatusCode: status,
		Body:       entity.MustJSONValue(map[string]string{"error": err.Error()}),
		Elapsed:    elapsed,
		Err:        err,
	}
}

// normalizeBody keeps JSON bodies as documents and stores anything else as a
// JSON string. An empty body is absent.
func normalizeBody(body []byte) entity.JSONValue {
	if len(bytes.TrimSpace(body)) == 0 {
		return entity.JSONValue{}
	}
	if v := entity.RawJSONValue(body); !v.IsNull() {
		return v
	}
	if strings.TrimSpace(string(body)) == "null" {
		return entity.JSONValue{}
	}
	return entity.MustJSONValue(string(body))
}

// Close releases idle connections.
func (c *Client) Close() {
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}

// Package http implements the request engine shared by every CRM API call.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/remp-client/internal/constants"
	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

// Client sends requests to one server with one set of base headers.
// The base headers are computed once in NewClient and never change.
type Client struct {
	baseURL      string
	token        string
	referer      string
	userAgent    string
	encoding     remp.Encoding
	headers      http.Header
	httpClient   *retryablehttp.Client
	logger       remp.Logger
	debug        bool
	interceptors *remp.InterceptorChain

	baseHTTPClient *http.Client
	timeout        time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for verbose echo and transport diagnostics.
func WithLogger(logger remp.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables the verbose request/response echo.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithReferer sets the Referer header sent with every request.
func WithReferer(referer string) Option {
	return func(c *Client) {
		c.referer = referer
	}
}

// WithEncoding selects the body encoding for structured params.
func WithEncoding(encoding remp.Encoding) Option {
	return func(c *Client) {
		if encoding != "" {
			c.encoding = encoding
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.baseHTTPClient = httpClient
	}
}

// WithTimeout bounds each request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithInterceptors installs an interceptor chain.
func WithInterceptors(chain *remp.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a request engine for baseURL authenticated with token.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		token:     token,
		userAgent: constants.DefaultUserAgent,
		encoding:  remp.EncodingJSON,
	}

	for _, opt := range opts {
		opt(c)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	if c.baseHTTPClient != nil {
		// Copy so the timeout below stays local; the transport is still shared.
		httpClient := *c.baseHTTPClient
		retryClient.HTTPClient = &httpClient
	}

	if c.timeout > 0 {
		retryClient.HTTPClient.Timeout = c.timeout
	}

	if c.logger != nil {
		retryClient.Logger = &leveledLogger{logger: c.logger}
	}

	c.httpClient = retryClient
	c.headers = c.baseHeaders()

	return c
}

// Request describes one call.
type Request struct {
	Method string
	// Path is appended verbatim to the base URL.
	Path string
	// Params is a pre-serialized string or []byte body, or a structured
	// value encoded according to the client's encoding.
	Params interface{}
	// Headers override the base headers.
	Headers map[string]string
	// AcceptStatus lists non-200 codes that resolve normally.
	AcceptStatus []int
}

// Response is a classified, decoded response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Envelope   remp.Envelope
}

// BaseURL returns the server the client is bound to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Encoding returns the configured body encoding.
func (c *Client) Encoding() remp.Encoding {
	return c.encoding
}

// HTTPClient returns the transport shared with derived clients.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient.HTTPClient
}

// Headers returns a copy of the base headers.
func (c *Client) Headers() http.Header {
	return c.headers.Clone()
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, params interface{}, headers map[string]string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Params: params, Headers: headers})
}

// Post issues a POST request.
func (c *Client) Post(ctx context.Context, path string, params interface{}, headers map[string]string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Params: params, Headers: headers})
}

// Do sends req and classifies the outcome. Any status other than 200 or one
// of req.AcceptStatus fails with an http-failure; a transport error fails
// with a remp-failure; an undecodable body fails with a decode-failure.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	url := c.baseURL + req.Path

	body, err := encodeParams(req.Params, c.encoding)
	if err != nil {
		return nil, fmt.Errorf("encoding params: %w", err)
	}

	intercepted := &remp.Request{
		Method:   req.Method,
		Path:     req.Path,
		Headers:  c.mergeHeaders(req.Headers),
		Body:     body,
		Metadata: make(map[string]interface{}),
	}

	if c.interceptors != nil {
		err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
		if err != nil {
			return nil, err
		}
	}

	c.logRequest(url, intercepted)

	var rawBody interface{}
	if len(intercepted.Body) > 0 {
		rawBody = intercepted.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, url, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = intercepted.Headers

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}

		rempErr := &remp.Error{Kind: remp.KindRempFailure, Method: req.Method, URL: url, Err: err}
		c.afterResponse(ctx, intercepted, &remp.Response{Error: rempErr})

		return nil, rempErr
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && !slices.Contains(req.AcceptStatus, resp.StatusCode) {
		data, _ := io.ReadAll(resp.Body)

		rempErr := &remp.Error{
			Kind:     remp.KindHTTPFailure,
			Method:   req.Method,
			URL:      url,
			Response: &remp.Response{StatusCode: resp.StatusCode, Headers: resp.Header, Body: data},
		}
		c.logResponse(url, resp.StatusCode, data)
		c.afterResponse(ctx, intercepted, &remp.Response{StatusCode: resp.StatusCode, Headers: resp.Header, Body: data, Error: rempErr})

		return nil, rempErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		rempErr := &remp.Error{
			Kind:     remp.KindRempFailure,
			Method:   req.Method,
			URL:      url,
			Response: &remp.Response{StatusCode: resp.StatusCode, Headers: resp.Header, Body: data},
			Err:      err,
		}
		c.afterResponse(ctx, intercepted, &remp.Response{StatusCode: resp.StatusCode, Headers: resp.Header, Body: data, Error: rempErr})

		return nil, rempErr
	}

	c.logResponse(url, resp.StatusCode, data)

	envelope, err := decodeEnvelope(data, resp.StatusCode)
	if err != nil {
		rempErr := &remp.Error{
			Kind:     remp.KindDecodeFailure,
			Method:   req.Method,
			URL:      url,
			Response: &remp.Response{StatusCode: resp.StatusCode, Headers: resp.Header, Body: data},
			Err:      err,
		}
		c.afterResponse(ctx, intercepted, &remp.Response{StatusCode: resp.StatusCode, Headers: resp.Header, Body: data, Error: rempErr})

		return nil, rempErr
	}

	c.afterResponse(ctx, intercepted, &remp.Response{StatusCode: resp.StatusCode, Headers: resp.Header, Body: data})

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
		Envelope:   envelope,
	}, nil
}

func (c *Client) baseHeaders() http.Header {
	headers := make(http.Header)
	headers.Set(constants.HeaderAuthorization, constants.BearerPrefix+c.token)
	headers.Set(constants.HeaderContentType, c.encoding.ContentType())
	headers.Set(constants.HeaderAccept, "application/json")

	if c.userAgent != "" {
		headers.Set(constants.HeaderUserAgent, c.userAgent)
	}

	if c.referer != "" {
		headers.Set(constants.HeaderReferer, c.referer)
	}

	return headers
}

// mergeHeaders overlays extra on a copy of the base headers; extra wins.
func (c *Client) mergeHeaders(extra map[string]string) http.Header {
	headers := c.headers.Clone()
	for key, value := range extra {
		headers.Set(key, value)
	}

	return headers
}

// afterResponse runs the response interceptors. Their errors never change
// the outcome of the call.
func (c *Client) afterResponse(ctx context.Context, req *remp.Request, resp *remp.Response) {
	if c.interceptors == nil {
		return
	}

	err := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil && c.logger != nil {
		c.logger.Warn("response interceptor failed", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
			"error":  err.Error(),
		})
	}
}

func (c *Client) logRequest(url string, req *remp.Request) {
	if !c.debug || c.logger == nil {
		return
	}

	headers := make(map[string]string, len(req.Headers))
	for key := range req.Headers {
		headers[key] = req.Headers.Get(key)
	}

	if auth, ok := headers[constants.HeaderAuthorization]; ok {
		headers[constants.HeaderAuthorization] = maskAuthorization(auth)
	}

	c.logger.Debug("HTTP Request", map[string]interface{}{
		"method":  req.Method,
		"url":     url,
		"headers": headers,
		"body":    string(req.Body),
	})
}

func (c *Client) logResponse(url string, statusCode int, body []byte) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("HTTP Response", map[string]interface{}{
		"url":         url,
		"status_code": statusCode,
		"body":        string(body),
	})
}

func maskAuthorization(value string) string {
	if strings.HasPrefix(value, constants.BearerPrefix) {
		return constants.BearerPrefix + constants.Masked
	}

	return constants.Masked
}

// decodeEnvelope parses a JSON object body. On a 200 anything else is an
// error. An explicitly accepted non-200 status resolves on its code alone,
// so a body that is empty or not a JSON object yields a nil envelope.
func decodeEnvelope(data []byte, statusCode int) (remp.Envelope, error) {
	if statusCode != http.StatusOK && len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var envelope remp.Envelope

	err := json.Unmarshal(data, &envelope)
	if err != nil {
		if statusCode != http.StatusOK {
			return nil, nil
		}

		return nil, fmt.Errorf("parsing response body: %w", err)
	}

	return envelope, nil
}

func neverRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	return false, nil
}

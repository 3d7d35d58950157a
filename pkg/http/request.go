package http

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRequest is returned by Execute when the request is missing its client, method or path.
var ErrInvalidRequest = errors.New("invalid http request")

// RequestMethod represents the HTTP method for the request.
type RequestMethod string

const (
	GET    RequestMethod = "GET"
	POST   RequestMethod = "POST"
	PATCH  RequestMethod = "PATCH"
	PUT    RequestMethod = "PUT"
	DELETE RequestMethod = "DELETE"
)

// Request represents an HTTP request with various configuration options.
type Request struct {
	requestClient      *Client
	requestContext     context.Context
	requestMethod      RequestMethod
	requestPath        string
	requestQueryParams map[string]string
	requestHeaders     map[string]string
	requestBody        any
	requestSuccessResp any
	requestErrorResp   any
	requestBackoff     *BackoffConfig
	requestTimeout     time.Duration
}

// NewHttpClientRequest creates a new Request object with the given client.
func NewHttpClientRequest(client *Client) *Request {
	return &Request{
		requestClient:  client,
		requestContext: context.Background(),
		requestMethod:  GET,
		requestPath:    "/",
	}
}

// WithContext sets the context bounding the request and its retries.
func (r *Request) WithContext(ctx context.Context) *Request {
	r.requestContext = ctx
	return r
}

// WithMethod sets the HTTP method for the request.
func (r *Request) WithMethod(method RequestMethod) *Request {
	r.requestMethod = method
	return r
}

// WithPath sets the path for the request.
func (r *Request) WithPath(path string) *Request {
	r.requestPath = path
	return r
}

// WithQueryParams merges params into the query parameters of the request.
func (r *Request) WithQueryParams(params map[string]string) *Request {
	for key, value := range params {
		r.WithQueryParam(key, value)
	}
	return r
}

// WithQueryParam sets a single query parameter, replacing any previous value.
func (r *Request) WithQueryParam(key, value string) *Request {
	if r.requestQueryParams == nil {
		r.requestQueryParams = map[string]string{}
	}
	r.requestQueryParams[key] = value
	return r
}

// WithHeaders merges headers into the headers of the request.
func (r *Request) WithHeaders(headers map[string]string) *Request {
	for key, value := range headers {
		r.WithHeader(key, value)
	}
	return r
}

// WithHeader sets a single header, replacing any previous value.
func (r *Request) WithHeader(key, value string) *Request {
	if r.requestHeaders == nil {
		r.requestHeaders = map[string]string{}
	}
	r.requestHeaders[key] = value
	return r
}

// WithBody sets the body for the request.
func (r *Request) WithBody(body any) *Request {
	r.requestBody = body
	return r
}

// WithSuccessResp sets the success response for the request.
func (r *Request) WithSuccessResp(successResp any) *Request {
	r.requestSuccessResp = successResp
	return r
}

// WithErrorResp sets the error response for the request.
func (r *Request) WithErrorResp(errorResp any) *Request {
	r.requestErrorResp = errorResp
	return r
}

// WithBackoff sets the backoff configuration for the request, overriding the client's default.
func (r *Request) WithBackoff(backoff *BackoffConfig) *Request {
	r.requestBackoff = backoff
	return r
}

// WithTimeout bounds the whole call, retries and backoff waits included. Zero leaves the context as is.
func (r *Request) WithTimeout(timeout time.Duration) *Request {
	r.requestTimeout = timeout
	return r
}

// Execute sends the request and returns the success response, error response, status code, and error if any.
func (r *Request) Execute() (any, any, int, error) {
	if err := r.validate(); err != nil {
		return nil, nil, 0, err
	}

	ctx := r.requestContext
	if ctx == nil {
		ctx = context.Background()
	}
	if r.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.requestTimeout)
		defer cancel()
	}

	return r.requestClient.doRequestWithBackoff(
		ctx,
		string(r.requestMethod),
		r.requestPath,
		r.requestQueryParams,
		r.requestHeaders,
		r.requestBody,
		r.requestSuccessResp,
		r.requestErrorResp,
		r.requestBackoff,
	)
}

func (r *Request) validate() error {
	switch {
	case r.requestClient == nil:
		return fmt.Errorf("%w: client is required", ErrInvalidRequest)
	case r.requestMethod == "":
		return fmt.Errorf("%w: method is required", ErrInvalidRequest)
	case r.requestPath == "":
		return fmt.Errorf("%w: path is required", ErrInvalidRequest)
	}
	return nil
}

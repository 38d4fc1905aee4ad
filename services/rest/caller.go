package restsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/masomo-rollover/core"
)

const (
	defaultTimeout  = 10 * time.Second
	headerRequestID = "X-Request-ID"
)

// Candidate is one guess at the route of an operation.
type Candidate struct {
	Method rest.Method
	Path   string
	Query  map[string]string
	Body   interface{}
}

func (c Candidate) String() string {
	return string(c.Method) + " " + c.Path
}

func Get(path string, query map[string]string) Candidate {
	return Candidate{Method: rest.Get, Path: path, Query: query}
}

func Post(path string, body interface{}) Candidate {
	return Candidate{Method: rest.Post, Path: path, Body: body}
}

func Put(path string, body interface{}) Candidate {
	return Candidate{Method: rest.Put, Path: path, Body: body}
}

func Patch(path string, body interface{}) Candidate {
	return Candidate{Method: rest.Patch, Path: path, Body: body}
}

// RoutingFailureFunc reports whether err means "this route/verb does not exist here".
type RoutingFailureFunc func(err error) bool

type Options struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration // per attempt
	HTTPClient *http.Client
	// IsRoutingFailure defaults to IsRoutingFailure (404 & 405).
	IsRoutingFailure RoutingFailureFunc
	Logger           core.Logger
}

// Caller submits requests to the backend, resolving routes from ordered candidates.
type Caller struct {
	client    *rest.Client
	baseURL   string
	token     string
	timeout   time.Duration
	isRouting RoutingFailureFunc
	logger    core.Logger
}

func NewCaller(opts Options) (*Caller, error) {
	err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(opts.BaseURL, "BaseURL"),
		vala.IsNotNil(opts.Logger, "Logger"),
	).Check()
	if err != nil {
		return nil, core.NewArgumentError(err.Error())
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	isRouting := opts.IsRoutingFailure
	if isRouting == nil {
		isRouting = IsRoutingFailure
	}
	return &Caller{
		client:    &rest.Client{HTTPClient: httpClient},
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		token:     opts.Token,
		timeout:   timeout,
		isRouting: isRouting,
		logger:    opts.Logger,
	}, nil
}

// Call tries candidates strictly in order and returns the first 2xx response.
// Only routing failures fall through to the next candidate; any other error is returned
// at once. When every candidate fails to route, the last error is returned.
func (c *Caller) Call(ctx context.Context, candidates ...Candidate) (*rest.Response, error) {
	if len(candidates) == 0 {
		return nil, core.NewArgumentError("no endpoint candidates given")
	}

	var lastErr error
	for i, cand := range candidates {
		resp, err := c.do(ctx, cand)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !c.isRouting(err) {
			return nil, err
		}
		if i < len(candidates)-1 {
			c.logger.Debug(fmt.Sprintf("%s: route unavailable, trying %s", cand, candidates[i+1]))
		}
	}
	return nil, lastErr
}

// Get fetches path and decodes the (possibly enveloped) JSON body into out.
func (c *Caller) Get(ctx context.Context, path string, query map[string]string, out interface{}) error {
	resp, err := c.Call(ctx, Get(path, query))
	if err != nil {
		return err
	}
	return DecodeData(resp.Body, out)
}

func (c *Caller) do(ctx context.Context, cand Candidate) (*rest.Response, error) {
	// a cancelled administrator action must not be read as a missing route
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, cand.String())
	}

	req := rest.Request{
		Method:      cand.Method,
		BaseURL:     c.baseURL + cand.Path,
		QueryParams: cand.Query,
		Headers: map[string]string{
			"Accept":        "application/json",
			headerRequestID: uuid.New().String(),
		},
	}
	if c.token != "" {
		req.Headers["Authorization"] = "Bearer " + c.token
	}
	if cand.Body != nil {
		body, err := json.Marshal(cand.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding body of %s", cand)
		}
		req.Body = body
		req.Headers["Content-Type"] = "application/json"
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug(fmt.Sprintf("%s (request %s)", cand, req.Headers[headerRequestID]))
	httpReq, err := rest.BuildRequestObject(req)
	if err != nil {
		return nil, errors.Wrapf(err, "building request %s", cand)
	}
	httpResp, err := c.client.HTTPClient.Do(httpReq.WithContext(attemptCtx))
	if err != nil {
		return nil, errors.Wrap(err, cand.String())
	}
	resp, err := rest.BuildResponse(httpResp)
	if err != nil {
		return nil, errors.Wrapf(err, "reading response of %s", cand)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newHTTPError(cand, resp)
	}
	return resp, nil
}

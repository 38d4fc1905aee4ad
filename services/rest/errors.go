package restsvc

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"
)

// HTTPError is a non-2xx answer from the backend.
type HTTPError struct {
	Method     rest.Method
	Path       string
	StatusCode int
	Message    string
}

func newHTTPError(cand Candidate, resp *rest.Response) *HTTPError {
	return &HTTPError{
		Method:     cand.Method,
		Path:       cand.Path,
		StatusCode: resp.StatusCode,
		Message:    serverMessage(resp.Body, resp.StatusCode),
	}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *HTTPError) UserMessage() string { return e.Message }

// IsRoutingFailure reports 404 Not Found and 405 Method Not Allowed answers.
func IsRoutingFailure(err error) bool {
	code, ok := StatusCode(err)
	return ok && (code == http.StatusNotFound || code == http.StatusMethodNotAllowed)
}

// StatusCode returns the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}

// serverMessage extracts the "message" or "error" field of a JSON body. A body of field
// errors ({"name": "this field is required"}) is joined; anything else falls back to the
// status text.
func serverMessage(body string, code int) string {
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(body), &fields); err == nil && len(fields) > 0 {
		for _, key := range []string{"message", "error"} {
			if msg, ok := fields[key].(string); ok && strings.TrimSpace(msg) != "" {
				return msg
			}
		}
		if errs, ok := fields["error"].(map[string]interface{}); ok {
			fields = errs
		}
		msgs := make([]string, 0, len(fields))
		for fld, v := range fields {
			if msg, ok := v.(string); ok {
				msgs = append(msgs, fld+": "+msg)
			}
		}
		if len(msgs) > 0 {
			sort.Strings(msgs)
			return strings.Join(msgs, "; ")
		}
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return fmt.Sprintf("unexpected status %d", code)
}

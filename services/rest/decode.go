package restsvc

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// envelope covers the wrappers used by the backend: {"data": ...} or {"items": ...},
// with the page count at the top level or under "pagination".
type envelope struct {
	Data       json.RawMessage `json:"data"`
	Items      json.RawMessage `json:"items"`
	TotalPages int             `json:"totalPages"`
	Pagination *struct {
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// DecodeData decodes a single resource, enveloped or bare. An empty body or a null
// payload leaves out untouched and reports false.
func DecodeData(body string, out interface{}) error {
	_, err := decodeData([]byte(body), out)
	return err
}

func decodeData(body []byte, out interface{}) (bool, error) {
	body = bytes.TrimSpace(body)
	if isNull(body) {
		return false, nil
	}
	if body[0] == '{' {
		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return false, errors.Wrap(err, "decoding response")
		}
		if env.Data != nil {
			if isNull(env.Data) {
				return false, nil
			}
			return true, errors.Wrap(json.Unmarshal(env.Data, out), "decoding response data")
		}
	}
	return true, errors.Wrap(json.Unmarshal(body, out), "decoding response")
}

// DecodeOptional is DecodeData reporting whether a payload was present.
func DecodeOptional(body string, out interface{}) (bool, error) {
	return decodeData([]byte(body), out)
}

// DecodeList decodes a list response into out (a pointer to a slice) and returns the
// total page count, 1 when the backend does not report one.
func DecodeList(body string, out interface{}) (int, error) {
	raw := bytes.TrimSpace([]byte(body))
	if isNull(raw) {
		return 1, nil
	}
	if raw[0] == '[' {
		return 1, errors.Wrap(json.Unmarshal(raw, out), "decoding list")
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return 0, errors.Wrap(err, "decoding list")
	}
	list := env.Data
	if isNull(list) {
		list = env.Items
	}
	if !isNull(list) {
		if err := json.Unmarshal(list, out); err != nil {
			return 0, errors.Wrap(err, "decoding list items")
		}
	}

	total := env.TotalPages
	if total == 0 && env.Pagination != nil {
		total = env.Pagination.TotalPages
	}
	if total <= 0 {
		total = 1
	}
	return total, nil
}

package tests

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/masomo-rollover/apps/api/echo"
	"github.com/trezcool/masomo-rollover/core"
	inmemdb "github.com/trezcool/masomo-rollover/storage/database/inmem"
	"github.com/trezcool/masomo-rollover/tests"
)

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newServer(t *testing.T, conf *core.Config) (*echoapi.Server, *inmemdb.DB) {
	db := inmemdb.Open()
	validate, translator := core.NewValidator()
	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:       conf,
		Logger:     testutil.NewLogger(),
		DB:         db,
		Validate:   validate,
		Translator: translator,
	})
	return server, db
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj(): %v", err)
	}
	return data
}

func runHTTPTests(t *testing.T, server http.Handler, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
			server.ServeHTTP(rec, req)

			code := tt.wantCode
			if code == 0 {
				code = http.StatusOK
			}
			body, err := ioutil.ReadAll(rec.Body)
			require.NoError(t, err)
			assert.Equal(t, code, rec.Code, string(body))
			if tt.wantData != nil {
				assert.JSONEq(t, string(tt.wantData), string(body))
			}
		})
	}
}

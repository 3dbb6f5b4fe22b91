package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/schoolhub/console/apps/api/echo"
	"github.com/schoolhub/console/core"
	"github.com/schoolhub/console/core/access"
	"github.com/schoolhub/console/core/store"
	"github.com/schoolhub/console/services/metrics"
	"github.com/schoolhub/console/tests"
)

const (
	appName   = "SchoolHub"
	secretKey = "secret"
)

var (
	errMissingToken = httpErr{Error: "missing or malformed token"}
	errInvalidToken = httpErr{Error: "invalid or expired token"}
	errForbidden    = httpErr{Error: "permission denied"}
)

type testApp struct {
	Server
	store *store.Store
	clock *testutil.ManualClock
}

// setup serves the sample dataset with a page size of 2.
func setup(t *testing.T) testApp {
	t.Helper()
	conf := &core.Config{
		AppName:   appName,
		Env:       "TEST",
		TestMode:  true,
		SecretKey: secretKey,
		PageSize:  2,
	}

	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	require.NoError(t, err)
	s, clock := testutil.NewSeededStore(t, store.WithRecorder(rec))

	srv := NewServer(&Options{
		Conf:           conf,
		DisableReqLogs: true,
		Store:          s,
		Clock:          clock,
		Gatherer:       reg,
	})
	return testApp{Server: srv, store: s, clock: clock}
}

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

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// serve runs one request against app.
func (app testApp) serve(method, path, token string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newAuthRequest(method, path, token, data...)
	app.ServeHTTP(rec, req)
	return rec
}

func (app testApp) token(t *testing.T, role access.Role) string {
	t.Helper()
	return getToken(t, role, app.clock.Now())
}

func getToken(t *testing.T, role access.Role, now time.Time, ttl ...time.Duration) string {
	t.Helper()
	exp := time.Hour
	if len(ttl) > 0 {
		exp = ttl[0]
	}
	token, err := GenerateToken(secretKey, NewClaims(role, appName, exp, now))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj() failed: %v", err)
	}
	return data
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode() failed: %v; body %s", err, rec.Body.String())
	}
	return v
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, tt.wantCode, rec.Code, "body: %s", rec.Body.String())
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app testApp, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		if tt.method == "" {
			tt.method = http.MethodGet
		}
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

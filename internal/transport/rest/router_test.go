package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sandevgo/sejarahbot/internal/config"
	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/sandevgo/sejarahbot/internal/metrics"
	"github.com/sandevgo/sejarahbot/internal/providers/auth"
	"github.com/sandevgo/sejarahbot/internal/service/account"
	"github.com/sandevgo/sejarahbot/internal/service/catalog"
	"github.com/sandevgo/sejarahbot/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccounts struct {
	registerErr error
	verifyErr   error
	resendErr   error
	loginErr    error
	account     core.Account
	token       string
}

func (f *fakeAccounts) Register(_ context.Context, name, email, _ string) (core.Account, error) {
	if f.registerErr != nil {
		return core.Account{}, f.registerErr
	}
	return core.Account{ID: "u-1", Name: name, Email: email}, nil
}

func (f *fakeAccounts) Verify(context.Context, string, string) (string, core.Account, error) {
	return f.token, f.account, f.verifyErr
}

func (f *fakeAccounts) ResendVerification(context.Context, string) error {
	return f.resendErr
}

func (f *fakeAccounts) Login(context.Context, string, string) (string, core.Account, error) {
	return f.token, f.account, f.loginErr
}

type routerEnv struct {
	handler   http.Handler
	accounts  *fakeAccounts
	store     *memory.Store
	metrics   *metrics.Collector
	authority *auth.Authority
}

func newRouterEnv(t *testing.T) routerEnv {
	t.Helper()
	authority, err := auth.NewAuthority(&config.AuthConfig{Secret: "rest-test", Issuer: "sejarahbot", TTL: time.Hour})
	require.NoError(t, err)

	store := memory.NewStore()
	accounts := &fakeAccounts{}
	mc := metrics.NewCollector()
	channel := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rt := NewRouter(&config.HTTPConfig{AllowedOrigins: []string{"*"}}, authority, accounts,
		catalog.NewService(store), channel, mc)

	return routerEnv{handler: rt.Setup(), accounts: accounts, store: store, metrics: mc, authority: authority}
}

func (e routerEnv) do(t *testing.T, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e routerEnv) bearer(t *testing.T) http.Header {
	t.Helper()
	token, err := e.authority.IssueToken(core.Identity{ID: "admin", Email: "admin@example.com"})
	require.NoError(t, err)
	return http.Header{"Authorization": {"Bearer " + token}}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRouter_Health(t *testing.T) {
	env := newRouterEnv(t)
	rec := env.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	env := newRouterEnv(t)
	env.do(t, http.MethodGet, "/health", "", nil)

	rec := env.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sejarah_http_requests_total")
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.HTTPRequests.WithLabelValues("GET", "/health", "200")))
}

func TestRouter_MountsChannel(t *testing.T) {
	env := newRouterEnv(t)
	rec := env.do(t, http.MethodGet, "/ws", "", nil)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	env := newRouterEnv(t)
	rec := env.do(t, http.MethodOptions, "/api/auth/login", "", http.Header{
		"Origin":                        {"http://localhost:3000"},
		"Access-Control-Request-Method": {"POST"},
	})
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuth_Register(t *testing.T) {
	env := newRouterEnv(t)
	rec := env.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"Budi","email":"budi@example.com","password":"rahasia"}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "budi@example.com", body.Account.Email)
	assert.Empty(t, body.Token)
}

func TestAuth_RegisterValidation(t *testing.T) {
	env := newRouterEnv(t)
	rec := env.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"Budi","email":"not-an-email","password":"123"}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	fields := make([]string, 0, len(body.Fields))
	for _, f := range body.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"email", "password"}, fields)
}

func TestAuth_MalformedBody(t *testing.T) {
	env := newRouterEnv(t)
	rec := env.do(t, http.MethodPost, "/api/auth/login", `{"email":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*fakeAccounts)
		path   string
		body   string
		status int
		msg    string
	}{
		{
			name:   "duplicate email",
			setup:  func(f *fakeAccounts) { f.registerErr = core.ErrConflict },
			path:   "/api/auth/register",
			body:   `{"name":"Budi","email":"budi@example.com","password":"rahasia"}`,
			status: http.StatusConflict,
			msg:    "Data sudah terdaftar",
		},
		{
			name:   "unknown email on verify",
			setup:  func(f *fakeAccounts) { f.verifyErr = core.ErrNotFound },
			path:   "/api/auth/verify-email",
			body:   `{"email":"budi@example.com","code":"123456"}`,
			status: http.StatusNotFound,
		},
		{
			name:   "wrong code",
			setup:  func(f *fakeAccounts) { f.verifyErr = account.ErrInvalidCode },
			path:   "/api/auth/verify-email",
			body:   `{"email":"budi@example.com","code":"123456"}`,
			status: http.StatusBadRequest,
			msg:    "Kode verifikasi salah atau sudah kadaluarsa",
		},
		{
			name:   "already verified",
			setup:  func(f *fakeAccounts) { f.verifyErr = account.ErrVerified },
			path:   "/api/auth/verify-email",
			body:   `{"email":"budi@example.com","code":"123456"}`,
			status: http.StatusConflict,
			msg:    "Email sudah terverifikasi sebelumnya",
		},
		{
			name:   "wrong password",
			setup:  func(f *fakeAccounts) { f.loginErr = core.ErrAuth },
			path:   "/api/auth/login",
			body:   `{"email":"budi@example.com","password":"salah"}`,
			status: http.StatusUnauthorized,
		},
		{
			name:   "unverified login",
			setup:  func(f *fakeAccounts) { f.loginErr = core.ErrUnverified },
			path:   "/api/auth/login",
			body:   `{"email":"budi@example.com","password":"rahasia"}`,
			status: http.StatusForbidden,
		},
		{
			name: "storage failure hides detail",
			setup: func(f *fakeAccounts) {
				f.resendErr = &core.RepositoryError{Op: "get account", Err: context.DeadlineExceeded}
			},
			path:   "/api/auth/resend-verification",
			body:   `{"email":"budi@example.com"}`,
			status: http.StatusInternalServerError,
			msg:    "Terjadi kesalahan pada server",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newRouterEnv(t)
			tt.setup(env.accounts)

			rec := env.do(t, http.MethodPost, tt.path, tt.body, nil)
			assert.Equal(t, tt.status, rec.Code)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, decodeError(t, rec).Error)
			}
		})
	}
}

func TestAuth_LoginReturnsToken(t *testing.T) {
	env := newRouterEnv(t)
	env.accounts.token = "signed"
	env.accounts.account = core.Account{ID: "u-1", Email: "budi@example.com", Verified: true}

	rec := env.do(t, http.MethodPost, "/api/auth/login", `{"email":"budi@example.com","password":"rahasia"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "signed", body.Token)
	assert.True(t, body.Account.Verified)
}

func TestCatalog_CreateRequiresToken(t *testing.T) {
	env := newRouterEnv(t)
	rec := env.do(t, http.MethodPost, "/api/events", `{"title":"Perang Dunia II","description":"Konflik global."}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCatalog_CreateAndList(t *testing.T) {
	env := newRouterEnv(t)

	rec := env.do(t, http.MethodPost, "/api/events",
		`{"title":"Perang Dunia II","description":"Konflik global.","period":"1939-1945"}`, env.bearer(t))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/events",
		`{"title":"Perang Dunia II","description":"Lagi."}`, env.bearer(t))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/events", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var events []core.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "1939-1945", events[0].Period)
}

func TestCatalog_CreateFigureValidation(t *testing.T) {
	env := newRouterEnv(t)
	rec := env.do(t, http.MethodPost, "/api/figures", `{"name":"Cleopatra"}`, env.bearer(t))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "description", body.Fields[0].Field)
}

func TestCatalog_EmptyListsAreArrays(t *testing.T) {
	env := newRouterEnv(t)
	rec := env.do(t, http.MethodGet, "/api/figures", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

// Package apitest holds the request/response checks every HTTP front end must pass.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mikey/email-classifier/internal/config"
	"github.com/mikey/email-classifier/internal/core"
	"github.com/mikey/email-classifier/internal/disposable"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// NewService returns a classification service over the default disposable domains
func NewService() *core.ClassificationService {
	set := disposable.NewSet(config.DefaultDisposableDomains, zap.NewNop())
	return core.NewClassificationService(core.NewClassifier(set), zap.NewNop(), 2)
}

// Meta is the API metadata the checks expect
var Meta = config.APIConfig{
	Name:    "Email Verification API",
	Service: "email-verification-api",
	Version: "2.0.0",
}

type exchange struct {
	name       string
	method     string
	target     string
	body       string
	wantStatus int
	wantBody   string
}

var exchanges = []exchange{
	{
		name:       "verify valid",
		method:     http.MethodGet,
		target:     "/verify?email=user@company.org",
		wantStatus: http.StatusOK,
		wantBody:   `{"email":"user@company.org","valid_format":true,"disposable":false,"score":100,"domain":"company.org","message":"Valid email"}`,
	},
	{
		name:       "verify disposable",
		method:     http.MethodGet,
		target:     "/verify?email=test@tempmail.com",
		wantStatus: http.StatusOK,
		wantBody:   `{"email":"test@tempmail.com","valid_format":true,"disposable":true,"score":30,"domain":"tempmail.com","message":"Disposable email detected"}`,
	},
	{
		name:       "verify invalid",
		method:     http.MethodGet,
		target:     "/verify?email=not-an-email",
		wantStatus: http.StatusOK,
		wantBody:   `{"email":"not-an-email","valid_format":false,"disposable":false,"score":0,"domain":null,"error":"Invalid email format"}`,
	},
	{
		name:       "verify uppercase domain",
		method:     http.MethodGet,
		target:     "/verify?email=User%40MAILINATOR.com",
		wantStatus: http.StatusOK,
		wantBody:   `{"email":"User@MAILINATOR.com","valid_format":true,"disposable":true,"score":30,"domain":"mailinator.com","message":"Disposable email detected"}`,
	},
	{
		name:       "verify missing parameter",
		method:     http.MethodGet,
		target:     "/verify",
		wantStatus: http.StatusBadRequest,
		wantBody:   `{"error":"Email parameter required"}`,
	},
	{
		name:       "verify empty parameter",
		method:     http.MethodGet,
		target:     "/verify?email=",
		wantStatus: http.StatusBadRequest,
		wantBody:   `{"error":"Email parameter required"}`,
	},
	{
		name:       "batch array",
		method:     http.MethodPost,
		target:     "/batch",
		body:       `["a@b.com","bad","c@mailinator.com"]`,
		wantStatus: http.StatusOK,
		wantBody: `{"total_emails":3,"processed":3,"results":[
			{"email":"a@b.com","valid_format":true,"disposable":false,"score":100,"domain":"b.com"},
			{"email":"bad","valid_format":false,"disposable":false,"score":0,"domain":null},
			{"email":"c@mailinator.com","valid_format":true,"disposable":true,"score":30,"domain":"mailinator.com"}]}`,
	},
	{
		name:       "batch object with bad entry",
		method:     http.MethodPost,
		target:     "/batch",
		body:       `{"emails":["x@yopmail.com",7]}`,
		wantStatus: http.StatusOK,
		wantBody: `{"total_emails":2,"processed":2,"results":[
			{"email":"x@yopmail.com","valid_format":true,"disposable":true,"score":30,"domain":"yopmail.com"},
			{"email":7,"valid_format":false,"disposable":false,"score":0,"domain":null,"error":"Processing error"}]}`,
	},
	{
		name:       "batch empty",
		method:     http.MethodPost,
		target:     "/batch",
		body:       `[]`,
		wantStatus: http.StatusBadRequest,
		wantBody:   `{"error":"Email list cannot be empty"}`,
	},
	{
		name:       "batch missing body",
		method:     http.MethodPost,
		target:     "/batch",
		wantStatus: http.StatusBadRequest,
		wantBody:   `{"error":"Email list cannot be empty"}`,
	},
	{
		name:       "health",
		method:     http.MethodGet,
		target:     "/health",
		wantStatus: http.StatusOK,
		wantBody:   `{"status":"healthy","service":"email-verification-api"}`,
	},
	{
		name:       "stats",
		method:     http.MethodGet,
		target:     "/stats",
		wantStatus: http.StatusOK,
		wantBody:   `{"total_disposable_domains":12,"api_version":"2.0.0","features":["format_check","disposable_check","scoring"],"rate_limit":"unlimited"}`,
	},
	{
		name:       "domains",
		method:     http.MethodGet,
		target:     "/domains/list",
		wantStatus: http.StatusOK,
		wantBody: `{"count":12,"domains":["10minutemail.com","dispostable.com","fakeinbox.com","getairmail.com",
			"guerrillamail.com","guerrillamail.info","mailinator.com","sharklasers.com","tempmail.com",
			"throwawaymail.com","trashmail.com","yopmail.com"]}`,
	},
}

// Run sends the same requests to handler and checks status codes and JSON bodies
func Run(t *testing.T, handler http.Handler) {
	t.Helper()

	for _, ex := range exchanges {
		t.Run(ex.name, func(t *testing.T) {
			var req *http.Request
			if ex.body != "" {
				req = httptest.NewRequest(ex.method, ex.target, strings.NewReader(ex.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(ex.method, ex.target, nil)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, ex.wantStatus, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
			assert.JSONEq(t, ex.wantBody, rec.Body.String())
		})
	}

	t.Run("index", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"version":"2.0.0"`)
		assert.Contains(t, rec.Body.String(), `"/batch"`)
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/batch", nil)
		req.Header.Set("Origin", "https://example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Less(t, rec.Code, 300)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("cors simple request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://example.com")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

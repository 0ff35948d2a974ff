package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evergreenwebsolutions/onboarding/internal/models"
)

func getSubmissions(ts *testServer, token, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func TestListRequiresSession(t *testing.T) {
	ts := newTestServer(t)

	rec := getSubmissions(ts, "", "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, ts.store.listCalls, "store is never queried without a session")
}

func TestListDisallowedOrigin(t *testing.T) {
	ts := newTestServer(t)

	rec := getSubmissions(ts, testToken(t), "https://evil.example")

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, ts.store.listCalls, "store is never queried for a rejected origin")
}

func TestListAllowedOrigin(t *testing.T) {
	ts := newTestServer(t)
	seedSubmission(t, ts)

	rec := getSubmissions(ts, testToken(t), "http://localhost:3000")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))

	var subs []models.Submission
	require.NoError(t, decodeBody(rec, &subs))
	require.Len(t, subs, 1)
	assert.Equal(t, "Acme", subs[0].ClientName)
	require.Len(t, subs[0].Files, 2)
	assert.Equal(t, "a.png", subs[0].Files[0].Name)
	assert.Equal(t, "b.pdf", subs[0].Files[1].Name)
}

func TestListSameOrigin(t *testing.T) {
	ts := newTestServer(t)

	rec := getSubmissions(ts, testToken(t), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, "[]", rec.Body.String(), "empty store lists as an empty array")
}

func TestListStoreError(t *testing.T) {
	ts := newTestServer(t)
	ts.store.listErr = errors.New("connection refused")

	rec := getSubmissions(ts, testToken(t), "http://localhost:3000")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPreflight(t *testing.T) {
	tests := []struct {
		name       string
		origin     string
		wantStatus int
		wantACAO   string
	}{
		{"allowed origin", "http://localhost:3000", http.StatusNoContent, "http://localhost:3000"},
		{"second allowed origin", "https://evergreenwebsolutions.ca", http.StatusNoContent, "https://evergreenwebsolutions.ca"},
		{"disallowed origin", "https://evil.example", http.StatusForbidden, ""},
		{"no origin", "", http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)

			req := httptest.NewRequest(http.MethodOptions, "/api/submissions", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			ts.router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantACAO, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, "GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
				assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
			}
			assert.Zero(t, ts.store.listCalls, "preflight never touches the store")
		})
	}
}

func seedSubmission(t *testing.T, ts *testServer) {
	t.Helper()
	err := ts.store.Create(context.Background(), &models.Submission{
		ClientName: "Acme",
		Email:      "a@b.com",
		Details:    "hello",
		Files: []models.FileMeta{
			{URL: "https://blob/a.png", Name: "a.png", Type: "image/png", Size: 1, Position: 0},
			{URL: "https://blob/b.pdf", Name: "b.pdf", Type: "application/pdf", Size: 2, Position: 1},
		},
	})
	require.NoError(t, err)
	ts.store.createCalls = 0
}

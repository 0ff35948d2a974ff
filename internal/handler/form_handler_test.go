package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(ts *testServer, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/form", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func TestSubmitValid(t *testing.T) {
	ts := newTestServer(t)

	rec := postForm(ts, testToken(t),
		`{"clientName":"Acme","email":"a@b.com","details":"hello"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, decodeBody(rec, &resp))
	assert.Equal(t, uint(1), resp.ID)

	assert.Equal(t, 1, ts.store.createCalls)
	assert.Equal(t, 1, ts.notifier.Count())
	assert.Equal(t, "Acme", ts.notifier.last.ClientName)
}

func TestSubmitValidWithFiles(t *testing.T) {
	ts := newTestServer(t)

	rec := postForm(ts, testToken(t), `{
		"clientName": "Acme",
		"email": "a@b.com",
		"details": "hello",
		"files": [{"url":"https://x/y.png","name":"y.png","type":"image/png","size":1024}]
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Len(t, ts.store.subs, 1)
	stored := ts.store.subs[0]
	require.Len(t, stored.Files, 1)
	assert.Equal(t, "https://x/y.png", stored.Files[0].URL)
	assert.Equal(t, int64(1024), stored.Files[0].Size)
}

func TestSubmitInvalid(t *testing.T) {
	ts := newTestServer(t)

	rec := postForm(ts, testToken(t),
		`{"clientName":"Acme","email":"not-an-email","details":"x"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Error map[string][]string `json:"error"`
	}
	require.NoError(t, decodeBody(rec, &resp))
	assert.NotEmpty(t, resp.Error["email"])
	assert.Len(t, resp.Error, 1)

	assert.Zero(t, ts.store.createCalls, "invalid submissions are never persisted")
	assert.Zero(t, ts.notifier.Count(), "invalid submissions send no email")
}

func TestSubmitMalformedJSON(t *testing.T) {
	ts := newTestServer(t)

	rec := postForm(ts, testToken(t), `{not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, ts.store.createCalls)
}

func TestSubmitStoreError(t *testing.T) {
	ts := newTestServer(t)
	ts.store.createErr = errors.New("connection refused")

	rec := postForm(ts, testToken(t),
		`{"clientName":"Acme","email":"a@b.com","details":"hello"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, decodeBody(rec, &resp))
	assert.Equal(t, "Server error", resp.Error)
	assert.Zero(t, ts.notifier.Count(), "nothing is enqueued when persistence fails")
}

func TestSubmitUnauthenticated(t *testing.T) {
	ts := newTestServer(t)

	rec := postForm(ts, "",
		`{"clientName":"Acme","email":"a@b.com","details":"hello"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, ts.store.createCalls)
}

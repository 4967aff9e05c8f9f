package resourcetest

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andzheyevskiy/Toolbox/pkg/auth"
)

func do(t *testing.T, method, url, body string, header http.Header) (int, string) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestServer_CRUD(t *testing.T) {
	srv := NewServer(WithCollection("people",
		Item{"name": "a", "age": "3"},
		Item{"name": "b", "age": "4"},
	))
	defer srv.Close()

	status, body := do(t, http.MethodGet, srv.URL+"/people?age=4", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"id": 2, "name": "b", "age": "4"}]`, body)

	status, body = do(t, http.MethodPost, srv.URL+"/people", `{"name": "c"}`, nil)
	assert.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"id": 3, "name": "c"}`, body)

	status, body = do(t, http.MethodPut, srv.URL+"/people/3", `{"name": "d", "id": 99}`, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id": 3, "name": "d"}`, body)

	status, body = do(t, http.MethodDelete, srv.URL+"/people/1", "", nil)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Empty(t, body)

	items := srv.Items("people")
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0]["name"])
	assert.Equal(t, "d", items[1]["name"])

	assert.Len(t, srv.Requests(), 4)
	assert.Equal(t, `{"name": "c"}`, string(srv.Requests()[1].Body))
	assert.Nil(t, srv.Items("nobody"))
}

func TestServer_Errors(t *testing.T) {
	srv := NewServer(WithCollection("people", Item{"name": "a"}))
	defer srv.Close()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown collection", http.MethodGet, "/robots", "", http.StatusNotFound},
		{"unknown item", http.MethodGet, "/people/9", "", http.StatusNotFound},
		{"invalid id", http.MethodDelete, "/people/x", "", http.StatusBadRequest},
		{"invalid body", http.MethodPost, "/people", "{", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, tt.method, srv.URL+tt.path, tt.body, nil)
			assert.Equal(t, tt.status, status)

			var e map[string]string
			require.NoError(t, json.Unmarshal([]byte(body), &e))
			assert.NotEmpty(t, e["error"])
		})
	}
}

func TestServer_JWT(t *testing.T) {
	secret := []byte("shh")
	srv := NewServer(WithJWTSecret(secret), WithCollection("people"))
	defer srv.Close()

	status, _ := do(t, http.MethodGet, srv.URL+"/people", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, http.MethodGet, srv.URL+"/people", "", http.Header{
		"Authorization": {"Bearer nope"},
	})
	assert.Equal(t, http.StatusForbidden, status)

	token, err := auth.NewJWTSigner(secret, "alice", 0).Sign()
	require.NoError(t, err)
	status, body := do(t, http.MethodGet, srv.URL+"/people", "", http.Header{
		"Authorization": {"Bearer " + token},
	})
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, body)
}

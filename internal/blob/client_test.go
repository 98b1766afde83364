package blob

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	pkgerrors "event-registry-service/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{
		BaseURL: srv.URL + "/api",
		Token:   "test-token",
		Timeout: 2 * time.Second,
	}, zaptest.NewLogger(t))
}

func TestClient_Get_Success(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/blob/users/users.json", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":"u1"}]`))
	}))

	data, err := client.Get(context.Background(), "users/users.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"u1"}]`, string(data))
}

func TestClient_Get_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.Get(context.Background(), "users/users.json")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestClient_Get_ServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Get(context.Background(), "users/users.json")
	assert.True(t, pkgerrors.IsStorageUnavailable(err))
}

func TestClient_Get_TransportFailure(t *testing.T) {
	client := NewClient(Config{
		BaseURL: "http://127.0.0.1:1/api",
		Timeout: 200 * time.Millisecond,
	}, zaptest.NewLogger(t))

	_, err := client.Get(context.Background(), "users/users.json")
	assert.True(t, pkgerrors.IsStorageUnavailable(err))
}

func TestClient_Put_Success(t *testing.T) {
	var gotBody string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/blob/users/users.json", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))

	err := client.Put(context.Background(), "users/users.json", []byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, `[]`, gotBody)
}

func TestClient_Put_ServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	err := client.Put(context.Background(), "users/users.json", []byte(`[]`))
	assert.True(t, pkgerrors.IsStorageUnavailable(err))
}

func TestClient_Delete_MissingKeyIsSuccess(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	assert.NoError(t, client.Delete(context.Background(), "users/u1.json"))
}

func TestClient_List(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/list", r.URL.Path)
		assert.Equal(t, "users/", r.URL.Query().Get("prefix"))
		_, _ = w.Write([]byte(`{"blobs":[{"pathname":"users/users.json","size":2}]}`))
	}))

	blobs, err := client.List(context.Background(), "users/")
	require.NoError(t, err)
	require.Len(t, blobs, 1)
	assert.Equal(t, "users/users.json", blobs[0].Pathname)
	assert.Equal(t, int64(2), blobs[0].Size)
}

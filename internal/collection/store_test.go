package collection

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"event-registry-service/internal/blob"
	pkgerrors "event-registry-service/pkg/errors"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// fakeProxy is an in-memory stand-in for the blob proxy.
type fakeProxy struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newFakeProxy() *fakeProxy {
	return &fakeProxy{blobs: make(map[string][]byte)}
}

func (p *fakeProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/api/blob/")

	p.mu.Lock()
	defer p.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		data, ok := p.blobs[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(data)
	case http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		p.blobs[key] = data
	case http.MethodDelete:
		delete(p.blobs, key)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (p *fakeProxy) set(key, content string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.blobs[key] = []byte(content)
}

func newTestStore(t *testing.T) (*Store, *fakeProxy) {
	proxy := newFakeProxy()
	srv := httptest.NewServer(proxy)
	t.Cleanup(srv.Close)

	client := blob.NewClient(blob.Config{BaseURL: srv.URL + "/api"}, zaptest.NewLogger(t))
	return NewStore(client, zaptest.NewLogger(t)), proxy
}

func TestLoad_MissingBlobReturnsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	items, err := Load[item](context.Background(), store, "items/items.json")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestLoad_MalformedContentReturnsEmpty(t *testing.T) {
	store, proxy := newTestStore(t)
	proxy.set("items/items.json", `{"not":"an array"}`)

	items, err := Load[item](context.Background(), store, "items/items.json")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoad_GarbageContentReturnsEmpty(t *testing.T) {
	store, proxy := newTestStore(t)
	proxy.set("items/items.json", `not json at all`)

	items, err := Load[item](context.Background(), store, "items/items.json")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	in := []item{{ID: "a", Name: "first"}, {ID: "b", Name: "second"}}
	require.NoError(t, Save(ctx, store, "items/items.json", in))

	out, err := Load[item](ctx, store, "items/items.json")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSaveLoad_RoundTripEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, Save(ctx, store, "items/items.json", []item{}))

	out, err := Load[item](ctx, store, "items/items.json")
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestSave_NilSliceStoredAsEmptyArray(t *testing.T) {
	store, proxy := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, Save[item](ctx, store, "items/items.json", nil))

	proxy.mu.Lock()
	raw := string(proxy.blobs["items/items.json"])
	proxy.mu.Unlock()
	assert.JSONEq(t, `[]`, raw)
}

func TestLoad_TransportFailure(t *testing.T) {
	client := blob.NewClient(blob.Config{BaseURL: "http://127.0.0.1:1/api"}, zaptest.NewLogger(t))
	store := NewStore(client, zaptest.NewLogger(t))

	_, err := Load[item](context.Background(), store, "items/items.json")
	assert.True(t, pkgerrors.IsStorageUnavailable(err))
}

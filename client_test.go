package texsrc

import (
	"context"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/texsrc/internal/testutil"
)

// newTestClient serves payloads keyed by request path.
func newTestClient(t *testing.T, payloads map[string][]byte, opts ...Option) *Client {
	t.Helper()

	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		data, ok := payloads[r.URL.Path]
		if !ok {
			nethttp.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)

	opts = append([]Option{
		WithEndpoint(srv.URL + "/e-print/"),
		WithHTTPClient(srv.Client()),
	}, opts...)
	client, err := NewClient(opts...)
	require.NoError(t, err)
	return client
}

func TestClient_Fetch(t *testing.T) {
	t.Parallel()

	data := testutil.Gzip(t, testutil.BuildTar(t,
		testutil.File{Name: "refs.bib", Body: []byte("@article{x}")},
		testutil.File{Name: "paper.tex", Body: testutil.Text("paper", 8192)},
	))
	client := newTestClient(t, map[string][]byte{"/e-print/2101.00001": data}, WithChunkSize(512))

	var events []ProgressEvent
	archive, err := client.Fetch(context.Background(), "2101.00001",
		FetchWithProgress(func(ev ProgressEvent) { events = append(events, ev) }),
	)
	require.NoError(t, err)

	assert.Equal(t, KindGzipWrappedTar, archive.Kind())
	require.Equal(t, 2, archive.Len())
	assert.Equal(t, "paper.tex", archive.Entry(0).Name)
	assert.Equal(t, len(data), archive.Size())

	require.GreaterOrEqual(t, len(events), 3)
	n := len(events)
	for _, ev := range events[:n-2] {
		assert.Equal(t, PhaseDownloading, ev.Phase)
		assert.Equal(t, uint64(len(data)), ev.BytesTotal)
		assert.LessOrEqual(t, ev.Percent, 100)
	}
	assert.Equal(t, PhaseExtracting, events[n-2].Phase)
	assert.Equal(t, 100, events[n-2].Percent)
	assert.Equal(t, PhaseDone, events[n-1].Phase)
	assert.Equal(t, 100, events[n-1].Percent)
	assert.Equal(t, uint64(len(data)), events[n-1].BytesLoaded)
}

func TestClient_FetchSendsHeaders(t *testing.T) {
	t.Parallel()

	var (
		mu  sync.Mutex
		got nethttp.Header
	)
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		mu.Lock()
		got = r.Header.Clone()
		mu.Unlock()
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("hello"))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(
		WithEndpoint(srv.URL),
		WithHTTPClient(srv.Client()),
		WithUserAgent("viewer/2"),
		WithHeader("X-Mirror", "eu"),
	)
	require.NoError(t, err)

	archive, err := client.Fetch(context.Background(), "1234.5678")
	require.NoError(t, err)
	assert.Equal(t, KindPlainText, archive.Kind())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "viewer/2", got.Get("User-Agent"))
	assert.Equal(t, "eu", got.Get("X-Mirror"))
	assert.Equal(t, "identity", got.Get("Accept-Encoding"))
}

func TestClient_FetchNotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, nil)

	var events []ProgressEvent
	archive, err := client.Fetch(context.Background(), "0000.00000",
		FetchWithProgress(func(ev ProgressEvent) { events = append(events, ev) }),
	)
	require.Error(t, err)
	assert.Nil(t, archive)
	assert.ErrorIs(t, err, ErrFetch)
	assert.Contains(t, err.Error(), "404")

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, nethttp.StatusNotFound, fe.StatusCode)
	assert.Empty(t, events)
}

func TestClient_FetchInvalidID(t *testing.T) {
	t.Parallel()

	var requests int
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		requests++
		w.WriteHeader(nethttp.StatusOK)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	for _, id := range []string{"", "  "} {
		archive, err := client.Fetch(context.Background(), id)
		require.ErrorIs(t, err, ErrInvalidID)
		assert.Nil(t, archive)
	}
	assert.Zero(t, requests)
}

func TestClient_FetchCanceled(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, map[string][]byte{"/e-print/x": []byte("data")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	archive, err := client.Fetch(ctx, "x")
	require.Error(t, err)
	assert.Nil(t, archive)
	assert.ErrorIs(t, err, ErrFetch)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_FetchTooLarge(t *testing.T) {
	t.Parallel()

	client := newTestClient(t,
		map[string][]byte{"/e-print/big": testutil.Text("big", 4096)},
		WithMaxPayloadSize(1024),
		WithChunkSize(256),
	)

	archive, err := client.Fetch(context.Background(), "big")
	require.ErrorIs(t, err, ErrFetch)
	assert.Nil(t, archive)
}

func TestClient_FetchConcurrent(t *testing.T) {
	t.Parallel()

	payloads := map[string][]byte{
		"/e-print/a": testutil.Gzip(t, []byte("alpha")),
		"/e-print/b": testutil.BuildZip(t, testutil.File{Name: "b.tex", Body: []byte("beta")}),
		"/e-print/c": testutil.BuildTar(t, testutil.File{Name: "c.tex", Body: []byte("gamma")}),
	}
	client := newTestClient(t, payloads)

	want := map[string]string{"a": "alpha", "b": "beta", "c": "gamma"}
	var wg sync.WaitGroup
	for id, content := range want {
		wg.Add(1)
		go func() {
			defer wg.Done()
			archive, err := client.Fetch(context.Background(), id)
			if !assert.NoError(t, err) {
				return
			}
			primary, ok := archive.Primary()
			if assert.True(t, ok) {
				assert.Equal(t, content, primary.Content)
			}
		}()
	}
	wg.Wait()
}

func TestClient_FetchProgressChan(t *testing.T) {
	t.Parallel()

	data := testutil.Gzip(t, testutil.Text("chan", 4096))
	client := newTestClient(t, map[string][]byte{"/e-print/c": data}, WithChunkSize(128))

	events := make(chan ProgressEvent)
	var phases []Phase
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			phases = append(phases, ev.Phase)
		}
	}()

	var callbacks int
	archive, err := client.Fetch(context.Background(), "c",
		FetchWithProgress(func(ProgressEvent) { callbacks++ }),
		FetchWithProgressChan(events),
	)
	close(events)
	<-done
	require.NoError(t, err)
	require.NotNil(t, archive)

	require.GreaterOrEqual(t, len(phases), 3)
	assert.Equal(t, len(phases), callbacks)
	n := len(phases)
	for _, p := range phases[:n-2] {
		assert.Equal(t, PhaseDownloading, p)
	}
	assert.Equal(t, []Phase{PhaseExtracting, PhaseDone}, phases[n-2:])
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Use a tiny base delay so tests finish quickly.
	RetryBaseDelay = 1 * time.Millisecond
}

func TestFetch(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("<html><body>page</body></html>"))
	}))
	defer ts.Close()

	body, err := Fetch(context.Background(), ts.Client(), ts.URL)
	require.NoError(t, err)
	assert.Contains(t, body, "page")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchRetriesRateLimit(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("finally"))
	}))
	defer ts.Close()

	body, err := Fetch(context.Background(), ts.Client(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "finally", body)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetchNonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := Fetch(context.Background(), ts.Client(), ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestFetchPersistentRateLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := Fetch(context.Background(), ts.Client(), ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 429")
}

func TestFetchContextCancelledDuringBackoff(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	RetryBaseDelay = time.Hour
	defer func() { RetryBaseDelay = time.Millisecond }()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Fetch(ctx, ts.Client(), ts.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

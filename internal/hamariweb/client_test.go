package hamariweb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSchedules_SendsBrowserHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	c := NewClient(Options{SchedulesURL: srv.URL, UserAgent: "test-agent"}, nil)
	body, err := c.FetchSchedules(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "<html>ok</html>", body)
	assert.Equal(t, "test-agent", got.Get("User-Agent"))
	assert.Contains(t, got.Get("Accept"), "text/html")
	assert.Equal(t, "no-cache", got.Get("Cache-Control"))
	assert.Equal(t, "en-US,en;q=0.9", got.Get("Accept-Language"))
}

func TestFetchScorecard_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(Options{}, nil)
	_, err := c.FetchScorecard(context.Background(), srv.URL+"/match/1")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}

func TestFetchScorecard_RequiresURL(t *testing.T) {
	c := NewClient(Options{}, nil)
	_, err := c.FetchScorecard(context.Background(), "")
	assert.Error(t, err)
}

func TestFetchScorecard_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(Options{ScorecardTimeout: 50 * time.Millisecond}, nil)
	_, err := c.FetchScorecard(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetchFlag_UsesTemplatedURL(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte("GIF89a"))
	}))
	defer srv.Close()

	c := NewClient(Options{FlagsBaseURL: srv.URL + "/cricket/flags/"}, nil)
	body, err := c.FetchFlag(context.Background(), "182")
	require.NoError(t, err)

	assert.Equal(t, "/cricket/flags/182.gif", path)
	assert.Equal(t, []byte("GIF89a"), body)
}

package flags

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadRange(t *testing.T) {
	fetcher := newStubFetcher(map[string][]byte{"1": gif(1), "2": gif(2), "3": []byte("tiny")})
	r, dir := newTestResolver(t, fetcher, NewMemoryStore(NewMapping()))

	result := r.DownloadRange(context.Background(), 1, 4)
	assert.Equal(t, 2, result.Downloaded)
	assert.Equal(t, 2, result.Unavailable)
	assert.FileExists(t, filepath.Join(dir, "flags", "raw", "1.gif"))

	again := r.DownloadRange(context.Background(), 1, 2)
	assert.Equal(t, 2, again.Kept)
	assert.Equal(t, 0, again.Downloaded)
	assert.Equal(t, 1, fetcher.Calls("1"))
}

func TestResolveAll_DeterministicOrder(t *testing.T) {
	fetcher := newStubFetcher(map[string][]byte{"10": gif(1), "9": gif(2), "11": gif(3)})
	r, _ := newTestResolver(t, fetcher, NewMemoryStore(NewMapping()))

	result := r.ResolveAll(context.Background(), map[string]string{
		"10": "West Indies",
		"9":  "West-Indies",
		"11": "Namibia",
	})
	require.Equal(t, 3, result.Resolved)

	m := r.Snapshot()
	assert.Equal(t, "/static/flags/by-name/west-indies.gif", m.IDToPath["9"])
	assert.Equal(t, "/static/flags/by-name/west-indies-2.gif", m.IDToPath["10"])
}

func TestSyncResult_Summary(t *testing.T) {
	var total SyncResult
	total.Add(SyncResult{Downloaded: 2, Unavailable: 1})
	total.Add(SyncResult{Resolved: 3})
	total.AddErrorf("id %d: %s", 5, "boom")

	assert.Equal(t, "downloaded=2 kept=0 unavailable=1 resolved=3 errors=1", total.Summary())
}

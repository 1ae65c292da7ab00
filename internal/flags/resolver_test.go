package flags

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	mu     sync.Mutex
	images map[string][]byte
	calls  map[string]int
}

func newStubFetcher(images map[string][]byte) *stubFetcher {
	return &stubFetcher{images: images, calls: make(map[string]int)}
}

func (f *stubFetcher) FetchFlag(_ context.Context, flagID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[flagID]++
	data, ok := f.images[flagID]
	if !ok {
		return nil, errors.New("404")
	}
	return data, nil
}

func (f *stubFetcher) Calls(flagID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[flagID]
}

func gif(seed byte) []byte {
	return append([]byte("GIF89a"), bytes.Repeat([]byte{seed}, 200)...)
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func newTestResolver(t *testing.T, fetcher Fetcher, store Store) (*Resolver, string) {
	t.Helper()
	dir := t.TempDir()
	r, err := NewResolver(context.Background(), store, fetcher, dir, nil)
	require.NoError(t, err)
	return r, dir
}

func TestResolve_DownloadsAndCopiesByName(t *testing.T) {
	fetcher := newStubFetcher(map[string][]byte{"182": gif(1)})
	store := NewMemoryStore(NewMapping())
	r, dir := newTestResolver(t, fetcher, store)

	ref, ok := r.Resolve(context.Background(), "182", "Oman")
	require.True(t, ok)
	assert.Equal(t, "/static/flags/by-name/oman.gif", ref)

	assert.FileExists(t, filepath.Join(dir, "flags", "raw", "182.gif"))
	assert.FileExists(t, filepath.Join(dir, "flags", "by-name", "oman.gif"))

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Oman", saved.IDToName["182"])
	assert.Equal(t, ref, saved.IDToPath["182"])
}

func TestResolve_Idempotent(t *testing.T) {
	fetcher := newStubFetcher(map[string][]byte{"7": gif(2)})
	r, dir := newTestResolver(t, fetcher, NewMemoryStore(NewMapping()))

	first, ok := r.Resolve(context.Background(), "7", "Pakistan")
	require.True(t, ok)
	filesAfterFirst := listFiles(t, filepath.Join(dir, "flags", "by-name"))

	second, ok := r.Resolve(context.Background(), "7", "Pakistan")
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, filesAfterFirst, listFiles(t, filepath.Join(dir, "flags", "by-name")))
	assert.Equal(t, 1, fetcher.Calls("7"))
	assert.Len(t, r.Snapshot().IDToPath, 1)
}

func TestResolve_CollidingSlugsGetDistinctFiles(t *testing.T) {
	fetcher := newStubFetcher(map[string][]byte{"1": gif(1), "2": gif(2)})
	r, dir := newTestResolver(t, fetcher, NewMemoryStore(NewMapping()))

	a, ok := r.Resolve(context.Background(), "1", "Sri Lanka")
	require.True(t, ok)
	b, ok := r.Resolve(context.Background(), "2", "Sri-Lanka")
	require.True(t, ok)

	assert.Equal(t, "/static/flags/by-name/sri-lanka.gif", a)
	assert.Equal(t, "/static/flags/by-name/sri-lanka-2.gif", b)
	assert.ElementsMatch(t, []string{"sri-lanka.gif", "sri-lanka-2.gif"}, listFiles(t, filepath.Join(dir, "flags", "by-name")))

	m := r.Snapshot()
	assert.Equal(t, a, m.IDToPath["1"])
	assert.Equal(t, b, m.IDToPath["2"])
}

func TestResolve_TinyPayloadIsUnavailable(t *testing.T) {
	fetcher := newStubFetcher(map[string][]byte{"999": []byte("GIF89a")})
	store := NewMemoryStore(NewMapping())
	r, dir := newTestResolver(t, fetcher, store)

	ref, ok := r.Resolve(context.Background(), "999", "Nowhere")
	assert.False(t, ok)
	assert.Empty(t, ref)
	assert.NoFileExists(t, filepath.Join(dir, "flags", "raw", "999.gif"))
	assert.Equal(t, 0, store.Saves())
}

func TestResolve_FetchFailureIsUnavailable(t *testing.T) {
	r, _ := newTestResolver(t, newStubFetcher(nil), NewMemoryStore(NewMapping()))

	_, ok := r.Resolve(context.Background(), "5", "Team")
	assert.False(t, ok)
	assert.Empty(t, r.Snapshot().IDToPath)
}

func TestResolve_UpdatesNameForExistingPath(t *testing.T) {
	fetcher := newStubFetcher(map[string][]byte{"3": gif(3)})
	store := NewMemoryStore(NewMapping())
	r, _ := newTestResolver(t, fetcher, store)

	ref, ok := r.Resolve(context.Background(), "3", "India")
	require.True(t, ok)
	saves := store.Saves()

	again, ok := r.Resolve(context.Background(), "3", "India Women")
	require.True(t, ok)
	assert.Equal(t, ref, again)
	assert.Equal(t, "India Women", r.Snapshot().IDToName["3"])
	assert.Equal(t, saves+1, store.Saves())

	_, ok = r.Resolve(context.Background(), "3", "")
	require.True(t, ok)
	assert.Equal(t, "India Women", r.Snapshot().IDToName["3"])
	assert.Equal(t, saves+1, store.Saves())
}

func TestResolve_EmptyNameUsesFlagSlug(t *testing.T) {
	r, _ := newTestResolver(t, newStubFetcher(map[string][]byte{"12": gif(4)}), NewMemoryStore(NewMapping()))

	ref, ok := r.Resolve(context.Background(), "12", "")
	require.True(t, ok)
	assert.Equal(t, "/static/flags/by-name/flag-12.gif", ref)
	_, named := r.Snapshot().IDToName["12"]
	assert.False(t, named)
}

func TestResolve_ReusesRawImageOnDisk(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, "flags", "raw")
	require.NoError(t, os.MkdirAll(raw, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(raw, "44.gif"), gif(5), 0o644))

	fetcher := newStubFetcher(nil)
	r, err := NewResolver(context.Background(), NewMemoryStore(NewMapping()), fetcher, dir, nil)
	require.NoError(t, err)

	ref, ok := r.Resolve(context.Background(), "44", "Nepal")
	require.True(t, ok)
	assert.Equal(t, "/static/flags/by-name/nepal.gif", ref)
	assert.Equal(t, 0, fetcher.Calls("44"))
}

func TestNewResolver_DropsStalePaths(t *testing.T) {
	dir := t.TempDir()
	byName := filepath.Join(dir, "flags", "by-name")
	require.NoError(t, os.MkdirAll(byName, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(byName, "kenya.gif"), gif(6), 0o644))

	seed := NewMapping()
	seed.IDToName["10"] = "Kenya"
	seed.IDToPath["10"] = "/static/flags/by-name/kenya.gif"
	seed.IDToName["11"] = "Gone"
	seed.IDToPath["11"] = "/static/flags/by-name/gone.gif"
	store := NewMemoryStore(seed)

	r, err := NewResolver(context.Background(), store, nil, dir, nil)
	require.NoError(t, err)

	m := r.Snapshot()
	assert.Equal(t, map[string]string{"10": "/static/flags/by-name/kenya.gif"}, m.IDToPath)
	assert.Equal(t, "Gone", m.IDToName["11"], "names survive reconciliation")
	assert.Equal(t, 1, store.Saves())

	ref, ok := r.Lookup("10")
	assert.True(t, ok)
	assert.Equal(t, "/static/flags/by-name/kenya.gif", ref)
}

func TestReconcile_AfterFileRemoved(t *testing.T) {
	r, dir := newTestResolver(t, newStubFetcher(map[string][]byte{"8": gif(8)}), NewMemoryStore(NewMapping()))

	_, ok := r.Resolve(context.Background(), "8", "Ireland")
	require.True(t, ok)
	require.NoError(t, os.Remove(filepath.Join(dir, "flags", "by-name", "ireland.gif")))

	_, stillMapped := r.Lookup("8")
	assert.True(t, stillMapped, "lookups never reconcile")

	dropped, err := r.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	_, stillMapped = r.Lookup("8")
	assert.False(t, stillMapped)
}

func TestResolve_ConcurrentCallsShareOneFile(t *testing.T) {
	fetcher := newStubFetcher(map[string][]byte{"20": gif(9)})
	r, dir := newTestResolver(t, fetcher, NewFileStore(filepath.Join(t.TempDir(), "mapping.json")))

	var wg sync.WaitGroup
	refs := make([]string, 16)
	for i := range refs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			refs[i], _ = r.Resolve(context.Background(), "20", "Scotland")
		}(i)
	}
	wg.Wait()

	for _, ref := range refs {
		assert.Equal(t, "/static/flags/by-name/scotland.gif", ref)
	}
	assert.Equal(t, []string{"scotland.gif"}, listFiles(t, filepath.Join(dir, "flags", "by-name")))
	assert.Equal(t, 1, fetcher.Calls("20"))
}

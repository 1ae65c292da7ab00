package flags

import (
	"context"
	"fmt"
	"sort"
	"strconv"
)

// SyncResult tracks counts and errors from a batch flag run.
type SyncResult struct {
	Downloaded  int
	Kept        int
	Unavailable int
	Resolved    int
	Errors      []string
}

// Add merges another SyncResult into this one.
func (r *SyncResult) Add(other SyncResult) {
	r.Downloaded += other.Downloaded
	r.Kept += other.Kept
	r.Unavailable += other.Unavailable
	r.Resolved += other.Resolved
	r.Errors = append(r.Errors, other.Errors...)
}

// AddErrorf records a formatted error message.
func (r *SyncResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the run.
func (r *SyncResult) Summary() string {
	return fmt.Sprintf(
		"downloaded=%d kept=%d unavailable=%d resolved=%d errors=%d",
		r.Downloaded, r.Kept, r.Unavailable, r.Resolved, len(r.Errors),
	)
}

// DownloadRange fetches raw images for every identifier in [from, to].
// Images already on disk are kept as they are.
func (r *Resolver) DownloadRange(ctx context.Context, from, to int) SyncResult {
	var result SyncResult
	for id := from; id <= to; id++ {
		if err := ctx.Err(); err != nil {
			result.AddErrorf("stopped at id %d: %v", id, err)
			break
		}
		r.mu.Lock()
		_, fetched, ok := r.ensureRaw(ctx, strconv.Itoa(id))
		r.mu.Unlock()
		switch {
		case !ok:
			result.Unavailable++
		case fetched:
			result.Downloaded++
		default:
			result.Kept++
		}
	}
	return result
}

// ResolveAll runs Resolve for every id → name pair, in ascending id order so
// slug disambiguation is deterministic across runs.
func (r *Resolver) ResolveAll(ctx context.Context, names map[string]string) SyncResult {
	ids := make([]string, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA != nil || errB != nil {
			return ids[i] < ids[j]
		}
		return a < b
	})

	var result SyncResult
	for _, id := range ids {
		if _, ok := r.Resolve(ctx, id, names[id]); ok {
			result.Resolved++
		} else {
			result.Unavailable++
		}
	}
	return result
}

package flags

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// MinFlagBytes is the smallest payload accepted as a real image. The source
// site answers unknown identifiers with tiny placeholder bodies.
const MinFlagBytes = 100

// URLPrefix is the URL path under which the static directory is served.
const URLPrefix = "/static"

// Fetcher downloads raw flag images by identifier.
type Fetcher interface {
	FetchFlag(ctx context.Context, flagID string) ([]byte, error)
}

// Resolver guarantees a locally cached image exists for a flag identifier and
// owns the in-memory copy of the mapping. All mutations are serialised and
// each one is flushed to the Store.
type Resolver struct {
	mu        sync.Mutex
	store     Store
	fetcher   Fetcher
	staticDir string
	mapping   Mapping
	logger    *slog.Logger
}

// NewResolver loads the mapping from store, creates the flag directories
// under staticDir and drops path entries whose files no longer exist.
func NewResolver(ctx context.Context, store Store, fetcher Fetcher, staticDir string, logger *slog.Logger) (*Resolver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{
		store:     store,
		fetcher:   fetcher,
		staticDir: staticDir,
		logger:    logger,
	}
	for _, dir := range []string{r.rawDir(), r.byNameDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create flag dir: %w", err)
		}
	}

	m, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load flag mapping: %w", err)
	}
	m.ensure()
	r.mapping = m

	if _, err := r.Reconcile(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Resolve returns the local image reference for flagID, downloading and
// copying the image on first use. ok is false when the flag is unavailable;
// that is never an error.
func (r *Resolver) Resolve(ctx context.Context, flagID, teamName string) (string, bool) {
	teamName = strings.TrimSpace(teamName)
	if flagID == "" {
		return "", false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.mapping.IDToPath[flagID]; ok && r.refExists(existing) {
		if teamName != "" && r.mapping.IDToName[flagID] != teamName {
			r.mapping.IDToName[flagID] = teamName
			r.persist(ctx)
		}
		return existing, true
	}

	rawPath, _, ok := r.ensureRaw(ctx, flagID)
	if !ok {
		return "", false
	}

	base := teamName
	if base == "" {
		base = "flag-" + flagID
	}
	slug := Slugify(base)

	file := slug + ".gif"
	reuse := false
	for suffix := 2; fileExists(filepath.Join(r.byNameDir(), file)); suffix++ {
		if r.mapping.IDToPath[flagID] == byNameRef(file) {
			reuse = true
			break
		}
		file = fmt.Sprintf("%s-%d.gif", slug, suffix)
	}

	if !reuse {
		if err := copyFile(rawPath, filepath.Join(r.byNameDir(), file)); err != nil {
			r.logger.Warn("Failed to copy flag image", "flag_id", flagID, "file", file, "error", err)
			return "", false
		}
	}

	ref := byNameRef(file)
	r.mapping.IDToPath[flagID] = ref
	if teamName != "" {
		r.mapping.IDToName[flagID] = teamName
	}
	r.persist(ctx)

	r.logger.Info("Resolved flag", "flag_id", flagID, "team", teamName, "path", ref)
	return ref, true
}

// Lookup returns the mapped local reference for flagID without side effects.
func (r *Resolver) Lookup(flagID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ref, ok := r.mapping.IDToPath[flagID]
	return ref, ok
}

// Reconcile drops id_to_path entries whose files are missing and persists
// the mapping when anything changed. It returns the number of dropped entries.
func (r *Resolver) Reconcile(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id, ref := range r.mapping.IDToPath {
		if !r.refExists(ref) {
			delete(r.mapping.IDToPath, id)
			dropped++
		}
	}
	if dropped == 0 {
		return 0, nil
	}

	r.logger.Info("Dropped stale flag paths", "count", dropped)
	if err := r.store.Save(ctx, r.mapping.Clone()); err != nil {
		return dropped, fmt.Errorf("save flag mapping: %w", err)
	}
	return dropped, nil
}

// Snapshot returns a copy of the current mapping.
func (r *Resolver) Snapshot() Mapping {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mapping.Clone()
}

// ensureRaw makes sure raw/{id}.gif exists. fetched reports whether a
// download happened; ok is false when the flag is unavailable.
func (r *Resolver) ensureRaw(ctx context.Context, flagID string) (rawPath string, fetched, ok bool) {
	dst := filepath.Join(r.rawDir(), flagID+".gif")
	if info, err := os.Stat(dst); err == nil && info.Size() > 0 {
		return dst, false, true
	}
	if r.fetcher == nil {
		return "", false, false
	}

	data, err := r.fetcher.FetchFlag(ctx, flagID)
	if err != nil {
		r.logger.Debug("Flag unavailable", "flag_id", flagID, "error", err)
		return "", false, false
	}
	if len(data) < MinFlagBytes {
		r.logger.Debug("Flag payload too small", "flag_id", flagID, "bytes", len(data))
		return "", false, false
	}

	if err := writeFileAtomic(dst, data); err != nil {
		r.logger.Warn("Failed to store raw flag", "flag_id", flagID, "error", err)
		return "", false, false
	}
	return dst, true, true
}

// persist flushes the mapping. Failures are logged; the previous durable
// copy stays intact.
func (r *Resolver) persist(ctx context.Context) {
	if err := r.store.Save(ctx, r.mapping.Clone()); err != nil {
		r.logger.Error("Failed to save flag mapping", "error", err)
	}
}

func (r *Resolver) rawDir() string    { return filepath.Join(r.staticDir, "flags", "raw") }
func (r *Resolver) byNameDir() string { return filepath.Join(r.staticDir, "flags", "by-name") }

// refExists reports whether the file behind a /static/... reference exists.
func (r *Resolver) refExists(ref string) bool {
	if ref == "" {
		return false
	}
	return fileExists(r.refPath(ref))
}

func (r *Resolver) refPath(ref string) string {
	rel := strings.TrimPrefix(ref, URLPrefix+"/")
	rel = strings.TrimPrefix(rel, "/")
	return filepath.Join(r.staticDir, filepath.FromSlash(rel))
}

func byNameRef(file string) string {
	return path.Join(URLPrefix, "flags", "by-name", file)
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}

func writeFileAtomic(dst string, data []byte) error {
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		return errors.Join(err, os.Remove(tmp))
	}
	return nil
}

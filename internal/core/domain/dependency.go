package domain

import (
	"maps"
	"path/filepath"
	"slices"
	"time"
)

// Dependencies tracks the inputs that decide whether a batch is up to date.
// Files form an insertion-ordered set, values an ordered sequence; both only grow.
type Dependencies struct {
	files     []InternedString
	seen      map[InternedString]struct{}
	values    []any
	lastMtime time.Time
	cacheKey  string
}

// NewDependencies returns an empty descriptor.
func NewDependencies() *Dependencies {
	return &Dependencies{seen: make(map[InternedString]struct{})}
}

// AddFiles merges paths into the tracked file set. Duplicates are ignored.
func (d *Dependencies) AddFiles(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		key := NewInternedString(filepath.Clean(p))
		if _, ok := d.seen[key]; ok {
			continue
		}
		d.seen[key] = struct{}{}
		d.files = append(d.files, key)
	}
}

// AddValues appends opaque comparison values in order. Slice and map values
// are copied.
func (d *Dependencies) AddValues(values ...any) {
	for _, v := range values {
		d.values = append(d.values, cloneValue(v))
	}
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case []string:
		return slices.Clone(v)
	case []any:
		if v == nil {
			return v
		}
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]string:
		return maps.Clone(v)
	case map[string]any:
		if v == nil {
			return v
		}
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// SetLastMtime sets the last known-good modification time.
func (d *Dependencies) SetLastMtime(t time.Time) {
	d.lastMtime = t
}

// SetCacheKey sets the identifier the change detector persists state under.
func (d *Dependencies) SetCacheKey(key string) {
	d.cacheKey = key
}

// Files returns the tracked paths in insertion order.
func (d *Dependencies) Files() []string {
	out := make([]string, len(d.files))
	for i, f := range d.files {
		out[i] = f.String()
	}
	return out
}

// HasFiles reports whether at least one file is tracked.
func (d *Dependencies) HasFiles() bool {
	return len(d.files) > 0
}

// Values returns a copy of the comparison values.
func (d *Dependencies) Values() []any {
	return slices.Clone(d.values)
}

// LastMtime returns the last known-good modification time.
func (d *Dependencies) LastMtime() time.Time {
	return d.lastMtime
}

// CacheKey returns the cache identifier, possibly empty.
func (d *Dependencies) CacheKey() string {
	return d.cacheKey
}

// Clone returns a copy that shares no mutable state with d.
func (d *Dependencies) Clone() *Dependencies {
	c := &Dependencies{
		files:     slices.Clone(d.files),
		seen:      make(map[InternedString]struct{}, len(d.seen)),
		values:    slices.Clone(d.values),
		lastMtime: d.lastMtime,
		cacheKey:  d.cacheKey,
	}
	for k := range d.seen {
		c.seen[k] = struct{}{}
	}
	return c
}

// Resolve returns a copy of d whose relative file paths are joined to dir.
func (d *Dependencies) Resolve(dir string) *Dependencies {
	c := d.Clone()
	c.files = c.files[:0]
	clear(c.seen)
	for _, f := range d.files {
		p := f.String()
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		c.AddFiles(p)
	}
	return c
}

// FileStamp is the recorded state of one tracked file.
type FileStamp struct {
	Hash    string    `json:"hash"`
	ModTime time.Time `json:"mtime,omitzero"`
}

// DependencyRecord is the state a change detector persists after a successful run.
type DependencyRecord struct {
	CacheKey  string               `json:"cache_key"`
	Values    string               `json:"values"`
	Files     map[string]FileStamp `json:"files,omitzero"`
	Timestamp time.Time            `json:"timestamp"`
}

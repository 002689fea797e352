// Package depend decides whether the tracked inputs of a batch changed.
package depend

import (
	"context"
	"os"
	"time"

	"go.trai.ch/tape/internal/core/domain"
	"go.trai.ch/tape/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ChangeDetector = (*Detector)(nil)

// Detector implements ports.ChangeDetector on top of a dependency store.
//
// A batch counts as changed when no record exists for its cache key, when its
// values fingerprint or file set differs from the record, when a tracked file
// is missing, or when a file modified after the threshold has different content.
// The threshold is the descriptor's last mtime when set, else the time of the record.
type Detector struct {
	store  ports.DependencyStore
	hasher ports.Hasher
	now    func() time.Time
}

// New creates a Detector.
func New(store ports.DependencyStore, hasher ports.Hasher) *Detector {
	return &Detector{store: store, hasher: hasher, now: time.Now}
}

// Changed reports whether deps differ from the recorded state.
func (d *Detector) Changed(ctx context.Context, deps *domain.Dependencies) (bool, error) {
	key := CacheKey(deps, d.hasher)

	record, err := d.store.Get(key)
	if err != nil {
		return true, zerr.With(zerr.Wrap(err, domain.ErrDependencyCheckFailed.Error()), "key", key)
	}
	if record == nil {
		return true, nil
	}

	if d.hasher.Fingerprint(deps.Values()) != record.Values {
		return true, nil
	}

	files := deps.Files()
	if len(files) != len(record.Files) {
		return true, nil
	}

	threshold := deps.LastMtime()
	explicit := !threshold.IsZero()
	if !explicit {
		threshold = record.Timestamp
	}

	var touched []string
	for _, file := range files {
		if _, ok := record.Files[file]; !ok {
			return true, nil
		}
		info, err := os.Stat(file)
		if err != nil {
			return true, nil
		}
		if modified(info.ModTime(), threshold, record.Files[file].ModTime, explicit) {
			touched = append(touched, file)
		}
	}
	if len(touched) == 0 {
		return false, nil
	}

	sums, err := d.hasher.HashFiles(ctx, touched)
	if err != nil {
		return true, zerr.With(zerr.Wrap(err, domain.ErrDependencyCheckFailed.Error()), "key", key)
	}
	for _, file := range touched {
		if sums[file] != record.Files[file].Hash {
			return true, nil
		}
	}
	return false, nil
}

// modified reports whether a file needs rehashing. Without an explicit last
// mtime, an mtime differing from the recorded one counts as well.
func modified(mtime, threshold, recorded time.Time, explicit bool) bool {
	if mtime.After(threshold) {
		return true
	}
	return !explicit && !recorded.IsZero() && !mtime.Equal(recorded)
}

// Commit records deps as the state of a successful run.
func (d *Detector) Commit(ctx context.Context, deps *domain.Dependencies) error {
	key := CacheKey(deps, d.hasher)
	files := deps.Files()

	sums, err := d.hasher.HashFiles(ctx, files)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDependencyCommitFailed.Error()), "key", key)
	}

	stamps := make(map[string]domain.FileStamp, len(files))
	for _, file := range files {
		stamp := domain.FileStamp{Hash: sums[file]}
		if info, err := os.Stat(file); err == nil {
			stamp.ModTime = info.ModTime().UTC()
		}
		stamps[file] = stamp
	}

	err = d.store.Put(domain.DependencyRecord{
		CacheKey:  key,
		Values:    d.hasher.Fingerprint(deps.Values()),
		Files:     stamps,
		Timestamp: d.now().UTC(),
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDependencyCommitFailed.Error()), "key", key)
	}
	return nil
}

// CacheKey returns the key deps are stored under. Descriptors without an
// explicit key are keyed by their file list.
func CacheKey(deps *domain.Dependencies, hasher ports.Hasher) string {
	if key := deps.CacheKey(); key != "" {
		return key
	}
	files := deps.Files()
	values := make([]any, len(files))
	for i, f := range files {
		values[i] = f
	}
	return "files:" + hasher.Fingerprint(values)
}

package fs

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tape/internal/core/domain"
	"go.trai.ch/tape/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher fingerprints dependency values and file contents with xxhash.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// Fingerprint digests an ordered value sequence. Each value contributes its
// dynamic type and its rendering, so "1" and 1 differ.
func (h *Hasher) Fingerprint(values []any) string {
	hasher := xxhash.New()
	for _, v := range values {
		_, _ = fmt.Fprintf(hasher, "%T", v)
		_, _ = hasher.Write([]byte{0})
		writeValue(hasher, v)
		_, _ = hasher.Write([]byte{0, 0})
	}
	return fmt.Sprintf("%016x", hasher.Sum64())
}

func writeValue(w *xxhash.Digest, v any) {
	switch t := v.(type) {
	case string:
		_, _ = w.WriteString(t)
	case []string:
		for _, s := range t {
			_, _ = w.WriteString(s)
			_, _ = w.Write([]byte{0})
		}
	case int:
		_, _ = w.WriteString(strconv.Itoa(t))
	case bool:
		_, _ = w.WriteString(strconv.FormatBool(t))
	case fmt.Stringer:
		_, _ = w.WriteString(t.String())
	default:
		_, _ = fmt.Fprintf(w, "%v", t)
	}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// HashFiles digests every path concurrently. A directory digests the paths and
// contents of the files below it.
func (h *Hasher) HashFiles(ctx context.Context, paths []string) (map[string]string, error) {
	var mu sync.Mutex
	out := make(map[string]string, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sum, err := h.hashPath(path)
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
			}
			mu.Lock()
			out[path] = sum
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (h *Hasher) hashPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	if !info.IsDir() {
		sum, err := h.ComputeFileHash(path)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%016x", sum), nil
	}

	hasher := xxhash.New()
	for file := range h.walker.WalkFiles(path, nil) {
		_, _ = hasher.WriteString(file)
		_, _ = hasher.Write([]byte{0})

		sum, err := h.ComputeFileHash(file)
		if err != nil {
			return "", err
		}
		if err := binary.Write(hasher, binary.LittleEndian, sum); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}
	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

package ports

import "context"

// Hasher fingerprints dependency values and file contents.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint returns a stable digest of an ordered value sequence.
	Fingerprint(values []any) string
	// HashFiles returns the content digest of every path.
	HashFiles(ctx context.Context, paths []string) (map[string]string, error)
}

// Package store provides the durable store for the ledger document: a
// primary high-capacity SQLite backend with a capacity-limited JSON file
// fallback. Both persist a single opaque JSON blob; the engine never
// branches on the backend kind.
package store

import (
	"context"
	"log/slog"
	"path/filepath"
)

// Kind identifies which backend a Store ended up on.
type Kind int

const (
	// Primary is the high-capacity SQLite backend.
	Primary Kind = iota
	// Fallback is the capacity-limited flat file backend.
	Fallback
)

func (k Kind) String() string {
	switch k {
	case Primary:
		return "primary"
	case Fallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Store persists one JSON document as an opaque blob.
//
// Callers must not assume ordering between concurrent Save calls; the engine
// enforces single-writer discipline (see Writeback).
type Store interface {
	// Load returns the persisted blob, or nil when no document has been
	// saved yet.
	Load(ctx context.Context) ([]byte, error)
	// Save overwrites the persisted blob. From the caller's perspective the
	// write is atomic: either it fully succeeds or the previous content is
	// unchanged.
	Save(ctx context.Context, blob []byte) error
	// Clear removes the persisted blob.
	Clear(ctx context.Context) error
	// Kind reports which backend this store writes to.
	Kind() Kind
	Close() error
}

// Options configures Open.
type Options struct {
	// Dir is the directory holding the database and fallback file.
	Dir string
	// FallbackLimit caps the encoded document size on the fallback backend,
	// in bytes. Zero means DefaultFallbackLimit.
	FallbackLimit int64
}

// DefaultFallbackLimit mirrors the small quota of the capacity-limited
// key-value stores the fallback stands in for.
const DefaultFallbackLimit = 5 << 20

// Open acquires the primary SQLite store under opts.Dir. If the primary
// cannot be acquired (unsupported environment, permission denial, I/O error)
// it silently downgrades to the file fallback. The downgrade is permanent
// for the returned handle; the primary is not retried mid-session.
func Open(opts Options) (Store, error) {
	if opts.FallbackLimit == 0 {
		opts.FallbackLimit = DefaultFallbackLimit
	}
	s, err := openSQLite(filepath.Join(opts.Dir, "fortress.db"))
	if err == nil {
		return s, nil
	}
	slog.Debug("primary store unavailable, using fallback", "err", err)
	return openFile(filepath.Join(opts.Dir, "fortress.json"), opts.FallbackLimit)
}

package fortress

import (
	"bytes"
	"fmt"
)

// exportPrefix is the fixed prefix of backup snapshot filenames.
const exportPrefix = "fortress_backup_"

// Snapshot is a portable, timestamped copy of the full ledger document.
// Writing it to the user's filesystem is the caller's concern.
type Snapshot struct {
	Filename string
	Content  []byte
}

// ExportSnapshot serializes doc in its canonical persisted form under a
// deterministic filename, e.g. "fortress_backup_2026-08-29.json". The
// content round-trips: DecodeDocument(Content) equals doc field for field.
func ExportSnapshot(doc *Document, now Date) (Snapshot, error) {
	var buf bytes.Buffer
	if err := EncodeDocument(&buf, doc); err != nil {
		return Snapshot{}, fmt.Errorf("could not serialize snapshot: %w", err)
	}
	return Snapshot{
		Filename: fmt.Sprintf("%s%s.json", exportPrefix, now),
		Content:  buf.Bytes(),
	}, nil
}

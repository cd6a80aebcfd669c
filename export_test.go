package fortress

import (
	"bytes"
	"reflect"
	"testing"
)

func TestExportSnapshot(t *testing.T) {
	doc := sampleDocument()
	snap, err := ExportSnapshot(doc, MustParseDate("2026-08-29"))
	if err != nil {
		t.Fatal(err)
	}

	if want := "fortress_backup_2026-08-29.json"; snap.Filename != want {
		t.Errorf("filename = %q, want %q", snap.Filename, want)
	}

	back, err := DecodeDocument(bytes.NewReader(snap.Content), "INR")
	if err != nil {
		t.Fatalf("snapshot content does not decode: %v", err)
	}
	if !reflect.DeepEqual(doc, back) {
		t.Errorf("snapshot round trip mismatch:\n got %+v\nwant %+v", back, doc)
	}
}

func TestExportSnapshot_matchesCanonicalEncoding(t *testing.T) {
	doc := sampleDocument()
	snap, err := ExportSnapshot(doc, MustParseDate("2026-08-29"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := EncodeDocument(&buf, doc); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(snap.Content, buf.Bytes()) {
		t.Error("snapshot content differs from the persisted encoding")
	}
}

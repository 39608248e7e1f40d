package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/phanxgames/protoplay"
)

const testDocument = `{
  "start": "home",
  "roots": [{
    "id": "home", "name": "Home", "type": "FRAME", "width": 300, "height": 200,
    "children": [{"id": "btn", "name": "Button", "type": "INSTANCE", "x": 10, "y": 10, "width": 80, "height": 30}]
  }],
  "instances": [{
    "instance": {"id": "btn", "name": "Button", "type": "INSTANCE"},
    "variants": [
      {"id": "off", "name": "On=false", "type": "COMPONENT", "width": 80, "height": 30,
       "reactions": [{"trigger": {"type": "ON_CLICK"},
         "action": {"destinationId": "on", "transition": {"type": "SMART_ANIMATE", "duration": 0.3, "easing": {"type": "EASE_OUT"}}}}],
       "children": [{"id": "off-knob", "name": "Knob", "type": "ELLIPSE", "x": 2, "y": 2, "width": 26, "height": 26}]},
      {"id": "on", "name": "On=true", "type": "COMPONENT", "width": 80, "height": 30, "opacity": 0.9,
       "reactions": [{"trigger": {"type": "AFTER_TIMEOUT", "timeout": 2}, "action": {"destinationId": "off"}}],
       "children": [{"id": "on-knob", "name": "Knob", "type": "ELLIPSE", "x": 52, "y": 2, "width": 26, "height": 26}]}
    ]
  }]
}`

func testDoc(t *testing.T) *protoplay.Document {
	t.Helper()
	doc, err := decodeDocument(strings.NewReader(testDocument))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

// --- Loading ---

func TestDecodeDocumentPlain(t *testing.T) {
	doc := testDoc(t)
	if len(doc.Instances) != 1 || doc.Start != "home" {
		t.Errorf("doc = %+v", doc)
	}
}

func TestDecodeDocumentZstd(t *testing.T) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := enc.Write([]byte(testDocument)); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), zstdMagic) {
		t.Fatal("encoded data should start with the zstd magic")
	}

	path := filepath.Join(t.TempDir(), "doc.json.zst")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := loadDocument(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Find("on-knob") == nil {
		t.Error("compressed document should decode fully")
	}
}

func TestLoadDocumentErrors(t *testing.T) {
	if _, err := loadDocument(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := decodeDocument(strings.NewReader(`{"roots": []}`)); !errors.Is(err, protoplay.ErrInvalidDocument) {
		t.Errorf("err = %v, want ErrInvalidDocument", err)
	}
	if _, err := decodeDocument(strings.NewReader("")); err == nil {
		t.Error("empty input should fail")
	}
}

// --- diff ---

func TestWriteDiffText(t *testing.T) {
	var out bytes.Buffer
	if err := writeDiff(&out, testDoc(t), "off", "on", "", false); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"opacity 1 -> 0.9", "childPosition [Knob]"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestWriteDiffMatchAndJSON(t *testing.T) {
	var out bytes.Buffer
	if err := writeDiff(&out, testDoc(t), "off", "on", "Knob", true); err != nil {
		t.Fatal(err)
	}
	var changes []map[string]any
	if err := json.Unmarshal(out.Bytes(), &changes); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(changes) != 1 || changes[0]["property"] != "childPosition" || changes[0]["childId"] != "off-knob" {
		t.Errorf("changes = %v", changes)
	}
}

func TestWriteDiffEmptyAndErrors(t *testing.T) {
	doc := testDoc(t)
	var out bytes.Buffer
	if err := writeDiff(&out, doc, "off", "off", "", false); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "no changes" {
		t.Errorf("output = %q", out.String())
	}
	out.Reset()
	if err := writeDiff(&out, doc, "off", "off", "", true); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "[]" {
		t.Errorf("json output = %q, want []", out.String())
	}

	if err := writeDiff(&out, doc, "ghost", "on", "", false); !errors.Is(err, protoplay.ErrMissingSnapshot) {
		t.Errorf("missing source: err = %v", err)
	}
	if err := writeDiff(&out, doc, "off", "ghost", "", false); !errors.Is(err, protoplay.ErrMissingSnapshot) {
		t.Errorf("missing target: err = %v", err)
	}
	if err := writeDiff(&out, doc, "off", "on", "[", false); err == nil {
		t.Error("bad glob should fail")
	}
}

// --- inspect ---

func TestWriteInspect(t *testing.T) {
	var out bytes.Buffer
	writeInspect(&out, testDoc(t))
	got := out.String()
	for _, want := range []string{
		"root home (start)",
		`btn "Button" INSTANCE 80x30 at (10, 10)`,
		`instance btn "Button" variants=[off, on] active=`,
		"on ON_CLICK -> on SMART_ANIMATE 0.3s ease-out",
		"on AFTER_TIMEOUT -> off after 2s",
		`on-knob "Knob" ELLIPSE`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

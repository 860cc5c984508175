package stego

import (
	"bytes"
	"testing"

	"xdao.co/stegpng/png"
)

const testMessage = "This is where your secret message will be!"

func mustChunk(t *testing.T, typ, data string) *png.Chunk {
	t.Helper()
	ct, err := png.ChunkTypeFromString(typ)
	if err != nil {
		t.Fatalf("ChunkTypeFromString(%q): %v", typ, err)
	}
	return png.NewChunk(ct, []byte(data))
}

// testCarrier builds a minimal well-formed carrier: signature, IHDR, IEND.
func testCarrier(t *testing.T) []byte {
	t.Helper()
	return png.FromChunks([]*png.Chunk{
		mustChunk(t, "IHDR", "hdr"),
		mustChunk(t, "IEND", ""),
	}).Encode()
}

func TestEmbedExtractRoundTrip(t *testing.T) {
	rewritten, err := Embed(testCarrier(t), "ruSt", testMessage)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	msg, found, err := Extract(rewritten, "ruSt")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !found {
		t.Fatal("message chunk not found after Embed")
	}
	if msg != testMessage {
		t.Errorf("Extract = %q, want %q", msg, testMessage)
	}
}

func TestEmbedPreservesExistingChunks(t *testing.T) {
	carrier := testCarrier(t)
	rewritten, err := Embed(carrier, "ruSt", testMessage)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if !bytes.Equal(rewritten[:len(carrier)], carrier) {
		t.Error("embedding must only append; the original bytes must be a prefix")
	}

	p, err := png.Parse(rewritten)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	chunks := p.Chunks()
	if len(chunks) != 3 {
		t.Fatalf("len(chunks) = %d, want 3", len(chunks))
	}
	if chunks[2].Type().String() != "ruSt" {
		t.Errorf("message chunk must be appended last, got %s", chunks[2].Type())
	}
}

func TestEmbedRejectsBadChunkType(t *testing.T) {
	if _, err := Embed(testCarrier(t), "ru1t", testMessage); !png.IsKind(err, png.KindChunkType) {
		t.Fatalf("expected ChunkType error, got %v", err)
	}
	if _, err := Embed(testCarrier(t), "toolong", testMessage); err == nil {
		t.Fatal("expected error for oversized chunk type")
	}
}

func TestEmbedRejectsBadCarrier(t *testing.T) {
	if _, err := Embed([]byte("not a png"), "ruSt", testMessage); !png.IsKind(err, png.KindSignature) {
		t.Fatalf("expected Signature error, got %v", err)
	}
}

func TestExtractMiss(t *testing.T) {
	msg, found, err := Extract(testCarrier(t), "ruSt")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if found {
		t.Error("found = true on a carrier with no message chunk")
	}
	if msg != "" {
		t.Errorf("msg = %q, want empty", msg)
	}
}

func TestExtractBinaryPayload(t *testing.T) {
	p, err := png.Parse(testCarrier(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ct, _ := png.ChunkTypeFromString("biNd")
	p.AppendChunk(png.NewChunk(ct, []byte{0xff, 0x00, 0xfe}))

	_, found, err := Extract(p.Encode(), "biNd")
	if !found {
		t.Fatal("chunk must be reported as present")
	}
	if !png.IsKind(err, png.KindText) {
		t.Fatalf("expected Text error, got %v", err)
	}
}

func TestRemoveRoundTrip(t *testing.T) {
	carrier := testCarrier(t)
	embedded, err := Embed(carrier, "ruSt", testMessage)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	rewritten, removed, err := Remove(embedded, "ruSt")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed.Type().String() != "ruSt" {
		t.Errorf("removed type = %s, want ruSt", removed.Type())
	}
	if !bytes.Equal(rewritten, carrier) {
		t.Error("embed-then-remove must restore the original carrier bytes")
	}

	_, found, err := Extract(rewritten, "ruSt")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if found {
		t.Error("message still present after Remove")
	}
}

func TestRemoveMissLeavesCarrierUnchanged(t *testing.T) {
	carrier := testCarrier(t)
	rewritten, removed, err := Remove(carrier, "ruSt")
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if !png.IsNotFound(err) {
		t.Fatalf("IsNotFound = false for %v", err)
	}
	if removed != nil {
		t.Error("removed must be nil on a miss")
	}
	if !bytes.Equal(rewritten, carrier) {
		t.Error("carrier must be returned unchanged on a miss")
	}
}

func TestRemoveOnlyFirstOfDuplicates(t *testing.T) {
	carrier, err := Embed(testCarrier(t), "ruSt", "one")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	carrier, err = Embed(carrier, "ruSt", "two")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	rewritten, removed, err := Remove(carrier, "ruSt")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got, _ := removed.DataAsText(); got != "one" {
		t.Errorf("removed %q, want the first occurrence", got)
	}
	msg, found, err := Extract(rewritten, "ruSt")
	if err != nil || !found {
		t.Fatalf("Extract after Remove: found=%v err=%v", found, err)
	}
	if msg != "two" {
		t.Errorf("remaining message = %q, want two", msg)
	}
}

func TestReport(t *testing.T) {
	embedded, err := Embed(testCarrier(t), "ruSt", testMessage)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	report, err := Report(embedded)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	for _, want := range []string{"IHDR", "IEND", "ruSt", "Length: 42"} {
		if !bytes.Contains([]byte(report), []byte(want)) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestReportBadCarrier(t *testing.T) {
	if _, err := Report([]byte("junk.png")); err == nil {
		t.Fatal("expected error for non-carrier bytes")
	}
}

package png

import (
	"bytes"
	"strings"
	"testing"
)

func chunkFromStrings(t *testing.T, typ, data string) *Chunk {
	t.Helper()
	ct, err := ChunkTypeFromString(typ)
	if err != nil {
		t.Fatalf("ChunkTypeFromString(%q): %v", typ, err)
	}
	return NewChunk(ct, []byte(data))
}

func testChunks(t *testing.T) []*Chunk {
	t.Helper()
	return []*Chunk{
		chunkFromStrings(t, "FrSt", "I am the first chunk"),
		chunkFromStrings(t, "miDl", "I am another chunk"),
		chunkFromStrings(t, "LASt", "I am the last chunk"),
	}
}

func testPngBytes(t *testing.T) []byte {
	t.Helper()
	return FromChunks(testChunks(t)).Encode()
}

func TestFromChunks(t *testing.T) {
	p := FromChunks(testChunks(t))
	if got := len(p.Chunks()); got != 3 {
		t.Fatalf("len(Chunks()) = %d, want 3", got)
	}
}

func TestParseValid(t *testing.T) {
	p, err := Parse(testPngBytes(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	chunks := p.Chunks()
	if len(chunks) != 3 {
		t.Fatalf("len(Chunks()) = %d, want 3", len(chunks))
	}
	wantTypes := []string{"FrSt", "miDl", "LASt"}
	for i, c := range chunks {
		if c.Type().String() != wantTypes[i] {
			t.Errorf("chunk %d type = %s, want %s", i, c.Type(), wantTypes[i])
		}
	}
}

func TestParseBadSignature(t *testing.T) {
	wire := testPngBytes(t)
	wire[0] = 13 // corrupt the magic
	_, err := Parse(wire)
	if err == nil {
		t.Fatal("expected signature error")
	}
	if !IsKind(err, KindSignature) {
		t.Fatalf("Kind = %v, want Signature", err)
	}
	if RuleID(err) != "PNG-SIG-002" {
		t.Fatalf("RuleID = %q, want PNG-SIG-002", RuleID(err))
	}
}

func TestParseShortSignature(t *testing.T) {
	sig := Signature()
	_, err := Parse(sig[:5])
	if err == nil {
		t.Fatal("expected signature error")
	}
	if RuleID(err) != "PNG-SIG-001" {
		t.Fatalf("RuleID = %q, want PNG-SIG-001", RuleID(err))
	}
}

func TestParseEmptyChunkList(t *testing.T) {
	sig := Signature()
	p, err := Parse(sig[:])
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(p.Chunks()) != 0 {
		t.Fatalf("len(Chunks()) = %d, want 0", len(p.Chunks()))
	}
	if !bytes.Equal(p.Encode(), sig[:]) {
		t.Error("empty container must encode to the bare signature")
	}
}

func TestSignatureIsImmutable(t *testing.T) {
	sig := Signature()
	if sig != [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A} {
		t.Fatalf("Signature() = % X", sig)
	}
	// Mutating the returned copy must not affect the parser.
	sig[0] = 0x00
	fresh := Signature()
	if _, err := Parse(fresh[:]); err != nil {
		t.Fatalf("Parse after caller mutation: %v", err)
	}
}

func TestParseCorruptChunkIsAtomic(t *testing.T) {
	wire := testPngBytes(t)
	// Corrupt the last chunk's crc; the whole parse must fail.
	wire[len(wire)-1] ^= 0xff
	_, err := Parse(wire)
	if !IsKind(err, KindChecksum) {
		t.Fatalf("expected Checksum error, got %v", err)
	}
}

func TestParseTruncatedMidChunk(t *testing.T) {
	wire := testPngBytes(t)
	_, err := Parse(wire[:len(wire)-3])
	if !IsKind(err, KindTruncated) {
		t.Fatalf("expected Truncated error, got %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	wire := testPngBytes(t)
	p, err := Parse(wire)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !bytes.Equal(p.Encode(), wire) {
		t.Error("Encode() must reproduce parsed bytes exactly")
	}
}

func TestAppendChunkThenRoundTrip(t *testing.T) {
	p, err := Parse(testPngBytes(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p.AppendChunk(chunkFromStrings(t, "TeSt", "Message"))

	got, err := Parse(p.Encode())
	if err != nil {
		t.Fatalf("re-Parse: %v", err)
	}
	chunks := got.Chunks()
	if len(chunks) != 4 {
		t.Fatalf("len(Chunks()) = %d, want 4", len(chunks))
	}
	last := chunks[3]
	if last.Type().String() != "TeSt" {
		t.Errorf("appended chunk type = %s, want TeSt", last.Type())
	}
	msg, err := last.DataAsText()
	if err != nil {
		t.Fatalf("DataAsText: %v", err)
	}
	if msg != "Message" {
		t.Errorf("appended chunk message = %q, want Message", msg)
	}
}

func TestChunkByType(t *testing.T) {
	p := FromChunks(testChunks(t))
	c := p.ChunkByType("FrSt")
	if c == nil {
		t.Fatal("ChunkByType(FrSt) = nil")
	}
	if c.Type().String() != "FrSt" {
		t.Errorf("type = %s, want FrSt", c.Type())
	}
	if p.ChunkByType("NoPe") != nil {
		t.Error("ChunkByType(NoPe) must be nil")
	}
}

func TestChunkByTypeReturnsFirstMatch(t *testing.T) {
	p := FromChunks([]*Chunk{
		chunkFromStrings(t, "duPe", "one"),
		chunkFromStrings(t, "duPe", "two"),
	})
	msg, err := p.ChunkByType("duPe").DataAsText()
	if err != nil {
		t.Fatalf("DataAsText: %v", err)
	}
	if msg != "one" {
		t.Errorf("got %q, want the first occurrence", msg)
	}
}

func TestRemoveChunk(t *testing.T) {
	p := FromChunks(testChunks(t))
	removed, err := p.RemoveChunk("miDl")
	if err != nil {
		t.Fatalf("RemoveChunk: %v", err)
	}
	if removed.Type().String() != "miDl" {
		t.Errorf("removed type = %s, want miDl", removed.Type())
	}
	if p.ChunkByType("miDl") != nil {
		t.Error("chunk still present after removal")
	}
	if len(p.Chunks()) != 2 {
		t.Errorf("len(Chunks()) = %d, want 2", len(p.Chunks()))
	}
}

func TestRemoveChunkNotFound(t *testing.T) {
	p := FromChunks(testChunks(t))
	before := p.Encode()
	_, err := p.RemoveChunk("NoPe")
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if !IsNotFound(err) {
		t.Fatalf("IsNotFound = false for %v", err)
	}
	if RuleID(err) != "PNG-FIND-001" {
		t.Fatalf("RuleID = %q, want PNG-FIND-001", RuleID(err))
	}
	if !bytes.Equal(p.Encode(), before) {
		t.Error("failed removal must leave the sequence untouched")
	}
}

func TestRemoveChunkOnlyFirstOfDuplicates(t *testing.T) {
	p := FromChunks([]*Chunk{
		chunkFromStrings(t, "duPe", "one"),
		chunkFromStrings(t, "duPe", "two"),
	})
	removed, err := p.RemoveChunk("duPe")
	if err != nil {
		t.Fatalf("RemoveChunk: %v", err)
	}
	msg, _ := removed.DataAsText()
	if msg != "one" {
		t.Errorf("removed %q, want the first occurrence", msg)
	}
	rest, _ := p.ChunkByType("duPe").DataAsText()
	if rest != "two" {
		t.Errorf("remaining %q, want two", rest)
	}
}

func TestChunksReturnsCopy(t *testing.T) {
	p := FromChunks(testChunks(t))
	chunks := p.Chunks()
	chunks[0] = chunkFromStrings(t, "NoPe", "overwritten")
	if p.Chunks()[0].Type().String() != "FrSt" {
		t.Error("mutating the returned slice must not affect the container")
	}
}

func TestPngString(t *testing.T) {
	p := FromChunks(testChunks(t))
	s := p.String()
	for _, want := range []string{"FrSt", "miDl", "LASt"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q", want)
		}
	}
}

// Package png implements the chunk-level PNG codec: byte-exact parsing and
// re-serialization of the signature-prefixed chunk stream, chunk-type
// property semantics, and CRC-32/ISO-HDLC verification on every chunk.
//
// The package performs no I/O and no pixel decoding. Callers hand it whole
// byte buffers and get whole byte buffers back; file handling belongs to the
// command layer.
package png

import (
	"bytes"
	"strings"
)

// pngSignature is the fixed 8-byte magic identifying a PNG file.
var pngSignature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Signature returns the fixed 8-byte magic identifying a PNG file.
// The returned array is a copy; the magic itself cannot be altered.
func Signature() [8]byte { return pngSignature }

// Png holds the signature plus the ordered chunk sequence of one file.
//
// Order is the on-disk order and is preserved exactly through a
// Parse/Encode round trip. The container does not police PNG structural
// rules (IHDR first, IEND last); see Validate for the opt-in pass.
type Png struct {
	chunks []*Chunk
}

// FromChunks builds a container from an explicit chunk list.
// The slice is copied; chunks themselves are immutable and shared.
func FromChunks(chunks []*Chunk) *Png {
	return &Png{chunks: append([]*Chunk(nil), chunks...)}
}

// Parse splits a whole-file buffer into signature + chunk sequence.
//
// The parse is atomic: the first failing chunk fails the whole call and no
// partial container is returned.
func Parse(data []byte) (*Png, error) {
	if len(data) < len(pngSignature) {
		return nil, newError(KindSignature, "PNG-SIG-001", "buffer too short for PNG signature")
	}
	if !bytes.Equal(data[:len(pngSignature)], pngSignature[:]) {
		return nil, newError(KindSignature, "PNG-SIG-002", "buffer does not start with the PNG signature")
	}

	var chunks []*Chunk
	rest := data[len(pngSignature):]
	for len(rest) > 0 {
		c, remaining, err := decodeNext(rest)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
		rest = remaining
	}
	return &Png{chunks: chunks}, nil
}

// Encode emits signature ‖ chunk encodings in stored order.
// Byte-for-byte inverse of Parse for any accepted input.
func (p *Png) Encode() []byte {
	size := len(pngSignature)
	for _, c := range p.chunks {
		size += headerSize + len(c.data) + crcFieldSize
	}
	out := make([]byte, 0, size)
	out = append(out, pngSignature[:]...)
	for _, c := range p.chunks {
		out = append(out, c.Encode()...)
	}
	return out
}

// AppendChunk pushes a chunk to the end of the sequence.
//
// No duplicate-type or position constraint is enforced; callers own PNG
// structural validity (use Validate with compliance.Strict to check it).
func (p *Png) AppendChunk(c *Chunk) {
	p.chunks = append(p.chunks, c)
}

// RemoveChunk removes and returns the first chunk whose type code matches.
// The sequence is untouched when no chunk matches.
func (p *Png) RemoveChunk(chunkType string) (*Chunk, error) {
	for i, c := range p.chunks {
		if c.Type().String() == chunkType {
			p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
			return c, nil
		}
	}
	return nil, newError(KindNotFound, "PNG-FIND-001", "no chunk of type "+chunkType)
}

// ChunkByType returns the first chunk with the given type code, or nil.
func (p *Png) ChunkByType(chunkType string) *Chunk {
	for _, c := range p.chunks {
		if c.Type().String() == chunkType {
			return c
		}
	}
	return nil
}

// Chunks returns the chunk sequence in stored order.
// The returned slice is a copy; mutating it does not affect the container.
func (p *Png) Chunks() []*Chunk {
	return append([]*Chunk(nil), p.chunks...)
}

// String renders every chunk's summary in stored order.
func (p *Png) String() string {
	var sb strings.Builder
	for _, c := range p.chunks {
		sb.WriteString(c.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

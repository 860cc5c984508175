package png

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"strings"
	"unicode/utf8"
)

// Chunk is one length-prefixed, CRC-checked record in a PNG stream.
//
// Wire layout (big-endian): length:u32 ‖ type:4 ‖ data:length ‖ crc:u32,
// where crc is CRC-32/ISO-HDLC over type‖data. The stdlib IEEE table uses
// exactly those parameters (poly 0xEDB88320 reflected, init/xorout all-ones).
//
// A Chunk is immutable after construction. The CRC is always derived from
// (type, data): NewChunk computes it and DecodeChunk verifies it, so callers
// can never hold a Chunk whose stored CRC disagrees with its content.
type Chunk struct {
	chunkType ChunkType
	data      []byte
	crc       uint32
}

const (
	lengthFieldSize = 4
	typeFieldSize   = 4
	crcFieldSize    = 4
	headerSize      = lengthFieldSize + typeFieldSize
)

// NewChunk builds a fresh chunk, deriving length and CRC from the payload.
// The payload is copied; the caller keeps ownership of data.
func NewChunk(t ChunkType, data []byte) *Chunk {
	owned := append([]byte(nil), data...)
	return &Chunk{
		chunkType: t,
		data:      owned,
		crc:       checksum(t, owned),
	}
}

// DecodeChunk parses a single chunk record occupying the whole buffer.
//
// Each read boundary has its own rule ID so callers can tell which field the
// buffer fell short of. A stored CRC that disagrees with the recomputed one
// is a distinct KindChecksum failure, never a truncation.
func DecodeChunk(buf []byte) (*Chunk, error) {
	c, rest, err := decodeNext(buf)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, newError(KindTruncated, "PNG-TRUNC-005", "trailing bytes after chunk crc")
	}
	return c, nil
}

// decodeNext consumes one chunk record from the front of buf and returns the
// unread remainder. Parse loops on this to split a chunk stream.
func decodeNext(buf []byte) (*Chunk, []byte, error) {
	if len(buf) < lengthFieldSize {
		return nil, nil, newError(KindTruncated, "PNG-TRUNC-001", "buffer too short for chunk length")
	}
	length := binary.BigEndian.Uint32(buf[:lengthFieldSize])

	if len(buf) < headerSize {
		return nil, nil, newError(KindTruncated, "PNG-TRUNC-002", "buffer too short for chunk type")
	}
	var raw [4]byte
	copy(raw[:], buf[lengthFieldSize:headerSize])
	t, err := ChunkTypeFromBytes(raw)
	if err != nil {
		return nil, nil, err
	}

	dataEnd := uint64(headerSize) + uint64(length)
	if uint64(len(buf)) < dataEnd {
		return nil, nil, newError(KindTruncated, "PNG-TRUNC-003", "buffer too short for chunk data")
	}
	data := append([]byte(nil), buf[headerSize:dataEnd]...)

	if uint64(len(buf)) < dataEnd+crcFieldSize {
		return nil, nil, newError(KindTruncated, "PNG-TRUNC-004", "buffer too short for chunk crc")
	}
	stored := binary.BigEndian.Uint32(buf[dataEnd : dataEnd+crcFieldSize])

	if actual := checksum(t, data); actual != stored {
		return nil, nil, newError(KindChecksum, "PNG-CRC-001",
			fmt.Sprintf("chunk crc mismatch: stored %d, computed %d", stored, actual))
	}

	return &Chunk{chunkType: t, data: data, crc: stored}, buf[dataEnd+crcFieldSize:], nil
}

// Encode emits the exact wire form of the chunk. Round-trip safe with
// DecodeChunk for any chunk built by NewChunk.
func (c *Chunk) Encode() []byte {
	out := make([]byte, 0, headerSize+len(c.data)+crcFieldSize)
	out = binary.BigEndian.AppendUint32(out, c.Length())
	out = append(out, c.chunkType[:]...)
	out = append(out, c.data...)
	out = binary.BigEndian.AppendUint32(out, c.crc)
	return out
}

// Length is the payload byte count.
func (c *Chunk) Length() uint32 { return uint32(len(c.data)) }

// Type returns the chunk's type code.
func (c *Chunk) Type() ChunkType { return c.chunkType }

// Data returns a copy of the payload; the chunk stays immutable.
func (c *Chunk) Data() []byte { return append([]byte(nil), c.data...) }

// CRC is the verified CRC-32/ISO-HDLC over type‖data.
func (c *Chunk) CRC() uint32 { return c.crc }

// DataAsText decodes the payload as UTF-8 text.
//
// Payloads are binary-opaque by default; this only serves the message
// extraction path and fails with a typed error on non-text bytes.
func (c *Chunk) DataAsText() (string, error) {
	if !utf8.Valid(c.data) {
		return "", newError(KindText, "PNG-TEXT-001", "chunk data is not valid UTF-8")
	}
	return string(c.data), nil
}

// String renders a human-readable summary of the chunk.
func (c *Chunk) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Chunk {\n")
	fmt.Fprintf(&sb, "  Length: %d\n", c.Length())
	fmt.Fprintf(&sb, "  Type: %s\n", c.chunkType)
	fmt.Fprintf(&sb, "  Data: %d bytes\n", len(c.data))
	fmt.Fprintf(&sb, "  Crc: %d\n", c.crc)
	fmt.Fprintf(&sb, "}")
	return sb.String()
}

func checksum(t ChunkType, data []byte) uint32 {
	crc := crc32.Update(0, crc32.IEEETable, t[:])
	return crc32.Update(crc, crc32.IEEETable, data)
}

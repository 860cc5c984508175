package png

// ChunkType is the 4-byte ASCII code naming a chunk.
//
// Letter casing encodes four boolean properties via bit 5 of each byte:
// byte 0 ancillary/critical, byte 1 public/private, byte 2 the reserved
// bit (must be clear for a valid type), byte 3 safe-to-copy.
//
// ChunkType is an immutable value; equality is byte-wise (==).
type ChunkType [4]byte

const propertyBit = 0x20

// ChunkTypeFromString builds a ChunkType from a 4-character code.
//
// Every character must be an ASCII letter. Types whose reserved bit is set
// (e.g. "Rust") still construct so callers can inspect their flags; IsValid
// reports false for them.
func ChunkTypeFromString(s string) (ChunkType, error) {
	var t ChunkType
	if len(s) != 4 {
		return t, newError(KindChunkType, "PNG-TYPE-001", "chunk type must be exactly 4 bytes")
	}
	for i := 0; i < 4; i++ {
		if !isChunkTypeByte(s[i]) {
			return t, newError(KindChunkType, "PNG-TYPE-002", "chunk type byte outside ASCII letter range")
		}
		t[i] = s[i]
	}
	return t, nil
}

// ChunkTypeFromBytes builds a ChunkType from raw wire bytes.
//
// This is the decoder's gate: on top of the letter check it rejects a set
// reserved bit, so a stream can never yield a ChunkType with IsValid false.
func ChunkTypeFromBytes(b [4]byte) (ChunkType, error) {
	var t ChunkType
	for i := 0; i < 4; i++ {
		if !isChunkTypeByte(b[i]) {
			return t, newError(KindChunkType, "PNG-TYPE-002", "chunk type byte outside ASCII letter range")
		}
	}
	t = ChunkType(b)
	if !t.IsReservedBitValid() {
		return ChunkType{}, newError(KindChunkType, "PNG-TYPE-003", "chunk type reserved bit is set")
	}
	return t, nil
}

// Bytes returns the raw 4 bytes.
func (t ChunkType) Bytes() [4]byte { return [4]byte(t) }

// String returns the ASCII rendering of the type code.
// Construction restricts bytes to ASCII letters, so this is always lossless.
func (t ChunkType) String() string { return string(t[:]) }

// IsCritical reports whether the chunk is required for correct decoding
// (uppercase first letter).
func (t ChunkType) IsCritical() bool { return t[0]&propertyBit == 0 }

// IsPublic reports whether the type is from the public registry
// (uppercase second letter).
func (t ChunkType) IsPublic() bool { return t[1]&propertyBit == 0 }

// IsReservedBitValid reports whether the reserved bit (byte 2) is clear.
func (t ChunkType) IsReservedBitValid() bool { return t[2]&propertyBit == 0 }

// IsSafeToCopy reports whether editors may blindly copy the chunk
// (lowercase fourth letter).
func (t ChunkType) IsSafeToCopy() bool { return t[3]&propertyBit != 0 }

// IsValid is determined solely by the reserved bit.
func (t ChunkType) IsValid() bool { return t.IsReservedBitValid() }

func isChunkTypeByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

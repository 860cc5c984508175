// Package stego implements the hidden-message channel on top of the chunk
// codec: embedding, extracting, and removing message chunks in PNG carrier
// files, plus signed-payload provenance.
//
// Like the codec, everything here is bytes-in/bytes-out; callers own file
// I/O.
package stego

import (
	"xdao.co/stegpng/png"
)

// Embed appends a chunk of chunkType carrying message and returns the
// rewritten carrier.
//
// The chunk lands at the end of the sequence (after IEND); decoders ignore
// unknown ancillary chunks there, and Extract scans the whole stream.
func Embed(carrier []byte, chunkType, message string) ([]byte, error) {
	t, err := png.ChunkTypeFromString(chunkType)
	if err != nil {
		return nil, err
	}
	p, err := png.Parse(carrier)
	if err != nil {
		return nil, err
	}
	p.AppendChunk(png.NewChunk(t, []byte(message)))
	return p.Encode(), nil
}

// Extract returns the message held by the first chunk of chunkType.
// found is false when no such chunk exists; err reports carriers that do
// not parse or payloads that are not text.
func Extract(carrier []byte, chunkType string) (message string, found bool, err error) {
	p, err := png.Parse(carrier)
	if err != nil {
		return "", false, err
	}
	c := p.ChunkByType(chunkType)
	if c == nil {
		return "", false, nil
	}
	msg, err := c.DataAsText()
	if err != nil {
		return "", true, err
	}
	return msg, true, nil
}

// Remove strips the first chunk of chunkType and returns the rewritten
// carrier plus the removed chunk. The error is png.KindNotFound when no
// chunk matches; the carrier is returned unchanged in that case.
func Remove(carrier []byte, chunkType string) ([]byte, *png.Chunk, error) {
	p, err := png.Parse(carrier)
	if err != nil {
		return nil, nil, err
	}
	removed, err := p.RemoveChunk(chunkType)
	if err != nil {
		return carrier, nil, err
	}
	return p.Encode(), removed, nil
}

// Report renders the carrier's full chunk list (type, length, payload byte
// count, CRC per chunk) for human consumption.
func Report(carrier []byte) (string, error) {
	p, err := png.Parse(carrier)
	if err != nil {
		return "", err
	}
	return p.String(), nil
}

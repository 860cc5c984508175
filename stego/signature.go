package stego

import (
	"crypto/ed25519"
	"fmt"
	"strings"

	"xdao.co/stegpng/keys"
	"xdao.co/stegpng/png"
)

// SignatureChunkType names the companion chunk carrying message provenance.
// Lowercase/lowercase/uppercase/lowercase: ancillary, private, reserved bit
// clear, safe to copy.
const SignatureChunkType = "siGn"

// SignatureRecord is the payload of a signature chunk: one line of four
// space-separated fields.
//
//	<target type> <hash alg> <signer key> <base64 signature>
//
// The signature covers the raw payload bytes of the first chunk whose type
// equals TargetType.
type SignatureRecord struct {
	TargetType string
	HashAlg    string
	SignerKey  string
	Signature  string
}

// Render emits the wire form of the record.
func (r SignatureRecord) Render() (string, error) {
	if r.TargetType == "" || r.HashAlg == "" || r.SignerKey == "" || r.Signature == "" {
		return "", fmt.Errorf("stego: signature record has empty fields")
	}
	for _, f := range []string{r.TargetType, r.HashAlg, r.SignerKey, r.Signature} {
		if strings.ContainsAny(f, " \n") {
			return "", fmt.Errorf("stego: signature record fields must not contain spaces or newlines")
		}
	}
	return r.TargetType + " " + r.HashAlg + " " + r.SignerKey + " " + r.Signature, nil
}

// ParseSignatureRecord is the inverse of Render.
func ParseSignatureRecord(s string) (SignatureRecord, error) {
	fields := strings.Split(s, " ")
	if len(fields) != 4 {
		return SignatureRecord{}, fmt.Errorf("stego: signature record must have 4 fields, got %d", len(fields))
	}
	for _, f := range fields {
		if f == "" {
			return SignatureRecord{}, fmt.Errorf("stego: signature record has empty fields")
		}
	}
	return SignatureRecord{
		TargetType: fields[0],
		HashAlg:    fields[1],
		SignerKey:  fields[2],
		Signature:  fields[3],
	}, nil
}

// SignEd25519 appends a signature chunk covering the payload of the first
// chunk of chunkType, signed with the Ed25519 seed (sha256 digest).
func SignEd25519(carrier []byte, chunkType string, seed []byte) ([]byte, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("stego: seed must be %d bytes", ed25519.SeedSize)
	}
	p, err := png.Parse(carrier)
	if err != nil {
		return nil, err
	}
	target := p.ChunkByType(chunkType)
	if target == nil {
		return nil, fmt.Errorf("stego: no chunk of type %s to sign", chunkType)
	}

	priv := ed25519.NewKeyFromSeed(seed)
	rec := SignatureRecord{
		TargetType: chunkType,
		HashAlg:    "sha256",
		SignerKey:  keys.GenerateSignerKeyFromSeed(seed),
		Signature:  keys.SignEd25519SHA256(target.Data(), priv),
	}
	return attach(p, rec)
}

// AttachSignature appends an externally produced signature record, e.g. one
// signed with a Dilithium3 key via keys.SignDilithium3.
func AttachSignature(carrier []byte, rec SignatureRecord) ([]byte, error) {
	p, err := png.Parse(carrier)
	if err != nil {
		return nil, err
	}
	if p.ChunkByType(rec.TargetType) == nil {
		return nil, fmt.Errorf("stego: no chunk of type %s to sign", rec.TargetType)
	}
	return attach(p, rec)
}

func attach(p *png.Png, rec SignatureRecord) ([]byte, error) {
	payload, err := rec.Render()
	if err != nil {
		return nil, err
	}
	t, err := png.ChunkTypeFromString(SignatureChunkType)
	if err != nil {
		return nil, err
	}
	p.AppendChunk(png.NewChunk(t, []byte(payload)))
	return p.Encode(), nil
}

// VerifySignature checks the first signature chunk targeting chunkType
// against the payload of the first chunk of that type. A nil return means
// the signature is present and valid.
func VerifySignature(carrier []byte, chunkType string) (SignatureRecord, error) {
	p, err := png.Parse(carrier)
	if err != nil {
		return SignatureRecord{}, err
	}
	target := p.ChunkByType(chunkType)
	if target == nil {
		return SignatureRecord{}, fmt.Errorf("stego: no chunk of type %s", chunkType)
	}

	for _, c := range p.Chunks() {
		if c.Type().String() != SignatureChunkType {
			continue
		}
		text, terr := c.DataAsText()
		if terr != nil {
			continue
		}
		rec, perr := ParseSignatureRecord(text)
		if perr != nil || rec.TargetType != chunkType {
			continue
		}
		if verr := keys.VerifyMessage(target.Data(), rec.SignerKey, rec.HashAlg, rec.Signature); verr != nil {
			return rec, verr
		}
		return rec, nil
	}
	return SignatureRecord{}, fmt.Errorf("stego: no signature chunk targeting %s", chunkType)
}

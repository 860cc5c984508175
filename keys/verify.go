package keys

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
)

// SignerPublicKeyBytes returns the raw public key bytes for a signer-key
// string. Supported encodings:
//   - ed25519:<base64>
//   - dilithium3:<base64>
func SignerPublicKeyBytes(signerKey string) (alg string, pub []byte, err error) {
	if signerKey == "" {
		return "", nil, fmt.Errorf("missing signer key")
	}
	alg, enc, ok := strings.Cut(signerKey, ":")
	if !ok {
		return "", nil, fmt.Errorf("invalid signer key encoding")
	}
	pub, err = decodeBase64(enc)
	if err != nil {
		return "", nil, fmt.Errorf("invalid signer key base64: %w", err)
	}

	switch alg {
	case "ed25519":
		if len(pub) != ed25519.PublicKeySize {
			return "", nil, fmt.Errorf("invalid ed25519 public key length")
		}
	case "dilithium3":
		var pk mode3.PublicKey
		if uerr := pk.UnmarshalBinary(pub); uerr != nil {
			return "", nil, fmt.Errorf("invalid dilithium3 public key: %w", uerr)
		}
	default:
		return "", nil, fmt.Errorf("unsupported signer key encoding %q", alg)
	}
	return alg, pub, nil
}

// VerifyMessage checks sigB64 against hash(message) under the signer key.
//
// The signer-key prefix selects the scheme; hashAlg must be one of sha256,
// sha512, sha3-256. A nil return means the signature is valid.
func VerifyMessage(message []byte, signerKey, hashAlg, sigB64 string) error {
	alg, pub, err := SignerPublicKeyBytes(signerKey)
	if err != nil {
		return err
	}
	sig, err := decodeBase64(sigB64)
	if err != nil {
		return fmt.Errorf("invalid signature base64: %w", err)
	}
	digest, err := digestFor(hashAlg, message)
	if err != nil {
		return err
	}

	switch alg {
	case "ed25519":
		if len(sig) != ed25519.SignatureSize {
			return fmt.Errorf("invalid ed25519 signature length")
		}
		if !ed25519.Verify(ed25519.PublicKey(pub), digest, sig) {
			return fmt.Errorf("signature invalid")
		}
		return nil
	case "dilithium3":
		var pk mode3.PublicKey
		if uerr := pk.UnmarshalBinary(pub); uerr != nil {
			return fmt.Errorf("invalid dilithium3 public key: %w", uerr)
		}
		if len(sig) != mode3.SignatureSize {
			return fmt.Errorf("invalid dilithium3 signature length")
		}
		if !mode3.Verify(&pk, digest, sig) {
			return fmt.Errorf("signature invalid")
		}
		return nil
	default:
		return fmt.Errorf("unsupported signer key encoding %q", alg)
	}
}

func decodeBase64(s string) ([]byte, error) {
	// Prefer standard padded encoding, but accept raw encoding too.
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}

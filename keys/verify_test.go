package keys

import (
	"crypto/ed25519"
	"encoding/base64"
	"io"
	"testing"
)

func TestVerifyMessage_Ed25519RoundTrip(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i * 3)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	signerKey := GenerateSignerKeyFromSeed(seed)

	msg := []byte("a hidden message")
	sig := SignEd25519SHA256(msg, priv)

	if err := VerifyMessage(msg, signerKey, "sha256", sig); err != nil {
		t.Fatalf("VerifyMessage: %v", err)
	}
	if err := VerifyMessage(append(msg, '!'), signerKey, "sha256", sig); err == nil {
		t.Fatalf("expected verification failure for mutated message")
	}
}

func TestVerifyMessage_Dilithium3RoundTrip(t *testing.T) {
	pk, sk, err := GenerateDilithium3Keypair(io.Reader(&deterministicReader{}))
	if err != nil {
		t.Fatalf("GenerateDilithium3Keypair: %v", err)
	}
	pkBytes, err := pk.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	signerKey := "dilithium3:" + base64.StdEncoding.EncodeToString(pkBytes)

	msg := []byte("a hidden message")
	sig, err := SignDilithium3(msg, "sha3-256", sk)
	if err != nil {
		t.Fatalf("SignDilithium3: %v", err)
	}

	if err := VerifyMessage(msg, signerKey, "sha3-256", sig); err != nil {
		t.Fatalf("VerifyMessage: %v", err)
	}
	if err := VerifyMessage(msg, signerKey, "sha256", sig); err == nil {
		t.Fatalf("expected verification failure under wrong hash alg")
	}
}

func TestVerifyMessage_RejectsBadSignerKey(t *testing.T) {
	msg := []byte("m")
	cases := []string{"", "ed25519", "rsa:AAAA", "ed25519:@@not-base64@@"}
	for _, signerKey := range cases {
		if err := VerifyMessage(msg, signerKey, "sha256", "AAAA"); err == nil {
			t.Errorf("expected error for signer key %q", signerKey)
		}
	}
}

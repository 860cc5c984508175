// Package keys provides signer-key helpers for message provenance.
//
// A hidden message can carry a companion signature chunk; this package owns
// the primitives behind it: signer-key formatting, digest selection,
// Ed25519 and Dilithium3 signing/verification, and deterministic role-seed
// derivation.
//
// Stable:
//   - Pure, deterministic primitives for signer-key formatting, signing,
//     verification, and role-seed derivation.
//
// Experimental:
//   - Filesystem-backed key storage and convenience helpers (KeyStore and
//     related functions). These are local-first utilities, not part of the
//     long-term wire contract.
package keys

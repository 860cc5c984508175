package storage

import "github.com/ipfs/go-cid"

// CAS is a minimal content-addressable store for carrier files.
//
// Contract:
// - Put MUST be idempotent.
// - Stored objects MUST be immutable.
// - CIDs MUST be derived from the bytes written (callers are responsible for
//   supplying the exact carrier bytes they intend to address).
// - Get MUST return ErrNotFound when the CID is absent.
//
// The store is byte-oriented on purpose: whether the bytes are a
// well-formed PNG chunk stream is checked at the transport boundary
// (grpcstore), not here.
type CAS interface {
	Put(bytes []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}

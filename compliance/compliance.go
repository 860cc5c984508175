package compliance

// ComplianceMode selects how aggressively the library rejects structural
// ambiguity in a chunk stream.
//
// Permissive mode accepts anything the chunk codec accepts: every chunk is
// length-consistent and CRC-verified, but ordering is the caller's problem.
// Strict mode additionally runs the structural rule pass (IHDR present and
// first, IEND present and last) and prefers explicit failure over silent
// acceptance.
type ComplianceMode int

const (
	Permissive ComplianceMode = iota
	Strict
)

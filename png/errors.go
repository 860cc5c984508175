package png

import "errors"

// Kind is a stable category for programmatic error handling.
//
// These categories are intended to remain stable across versions.
// Callers should branch on Kind/RuleID rather than matching error strings.
//
// NOTE: Error() strings are intentionally kept human-readable and may evolve.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindTruncated marks a decode buffer that ran out at a specific field
	// boundary. The RuleID identifies which boundary.
	KindTruncated Kind = "Truncated"
	KindChunkType Kind = "ChunkType"
	KindChecksum  Kind = "Checksum"
	KindSignature Kind = "Signature"
	KindNotFound  Kind = "NotFound"
	KindText      Kind = "Text"
	KindStructure Kind = "Structure"
	KindInternal  Kind = "Internal"
)

// Error is the library's structured error type.
//
// RuleID is a stable identifier (e.g., PNG-TRUNC-003, PNG-CRC-001,
// PNG-STRUCT-005) that names the violated invariant.
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

func wrapError(kind Kind, ruleID, msg string, cause error) error {
	if cause == nil {
		return newError(kind, ruleID, msg)
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}

// IsNotFound reports whether err marks a chunk-type lookup miss.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

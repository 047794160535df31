package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")

	// ErrBoundsCheck indicates a buffer access exceeded bounds.
	ErrBoundsCheck = errors.New("format: buffer bounds exceeded")

	// ErrSanityLimit indicates a parsed value exceeded sanity limits.
	// This guards against integer overflow and excessive allocations from
	// malformed wire data such as oversized collection counts.
	ErrSanityLimit = errors.New("format: value exceeds sanity limit")
)

package genarena

import "errors"

// Error taxonomy for the raw arena. Raw-layer operations return these as
// plain Go errors (nil on success) rather than a result enum.
var (
	// ErrOutOfMemory is the error for an allocation that cannot be satisfied
	// during setup, resize, shrink, or the growth path of insertEmpty. The
	// current make-based allocator panics on exhaustion instead, so no code
	// path currently returns it.
	ErrOutOfMemory = errors.New("genarena: out of memory")

	// ErrOutOfVirtualAllocMemory is reserved for a future virtual-memory
	// backed arena. No code path currently returns it.
	ErrOutOfVirtualAllocMemory = errors.New("genarena: out of virtual allocation memory")

	// ErrResizeInvalid is returned by resize when the requested capacity is
	// smaller than the arena's current live size.
	ErrResizeInvalid = errors.New("genarena: resize below current size")

	// ErrRefInvalid is returned by release when given a stale, forged, or
	// already-released handle.
	ErrRefInvalid = errors.New("genarena: ref invalid")
)

package genarena

import (
	"unsafe"
)

// Destroyer is implemented by element types that need cleanup run before
// their slot is reused. Arena[T].Release and PolyArena's release paths call
// Destroy on the outgoing value.
type Destroyer interface {
	Destroy()
}

// Arena is a densely packed, generation-checked collection of T, the typed
// facade over a rawArena. The zero value is not usable; construct with
// NewArena.
type Arena[T any] struct {
	noCopy
	raw *rawArena
}

// noCopy causes `go vet -copylocks` to flag accidental copies of Arena[T]
// and PolyArena by value: a byte-copy of a rawArena shares its backing
// slices, so two "independent" arenas would silently alias the same dense
// buffer. Use MoveTo to transfer ownership instead of copying.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// NewArena constructs an Arena[T] with the given Config and initial
// capacity (which may be zero). T's registered type id (see RegisterType)
// is baked into every Ref this arena produces; an unregistered T gets
// UnknownTypeID, which is still internally consistent but will not
// round-trip through PolyArena's dynamic dispatch.
func NewArena[T any](cfg Config, initialCapacity uint32) (*Arena[T], error) {
	var zero T
	size := uint32(unsafe.Sizeof(zero))
	align := uint32(unsafe.Alignof(zero))
	raw, err := newRawArena(cfg, size, align, TypeID[T](), initialCapacity)
	if err != nil {
		return nil, err
	}
	return &Arena[T]{raw: raw}, nil
}

// Size returns the number of live elements.
func (a *Arena[T]) Size() uint32 { return a.raw.Size() }

// Capacity returns the current dense buffer capacity.
func (a *Arena[T]) Capacity() uint32 { return a.raw.Capacity() }

// Stats returns a snapshot of the arena's bookkeeping counters.
func (a *Arena[T]) Stats() Stats { return a.raw.stats() }

// Resize grows or reallocates the dense buffer to hold newCapacity elements.
// Returns ErrResizeInvalid if newCapacity is below Size().
func (a *Arena[T]) Resize(newCapacity uint32) error { return a.raw.resize(newCapacity) }

// Shrink sets the arena's capacity to the smallest power of two that still
// fits its live elements and every sparse id ever minted.
func (a *Arena[T]) Shrink() error { return a.raw.shrink() }

// release frees the arena's buffers. It does not run Destroy on any
// remaining live elements — call ForEach first if that matters.
func (a *Arena[T]) release() { a.raw.release() }

// MoveTo transfers a's buffers and scalar state to dst, then resets a to a
// fresh, empty arena with no allocations. dst's prior state, if any, is
// discarded without having Release called on it — callers that care should
// Release dst first.
func (a *Arena[T]) MoveTo(dst *Arena[T]) {
	dst.raw = a.raw
	a.raw = &rawArena{
		cfg:           a.raw.cfg,
		elemSize:      a.raw.elemSize,
		elemAlign:     a.raw.elemAlign,
		typeID:        a.raw.typeID,
		freeListFront: nilIdx,
		freeListBack:  nilIdx,
	}
}

// Insert copies val into a new slot and returns its handle. On allocation
// failure it returns NilRef (generation 0, never valid) alongside the
// error; in practice err is always nil since Go's allocator panics rather
// than failing gracefully, but the signature keeps the contract honest for
// a future allocator backend.
func (a *Arena[T]) Insert(val T) (Ref, error) {
	ref, buf, err := a.raw.insertEmpty()
	if err != nil {
		return NilRef(a.raw.cfg, a.raw.typeID), err
	}
	*(*T)(unsafe.Pointer(&buf[0])) = val
	return ref, nil
}

// Emplace reserves a zero-valued slot and returns a pointer into the dense
// buffer the caller can construct through directly, plus the slot's
// handle. The pointer is only valid until the next mutating call on this
// arena (insert, release, resize, shrink).
func (a *Arena[T]) Emplace() (Ref, *T, error) {
	ref, buf, err := a.raw.insertEmpty()
	if err != nil {
		return NilRef(a.raw.cfg, a.raw.typeID), nil, err
	}
	return ref, (*T)(unsafe.Pointer(&buf[0])), nil
}

// Release, called with no arguments, frees the arena's buffers; it does not
// run Destroy on any remaining live elements — call ForEach first if that
// matters. Called with a single ref, it invalidates ref and compacts the
// dense buffer via remove-swap instead; if the outgoing value implements
// Destroyer, Destroy is called on it unconditionally, even when no swap
// actually occurs.
func (a *Arena[T]) Release(ref ...Ref) error {
	if len(ref) == 0 {
		a.release()
		return nil
	}
	return a.raw.releaseWithDeleter(ref[0], func(b []byte) {
		v := (*T)(unsafe.Pointer(&b[0]))
		if d, ok := any(v).(Destroyer); ok {
			d.Destroy()
		}
	})
}

// IsValidRef reports whether ref currently resolves to a live element.
func (a *Arena[T]) IsValidRef(ref Ref) bool { return a.raw.isValidRef(ref) }

// Get resolves ref to a pointer into the dense buffer, panicking (via the
// package's assertion hook) if ref is not known to be valid. Use TryGet
// when ref's validity is not already established.
func (a *Arena[T]) Get(ref Ref) *T {
	b := a.raw.get(ref)
	return (*T)(unsafe.Pointer(&b[0]))
}

// TryGet resolves ref to a pointer into the dense buffer, or nil if ref is
// stale, forged, or already released.
func (a *Arena[T]) TryGet(ref Ref) *T {
	b := a.raw.tryGet(ref)
	if b == nil {
		return nil
	}
	return (*T)(unsafe.Pointer(&b[0]))
}

// GetItemIdx returns the dense position ref currently resolves to.
func (a *Arena[T]) GetItemIdx(ref Ref) uint32 { return a.raw.getItemIdx(ref) }

// ForEach calls fn with a pointer to every live element, in dense storage
// order. fn must not mutate the arena (insert/release/resize/shrink) — the
// iteration is over the live backing slice and has no guard against
// concurrent reentry from inside fn.
func (a *Arena[T]) ForEach(fn func(*T)) {
	for d := uint32(0); d < a.raw.itemSize; d++ {
		fn((*T)(unsafe.Pointer(&a.raw.itemBytes(d)[0])))
	}
}

// ForEachRef calls fn with each live element's handle and a pointer to its
// value, in dense storage order. The handle is reconstructed from metadata,
// so the caller does not need to have kept every handle around.
func (a *Arena[T]) ForEachRef(fn func(Ref, *T)) {
	for d := uint32(0); d < a.raw.itemSize; d++ {
		ref := a.raw.refAt(d)
		fn(ref, (*T)(unsafe.Pointer(&a.raw.itemBytes(d)[0])))
	}
}

package genarena

import (
	"reflect"
	"unsafe"
)

// PolyArena is a type-keyed collection of raw arenas, one per registered
// type id. Every Insert/Get/Release call is parameterized by a type
// parameter T; PolyArena routes it to the raw arena slot for T's
// registered type id.
//
// By default, dispatch is static: a call Insert[Derived](p, v) only ever
// touches the Derived slot. WithDynamicDispatch changes Release/Get/TryGet
// to key off ref.TypeID() instead of the static T's type id, needed when a
// base-type handle might outlive knowledge of its concrete subtype.
type PolyArena struct {
	noCopy
	cfg     Config
	maxType uint32
	arenas  []*rawArena
	box     []func(unsafe.Pointer) any
	dynamic bool
}

// PolyOption configures a PolyArena at construction time.
type PolyOption func(*PolyArena)

// WithDynamicDispatch enables dynamic dispatch: Release, Get, and TryGet
// resolve the target raw arena from the handle's own encoded type id
// instead of the caller's static type parameter.
func WithDynamicDispatch() PolyOption {
	return func(p *PolyArena) { p.dynamic = true }
}

// NewPolyArena constructs a PolyArena spanning type ids [0, maxTypeID),
// under cfg. maxTypeID should be one past the largest type id any
// RegisterType call in the embedding program will use.
func NewPolyArena(cfg Config, maxTypeID uint32, opts ...PolyOption) *PolyArena {
	p := &PolyArena{cfg: cfg, maxType: maxTypeID, arenas: make([]*rawArena, maxTypeID), box: make([]func(unsafe.Pointer) any, maxTypeID)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RegisterArena binds T's registered type id to a raw arena sized for T,
// with the given initial capacity. Must be called once per type before
// that type is inserted into. Panics (via the assertion hook) if T's own
// subtype range does not satisfy begin <= id < end <= the PolyArena's size;
// it does not compare T's range with those of other types.
func RegisterArena[T any](p *PolyArena, initialCapacity uint32) error {
	var zero T
	t := reflect.TypeFor[T]()
	reg, ok := lookupType(t)
	assert(ok, "type %v was not registered with RegisterType before RegisterArena", t)
	assert(reg.id < p.maxType, "type %v's id %d is out of range for a PolyArena sized %d", t, reg.id, p.maxType)
	p.validateSubtypeRange(t, reg)

	raw, err := newRawArena(p.cfg, uint32(unsafe.Sizeof(zero)), uint32(unsafe.Alignof(zero)), reg.id, initialCapacity)
	if err != nil {
		return err
	}
	p.arenas[reg.id] = raw
	p.box[reg.id] = func(ptr unsafe.Pointer) any { return (*T)(ptr) }
	return nil
}

// validateSubtypeRange asserts that reg's [subtypeBegin, subtypeEnd) range
// is well formed: begin <= id < end <= maxType. A malformed range would
// make ForEachPoly silently skip or over-walk type ids, so this is checked
// eagerly at registration time rather than discovered during iteration.
func (p *PolyArena) validateSubtypeRange(t reflect.Type, reg typeRegistration) {
	assert(reg.subtypeBegin <= reg.id, "type %v has subtypeBegin %d > its own id %d", t, reg.subtypeBegin, reg.id)
	assert(reg.id < reg.subtypeEnd, "type %v has subtypeEnd %d <= its own id %d", t, reg.subtypeEnd, reg.id)
	assert(reg.subtypeEnd <= p.maxType, "type %v has subtypeEnd %d beyond PolyArena size %d", t, reg.subtypeEnd, p.maxType)
}

func (p *PolyArena) arenaFor(typeID uint32) *rawArena {
	assert(typeID < p.maxType, "type id %d out of range for PolyArena sized %d", typeID, p.maxType)
	raw := p.arenas[typeID]
	assert(raw != nil, "type id %d has no arena registered (call RegisterArena first)", typeID)
	return raw
}

// Size returns the number of live elements of type T.
func Size[T any](p *PolyArena) uint32 { return p.arenaFor(TypeID[T]()).Size() }

// Capacity returns the current dense buffer capacity for type T.
func Capacity[T any](p *PolyArena) uint32 { return p.arenaFor(TypeID[T]()).Capacity() }

// Insert copies val into a new slot of T's arena and returns its handle.
func Insert[T any](p *PolyArena, val T) (Ref, error) {
	raw := p.arenaFor(TypeID[T]())
	ref, buf, err := raw.insertEmpty()
	if err != nil {
		return NilRef(p.cfg, raw.typeID), err
	}
	*(*T)(unsafe.Pointer(&buf[0])) = val
	return ref, nil
}

// Emplace reserves a zero-valued slot of T's arena, returning its handle
// and a pointer the caller can construct through.
func Emplace[T any](p *PolyArena) (Ref, *T, error) {
	raw := p.arenaFor(TypeID[T]())
	ref, buf, err := raw.insertEmpty()
	if err != nil {
		return NilRef(p.cfg, raw.typeID), nil, err
	}
	return ref, (*T)(unsafe.Pointer(&buf[0])), nil
}

// Release invalidates ref. Under static dispatch (the default) it targets
// T's arena regardless of what ref.TypeID() says; under
// WithDynamicDispatch, it targets whichever arena ref.TypeID() names,
// letting a base-type handle be released without the caller knowing its
// concrete subtype.
func Release[T any](p *PolyArena, ref Ref) error {
	raw := p.targetArena(TypeID[T](), ref)
	return raw.releaseWithDeleter(ref, func(b []byte) {
		v := (*T)(unsafe.Pointer(&b[0]))
		if d, ok := any(v).(Destroyer); ok {
			d.Destroy()
		}
	})
}

// Get resolves ref to a pointer, panicking via the assertion hook if ref is
// not known valid.
func Get[T any](p *PolyArena, ref Ref) *T {
	raw := p.targetArena(TypeID[T](), ref)
	b := raw.get(ref)
	return (*T)(unsafe.Pointer(&b[0]))
}

// TryGet resolves ref to a pointer, or nil if it is stale, forged, or
// already released.
func TryGet[T any](p *PolyArena, ref Ref) *T {
	raw := p.targetArena(TypeID[T](), ref)
	b := raw.tryGet(ref)
	if b == nil {
		return nil
	}
	return (*T)(unsafe.Pointer(&b[0]))
}

func (p *PolyArena) targetArena(staticTypeID uint32, ref Ref) *rawArena {
	if p.dynamic {
		return p.arenaFor(ref.TypeID())
	}
	return p.arenaFor(staticTypeID)
}

// IsValidRef reports whether ref currently resolves to a live element of
// type T (or, under dynamic dispatch, of whatever type ref.TypeID() names).
func IsValidRef[T any](p *PolyArena, ref Ref) bool {
	raw := p.targetArena(TypeID[T](), ref)
	return raw.isValidRef(ref)
}

// GetItemIdx returns the dense position ref currently resolves to, in
// T's arena (or, under dynamic dispatch, in whichever arena ref.TypeID()
// names).
func GetItemIdx[T any](p *PolyArena, ref Ref) uint32 {
	raw := p.targetArena(TypeID[T](), ref)
	return raw.getItemIdx(ref)
}

// Resize grows or reallocates T's backing arena to hold newCapacity
// elements. Returns ErrResizeInvalid if newCapacity is below Size[T](p).
func Resize[T any](p *PolyArena, newCapacity uint32) error {
	return p.arenaFor(TypeID[T]()).resize(newCapacity)
}

// Shrink sets T's backing arena capacity to the smallest power of two that
// still fits its live elements and every sparse id ever minted.
func Shrink[T any](p *PolyArena) error {
	return p.arenaFor(TypeID[T]()).shrink()
}

// ForEach calls fn with a pointer to every live element of T's own arena —
// it does not walk subtypes. Use ForEachPoly for subtype-inclusive
// iteration over a base type.
func ForEach[T any](p *PolyArena, fn func(*T)) {
	raw := p.arenaFor(TypeID[T]())
	for d := uint32(0); d < raw.itemSize; d++ {
		fn((*T)(unsafe.Pointer(&raw.itemBytes(d)[0])))
	}
}

// ForEachPoly calls fn with every live element whose type id falls in I's
// registered subtype range [SubtypeIDBegin[I](), SubtypeIDEnd[I]()),
// walking every arena in that range in type-id order. I is normally an
// interface type: register it with RegisterType[I](baseID) and
// RegisterSubtypeRange[I](begin, end), the same way a concrete subtype's
// own id is registered. Each concrete type's stored bytes are
// reinterpreted through the *T-typed boxer recorded at RegisterArena time,
// then asserted to satisfy I. A concrete type in range that does not
// implement I is silently skipped rather than visited, matching the rest
// of this package's "no-op on a type mismatch" posture (see TryGet).
func ForEachPoly[I any](p *PolyArena, fn func(I)) {
	begin, end := SubtypeIDBegin[I](), SubtypeIDEnd[I]()
	for tid := begin; tid < end && tid < p.maxType; tid++ {
		raw, box := p.arenas[tid], p.box[tid]
		if raw == nil || box == nil {
			continue
		}
		for d := uint32(0); d < raw.itemSize; d++ {
			if v, ok := box(unsafe.Pointer(&raw.itemBytes(d)[0])).(I); ok {
				fn(v)
			}
		}
	}
}

// ForEachRefPoly is ForEachPoly's handle-aware counterpart, calling fn with
// each live element's reconstructed handle alongside its boxed value.
func ForEachRefPoly[I any](p *PolyArena, fn func(Ref, I)) {
	begin, end := SubtypeIDBegin[I](), SubtypeIDEnd[I]()
	for tid := begin; tid < end && tid < p.maxType; tid++ {
		raw, box := p.arenas[tid], p.box[tid]
		if raw == nil || box == nil {
			continue
		}
		for d := uint32(0); d < raw.itemSize; d++ {
			if v, ok := box(unsafe.Pointer(&raw.itemBytes(d)[0])).(I); ok {
				fn(raw.refAt(d), v)
			}
		}
	}
}

// Release frees every registered arena's buffers.
func (p *PolyArena) Release() {
	for _, raw := range p.arenas {
		if raw != nil {
			raw.release()
		}
	}
}

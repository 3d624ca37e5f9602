// Package genarena implements a generational arena: a densely packed
// collection of values handed out through small, copyable handles (Ref)
// that stay valid across insertions and deletions and cannot be
// accidentally reused once released.
//
// # Overview
//
// A generational arena is useful anywhere code needs to hold onto "a
// reference to this value" without holding an actual pointer into a
// container that may reallocate or compact its storage — entity/component
// systems, scene graphs, dependency graphs, anything with cross-referencing
// values that come and go over the life of a program.
//
// # Basic Usage
//
//	a, err := genarena.NewArena[Player](genarena.DefaultConfig, 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer a.Release()
//
//	ref, err := a.Insert(Player{Name: "Ada"})
//	p := a.Get(ref)
//	p.Score++
//
//	if err := a.Release(ref); err != nil {
//		log.Fatal(err)
//	}
//	a.TryGet(ref) // nil: ref's generation no longer matches
//
// # Polymorphic Collections
//
// PolyArena groups several Arena[T]-shaped collections keyed by a type id,
// with optional subtype-range iteration for walking every instance of a
// base type's whole hierarchy:
//
//	genarena.RegisterType[Enemy](1)
//	p := genarena.NewPolyArena(genarena.DefaultConfig, 8)
//	genarena.RegisterArena[Enemy](p, 0)
//	ref, _ := genarena.Insert(p, Enemy{HP: 10})
//
// # Thread Safety
//
// Arena[T] and PolyArena are not safe for concurrent mutation from more
// than one goroutine, and a ForEach/ForEachPoly callback must not mutate
// the arena it is iterating. Two mutating calls (Insert, Emplace, Release,
// Resize, Shrink) that overlap on the same arena panic via accessGuard.
// Iteration holds no guard: a callback that mutates the arena, or a
// mutation running concurrently with an iteration, is not detected.
//
// # Memory Layout
//
// Live values of a given type sit contiguously in a single dense buffer,
// one rawArena per type. Insertion never has to probe for a free slot
// beyond the small sparse free list; release moves the arena's last dense
// element into the freed slot, so the buffer never develops holes. A Ref
// stays valid across these moves because it never encodes a dense
// position directly, only a sparse id the free list redirects.
//
// # Important Notes
//
//   - A Ref does not record which arena issued it. Validation checks only
//     its index and generation, so a Ref passed to a different arena may
//     resolve to an unrelated element there.
//   - Get and GetItemIdx assert ref's validity and panic if it does not
//     hold; TryGet and IsValidRef are the non-panicking alternatives.
//   - Pointers returned by Emplace/Get/TryGet are invalidated by any
//     subsequent mutating call on the same arena (Insert, Release, Resize,
//     Shrink) — store the Ref, not the pointer, across such calls.
package genarena

package genarena

// Stats is a point-in-time snapshot of a raw arena's bookkeeping state: a
// flat struct of the numbers that matter for capacity planning and leak
// hunting, cheap enough to take on every call.
type Stats struct {
	// Size is the number of live elements (item_size).
	Size int
	// Capacity is the current dense buffer capacity, in elements.
	Capacity int
	// FreeListSize is the number of sparse ids ever minted (including
	// currently-free ones); it only grows, never shrinks on release.
	FreeListSize int
	// FreeSlots is the number of sparse ids currently sitting on the free
	// chain, available for reuse before the next capacity grow.
	FreeSlots int
	// ElemSize is the size in bytes of one stored element.
	ElemSize int
	// Utilization is Size/Capacity, 0 when Capacity is 0.
	Utilization float64
}

func (ra *rawArena) stats() Stats {
	s := Stats{
		Size:         int(ra.itemSize),
		Capacity:     int(ra.capacity),
		FreeListSize: int(ra.freeListSize),
		FreeSlots:    int(ra.freeListSize - ra.itemSize),
		ElemSize:     int(ra.elemSize),
	}
	if ra.capacity > 0 {
		s.Utilization = float64(ra.itemSize) / float64(ra.capacity)
	}
	return s
}

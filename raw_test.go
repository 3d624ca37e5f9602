package genarena

import (
	"math/rand"
	"testing"
)

func TestRawArenaSetupZeroAllocatesNothing(t *testing.T) {
	ra, err := newRawArena(DefaultConfig, 8, 8, 1, 0)
	if err != nil {
		t.Fatalf("newRawArena: %v", err)
	}
	if ra.Capacity() != 0 || ra.items != nil {
		t.Fatalf("zero-capacity arena should allocate nothing, got capacity=%d items=%v", ra.Capacity(), ra.items)
	}
}

func TestRawArenaInsertGrows(t *testing.T) {
	ra, err := newRawArena(DefaultConfig, 8, 8, 1, 2)
	if err != nil {
		t.Fatalf("newRawArena: %v", err)
	}

	var refs []Ref
	for i := 0; i < 3; i++ {
		ref, buf, err := ra.insertEmpty()
		if err != nil {
			t.Fatalf("insertEmpty: %v", err)
		}
		buf[0] = byte(i + 1)
		refs = append(refs, ref)
	}

	if ra.Capacity() < 3 {
		t.Fatalf("capacity = %d, want >= 3 after forced growth", ra.Capacity())
	}
	if ra.Size() != 3 {
		t.Fatalf("size = %d, want 3", ra.Size())
	}
	for i, ref := range refs {
		got := ra.get(ref)[0]
		if got != byte(i+1) {
			t.Fatalf("ref %d: got %d, want %d", i, got, i+1)
		}
	}
}

func TestRawArenaReleaseInvalidatesAndSwaps(t *testing.T) {
	ra, err := newRawArena(DefaultConfig, 8, 8, 1, 0)
	if err != nil {
		t.Fatalf("newRawArena: %v", err)
	}

	var refs []Ref
	for i := 0; i < 4; i++ {
		ref, buf, err := ra.insertEmpty()
		if err != nil {
			t.Fatalf("insertEmpty: %v", err)
		}
		buf[0] = byte(i)
		refs = append(refs, ref)
	}

	// release the first inserted item; the last dense element (index 3's
	// value) should move into its old dense slot via remove-swap.
	if err := ra.releaseWithDeleter(refs[0], nil); err != nil {
		t.Fatalf("release: %v", err)
	}
	if ra.isValidRef(refs[0]) {
		t.Fatal("refs[0] should be invalid after release")
	}
	for i := 1; i < 4; i++ {
		if !ra.isValidRef(refs[i]) {
			t.Fatalf("refs[%d] should remain valid after releasing refs[0]", i)
		}
	}
	// the moved element (formerly last, value 3) should still resolve to
	// value 3 through its original handle.
	if got := ra.get(refs[3])[0]; got != 3 {
		t.Fatalf("refs[3] value after swap = %d, want 3", got)
	}
	if ra.Size() != 3 {
		t.Fatalf("size after release = %d, want 3", ra.Size())
	}
}

func TestRawArenaReuseBumpsGeneration(t *testing.T) {
	ra, err := newRawArena(DefaultConfig, 8, 8, 1, 0)
	if err != nil {
		t.Fatalf("newRawArena: %v", err)
	}

	ref1, _, err := ra.insertEmpty()
	if err != nil {
		t.Fatalf("insertEmpty: %v", err)
	}
	if err := ra.releaseWithDeleter(ref1, nil); err != nil {
		t.Fatalf("release: %v", err)
	}
	if ra.isValidRef(ref1) {
		t.Fatal("ref1 should be invalid after release")
	}

	ref2, _, err := ra.insertEmpty()
	if err != nil {
		t.Fatalf("insertEmpty: %v", err)
	}
	if ref2.Index() != ref1.Index() {
		t.Fatalf("expected slot reuse: ref2.Index()=%d, ref1.Index()=%d", ref2.Index(), ref1.Index())
	}
	if ref2.Generation() == ref1.Generation() {
		t.Fatal("reused slot must bump its generation")
	}
	if ra.isValidRef(ref1) {
		t.Fatal("ref1 must stay invalid even after its slot is reused")
	}
	if !ra.isValidRef(ref2) {
		t.Fatal("ref2 should be valid")
	}
}

func TestRawArenaTryGetVsGet(t *testing.T) {
	ra, err := newRawArena(DefaultConfig, 8, 8, 1, 0)
	if err != nil {
		t.Fatalf("newRawArena: %v", err)
	}
	ref, _, _ := ra.insertEmpty()
	_ = ra.releaseWithDeleter(ref, nil)

	if got := ra.tryGet(ref); got != nil {
		t.Fatalf("tryGet on released ref = %v, want nil", got)
	}

	forged := newLiveRef(DefaultConfig, 999999, 1, 1)
	if got := ra.tryGet(forged); got != nil {
		t.Fatalf("tryGet on out-of-range ref = %v, want nil", got)
	}
}

func TestRawArenaResizeInvalid(t *testing.T) {
	ra, err := newRawArena(DefaultConfig, 8, 8, 1, 4)
	if err != nil {
		t.Fatalf("newRawArena: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, _, err := ra.insertEmpty(); err != nil {
			t.Fatalf("insertEmpty: %v", err)
		}
	}
	if err := ra.resize(2); err != ErrResizeInvalid {
		t.Fatalf("resize below live size = %v, want ErrResizeInvalid", err)
	}
}

func TestRawArenaShrinkKeepsFreeListInBounds(t *testing.T) {
	ra, err := newRawArena(DefaultConfig, 8, 8, 1, 64)
	if err != nil {
		t.Fatalf("newRawArena: %v", err)
	}

	var refs []Ref
	for i := 0; i < 40; i++ {
		ref, _, err := ra.insertEmpty()
		if err != nil {
			t.Fatalf("insertEmpty: %v", err)
		}
		refs = append(refs, ref)
	}
	for i := 0; i < 35; i++ {
		if err := ra.releaseWithDeleter(refs[i], nil); err != nil {
			t.Fatalf("release: %v", err)
		}
	}

	if err := ra.shrink(); err != nil {
		t.Fatalf("shrink: %v", err)
	}
	if ra.Capacity() < ra.FreeListSize() {
		t.Fatalf("capacity %d must stay >= free_list_size %d after shrink", ra.Capacity(), ra.FreeListSize())
	}
	for i := 35; i < 40; i++ {
		if !ra.isValidRef(refs[i]) {
			t.Fatalf("refs[%d] should remain valid after shrink", i)
		}
	}
}

func TestRawArenaDenseShuffleStress(t *testing.T) {
	const n = 256
	ra, err := newRawArena(DefaultConfig, 8, 8, 1, 0)
	if err != nil {
		t.Fatalf("newRawArena: %v", err)
	}

	refs := make([]Ref, n)
	for i := 0; i < n; i++ {
		ref, buf, err := ra.insertEmpty()
		if err != nil {
			t.Fatalf("insertEmpty: %v", err)
		}
		buf[0] = byte(i)
		refs[i] = ref
	}

	rng := rand.New(rand.NewSource(1))
	rng.Shuffle(n, func(i, j int) { refs[i], refs[j] = refs[j], refs[i] })

	released := refs[:n/2]
	kept := refs[n/2:]
	for _, ref := range released {
		if err := ra.releaseWithDeleter(ref, nil); err != nil {
			t.Fatalf("release: %v", err)
		}
	}

	for _, ref := range released {
		if ra.isValidRef(ref) {
			t.Fatal("released ref reported valid")
		}
	}
	for _, ref := range kept {
		if !ra.isValidRef(ref) {
			t.Fatal("kept ref reported invalid")
		}
	}
	if ra.Size() != uint32(n/2) {
		t.Fatalf("size = %d, want %d", ra.Size(), n/2)
	}
}

package genarena

import "fmt"

// Config controls the bit widths packed into a Ref. The three fields must
// sum to 64 or fewer bits. The zero value is invalid; use DefaultConfig or
// NewConfig.
type Config struct {
	IndexBits      uint8
	TypeIDBits     uint8
	GenerationBits uint8
}

// DefaultConfig packs 32 bits of index, 8 bits of type id, and 24 bits of
// generation into a 64-bit word. Go has no native bitfields, so Ref packs
// these widths into a uint64 by hand.
var DefaultConfig = Config{IndexBits: 32, TypeIDBits: 8, GenerationBits: 24}

// NewConfig validates and returns a Config with the given bit widths.
func NewConfig(indexBits, typeIDBits, generationBits uint8) (Config, error) {
	c := Config{IndexBits: indexBits, TypeIDBits: typeIDBits, GenerationBits: generationBits}
	total := int(indexBits) + int(typeIDBits) + int(generationBits)
	if total == 0 || total > 64 {
		return Config{}, fmt.Errorf("genarena: config bit widths must sum to 1..64, got %d", total)
	}
	return c, nil
}

func (c Config) indexMask() uint64      { return mask(c.IndexBits) }
func (c Config) typeIDMask() uint64     { return mask(c.TypeIDBits) }
func (c Config) generationMask() uint64 { return mask(c.GenerationBits) }

func mask(bits uint8) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << bits) - 1
}

// Ref is a small, copyable handle into an arena: a triple of (index,
// typeID, generation), each masked to the arena's Config widths. Pack
// encodes it into a single uint64 and Unpack decodes one.
type Ref struct {
	cfg   Config
	index uint32
	tid   uint32
	gen   uint32
}

// NilRef is the sentinel ref returned on allocation failure: index=0,
// generation=0. It is never a valid live handle, since generation 0 is
// never assigned to a live slot (live slots start at generation 1).
func NilRef(cfg Config, typeID uint32) Ref {
	return Ref{cfg: cfg, index: 0, tid: typeID, gen: 0}
}

// Index returns the sparse slot id encoded in the handle.
func (r Ref) Index() uint32 { return r.index }

// TypeID returns the type id encoded in the handle.
func (r Ref) TypeID() uint32 { return r.tid }

// Generation returns the generation counter encoded in the handle.
func (r Ref) Generation() uint32 { return r.gen }

// IsNil reports whether r is the sentinel handle returned on allocation
// failure. It does not consult any arena — a zero-generation handle is
// never live.
func (r Ref) IsNil() bool { return r.gen == 0 }

// Pack encodes r into a single uint64 using its Config's bit widths: index
// in the low bits, then typeID, then generation in the high bits.
func (r Ref) Pack() uint64 {
	return uint64(r.index)&r.cfg.indexMask() |
		(uint64(r.tid)&r.cfg.typeIDMask())<<r.cfg.IndexBits |
		(uint64(r.gen)&r.cfg.generationMask())<<(r.cfg.IndexBits+r.cfg.TypeIDBits)
}

// Unpack decodes a uint64 produced by Pack back into a Ref under cfg.
func Unpack(cfg Config, packed uint64) Ref {
	return Ref{
		cfg:   cfg,
		index: uint32(packed & cfg.indexMask()),
		tid:   uint32((packed >> cfg.IndexBits) & cfg.typeIDMask()),
		gen:   uint32((packed >> (cfg.IndexBits + cfg.TypeIDBits)) & cfg.generationMask()),
	}
}

func (r Ref) String() string {
	return fmt.Sprintf("Ref{index:%d, type:%d, gen:%d}", r.index, r.tid, r.gen)
}

func newLiveRef(cfg Config, index, typeID, generation uint32) Ref {
	return Ref{cfg: cfg, index: index & uint32(cfg.indexMask()), tid: typeID & uint32(cfg.typeIDMask()), gen: generation & uint32(cfg.generationMask())}
}

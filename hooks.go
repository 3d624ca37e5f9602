package genarena

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"reflect"
	"sync"
)

// assert is the package's assertion hook. No direct dependent in the
// example pack imports a third-party assertion library (see DESIGN.md), so
// this is hand-rolled: a thin panic wrapper that keeps call sites readable
// (assert(cond, "...", args...) instead of if !cond { panic(...) }
// everywhere get/getItemIdx need a precondition).
func assert(cond bool, format string, args ...any) {
	if !cond {
		panic("genarena: assertion failed: " + fmt.Sprintf(format, args...))
	}
}

var (
	loggerMu sync.RWMutex
	logger   = slog.New(newDefaultHandler())
)

// newDefaultHandler builds the default logging sink: a plain slog text
// handler gated at slog.LevelWarn, so nothing this package logs at
// Info/Debug ever reaches the terminal unless a caller opts in with
// SetLogger. The tint-colored handler used by cmd/genarena-demo is kept out
// of the library core, which only depends on log/slog, so embedding
// programs aren't forced to take a console-coloring dependency
// transitively.
func newDefaultHandler() slog.Handler {
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
}

// SetLogger replaces the package-level logging sink. Pass nil to restore
// the default (level-gated, silent below Warn) handler.
func SetLogger(l *slog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		logger = slog.New(newDefaultHandler())
		return
	}
	logger = l
}

func logWarn(msg string, args ...any) {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	l.Warn(msg, args...)
}

// UnknownTypeID is the sentinel returned by TypeID for a type that was
// never registered.
const UnknownTypeID uint32 = math.MaxUint32

var typeRegistry sync.Map // reflect.Type -> registration

type typeRegistration struct {
	id            uint32
	subtypeBegin  uint32
	subtypeEnd    uint32
	hasSubtypeEnd bool
}

// RegisterType assigns id as the type id for T, used by every Arena[T] and
// PolyArena operation touching T. Go generics cannot specialize a free
// function per instantiation, so the mapping is a runtime registry
// populated once by the embedding program (typically from an init() func).
func RegisterType[T any](id uint32) {
	registerType(reflect.TypeFor[T](), id)
}

func registerType(t reflect.Type, id uint32) {
	v, _ := typeRegistry.LoadOrStore(t, &typeRegistration{id: id, subtypeBegin: id, subtypeEnd: id + 1})
	reg := v.(*typeRegistration)
	reg.id = id
	if !reg.hasSubtypeEnd {
		reg.subtypeBegin, reg.subtypeEnd = id, id+1
	}
}

// RegisterSubtypeRange declares that T's polymorphic iteration range is
// [begin, end). The range is kept whether it is registered before or after
// RegisterType[T]. The numbering scheme must form a contiguous nested
// pre-order of the type hierarchy. RegisterArena checks only that the range
// of the type it registers satisfies begin <= id < end <= the PolyArena's
// size; ranges of types never passed to RegisterArena, and nesting across
// types, are not checked.
func RegisterSubtypeRange[T any](begin, end uint32) {
	t := reflect.TypeFor[T]()
	v, _ := typeRegistry.LoadOrStore(t, &typeRegistration{id: UnknownTypeID})
	reg := v.(*typeRegistration)
	reg.subtypeBegin, reg.subtypeEnd, reg.hasSubtypeEnd = begin, end, true
}

func lookupType(t reflect.Type) (typeRegistration, bool) {
	v, ok := typeRegistry.Load(t)
	if !ok {
		return typeRegistration{}, false
	}
	return *v.(*typeRegistration), true
}

// TypeID returns the registered type id for T, or UnknownTypeID if T was
// never registered via RegisterType.
func TypeID[T any]() uint32 {
	reg, ok := lookupType(reflect.TypeFor[T]())
	if !ok {
		return UnknownTypeID
	}
	return reg.id
}

// SubtypeIDBegin returns the start (inclusive) of T's polymorphic iteration
// range, defaulting to TypeID[T]() when no range was registered.
func SubtypeIDBegin[T any]() uint32 {
	reg, ok := lookupType(reflect.TypeFor[T]())
	if !ok {
		return UnknownTypeID
	}
	return reg.subtypeBegin
}

// SubtypeIDEnd returns the end (exclusive) of T's polymorphic iteration
// range, defaulting to TypeID[T]()+1 (a leaf with no subtypes) when no
// range was registered.
func SubtypeIDEnd[T any]() uint32 {
	reg, ok := lookupType(reflect.TypeFor[T]())
	if !ok {
		return UnknownTypeID
	}
	return reg.subtypeEnd
}

package genarena

import "testing"

type widget struct{}

func TestRegisterTypeAndTypeID(t *testing.T) {
	RegisterType[widget](11)
	if got := TypeID[widget](); got != 11 {
		t.Fatalf("TypeID[widget]() = %d, want 11", got)
	}
	if got := SubtypeIDBegin[widget](); got != 11 {
		t.Fatalf("SubtypeIDBegin[widget]() = %d, want 11 (default: own id)", got)
	}
	if got := SubtypeIDEnd[widget](); got != 12 {
		t.Fatalf("SubtypeIDEnd[widget]() = %d, want 12 (default: own id + 1)", got)
	}
}

type ungadget struct{}

func TestTypeIDUnregisteredReturnsSentinel(t *testing.T) {
	if got := TypeID[ungadget](); got != UnknownTypeID {
		t.Fatalf("TypeID[ungadget]() = %d, want UnknownTypeID", got)
	}
}

func TestAssertPanicsOnFalseCondition(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("assert(false, ...) should panic")
		}
	}()
	assert(false, "unexpected %d", 42)
}

func TestSetLoggerNilRestoresDefault(t *testing.T) {
	SetLogger(nil)
	logWarn("test message", "k", "v")
}

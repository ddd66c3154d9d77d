package vm

import (
	"math"
	"testing"
)

func TestValueAccessorsAliasOneWord(t *testing.T) {
	var v Value
	v.SetInt(-1)
	if v.Long() != 0xffffffff {
		t.Fatalf("SetInt did not zero the upper half: %x", v.Long())
	}
	v.SetLong(-1)
	if v.Int() != -1 {
		t.Fatalf("Int view of -1 long = %d", v.Int())
	}
	v.SetFloat(float32(math.Inf(1)))
	if uint32(v.Int()) != 0x7f800000 {
		t.Fatalf("float bits = 0x%08x", uint32(v.Int()))
	}
	v.SetDouble(1.0)
	if v.Long() != 0x3ff0000000000000 {
		t.Fatalf("double bits = 0x%016x", v.Long())
	}
}

func TestValueReferenceTracking(t *testing.T) {
	rt := newTestRuntime()
	obj := rt.newInstance(rt.objectClass)

	var v Value
	v.SetRef(obj)
	if v.Ref() != obj {
		t.Fatalf("reference lost")
	}
	if v.Int() == 0 {
		t.Fatalf("reference word is zero for a live object")
	}
	v.SetInt(3)
	if v.Ref() != nil {
		t.Fatalf("SetInt left the reference")
	}
	v.SetRef(nil)
	if v.Int() != 0 {
		t.Fatalf("null reference word = %d", v.Int())
	}
}

func TestReferenceWordStability(t *testing.T) {
	rt := newTestRuntime()
	obj := rt.newInstance(rt.objectClass)
	a := referenceWord(obj)
	b := referenceWord(obj)
	if a != b || a == 0 {
		t.Fatalf("reference word unstable: %d, %d", a, b)
	}
	if referenceWord(nil) != 0 {
		t.Fatalf("nil reference word nonzero")
	}
}

func TestClassAssignability(t *testing.T) {
	object := &Class{Descriptor: "Ljava/lang/Object;"}
	iface := &Class{Descriptor: "LComparable;", Super: object}
	base := &Class{Descriptor: "LBase;", Super: object, Interfaces: []*Class{iface}}
	derived := &Class{Descriptor: "LDerived;", Super: base}

	if !object.IsAssignableFrom(derived) {
		t.Errorf("Object not assignable from a subclass")
	}
	if !base.IsAssignableFrom(derived) {
		t.Errorf("Base not assignable from Derived")
	}
	if !iface.IsAssignableFrom(derived) {
		t.Errorf("interface not assignable from an implementor's subclass")
	}
	if derived.IsAssignableFrom(base) {
		t.Errorf("Derived assignable from Base")
	}
}

package vm

import "testing"

// ---------------------------------------------------------------------------
// Reference tagging invariants
// ---------------------------------------------------------------------------

func TestSetVRegClearsReferenceTag(t *testing.T) {
	rt := newTestRuntime()
	obj := rt.newInstance(rt.objectClass)
	f := NewShadowFrame(nil, 4)

	f.SetVRegReference(0, obj)
	if f.GetVRegReference(0) != obj {
		t.Fatalf("reference not stored")
	}
	f.SetVReg(0, 42)
	if f.GetVRegReference(0) != nil {
		t.Fatalf("integer store left the reference tag set")
	}
	if f.GetVReg(0) != 42 {
		t.Fatalf("integer store lost the value")
	}
}

func TestWideStoreClearsBothTags(t *testing.T) {
	rt := newTestRuntime()
	obj := rt.newInstance(rt.objectClass)
	f := NewShadowFrame(nil, 4)

	f.SetVRegReference(1, obj)
	f.SetVRegReference(2, obj)
	f.SetVRegLong(1, -1)
	if f.GetVRegReference(1) != nil || f.GetVRegReference(2) != nil {
		t.Fatalf("wide store left a reference tag on the pair")
	}
	if f.GetVRegLong(1) != -1 {
		t.Fatalf("wide store lost the value")
	}
}

func TestConstZeroReadsAsIntAndNull(t *testing.T) {
	// After const/4 v0, #0 the register reads as integer 0 and as
	// reference null.
	rt := newTestRuntime()
	b := NewCodeBuilder(2)
	b.Op11n(OpConst4, 0, 0)
	b.Op10x(OpReturnVoid)
	_, frame, _ := run(t, rt, b.Build())
	if frame.GetVReg(0) != 0 {
		t.Fatalf("const zero integer read = %d", frame.GetVReg(0))
	}
	if frame.GetVRegReference(0) != nil {
		t.Fatalf("const zero reference read is not null")
	}
}

func TestConstNonZeroClearsReferenceTag(t *testing.T) {
	rt := newTestRuntime()
	obj := rt.newInstance(rt.objectClass)
	b := NewCodeBuilder(2)
	b.Op11n(OpConst4, 0, 5)
	b.Op10x(OpReturnVoid)
	_, frame, _ := runSetup(t, rt, b.Build(), func(f *ShadowFrame) {
		f.SetVRegReference(0, obj)
	})
	if frame.GetVRegReference(0) != nil {
		t.Fatalf("nonzero const left the reference tag set")
	}
}

func TestMoveObjectRoundTripRestoresBoth(t *testing.T) {
	rt := newTestRuntime()
	obj := rt.newInstance(rt.objectClass)
	b := NewCodeBuilder(2)
	b.Op12x(OpMoveObject, 0, 1)
	b.Op12x(OpMoveObject, 1, 0)
	b.Op10x(OpReturnVoid)
	_, frame, _ := runSetup(t, rt, b.Build(), func(f *ShadowFrame) {
		f.SetVRegReference(1, obj)
	})
	if frame.GetVRegReference(0) != obj || frame.GetVRegReference(1) != obj {
		t.Fatalf("move-object round trip lost a reference")
	}
	if frame.GetVReg(0) != frame.GetVReg(1) {
		t.Fatalf("move-object round trip diverged register words")
	}
}

func TestReferenceWordsTrackIdentity(t *testing.T) {
	rt := newTestRuntime()
	a := rt.newInstance(rt.objectClass)
	b := rt.newInstance(rt.objectClass)
	f := NewShadowFrame(nil, 4)

	f.SetVRegReference(0, a)
	f.SetVRegReference(1, a)
	f.SetVRegReference(2, b)
	if f.GetVReg(0) != f.GetVReg(1) {
		t.Fatalf("same object produced different register words")
	}
	if f.GetVReg(0) == f.GetVReg(2) {
		t.Fatalf("distinct objects share a register word")
	}
	f.SetVRegReference(3, nil)
	if f.GetVReg(3) != 0 {
		t.Fatalf("null reference word = %d", f.GetVReg(3))
	}
}

func TestIfEqComparesReferencesThroughWords(t *testing.T) {
	// if-eq on two registers holding the same object branches.
	rt := newTestRuntime()
	obj := rt.newInstance(rt.objectClass)
	b := NewCodeBuilder(4)
	b.Op22t(OpIfEq, 0, 1, 4)
	b.Op11n(OpConst4, 2, 0)
	b.Op11x(OpReturn, 2)
	b.Op11n(OpConst4, 2, 1)
	b.Op11x(OpReturn, 2)
	code := b.Build()

	result, _, _ := runSetup(t, rt, code, func(f *ShadowFrame) {
		f.SetVRegReference(0, obj)
		f.SetVRegReference(1, obj)
	})
	if result.Int() != 1 {
		t.Fatalf("if-eq on identical references not taken")
	}

	other := rt.newInstance(rt.objectClass)
	result, _, _ = runSetup(t, rt, code, func(f *ShadowFrame) {
		f.SetVRegReference(0, obj)
		f.SetVRegReference(1, other)
	})
	if result.Int() != 0 {
		t.Fatalf("if-eq on distinct references taken")
	}
}

// ---------------------------------------------------------------------------
// Roots
// ---------------------------------------------------------------------------

func TestReferencesEnumeratesRoots(t *testing.T) {
	rt := newTestRuntime()
	a := rt.newInstance(rt.objectClass)
	c := rt.newInstance(rt.objectClass)
	f := NewShadowFrame(nil, 4)
	f.SetVRegReference(0, a)
	f.SetVReg(1, 7)
	f.SetVRegReference(2, c)

	refs := f.References()
	if refs[0] != a || refs[2] != c {
		t.Fatalf("tagged roots missing from enumeration")
	}
	if refs[1] != nil || refs[3] != nil {
		t.Fatalf("untagged slots reported as roots")
	}
}

func TestGetThisObject(t *testing.T) {
	rt := newTestRuntime()
	obj := rt.newInstance(rt.objectClass)

	m := &Method{Name: "im", Declaring: rt.objectClass, Static: false}
	f := NewShadowFrame(m, 4)
	f.SetVRegReference(3, obj) // one in-register: the receiver
	if f.GetThisObject(1) != obj {
		t.Fatalf("receiver not found in first in-register")
	}

	sm := &Method{Name: "sm", Declaring: rt.objectClass, Static: true}
	sf := NewShadowFrame(sm, 4)
	sf.SetVRegReference(3, obj)
	if sf.GetThisObject(1) != nil {
		t.Fatalf("static method reported a receiver")
	}
}

package vm

import "testing"

// ---------------------------------------------------------------------------
// Array element access
// ---------------------------------------------------------------------------

func TestAgetSignedness(t *testing.T) {
	rt := newTestRuntime()
	// aget-byte sign-extends; aget-char zero-extends.
	byteArr := &ByteArray{Class: rt.primArrayClass("[B"), Data: []int8{-1}}
	charArr := &CharArray{Class: rt.primArrayClass("[C"), Data: []uint16{0xffff}}

	b := NewCodeBuilder(4)
	b.Op11n(OpConst4, 1, 0) // index
	b.Op23x(OpAgetByte, 2, 0, 1)
	b.Op11x(OpReturn, 2)
	result, _, _ := runSetup(t, rt, b.Build(), func(f *ShadowFrame) {
		f.SetVRegReference(0, byteArr)
	})
	if got := result.Int(); got != -1 {
		t.Fatalf("aget-byte(-1) = %d", got)
	}

	b = NewCodeBuilder(4)
	b.Op11n(OpConst4, 1, 0)
	b.Op23x(OpAgetChar, 2, 0, 1)
	b.Op11x(OpReturn, 2)
	result, _, _ = runSetup(t, rt, b.Build(), func(f *ShadowFrame) {
		f.SetVRegReference(0, charArr)
	})
	if got := result.Int(); got != 0xffff {
		t.Fatalf("aget-char(0xffff) = %d", got)
	}
}

func TestAgetShortBooleanKinds(t *testing.T) {
	rt := newTestRuntime()
	shortArr := &ShortArray{Class: rt.primArrayClass("[S"), Data: []int16{-2}}
	boolArr := &BooleanArray{Class: rt.primArrayClass("[Z"), Data: []uint8{1}}

	b := NewCodeBuilder(4)
	b.Op11n(OpConst4, 1, 0)
	b.Op23x(OpAgetShort, 2, 0, 1)
	b.Op11x(OpReturn, 2)
	result, _, _ := runSetup(t, rt, b.Build(), func(f *ShadowFrame) {
		f.SetVRegReference(0, shortArr)
	})
	if got := result.Int(); got != -2 {
		t.Fatalf("aget-short(-2) = %d", got)
	}

	b = NewCodeBuilder(4)
	b.Op11n(OpConst4, 1, 0)
	b.Op23x(OpAgetBoolean, 2, 0, 1)
	b.Op11x(OpReturn, 2)
	result, _, _ = runSetup(t, rt, b.Build(), func(f *ShadowFrame) {
		f.SetVRegReference(0, boolArr)
	})
	if got := result.Int(); got != 1 {
		t.Fatalf("aget-boolean(1) = %d", got)
	}
}

func TestAputAndAgetIntLongObject(t *testing.T) {
	rt := newTestRuntime()
	intArr := &IntArray{Class: rt.primArrayClass("[I"), Data: make([]int32, 3)}
	longArr := &LongArray{Class: rt.primArrayClass("[J"), Data: make([]int64, 2)}
	objArr := &RefArray{Class: rt.arrayClass(rt.objectClass), Data: make([]Object, 2)}
	obj := rt.newInstance(rt.objectClass)

	// v0=int array, v1=index, v2=value
	b := NewCodeBuilder(6)
	b.Op11n(OpConst4, 1, 2)
	b.Op31i(OpConst, 2, 12345)
	b.Op23x(OpAput, 2, 0, 1)
	b.Op23x(OpAget, 3, 0, 1)
	b.Op11x(OpReturn, 3)
	result, _, _ := runSetup(t, rt, b.Build(), func(f *ShadowFrame) {
		f.SetVRegReference(0, intArr)
	})
	if got := result.Int(); got != 12345 || intArr.Data[2] != 12345 {
		t.Fatalf("aput/aget int = %d", got)
	}

	b = NewCodeBuilder(8)
	b.Op11n(OpConst4, 1, 1)
	b.Op51l(OpConstWide, 2, -1e15)
	b.Op23x(OpAputWide, 2, 0, 1)
	b.Op23x(OpAgetWide, 4, 0, 1)
	b.Op11x(OpReturnWide, 4)
	result, _, _ = runSetup(t, rt, b.Build(), func(f *ShadowFrame) {
		f.SetVRegReference(0, longArr)
	})
	if got := result.Long(); got != -1e15 {
		t.Fatalf("aput/aget wide = %d", got)
	}

	b = NewCodeBuilder(6)
	b.Op11n(OpConst4, 1, 0)
	b.Op23x(OpAputObject, 2, 0, 1)
	b.Op23x(OpAgetObject, 3, 0, 1)
	b.Op11x(OpReturnObject, 3)
	result, _, _ = runSetup(t, rt, b.Build(), func(f *ShadowFrame) {
		f.SetVRegReference(0, objArr)
		f.SetVRegReference(2, obj)
	})
	if result.Ref() != obj || objArr.Data[0] != obj {
		t.Fatalf("aput/aget object lost the reference")
	}
}

func TestAgetNullArrayRaisesNPE(t *testing.T) {
	rt := newTestRuntime()
	b := NewCodeBuilder(4)
	b.Op11n(OpConst4, 0, 0) // null
	b.Op11n(OpConst4, 1, 0)
	b.Op23x(OpAget, 2, 0, 1)
	b.Op11x(OpReturn, 2)
	_, _, th := run(t, rt, b.Build())
	expectPending(t, th, ExNullPointer)
}

func TestAgetOutOfBoundsRaises(t *testing.T) {
	rt := newTestRuntime()
	arr := &IntArray{Class: rt.primArrayClass("[I"), Data: make([]int32, 3)}
	for _, idx := range []int32{3, -1} {
		b := NewCodeBuilder(4)
		b.Op31i(OpConst, 1, idx)
		b.Op23x(OpAget, 2, 0, 1)
		b.Op11x(OpReturn, 2)
		_, _, th := runSetup(t, rt, b.Build(), func(f *ShadowFrame) {
			f.SetVRegReference(0, arr)
		})
		expectPending(t, th, ExArrayIndexOutOfBounds)
	}
}

func TestAputObjectStoreCheck(t *testing.T) {
	rt := newTestRuntime()
	stringClass := rt.stringClass
	stringArr := &RefArray{Class: rt.arrayClass(stringClass), Data: make([]Object, 1)}
	notAString := rt.newInstance(rt.objectClass)

	b := NewCodeBuilder(4)
	b.Op11n(OpConst4, 1, 0)
	b.Op23x(OpAputObject, 2, 0, 1)
	b.Op10x(OpReturnVoid)
	_, _, th := runSetup(t, rt, b.Build(), func(f *ShadowFrame) {
		f.SetVRegReference(0, stringArr)
		f.SetVRegReference(2, notAString)
	})
	expectPending(t, th, ExArrayStore)

	// An assignable store succeeds.
	str := &testString{class: stringClass, val: "ok"}
	_, _, th = runSetup(t, rt, b.Build(), func(f *ShadowFrame) {
		f.SetVRegReference(0, stringArr)
		f.SetVRegReference(2, str)
	})
	if th.IsExceptionPending() {
		t.Fatalf("assignable store threw %v", th.Exception())
	}
	if stringArr.Data[0] != str {
		t.Fatalf("assignable store lost the value")
	}
}

func TestArrayLength(t *testing.T) {
	rt := newTestRuntime()
	arr := &IntArray{Class: rt.primArrayClass("[I"), Data: make([]int32, 17)}
	b := NewCodeBuilder(2)
	b.Op12x(OpArrayLength, 1, 0)
	b.Op11x(OpReturn, 1)
	result, _, _ := runSetup(t, rt, b.Build(), func(f *ShadowFrame) {
		f.SetVRegReference(0, arr)
	})
	if got := result.Int(); got != 17 {
		t.Fatalf("array-length = %d", got)
	}

	_, _, th := run(t, rt, b.Build()) // v0 left null
	expectPending(t, th, ExNullPointer)
}

// ---------------------------------------------------------------------------
// Allocation opcodes
// ---------------------------------------------------------------------------

func TestNewArrayNegativeLength(t *testing.T) {
	rt := newTestRuntime()
	rt.classPool[0] = rt.primArrayClass("[I")
	b := NewCodeBuilder(4)
	b.Op11n(OpConst4, 1, -1)
	b.Op22c(OpNewArray, 0, 1, 0)
	b.Op10x(OpReturnVoid)
	_, _, th := run(t, rt, b.Build())
	expectPending(t, th, ExNegativeArraySize)
}

func TestNewArrayAndFillArrayData(t *testing.T) {
	rt := newTestRuntime()
	rt.classPool[0] = rt.primArrayClass("[I")
	b := NewCodeBuilder(4)
	b.Op11n(OpConst4, 1, 3)        // 0: length
	b.Op22c(OpNewArray, 0, 1, 0)   // 1
	b.Op31t(OpFillArrayData, 0, 0) // 3: payload offset patched below
	b.Op11n(OpConst4, 2, 1)        // 6: index
	b.Op23x(OpAget, 3, 0, 2)       // 7
	b.Op11x(OpReturn, 3)           // 9
	at := b.ArrayDataPayload(4, []byte{
		10, 0, 0, 0,
		20, 0, 0, 0,
		30, 0, 0, 0,
	})
	code := b.Build()
	code.Insns[4] = uint16(at - 3)

	result, frame, th := run(t, rt, code)
	if th.IsExceptionPending() {
		t.Fatalf("fill-array-data threw %v", th.Exception())
	}
	if got := result.Int(); got != 20 {
		t.Fatalf("filled element = %d", got)
	}
	arr := frame.GetVRegReference(0).(*IntArray)
	if arr.Data[0] != 10 || arr.Data[2] != 30 {
		t.Fatalf("fill-array-data contents = %v", arr.Data)
	}
}

func TestFillArrayDataCountBeyondLength(t *testing.T) {
	rt := newTestRuntime()
	arr := &IntArray{Class: rt.primArrayClass("[I"), Data: make([]int32, 1)}
	b := NewCodeBuilder(2)
	b.Op31t(OpFillArrayData, 0, 0) // 0
	b.Op10x(OpReturnVoid)          // 3
	at := b.ArrayDataPayload(4, []byte{1, 0, 0, 0, 2, 0, 0, 0})
	code := b.Build()
	code.Insns[1] = uint16(at)

	_, _, th := runSetup(t, rt, code, func(f *ShadowFrame) {
		f.SetVRegReference(0, arr)
	})
	expectPending(t, th, ExArrayIndexOutOfBounds)
}

func TestFillArrayDataNullArray(t *testing.T) {
	rt := newTestRuntime()
	b := NewCodeBuilder(2)
	b.Op31t(OpFillArrayData, 0, 4)
	b.Op10x(OpReturnVoid)
	b.ArrayDataPayload(4, []byte{1, 0, 0, 0})
	_, _, th := run(t, rt, b.Build())
	expectPending(t, th, ExNullPointer)
}

func TestFilledNewArray(t *testing.T) {
	rt := newTestRuntime()
	rt.classPool[0] = rt.primArrayClass("[I")
	b := NewCodeBuilder(5)
	b.Op11n(OpConst4, 0, 4)
	b.Op11n(OpConst4, 1, 5)
	b.Op11n(OpConst4, 2, 6)
	b.Op35c(OpFilledNewArray, 0, 0, 1, 2)
	b.Op11x(OpMoveResultObject, 3)
	b.Op11x(OpReturnObject, 3)
	result, _, th := run(t, rt, b.Build())
	if th.IsExceptionPending() {
		t.Fatalf("filled-new-array threw %v", th.Exception())
	}
	arr := result.Ref().(*IntArray)
	if len(arr.Data) != 3 || arr.Data[0] != 4 || arr.Data[1] != 5 || arr.Data[2] != 6 {
		t.Fatalf("filled-new-array contents = %v", arr.Data)
	}
}

func TestFilledNewArrayRange(t *testing.T) {
	rt := newTestRuntime()
	rt.classPool[0] = rt.primArrayClass("[I")
	b := NewCodeBuilder(6)
	b.Op21s(OpConst16, 2, 8)
	b.Op21s(OpConst16, 3, 9)
	b.Op3rc(OpFilledNewArrayRange, 0, 2, 2)
	b.Op11x(OpMoveResultObject, 4)
	b.Op11x(OpReturnObject, 4)
	result, _, _ := run(t, rt, b.Build())
	arr := result.Ref().(*IntArray)
	if len(arr.Data) != 2 || arr.Data[0] != 8 || arr.Data[1] != 9 {
		t.Fatalf("filled-new-array/range contents = %v", arr.Data)
	}
}

package vm

import (
	"fmt"
	"testing"
)

// ---------------------------------------------------------------------------
// Shared test fixture: an in-process host runtime
// ---------------------------------------------------------------------------

// testInstance is a plain heap object with indexed fields.
type testInstance struct {
	class  *Class
	fields map[uint32]Value
}

func (o *testInstance) GetClass() *Class { return o.class }

// testString is an interned string object.
type testString struct {
	class *Class
	val   string
}

func (s *testString) GetClass() *Class { return s.class }

// testField is one resolved field: static storage lives on the field,
// instance storage on the object keyed by the field's index.
type testField struct {
	idx    uint32
	static bool
	value  Value
}

// testRuntime implements Runtime over in-memory pools. It is deliberately
// literal: resolution is table lookup, dispatch walks the superclass
// chain, invokes recurse into the interpreter.
type testRuntime struct {
	*MonitorTable

	objectClass    *Class
	throwableClass *Class
	stringClass    *Class

	classes    map[string]*Class
	strings    map[uint32]Object
	classPool  map[uint32]*Class
	methodPool map[uint32]*Method
	fieldPool  map[uint32]*testField

	methodsByClass map[*Class]map[string]*Method
	vtables        map[*Class][]*Method

	maxDepth int32
	suspends int
}

func newTestRuntime() *testRuntime {
	rt := &testRuntime{
		MonitorTable:   NewMonitorTable(),
		classes:        make(map[string]*Class),
		strings:        make(map[uint32]Object),
		classPool:      make(map[uint32]*Class),
		methodPool:     make(map[uint32]*Method),
		fieldPool:      make(map[uint32]*testField),
		methodsByClass: make(map[*Class]map[string]*Method),
		vtables:        make(map[*Class][]*Method),
		maxDepth:       64,
	}
	rt.objectClass = &Class{Descriptor: "Ljava/lang/Object;"}
	rt.classes[rt.objectClass.Descriptor] = rt.objectClass
	rt.throwableClass = rt.defineClass("Ljava/lang/Throwable;", rt.objectClass)
	rt.stringClass = rt.defineClass("Ljava/lang/String;", rt.objectClass)
	for _, d := range []string{
		ExNullPointer, ExArithmetic, ExArrayIndexOutOfBounds, ExArrayStore,
		ExClassCast, ExNegativeArraySize, ExIllegalMonitorState,
		ExStackOverflow, "Ljava/lang/LinkageError;",
	} {
		rt.defineClass(d, rt.throwableClass)
	}
	return rt
}

// defineClass registers a class under its descriptor.
func (rt *testRuntime) defineClass(descriptor string, super *Class) *Class {
	c := &Class{Descriptor: descriptor, Super: super}
	rt.classes[descriptor] = c
	return c
}

// arrayClass registers an array class of the given component.
func (rt *testRuntime) arrayClass(component *Class) *Class {
	d := "[" + component.Descriptor
	if c, ok := rt.classes[d]; ok {
		return c
	}
	c := &Class{Descriptor: d, Super: rt.objectClass, Component: component}
	rt.classes[d] = c
	return c
}

// primArrayClass registers a primitive array class like [I.
func (rt *testRuntime) primArrayClass(descriptor string) *Class {
	if c, ok := rt.classes[descriptor]; ok {
		return c
	}
	elem := &Class{Descriptor: descriptor[1:]}
	c := &Class{Descriptor: descriptor, Super: rt.objectClass, Component: elem}
	rt.classes[descriptor] = c
	return c
}

// declare registers a method on its class and appends it to the vtable,
// making it reachable by name-based virtual lookup and by vtable index.
func (rt *testRuntime) declare(c *Class, m *Method) *Method {
	m.Declaring = c
	if rt.methodsByClass[c] == nil {
		rt.methodsByClass[c] = make(map[string]*Method)
	}
	rt.methodsByClass[c][m.Name] = m
	rt.vtables[c] = append(rt.vtables[c], m)
	return m
}

// lookupVirtual finds the nearest override of name starting at c.
func (rt *testRuntime) lookupVirtual(c *Class, name string) *Method {
	for s := c; s != nil; s = s.Super {
		if m, ok := rt.methodsByClass[s][name]; ok {
			return m
		}
	}
	return nil
}

// newInstance creates a heap object of class c.
func (rt *testRuntime) newInstance(c *Class) *testInstance {
	return &testInstance{class: c, fields: make(map[uint32]Value)}
}

// internString registers a string object in the string pool at idx.
func (rt *testRuntime) internString(idx uint32, s string) Object {
	obj := &testString{class: rt.stringClass, val: s}
	rt.strings[idx] = obj
	return obj
}

func (rt *testRuntime) allocArrayOf(c *Class, length int32) Object {
	switch c.Descriptor {
	case "[Z":
		return &BooleanArray{Class: c, Data: make([]uint8, length)}
	case "[B":
		return &ByteArray{Class: c, Data: make([]int8, length)}
	case "[C":
		return &CharArray{Class: c, Data: make([]uint16, length)}
	case "[S":
		return &ShortArray{Class: c, Data: make([]int16, length)}
	case "[I", "[F":
		return &IntArray{Class: c, Data: make([]int32, length)}
	case "[J", "[D":
		return &LongArray{Class: c, Data: make([]int64, length)}
	}
	return &RefArray{Class: c, Data: make([]Object, length)}
}

// --- Runtime interface ---

func (rt *testRuntime) ResolveString(t *Thread, m *Method, idx uint32) Object {
	s, ok := rt.strings[idx]
	if !ok {
		rt.Throw(t, "Ljava/lang/LinkageError;", fmt.Sprintf("no string at index %d", idx))
		return nil
	}
	return s
}

func (rt *testRuntime) ResolveClass(t *Thread, m *Method, idx uint32, accessCheck bool) *Class {
	c, ok := rt.classPool[idx]
	if !ok {
		rt.Throw(t, "Ljava/lang/LinkageError;", fmt.Sprintf("no class at index %d", idx))
		return nil
	}
	return c
}

func (rt *testRuntime) AllocInstance(t *Thread, m *Method, idx uint32, accessCheck bool) Object {
	c := rt.ResolveClass(t, m, idx, accessCheck)
	if c == nil {
		return nil
	}
	return rt.newInstance(c)
}

func (rt *testRuntime) AllocArray(t *Thread, m *Method, idx uint32, length int32, accessCheck bool) Object {
	c := rt.ResolveClass(t, m, idx, accessCheck)
	if c == nil {
		return nil
	}
	if length < 0 {
		t.ThrowNewf(ExNegativeArraySize, "%d", length)
		return nil
	}
	return rt.allocArrayOf(c, length)
}

func (rt *testRuntime) FilledNewArray(t *Thread, f *ShadowFrame, pc uint32, rangeForm, accessCheck bool, result *Value) bool {
	code := f.Method().Code
	var idx uint32
	var regs []uint16
	if rangeForm {
		idx = code.VRegB3rc(pc)
		first := code.VRegC3rc(pc)
		count := uint16(code.VRegA3rc(pc))
		for r := first; r < first+count; r++ {
			regs = append(regs, r)
		}
	} else {
		idx = code.VRegB35c(pc)
		count := code.VRegA35c(pc)
		args := code.Args35c(pc)
		for i := uint8(0); i < count; i++ {
			regs = append(regs, uint16(args[i]))
		}
	}
	c := rt.ResolveClass(t, f.Method(), idx, accessCheck)
	if c == nil {
		return false
	}
	arr := rt.allocArrayOf(c, int32(len(regs)))
	switch a := arr.(type) {
	case *IntArray:
		for i, r := range regs {
			a.Data[i] = f.GetVReg(r)
		}
	case *RefArray:
		for i, r := range regs {
			a.Data[i] = f.GetVRegReference(r)
		}
	default:
		rt.Throw(t, "Ljava/lang/LinkageError;", "filled-new-array of unsupported kind")
		return false
	}
	result.SetRef(arr)
	return true
}

// fieldTarget decodes the receiver and field of an instance access,
// null-checking the receiver.
func (rt *testRuntime) fieldTarget(t *Thread, f *ShadowFrame, pc uint32) (*testInstance, uint32, bool) {
	code := f.Method().Code
	obj := f.GetVRegReference(uint16(code.VRegB22c(pc)))
	if obj == nil {
		t.ThrowNew(ExNullPointer, "null receiver in field access")
		return nil, 0, false
	}
	return obj.(*testInstance), code.VRegC22c(pc), true
}

// storeField writes v into the destination register per kind.
func storeField(f *ShadowFrame, reg uint16, kind PrimitiveKind, v Value) {
	switch kind {
	case KindLong:
		f.SetVRegLong(reg, v.Long())
	case KindObject:
		f.SetVRegReference(reg, v.Ref())
	default:
		f.SetVReg(reg, v.Int())
	}
}

// loadField reads the source register per kind.
func loadField(f *ShadowFrame, reg uint16, kind PrimitiveKind) Value {
	var v Value
	switch kind {
	case KindLong:
		v.SetLong(f.GetVRegLong(reg))
	case KindObject:
		v.SetRef(f.GetVRegReference(reg))
	case KindBoolean:
		v.SetInt(f.GetVReg(reg) & 1)
	case KindByte:
		v.SetInt(int32(int8(f.GetVReg(reg))))
	case KindChar:
		v.SetInt(int32(uint16(f.GetVReg(reg))))
	case KindShort:
		v.SetInt(int32(int16(f.GetVReg(reg))))
	default:
		v.SetInt(f.GetVReg(reg))
	}
	return v
}

func (rt *testRuntime) FieldGet(t *Thread, f *ShadowFrame, pc uint32, scope FieldScope, kind PrimitiveKind, accessCheck bool) bool {
	code := f.Method().Code
	if scope == StaticField {
		idx := code.VRegB21c(pc)
		fld, ok := rt.fieldPool[idx]
		if !ok {
			rt.Throw(t, "Ljava/lang/LinkageError;", fmt.Sprintf("no field at index %d", idx))
			return false
		}
		storeField(f, uint16(code.VRegA21c(pc)), kind, fld.value)
		return true
	}
	obj, idx, ok := rt.fieldTarget(t, f, pc)
	if !ok {
		return false
	}
	storeField(f, uint16(code.VRegA22c(pc)), kind, obj.fields[idx])
	return true
}

func (rt *testRuntime) FieldPut(t *Thread, f *ShadowFrame, pc uint32, scope FieldScope, kind PrimitiveKind, accessCheck bool) bool {
	code := f.Method().Code
	if scope == StaticField {
		idx := code.VRegB21c(pc)
		fld, ok := rt.fieldPool[idx]
		if !ok {
			rt.Throw(t, "Ljava/lang/LinkageError;", fmt.Sprintf("no field at index %d", idx))
			return false
		}
		fld.value = loadField(f, uint16(code.VRegA21c(pc)), kind)
		return true
	}
	obj, idx, ok := rt.fieldTarget(t, f, pc)
	if !ok {
		return false
	}
	obj.fields[idx] = loadField(f, uint16(code.VRegA22c(pc)), kind)
	return true
}

// Quick forms reuse the field index slot as the precomputed offset.
func (rt *testRuntime) FieldGetQuick(t *Thread, f *ShadowFrame, pc uint32, kind PrimitiveKind) bool {
	code := f.Method().Code
	obj, off, ok := rt.fieldTarget(t, f, pc)
	if !ok {
		return false
	}
	storeField(f, uint16(code.VRegA22c(pc)), kind, obj.fields[off])
	return true
}

func (rt *testRuntime) FieldPutQuick(t *Thread, f *ShadowFrame, pc uint32, kind PrimitiveKind) bool {
	code := f.Method().Code
	obj, off, ok := rt.fieldTarget(t, f, pc)
	if !ok {
		return false
	}
	obj.fields[off] = loadField(f, uint16(code.VRegA22c(pc)), kind)
	return true
}

// invokeArgRegs decodes the caller argument registers of an invoke.
func invokeArgRegs(code *CodeItem, pc uint32, rangeForm bool) []uint16 {
	var regs []uint16
	if rangeForm {
		first := code.VRegC3rc(pc)
		count := uint16(code.VRegA3rc(pc))
		for r := first; r < first+count; r++ {
			regs = append(regs, r)
		}
	} else {
		count := code.VRegA35c(pc)
		args := code.Args35c(pc)
		for i := uint8(0); i < count; i++ {
			regs = append(regs, uint16(args[i]))
		}
	}
	return regs
}

// call builds the callee frame, recurses into the interpreter, and
// deposits the return value.
func (rt *testRuntime) call(t *Thread, f *ShadowFrame, target *Method, argRegs []uint16, accessCheck bool, result *Value) bool {
	if t.CallDepth() >= rt.maxDepth {
		t.ThrowNew(ExStackOverflow, target.String())
		return false
	}
	code := target.Code
	callee := NewShadowFrame(target, code.RegistersSize)
	dst := code.RegistersSize - code.InsSize
	for i, r := range argRegs {
		if o := f.GetVRegReference(r); o != nil {
			callee.SetVRegReference(dst+uint16(i), o)
		} else {
			callee.SetVReg(dst+uint16(i), f.GetVReg(r))
		}
	}
	t.PushCall()
	var ret Value
	if accessCheck {
		ret = ExecuteAccessChecks(t, target, code, callee, Value{})
	} else {
		ret = Execute(t, target, code, callee, Value{})
	}
	t.PopCall()
	if t.IsExceptionPending() {
		return false
	}
	*result = ret
	return true
}

func (rt *testRuntime) Invoke(t *Thread, f *ShadowFrame, pc uint32, kind InvokeKind, rangeForm, accessCheck bool, result *Value) bool {
	code := f.Method().Code
	var idx uint32
	if rangeForm {
		idx = code.VRegB3rc(pc)
	} else {
		idx = code.VRegB35c(pc)
	}
	resolved, ok := rt.methodPool[idx]
	if !ok {
		rt.Throw(t, "Ljava/lang/LinkageError;", fmt.Sprintf("no method at index %d", idx))
		return false
	}
	argRegs := invokeArgRegs(code, pc, rangeForm)

	target := resolved
	if !resolved.Static {
		if len(argRegs) == 0 {
			rt.Throw(t, "Ljava/lang/LinkageError;", "missing receiver")
			return false
		}
		receiver := f.GetVRegReference(argRegs[0])
		if receiver == nil {
			t.ThrowNew(ExNullPointer, "invoke on null receiver")
			return false
		}
		switch kind {
		case InvokeVirtual, InvokeInterface:
			target = rt.lookupVirtual(receiver.GetClass(), resolved.Name)
		case InvokeSuper:
			target = rt.lookupVirtual(f.Method().Declaring.Super, resolved.Name)
		}
		if target == nil {
			rt.Throw(t, "Ljava/lang/LinkageError;", "no implementation of "+resolved.Name)
			return false
		}
	}
	return rt.call(t, f, target, argRegs, accessCheck, result)
}

func (rt *testRuntime) InvokeVirtualQuick(t *Thread, f *ShadowFrame, pc uint32, rangeForm bool, result *Value) bool {
	code := f.Method().Code
	var vtableIdx uint32
	if rangeForm {
		vtableIdx = code.VRegB3rc(pc)
	} else {
		vtableIdx = code.VRegB35c(pc)
	}
	argRegs := invokeArgRegs(code, pc, rangeForm)
	if len(argRegs) == 0 {
		rt.Throw(t, "Ljava/lang/LinkageError;", "missing receiver")
		return false
	}
	receiver := f.GetVRegReference(argRegs[0])
	if receiver == nil {
		t.ThrowNew(ExNullPointer, "invoke on null receiver")
		return false
	}
	vt := rt.vtables[receiver.GetClass()]
	if vtableIdx >= uint32(len(vt)) {
		rt.Throw(t, "Ljava/lang/LinkageError;", fmt.Sprintf("bad vtable index %d", vtableIdx))
		return false
	}
	return rt.call(t, f, vt[vtableIdx], argRegs, false, result)
}

func (rt *testRuntime) CheckSuspend(t *Thread) {
	rt.suspends++
	t.ClearSuspend()
}

func (rt *testRuntime) Throw(t *Thread, descriptor, msg string) {
	c, ok := rt.classes[descriptor]
	if !ok {
		c = rt.defineClass(descriptor, rt.throwableClass)
	}
	t.SetException(NewThrowable(c, msg))
}

// ---------------------------------------------------------------------------
// Execution helpers
// ---------------------------------------------------------------------------

// run executes a static method body over a fresh frame and returns the
// result, the frame, and the thread for further inspection.
func run(t *testing.T, rt *testRuntime, code *CodeItem) (Value, *ShadowFrame, *Thread) {
	t.Helper()
	method := &Method{Name: "test", Declaring: rt.objectClass, Static: true, Code: code}
	return runMethod(t, rt, method)
}

// runSetup is run with a chance to seed registers before execution.
func runSetup(t *testing.T, rt *testRuntime, code *CodeItem, setup func(*ShadowFrame)) (Value, *ShadowFrame, *Thread) {
	t.Helper()
	method := &Method{Name: "test", Declaring: rt.objectClass, Static: true, Code: code}
	th := NewThread(rt)
	frame := NewShadowFrame(method, code.RegistersSize)
	if setup != nil {
		setup(frame)
	}
	result := Execute(th, method, code, frame, Value{})
	return result, frame, th
}

func runMethod(t *testing.T, rt *testRuntime, method *Method) (Value, *ShadowFrame, *Thread) {
	t.Helper()
	th := NewThread(rt)
	frame := NewShadowFrame(method, method.Code.RegistersSize)
	result := Execute(th, method, method.Code, frame, Value{})
	return result, frame, th
}

// expectPending asserts that an exception of the given class is pending.
func expectPending(t *testing.T, th *Thread, descriptor string) {
	t.Helper()
	if !th.IsExceptionPending() {
		t.Fatalf("expected pending %s, got none", descriptor)
	}
	if got := th.Exception().GetClass().Descriptor; got != descriptor {
		t.Fatalf("expected pending %s, got %s", descriptor, got)
	}
}

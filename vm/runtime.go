package vm

// ---------------------------------------------------------------------------
// Runtime: the collaborator surface the dispatch loop consumes
// ---------------------------------------------------------------------------

// PrimitiveKind selects the value kind for parameterized field access.
type PrimitiveKind int

const (
	KindBoolean PrimitiveKind = iota
	KindByte
	KindChar
	KindShort
	KindInt
	KindLong
	KindObject
)

// FieldScope selects instance versus static field access.
type FieldScope int

const (
	InstanceField FieldScope = iota
	StaticField
)

// InvokeKind selects the dispatch flavor of an invoke.
type InvokeKind int

const (
	InvokeVirtual InvokeKind = iota
	InvokeSuper
	InvokeDirect
	InvokeStatic
	InvokeInterface
)

// Runtime is everything the dispatch loop delegates: resolution and class
// initialization, allocation, field access, method dispatch, monitors, the
// cooperative-suspend protocol, and exception construction. Every method
// that can fail signals failure by pending an exception on the thread;
// boolean results report that failure so the loop can route to unwind
// without re-reading the thread slot.
//
// Calls receive the frame plus the dex PC of the driving instruction and
// decode their own operands through the CodeItem accessors, the way the
// result-register writers (invokes, filled-new-array) must anyway.
type Runtime interface {
	// ResolveString resolves a string-pool entry. Nil means failure with
	// an exception pending.
	ResolveString(t *Thread, m *Method, idx uint32) Object

	// ResolveClass resolves and, where required, initializes a type-pool
	// entry. Nil means failure with an exception pending.
	ResolveClass(t *Thread, m *Method, idx uint32, accessCheck bool) *Class

	// AllocInstance allocates an instance of the type-pool entry.
	AllocInstance(t *Thread, m *Method, idx uint32, accessCheck bool) Object

	// AllocArray allocates an array of the type-pool entry. A negative
	// length pends NegativeArraySizeException.
	AllocArray(t *Thread, m *Method, idx uint32, length int32, accessCheck bool) Object

	// FilledNewArray allocates and fills an array from the instruction's
	// argument registers, depositing the reference in result.
	FilledNewArray(t *Thread, f *ShadowFrame, pc uint32, rangeForm, accessCheck bool, result *Value) bool

	// FieldGet and FieldPut perform resolved field access parameterized by
	// scope, kind, and access checking.
	FieldGet(t *Thread, f *ShadowFrame, pc uint32, scope FieldScope, kind PrimitiveKind, accessCheck bool) bool
	FieldPut(t *Thread, f *ShadowFrame, pc uint32, scope FieldScope, kind PrimitiveKind, accessCheck bool) bool

	// FieldGetQuick and FieldPutQuick take the precomputed field offset in
	// the instruction instead of a pool index. They still null-check the
	// receiver.
	FieldGetQuick(t *Thread, f *ShadowFrame, pc uint32, kind PrimitiveKind) bool
	FieldPutQuick(t *Thread, f *ShadowFrame, pc uint32, kind PrimitiveKind) bool

	// Invoke resolves the target per kind, builds the callee frame,
	// re-enters the dispatch loop, and deposits the return value in
	// result.
	Invoke(t *Thread, f *ShadowFrame, pc uint32, kind InvokeKind, rangeForm, accessCheck bool, result *Value) bool

	// InvokeVirtualQuick dispatches through a precomputed vtable index.
	InvokeVirtualQuick(t *Thread, f *ShadowFrame, pc uint32, rangeForm bool, result *Value) bool

	// MonitorEnter and MonitorExit acquire and release the object's
	// monitor; exit may pend IllegalMonitorStateException. The operand is
	// never nil; the loop null-checks first.
	MonitorEnter(t *Thread, obj Object)
	MonitorExit(t *Thread, obj Object)

	// CheckSuspend services raised thread flags and may block arbitrarily
	// long (stop-the-world collection, debugger attach).
	CheckSuspend(t *Thread)

	// Throw constructs a throwable of the class named by descriptor and
	// pends it on the thread.
	Throw(t *Thread, descriptor, msg string)
}

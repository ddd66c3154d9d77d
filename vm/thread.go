package vm

import (
	"fmt"
	"sync/atomic"
)

// ---------------------------------------------------------------------------
// Thread: per-host-thread execution state
// ---------------------------------------------------------------------------

// Thread state flags checked before every instruction.
const (
	flagSuspendRequest uint32 = 1 << 0
	flagCheckpoint     uint32 = 1 << 1
)

// Thread is the handle the dispatch loop runs against: the pending-
// exception slot, the asynchronous flag word polled at every suspension
// point, and the interpreter call depth. One Thread per host thread; it is
// never shared.
type Thread struct {
	rt      Runtime
	instr   *Instrumentation
	pending Object
	flags   atomic.Uint32
	depth   int32
}

// NewThread creates a thread bound to its runtime collaborator.
func NewThread(rt Runtime) *Thread {
	return &Thread{rt: rt, instr: NewInstrumentation()}
}

// Runtime returns the collaborator the thread executes against.
func (t *Thread) Runtime() Runtime { return t.rt }

// Instrumentation returns the thread's instrumentation hooks.
func (t *Thread) Instrumentation() *Instrumentation { return t.instr }

// SetInstrumentation replaces the instrumentation hooks. Callers do this
// before entering the dispatch loop, not during execution.
func (t *Thread) SetInstrumentation(in *Instrumentation) { t.instr = in }

// IsExceptionPending reports whether an exception is waiting to unwind.
func (t *Thread) IsExceptionPending() bool { return t.pending != nil }

// Exception returns the pending exception without clearing it.
func (t *Thread) Exception() Object { return t.pending }

// SetException makes ex the thread's pending exception.
func (t *Thread) SetException(ex Object) { t.pending = ex }

// ClearException clears the pending slot.
func (t *Thread) ClearException() { t.pending = nil }

// ThrowNew asks the runtime to construct and pend an exception of the
// class named by descriptor.
func (t *Thread) ThrowNew(descriptor, msg string) {
	t.rt.Throw(t, descriptor, msg)
}

// ThrowNewf is ThrowNew with a formatted message.
func (t *Thread) ThrowNewf(descriptor, format string, args ...any) {
	t.rt.Throw(t, descriptor, fmt.Sprintf(format, args...))
}

// TestAllFlags reports whether any asynchronous flag is raised.
func (t *Thread) TestAllFlags() bool { return t.flags.Load() != 0 }

// RequestSuspend raises the suspend flag; the next pre-instruction check
// routes through the cooperative-suspend collaborator.
func (t *Thread) RequestSuspend() { t.flags.Or(flagSuspendRequest) }

// ClearSuspend lowers the suspend flag.
func (t *Thread) ClearSuspend() { t.flags.And(^flagSuspendRequest) }

// CallDepth returns the current interpreter recursion depth.
func (t *Thread) CallDepth() int32 { return t.depth }

// PushCall and PopCall bracket one interpreter entry. The depth limit
// itself belongs to the invoke collaborator.
func (t *Thread) PushCall() { t.depth++ }
func (t *Thread) PopCall()  { t.depth-- }

// VerifyStack checks the thread's interpreter stack bookkeeping. Called on
// entry to the dispatch loop; an inconsistency is a programmer error.
func (t *Thread) VerifyStack() {
	if t.depth < 0 {
		panic(fmt.Sprintf("vm: thread call depth underflow: %d", t.depth))
	}
}

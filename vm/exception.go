package vm

// ---------------------------------------------------------------------------
// Exceptions and the unwind helper
// ---------------------------------------------------------------------------

// Descriptors of the exception classes the dispatch loop raises itself.
// The runtime collaborator maps descriptors to classes when constructing
// the throwable.
const (
	ExNullPointer           = "Ljava/lang/NullPointerException;"
	ExArithmetic            = "Ljava/lang/ArithmeticException;"
	ExArrayIndexOutOfBounds = "Ljava/lang/ArrayIndexOutOfBoundsException;"
	ExArrayStore            = "Ljava/lang/ArrayStoreException;"
	ExClassCast             = "Ljava/lang/ClassCastException;"
	ExNegativeArraySize     = "Ljava/lang/NegativeArraySizeException;"
	ExIllegalMonitorState   = "Ljava/lang/IllegalMonitorStateException;"
	ExStackOverflow         = "Ljava/lang/StackOverflowError;"
)

// Throwable is the exception object the default collaborators construct.
// Host runtimes may pend any Object; the unwind helper only consults the
// class.
type Throwable struct {
	Class   *Class
	Message string
}

// NewThrowable creates a throwable of the given class.
func NewThrowable(class *Class, msg string) *Throwable {
	return &Throwable{Class: class, Message: msg}
}

func (e *Throwable) GetClass() *Class { return e.Class }

func (e *Throwable) String() string {
	return e.Class.Descriptor + ": " + e.Message
}

// DexNoIndex is the unwind helper's miss sentinel: no handler in this
// frame, keep unwinding in the caller.
const DexNoIndex = ^uint32(0)

// FindNextInstructionFollowingException searches the method's try/catch
// table for the innermost range covering dexPC whose handler class is
// assignable from the pending exception's class; a catch-all entry always
// matches. On a hit it notifies instrumentation of the catch and returns
// the handler dex PC; the caller relocates the cursor and execution
// continues with the exception still pending until a move-exception
// consumes it. On a miss it notifies instrumentation that the method exits
// by exception and returns DexNoIndex; the exception stays pending for the
// caller.
func FindNextInstructionFollowingException(t *Thread, f *ShadowFrame, dexPC uint32, thisObject Object, instr *Instrumentation) uint32 {
	ex := t.Exception()
	code := f.Method().Code
	for i := range code.Tries {
		try := &code.Tries[i]
		if dexPC < try.StartAddr || dexPC >= try.EndAddr {
			continue
		}
		for _, h := range try.Handlers {
			if h.Type == nil || h.Type.IsAssignableFrom(ex.GetClass()) {
				if instr.HasExceptionCaughtListeners() {
					instr.ExceptionCaughtEvent(t, thisObject, f.Method(), h.Addr, ex)
				}
				return h.Addr
			}
		}
	}
	if instr.HasMethodUnwindListeners() {
		instr.MethodUnwindEvent(t, thisObject, f.Method(), dexPC)
	}
	return DexNoIndex
}

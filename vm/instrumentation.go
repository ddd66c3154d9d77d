package vm

import (
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("dexvm.vm")

// ---------------------------------------------------------------------------
// Instrumentation: method-entry/exit, dex-pc and exception event hooks
// ---------------------------------------------------------------------------

// Listener signatures for the events the dispatch loop can emit.
type (
	MethodEntryListener     func(t *Thread, this Object, m *Method, dexPC uint32)
	MethodExitListener      func(t *Thread, this Object, m *Method, dexPC uint32, ret Value)
	MethodUnwindListener    func(t *Thread, this Object, m *Method, dexPC uint32)
	DexPCMovedListener      func(t *Thread, this Object, m *Method, dexPC uint32)
	ExceptionCaughtListener func(t *Thread, this Object, m *Method, catchDexPC uint32, ex Object)
)

// Instrumentation is the event fan-out consulted around every instruction.
// The Has* predicates let the hot path skip event construction entirely
// when nothing is listening, so the zero-listener case costs one nil
// check per event class.
type Instrumentation struct {
	methodEntry     []MethodEntryListener
	methodExit      []MethodExitListener
	methodUnwind    []MethodUnwindListener
	dexPCMoved      []DexPCMovedListener
	exceptionCaught []ExceptionCaughtListener

	// Trace logs every instruction through the package logger at debug
	// level. Expensive; off unless a config turns it on.
	Trace bool
}

// NewInstrumentation creates an empty instrumentation set.
func NewInstrumentation() *Instrumentation {
	return &Instrumentation{}
}

func (in *Instrumentation) AddMethodEntryListener(l MethodEntryListener) {
	in.methodEntry = append(in.methodEntry, l)
}

func (in *Instrumentation) AddMethodExitListener(l MethodExitListener) {
	in.methodExit = append(in.methodExit, l)
}

func (in *Instrumentation) AddMethodUnwindListener(l MethodUnwindListener) {
	in.methodUnwind = append(in.methodUnwind, l)
}

func (in *Instrumentation) AddDexPCMovedListener(l DexPCMovedListener) {
	in.dexPCMoved = append(in.dexPCMoved, l)
}

func (in *Instrumentation) AddExceptionCaughtListener(l ExceptionCaughtListener) {
	in.exceptionCaught = append(in.exceptionCaught, l)
}

func (in *Instrumentation) HasMethodEntryListeners() bool     { return len(in.methodEntry) > 0 }
func (in *Instrumentation) HasMethodExitListeners() bool      { return len(in.methodExit) > 0 }
func (in *Instrumentation) HasMethodUnwindListeners() bool    { return len(in.methodUnwind) > 0 }
func (in *Instrumentation) HasDexPCListeners() bool           { return len(in.dexPCMoved) > 0 }
func (in *Instrumentation) HasExceptionCaughtListeners() bool { return len(in.exceptionCaught) > 0 }

// MethodEnterEvent fires when the dispatch loop enters a method at PC
// zero. Resumed execution (nonzero starting PC) does not re-fire it.
func (in *Instrumentation) MethodEnterEvent(t *Thread, this Object, m *Method, dexPC uint32) {
	for _, l := range in.methodEntry {
		l(t, this, m, dexPC)
	}
}

// MethodExitEvent fires on every normal return.
func (in *Instrumentation) MethodExitEvent(t *Thread, this Object, m *Method, dexPC uint32, ret Value) {
	for _, l := range in.methodExit {
		l(t, this, m, dexPC, ret)
	}
}

// MethodUnwindEvent fires when an exception leaves the method uncaught.
func (in *Instrumentation) MethodUnwindEvent(t *Thread, this Object, m *Method, dexPC uint32) {
	for _, l := range in.methodUnwind {
		l(t, this, m, dexPC)
	}
}

// DexPcMovedEvent fires before each instruction while PC listeners are
// installed.
func (in *Instrumentation) DexPcMovedEvent(t *Thread, this Object, m *Method, dexPC uint32) {
	for _, l := range in.dexPCMoved {
		l(t, this, m, dexPC)
	}
}

// ExceptionCaughtEvent fires when the unwind helper lands on a handler.
func (in *Instrumentation) ExceptionCaughtEvent(t *Thread, this Object, m *Method, catchDexPC uint32, ex Object) {
	for _, l := range in.exceptionCaught {
		l(t, this, m, catchDexPC, ex)
	}
}

// traceExecution logs the instruction about to execute.
func (in *Instrumentation) traceExecution(f *ShadowFrame, code *CodeItem, dexPC uint32) {
	if !in.Trace {
		return
	}
	log.Debugf("%s pc=0x%04x %s", f.Method(), dexPC, code.OpcodeAt(dexPC))
}

package vm

import "math"

// ---------------------------------------------------------------------------
// ShadowFrame: per-invocation register file and bookkeeping
// ---------------------------------------------------------------------------

// ShadowFrame is the execution state of a single method invocation: a
// fixed-size file of 32-bit virtual registers, a parallel reference array
// that doubles as the precise-GC root shadow, the current dex PC, and the
// owning method. The frame is created and destroyed by the caller of the
// dispatch loop; the loop mutates registers, references, and the PC and
// never resizes anything.
//
// A register slot is reference-tagged exactly when its entry in the
// reference array is non-nil. Writing a non-reference value clears the
// entry; writing a reference sets it and stores the reference's stable
// word so integer comparisons over reference registers observe identity.
// A slot written with the integer constant zero reads as both int 0 and
// reference null without further tagging.
type ShadowFrame struct {
	method *Method
	regs   []uint32
	refs   []Object
	dexPC  uint32
}

// NewShadowFrame creates a frame with numRegs registers for method.
func NewShadowFrame(method *Method, numRegs uint16) *ShadowFrame {
	return &ShadowFrame{
		method: method,
		regs:   make([]uint32, numRegs),
		refs:   make([]Object, numRegs),
	}
}

// Method returns the method this frame executes.
func (f *ShadowFrame) Method() *Method { return f.method }

// NumberOfVRegs returns the register-file size.
func (f *ShadowFrame) NumberOfVRegs() int { return len(f.regs) }

// DexPC returns the published program counter.
func (f *ShadowFrame) DexPC() uint32 { return f.dexPC }

// SetDexPC publishes the program counter so the garbage collector and
// instrumentation observe the frame's current position.
func (f *ShadowFrame) SetDexPC(pc uint32) { f.dexPC = pc }

// HasReferenceArray reports whether the frame carries its root shadow.
// A frame without one must never reach the dispatch loop.
func (f *ShadowFrame) HasReferenceArray() bool { return f.refs != nil }

// GetVReg reads register i as a signed 32-bit int.
func (f *ShadowFrame) GetVReg(i uint16) int32 { return int32(f.regs[i]) }

// GetVRegFloat reads register i reinterpreted as a single.
func (f *ShadowFrame) GetVRegFloat(i uint16) float32 {
	return math.Float32frombits(f.regs[i])
}

// GetVRegLong reads the register pair (i, i+1) as a signed 64-bit long.
func (f *ShadowFrame) GetVRegLong(i uint16) int64 {
	return int64(uint64(f.regs[i]) | uint64(f.regs[i+1])<<32)
}

// GetVRegDouble reads the register pair (i, i+1) as a double.
func (f *ShadowFrame) GetVRegDouble(i uint16) float64 {
	return math.Float64frombits(uint64(f.regs[i]) | uint64(f.regs[i+1])<<32)
}

// GetVRegReference reads register i's reference, nil when the slot is not
// reference-tagged.
func (f *ShadowFrame) GetVRegReference(i uint16) Object { return f.refs[i] }

// SetVReg writes a 32-bit value into register i, clearing its reference
// tag.
func (f *ShadowFrame) SetVReg(i uint16, v int32) {
	f.regs[i] = uint32(v)
	f.refs[i] = nil
}

// SetVRegFloat writes a single into register i.
func (f *ShadowFrame) SetVRegFloat(i uint16, v float32) {
	f.regs[i] = math.Float32bits(v)
	f.refs[i] = nil
}

// SetVRegLong writes a 64-bit value into the pair (i, i+1), clearing both
// reference tags.
func (f *ShadowFrame) SetVRegLong(i uint16, v int64) {
	f.regs[i] = uint32(uint64(v))
	f.regs[i+1] = uint32(uint64(v) >> 32)
	f.refs[i] = nil
	f.refs[i+1] = nil
}

// SetVRegDouble writes a double into the pair (i, i+1).
func (f *ShadowFrame) SetVRegDouble(i uint16, v float64) {
	f.SetVRegLong(i, int64(math.Float64bits(v)))
}

// SetVRegReference writes a reference into register i, tagging the slot
// and storing the reference's word for integer reads.
func (f *ShadowFrame) SetVRegReference(i uint16, o Object) {
	f.regs[i] = referenceWord(o)
	f.refs[i] = o
}

// GetThisObject returns the receiver for a non-static method, which sits
// in the first in-register: register numRegs - insSize.
func (f *ShadowFrame) GetThisObject(insSize uint16) Object {
	if f.method != nil && f.method.Static {
		return nil
	}
	return f.refs[uint16(len(f.regs))-insSize]
}

// References enumerates the frame's reference-tagged registers: the root
// set a stop-the-world collector reads at a suspension point. The returned
// slice is indexed by register number; non-tagged slots are nil.
func (f *ShadowFrame) References() []Object { return f.refs }

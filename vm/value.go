package vm

import (
	"math"
	"sync"
)

// ---------------------------------------------------------------------------
// Value: typed one-slot holder for return values and the result register
// ---------------------------------------------------------------------------

// Value is the typed scratch slot threaded through the dispatch loop: it
// carries the most recent callee's return value until a move-result
// consumes it, and it is what a method execution returns to its caller.
// The numeric interpretations all alias one 64-bit word; the reference
// interpretation is kept separately so the garbage collector can see it.
type Value struct {
	bits uint64
	ref  Object
}

// Int returns the low 32 bits as a signed int.
func (v Value) Int() int32 { return int32(v.bits) }

// Long returns the full 64 bits as a signed long.
func (v Value) Long() int64 { return int64(v.bits) }

// Float returns the low 32 bits reinterpreted as an IEEE-754 single.
func (v Value) Float() float32 { return math.Float32frombits(uint32(v.bits)) }

// Double returns the 64 bits reinterpreted as an IEEE-754 double.
func (v Value) Double() float64 { return math.Float64frombits(v.bits) }

// Ref returns the reference interpretation, nil for non-reference values.
func (v Value) Ref() Object { return v.ref }

// SetInt stores a 32-bit value, clearing the upper half and the reference.
func (v *Value) SetInt(i int32) { v.bits = uint64(uint32(i)); v.ref = nil }

// SetLong stores a 64-bit value, clearing the reference.
func (v *Value) SetLong(j int64) { v.bits = uint64(j); v.ref = nil }

// SetFloat stores a single, clearing the upper half and the reference.
func (v *Value) SetFloat(f float32) {
	v.bits = uint64(math.Float32bits(f))
	v.ref = nil
}

// SetDouble stores a double, clearing the reference.
func (v *Value) SetDouble(d float64) {
	v.bits = math.Float64bits(d)
	v.ref = nil
}

// SetRef stores a reference. The word half holds the reference's register
// word so a later integer read observes the same identity the registers do.
func (v *Value) SetRef(o Object) {
	v.bits = uint64(referenceWord(o))
	v.ref = o
}

// ---------------------------------------------------------------------------
// Object and reference words
// ---------------------------------------------------------------------------

// Object is a managed heap reference as seen by the interpreter. Anything
// the collaborators hand back (instances, arrays, strings, classes-as-
// objects, throwables) implements it.
type Object interface {
	GetClass() *Class
}

// Register words for references come from a process-wide handle table so
// that reference equality through the integer view of a register (if-eq on
// two object registers) matches object identity, and so that null is
// always word zero.
var refWords = struct {
	sync.Mutex
	ids  map[Object]uint32
	next uint32
}{ids: make(map[Object]uint32), next: 1}

// referenceWord returns the stable nonzero 32-bit word for o, or 0 for nil.
func referenceWord(o Object) uint32 {
	if o == nil {
		return 0
	}
	refWords.Lock()
	defer refWords.Unlock()
	if w, ok := refWords.ids[o]; ok {
		return w
	}
	w := refWords.next
	refWords.next++
	refWords.ids[o] = w
	return w
}

package vm

import "encoding/binary"

// ---------------------------------------------------------------------------
// Typed array objects
// ---------------------------------------------------------------------------

// Array is the view of a managed array the dispatch loop needs: length for
// array-length and fill-array-data, class for store checks.
type Array interface {
	Object
	Len() int32
}

// BooleanArray holds boolean elements as raw bytes (0 or 1).
type BooleanArray struct {
	Class *Class
	Data  []uint8
}

// ByteArray holds signed byte elements.
type ByteArray struct {
	Class *Class
	Data  []int8
}

// CharArray holds unsigned 16-bit char elements.
type CharArray struct {
	Class *Class
	Data  []uint16
}

// ShortArray holds signed 16-bit elements.
type ShortArray struct {
	Class *Class
	Data  []int16
}

// IntArray holds 32-bit int elements; float arrays share this storage with
// the bits reinterpreted, as the register file does.
type IntArray struct {
	Class *Class
	Data  []int32
}

// LongArray holds 64-bit elements; double arrays share this storage.
type LongArray struct {
	Class *Class
	Data  []int64
}

// RefArray holds object references.
type RefArray struct {
	Class *Class
	Data  []Object
}

func (a *BooleanArray) GetClass() *Class { return a.Class }
func (a *ByteArray) GetClass() *Class    { return a.Class }
func (a *CharArray) GetClass() *Class    { return a.Class }
func (a *ShortArray) GetClass() *Class   { return a.Class }
func (a *IntArray) GetClass() *Class     { return a.Class }
func (a *LongArray) GetClass() *Class    { return a.Class }
func (a *RefArray) GetClass() *Class     { return a.Class }

func (a *BooleanArray) Len() int32 { return int32(len(a.Data)) }
func (a *ByteArray) Len() int32    { return int32(len(a.Data)) }
func (a *CharArray) Len() int32    { return int32(len(a.Data)) }
func (a *ShortArray) Len() int32   { return int32(len(a.Data)) }
func (a *IntArray) Len() int32     { return int32(len(a.Data)) }
func (a *LongArray) Len() int32    { return int32(len(a.Data)) }
func (a *RefArray) Len() int32     { return int32(len(a.Data)) }

// CheckAssignable reports whether val may be stored into the array, which
// requires assignability to the element class. Null is always storable.
func (a *RefArray) CheckAssignable(val Object) bool {
	if val == nil {
		return true
	}
	elem := a.Class.Component
	return elem == nil || elem.IsAssignableFrom(val.GetClass())
}

// checkIndex validates index against length, raising
// ArrayIndexOutOfBoundsException on the thread when it is out of range.
func checkIndex(t *Thread, length, index int32) bool {
	if index < 0 || index >= length {
		t.ThrowNewf(ExArrayIndexOutOfBounds, "length=%d; index=%d", length, index)
		return false
	}
	return true
}

// fillArrayData bulk-copies a decoded array-data payload into the array's
// raw storage. The caller has already checked the element count against
// the array length. Bytes are little-endian per element.
func fillArrayData(arr Object, count uint32, data []byte) {
	switch a := arr.(type) {
	case *BooleanArray:
		for i := uint32(0); i < count; i++ {
			a.Data[i] = data[i]
		}
	case *ByteArray:
		for i := uint32(0); i < count; i++ {
			a.Data[i] = int8(data[i])
		}
	case *CharArray:
		for i := uint32(0); i < count; i++ {
			a.Data[i] = binary.LittleEndian.Uint16(data[i*2:])
		}
	case *ShortArray:
		for i := uint32(0); i < count; i++ {
			a.Data[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
		}
	case *IntArray:
		for i := uint32(0); i < count; i++ {
			a.Data[i] = int32(binary.LittleEndian.Uint32(data[i*4:]))
		}
	case *LongArray:
		for i := uint32(0); i < count; i++ {
			a.Data[i] = int64(binary.LittleEndian.Uint64(data[i*8:]))
		}
	}
}

// arrayLength returns the length of any typed array, or -1 when the object
// is not an array. The dispatch loop only calls it on verified input.
func arrayLength(o Object) int32 {
	if a, ok := o.(Array); ok {
		return a.Len()
	}
	return -1
}

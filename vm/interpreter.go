package vm

import (
	"fmt"
	"sync/atomic"
)

// ---------------------------------------------------------------------------
// The dispatch loop
// ---------------------------------------------------------------------------

// returnBarrier is the sentinel behind return-void-barrier. An atomic
// store has release semantics under the Go memory model: every write the
// method made is ordered before it for any observer. Release, not a full
// fence, is the documented choice.
var returnBarrier atomic.Uint32

// Execute runs the method body in code over frame f until it returns or
// an uncaught exception unwinds past it, without access checking in the
// delegated operations. resultRegister seeds the caller-side result slot
// consumed by move-result after an invoke.
//
// On normal return the returned Value carries the typed result (zero for
// void). On unwind past the frame it is empty and the exception stays
// pending on the thread.
func Execute(t *Thread, m *Method, code *CodeItem, f *ShadowFrame, resultRegister Value) Value {
	return executeSwitch(t, m, code, f, resultRegister, false)
}

// ExecuteAccessChecks is Execute with access checking enabled in the
// resolution, field-access, and invoke collaborators.
func ExecuteAccessChecks(t *Thread, m *Method, code *CodeItem, f *ShadowFrame, resultRegister Value) Value {
	return executeSwitch(t, m, code, f, resultRegister, true)
}

// throwNullPointerFromDexPC pends the NullPointerException for a null
// dereference at the current location.
func throwNullPointerFromDexPC(t *Thread, m *Method, dexPC uint32) {
	t.ThrowNewf(ExNullPointer, "null reference in %s at pc 0x%04x", m, dexPC)
}

// unexpectedOpcode aborts on a reserved opcode. Never reached on verified
// input.
func unexpectedOpcode(m *Method, code *CodeItem, pc uint32) {
	log.Criticalf("unexpected opcode 0x%02x in %s at pc 0x%04x",
		byte(code.Insns[pc]&0xff), m, pc)
	panic(fmt.Sprintf("vm: unexpected opcode 0x%02x", byte(code.Insns[pc]&0xff)))
}

func executeSwitch(t *Thread, m *Method, code *CodeItem, f *ShadowFrame, resultRegister Value, accessCheck bool) Value {
	if !f.HasReferenceArray() {
		log.Criticalf("invalid shadow frame for interpreter use: %s", m)
		panic("vm: shadow frame without reference array")
	}
	t.VerifyStack()
	rt := t.Runtime()
	instr := t.Instrumentation()

	// The receiver cannot change while this code runs, so it is cached
	// outside the register file where it stays a reachable root even if
	// the register holding it is overwritten.
	thisObject := f.GetThisObject(code.InsSize)

	pc := f.DexPC()
	if pc == 0 {
		// Entering the method, as opposed to resuming at a saved PC.
		if instr.HasMethodEntryListeners() {
			instr.MethodEnterEvent(t, thisObject, m, 0)
		}
	}

	// handlePending relocates the cursor to the innermost matching catch
	// handler. False means no handler in this frame: the caller returns
	// an empty value with the exception still pending.
	handlePending := func() bool {
		found := FindNextInstructionFollowingException(t, f, pc, thisObject, instr)
		if found == DexNoIndex {
			return false
		}
		pc = found
		return true
	}

	// next is the shared epilogue for handlers that may have pended an
	// exception: advance by the instruction width on success, otherwise
	// route to unwind.
	next := func(ok bool, width uint32) bool {
		if ok {
			pc += width
			return true
		}
		return handlePending()
	}

	// branch relocates the cursor by a signed code-unit offset.
	branch := func(offset int32) {
		pc = uint32(int64(pc) + int64(offset))
	}

	for {
		f.SetDexPC(pc)
		if t.TestAllFlags() {
			rt.CheckSuspend(t)
		}
		if instr.HasDexPCListeners() {
			instr.DexPcMovedEvent(t, thisObject, m, pc)
		}
		instr.traceExecution(f, code, pc)

		switch code.OpcodeAt(pc) {
		case OpNop:
			pc += code.SizeAt(pc)

		case OpMove:
			f.SetVReg(uint16(code.VRegA12x(pc)), f.GetVReg(uint16(code.VRegB12x(pc))))
			pc++
		case OpMoveFrom16:
			f.SetVReg(uint16(code.VRegA22x(pc)), f.GetVReg(code.VRegB22x(pc)))
			pc += 2
		case OpMove16:
			f.SetVReg(code.VRegA32x(pc), f.GetVReg(code.VRegB32x(pc)))
			pc += 3
		case OpMoveWide:
			f.SetVRegLong(uint16(code.VRegA12x(pc)), f.GetVRegLong(uint16(code.VRegB12x(pc))))
			pc++
		case OpMoveWideFrom16:
			f.SetVRegLong(uint16(code.VRegA22x(pc)), f.GetVRegLong(code.VRegB22x(pc)))
			pc += 2
		case OpMoveWide16:
			f.SetVRegLong(code.VRegA32x(pc), f.GetVRegLong(code.VRegB32x(pc)))
			pc += 3
		case OpMoveObject:
			f.SetVRegReference(uint16(code.VRegA12x(pc)), f.GetVRegReference(uint16(code.VRegB12x(pc))))
			pc++
		case OpMoveObjectFrom16:
			f.SetVRegReference(uint16(code.VRegA22x(pc)), f.GetVRegReference(code.VRegB22x(pc)))
			pc += 2
		case OpMoveObject16:
			f.SetVRegReference(code.VRegA32x(pc), f.GetVRegReference(code.VRegB32x(pc)))
			pc += 3

		case OpMoveResult:
			f.SetVReg(uint16(code.VRegA11x(pc)), resultRegister.Int())
			pc++
		case OpMoveResultWide:
			f.SetVRegLong(uint16(code.VRegA11x(pc)), resultRegister.Long())
			pc++
		case OpMoveResultObject:
			f.SetVRegReference(uint16(code.VRegA11x(pc)), resultRegister.Ref())
			pc++

		case OpMoveException:
			ex := t.Exception()
			t.ClearException()
			f.SetVRegReference(uint16(code.VRegA11x(pc)), ex)
			pc++

		case OpReturnVoid:
			var result Value
			if instr.HasMethodExitListeners() {
				instr.MethodExitEvent(t, thisObject, m, pc, result)
			}
			return result
		case OpReturnVoidBarrier:
			returnBarrier.Store(1)
			var result Value
			if instr.HasMethodExitListeners() {
				instr.MethodExitEvent(t, thisObject, m, pc, result)
			}
			return result
		case OpReturn:
			var result Value
			result.SetInt(f.GetVReg(uint16(code.VRegA11x(pc))))
			if instr.HasMethodExitListeners() {
				instr.MethodExitEvent(t, thisObject, m, pc, result)
			}
			return result
		case OpReturnWide:
			var result Value
			result.SetLong(f.GetVRegLong(uint16(code.VRegA11x(pc))))
			if instr.HasMethodExitListeners() {
				instr.MethodExitEvent(t, thisObject, m, pc, result)
			}
			return result
		case OpReturnObject:
			var result Value
			result.SetRef(f.GetVRegReference(uint16(code.VRegA11x(pc))))
			if instr.HasMethodExitListeners() {
				instr.MethodExitEvent(t, thisObject, m, pc, result)
			}
			return result

		case OpConst4:
			dst := uint16(code.VRegA11n(pc))
			val := code.VRegB11n(pc)
			f.SetVReg(dst, val)
			if val == 0 {
				f.SetVRegReference(dst, nil)
			}
			pc++
		case OpConst16:
			dst := uint16(code.VRegA21s(pc))
			val := code.VRegB21s(pc)
			f.SetVReg(dst, val)
			if val == 0 {
				f.SetVRegReference(dst, nil)
			}
			pc += 2
		case OpConst:
			dst := uint16(code.VRegA31i(pc))
			val := code.VRegB31i(pc)
			f.SetVReg(dst, val)
			if val == 0 {
				f.SetVRegReference(dst, nil)
			}
			pc += 3
		case OpConstHigh16:
			dst := uint16(code.VRegA21h(pc))
			val := int32(uint32(code.VRegB21h(pc)) << 16)
			f.SetVReg(dst, val)
			if val == 0 {
				f.SetVRegReference(dst, nil)
			}
			pc += 2
		case OpConstWide16:
			f.SetVRegLong(uint16(code.VRegA21s(pc)), int64(code.VRegB21s(pc)))
			pc += 2
		case OpConstWide32:
			f.SetVRegLong(uint16(code.VRegA31i(pc)), int64(code.VRegB31i(pc)))
			pc += 3
		case OpConstWide:
			f.SetVRegLong(uint16(code.VRegA51l(pc)), code.VRegB51l(pc))
			pc += 5
		case OpConstWideHigh16:
			f.SetVRegLong(uint16(code.VRegA21h(pc)), int64(uint64(code.VRegB21h(pc))<<48))
			pc += 2

		case OpConstString:
			s := rt.ResolveString(t, m, code.VRegB21c(pc))
			if s != nil {
				f.SetVRegReference(uint16(code.VRegA21c(pc)), s)
			}
			if !next(s != nil, 2) {
				return Value{}
			}
		case OpConstStringJumbo:
			s := rt.ResolveString(t, m, code.VRegB31c(pc))
			if s != nil {
				f.SetVRegReference(uint16(code.VRegA31c(pc)), s)
			}
			if !next(s != nil, 3) {
				return Value{}
			}
		case OpConstClass:
			c := rt.ResolveClass(t, m, code.VRegB21c(pc), accessCheck)
			if c != nil {
				f.SetVRegReference(uint16(code.VRegA21c(pc)), c)
			}
			if !next(c != nil, 2) {
				return Value{}
			}

		case OpMonitorEnter:
			obj := f.GetVRegReference(uint16(code.VRegA11x(pc)))
			if obj == nil {
				throwNullPointerFromDexPC(t, m, pc)
				if !handlePending() {
					return Value{}
				}
			} else {
				rt.MonitorEnter(t, obj)
				if !next(!t.IsExceptionPending(), 1) {
					return Value{}
				}
			}
		case OpMonitorExit:
			obj := f.GetVRegReference(uint16(code.VRegA11x(pc)))
			if obj == nil {
				throwNullPointerFromDexPC(t, m, pc)
				if !handlePending() {
					return Value{}
				}
			} else {
				rt.MonitorExit(t, obj)
				if !next(!t.IsExceptionPending(), 1) {
					return Value{}
				}
			}

		case OpCheckCast:
			c := rt.ResolveClass(t, m, code.VRegB21c(pc), accessCheck)
			if c == nil {
				if !handlePending() {
					return Value{}
				}
			} else {
				obj := f.GetVRegReference(uint16(code.VRegA21c(pc)))
				if obj != nil && !c.InstanceOf(obj) {
					t.ThrowNewf(ExClassCast, "%s cannot be cast to %s", obj.GetClass(), c)
					if !handlePending() {
						return Value{}
					}
				} else {
					pc += 2
				}
			}
		case OpInstanceOf:
			c := rt.ResolveClass(t, m, code.VRegC22c(pc), accessCheck)
			if c == nil {
				if !handlePending() {
					return Value{}
				}
			} else {
				obj := f.GetVRegReference(uint16(code.VRegB22c(pc)))
				var r int32
				if c.InstanceOf(obj) {
					r = 1
				}
				f.SetVReg(uint16(code.VRegA22c(pc)), r)
				pc += 2
			}
		case OpArrayLength:
			arr := f.GetVRegReference(uint16(code.VRegB12x(pc)))
			if arr == nil {
				throwNullPointerFromDexPC(t, m, pc)
				if !handlePending() {
					return Value{}
				}
			} else {
				f.SetVReg(uint16(code.VRegA12x(pc)), arrayLength(arr))
				pc++
			}

		case OpNewInstance:
			obj := rt.AllocInstance(t, m, code.VRegB21c(pc), accessCheck)
			if obj != nil {
				f.SetVRegReference(uint16(code.VRegA21c(pc)), obj)
			}
			if !next(obj != nil, 2) {
				return Value{}
			}
		case OpNewArray:
			length := f.GetVReg(uint16(code.VRegB22c(pc)))
			obj := rt.AllocArray(t, m, code.VRegC22c(pc), length, accessCheck)
			if obj != nil {
				f.SetVRegReference(uint16(code.VRegA22c(pc)), obj)
			}
			if !next(obj != nil, 2) {
				return Value{}
			}
		case OpFilledNewArray:
			if !next(rt.FilledNewArray(t, f, pc, false, accessCheck, &resultRegister), 3) {
				return Value{}
			}
		case OpFilledNewArrayRange:
			if !next(rt.FilledNewArray(t, f, pc, true, accessCheck, &resultRegister), 3) {
				return Value{}
			}

		case OpFillArrayData:
			obj := f.GetVRegReference(uint16(code.VRegA31t(pc)))
			if obj == nil {
				t.ThrowNew(ExNullPointer, "null array in fill-array-data")
				if !handlePending() {
					return Value{}
				}
			} else {
				payload := uint32(int64(pc) + int64(code.VRegB31t(pc)))
				_, count, data := code.ArrayDataAt(payload)
				arr := obj.(Array)
				if int32(count) > arr.Len() {
					t.ThrowNewf(ExArrayIndexOutOfBounds,
						"failed fill-array-data; length=%d, index=%d", arr.Len(), count)
					if !handlePending() {
						return Value{}
					}
				} else {
					fillArrayData(obj, count, data)
					pc += 3
				}
			}

		case OpThrow:
			ex := f.GetVRegReference(uint16(code.VRegA11x(pc)))
			if ex == nil {
				t.ThrowNew(ExNullPointer, "throw with null exception")
			} else {
				t.SetException(ex)
			}
			if !handlePending() {
				return Value{}
			}

		case OpGoto:
			branch(code.VRegA10t(pc))
		case OpGoto16:
			branch(code.VRegA20t(pc))
		case OpGoto32:
			branch(code.VRegA30t(pc))
		case OpPackedSwitch:
			branch(code.PackedSwitchOffset(pc, f.GetVReg(uint16(code.VRegA31t(pc)))))
		case OpSparseSwitch:
			branch(code.SparseSwitchOffset(pc, f.GetVReg(uint16(code.VRegA31t(pc)))))

		case OpCmplFloat:
			v1 := f.GetVRegFloat(uint16(code.VRegB23x(pc)))
			v2 := f.GetVRegFloat(uint16(code.VRegC23x(pc)))
			var r int32
			switch {
			case v1 > v2:
				r = 1
			case v1 == v2:
				r = 0
			default:
				r = -1
			}
			f.SetVReg(uint16(code.VRegA23x(pc)), r)
			pc += 2
		case OpCmpgFloat:
			v1 := f.GetVRegFloat(uint16(code.VRegB23x(pc)))
			v2 := f.GetVRegFloat(uint16(code.VRegC23x(pc)))
			var r int32
			switch {
			case v1 < v2:
				r = -1
			case v1 == v2:
				r = 0
			default:
				r = 1
			}
			f.SetVReg(uint16(code.VRegA23x(pc)), r)
			pc += 2
		case OpCmplDouble:
			v1 := f.GetVRegDouble(uint16(code.VRegB23x(pc)))
			v2 := f.GetVRegDouble(uint16(code.VRegC23x(pc)))
			var r int32
			switch {
			case v1 > v2:
				r = 1
			case v1 == v2:
				r = 0
			default:
				r = -1
			}
			f.SetVReg(uint16(code.VRegA23x(pc)), r)
			pc += 2
		case OpCmpgDouble:
			v1 := f.GetVRegDouble(uint16(code.VRegB23x(pc)))
			v2 := f.GetVRegDouble(uint16(code.VRegC23x(pc)))
			var r int32
			switch {
			case v1 < v2:
				r = -1
			case v1 == v2:
				r = 0
			default:
				r = 1
			}
			f.SetVReg(uint16(code.VRegA23x(pc)), r)
			pc += 2
		case OpCmpLong:
			v1 := f.GetVRegLong(uint16(code.VRegB23x(pc)))
			v2 := f.GetVRegLong(uint16(code.VRegC23x(pc)))
			var r int32
			switch {
			case v1 > v2:
				r = 1
			case v1 == v2:
				r = 0
			default:
				r = -1
			}
			f.SetVReg(uint16(code.VRegA23x(pc)), r)
			pc += 2

		case OpIfEq:
			if f.GetVReg(uint16(code.VRegA22t(pc))) == f.GetVReg(uint16(code.VRegB22t(pc))) {
				branch(code.VRegC22t(pc))
			} else {
				pc += 2
			}
		case OpIfNe:
			if f.GetVReg(uint16(code.VRegA22t(pc))) != f.GetVReg(uint16(code.VRegB22t(pc))) {
				branch(code.VRegC22t(pc))
			} else {
				pc += 2
			}
		case OpIfLt:
			if f.GetVReg(uint16(code.VRegA22t(pc))) < f.GetVReg(uint16(code.VRegB22t(pc))) {
				branch(code.VRegC22t(pc))
			} else {
				pc += 2
			}
		case OpIfGe:
			if f.GetVReg(uint16(code.VRegA22t(pc))) >= f.GetVReg(uint16(code.VRegB22t(pc))) {
				branch(code.VRegC22t(pc))
			} else {
				pc += 2
			}
		case OpIfGt:
			if f.GetVReg(uint16(code.VRegA22t(pc))) > f.GetVReg(uint16(code.VRegB22t(pc))) {
				branch(code.VRegC22t(pc))
			} else {
				pc += 2
			}
		case OpIfLe:
			if f.GetVReg(uint16(code.VRegA22t(pc))) <= f.GetVReg(uint16(code.VRegB22t(pc))) {
				branch(code.VRegC22t(pc))
			} else {
				pc += 2
			}
		case OpIfEqz:
			if f.GetVReg(uint16(code.VRegA21t(pc))) == 0 {
				branch(code.VRegB21t(pc))
			} else {
				pc += 2
			}
		case OpIfNez:
			if f.GetVReg(uint16(code.VRegA21t(pc))) != 0 {
				branch(code.VRegB21t(pc))
			} else {
				pc += 2
			}
		case OpIfLtz:
			if f.GetVReg(uint16(code.VRegA21t(pc))) < 0 {
				branch(code.VRegB21t(pc))
			} else {
				pc += 2
			}
		case OpIfGez:
			if f.GetVReg(uint16(code.VRegA21t(pc))) >= 0 {
				branch(code.VRegB21t(pc))
			} else {
				pc += 2
			}
		case OpIfGtz:
			if f.GetVReg(uint16(code.VRegA21t(pc))) > 0 {
				branch(code.VRegB21t(pc))
			} else {
				pc += 2
			}
		case OpIfLez:
			if f.GetVReg(uint16(code.VRegA21t(pc))) <= 0 {
				branch(code.VRegB21t(pc))
			} else {
				pc += 2
			}

		case OpAgetBoolean:
			a := f.GetVRegReference(uint16(code.VRegB23x(pc)))
			if a == nil {
				throwNullPointerFromDexPC(t, m, pc)
				if !handlePending() {
					return Value{}
				}
			} else {
				arr := a.(*BooleanArray)
				index := f.GetVReg(uint16(code.VRegC23x(pc)))
				if checkIndex(t, arr.Len(), index) {
					f.SetVReg(uint16(code.VRegA23x(pc)), int32(arr.Data[index]))
					pc += 2
				} else if !handlePending() {
					return Value{}
				}
			}
		case OpAgetByte:
			a := f.GetVRegReference(uint16(code.VRegB23x(pc)))
			if a == nil {
				throwNullPointerFromDexPC(t, m, pc)
				if !handlePending() {
					return Value{}
				}
			} else {
				arr := a.(*ByteArray)
				index := f.GetVReg(uint16(code.VRegC23x(pc)))
				if checkIndex(t, arr.Len(), index) {
					f.SetVReg(uint16(code.VRegA23x(pc)), int32(arr.Data[index]))
					pc += 2
				} else if !handlePending() {
					return Value{}
				}
			}
		case OpAgetChar:
			a := f.GetVRegReference(uint16(code.VRegB23x(pc)))
			if a == nil {
				throwNullPointerFromDexPC(t, m, pc)
				if !handlePending() {
					return Value{}
				}
			} else {
				arr := a.(*CharArray)
				index := f.GetVReg(uint16(code.VRegC23x(pc)))
				if checkIndex(t, arr.Len(), index) {
					f.SetVReg(uint16(code.VRegA23x(pc)), int32(arr.Data[index]))
					pc += 2
				} else if !handlePending() {
					return Value{}
				}
			}
		case OpAgetShort:
			a := f.GetVRegReference(uint16(code.VRegB23x(pc)))
			if a == nil {
				throwNullPointerFromDexPC(t, m, pc)
				if !handlePending() {
					return Value{}
				}
			} else {
				arr := a.(*ShortArray)
				index := f.GetVReg(uint16(code.VRegC23x(pc)))
				if checkIndex(t, arr.Len(), index) {
					f.SetVReg(uint16(code.VRegA23x(pc)), int32(arr.Data[index]))
					pc += 2
				} else if !handlePending() {
					return Value{}
				}
			}
		case OpAget:
			a := f.GetVRegReference(uint16(code.VRegB23x(pc)))
			if a == nil {
				throwNullPointerFromDexPC(t, m, pc)
				if !handlePending() {
					return Value{}
				}
			} else {
				arr := a.(*IntArray)
				index := f.GetVReg(uint16(code.VRegC23x(pc)))
				if checkIndex(t, arr.Len(), index) {
					f.SetVReg(uint16(code.VRegA23x(pc)), arr.Data[index])
					pc += 2
				} else if !handlePending() {
					return Value{}
				}
			}
		case OpAgetWide:
			a := f.GetVRegReference(uint16(code.VRegB23x(pc)))
			if a == nil {
				throwNullPointerFromDexPC(t, m, pc)
				if !handlePending() {
					return Value{}
				}
			} else {
				arr := a.(*LongArray)
				index := f.GetVReg(uint16(code.VRegC23x(pc)))
				if checkIndex(t, arr.Len(), index) {
					f.SetVRegLong(uint16(code.VRegA23x(pc)), arr.Data[index])
					pc += 2
				} else if !handlePending() {
					return Value{}
				}
			}
		case OpAgetObject:
			a := f.GetVRegReference(uint16(code.VRegB23x(pc)))
			if a == nil {
				throwNullPointerFromDexPC(t, m, pc)
				if !handlePending() {
					return Value{}
				}
			} else {
				arr := a.(*RefArray)
				index := f.GetVReg(uint16(code.VRegC23x(pc)))
				if checkIndex(t, arr.Len(), index) {
					f.SetVRegReference(uint16(code.VRegA23x(pc)), arr.Data[index])
					pc += 2
				} else if !handlePending() {
					return Value{}
				}
			}

		case OpAputBoolean:
			a := f.GetVRegReference(uint16(code.VRegB23x(pc)))
			if a == nil {
				throwNullPointerFromDexPC(t, m, pc)
				if !handlePending() {
					return Value{}
				}
			} else {
				arr := a.(*BooleanArray)
				index := f.GetVReg(uint16(code.VRegC23x(pc)))
				if checkIndex(t, arr.Len(), index) {
					arr.Data[index] = uint8(f.GetVReg(uint16(code.VRegA23x(pc))))
					pc += 2
				} else if !handlePending() {
					return Value{}
				}
			}
		case OpAputByte:
			a := f.GetVRegReference(uint16(code.VRegB23x(pc)))
			if a == nil {
				throwNullPointerFromDexPC(t, m, pc)
				if !handlePending() {
					return Value{}
				}
			} else {
				arr := a.(*ByteArray)
				index := f.GetVReg(uint16(code.VRegC23x(pc)))
				if checkIndex(t, arr.Len(), index) {
					arr.Data[index] = int8(f.GetVReg(uint16(code.VRegA23x(pc))))
					pc += 2
				} else if !handlePending() {
					return Value{}
				}
			}
		case OpAputChar:
			a := f.GetVRegReference(uint16(code.VRegB23x(pc)))
			if a == nil {
				throwNullPointerFromDexPC(t, m, pc)
				if !handlePending() {
					return Value{}
				}
			} else {
				arr := a.(*CharArray)
				index := f.GetVReg(uint16(code.VRegC23x(pc)))
				if checkIndex(t, arr.Len(), index) {
					arr.Data[index] = uint16(f.GetVReg(uint16(code.VRegA23x(pc))))
					pc += 2
				} else if !handlePending() {
					return Value{}
				}
			}
		case OpAputShort:
			a := f.GetVRegReference(uint16(code.VRegB23x(pc)))
			if a == nil {
				throwNullPointerFromDexPC(t, m, pc)
				if !handlePending() {
					return Value{}
				}
			} else {
				arr := a.(*ShortArray)
				index := f.GetVReg(uint16(code.VRegC23x(pc)))
				if checkIndex(t, arr.Len(), index) {
					arr.Data[index] = int16(f.GetVReg(uint16(code.VRegA23x(pc))))
					pc += 2
				} else if !handlePending() {
					return Value{}
				}
			}
		case OpAput:
			a := f.GetVRegReference(uint16(code.VRegB23x(pc)))
			if a == nil {
				throwNullPointerFromDexPC(t, m, pc)
				if !handlePending() {
					return Value{}
				}
			} else {
				arr := a.(*IntArray)
				index := f.GetVReg(uint16(code.VRegC23x(pc)))
				if checkIndex(t, arr.Len(), index) {
					arr.Data[index] = f.GetVReg(uint16(code.VRegA23x(pc)))
					pc += 2
				} else if !handlePending() {
					return Value{}
				}
			}
		case OpAputWide:
			a := f.GetVRegReference(uint16(code.VRegB23x(pc)))
			if a == nil {
				throwNullPointerFromDexPC(t, m, pc)
				if !handlePending() {
					return Value{}
				}
			} else {
				arr := a.(*LongArray)
				index := f.GetVReg(uint16(code.VRegC23x(pc)))
				if checkIndex(t, arr.Len(), index) {
					arr.Data[index] = f.GetVRegLong(uint16(code.VRegA23x(pc)))
					pc += 2
				} else if !handlePending() {
					return Value{}
				}
			}
		case OpAputObject:
			a := f.GetVRegReference(uint16(code.VRegB23x(pc)))
			if a == nil {
				throwNullPointerFromDexPC(t, m, pc)
				if !handlePending() {
					return Value{}
				}
			} else {
				arr := a.(*RefArray)
				index := f.GetVReg(uint16(code.VRegC23x(pc)))
				val := f.GetVRegReference(uint16(code.VRegA23x(pc)))
				if !checkIndex(t, arr.Len(), index) {
					if !handlePending() {
						return Value{}
					}
				} else if !arr.CheckAssignable(val) {
					t.ThrowNewf(ExArrayStore, "%s cannot be stored in array of %s",
						val.GetClass(), arr.Class.Component)
					if !handlePending() {
						return Value{}
					}
				} else {
					arr.Data[index] = val
					pc += 2
				}
			}

		case OpIgetBoolean:
			if !next(rt.FieldGet(t, f, pc, InstanceField, KindBoolean, accessCheck), 2) {
				return Value{}
			}
		case OpIgetByte:
			if !next(rt.FieldGet(t, f, pc, InstanceField, KindByte, accessCheck), 2) {
				return Value{}
			}
		case OpIgetChar:
			if !next(rt.FieldGet(t, f, pc, InstanceField, KindChar, accessCheck), 2) {
				return Value{}
			}
		case OpIgetShort:
			if !next(rt.FieldGet(t, f, pc, InstanceField, KindShort, accessCheck), 2) {
				return Value{}
			}
		case OpIget:
			if !next(rt.FieldGet(t, f, pc, InstanceField, KindInt, accessCheck), 2) {
				return Value{}
			}
		case OpIgetWide:
			if !next(rt.FieldGet(t, f, pc, InstanceField, KindLong, accessCheck), 2) {
				return Value{}
			}
		case OpIgetObject:
			if !next(rt.FieldGet(t, f, pc, InstanceField, KindObject, accessCheck), 2) {
				return Value{}
			}
		case OpIgetQuick:
			if !next(rt.FieldGetQuick(t, f, pc, KindInt), 2) {
				return Value{}
			}
		case OpIgetWideQuick:
			if !next(rt.FieldGetQuick(t, f, pc, KindLong), 2) {
				return Value{}
			}
		case OpIgetObjectQuick:
			if !next(rt.FieldGetQuick(t, f, pc, KindObject), 2) {
				return Value{}
			}

		case OpSgetBoolean:
			if !next(rt.FieldGet(t, f, pc, StaticField, KindBoolean, accessCheck), 2) {
				return Value{}
			}
		case OpSgetByte:
			if !next(rt.FieldGet(t, f, pc, StaticField, KindByte, accessCheck), 2) {
				return Value{}
			}
		case OpSgetChar:
			if !next(rt.FieldGet(t, f, pc, StaticField, KindChar, accessCheck), 2) {
				return Value{}
			}
		case OpSgetShort:
			if !next(rt.FieldGet(t, f, pc, StaticField, KindShort, accessCheck), 2) {
				return Value{}
			}
		case OpSget:
			if !next(rt.FieldGet(t, f, pc, StaticField, KindInt, accessCheck), 2) {
				return Value{}
			}
		case OpSgetWide:
			if !next(rt.FieldGet(t, f, pc, StaticField, KindLong, accessCheck), 2) {
				return Value{}
			}
		case OpSgetObject:
			if !next(rt.FieldGet(t, f, pc, StaticField, KindObject, accessCheck), 2) {
				return Value{}
			}

		case OpIputBoolean:
			if !next(rt.FieldPut(t, f, pc, InstanceField, KindBoolean, accessCheck), 2) {
				return Value{}
			}
		case OpIputByte:
			if !next(rt.FieldPut(t, f, pc, InstanceField, KindByte, accessCheck), 2) {
				return Value{}
			}
		case OpIputChar:
			if !next(rt.FieldPut(t, f, pc, InstanceField, KindChar, accessCheck), 2) {
				return Value{}
			}
		case OpIputShort:
			if !next(rt.FieldPut(t, f, pc, InstanceField, KindShort, accessCheck), 2) {
				return Value{}
			}
		case OpIput:
			if !next(rt.FieldPut(t, f, pc, InstanceField, KindInt, accessCheck), 2) {
				return Value{}
			}
		case OpIputWide:
			if !next(rt.FieldPut(t, f, pc, InstanceField, KindLong, accessCheck), 2) {
				return Value{}
			}
		case OpIputObject:
			if !next(rt.FieldPut(t, f, pc, InstanceField, KindObject, accessCheck), 2) {
				return Value{}
			}
		case OpIputQuick:
			if !next(rt.FieldPutQuick(t, f, pc, KindInt), 2) {
				return Value{}
			}
		case OpIputWideQuick:
			if !next(rt.FieldPutQuick(t, f, pc, KindLong), 2) {
				return Value{}
			}
		case OpIputObjectQuick:
			if !next(rt.FieldPutQuick(t, f, pc, KindObject), 2) {
				return Value{}
			}

		case OpSputBoolean:
			if !next(rt.FieldPut(t, f, pc, StaticField, KindBoolean, accessCheck), 2) {
				return Value{}
			}
		case OpSputByte:
			if !next(rt.FieldPut(t, f, pc, StaticField, KindByte, accessCheck), 2) {
				return Value{}
			}
		case OpSputChar:
			if !next(rt.FieldPut(t, f, pc, StaticField, KindChar, accessCheck), 2) {
				return Value{}
			}
		case OpSputShort:
			if !next(rt.FieldPut(t, f, pc, StaticField, KindShort, accessCheck), 2) {
				return Value{}
			}
		case OpSput:
			if !next(rt.FieldPut(t, f, pc, StaticField, KindInt, accessCheck), 2) {
				return Value{}
			}
		case OpSputWide:
			if !next(rt.FieldPut(t, f, pc, StaticField, KindLong, accessCheck), 2) {
				return Value{}
			}
		case OpSputObject:
			if !next(rt.FieldPut(t, f, pc, StaticField, KindObject, accessCheck), 2) {
				return Value{}
			}

		case OpInvokeVirtual:
			if !next(rt.Invoke(t, f, pc, InvokeVirtual, false, accessCheck, &resultRegister), 3) {
				return Value{}
			}
		case OpInvokeVirtualRange:
			if !next(rt.Invoke(t, f, pc, InvokeVirtual, true, accessCheck, &resultRegister), 3) {
				return Value{}
			}
		case OpInvokeSuper:
			if !next(rt.Invoke(t, f, pc, InvokeSuper, false, accessCheck, &resultRegister), 3) {
				return Value{}
			}
		case OpInvokeSuperRange:
			if !next(rt.Invoke(t, f, pc, InvokeSuper, true, accessCheck, &resultRegister), 3) {
				return Value{}
			}
		case OpInvokeDirect:
			if !next(rt.Invoke(t, f, pc, InvokeDirect, false, accessCheck, &resultRegister), 3) {
				return Value{}
			}
		case OpInvokeDirectRange:
			if !next(rt.Invoke(t, f, pc, InvokeDirect, true, accessCheck, &resultRegister), 3) {
				return Value{}
			}
		case OpInvokeInterface:
			if !next(rt.Invoke(t, f, pc, InvokeInterface, false, accessCheck, &resultRegister), 3) {
				return Value{}
			}
		case OpInvokeInterfaceRange:
			if !next(rt.Invoke(t, f, pc, InvokeInterface, true, accessCheck, &resultRegister), 3) {
				return Value{}
			}
		case OpInvokeStatic:
			if !next(rt.Invoke(t, f, pc, InvokeStatic, false, accessCheck, &resultRegister), 3) {
				return Value{}
			}
		case OpInvokeStaticRange:
			if !next(rt.Invoke(t, f, pc, InvokeStatic, true, accessCheck, &resultRegister), 3) {
				return Value{}
			}
		case OpInvokeVirtualQuick:
			if !next(rt.InvokeVirtualQuick(t, f, pc, false, &resultRegister), 3) {
				return Value{}
			}
		case OpInvokeVirtualRangeQuick:
			if !next(rt.InvokeVirtualQuick(t, f, pc, true, &resultRegister), 3) {
				return Value{}
			}

		case OpNegInt:
			f.SetVReg(uint16(code.VRegA12x(pc)), -f.GetVReg(uint16(code.VRegB12x(pc))))
			pc++
		case OpNotInt:
			f.SetVReg(uint16(code.VRegA12x(pc)), ^f.GetVReg(uint16(code.VRegB12x(pc))))
			pc++
		case OpNegLong:
			f.SetVRegLong(uint16(code.VRegA12x(pc)), -f.GetVRegLong(uint16(code.VRegB12x(pc))))
			pc++
		case OpNotLong:
			f.SetVRegLong(uint16(code.VRegA12x(pc)), ^f.GetVRegLong(uint16(code.VRegB12x(pc))))
			pc++
		case OpNegFloat:
			f.SetVRegFloat(uint16(code.VRegA12x(pc)), -f.GetVRegFloat(uint16(code.VRegB12x(pc))))
			pc++
		case OpNegDouble:
			f.SetVRegDouble(uint16(code.VRegA12x(pc)), -f.GetVRegDouble(uint16(code.VRegB12x(pc))))
			pc++

		case OpIntToLong:
			f.SetVRegLong(uint16(code.VRegA12x(pc)), int64(f.GetVReg(uint16(code.VRegB12x(pc)))))
			pc++
		case OpIntToFloat:
			f.SetVRegFloat(uint16(code.VRegA12x(pc)), float32(f.GetVReg(uint16(code.VRegB12x(pc)))))
			pc++
		case OpIntToDouble:
			f.SetVRegDouble(uint16(code.VRegA12x(pc)), float64(f.GetVReg(uint16(code.VRegB12x(pc)))))
			pc++
		case OpLongToInt:
			f.SetVReg(uint16(code.VRegA12x(pc)), int32(f.GetVRegLong(uint16(code.VRegB12x(pc)))))
			pc++
		case OpLongToFloat:
			f.SetVRegFloat(uint16(code.VRegA12x(pc)), float32(f.GetVRegLong(uint16(code.VRegB12x(pc)))))
			pc++
		case OpLongToDouble:
			f.SetVRegDouble(uint16(code.VRegA12x(pc)), float64(f.GetVRegLong(uint16(code.VRegB12x(pc)))))
			pc++
		case OpFloatToInt:
			f.SetVReg(uint16(code.VRegA12x(pc)), floatToInt(f.GetVRegFloat(uint16(code.VRegB12x(pc)))))
			pc++
		case OpFloatToLong:
			f.SetVRegLong(uint16(code.VRegA12x(pc)), floatToLong(f.GetVRegFloat(uint16(code.VRegB12x(pc)))))
			pc++
		case OpFloatToDouble:
			f.SetVRegDouble(uint16(code.VRegA12x(pc)), float64(f.GetVRegFloat(uint16(code.VRegB12x(pc)))))
			pc++
		case OpDoubleToInt:
			f.SetVReg(uint16(code.VRegA12x(pc)), doubleToInt(f.GetVRegDouble(uint16(code.VRegB12x(pc)))))
			pc++
		case OpDoubleToLong:
			f.SetVRegLong(uint16(code.VRegA12x(pc)), doubleToLong(f.GetVRegDouble(uint16(code.VRegB12x(pc)))))
			pc++
		case OpDoubleToFloat:
			f.SetVRegFloat(uint16(code.VRegA12x(pc)), float32(f.GetVRegDouble(uint16(code.VRegB12x(pc)))))
			pc++
		case OpIntToByte:
			f.SetVReg(uint16(code.VRegA12x(pc)), int32(int8(f.GetVReg(uint16(code.VRegB12x(pc))))))
			pc++
		case OpIntToChar:
			f.SetVReg(uint16(code.VRegA12x(pc)), int32(uint16(f.GetVReg(uint16(code.VRegB12x(pc))))))
			pc++
		case OpIntToShort:
			f.SetVReg(uint16(code.VRegA12x(pc)), int32(int16(f.GetVReg(uint16(code.VRegB12x(pc))))))
			pc++

		case OpAddInt:
			f.SetVReg(uint16(code.VRegA23x(pc)),
				f.GetVReg(uint16(code.VRegB23x(pc)))+f.GetVReg(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpSubInt:
			f.SetVReg(uint16(code.VRegA23x(pc)),
				f.GetVReg(uint16(code.VRegB23x(pc)))-f.GetVReg(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpMulInt:
			f.SetVReg(uint16(code.VRegA23x(pc)),
				f.GetVReg(uint16(code.VRegB23x(pc)))*f.GetVReg(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpDivInt:
			if !next(doIntDivide(t, f, uint16(code.VRegA23x(pc)),
				f.GetVReg(uint16(code.VRegB23x(pc))), f.GetVReg(uint16(code.VRegC23x(pc)))), 2) {
				return Value{}
			}
		case OpRemInt:
			if !next(doIntRemainder(t, f, uint16(code.VRegA23x(pc)),
				f.GetVReg(uint16(code.VRegB23x(pc))), f.GetVReg(uint16(code.VRegC23x(pc)))), 2) {
				return Value{}
			}
		case OpAndInt:
			f.SetVReg(uint16(code.VRegA23x(pc)),
				f.GetVReg(uint16(code.VRegB23x(pc)))&f.GetVReg(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpOrInt:
			f.SetVReg(uint16(code.VRegA23x(pc)),
				f.GetVReg(uint16(code.VRegB23x(pc)))|f.GetVReg(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpXorInt:
			f.SetVReg(uint16(code.VRegA23x(pc)),
				f.GetVReg(uint16(code.VRegB23x(pc)))^f.GetVReg(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpShlInt:
			f.SetVReg(uint16(code.VRegA23x(pc)),
				f.GetVReg(uint16(code.VRegB23x(pc)))<<(uint32(f.GetVReg(uint16(code.VRegC23x(pc))))&0x1f))
			pc += 2
		case OpShrInt:
			f.SetVReg(uint16(code.VRegA23x(pc)),
				f.GetVReg(uint16(code.VRegB23x(pc)))>>(uint32(f.GetVReg(uint16(code.VRegC23x(pc))))&0x1f))
			pc += 2
		case OpUshrInt:
			f.SetVReg(uint16(code.VRegA23x(pc)),
				int32(uint32(f.GetVReg(uint16(code.VRegB23x(pc))))>>(uint32(f.GetVReg(uint16(code.VRegC23x(pc))))&0x1f)))
			pc += 2

		case OpAddLong:
			f.SetVRegLong(uint16(code.VRegA23x(pc)),
				f.GetVRegLong(uint16(code.VRegB23x(pc)))+f.GetVRegLong(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpSubLong:
			f.SetVRegLong(uint16(code.VRegA23x(pc)),
				f.GetVRegLong(uint16(code.VRegB23x(pc)))-f.GetVRegLong(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpMulLong:
			f.SetVRegLong(uint16(code.VRegA23x(pc)),
				f.GetVRegLong(uint16(code.VRegB23x(pc)))*f.GetVRegLong(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpDivLong:
			if !next(doLongDivide(t, f, uint16(code.VRegA23x(pc)),
				f.GetVRegLong(uint16(code.VRegB23x(pc))), f.GetVRegLong(uint16(code.VRegC23x(pc)))), 2) {
				return Value{}
			}
		case OpRemLong:
			if !next(doLongRemainder(t, f, uint16(code.VRegA23x(pc)),
				f.GetVRegLong(uint16(code.VRegB23x(pc))), f.GetVRegLong(uint16(code.VRegC23x(pc)))), 2) {
				return Value{}
			}
		case OpAndLong:
			f.SetVRegLong(uint16(code.VRegA23x(pc)),
				f.GetVRegLong(uint16(code.VRegB23x(pc)))&f.GetVRegLong(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpOrLong:
			f.SetVRegLong(uint16(code.VRegA23x(pc)),
				f.GetVRegLong(uint16(code.VRegB23x(pc)))|f.GetVRegLong(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpXorLong:
			f.SetVRegLong(uint16(code.VRegA23x(pc)),
				f.GetVRegLong(uint16(code.VRegB23x(pc)))^f.GetVRegLong(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpShlLong:
			f.SetVRegLong(uint16(code.VRegA23x(pc)),
				f.GetVRegLong(uint16(code.VRegB23x(pc)))<<(uint32(f.GetVReg(uint16(code.VRegC23x(pc))))&0x3f))
			pc += 2
		case OpShrLong:
			f.SetVRegLong(uint16(code.VRegA23x(pc)),
				f.GetVRegLong(uint16(code.VRegB23x(pc)))>>(uint32(f.GetVReg(uint16(code.VRegC23x(pc))))&0x3f))
			pc += 2
		case OpUshrLong:
			f.SetVRegLong(uint16(code.VRegA23x(pc)),
				int64(uint64(f.GetVRegLong(uint16(code.VRegB23x(pc))))>>(uint32(f.GetVReg(uint16(code.VRegC23x(pc))))&0x3f)))
			pc += 2

		case OpAddFloat:
			f.SetVRegFloat(uint16(code.VRegA23x(pc)),
				f.GetVRegFloat(uint16(code.VRegB23x(pc)))+f.GetVRegFloat(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpSubFloat:
			f.SetVRegFloat(uint16(code.VRegA23x(pc)),
				f.GetVRegFloat(uint16(code.VRegB23x(pc)))-f.GetVRegFloat(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpMulFloat:
			f.SetVRegFloat(uint16(code.VRegA23x(pc)),
				f.GetVRegFloat(uint16(code.VRegB23x(pc)))*f.GetVRegFloat(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpDivFloat:
			f.SetVRegFloat(uint16(code.VRegA23x(pc)),
				f.GetVRegFloat(uint16(code.VRegB23x(pc)))/f.GetVRegFloat(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpRemFloat:
			f.SetVRegFloat(uint16(code.VRegA23x(pc)),
				fmodf(f.GetVRegFloat(uint16(code.VRegB23x(pc))), f.GetVRegFloat(uint16(code.VRegC23x(pc)))))
			pc += 2

		case OpAddDouble:
			f.SetVRegDouble(uint16(code.VRegA23x(pc)),
				f.GetVRegDouble(uint16(code.VRegB23x(pc)))+f.GetVRegDouble(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpSubDouble:
			f.SetVRegDouble(uint16(code.VRegA23x(pc)),
				f.GetVRegDouble(uint16(code.VRegB23x(pc)))-f.GetVRegDouble(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpMulDouble:
			f.SetVRegDouble(uint16(code.VRegA23x(pc)),
				f.GetVRegDouble(uint16(code.VRegB23x(pc)))*f.GetVRegDouble(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpDivDouble:
			f.SetVRegDouble(uint16(code.VRegA23x(pc)),
				f.GetVRegDouble(uint16(code.VRegB23x(pc)))/f.GetVRegDouble(uint16(code.VRegC23x(pc))))
			pc += 2
		case OpRemDouble:
			f.SetVRegDouble(uint16(code.VRegA23x(pc)),
				fmod(f.GetVRegDouble(uint16(code.VRegB23x(pc))), f.GetVRegDouble(uint16(code.VRegC23x(pc)))))
			pc += 2

		case OpAddInt2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVReg(a, f.GetVReg(a)+f.GetVReg(uint16(code.VRegB12x(pc))))
			pc++
		case OpSubInt2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVReg(a, f.GetVReg(a)-f.GetVReg(uint16(code.VRegB12x(pc))))
			pc++
		case OpMulInt2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVReg(a, f.GetVReg(a)*f.GetVReg(uint16(code.VRegB12x(pc))))
			pc++
		case OpDivInt2Addr:
			a := uint16(code.VRegA12x(pc))
			if !next(doIntDivide(t, f, a, f.GetVReg(a), f.GetVReg(uint16(code.VRegB12x(pc)))), 1) {
				return Value{}
			}
		case OpRemInt2Addr:
			a := uint16(code.VRegA12x(pc))
			if !next(doIntRemainder(t, f, a, f.GetVReg(a), f.GetVReg(uint16(code.VRegB12x(pc)))), 1) {
				return Value{}
			}
		case OpAndInt2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVReg(a, f.GetVReg(a)&f.GetVReg(uint16(code.VRegB12x(pc))))
			pc++
		case OpOrInt2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVReg(a, f.GetVReg(a)|f.GetVReg(uint16(code.VRegB12x(pc))))
			pc++
		case OpXorInt2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVReg(a, f.GetVReg(a)^f.GetVReg(uint16(code.VRegB12x(pc))))
			pc++
		case OpShlInt2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVReg(a, f.GetVReg(a)<<(uint32(f.GetVReg(uint16(code.VRegB12x(pc))))&0x1f))
			pc++
		case OpShrInt2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVReg(a, f.GetVReg(a)>>(uint32(f.GetVReg(uint16(code.VRegB12x(pc))))&0x1f))
			pc++
		case OpUshrInt2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVReg(a, int32(uint32(f.GetVReg(a))>>(uint32(f.GetVReg(uint16(code.VRegB12x(pc))))&0x1f)))
			pc++

		case OpAddLong2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegLong(a, f.GetVRegLong(a)+f.GetVRegLong(uint16(code.VRegB12x(pc))))
			pc++
		case OpSubLong2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegLong(a, f.GetVRegLong(a)-f.GetVRegLong(uint16(code.VRegB12x(pc))))
			pc++
		case OpMulLong2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegLong(a, f.GetVRegLong(a)*f.GetVRegLong(uint16(code.VRegB12x(pc))))
			pc++
		case OpDivLong2Addr:
			a := uint16(code.VRegA12x(pc))
			if !next(doLongDivide(t, f, a, f.GetVRegLong(a), f.GetVRegLong(uint16(code.VRegB12x(pc)))), 1) {
				return Value{}
			}
		case OpRemLong2Addr:
			a := uint16(code.VRegA12x(pc))
			if !next(doLongRemainder(t, f, a, f.GetVRegLong(a), f.GetVRegLong(uint16(code.VRegB12x(pc)))), 1) {
				return Value{}
			}
		case OpAndLong2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegLong(a, f.GetVRegLong(a)&f.GetVRegLong(uint16(code.VRegB12x(pc))))
			pc++
		case OpOrLong2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegLong(a, f.GetVRegLong(a)|f.GetVRegLong(uint16(code.VRegB12x(pc))))
			pc++
		case OpXorLong2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegLong(a, f.GetVRegLong(a)^f.GetVRegLong(uint16(code.VRegB12x(pc))))
			pc++
		case OpShlLong2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegLong(a, f.GetVRegLong(a)<<(uint32(f.GetVReg(uint16(code.VRegB12x(pc))))&0x3f))
			pc++
		case OpShrLong2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegLong(a, f.GetVRegLong(a)>>(uint32(f.GetVReg(uint16(code.VRegB12x(pc))))&0x3f))
			pc++
		case OpUshrLong2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegLong(a, int64(uint64(f.GetVRegLong(a))>>(uint32(f.GetVReg(uint16(code.VRegB12x(pc))))&0x3f)))
			pc++

		case OpAddFloat2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegFloat(a, f.GetVRegFloat(a)+f.GetVRegFloat(uint16(code.VRegB12x(pc))))
			pc++
		case OpSubFloat2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegFloat(a, f.GetVRegFloat(a)-f.GetVRegFloat(uint16(code.VRegB12x(pc))))
			pc++
		case OpMulFloat2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegFloat(a, f.GetVRegFloat(a)*f.GetVRegFloat(uint16(code.VRegB12x(pc))))
			pc++
		case OpDivFloat2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegFloat(a, f.GetVRegFloat(a)/f.GetVRegFloat(uint16(code.VRegB12x(pc))))
			pc++
		case OpRemFloat2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegFloat(a, fmodf(f.GetVRegFloat(a), f.GetVRegFloat(uint16(code.VRegB12x(pc)))))
			pc++

		case OpAddDouble2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegDouble(a, f.GetVRegDouble(a)+f.GetVRegDouble(uint16(code.VRegB12x(pc))))
			pc++
		case OpSubDouble2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegDouble(a, f.GetVRegDouble(a)-f.GetVRegDouble(uint16(code.VRegB12x(pc))))
			pc++
		case OpMulDouble2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegDouble(a, f.GetVRegDouble(a)*f.GetVRegDouble(uint16(code.VRegB12x(pc))))
			pc++
		case OpDivDouble2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegDouble(a, f.GetVRegDouble(a)/f.GetVRegDouble(uint16(code.VRegB12x(pc))))
			pc++
		case OpRemDouble2Addr:
			a := uint16(code.VRegA12x(pc))
			f.SetVRegDouble(a, fmod(f.GetVRegDouble(a), f.GetVRegDouble(uint16(code.VRegB12x(pc)))))
			pc++

		case OpAddIntLit16:
			f.SetVReg(uint16(code.VRegA22s(pc)),
				f.GetVReg(uint16(code.VRegB22s(pc)))+code.VRegC22s(pc))
			pc += 2
		case OpRsubInt:
			f.SetVReg(uint16(code.VRegA22s(pc)),
				code.VRegC22s(pc)-f.GetVReg(uint16(code.VRegB22s(pc))))
			pc += 2
		case OpMulIntLit16:
			f.SetVReg(uint16(code.VRegA22s(pc)),
				f.GetVReg(uint16(code.VRegB22s(pc)))*code.VRegC22s(pc))
			pc += 2
		case OpDivIntLit16:
			if !next(doIntDivide(t, f, uint16(code.VRegA22s(pc)),
				f.GetVReg(uint16(code.VRegB22s(pc))), code.VRegC22s(pc)), 2) {
				return Value{}
			}
		case OpRemIntLit16:
			if !next(doIntRemainder(t, f, uint16(code.VRegA22s(pc)),
				f.GetVReg(uint16(code.VRegB22s(pc))), code.VRegC22s(pc)), 2) {
				return Value{}
			}
		case OpAndIntLit16:
			f.SetVReg(uint16(code.VRegA22s(pc)),
				f.GetVReg(uint16(code.VRegB22s(pc)))&code.VRegC22s(pc))
			pc += 2
		case OpOrIntLit16:
			f.SetVReg(uint16(code.VRegA22s(pc)),
				f.GetVReg(uint16(code.VRegB22s(pc)))|code.VRegC22s(pc))
			pc += 2
		case OpXorIntLit16:
			f.SetVReg(uint16(code.VRegA22s(pc)),
				f.GetVReg(uint16(code.VRegB22s(pc)))^code.VRegC22s(pc))
			pc += 2

		case OpAddIntLit8:
			f.SetVReg(uint16(code.VRegA22b(pc)),
				f.GetVReg(uint16(code.VRegB22b(pc)))+code.VRegC22b(pc))
			pc += 2
		case OpRsubIntLit8:
			f.SetVReg(uint16(code.VRegA22b(pc)),
				code.VRegC22b(pc)-f.GetVReg(uint16(code.VRegB22b(pc))))
			pc += 2
		case OpMulIntLit8:
			f.SetVReg(uint16(code.VRegA22b(pc)),
				f.GetVReg(uint16(code.VRegB22b(pc)))*code.VRegC22b(pc))
			pc += 2
		case OpDivIntLit8:
			if !next(doIntDivide(t, f, uint16(code.VRegA22b(pc)),
				f.GetVReg(uint16(code.VRegB22b(pc))), code.VRegC22b(pc)), 2) {
				return Value{}
			}
		case OpRemIntLit8:
			if !next(doIntRemainder(t, f, uint16(code.VRegA22b(pc)),
				f.GetVReg(uint16(code.VRegB22b(pc))), code.VRegC22b(pc)), 2) {
				return Value{}
			}
		case OpAndIntLit8:
			f.SetVReg(uint16(code.VRegA22b(pc)),
				f.GetVReg(uint16(code.VRegB22b(pc)))&code.VRegC22b(pc))
			pc += 2
		case OpOrIntLit8:
			f.SetVReg(uint16(code.VRegA22b(pc)),
				f.GetVReg(uint16(code.VRegB22b(pc)))|code.VRegC22b(pc))
			pc += 2
		case OpXorIntLit8:
			f.SetVReg(uint16(code.VRegA22b(pc)),
				f.GetVReg(uint16(code.VRegB22b(pc)))^code.VRegC22b(pc))
			pc += 2
		case OpShlIntLit8:
			f.SetVReg(uint16(code.VRegA22b(pc)),
				f.GetVReg(uint16(code.VRegB22b(pc)))<<(uint32(code.VRegC22b(pc))&0x1f))
			pc += 2
		case OpShrIntLit8:
			f.SetVReg(uint16(code.VRegA22b(pc)),
				f.GetVReg(uint16(code.VRegB22b(pc)))>>(uint32(code.VRegC22b(pc))&0x1f))
			pc += 2
		case OpUshrIntLit8:
			f.SetVReg(uint16(code.VRegA22b(pc)),
				int32(uint32(f.GetVReg(uint16(code.VRegB22b(pc))))>>(uint32(code.VRegC22b(pc))&0x1f)))
			pc += 2

		default:
			unexpectedOpcode(m, code, pc)
		}
	}
}

package vm

// ---------------------------------------------------------------------------
// Opcodes and instruction formats
// ---------------------------------------------------------------------------

// Opcode is the low byte of an instruction's first code unit.
type Opcode byte

// Moves
const (
	OpNop              Opcode = 0x00
	OpMove             Opcode = 0x01
	OpMoveFrom16       Opcode = 0x02
	OpMove16           Opcode = 0x03
	OpMoveWide         Opcode = 0x04
	OpMoveWideFrom16   Opcode = 0x05
	OpMoveWide16       Opcode = 0x06
	OpMoveObject       Opcode = 0x07
	OpMoveObjectFrom16 Opcode = 0x08
	OpMoveObject16     Opcode = 0x09
	OpMoveResult       Opcode = 0x0a
	OpMoveResultWide   Opcode = 0x0b
	OpMoveResultObject Opcode = 0x0c
	OpMoveException    Opcode = 0x0d
)

// Returns
const (
	OpReturnVoid   Opcode = 0x0e
	OpReturn       Opcode = 0x0f
	OpReturnWide   Opcode = 0x10
	OpReturnObject Opcode = 0x11
)

// Constants
const (
	OpConst4           Opcode = 0x12
	OpConst16          Opcode = 0x13
	OpConst            Opcode = 0x14
	OpConstHigh16      Opcode = 0x15
	OpConstWide16      Opcode = 0x16
	OpConstWide32      Opcode = 0x17
	OpConstWide        Opcode = 0x18
	OpConstWideHigh16  Opcode = 0x19
	OpConstString      Opcode = 0x1a
	OpConstStringJumbo Opcode = 0x1b
	OpConstClass       Opcode = 0x1c
)

// Monitors and type checks
const (
	OpMonitorEnter        Opcode = 0x1d
	OpMonitorExit         Opcode = 0x1e
	OpCheckCast           Opcode = 0x1f
	OpInstanceOf          Opcode = 0x20
	OpArrayLength         Opcode = 0x21
	OpNewInstance         Opcode = 0x22
	OpNewArray            Opcode = 0x23
	OpFilledNewArray      Opcode = 0x24
	OpFilledNewArrayRange Opcode = 0x25
	OpFillArrayData       Opcode = 0x26
	OpThrow               Opcode = 0x27
)

// Control flow
const (
	OpGoto         Opcode = 0x28
	OpGoto16       Opcode = 0x29
	OpGoto32       Opcode = 0x2a
	OpPackedSwitch Opcode = 0x2b
	OpSparseSwitch Opcode = 0x2c
)

// Comparisons
const (
	OpCmplFloat  Opcode = 0x2d
	OpCmpgFloat  Opcode = 0x2e
	OpCmplDouble Opcode = 0x2f
	OpCmpgDouble Opcode = 0x30
	OpCmpLong    Opcode = 0x31
)

// Conditional branches
const (
	OpIfEq  Opcode = 0x32
	OpIfNe  Opcode = 0x33
	OpIfLt  Opcode = 0x34
	OpIfGe  Opcode = 0x35
	OpIfGt  Opcode = 0x36
	OpIfLe  Opcode = 0x37
	OpIfEqz Opcode = 0x38
	OpIfNez Opcode = 0x39
	OpIfLtz Opcode = 0x3a
	OpIfGez Opcode = 0x3b
	OpIfGtz Opcode = 0x3c
	OpIfLez Opcode = 0x3d
)

// 0x3e..0x43 are unused.

// Array element access
const (
	OpAget        Opcode = 0x44
	OpAgetWide    Opcode = 0x45
	OpAgetObject  Opcode = 0x46
	OpAgetBoolean Opcode = 0x47
	OpAgetByte    Opcode = 0x48
	OpAgetChar    Opcode = 0x49
	OpAgetShort   Opcode = 0x4a
	OpAput        Opcode = 0x4b
	OpAputWide    Opcode = 0x4c
	OpAputObject  Opcode = 0x4d
	OpAputBoolean Opcode = 0x4e
	OpAputByte    Opcode = 0x4f
	OpAputChar    Opcode = 0x50
	OpAputShort   Opcode = 0x51
)

// Instance field access
const (
	OpIget        Opcode = 0x52
	OpIgetWide    Opcode = 0x53
	OpIgetObject  Opcode = 0x54
	OpIgetBoolean Opcode = 0x55
	OpIgetByte    Opcode = 0x56
	OpIgetChar    Opcode = 0x57
	OpIgetShort   Opcode = 0x58
	OpIput        Opcode = 0x59
	OpIputWide    Opcode = 0x5a
	OpIputObject  Opcode = 0x5b
	OpIputBoolean Opcode = 0x5c
	OpIputByte    Opcode = 0x5d
	OpIputChar    Opcode = 0x5e
	OpIputShort   Opcode = 0x5f
)

// Static field access
const (
	OpSget        Opcode = 0x60
	OpSgetWide    Opcode = 0x61
	OpSgetObject  Opcode = 0x62
	OpSgetBoolean Opcode = 0x63
	OpSgetByte    Opcode = 0x64
	OpSgetChar    Opcode = 0x65
	OpSgetShort   Opcode = 0x66
	OpSput        Opcode = 0x67
	OpSputWide    Opcode = 0x68
	OpSputObject  Opcode = 0x69
	OpSputBoolean Opcode = 0x6a
	OpSputByte    Opcode = 0x6b
	OpSputChar    Opcode = 0x6c
	OpSputShort   Opcode = 0x6d
)

// Invokes
const (
	OpInvokeVirtual        Opcode = 0x6e
	OpInvokeSuper          Opcode = 0x6f
	OpInvokeDirect         Opcode = 0x70
	OpInvokeStatic         Opcode = 0x71
	OpInvokeInterface      Opcode = 0x72
	OpReturnVoidBarrier    Opcode = 0x73
	OpInvokeVirtualRange   Opcode = 0x74
	OpInvokeSuperRange     Opcode = 0x75
	OpInvokeDirectRange    Opcode = 0x76
	OpInvokeStaticRange    Opcode = 0x77
	OpInvokeInterfaceRange Opcode = 0x78
)

// 0x79 and 0x7a are unused.

// Unary operations and conversions
const (
	OpNegInt        Opcode = 0x7b
	OpNotInt        Opcode = 0x7c
	OpNegLong       Opcode = 0x7d
	OpNotLong       Opcode = 0x7e
	OpNegFloat      Opcode = 0x7f
	OpNegDouble     Opcode = 0x80
	OpIntToLong     Opcode = 0x81
	OpIntToFloat    Opcode = 0x82
	OpIntToDouble   Opcode = 0x83
	OpLongToInt     Opcode = 0x84
	OpLongToFloat   Opcode = 0x85
	OpLongToDouble  Opcode = 0x86
	OpFloatToInt    Opcode = 0x87
	OpFloatToLong   Opcode = 0x88
	OpFloatToDouble Opcode = 0x89
	OpDoubleToInt   Opcode = 0x8a
	OpDoubleToLong  Opcode = 0x8b
	OpDoubleToFloat Opcode = 0x8c
	OpIntToByte     Opcode = 0x8d
	OpIntToChar     Opcode = 0x8e
	OpIntToShort    Opcode = 0x8f
)

// Three-register binary operations
const (
	OpAddInt    Opcode = 0x90
	OpSubInt    Opcode = 0x91
	OpMulInt    Opcode = 0x92
	OpDivInt    Opcode = 0x93
	OpRemInt    Opcode = 0x94
	OpAndInt    Opcode = 0x95
	OpOrInt     Opcode = 0x96
	OpXorInt    Opcode = 0x97
	OpShlInt    Opcode = 0x98
	OpShrInt    Opcode = 0x99
	OpUshrInt   Opcode = 0x9a
	OpAddLong   Opcode = 0x9b
	OpSubLong   Opcode = 0x9c
	OpMulLong   Opcode = 0x9d
	OpDivLong   Opcode = 0x9e
	OpRemLong   Opcode = 0x9f
	OpAndLong   Opcode = 0xa0
	OpOrLong    Opcode = 0xa1
	OpXorLong   Opcode = 0xa2
	OpShlLong   Opcode = 0xa3
	OpShrLong   Opcode = 0xa4
	OpUshrLong  Opcode = 0xa5
	OpAddFloat  Opcode = 0xa6
	OpSubFloat  Opcode = 0xa7
	OpMulFloat  Opcode = 0xa8
	OpDivFloat  Opcode = 0xa9
	OpRemFloat  Opcode = 0xaa
	OpAddDouble Opcode = 0xab
	OpSubDouble Opcode = 0xac
	OpMulDouble Opcode = 0xad
	OpDivDouble Opcode = 0xae
	OpRemDouble Opcode = 0xaf
)

// Two-address binary operations
const (
	OpAddInt2Addr    Opcode = 0xb0
	OpSubInt2Addr    Opcode = 0xb1
	OpMulInt2Addr    Opcode = 0xb2
	OpDivInt2Addr    Opcode = 0xb3
	OpRemInt2Addr    Opcode = 0xb4
	OpAndInt2Addr    Opcode = 0xb5
	OpOrInt2Addr     Opcode = 0xb6
	OpXorInt2Addr    Opcode = 0xb7
	OpShlInt2Addr    Opcode = 0xb8
	OpShrInt2Addr    Opcode = 0xb9
	OpUshrInt2Addr   Opcode = 0xba
	OpAddLong2Addr   Opcode = 0xbb
	OpSubLong2Addr   Opcode = 0xbc
	OpMulLong2Addr   Opcode = 0xbd
	OpDivLong2Addr   Opcode = 0xbe
	OpRemLong2Addr   Opcode = 0xbf
	OpAndLong2Addr   Opcode = 0xc0
	OpOrLong2Addr    Opcode = 0xc1
	OpXorLong2Addr   Opcode = 0xc2
	OpShlLong2Addr   Opcode = 0xc3
	OpShrLong2Addr   Opcode = 0xc4
	OpUshrLong2Addr  Opcode = 0xc5
	OpAddFloat2Addr  Opcode = 0xc6
	OpSubFloat2Addr  Opcode = 0xc7
	OpMulFloat2Addr  Opcode = 0xc8
	OpDivFloat2Addr  Opcode = 0xc9
	OpRemFloat2Addr  Opcode = 0xca
	OpAddDouble2Addr Opcode = 0xcb
	OpSubDouble2Addr Opcode = 0xcc
	OpMulDouble2Addr Opcode = 0xcd
	OpDivDouble2Addr Opcode = 0xce
	OpRemDouble2Addr Opcode = 0xcf
)

// Literal binary operations
const (
	OpAddIntLit16 Opcode = 0xd0
	OpRsubInt     Opcode = 0xd1
	OpMulIntLit16 Opcode = 0xd2
	OpDivIntLit16 Opcode = 0xd3
	OpRemIntLit16 Opcode = 0xd4
	OpAndIntLit16 Opcode = 0xd5
	OpOrIntLit16  Opcode = 0xd6
	OpXorIntLit16 Opcode = 0xd7
	OpAddIntLit8  Opcode = 0xd8
	OpRsubIntLit8 Opcode = 0xd9
	OpMulIntLit8  Opcode = 0xda
	OpDivIntLit8  Opcode = 0xdb
	OpRemIntLit8  Opcode = 0xdc
	OpAndIntLit8  Opcode = 0xdd
	OpOrIntLit8   Opcode = 0xde
	OpXorIntLit8  Opcode = 0xdf
	OpShlIntLit8  Opcode = 0xe0
	OpShrIntLit8  Opcode = 0xe1
	OpUshrIntLit8 Opcode = 0xe2
)

// Quick forms (precomputed field offsets / vtable indexes)
const (
	OpIgetQuick               Opcode = 0xe3
	OpIgetWideQuick           Opcode = 0xe4
	OpIgetObjectQuick         Opcode = 0xe5
	OpIputQuick               Opcode = 0xe6
	OpIputWideQuick           Opcode = 0xe7
	OpIputObjectQuick         Opcode = 0xe8
	OpInvokeVirtualQuick      Opcode = 0xe9
	OpInvokeVirtualRangeQuick Opcode = 0xea
)

// 0xeb..0xff are unused.

// Format identifies an instruction's operand layout. The two-part name
// encodes size in code units and operand shape (e.g. k22c = 2 units, two
// registers plus a constant-pool index).
type Format byte

const (
	k10x Format = iota
	k12x
	k11n
	k11x
	k10t
	k20t
	k22x
	k21t
	k21s
	k21h
	k21c
	k23x
	k22b
	k22t
	k22s
	k22c
	k32x
	k30t
	k31t
	k31i
	k31c
	k35c
	k3rc
	k51l
)

// Size returns the format's width in 16-bit code units.
func (f Format) Size() uint32 {
	switch f {
	case k10x, k12x, k11n, k11x, k10t:
		return 1
	case k20t, k22x, k21t, k21s, k21h, k21c, k22b, k22t, k22s, k22c:
		return 2
	case k32x, k30t, k31t, k31i, k31c, k35c, k3rc:
		return 3
	case k51l:
		return 5
	}
	return 1
}

var opcodeFormats = [256]Format{
	OpNop: k10x, OpMove: k12x, OpMoveFrom16: k22x, OpMove16: k32x,
	OpMoveWide: k12x, OpMoveWideFrom16: k22x, OpMoveWide16: k32x,
	OpMoveObject: k12x, OpMoveObjectFrom16: k22x, OpMoveObject16: k32x,
	OpMoveResult: k11x, OpMoveResultWide: k11x, OpMoveResultObject: k11x,
	OpMoveException: k11x,
	OpReturnVoid:    k10x, OpReturn: k11x, OpReturnWide: k11x, OpReturnObject: k11x,
	OpConst4: k11n, OpConst16: k21s, OpConst: k31i, OpConstHigh16: k21h,
	OpConstWide16: k21s, OpConstWide32: k31i, OpConstWide: k51l,
	OpConstWideHigh16: k21h,
	OpConstString:     k21c, OpConstStringJumbo: k31c, OpConstClass: k21c,
	OpMonitorEnter: k11x, OpMonitorExit: k11x,
	OpCheckCast: k21c, OpInstanceOf: k22c, OpArrayLength: k12x,
	OpNewInstance: k21c, OpNewArray: k22c,
	OpFilledNewArray: k35c, OpFilledNewArrayRange: k3rc, OpFillArrayData: k31t,
	OpThrow: k11x,
	OpGoto:  k10t, OpGoto16: k20t, OpGoto32: k30t,
	OpPackedSwitch: k31t, OpSparseSwitch: k31t,
	OpCmplFloat: k23x, OpCmpgFloat: k23x, OpCmplDouble: k23x,
	OpCmpgDouble: k23x, OpCmpLong: k23x,
	OpIfEq: k22t, OpIfNe: k22t, OpIfLt: k22t, OpIfGe: k22t, OpIfGt: k22t,
	OpIfLe:  k22t,
	OpIfEqz: k21t, OpIfNez: k21t, OpIfLtz: k21t, OpIfGez: k21t,
	OpIfGtz: k21t, OpIfLez: k21t,
	OpAget: k23x, OpAgetWide: k23x, OpAgetObject: k23x, OpAgetBoolean: k23x,
	OpAgetByte: k23x, OpAgetChar: k23x, OpAgetShort: k23x,
	OpAput: k23x, OpAputWide: k23x, OpAputObject: k23x, OpAputBoolean: k23x,
	OpAputByte: k23x, OpAputChar: k23x, OpAputShort: k23x,
	OpIget: k22c, OpIgetWide: k22c, OpIgetObject: k22c, OpIgetBoolean: k22c,
	OpIgetByte: k22c, OpIgetChar: k22c, OpIgetShort: k22c,
	OpIput: k22c, OpIputWide: k22c, OpIputObject: k22c, OpIputBoolean: k22c,
	OpIputByte: k22c, OpIputChar: k22c, OpIputShort: k22c,
	OpSget: k21c, OpSgetWide: k21c, OpSgetObject: k21c, OpSgetBoolean: k21c,
	OpSgetByte: k21c, OpSgetChar: k21c, OpSgetShort: k21c,
	OpSput: k21c, OpSputWide: k21c, OpSputObject: k21c, OpSputBoolean: k21c,
	OpSputByte: k21c, OpSputChar: k21c, OpSputShort: k21c,
	OpInvokeVirtual: k35c, OpInvokeSuper: k35c, OpInvokeDirect: k35c,
	OpInvokeStatic: k35c, OpInvokeInterface: k35c,
	OpReturnVoidBarrier:  k10x,
	OpInvokeVirtualRange: k3rc, OpInvokeSuperRange: k3rc,
	OpInvokeDirectRange: k3rc, OpInvokeStaticRange: k3rc,
	OpInvokeInterfaceRange: k3rc,
	OpNegInt:               k12x, OpNotInt: k12x, OpNegLong: k12x, OpNotLong: k12x,
	OpNegFloat: k12x, OpNegDouble: k12x,
	OpIntToLong: k12x, OpIntToFloat: k12x, OpIntToDouble: k12x,
	OpLongToInt: k12x, OpLongToFloat: k12x, OpLongToDouble: k12x,
	OpFloatToInt: k12x, OpFloatToLong: k12x, OpFloatToDouble: k12x,
	OpDoubleToInt: k12x, OpDoubleToLong: k12x, OpDoubleToFloat: k12x,
	OpIntToByte: k12x, OpIntToChar: k12x, OpIntToShort: k12x,
	OpAddInt: k23x, OpSubInt: k23x, OpMulInt: k23x, OpDivInt: k23x,
	OpRemInt: k23x, OpAndInt: k23x, OpOrInt: k23x, OpXorInt: k23x,
	OpShlInt: k23x, OpShrInt: k23x, OpUshrInt: k23x,
	OpAddLong: k23x, OpSubLong: k23x, OpMulLong: k23x, OpDivLong: k23x,
	OpRemLong: k23x, OpAndLong: k23x, OpOrLong: k23x, OpXorLong: k23x,
	OpShlLong: k23x, OpShrLong: k23x, OpUshrLong: k23x,
	OpAddFloat: k23x, OpSubFloat: k23x, OpMulFloat: k23x, OpDivFloat: k23x,
	OpRemFloat:  k23x,
	OpAddDouble: k23x, OpSubDouble: k23x, OpMulDouble: k23x,
	OpDivDouble: k23x, OpRemDouble: k23x,
	OpAddInt2Addr: k12x, OpSubInt2Addr: k12x, OpMulInt2Addr: k12x,
	OpDivInt2Addr: k12x, OpRemInt2Addr: k12x, OpAndInt2Addr: k12x,
	OpOrInt2Addr: k12x, OpXorInt2Addr: k12x, OpShlInt2Addr: k12x,
	OpShrInt2Addr: k12x, OpUshrInt2Addr: k12x,
	OpAddLong2Addr: k12x, OpSubLong2Addr: k12x, OpMulLong2Addr: k12x,
	OpDivLong2Addr: k12x, OpRemLong2Addr: k12x, OpAndLong2Addr: k12x,
	OpOrLong2Addr: k12x, OpXorLong2Addr: k12x, OpShlLong2Addr: k12x,
	OpShrLong2Addr: k12x, OpUshrLong2Addr: k12x,
	OpAddFloat2Addr: k12x, OpSubFloat2Addr: k12x, OpMulFloat2Addr: k12x,
	OpDivFloat2Addr: k12x, OpRemFloat2Addr: k12x,
	OpAddDouble2Addr: k12x, OpSubDouble2Addr: k12x, OpMulDouble2Addr: k12x,
	OpDivDouble2Addr: k12x, OpRemDouble2Addr: k12x,
	OpAddIntLit16: k22s, OpRsubInt: k22s, OpMulIntLit16: k22s,
	OpDivIntLit16: k22s, OpRemIntLit16: k22s, OpAndIntLit16: k22s,
	OpOrIntLit16: k22s, OpXorIntLit16: k22s,
	OpAddIntLit8: k22b, OpRsubIntLit8: k22b, OpMulIntLit8: k22b,
	OpDivIntLit8: k22b, OpRemIntLit8: k22b, OpAndIntLit8: k22b,
	OpOrIntLit8: k22b, OpXorIntLit8: k22b, OpShlIntLit8: k22b,
	OpShrIntLit8: k22b, OpUshrIntLit8: k22b,
	OpIgetQuick: k22c, OpIgetWideQuick: k22c, OpIgetObjectQuick: k22c,
	OpIputQuick: k22c, OpIputWideQuick: k22c, OpIputObjectQuick: k22c,
	OpInvokeVirtualQuick: k35c, OpInvokeVirtualRangeQuick: k3rc,
}

// Format returns the operand layout for the opcode.
func (op Opcode) Format() Format {
	return opcodeFormats[op]
}

// IsUnused reports whether the opcode is in one of the reserved ranges.
// Decoding one of these on a verified method is a fatal condition.
func (op Opcode) IsUnused() bool {
	switch {
	case op >= 0x3e && op <= 0x43:
		return true
	case op == 0x79 || op == 0x7a:
		return true
	case op >= 0xeb:
		return true
	}
	return false
}

var opcodeNames = map[Opcode]string{
	OpNop: "nop", OpMove: "move", OpMoveFrom16: "move/from16",
	OpMove16: "move/16", OpMoveWide: "move-wide",
	OpMoveWideFrom16: "move-wide/from16", OpMoveWide16: "move-wide/16",
	OpMoveObject: "move-object", OpMoveObjectFrom16: "move-object/from16",
	OpMoveObject16: "move-object/16", OpMoveResult: "move-result",
	OpMoveResultWide:   "move-result-wide",
	OpMoveResultObject: "move-result-object",
	OpMoveException:    "move-exception",
	OpReturnVoid:       "return-void", OpReturn: "return",
	OpReturnWide: "return-wide", OpReturnObject: "return-object",
	OpConst4: "const/4", OpConst16: "const/16", OpConst: "const",
	OpConstHigh16: "const/high16", OpConstWide16: "const-wide/16",
	OpConstWide32: "const-wide/32", OpConstWide: "const-wide",
	OpConstWideHigh16: "const-wide/high16", OpConstString: "const-string",
	OpConstStringJumbo: "const-string/jumbo", OpConstClass: "const-class",
	OpMonitorEnter: "monitor-enter", OpMonitorExit: "monitor-exit",
	OpCheckCast: "check-cast", OpInstanceOf: "instance-of",
	OpArrayLength: "array-length", OpNewInstance: "new-instance",
	OpNewArray: "new-array", OpFilledNewArray: "filled-new-array",
	OpFilledNewArrayRange: "filled-new-array/range",
	OpFillArrayData:       "fill-array-data", OpThrow: "throw",
	OpGoto: "goto", OpGoto16: "goto/16", OpGoto32: "goto/32",
	OpPackedSwitch: "packed-switch", OpSparseSwitch: "sparse-switch",
	OpCmplFloat: "cmpl-float", OpCmpgFloat: "cmpg-float",
	OpCmplDouble: "cmpl-double", OpCmpgDouble: "cmpg-double",
	OpCmpLong: "cmp-long",
	OpIfEq:    "if-eq", OpIfNe: "if-ne", OpIfLt: "if-lt", OpIfGe: "if-ge",
	OpIfGt: "if-gt", OpIfLe: "if-le", OpIfEqz: "if-eqz", OpIfNez: "if-nez",
	OpIfLtz: "if-ltz", OpIfGez: "if-gez", OpIfGtz: "if-gtz",
	OpIfLez: "if-lez",
	OpAget:  "aget", OpAgetWide: "aget-wide", OpAgetObject: "aget-object",
	OpAgetBoolean: "aget-boolean", OpAgetByte: "aget-byte",
	OpAgetChar: "aget-char", OpAgetShort: "aget-short",
	OpAput: "aput", OpAputWide: "aput-wide", OpAputObject: "aput-object",
	OpAputBoolean: "aput-boolean", OpAputByte: "aput-byte",
	OpAputChar: "aput-char", OpAputShort: "aput-short",
	OpIget: "iget", OpIgetWide: "iget-wide", OpIgetObject: "iget-object",
	OpIgetBoolean: "iget-boolean", OpIgetByte: "iget-byte",
	OpIgetChar: "iget-char", OpIgetShort: "iget-short",
	OpIput: "iput", OpIputWide: "iput-wide", OpIputObject: "iput-object",
	OpIputBoolean: "iput-boolean", OpIputByte: "iput-byte",
	OpIputChar: "iput-char", OpIputShort: "iput-short",
	OpSget: "sget", OpSgetWide: "sget-wide", OpSgetObject: "sget-object",
	OpSgetBoolean: "sget-boolean", OpSgetByte: "sget-byte",
	OpSgetChar: "sget-char", OpSgetShort: "sget-short",
	OpSput: "sput", OpSputWide: "sput-wide", OpSputObject: "sput-object",
	OpSputBoolean: "sput-boolean", OpSputByte: "sput-byte",
	OpSputChar: "sput-char", OpSputShort: "sput-short",
	OpInvokeVirtual: "invoke-virtual", OpInvokeSuper: "invoke-super",
	OpInvokeDirect: "invoke-direct", OpInvokeStatic: "invoke-static",
	OpInvokeInterface:      "invoke-interface",
	OpReturnVoidBarrier:    "return-void-barrier",
	OpInvokeVirtualRange:   "invoke-virtual/range",
	OpInvokeSuperRange:     "invoke-super/range",
	OpInvokeDirectRange:    "invoke-direct/range",
	OpInvokeStaticRange:    "invoke-static/range",
	OpInvokeInterfaceRange: "invoke-interface/range",
	OpNegInt:               "neg-int", OpNotInt: "not-int",
	OpNegLong: "neg-long", OpNotLong: "not-long", OpNegFloat: "neg-float",
	OpNegDouble: "neg-double", OpIntToLong: "int-to-long",
	OpIntToFloat: "int-to-float", OpIntToDouble: "int-to-double",
	OpLongToInt: "long-to-int", OpLongToFloat: "long-to-float",
	OpLongToDouble: "long-to-double", OpFloatToInt: "float-to-int",
	OpFloatToLong: "float-to-long", OpFloatToDouble: "float-to-double",
	OpDoubleToInt: "double-to-int", OpDoubleToLong: "double-to-long",
	OpDoubleToFloat: "double-to-float", OpIntToByte: "int-to-byte",
	OpIntToChar: "int-to-char", OpIntToShort: "int-to-short",
	OpAddInt: "add-int", OpSubInt: "sub-int", OpMulInt: "mul-int",
	OpDivInt: "div-int", OpRemInt: "rem-int", OpAndInt: "and-int",
	OpOrInt: "or-int", OpXorInt: "xor-int", OpShlInt: "shl-int",
	OpShrInt: "shr-int", OpUshrInt: "ushr-int",
	OpAddLong: "add-long", OpSubLong: "sub-long", OpMulLong: "mul-long",
	OpDivLong: "div-long", OpRemLong: "rem-long", OpAndLong: "and-long",
	OpOrLong: "or-long", OpXorLong: "xor-long", OpShlLong: "shl-long",
	OpShrLong: "shr-long", OpUshrLong: "ushr-long",
	OpAddFloat: "add-float", OpSubFloat: "sub-float",
	OpMulFloat: "mul-float", OpDivFloat: "div-float",
	OpRemFloat: "rem-float", OpAddDouble: "add-double",
	OpSubDouble: "sub-double", OpMulDouble: "mul-double",
	OpDivDouble: "div-double", OpRemDouble: "rem-double",
	OpAddInt2Addr: "add-int/2addr", OpSubInt2Addr: "sub-int/2addr",
	OpMulInt2Addr: "mul-int/2addr", OpDivInt2Addr: "div-int/2addr",
	OpRemInt2Addr: "rem-int/2addr", OpAndInt2Addr: "and-int/2addr",
	OpOrInt2Addr: "or-int/2addr", OpXorInt2Addr: "xor-int/2addr",
	OpShlInt2Addr: "shl-int/2addr", OpShrInt2Addr: "shr-int/2addr",
	OpUshrInt2Addr: "ushr-int/2addr",
	OpAddLong2Addr: "add-long/2addr", OpSubLong2Addr: "sub-long/2addr",
	OpMulLong2Addr: "mul-long/2addr", OpDivLong2Addr: "div-long/2addr",
	OpRemLong2Addr: "rem-long/2addr", OpAndLong2Addr: "and-long/2addr",
	OpOrLong2Addr: "or-long/2addr", OpXorLong2Addr: "xor-long/2addr",
	OpShlLong2Addr: "shl-long/2addr", OpShrLong2Addr: "shr-long/2addr",
	OpUshrLong2Addr: "ushr-long/2addr",
	OpAddFloat2Addr: "add-float/2addr", OpSubFloat2Addr: "sub-float/2addr",
	OpMulFloat2Addr: "mul-float/2addr", OpDivFloat2Addr: "div-float/2addr",
	OpRemFloat2Addr:  "rem-float/2addr",
	OpAddDouble2Addr: "add-double/2addr",
	OpSubDouble2Addr: "sub-double/2addr",
	OpMulDouble2Addr: "mul-double/2addr",
	OpDivDouble2Addr: "div-double/2addr",
	OpRemDouble2Addr: "rem-double/2addr",
	OpAddIntLit16:    "add-int/lit16", OpRsubInt: "rsub-int",
	OpMulIntLit16: "mul-int/lit16", OpDivIntLit16: "div-int/lit16",
	OpRemIntLit16: "rem-int/lit16", OpAndIntLit16: "and-int/lit16",
	OpOrIntLit16: "or-int/lit16", OpXorIntLit16: "xor-int/lit16",
	OpAddIntLit8: "add-int/lit8", OpRsubIntLit8: "rsub-int/lit8",
	OpMulIntLit8: "mul-int/lit8", OpDivIntLit8: "div-int/lit8",
	OpRemIntLit8: "rem-int/lit8", OpAndIntLit8: "and-int/lit8",
	OpOrIntLit8: "or-int/lit8", OpXorIntLit8: "xor-int/lit8",
	OpShlIntLit8: "shl-int/lit8", OpShrIntLit8: "shr-int/lit8",
	OpUshrIntLit8: "ushr-int/lit8",
	OpIgetQuick:   "iget-quick", OpIgetWideQuick: "iget-wide-quick",
	OpIgetObjectQuick: "iget-object-quick", OpIputQuick: "iput-quick",
	OpIputWideQuick:           "iput-wide-quick",
	OpIputObjectQuick:         "iput-object-quick",
	OpInvokeVirtualQuick:      "invoke-virtual-quick",
	OpInvokeVirtualRangeQuick: "invoke-virtual-quick/range",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "unused"
}

// ---------------------------------------------------------------------------
// Operand accessors
// ---------------------------------------------------------------------------

// The accessors below decode operands out of the packed code-unit array.
// Each is named for the format it decodes, mirroring the operand-tag table
// of the bytecode specification. pc is the code-unit index of the
// instruction's first unit.

// OpcodeAt returns the opcode at pc.
func (c *CodeItem) OpcodeAt(pc uint32) Opcode {
	return Opcode(c.Insns[pc] & 0xff)
}

func (c *CodeItem) VRegA12x(pc uint32) uint8 { return uint8(c.Insns[pc]>>8) & 0x0f }
func (c *CodeItem) VRegB12x(pc uint32) uint8 { return uint8(c.Insns[pc] >> 12) }

func (c *CodeItem) VRegA11n(pc uint32) uint8 { return uint8(c.Insns[pc]>>8) & 0x0f }
func (c *CodeItem) VRegB11n(pc uint32) int32 {
	// Sign-extend the 4-bit literal.
	return int32(int8(uint8(c.Insns[pc]>>12)<<4)) >> 4
}

func (c *CodeItem) VRegA11x(pc uint32) uint8 { return uint8(c.Insns[pc] >> 8) }

func (c *CodeItem) VRegA10t(pc uint32) int32 { return int32(int8(c.Insns[pc] >> 8)) }

func (c *CodeItem) VRegA20t(pc uint32) int32 { return int32(int16(c.Insns[pc+1])) }

func (c *CodeItem) VRegA22x(pc uint32) uint8  { return uint8(c.Insns[pc] >> 8) }
func (c *CodeItem) VRegB22x(pc uint32) uint16 { return c.Insns[pc+1] }

func (c *CodeItem) VRegA21t(pc uint32) uint8 { return uint8(c.Insns[pc] >> 8) }
func (c *CodeItem) VRegB21t(pc uint32) int32 { return int32(int16(c.Insns[pc+1])) }

func (c *CodeItem) VRegA21s(pc uint32) uint8 { return uint8(c.Insns[pc] >> 8) }
func (c *CodeItem) VRegB21s(pc uint32) int32 { return int32(int16(c.Insns[pc+1])) }

func (c *CodeItem) VRegA21h(pc uint32) uint8  { return uint8(c.Insns[pc] >> 8) }
func (c *CodeItem) VRegB21h(pc uint32) uint16 { return c.Insns[pc+1] }

func (c *CodeItem) VRegA21c(pc uint32) uint8  { return uint8(c.Insns[pc] >> 8) }
func (c *CodeItem) VRegB21c(pc uint32) uint32 { return uint32(c.Insns[pc+1]) }

func (c *CodeItem) VRegA23x(pc uint32) uint8 { return uint8(c.Insns[pc] >> 8) }
func (c *CodeItem) VRegB23x(pc uint32) uint8 { return uint8(c.Insns[pc+1]) }
func (c *CodeItem) VRegC23x(pc uint32) uint8 { return uint8(c.Insns[pc+1] >> 8) }

func (c *CodeItem) VRegA22b(pc uint32) uint8 { return uint8(c.Insns[pc] >> 8) }
func (c *CodeItem) VRegB22b(pc uint32) uint8 { return uint8(c.Insns[pc+1]) }
func (c *CodeItem) VRegC22b(pc uint32) int32 { return int32(int8(c.Insns[pc+1] >> 8)) }

func (c *CodeItem) VRegA22t(pc uint32) uint8 { return uint8(c.Insns[pc]>>8) & 0x0f }
func (c *CodeItem) VRegB22t(pc uint32) uint8 { return uint8(c.Insns[pc] >> 12) }
func (c *CodeItem) VRegC22t(pc uint32) int32 { return int32(int16(c.Insns[pc+1])) }

func (c *CodeItem) VRegA22s(pc uint32) uint8 { return uint8(c.Insns[pc]>>8) & 0x0f }
func (c *CodeItem) VRegB22s(pc uint32) uint8 { return uint8(c.Insns[pc] >> 12) }
func (c *CodeItem) VRegC22s(pc uint32) int32 { return int32(int16(c.Insns[pc+1])) }

func (c *CodeItem) VRegA22c(pc uint32) uint8  { return uint8(c.Insns[pc]>>8) & 0x0f }
func (c *CodeItem) VRegB22c(pc uint32) uint8  { return uint8(c.Insns[pc] >> 12) }
func (c *CodeItem) VRegC22c(pc uint32) uint32 { return uint32(c.Insns[pc+1]) }

func (c *CodeItem) VRegA30t(pc uint32) int32 {
	return int32(uint32(c.Insns[pc+1]) | uint32(c.Insns[pc+2])<<16)
}

func (c *CodeItem) VRegA32x(pc uint32) uint16 { return c.Insns[pc+1] }
func (c *CodeItem) VRegB32x(pc uint32) uint16 { return c.Insns[pc+2] }

func (c *CodeItem) VRegA31i(pc uint32) uint8 { return uint8(c.Insns[pc] >> 8) }
func (c *CodeItem) VRegB31i(pc uint32) int32 {
	return int32(uint32(c.Insns[pc+1]) | uint32(c.Insns[pc+2])<<16)
}

func (c *CodeItem) VRegA31t(pc uint32) uint8 { return uint8(c.Insns[pc] >> 8) }
func (c *CodeItem) VRegB31t(pc uint32) int32 {
	return int32(uint32(c.Insns[pc+1]) | uint32(c.Insns[pc+2])<<16)
}

func (c *CodeItem) VRegA31c(pc uint32) uint8 { return uint8(c.Insns[pc] >> 8) }
func (c *CodeItem) VRegB31c(pc uint32) uint32 {
	return uint32(c.Insns[pc+1]) | uint32(c.Insns[pc+2])<<16
}

// VRegA35c returns the argument count (0..5).
func (c *CodeItem) VRegA35c(pc uint32) uint8  { return uint8(c.Insns[pc] >> 12) }
func (c *CodeItem) VRegB35c(pc uint32) uint32 { return uint32(c.Insns[pc+1]) }

// Args35c returns the five argument register nibbles C, D, E, F, G.
// Only the first VRegA35c of them are meaningful.
func (c *CodeItem) Args35c(pc uint32) [5]uint8 {
	u := c.Insns[pc+2]
	return [5]uint8{
		uint8(u) & 0x0f,
		uint8(u>>4) & 0x0f,
		uint8(u>>8) & 0x0f,
		uint8(u >> 12),
		uint8(c.Insns[pc]>>8) & 0x0f,
	}
}

func (c *CodeItem) VRegA3rc(pc uint32) uint8  { return uint8(c.Insns[pc] >> 8) }
func (c *CodeItem) VRegB3rc(pc uint32) uint32 { return uint32(c.Insns[pc+1]) }
func (c *CodeItem) VRegC3rc(pc uint32) uint16 { return c.Insns[pc+2] }

func (c *CodeItem) VRegA51l(pc uint32) uint8 { return uint8(c.Insns[pc] >> 8) }
func (c *CodeItem) VRegB51l(pc uint32) int64 {
	return int64(uint64(c.Insns[pc+1]) |
		uint64(c.Insns[pc+2])<<16 |
		uint64(c.Insns[pc+3])<<32 |
		uint64(c.Insns[pc+4])<<48)
}

// ---------------------------------------------------------------------------
// Instruction sizing and payloads
// ---------------------------------------------------------------------------

// Payload pseudo-instruction identifiers. A payload's first code unit is a
// NOP opcode with a nonzero high byte.
const (
	packedSwitchIdent = 0x0100
	sparseSwitchIdent = 0x0200
	arrayDataIdent    = 0x0300
)

// SizeAt returns the width in code units of the instruction at pc. For a
// NOP the whole unit is consulted so that switch and array-data payloads,
// which are never reached by fall-through, would be skipped whole.
func (c *CodeItem) SizeAt(pc uint32) uint32 {
	insn := c.Insns[pc]
	if Opcode(insn&0xff) == OpNop {
		switch insn {
		case packedSwitchIdent:
			size := uint32(c.Insns[pc+1])
			return size*2 + 4
		case sparseSwitchIdent:
			size := uint32(c.Insns[pc+1])
			return size*4 + 2
		case arrayDataIdent:
			elemWidth := uint32(c.Insns[pc+1])
			count := uint32(c.Insns[pc+2]) | uint32(c.Insns[pc+3])<<16
			return (elemWidth*count+1)/2 + 4
		}
	}
	return Opcode(insn & 0xff).Format().Size()
}

// PackedSwitchOffset evaluates a packed-switch at pc against test and
// returns the branch offset in code units relative to pc. A miss returns
// the instruction width so execution falls through.
//
// Payload layout: ident, size, first_key (2 units), size branch targets
// (2 units each, relative to the switch instruction).
func (c *CodeItem) PackedSwitchOffset(pc uint32, test int32) int32 {
	payload := uint32(int64(pc) + int64(c.VRegB31t(pc)))
	size := int32(c.Insns[payload+1])
	firstKey := int32(uint32(c.Insns[payload+2]) | uint32(c.Insns[payload+3])<<16)
	idx := test - firstKey
	if idx < 0 || idx >= size {
		return 3 // width of the switch instruction
	}
	t := payload + 4 + uint32(idx)*2
	return int32(uint32(c.Insns[t]) | uint32(c.Insns[t+1])<<16)
}

// SparseSwitchOffset evaluates a sparse-switch at pc against test.
//
// Payload layout: ident, size, size keys sorted ascending (2 units each),
// size branch targets (2 units each).
func (c *CodeItem) SparseSwitchOffset(pc uint32, test int32) int32 {
	payload := uint32(int64(pc) + int64(c.VRegB31t(pc)))
	size := int32(c.Insns[payload+1])
	keys := payload + 2
	targets := keys + uint32(size)*2

	lo, hi := int32(0), size-1
	for lo <= hi {
		mid := (lo + hi) / 2
		k := keys + uint32(mid)*2
		key := int32(uint32(c.Insns[k]) | uint32(c.Insns[k+1])<<16)
		switch {
		case test < key:
			hi = mid - 1
		case test > key:
			lo = mid + 1
		default:
			t := targets + uint32(mid)*2
			return int32(uint32(c.Insns[t]) | uint32(c.Insns[t+1])<<16)
		}
	}
	return 3
}

// ArrayDataAt decodes the fill-array-data payload at payloadPC.
//
// Payload layout: ident, element width, element count (2 units), then
// count*width raw little-endian bytes padded to a unit boundary.
func (c *CodeItem) ArrayDataAt(payloadPC uint32) (elemWidth uint32, count uint32, data []byte) {
	elemWidth = uint32(c.Insns[payloadPC+1])
	count = uint32(c.Insns[payloadPC+2]) | uint32(c.Insns[payloadPC+3])<<16
	n := elemWidth * count
	data = make([]byte, 0, n+1)
	for u := payloadPC + 4; uint32(len(data)) < n; u++ {
		unit := c.Insns[u]
		data = append(data, byte(unit), byte(unit>>8))
	}
	return elemWidth, count, data[:n]
}

package vm

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ---------------------------------------------------------------------------
// Method and CodeItem
// ---------------------------------------------------------------------------

// Method is a resolved method handle. Dispatch, linkage, and frame
// construction for callees live in the invoke collaborator; the loop only
// needs identity, staticness, and the code item.
type Method struct {
	Name      string
	Declaring *Class
	Static    bool
	Code      *CodeItem
}

func (m *Method) String() string {
	if m.Declaring != nil {
		return m.Declaring.Descriptor + "->" + m.Name
	}
	return m.Name
}

// CodeItem is a method body: register counts, the packed 16-bit code
// units, and the try/catch table. It is shared and immutable once built.
type CodeItem struct {
	RegistersSize uint16
	InsSize       uint16
	OutsSize      uint16
	Insns         []uint16
	Tries         []TryItem
}

// TryItem is one protected range of code units, [StartAddr, EndAddr),
// with its handlers in declaration order.
type TryItem struct {
	StartAddr uint32
	EndAddr   uint32
	Handlers  []CatchHandler
}

// CatchHandler is one catch target. Type nil is a catch-all. Handler
// types are resolved when the code item is built so the unwind helper
// never has to call back into resolution.
type CatchHandler struct {
	Type *Class
	Addr uint32
}

// ---------------------------------------------------------------------------
// Wire format
// ---------------------------------------------------------------------------

// MethodImage is the serialized form of a method: the code item plus the
// metadata a loader needs to reconstruct a Method against its own class
// table. Catch types travel as descriptors.
type MethodImage struct {
	Name          string     `cbor:"name"`
	Class         string     `cbor:"class"`
	Static        bool       `cbor:"static"`
	RegistersSize uint16     `cbor:"registers"`
	InsSize       uint16     `cbor:"ins"`
	OutsSize      uint16     `cbor:"outs"`
	Insns         []uint16   `cbor:"insns"`
	Tries         []TryImage `cbor:"tries,omitempty"`
}

// TryImage mirrors TryItem on the wire.
type TryImage struct {
	Start    uint32         `cbor:"start"`
	End      uint32         `cbor:"end"`
	Handlers []HandlerImage `cbor:"handlers"`
}

// HandlerImage mirrors CatchHandler; an empty Type is a catch-all.
type HandlerImage struct {
	Type string `cbor:"type,omitempty"`
	Addr uint32 `cbor:"addr"`
}

// Canonical mode keeps the encoding deterministic.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalMethodImage serializes a MethodImage to CBOR bytes.
func MarshalMethodImage(img *MethodImage) ([]byte, error) {
	return cborEncMode.Marshal(img)
}

// UnmarshalMethodImage deserializes a MethodImage from CBOR bytes.
func UnmarshalMethodImage(data []byte) (*MethodImage, error) {
	var img MethodImage
	if err := cbor.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("vm: unmarshal method image: %w", err)
	}
	return &img, nil
}

// Image converts a method to its wire form.
func (m *Method) Image() *MethodImage {
	img := &MethodImage{
		Name:          m.Name,
		Static:        m.Static,
		RegistersSize: m.Code.RegistersSize,
		InsSize:       m.Code.InsSize,
		OutsSize:      m.Code.OutsSize,
		Insns:         m.Code.Insns,
	}
	if m.Declaring != nil {
		img.Class = m.Declaring.Descriptor
	}
	for _, try := range m.Code.Tries {
		ti := TryImage{Start: try.StartAddr, End: try.EndAddr}
		for _, h := range try.Handlers {
			hi := HandlerImage{Addr: h.Addr}
			if h.Type != nil {
				hi.Type = h.Type.Descriptor
			}
			ti.Handlers = append(ti.Handlers, hi)
		}
		img.Tries = append(img.Tries, ti)
	}
	return img
}

// Realize reconstructs a Method from its wire form. resolve maps a class
// descriptor to a class handle; it is consulted for the declaring class
// and every catch type.
func (img *MethodImage) Realize(resolve func(descriptor string) *Class) (*Method, error) {
	code := &CodeItem{
		RegistersSize: img.RegistersSize,
		InsSize:       img.InsSize,
		OutsSize:      img.OutsSize,
		Insns:         img.Insns,
	}
	for _, ti := range img.Tries {
		try := TryItem{StartAddr: ti.Start, EndAddr: ti.End}
		for _, hi := range ti.Handlers {
			h := CatchHandler{Addr: hi.Addr}
			if hi.Type != "" {
				h.Type = resolve(hi.Type)
				if h.Type == nil {
					return nil, fmt.Errorf("vm: unresolved catch type %s", hi.Type)
				}
			}
			try.Handlers = append(try.Handlers, h)
		}
		code.Tries = append(code.Tries, try)
	}
	m := &Method{Name: img.Name, Static: img.Static, Code: code}
	if img.Class != "" {
		m.Declaring = resolve(img.Class)
		if m.Declaring == nil {
			return nil, fmt.Errorf("vm: unresolved declaring class %s", img.Class)
		}
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// CodeBuilder
// ---------------------------------------------------------------------------

// CodeBuilder assembles code items unit by unit. It exists for tests and
// tooling; production code items arrive already packed.
type CodeBuilder struct {
	registers uint16
	ins       uint16
	outs      uint16
	insns     []uint16
	tries     []TryItem
}

// NewCodeBuilder creates a builder for a method body with the given
// register-file size.
func NewCodeBuilder(registers uint16) *CodeBuilder {
	return &CodeBuilder{registers: registers}
}

// SetIns sets the incoming-argument register count.
func (b *CodeBuilder) SetIns(n uint16) *CodeBuilder { b.ins = n; return b }

// SetOuts sets the outgoing-argument register count.
func (b *CodeBuilder) SetOuts(n uint16) *CodeBuilder { b.outs = n; return b }

// PC returns the current code-unit offset, for branch target bookkeeping.
func (b *CodeBuilder) PC() uint32 { return uint32(len(b.insns)) }

// Units appends raw code units.
func (b *CodeBuilder) Units(us ...uint16) *CodeBuilder {
	b.insns = append(b.insns, us...)
	return b
}

// unit0 packs an opcode with its high byte.
func unit0(op Opcode, hi uint8) uint16 { return uint16(op) | uint16(hi)<<8 }

// Op10x emits a no-operand instruction.
func (b *CodeBuilder) Op10x(op Opcode) *CodeBuilder {
	return b.Units(unit0(op, 0))
}

// Op12x emits two 4-bit registers.
func (b *CodeBuilder) Op12x(op Opcode, a, rb uint8) *CodeBuilder {
	return b.Units(unit0(op, a&0x0f|rb<<4))
}

// Op11n emits a 4-bit register and a 4-bit signed literal.
func (b *CodeBuilder) Op11n(op Opcode, a uint8, lit int32) *CodeBuilder {
	return b.Units(unit0(op, a&0x0f|uint8(lit&0x0f)<<4))
}

// Op11x emits one 8-bit register.
func (b *CodeBuilder) Op11x(op Opcode, a uint8) *CodeBuilder {
	return b.Units(unit0(op, a))
}

// Op10t emits an 8-bit signed branch offset.
func (b *CodeBuilder) Op10t(op Opcode, off int8) *CodeBuilder {
	return b.Units(unit0(op, uint8(off)))
}

// Op20t emits a 16-bit signed branch offset.
func (b *CodeBuilder) Op20t(op Opcode, off int16) *CodeBuilder {
	return b.Units(unit0(op, 0), uint16(off))
}

// Op30t emits a 32-bit signed branch offset.
func (b *CodeBuilder) Op30t(op Opcode, off int32) *CodeBuilder {
	return b.Units(unit0(op, 0), uint16(uint32(off)), uint16(uint32(off)>>16))
}

// Op22x emits an 8-bit and a 16-bit register.
func (b *CodeBuilder) Op22x(op Opcode, a uint8, rb uint16) *CodeBuilder {
	return b.Units(unit0(op, a), rb)
}

// Op32x emits two 16-bit registers.
func (b *CodeBuilder) Op32x(op Opcode, a, rb uint16) *CodeBuilder {
	return b.Units(unit0(op, 0), a, rb)
}

// Op21s emits an 8-bit register and a 16-bit signed literal.
func (b *CodeBuilder) Op21s(op Opcode, a uint8, lit int16) *CodeBuilder {
	return b.Units(unit0(op, a), uint16(lit))
}

// Op21h emits an 8-bit register and a 16-bit high literal.
func (b *CodeBuilder) Op21h(op Opcode, a uint8, lit uint16) *CodeBuilder {
	return b.Units(unit0(op, a), lit)
}

// Op21t emits an 8-bit register and a 16-bit signed branch offset.
func (b *CodeBuilder) Op21t(op Opcode, a uint8, off int16) *CodeBuilder {
	return b.Units(unit0(op, a), uint16(off))
}

// Op21c emits an 8-bit register and a 16-bit pool index.
func (b *CodeBuilder) Op21c(op Opcode, a uint8, idx uint16) *CodeBuilder {
	return b.Units(unit0(op, a), idx)
}

// Op23x emits three 8-bit registers.
func (b *CodeBuilder) Op23x(op Opcode, a, rb, rc uint8) *CodeBuilder {
	return b.Units(unit0(op, a), uint16(rb)|uint16(rc)<<8)
}

// Op22b emits two 8-bit registers and an 8-bit signed literal.
func (b *CodeBuilder) Op22b(op Opcode, a, rb uint8, lit int8) *CodeBuilder {
	return b.Units(unit0(op, a), uint16(rb)|uint16(uint8(lit))<<8)
}

// Op22t emits two 4-bit registers and a 16-bit signed branch offset.
func (b *CodeBuilder) Op22t(op Opcode, a, rb uint8, off int16) *CodeBuilder {
	return b.Units(unit0(op, a&0x0f|rb<<4), uint16(off))
}

// Op22s emits two 4-bit registers and a 16-bit signed literal.
func (b *CodeBuilder) Op22s(op Opcode, a, rb uint8, lit int16) *CodeBuilder {
	return b.Units(unit0(op, a&0x0f|rb<<4), uint16(lit))
}

// Op22c emits two 4-bit registers and a 16-bit pool index.
func (b *CodeBuilder) Op22c(op Opcode, a, rb uint8, idx uint16) *CodeBuilder {
	return b.Units(unit0(op, a&0x0f|rb<<4), idx)
}

// Op31i emits an 8-bit register and a 32-bit literal.
func (b *CodeBuilder) Op31i(op Opcode, a uint8, lit int32) *CodeBuilder {
	return b.Units(unit0(op, a), uint16(uint32(lit)), uint16(uint32(lit)>>16))
}

// Op31t emits an 8-bit register and a 32-bit signed payload offset.
func (b *CodeBuilder) Op31t(op Opcode, a uint8, off int32) *CodeBuilder {
	return b.Units(unit0(op, a), uint16(uint32(off)), uint16(uint32(off)>>16))
}

// Op31c emits an 8-bit register and a 32-bit pool index.
func (b *CodeBuilder) Op31c(op Opcode, a uint8, idx uint32) *CodeBuilder {
	return b.Units(unit0(op, a), uint16(idx), uint16(idx>>16))
}

// Op35c emits up to five 4-bit argument registers and a 16-bit pool
// index.
func (b *CodeBuilder) Op35c(op Opcode, idx uint16, args ...uint8) *CodeBuilder {
	if len(args) > 5 {
		panic("vm: 35c takes at most five arguments")
	}
	var g uint8
	if len(args) == 5 {
		g = args[4] & 0x0f
	}
	b.Units(unit0(op, uint8(len(args))<<4|g), idx)
	var u uint16
	for i := 0; i < len(args) && i < 4; i++ {
		u |= uint16(args[i]&0x0f) << (4 * i)
	}
	return b.Units(u)
}

// Op3rc emits a register-range form: count arguments starting at first.
func (b *CodeBuilder) Op3rc(op Opcode, idx uint16, first uint16, count uint8) *CodeBuilder {
	return b.Units(unit0(op, count), idx, first)
}

// Op51l emits an 8-bit register and a 64-bit literal.
func (b *CodeBuilder) Op51l(op Opcode, a uint8, lit int64) *CodeBuilder {
	u := uint64(lit)
	return b.Units(unit0(op, a),
		uint16(u), uint16(u>>16), uint16(u>>32), uint16(u>>48))
}

// PackedSwitchPayload appends a packed-switch payload and returns its
// code-unit offset. Targets are relative to the switch instruction.
func (b *CodeBuilder) PackedSwitchPayload(firstKey int32, targets ...int32) uint32 {
	at := b.PC()
	b.Units(packedSwitchIdent, uint16(len(targets)),
		uint16(uint32(firstKey)), uint16(uint32(firstKey)>>16))
	for _, t := range targets {
		b.Units(uint16(uint32(t)), uint16(uint32(t)>>16))
	}
	return at
}

// SparseSwitchPayload appends a sparse-switch payload. Keys must be
// sorted ascending, one target per key.
func (b *CodeBuilder) SparseSwitchPayload(keys, targets []int32) uint32 {
	if len(keys) != len(targets) {
		panic("vm: sparse switch keys and targets differ in length")
	}
	at := b.PC()
	b.Units(sparseSwitchIdent, uint16(len(keys)))
	for _, k := range keys {
		b.Units(uint16(uint32(k)), uint16(uint32(k)>>16))
	}
	for _, t := range targets {
		b.Units(uint16(uint32(t)), uint16(uint32(t)>>16))
	}
	return at
}

// ArrayDataPayload appends a fill-array-data payload of count elements of
// elemWidth bytes each, data little-endian, padded to a unit boundary.
func (b *CodeBuilder) ArrayDataPayload(elemWidth uint16, data []byte) uint32 {
	at := b.PC()
	count := uint32(len(data)) / uint32(elemWidth)
	b.Units(arrayDataIdent, elemWidth, uint16(count), uint16(count>>16))
	for i := 0; i < len(data); i += 2 {
		u := uint16(data[i])
		if i+1 < len(data) {
			u |= uint16(data[i+1]) << 8
		}
		b.Units(u)
	}
	return at
}

// AddTry registers a protected range with its handlers.
func (b *CodeBuilder) AddTry(start, end uint32, handlers ...CatchHandler) *CodeBuilder {
	b.tries = append(b.tries, TryItem{StartAddr: start, EndAddr: end, Handlers: handlers})
	return b
}

// Build finalizes the code item.
func (b *CodeBuilder) Build() *CodeItem {
	return &CodeItem{
		RegistersSize: b.registers,
		InsSize:       b.ins,
		OutsSize:      b.outs,
		Insns:         b.insns,
		Tries:         b.tries,
	}
}

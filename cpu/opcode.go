// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
)

// CodeOp is a basic opcode, the low 5 bits of an instruction word.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_SPECIAL = CodeOp(0x00) // SPECIAL
	OP_SET     = CodeOp(0x01) // SET
	OP_ADD     = CodeOp(0x02) // ADD
	OP_SUB     = CodeOp(0x03) // SUB
	OP_MUL     = CodeOp(0x04) // MUL
	OP_MLI     = CodeOp(0x05) // MLI
	OP_DIV     = CodeOp(0x06) // DIV
	OP_DVI     = CodeOp(0x07) // DVI
	OP_MOD     = CodeOp(0x08) // MOD
	OP_MDI     = CodeOp(0x09) // MDI
	OP_AND     = CodeOp(0x0a) // AND
	OP_BOR     = CodeOp(0x0b) // BOR
	OP_XOR     = CodeOp(0x0c) // XOR
	OP_SHR     = CodeOp(0x0d) // SHR
	OP_ASR     = CodeOp(0x0e) // ASR
	OP_SHL     = CodeOp(0x0f) // SHL
	OP_IFB     = CodeOp(0x10) // IFB
	OP_IFC     = CodeOp(0x11) // IFC
	OP_IFE     = CodeOp(0x12) // IFE
	OP_IFN     = CodeOp(0x13) // IFN
	OP_IFG     = CodeOp(0x14) // IFG
	OP_IFA     = CodeOp(0x15) // IFA
	OP_IFL     = CodeOp(0x16) // IFL
	OP_IFU     = CodeOp(0x17) // IFU
	OP_ADX     = CodeOp(0x1a) // ADX
	OP_SBX     = CodeOp(0x1b) // SBX
	OP_STI     = CodeOp(0x1e) // STI
	OP_STD     = CodeOp(0x1f) // STD
)

// Valid returns true if the opcode is assigned.
func (op CodeOp) Valid() bool {
	switch {
	case op >= OP_SPECIAL && op <= OP_IFU:
		return true
	case op == OP_ADX, op == OP_SBX, op == OP_STI, op == OP_STD:
		return true
	}
	return false
}

// Conditional returns true for the IFx family.
func (op CodeOp) Conditional() bool {
	return op >= OP_IFB && op <= OP_IFU
}

// Writes returns true if the opcode stores a result into operand b.
func (op CodeOp) Writes() bool {
	return op != OP_SPECIAL && !op.Conditional()
}

// CodeSpecial is a special opcode, held in the b field when the basic opcode is zero.
type CodeSpecial int

//go:generate go tool stringer -linecomment -type=CodeSpecial
const (
	SPECIAL_JSR = CodeSpecial(0x01) // JSR
	SPECIAL_INT = CodeSpecial(0x08) // INT
	SPECIAL_IAG = CodeSpecial(0x09) // IAG
	SPECIAL_IAS = CodeSpecial(0x0a) // IAS
	SPECIAL_RFI = CodeSpecial(0x0b) // RFI
	SPECIAL_IAQ = CodeSpecial(0x0c) // IAQ
	SPECIAL_HWN = CodeSpecial(0x10) // HWN
	SPECIAL_HWQ = CodeSpecial(0x11) // HWQ
	SPECIAL_HWI = CodeSpecial(0x12) // HWI
)

// Valid returns true if the special opcode is assigned.
func (sp CodeSpecial) Valid() bool {
	switch sp {
	case SPECIAL_JSR, SPECIAL_INT, SPECIAL_IAG, SPECIAL_IAS, SPECIAL_RFI,
		SPECIAL_IAQ, SPECIAL_HWN, SPECIAL_HWQ, SPECIAL_HWI:
		return true
	}
	return false
}

// Writes returns true if the special opcode stores into operand a.
func (sp CodeSpecial) Writes() bool {
	return sp == SPECIAL_IAG || sp == SPECIAL_HWN
}

// ValueType is the addressing class of an operand selector.
type ValueType int

//go:generate go tool stringer -linecomment -type=ValueType
const (
	VALUE_REG              = ValueType(0)  // reg
	VALUE_REG_POINTER      = ValueType(1)  // [reg]
	VALUE_REG_NEXT_POINTER = ValueType(2)  // [reg+next]
	VALUE_PUSH_POP         = ValueType(3)  // push/pop
	VALUE_PEEK             = ValueType(4)  // peek
	VALUE_PICK             = ValueType(5)  // pick
	VALUE_SP               = ValueType(6)  // sp
	VALUE_PC               = ValueType(7)  // pc
	VALUE_EX               = ValueType(8)  // ex
	VALUE_NEXT_POINTER     = ValueType(9)  // [next]
	VALUE_NEXT_LITERAL     = ValueType(10) // next
	VALUE_INLINE_LITERAL   = ValueType(11) // literal
)

// CodeValue is a raw operand selector: 6 bits for a, 5 bits for b.
type CodeValue uint8

// Operand selector boundaries.
const (
	VALUE_SEL_REG              = CodeValue(0x00)
	VALUE_SEL_REG_POINTER      = CodeValue(0x08)
	VALUE_SEL_REG_NEXT_POINTER = CodeValue(0x10)
	VALUE_SEL_PUSH_POP         = CodeValue(0x18)
	VALUE_SEL_PEEK             = CodeValue(0x19)
	VALUE_SEL_PICK             = CodeValue(0x1a)
	VALUE_SEL_SP               = CodeValue(0x1b)
	VALUE_SEL_PC               = CodeValue(0x1c)
	VALUE_SEL_EX               = CodeValue(0x1d)
	VALUE_SEL_NEXT_POINTER     = CodeValue(0x1e)
	VALUE_SEL_NEXT_LITERAL     = CodeValue(0x1f)
	VALUE_SEL_INLINE_LITERAL   = CodeValue(0x20)
)

// Type classifies the selector. The domain is total over 0x00..0x3f;
// higher bits are ignored.
func (cv CodeValue) Type() ValueType {
	cv &= 0x3f
	switch {
	case cv < VALUE_SEL_REG_POINTER:
		return VALUE_REG
	case cv < VALUE_SEL_REG_NEXT_POINTER:
		return VALUE_REG_POINTER
	case cv < VALUE_SEL_PUSH_POP:
		return VALUE_REG_NEXT_POINTER
	case cv == VALUE_SEL_PUSH_POP:
		return VALUE_PUSH_POP
	case cv == VALUE_SEL_PEEK:
		return VALUE_PEEK
	case cv == VALUE_SEL_PICK:
		return VALUE_PICK
	case cv == VALUE_SEL_SP:
		return VALUE_SP
	case cv == VALUE_SEL_PC:
		return VALUE_PC
	case cv == VALUE_SEL_EX:
		return VALUE_EX
	case cv == VALUE_SEL_NEXT_POINTER:
		return VALUE_NEXT_POINTER
	case cv == VALUE_SEL_NEXT_LITERAL:
		return VALUE_NEXT_LITERAL
	default:
		return VALUE_INLINE_LITERAL
	}
}

// Register returns the general register index for the register classes.
func (cv CodeValue) Register() int {
	return int(cv & 0x7)
}

// Literal returns the inline literal value, 0xffff (-1) through 30.
func (cv CodeValue) Literal() uint16 {
	return uint16(cv&0x3f) - uint16(VALUE_SEL_INLINE_LITERAL) - 1
}

// Words returns the number of following instruction words the selector consumes.
func (cv CodeValue) Words() int {
	switch cv.Type() {
	case VALUE_REG_NEXT_POINTER, VALUE_PICK, VALUE_NEXT_POINTER, VALUE_NEXT_LITERAL:
		return 1
	}
	return 0
}

// Writable returns true if a store through the selector has a destination.
func (cv CodeValue) Writable() bool {
	switch cv.Type() {
	case VALUE_NEXT_LITERAL, VALUE_INLINE_LITERAL:
		return false
	}
	return true
}

// MakeLiteral returns the selector for a small inline literal, if one exists.
func MakeLiteral(value uint16) (cv CodeValue, ok bool) {
	if value != 0xffff && value > 30 {
		return
	}
	return CodeValue(value+1) + VALUE_SEL_INLINE_LITERAL, true
}

// Code is a single instruction word with the words that followed it.
type Code struct {
	Word       uint16
	Immediates []uint16
}

// MakeCode creates a basic instruction.
func MakeCode(op CodeOp, b, a CodeValue, imms ...uint16) Code {
	return Code{
		Word:       (uint16(a&0x3f) << 10) | (uint16(b&0x1f) << 5) | uint16(op&0x1f),
		Immediates: imms,
	}
}

// MakeCodeSpecial creates a special instruction.
func MakeCodeSpecial(op CodeSpecial, a CodeValue, imms ...uint16) Code {
	return Code{
		Word:       (uint16(a&0x3f) << 10) | (uint16(op&0x1f) << 5),
		Immediates: imms,
	}
}

// Op returns the basic opcode field.
func (code Code) Op() CodeOp {
	return CodeOp(code.Word & 0x1f)
}

// B returns the raw b selector; for special instructions this holds the special opcode.
func (code Code) B() CodeValue {
	return CodeValue((code.Word >> 5) & 0x1f)
}

// A returns the raw a selector.
func (code Code) A() CodeValue {
	return CodeValue(code.Word >> 10)
}

// Special returns the special opcode field.
func (code Code) Special() CodeSpecial {
	return CodeSpecial(code.B())
}

// Decode splits the word into opcode and operands, failing on unassigned codes.
func (code Code) Decode() (op CodeOp, b, a CodeValue, err error) {
	op = code.Op()
	b = code.B()
	a = code.A()

	if !op.Valid() {
		err = ErrInvalidOpcode
		return
	}

	if op == OP_SPECIAL && !code.Special().Valid() {
		err = ErrInvalidOpcode
		return
	}

	return
}

// Decode decodes a single memory word.
func Decode(word uint16) (op CodeOp, b, a CodeValue, err error) {
	return Code{Word: word}.Decode()
}

// ImmediateNeed returns the number of following words required by this instruction.
// Both operands are counted; special instructions only have an a operand.
func (code Code) ImmediateNeed() int {
	need := code.A().Words()
	if code.Op() != OP_SPECIAL {
		need += code.B().Words()
	}
	return need
}

// Length returns the instruction length in words.
func (code Code) Length() uint16 {
	return 1 + uint16(code.ImmediateNeed())
}

// Conditional returns true if the instruction is an IFx.
func (code Code) Conditional() bool {
	return code.Op().Conditional()
}

// Validate reports instructions that cannot execute: unassigned opcodes,
// and stores into operands without a destination.
func (code Code) Validate() (err error) {
	op, b, a, err := code.Decode()
	if err != nil {
		return
	}

	if op == OP_SPECIAL {
		if code.Special().Writes() && !a.Writable() {
			err = ErrInvalidWriteTarget
		}
		return
	}

	if op.Writes() && !b.Writable() {
		err = ErrInvalidWriteTarget
	}

	return
}

// String returns a debug representation of the instruction.
func (code Code) String() (out string) {
	op := code.Op()
	a := code.A()

	var str string
	if op == OP_SPECIAL {
		str = fmt.Sprintf("%v.%v", code.Special().String(), a.Type().String())
	} else {
		str = fmt.Sprintf("%v.%v.%v", op.String(), code.B().Type().String(), a.Type().String())
	}

	out = fmt.Sprintf("%04x %v imm:%#v", code.Word, str, code.Immediates)

	return
}

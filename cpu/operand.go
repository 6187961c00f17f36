package cpu

// Value is a resolved operand: where it reads from, and where a store goes.
type Value struct {
	Type     ValueType
	Register int    // General register, for VALUE_REG.
	Address  uint16 // Memory address, for the memory backed classes.
	Literal  uint16 // Constant, for the literal classes.
}

// getValue resolves the selector against the current CPU state.
// Selectors that need a following word take it from imms, returning the rest.
// PUSH/POP pops when resolving operand a, and pushes when resolving b.
func (cpu *Cpu) getValue(src CodeValue, is_a bool, imms_in []uint16) (value Value, imms []uint16, err error) {
	imms = imms_in

	value.Type = src.Type()

	var next uint16
	if src.Words() > 0 {
		if len(imms) < 1 {
			err = ErrOpcodeImm
			return
		}
		next = imms[0]
		imms = imms[1:]
	}

	switch value.Type {
	case VALUE_REG:
		value.Register = src.Register()
	case VALUE_REG_POINTER:
		value.Address = cpu.Register[src.Register()]
	case VALUE_REG_NEXT_POINTER:
		value.Address = cpu.Register[src.Register()] + next
	case VALUE_PUSH_POP:
		if is_a {
			value.Address = cpu.Sp
			cpu.Sp++
		} else {
			cpu.Sp--
			value.Address = cpu.Sp
		}
	case VALUE_PEEK:
		value.Address = cpu.Sp
	case VALUE_PICK:
		value.Address = cpu.Sp + next
	case VALUE_SP, VALUE_PC, VALUE_EX:
		// Registers are read at use.
	case VALUE_NEXT_POINTER:
		value.Address = next
	case VALUE_NEXT_LITERAL:
		value.Literal = next
	case VALUE_INLINE_LITERAL:
		value.Literal = src.Literal()
	}

	return
}

// read returns the current contents of the resolved operand.
func (cpu *Cpu) read(value Value) (data uint16) {
	switch value.Type {
	case VALUE_REG:
		data = cpu.Register[value.Register]
	case VALUE_REG_POINTER, VALUE_REG_NEXT_POINTER, VALUE_PUSH_POP,
		VALUE_PEEK, VALUE_PICK, VALUE_NEXT_POINTER:
		data = cpu.Memory[value.Address]
	case VALUE_SP:
		data = cpu.Sp
	case VALUE_PC:
		data = cpu.Pc
	case VALUE_EX:
		data = cpu.Ex
	case VALUE_NEXT_LITERAL, VALUE_INLINE_LITERAL:
		data = value.Literal
	}

	return
}

// write stores data through the resolved operand.
func (cpu *Cpu) write(value Value, data uint16) (err error) {
	switch value.Type {
	case VALUE_REG:
		cpu.Register[value.Register] = data
	case VALUE_REG_POINTER, VALUE_REG_NEXT_POINTER, VALUE_PUSH_POP,
		VALUE_PEEK, VALUE_PICK, VALUE_NEXT_POINTER:
		cpu.Memory[value.Address] = data
	case VALUE_SP:
		cpu.Sp = data
	case VALUE_PC:
		cpu.Pc = data
	case VALUE_EX:
		cpu.Ex = data
	default:
		err = ErrInvalidWriteTarget
	}

	return
}

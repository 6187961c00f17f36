package cpu

// doAlu performs the basic opcode on b and a, and returns the value to
// store into b and the new EX. Opcodes that leave EX alone return ex.
func doAlu(op CodeOp, b, a, ex uint16) (output, ex_out uint16) {
	ex_out = ex

	switch op {
	case OP_SET, OP_STI, OP_STD:
		output = a
	case OP_ADD:
		sum := uint32(b) + uint32(a)
		output = uint16(sum)
		ex_out = 0
		if sum > 0xffff {
			ex_out = 1
		}
	case OP_SUB:
		diff := int32(b) - int32(a)
		output = uint16(diff)
		ex_out = 0
		if diff < 0 {
			ex_out = 0xffff
		}
	case OP_MUL:
		prod := uint32(b) * uint32(a)
		output = uint16(prod)
		ex_out = uint16(prod >> 16)
	case OP_MLI:
		prod := int32(int16(b)) * int32(int16(a))
		output = uint16(prod)
		ex_out = uint16(prod >> 16)
	case OP_DIV:
		if a == 0 {
			output = 0
			ex_out = 0
			break
		}
		output = b / a
		ex_out = uint16((uint32(b) << 16) / uint32(a))
	case OP_DVI:
		if a == 0 {
			output = 0
			ex_out = 0
			break
		}
		// Go division truncates toward zero. int64 keeps -32768<<16 / -1 in range.
		sb := int64(int16(b))
		sa := int64(int16(a))
		output = uint16(sb / sa)
		ex_out = uint16((sb << 16) / sa)
	case OP_MOD:
		if a == 0 {
			output = 0
			break
		}
		output = b % a
	case OP_MDI:
		if a == 0 {
			output = 0
			break
		}
		// Sign follows the dividend.
		output = uint16(int32(int16(b)) % int32(int16(a)))
	case OP_AND:
		output = b & a
	case OP_BOR:
		output = b | a
	case OP_XOR:
		output = b ^ a
	case OP_SHR:
		output = b >> a
		ex_out = uint16((uint32(b) << 16) >> a)
	case OP_ASR:
		output = uint16(int16(b) >> a)
		// EX takes the raw bits, shifted logically.
		ex_out = uint16((uint32(b) << 16) >> a)
	case OP_SHL:
		output = b << a
		ex_out = uint16((uint32(b) << a) >> 16)
	case OP_ADX:
		sum := uint32(b) + uint32(a) + uint32(ex)
		output = uint16(sum)
		ex_out = 0
		if sum > 0xffff {
			ex_out = 1
		}
	case OP_SBX:
		diff := int32(b) - int32(a) + int32(ex)
		output = uint16(diff)
		switch {
		case diff < 0:
			ex_out = 0xffff
		case diff > 0xffff:
			ex_out = 1
		default:
			ex_out = 0
		}
	}

	return
}

// doCond evaluates an IFx opcode; false means the next instruction is skipped.
func doCond(op CodeOp, b, a uint16) (cond bool) {
	switch op {
	case OP_IFB:
		cond = (b & a) != 0
	case OP_IFC:
		cond = (b & a) == 0
	case OP_IFE:
		cond = b == a
	case OP_IFN:
		cond = b != a
	case OP_IFG:
		cond = b > a
	case OP_IFA:
		cond = int16(b) > int16(a)
	case OP_IFL:
		cond = b < a
	case OP_IFU:
		cond = int16(b) < int16(a)
	}

	return
}

package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// codeWords flattens codes into a memory image.
func codeWords(codes ...Code) (words []uint16) {
	for _, code := range codes {
		words = append(words, code.Word)
		words = append(words, code.Immediates...)
	}
	return
}

func literal(value uint16) CodeValue {
	cv, ok := MakeLiteral(value)
	if !ok {
		panic("not an inline literal")
	}
	return cv
}

func runSteps(t *testing.T, cpu *Cpu, steps int) {
	for range steps {
		err := cpu.Step()
		if err != nil {
			t.Fatalf("pc 0x%04x: %v", cpu.Pc, err)
		}
	}
}

func TestCpu_Programs(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []uint16
		steps   int
		pc      uint16
		a       uint16
	}){
		{"set_reg_from_next_word", []uint16{0x7c01, 0x30}, 1, 2, 0x30},
		{"add_from_next_word", []uint16{0x7c01, 0x30, 0x7c02, 0x20}, 2, 4, 0x50},
		{"sub_next_word", []uint16{0x7c01, 0x30, 0x7c03, 0x20}, 2, 4, 0x10},
		{"mod_by_zero", []uint16{0x7c01, 0x31, 0x7c08, 0}, 2, 4, 0},
	}

	for _, entry := range table {
		cpu := NewCpu()
		err := cpu.SetProgram(entry.program)
		assert.NoError(err, entry.name)

		runSteps(t, cpu, entry.steps)

		assert.Equal(entry.pc, cpu.Pc, entry.name)
		assert.Equal(entry.a, cpu.Register[REG_A], entry.name)
		assert.Equal(entry.steps, cpu.Ticks, entry.name)
	}
}

func TestCpu_SetRegister(t *testing.T) {
	assert := assert.New(t)

	values := []uint16{0, 1, 0x1e, 0x1f, 0x1234, 0x8000, 0xffff}

	for reg := range CodeValue(REG_COUNT) {
		for _, value := range values {
			cpu := NewCpu()
			cpu.SetProgram(codeWords(MakeCode(OP_SET, reg, VALUE_SEL_NEXT_LITERAL, value)))
			runSteps(t, cpu, 1)
			assert.Equal(value, cpu.Register[reg])
			assert.Equal(uint16(2), cpu.Pc)

			inline, ok := MakeLiteral(value)
			if !ok {
				continue
			}
			cpu.SetProgram(codeWords(MakeCode(OP_SET, reg, inline)))
			runSteps(t, cpu, 1)
			assert.Equal(value, cpu.Register[reg])
			assert.Equal(uint16(1), cpu.Pc)
		}
	}
}

func TestCpu_SkipChain(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.SetProgram(codeWords(
		MakeCode(OP_SET, REG_A, literal(1)),
		MakeCode(OP_IFE, REG_A, literal(2)),
		MakeCode(OP_SET, REG_B, VALUE_SEL_NEXT_LITERAL, 9),
		MakeCode(OP_SET, REG_C, literal(5)),
	))

	runSteps(t, cpu, 2)
	assert.Equal(uint16(4), cpu.Pc)

	runSteps(t, cpu, 1)
	assert.Equal(uint16(0), cpu.Register[REG_B])
	assert.Equal(uint16(5), cpu.Register[REG_C])
	assert.Equal(uint16(5), cpu.Pc)
}

func TestCpu_SkipChained(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	// The false IFE skips the IFN, and so also the SET after it.
	cpu.SetProgram(codeWords(
		MakeCode(OP_IFE, REG_A, literal(1)),
		MakeCode(OP_IFN, REG_A, VALUE_SEL_NEXT_LITERAL, 0x40),
		MakeCode(OP_SET, VALUE_SEL_PUSH_POP, VALUE_SEL_PUSH_POP),
		MakeCode(OP_SET, REG_C, literal(1)),
	))

	runSteps(t, cpu, 1)
	assert.Equal(uint16(4), cpu.Pc)
	assert.Equal(uint16(0), cpu.Sp)

	runSteps(t, cpu, 1)
	assert.Equal(uint16(1), cpu.Register[REG_C])
}

func TestCpu_SkipTrue(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.SetProgram(codeWords(
		MakeCode(OP_IFE, REG_A, literal(0)),
		MakeCode(OP_SET, REG_B, literal(9)),
	))

	runSteps(t, cpu, 1)
	assert.Equal(uint16(1), cpu.Pc)

	runSteps(t, cpu, 1)
	assert.Equal(uint16(9), cpu.Register[REG_B])
}

func TestCpu_Stack(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.SetProgram(codeWords(
		MakeCode(OP_SET, VALUE_SEL_PUSH_POP, literal(0x10)),
		MakeCode(OP_SET, VALUE_SEL_PUSH_POP, VALUE_SEL_NEXT_LITERAL, 0x20),
		MakeCode(OP_SET, REG_A, VALUE_SEL_PUSH_POP),
		MakeCode(OP_SET, REG_B, VALUE_SEL_PEEK),
		MakeCode(OP_SET, REG_C, VALUE_SEL_PICK, 0),
		MakeCode(OP_SET, REG_X, VALUE_SEL_SP),
	))

	runSteps(t, cpu, 2)
	assert.Equal(uint16(0xfffe), cpu.Sp)
	assert.Equal(uint16(0x10), cpu.Memory[0xffff])
	assert.Equal(uint16(0x20), cpu.Memory[0xfffe])

	runSteps(t, cpu, 4)
	assert.Equal(uint16(0x20), cpu.Register[REG_A])
	assert.Equal(uint16(0x10), cpu.Register[REG_B])
	assert.Equal(uint16(0x10), cpu.Register[REG_C])
	assert.Equal(uint16(0xffff), cpu.Register[REG_X])
	assert.Equal(uint16(0xffff), cpu.Sp)
}

func TestCpu_AddPush(t *testing.T) {
	assert := assert.New(t)

	// PUSH as b pushes first, then reads the new top.
	cpu := NewCpu()
	cpu.SetProgram(codeWords(
		MakeCode(OP_ADD, VALUE_SEL_PUSH_POP, literal(3)),
	))
	cpu.Memory[0xffff] = 4

	runSteps(t, cpu, 1)
	assert.Equal(uint16(0xffff), cpu.Sp)
	assert.Equal(uint16(7), cpu.Memory[0xffff])
}

func TestCpu_Pointers(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.SetProgram(codeWords(
		MakeCode(OP_SET, REG_A, VALUE_SEL_NEXT_LITERAL, 0x1000),
		MakeCode(OP_SET, VALUE_SEL_REG_POINTER|REG_A, literal(7)),
		MakeCode(OP_SET, VALUE_SEL_REG_NEXT_POINTER|REG_A, VALUE_SEL_NEXT_LITERAL, 0x1234, 2),
		MakeCode(OP_SET, VALUE_SEL_NEXT_POINTER, VALUE_SEL_REG_NEXT_POINTER|REG_A, 2, 0x2000),
		MakeCode(OP_ADD, REG_B, VALUE_SEL_NEXT_POINTER, 0x1000),
	))

	runSteps(t, cpu, 5)
	assert.Equal(uint16(7), cpu.Memory[0x1000])
	assert.Equal(uint16(0x1234), cpu.Memory[0x1002])
	assert.Equal(uint16(0x1234), cpu.Memory[0x2000])
	assert.Equal(uint16(7), cpu.Register[REG_B])
	assert.Equal(uint16(11), cpu.Pc)
}

func TestCpu_ProgramCounter(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.SetProgram(codeWords(
		MakeCode(OP_SET, REG_A, VALUE_SEL_PC),                        // 0
		MakeCode(OP_SET, VALUE_SEL_PC, VALUE_SEL_NEXT_LITERAL, 0x10), // 1
	))

	runSteps(t, cpu, 1)
	assert.Equal(uint16(1), cpu.Register[REG_A])

	runSteps(t, cpu, 1)
	assert.Equal(uint16(0x10), cpu.Pc)
}

func TestCpu_Jsr(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.SetProgram(codeWords(
		MakeCodeSpecial(SPECIAL_JSR, VALUE_SEL_NEXT_LITERAL, 4), // 0
		MakeCode(OP_SET, REG_C, literal(1)),                     // 2
		Code{Word: 0},                                           // 3
		MakeCode(OP_SET, REG_B, VALUE_SEL_PEEK),                 // 4
		MakeCode(OP_SET, VALUE_SEL_PC, VALUE_SEL_PUSH_POP),      // 5
	))

	runSteps(t, cpu, 1)
	assert.Equal(uint16(4), cpu.Pc)
	assert.Equal(uint16(0xffff), cpu.Sp)

	runSteps(t, cpu, 3)
	assert.Equal(uint16(2), cpu.Register[REG_B])
	assert.Equal(uint16(1), cpu.Register[REG_C])
	assert.Equal(uint16(3), cpu.Pc)
	assert.Equal(uint16(0), cpu.Sp)
}

func TestCpu_StiStd(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.SetProgram(codeWords(
		MakeCode(OP_STI, VALUE_SEL_REG_POINTER|REG_I, VALUE_SEL_REG_POINTER|REG_J),
		MakeCode(OP_STD, REG_A, literal(5)),
	))
	cpu.Register[REG_I] = 0x100
	cpu.Register[REG_J] = 0x200
	cpu.Memory[0x200] = 0xbeef

	runSteps(t, cpu, 1)
	assert.Equal(uint16(0xbeef), cpu.Memory[0x100])
	assert.Equal(uint16(0x101), cpu.Register[REG_I])
	assert.Equal(uint16(0x201), cpu.Register[REG_J])

	runSteps(t, cpu, 1)
	assert.Equal(uint16(5), cpu.Register[REG_A])
	assert.Equal(uint16(0x100), cpu.Register[REG_I])
	assert.Equal(uint16(0x200), cpu.Register[REG_J])
}

func TestCpu_Ex(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.SetProgram(codeWords(
		MakeCode(OP_SET, REG_A, literal(0xffff)),
		MakeCode(OP_ADD, REG_A, literal(1)),
		MakeCode(OP_SET, REG_B, VALUE_SEL_EX),
		MakeCode(OP_SUB, REG_C, literal(1)),
		MakeCode(OP_ADX, REG_X, literal(0)),
	))

	runSteps(t, cpu, 3)
	assert.Equal(uint16(0), cpu.Register[REG_A])
	assert.Equal(uint16(1), cpu.Register[REG_B])

	runSteps(t, cpu, 1)
	assert.Equal(uint16(0xffff), cpu.Register[REG_C])
	assert.Equal(uint16(0xffff), cpu.Ex)

	runSteps(t, cpu, 1)
	assert.Equal(uint16(0xffff), cpu.Register[REG_X])
	assert.Equal(uint16(0), cpu.Ex)
}

func TestCpu_InvalidOpcode(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.SetProgram([]uint16{0x0018})
	cpu.Register[REG_A] = 0x55

	err := cpu.Step()
	assert.ErrorIs(err, ErrInvalidOpcode)

	var ei *ErrInstruction
	assert.True(errors.As(err, &ei))
	assert.Equal(uint16(0), ei.Pc)
	assert.Equal(uint16(0x0018), ei.Code.Word)

	assert.Equal(uint16(0), cpu.Pc)
	assert.Equal(uint16(0x55), cpu.Register[REG_A])
	assert.Equal(0, cpu.Ticks)

	err = cpu.Step()
	assert.ErrorIs(err, ErrHalted)
	assert.ErrorIs(err, ErrInvalidOpcode)
	assert.ErrorIs(cpu.Fault(), ErrInvalidOpcode)

	cpu.Reset()
	assert.NoError(cpu.Fault())
	assert.Equal(uint16(0x0000), cpu.Register[REG_A])
}

func TestCpu_ZeroMemory(t *testing.T) {
	assert := assert.New(t)

	// Special opcode zero is reserved.
	cpu := NewCpu()
	err := cpu.Step()
	assert.ErrorIs(err, ErrInvalidOpcode)
}

func TestCpu_InvalidWriteTarget(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.SetProgram(codeWords(
		MakeCode(OP_SET, VALUE_SEL_NEXT_LITERAL, VALUE_SEL_PUSH_POP, 0x1234),
	))

	err := cpu.Step()
	assert.ErrorIs(err, ErrInvalidWriteTarget)
	assert.NotErrorIs(err, ErrInvalidOpcode)

	// Nothing was resolved.
	assert.Equal(uint16(0), cpu.Sp)
	assert.Equal(uint16(0), cpu.Pc)

	cpu.SetProgram(codeWords(
		MakeCodeSpecial(SPECIAL_IAG, literal(3)),
	))
	err = cpu.Step()
	assert.ErrorIs(err, ErrInvalidWriteTarget)
}

func TestCpu_ConditionalLiteral(t *testing.T) {
	assert := assert.New(t)

	// Conditionals never store, so a literal b is allowed.
	cpu := NewCpu()
	cpu.SetProgram(codeWords(
		MakeCode(OP_IFE, VALUE_SEL_NEXT_LITERAL, literal(3), 3),
		MakeCode(OP_SET, REG_A, literal(1)),
	))

	runSteps(t, cpu, 2)
	assert.Equal(uint16(1), cpu.Register[REG_A])
}

func TestCpu_SetProgram(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Memory[0x100] = 0x1234
	cpu.Pc = 0x55
	cpu.Register[REG_J] = 1

	err := cpu.SetProgram([]uint16{1, 2, 3})
	assert.NoError(err)
	assert.Equal([]uint16{1, 2, 3, 0}, cpu.Memory.Read(0, 4))
	assert.Equal(uint16(0), cpu.Memory[0x100])
	assert.Equal(uint16(0), cpu.Pc)
	assert.Equal(uint16(0), cpu.Register[REG_J])

	err = cpu.SetProgram(make([]uint16, MEMORY_SIZE+1))
	assert.ErrorIs(err, ErrProgramSize)

	err = cpu.SetProgram(make([]uint16, MEMORY_SIZE))
	assert.NoError(err)
}

func TestCpu_Registers(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	for n := range cpu.Register {
		cpu.Register[n] = uint16(n + 1)
	}
	cpu.Pc = 0x10
	cpu.Sp = 0x20
	cpu.Ex = 0x30
	cpu.Ia = 0x40

	regs := map[string]uint16{}
	var names []string
	for name, value := range cpu.Registers() {
		regs[name] = value
		names = append(names, name)
	}

	assert.Equal([]string{"A", "B", "C", "X", "Y", "Z", "I", "J", "PC", "SP", "EX", "IA"}, names)
	assert.Equal(uint16(1), regs["A"])
	assert.Equal(uint16(8), regs["J"])
	assert.Equal(uint16(0x10), regs["PC"])
	assert.Equal(uint16(0x40), regs["IA"])
}

func TestCpu_Independent(t *testing.T) {
	assert := assert.New(t)

	one := NewCpu()
	two := NewCpu()
	program := []uint16{0x7c01, 0x30}

	one.SetProgram(program)
	two.SetProgram(program)
	program[1] = 0x99

	runSteps(t, one, 1)
	assert.Equal(uint16(0x30), one.Register[REG_A])
	assert.Equal(uint16(0), two.Register[REG_A])
	assert.Equal(uint16(0), two.Pc)
}

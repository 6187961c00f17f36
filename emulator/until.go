package emulator

import (
	"errors"
	"iter"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/dcpu16/cpu"
)

// Until is a compiled stop condition, a Starlark expression evaluated
// against the machine state after each step.
//
// The expression sees the registers (A, B, C, X, Y, Z, I, J, PC, SP, EX, IA),
// TICKS, every integer define, and mem(addr) to read a memory word.
type Until struct {
	Expr string // Source expression.

	program *starlark.Program
	defines starlark.StringDict
}

// NewUntil compiles expr. Defines that are not integers are ignored.
func NewUntil(expr string, defines iter.Seq2[string, string]) (until *Until, err error) {
	until = &Until{
		Expr:    expr,
		defines: starlark.StringDict{},
	}

	for key, str := range defines {
		value, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			continue
		}
		until.defines[key] = starlark.MakeInt64(value)
	}

	names := map[string]bool{"TICKS": true, "mem": true}
	for key := range until.defines {
		names[key] = true
	}
	for name := range cpu.NewCpu().Registers() {
		names[name] = true
	}

	opts := syntax.FileOptions{}
	src := "rc=" + expr + "\n"
	_, until.program, err = starlark.SourceProgramOptions(&opts, "until", src, func(name string) bool {
		return names[name]
	})
	if err != nil {
		err = errors.Join(ErrUntilExpression, err)
		until = nil
		return
	}

	return
}

// Eval returns the truth of the expression for the current state of dcpu.
func (until *Until) Eval(dcpu *cpu.Cpu) (done bool, err error) {
	pred := starlark.StringDict{}
	for key, value := range until.defines {
		pred[key] = value
	}
	for name, value := range dcpu.Registers() {
		pred[name] = starlark.MakeInt(int(value))
	}
	pred["TICKS"] = starlark.MakeInt(dcpu.Ticks)
	pred["mem"] = starlark.NewBuiltin("mem", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var addr int
		err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &addr)
		if err != nil {
			return nil, err
		}
		return starlark.MakeInt(int(dcpu.Memory[uint16(addr)])), nil
	})

	thread := starlark.Thread{Name: "until"}
	dict, err := until.program.Init(&thread, pred)
	if err != nil {
		err = errors.Join(ErrUntilExpression, err)
		return
	}

	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrUntilExpression
		return
	}

	done = bool(st_rc.Truth())
	return
}

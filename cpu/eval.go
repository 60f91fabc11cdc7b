package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/msp16/internal"
)

// predeclared returns the numeric names visible to $(...) expressions:
// labels, then equates.
func (asm *Assembler) predeclared() starlark.StringDict {
	pred := starlark.StringDict{}
	for name, value := range internal.IterSeq2Concat(maps.All(asm.Label), asm.equates()) {
		pred[name] = starlark.MakeInt(value)
	}
	return pred
}

// equates yields the equates that have a numeric value.
func (asm *Assembler) equates() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for key, str := range asm.Equate {
			value, err := asm.valueOf(str)
			if err != nil {
				continue
			}
			if !yield(key, value) {
				return
			}
		}
	}
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := &starlark.Thread{Name: "expr"}
	opts := &syntax.FileOptions{}

	dict, err := starlark.ExecFileOptions(opts, thread, "expr", "rc="+expr+"\n", asm.predeclared())
	if err != nil {
		if asm.Verbose {
			log.Printf("$(%v): %v", expr, err)
		}
		err = ErrParseExpression(expr)
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	value = int(st_int64)
	return
}

// expand replaces every $(...) in the line with its decimal value.
func (asm *Assembler) expand(line string) (out string, err error) {
	out = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		return fmt.Sprintf("%d", value)
	})

	return
}

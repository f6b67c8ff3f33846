package compile

import (
	"fmt"
	"strings"

	"github.com/pdk/sev/multi"
	"github.com/pdk/sev/parser"
)

// RunString parses, compiles, and evaluates a program in a fresh top
// scope.
func RunString(name, src string) (Value, error) {
	return RunStringIn(name, src, NewTopEnv())
}

// RunStringIn parses, compiles, and evaluates a program in the given
// scope. The REPL uses this to keep bindings between inputs.
func RunStringIn(name, src string, env *multi.Env) (Value, error) {

	p := parser.NewFromString(name, src)

	tree, err := p.Parse()
	if err != nil {
		return nil, err
	}

	program, err := Compile(tree)
	if err != nil {
		return nil, err
	}

	result, err := program(env)
	if err != nil {
		return nil, err
	}

	if fc, ok := result.(FlowChange); ok && fc.Type == Return {
		return fc.Value, nil
	}

	return result, nil
}

// Format renders a runtime value for display.
func Format(v Value) string {

	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return val
	case multi.Tuple:
		parts := make([]string, val.Len())
		for i, e := range val.Values {
			parts[i] = Format(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case []Value:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = Format(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Callable:
		return "<fn>"
	}

	return fmt.Sprint(v)
}

package compile

import (
	"fmt"
	"strconv"

	"github.com/pdk/sev/lex"
	"github.com/pdk/sev/multi"
	"github.com/pdk/sev/parser"
	"github.com/pdk/sev/split"
)

// Convert a parse tree to an executable function

// Value is any runtime value.
type Value = multi.Value

// Expr is a thing that can be evaluated.
type Expr func(*multi.Env, ...Value) (Value, error)

// Callable is the dynamic type of function values at run time. Kept an
// alias so type assertions on Values succeed.
type Callable = func(*multi.Env, ...Value) (Value, error)

// Noop is a no-operation Expr.
func Noop(env *multi.Env, args ...Value) (Value, error) {
	return nil, nil
}

// CompilerFunc is a function that converts a Node to an Expr.
type CompilerFunc func(node parser.Node) (Expr, error)

var (
	// compilerForType maps node Type to CompilerFunc.
	compilerForType [lex.TypeCount]CompilerFunc
)

type binaryOps struct {
	intOp    func(int64, int64) Value
	floatOp  func(float64, float64) Value
	stringOp func(string, string) Value
}

func init() {
	compilerForType = [lex.TypeCount]CompilerFunc{
		lex.LeftBrace:         compileBlock,
		lex.Ident:             compileIdent,
		lex.Nil:               fixedValue(nil),
		lex.True:              fixedValue(true),
		lex.False:             fixedValue(false),
		lex.Return:            compileReturn,
		lex.Function:          compileFunction,
		lex.FuncApply:         compileCall,
		lex.Assign:            compileAssign,
		lex.Number:            compileNumber,
		lex.BacktickString:    compileString,
		lex.DoubleQuoteString: compileString,
		lex.SingleQuoteString: compileString,
		lex.List:              compileList,
		lex.Let:               compileLet,
		lex.Par:               compilePar,
		lex.Not:               compileNot,
		lex.And:               compileAnd,
		lex.Or:                compileOr,
		lex.Minus:             compileMinus,
		lex.Plus: func(node parser.Node) (Expr, error) {
			return compileBinaryOp(node, binaryOps{
				intOp:    func(i, j int64) Value { return i + j },
				floatOp:  func(i, j float64) Value { return i + j },
				stringOp: func(i, j string) Value { return i + j },
			})
		},
		lex.Mult: func(node parser.Node) (Expr, error) {
			return compileBinaryOp(node, binaryOps{
				intOp:   func(i, j int64) Value { return i * j },
				floatOp: func(i, j float64) Value { return i * j },
			})
		},
		lex.Div: func(node parser.Node) (Expr, error) {
			return compileBinaryOp(node, binaryOps{
				intOp:   func(i, j int64) Value { return i / j },
				floatOp: func(i, j float64) Value { return i / j },
			})
		},
		lex.Modulo: func(node parser.Node) (Expr, error) {
			return compileBinaryOp(node, binaryOps{
				intOp: func(i, j int64) Value { return i % j },
			})
		},
		lex.Equal: func(node parser.Node) (Expr, error) {
			return compileBinaryOp(node, binaryOps{
				intOp:    func(i, j int64) Value { return i == j },
				floatOp:  func(i, j float64) Value { return i == j },
				stringOp: func(i, j string) Value { return i == j },
			})
		},
		lex.NotEqual: func(node parser.Node) (Expr, error) {
			return compileBinaryOp(node, binaryOps{
				intOp:    func(i, j int64) Value { return i != j },
				floatOp:  func(i, j float64) Value { return i != j },
				stringOp: func(i, j string) Value { return i != j },
			})
		},
		lex.Greater: func(node parser.Node) (Expr, error) {
			return compileBinaryOp(node, binaryOps{
				intOp:    func(i, j int64) Value { return i > j },
				floatOp:  func(i, j float64) Value { return i > j },
				stringOp: func(i, j string) Value { return i > j },
			})
		},
		lex.GreaterOrEqual: func(node parser.Node) (Expr, error) {
			return compileBinaryOp(node, binaryOps{
				intOp:    func(i, j int64) Value { return i >= j },
				floatOp:  func(i, j float64) Value { return i >= j },
				stringOp: func(i, j string) Value { return i >= j },
			})
		},
		lex.Less: func(node parser.Node) (Expr, error) {
			return compileBinaryOp(node, binaryOps{
				intOp:    func(i, j int64) Value { return i < j },
				floatOp:  func(i, j float64) Value { return i < j },
				stringOp: func(i, j string) Value { return i < j },
			})
		},
		lex.LessOrEqual: func(node parser.Node) (Expr, error) {
			return compileBinaryOp(node, binaryOps{
				intOp:    func(i, j int64) Value { return i <= j },
				floatOp:  func(i, j float64) Value { return i <= j },
				stringOp: func(i, j string) Value { return i <= j },
			})
		},
	}
}

// Compile converts a parsed Node into an Expr.
func Compile(node parser.Node) (Expr, error) {

	c := compilerForType[node.Item.Type]
	if c == nil {
		return nil, node.Error(fmt.Errorf("cannot compile %s", node))
	}

	return c(node)
}

// one reduces a possibly multi-valued result to its single-value view.
func one(v Value) Value {
	if t, ok := v.(multi.Tuple); ok {
		return t.First()
	}
	return v
}

// tupleExpr adapts an Expr to the core's multi-valued contract. A
// plain result becomes a one-element tuple.
func tupleExpr(e Expr) multi.Expr {
	return func(env *multi.Env) (multi.Tuple, error) {
		v, err := e(env)
		if err != nil {
			return multi.Tuple{}, err
		}
		return multi.Lift(v), nil
	}
}

// collapse unwraps a one-element tuple back to its value.
func collapse(tup multi.Tuple) Value {
	if tup.Len() == 1 {
		return tup.First()
	}
	return tup
}

func compileReturn(node parser.Node) (Expr, error) {

	if len(node.Children) == 0 {
		return valFunc(NewReturn()), nil
	}

	expr, err := Compile(node.Children[0])
	if err != nil {
		return nil, err
	}

	return func(env *multi.Env, vals ...Value) (Value, error) {

		val, err := expr(env)
		if err != nil {
			return nil, err
		}

		return NewReturn(val), nil
	}, nil
}

func compileCall(node parser.Node) (Expr, error) {

	fn, err := Compile(node.Children[0])
	if err != nil {
		return nil, err
	}

	args := []Expr{}
	for _, e := range node.Children[1:] {
		next, err := Compile(e)
		if err != nil {
			return nil, err
		}

		args = append(args, next)
	}

	return func(env *multi.Env, vals ...Value) (Value, error) {

		fnVal, err := fn(env)
		if err != nil {
			return nil, err
		}

		callable, ok := one(fnVal).(Callable)
		if !ok {
			return nil, node.Error(fmt.Errorf("cannot invoke non-function: %T %v", fnVal, fnVal))
		}

		argValues := []Value{}
		for _, a := range args {
			nextVal, err := a(env)
			if err != nil {
				return nil, err
			}

			argValues = append(argValues, nextVal)
		}

		return callable(env, argValues...)
	}, nil
}

func compileFunction(node parser.Node) (Expr, error) {

	if len(node.Children) != 2 {
		return nil, node.Error(fmt.Errorf("malformed function: requires param list & body"))
	}

	params, err := parameterNames(node.Children[0])
	if err != nil {
		return nil, err
	}

	body := node.Children[1]
	if !body.Item.Type.Match(lex.LeftBrace) {
		return nil, node.Error(fmt.Errorf("malformed function: requires block"))
	}

	block, err := Compile(body)
	if err != nil {
		return nil, err
	}

	return func(defEnv *multi.Env, vals ...Value) (Value, error) {
		// the closure evaluates in the scope it was defined in, not
		// the caller's
		var f Callable = func(_ *multi.Env, vals ...Value) (Value, error) {

			if len(vals) != len(params) {
				return nil, fmt.Errorf("failed to apply function: received %d arguments for %d parameters", len(vals), len(params))
			}

			funcEnv := multi.NewEnv(defEnv)
			for i, p := range params {
				_, err := funcEnv.Set(p, vals[i])
				if err != nil {
					return nil, err
				}
			}

			result, err := block(funcEnv)
			if err != nil {
				return nil, err
			}

			if fc, ok := result.(FlowChange); ok && fc.Type == Return {
				return fc.Value, nil
			}

			return result, nil
		}
		return f, nil
	}, nil
}

func parameterNames(node parser.Node) ([]string, error) {

	if !node.Item.Type.Match(lex.LeftParen) {
		return nil, node.Error(fmt.Errorf("malformed function, parameter list required"))
	}

	names := []string{}
	for _, next := range node.Children {
		if !next.Item.Type.Match(lex.Ident) {
			return nil, node.Error(fmt.Errorf("malformed function, parameters must be identifiers, found %v", next))
		}

		names = append(names, next.Item.Value)
	}

	return names, nil
}

func compileAssign(node parser.Node) (Expr, error) {

	if len(node.Children) != 2 {
		return nil, node.Error(fmt.Errorf("assignment requires exactly 2 children"))
	}

	lhs := node.Children[0]
	if !lhs.Item.Type.Match(lex.Ident) {
		return nil, node.Error(fmt.Errorf("assignment requires an identifier"))
	}
	left := lhs.Item.Value

	right, err := Compile(node.Children[1])
	if err != nil {
		return nil, err
	}

	return func(env *multi.Env, vals ...Value) (Value, error) {

		val, err := right(env)
		if err != nil {
			return nil, err
		}

		return env.Set(left, val)

	}, nil
}

// compileBinder lowers a let/par node: every group's flat child list
// is split into names plus its single source by the splitter, which
// rejects malformed groups before anything can run.
func compileBinder(node parser.Node,
	bind func(*multi.Env, []multi.Group, multi.Expr) (multi.Tuple, error)) (Expr, error) {

	if len(node.Children) < 2 {
		return nil, node.Error(fmt.Errorf("binder requires at least one group and a body"))
	}

	groupNodes := node.Children[:len(node.Children)-1]
	bodyNode := node.Children[len(node.Children)-1]

	groups := make([]multi.Group, 0, len(groupNodes))
	for _, gn := range groupNodes {
		names, srcNode, err := split.Final(gn.Children, 1)
		if err != nil {
			return nil, gn.Error(err)
		}

		nameStrs := make([]string, len(names))
		for i, n := range names {
			if n.Item.Type != lex.Ident {
				return nil, n.Error(fmt.Errorf("binding name must be an identifier, found %q", n.Item.Value))
			}
			nameStrs[i] = n.Item.Value
		}

		src, err := Compile(srcNode)
		if err != nil {
			return nil, err
		}

		groups = append(groups, multi.Group{Names: nameStrs, Source: tupleExpr(src)})
	}

	body, err := Compile(bodyNode)
	if err != nil {
		return nil, err
	}

	return func(env *multi.Env, vals ...Value) (Value, error) {
		tup, err := bind(env, groups, tupleExpr(body))
		if err != nil {
			return nil, err
		}
		return collapse(tup), nil
	}, nil
}

func compileLet(node parser.Node) (Expr, error) {
	return compileBinder(node, multi.BindSeq)
}

func compilePar(node parser.Node) (Expr, error) {
	return compileBinder(node, multi.BindPar)
}

func compileList(node parser.Node) (Expr, error) {

	elems := []Expr{}
	for _, e := range node.Children {
		next, err := Compile(e)
		if err != nil {
			return nil, err
		}
		elems = append(elems, next)
	}

	return func(env *multi.Env, vals ...Value) (Value, error) {

		list := make([]Value, 0, len(elems))
		for _, e := range elems {
			v, err := e(env)
			if err != nil {
				return nil, err
			}
			list = append(list, one(v))
		}

		return list, nil
	}, nil
}

func compileAnd(node parser.Node) (Expr, error) {

	left, err := Compile(node.Children[0])
	if err != nil {
		return nil, err
	}
	right, err := Compile(node.Children[1])
	if err != nil {
		return nil, err
	}

	return func(env *multi.Env, vals ...Value) (Value, error) {
		lVal, err := left(env)
		if err != nil {
			return nil, err
		}

		if !isTruthy(lVal) {
			return lVal, nil
		}

		rVal, err := right(env)
		if err != nil {
			return nil, err
		}

		return rVal, nil
	}, nil
}

func compileOr(node parser.Node) (Expr, error) {
	left, err := Compile(node.Children[0])
	if err != nil {
		return nil, err
	}
	right, err := Compile(node.Children[1])
	if err != nil {
		return nil, err
	}

	return func(env *multi.Env, vals ...Value) (Value, error) {
		lVal, err := left(env)
		if err != nil {
			return nil, err
		}

		if isTruthy(lVal) {
			return lVal, nil
		}

		rVal, err := right(env)
		if err != nil {
			return nil, err
		}

		return rVal, nil
	}, nil
}

func compileNot(node parser.Node) (Expr, error) {

	operand, err := Compile(node.Children[0])
	if err != nil {
		return nil, err
	}

	return func(env *multi.Env, vals ...Value) (Value, error) {
		v, err := operand(env)
		if err != nil {
			return nil, err
		}

		return !isTruthy(v), nil
	}, nil
}

// compileMinus handles both negation and subtraction.
func compileMinus(node parser.Node) (Expr, error) {

	if len(node.Children) == 1 {
		operand, err := Compile(node.Children[0])
		if err != nil {
			return nil, err
		}

		return func(env *multi.Env, vals ...Value) (Value, error) {
			v, err := operand(env)
			if err != nil {
				return nil, err
			}

			switch n := one(v).(type) {
			case int64:
				return -n, nil
			case float64:
				return -n, nil
			}
			return nil, node.Error(fmt.Errorf("cannot negate %T", v))
		}, nil
	}

	return compileBinaryOp(node, binaryOps{
		intOp:   func(i, j int64) Value { return i - j },
		floatOp: func(i, j float64) Value { return i - j },
	})
}

// isTruthy returns the boolean value of a boolean input. For a tuple,
// return isTruthy of the first element. nil and Absent are false.
// Everything else is true.
func isTruthy(v Value) bool {

	if v == nil || multi.IsAbsent(v) {
		return false
	}

	if b, ok := v.(bool); ok {
		return b
	}

	if t, ok := v.(multi.Tuple); ok {
		return isTruthy(t.First())
	}

	return true
}

func compileBinaryOp(node parser.Node, ops binaryOps) (Expr, error) {

	left, err := Compile(node.Children[0])
	if err != nil {
		return nil, err
	}
	right, err := Compile(node.Children[1])
	if err != nil {
		return nil, err
	}

	return func(env *multi.Env, vals ...Value) (Value, error) {
		lVal, err := left(env)
		if err != nil {
			return nil, err
		}
		rVal, err := right(env)
		if err != nil {
			return nil, err
		}

		lVal, rVal = one(lVal), one(rVal)

		if ops.intOp != nil {
			if v1, v2, ok := gotInts(lVal, rVal); ok {
				return ops.intOp(v1, v2), nil
			}
		}

		if ops.floatOp != nil {
			if v1, v2, ok := gotFloats(lVal, rVal); ok {
				return ops.floatOp(v1, v2), nil
			}
		}

		if ops.stringOp != nil {
			if v1, v2, ok := gotStrings(lVal, rVal); ok {
				return ops.stringOp(v1, v2), nil
			}
		}

		return nil, node.Error(fmt.Errorf("cannot apply operator to argument types %T, %T", lVal, rVal))
	}, nil
}

func gotInts(i, j Value) (int64, int64, bool) {

	switch ii := i.(type) {
	case int64:
		switch jj := j.(type) {
		case int64:
			return ii, jj, true
		}
	}

	return 0, 0, false
}

func gotFloats(i, j Value) (float64, float64, bool) {

	var iv, jv float64

	switch ii := i.(type) {
	case int64:
		iv = float64(ii)
	case float64:
		iv = ii
	default:
		return 0.0, 0.0, false
	}

	switch jj := j.(type) {
	case int64:
		jv = float64(jj)
	case float64:
		jv = jj
	default:
		return 0.0, 0.0, false
	}

	return iv, jv, true
}

func gotStrings(i, j Value) (string, string, bool) {

	switch ii := i.(type) {
	case string:
		switch jj := j.(type) {
		case string:
			return ii, jj, true
		}
	}

	return "", "", false
}

func compileBlock(node parser.Node) (Expr, error) {

	stmts := []Expr{}

	for _, n := range node.Children {
		e, err := Compile(n)
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, e)
	}

	return func(env *multi.Env, vals ...Value) (Value, error) {

		var lastVal Value
		var err error

		for _, e := range stmts {
			lastVal, err = e(env)
			if err != nil {
				return nil, err
			}
			if flowChange(lastVal) != None {
				return lastVal, nil
			}
		}

		return lastVal, nil
	}, nil
}

func valFunc(val Value) Expr {
	return func(*multi.Env, ...Value) (Value, error) {
		return val, nil
	}
}

func fixedValue(val Value) func(node parser.Node) (Expr, error) {
	return func(node parser.Node) (Expr, error) {
		return valFunc(val), nil
	}
}

func compileIdent(node parser.Node) (Expr, error) {
	name := node.Item.Value
	return func(env *multi.Env, args ...Value) (Value, error) {
		v, ok := env.Get(name)
		if !ok {
			return nil, node.Error(fmt.Errorf("unknown variable %q", name))
		}
		return v, nil
	}, nil
}

func compileNumber(node parser.Node) (Expr, error) {

	i, err := strconv.ParseInt(node.Item.Value, 10, 64)
	if err == nil {
		return valFunc(i), nil
	}

	f, err := strconv.ParseFloat(node.Item.Value, 64)
	if err == nil {
		return valFunc(f), nil
	}

	return Noop, node.Error(fmt.Errorf("failed to convert number: %s", node.Item.Value))
}

func compileString(node parser.Node) (Expr, error) {

	v := node.Item.Value

	if node.Item.Type == lex.DoubleQuoteString {
		s, err := strconv.Unquote(v)
		if err != nil {
			return nil, node.Error(fmt.Errorf("failed to convert string %s: %v", v, err))
		}
		return valFunc(s), nil
	}

	// single quote and backtick strings carry their delimiters verbatim
	return valFunc(v[1 : len(v)-1]), nil
}

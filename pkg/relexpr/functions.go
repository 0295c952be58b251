package relexpr

import (
	"github.com/relq/relq/pkg/relerr"
	"github.com/relq/relq/pkg/reltype"
)

// FuncCall is an SQL function application. Functions are registered in
// a dialect-scoped table; Call looks the function up in the registry supplied by
// the caller (normally a dialect's Functions field, see pkg/dialect) so
// the core never hardcodes a fixed function list.
type FuncCall struct {
	Name string
	Args []Expr
	Typ  reltype.Tag
}

func (f FuncCall) Tag() reltype.Tag { return f.Typ }
func (FuncCall) exprNode()          {}

// FuncSignature is one entry in a function registry: the argument
// types a call must match (by position) and the result type it
// produces.
type FuncSignature struct {
	Name    string
	Args    []reltype.Tag
	Result  reltype.Tag
	Variadic bool // last Args entry repeats for any extra argument
}

// FuncRegistry is a dialect-scoped function table. The
// neutral baseline registry (BaselineFunctions) ships with this
// package; dialect packages extend it with their own entries.
type FuncRegistry struct {
	signatures map[string]FuncSignature
}

func NewFuncRegistry() *FuncRegistry {
	return &FuncRegistry{signatures: map[string]FuncSignature{}}
}

func (r *FuncRegistry) Register(sig FuncSignature) *FuncRegistry {
	r.signatures[sig.Name] = sig
	return r
}

// Extend returns a new registry containing r's entries plus other's,
// with other's entries taking precedence on name collision — the shape
// a dialect package uses to extend BaselineFunctions() with its own
// functions.
func (r *FuncRegistry) Extend(other *FuncRegistry) *FuncRegistry {
	merged := NewFuncRegistry()
	for k, v := range r.signatures {
		merged.signatures[k] = v
	}
	for k, v := range other.signatures {
		merged.signatures[k] = v
	}
	return merged
}

// Call builds a FuncCall against registry r, checking arity and
// per-position argument types.
func (r *FuncRegistry) Call(name string, args ...Expr) (Expr, error) {
	sig, ok := r.signatures[name]
	if !ok {
		return nil, relerr.New(relerr.UnsupportedForDialect, "function %q is not registered in this dialect's function set", name)
	}
	if sig.Variadic {
		if len(args) < len(sig.Args) {
			return nil, relerr.New(relerr.ArityMismatch, "function %q requires at least %d arguments, got %d", name, len(sig.Args), len(args))
		}
	} else if len(args) != len(sig.Args) {
		return nil, relerr.New(relerr.ArityMismatch, "function %q requires %d arguments, got %d", name, len(sig.Args), len(args))
	}
	for i, a := range args {
		want := sig.Args[min(i, len(sig.Args)-1)]
		if !a.Tag().Unwrap().Equal(want.Unwrap()) {
			return nil, relerr.New(relerr.TypeMismatch, "function %q argument %d: expected %s, got %s", name, i+1, want, a.Tag())
		}
	}
	return FuncCall{Name: name, Args: args, Typ: sig.Result}, nil
}

// BaselineFunctions returns the neutral baseline function set every
// dialect starts from: Abs, Ceil, Floor, Round, Ln, Log,
// Sin, Cos, Sqrt, Lower, Upper, Trim, Length, Substring, Concat.
// Coalesce is not registered here, so Call("Coalesce", ...) fails;
// COALESCE is built with the Coalesce constructor in case.go instead.
func BaselineFunctions() *FuncRegistry {
	r := NewFuncRegistry()
	dbl := reltype.Base(reltype.Double)
	str := reltype.Base(reltype.String)
	long := reltype.Base(reltype.Long)

	for _, name := range []string{"Abs", "Ceil", "Floor", "Round", "Ln", "Log", "Sin", "Cos", "Sqrt"} {
		r.Register(FuncSignature{Name: name, Args: []reltype.Tag{dbl}, Result: dbl})
	}
	for _, name := range []string{"Lower", "Upper", "Trim"} {
		r.Register(FuncSignature{Name: name, Args: []reltype.Tag{str}, Result: str})
	}
	r.Register(FuncSignature{Name: "Length", Args: []reltype.Tag{str}, Result: long})
	r.Register(FuncSignature{Name: "Substring", Args: []reltype.Tag{str, long, long}, Result: str})
	r.Register(FuncSignature{Name: "Concat", Args: []reltype.Tag{str}, Result: str, Variadic: true})
	return r
}

package relexpr

import (
	"github.com/relq/relq/pkg/relerr"
	"github.com/relq/relq/pkg/reltype"
)

// CaseBranch is one WHEN predicate THEN value arm.
type CaseBranch struct {
	Predicate Expr
	Value     Expr
}

// Case is the CASE primitive: every branch's
// predicate must be Boolean and every branch's (and the optional
// else's) value type must unify.
type Case struct {
	Branches []CaseBranch
	Else     Expr
	Typ      reltype.Tag
}

func (c Case) Tag() reltype.Tag { return c.Typ }
func (Case) exprNode()          {}

// NewCase builds a CASE expression. branches must be non-empty; every
// branch predicate must be Boolean, and every branch value (plus
// elseValue, if non-nil) must share one type.
func NewCase(branches []CaseBranch, elseValue Expr) (Expr, error) {
	if len(branches) == 0 {
		return nil, relerr.New(relerr.ArityMismatch, "CASE requires at least one branch")
	}
	result := branches[0].Value.Tag()
	boolTag := reltype.Base(reltype.Bool)
	for i, b := range branches {
		if !b.Predicate.Tag().Unwrap().Equal(boolTag) {
			return nil, relerr.New(relerr.TypeMismatch, "CASE branch %d predicate must be Boolean, got %s", i, b.Predicate.Tag())
		}
		if !b.Value.Tag().Unwrap().Equal(result.Unwrap()) {
			return nil, relerr.New(relerr.TypeMismatch, "CASE branch %d value type %s does not unify with %s", i, b.Value.Tag(), result)
		}
	}
	if elseValue != nil && !elseValue.Tag().Unwrap().Equal(result.Unwrap()) {
		return nil, relerr.New(relerr.TypeMismatch, "CASE else value type %s does not unify with %s", elseValue.Tag(), result)
	}
	return Case{Branches: branches, Else: elseValue, Typ: result}, nil
}

// Coalesce is COALESCE(e1, e2, ...): every argument's type must unify;
// the result tag is the last argument's tag, matching standard SQL
// COALESCE semantics where a non-null trailing default determines
// whether the whole expression can still be NULL.
func Coalesce(args ...Expr) (Expr, error) {
	if len(args) < 2 {
		return nil, relerr.New(relerr.ArityMismatch, "COALESCE requires at least two arguments")
	}
	base := args[0].Tag().Unwrap()
	for i, a := range args {
		if !a.Tag().Unwrap().Equal(base) {
			return nil, relerr.New(relerr.TypeMismatch, "COALESCE argument %d type %s does not unify with %s", i, a.Tag(), base)
		}
	}
	return FuncCall{Name: "Coalesce", Args: args, Typ: args[len(args)-1].Tag()}, nil
}

package relexpr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relq/relq/pkg/relerr"
	"github.com/relq/relq/pkg/reltype"
)

func TestBaselineFunctionsArityAndTypeChecking(t *testing.T) {
	base := BaselineFunctions()

	call, err := base.Call("Abs", litDouble(-1))
	require.NoError(t, err)
	require.True(t, call.Tag().Equal(reltype.Base(reltype.Double)))

	_, err = base.Call("Abs", litDouble(-1), litDouble(2))
	require.Error(t, err)
	require.True(t, relerr.Is(err, relerr.ArityMismatch))

	_, err = base.Call("Abs", litString("a"))
	require.Error(t, err)
	require.True(t, relerr.Is(err, relerr.TypeMismatch))
}

func TestBaselineFunctionsVariadicConcat(t *testing.T) {
	base := BaselineFunctions()

	call, err := base.Call("Concat", litString("a"), litString("b"), litString("c"))
	require.NoError(t, err)
	require.True(t, call.Tag().Equal(reltype.Base(reltype.String)))

	_, err = base.Call("Concat")
	require.Error(t, err)
}

func TestCallRejectsUnregisteredFunction(t *testing.T) {
	base := BaselineFunctions()
	_, err := base.Call("Jsonb", litString("{}"))
	require.Error(t, err)
	require.True(t, relerr.Is(err, relerr.UnsupportedForDialect))
}

// TestExtendOverridesOnCollisionAndAddsNewEntries models a dialect pack
// extending the neutral baseline registry: a
// dialect-only function becomes callable, and the baseline's entries
// remain callable unless the dialect pack overrides the same name.
func TestExtendOverridesOnCollisionAndAddsNewEntries(t *testing.T) {
	base := BaselineFunctions()

	pg := NewFuncRegistry()
	str := reltype.Base(reltype.String)
	pg.Register(FuncSignature{Name: "Initcap", Args: []reltype.Tag{str}, Result: str})
	pg.Register(FuncSignature{Name: "Lower", Args: []reltype.Tag{str, str}, Result: str})

	merged := base.Extend(pg)

	_, err := merged.Call("Initcap", litString("a"))
	require.NoError(t, err)

	// the Postgres-only function is not callable against the plain
	// baseline registry a different dialect would use.
	_, err = base.Call("Initcap", litString("a"))
	require.Error(t, err)
	require.True(t, relerr.Is(err, relerr.UnsupportedForDialect))

	// overridden entry wins: merged.Lower now wants two String args,
	// not the baseline's one.
	_, err = merged.Call("Lower", litString("a"))
	require.Error(t, err)
	_, err = merged.Call("Lower", litString("a"), litString("b"))
	require.NoError(t, err)

	// the baseline registry itself is untouched by Extend.
	call, err := base.Call("Lower", litString("a"))
	require.NoError(t, err)
	require.True(t, call.Tag().Equal(str))
}

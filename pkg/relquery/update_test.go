package relquery

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/reltype"
)

func TestUpdateBuilderRejectsDuplicateAssignment(t *testing.T) {
	users := testUsers(t)
	name := relexpr.Lit("Ada", reltype.Base(reltype.String))

	_, err := UpdateTable(users).
		Set("first_name", name).
		Set("first_name", name).
		Build()
	require.Error(t, err)
}

func TestUpdateBuilderRequiresAtLeastOneAssignment(t *testing.T) {
	users := testUsers(t)
	_, err := UpdateTable(users).Build()
	require.Error(t, err)
}

func TestUpdateBuilderRejectsNonBooleanWhere(t *testing.T) {
	users := testUsers(t)
	name := relexpr.Lit("Ada", reltype.Base(reltype.String))

	_, err := UpdateTable(users).
		Set("first_name", name).
		Where(name).
		Build()
	require.Error(t, err)
}

func TestUpdateBuilderAcceptsValidStatement(t *testing.T) {
	users := testUsers(t)
	id, err := users.ColByName("usr_id")
	require.NoError(t, err)
	name := relexpr.Lit("Ada", reltype.Base(reltype.String))
	where, err := relexpr.EqE(id, relexpr.Lit(int32(1), reltype.Base(reltype.Int)))
	require.NoError(t, err)

	update, err := UpdateTable(users).Set("first_name", name).Where(where).Build()
	require.NoError(t, err)
	require.Len(t, update.Assignments(), 1)
}

func TestDeleteFromRequiresBooleanWhere(t *testing.T) {
	users := testUsers(t)
	name := relexpr.Lit("Ada", reltype.Base(reltype.String))
	_, err := DeleteFrom(users, name)
	require.Error(t, err)
}

func TestDeleteFromAllowsNoWhere(t *testing.T) {
	users := testUsers(t)
	del, err := DeleteFrom(users, nil)
	require.NoError(t, err)
	require.Nil(t, del.Where())
}

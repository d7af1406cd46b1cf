package print_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/lakedag/internal/dagnode"
	"github.com/vk/lakedag/internal/opregistry"
	"github.com/vk/lakedag/modules/print"
)

func TestPrint_AcceptsPredecessorResultsWithoutError(t *testing.T) {
	reg := opregistry.New()
	print.Register(reg)

	op, ok := reg.Lookup("print")
	require.True(t, ok)
	require.NotNil(t, op.Exec)

	results, err := op.Exec(t.Context(), nil, []dagnode.Result{
		{ID: "b", Value: cty.StringVal("second")},
		{ID: "a", Value: cty.NumberIntVal(1)},
	})
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestPrint_HandlesNoPredecessors(t *testing.T) {
	reg := opregistry.New()
	print.Register(reg)

	op, _ := reg.Lookup("print")
	results, err := op.Exec(t.Context(), nil, nil)
	require.NoError(t, err)
	require.Empty(t, results)
}

package dagnode_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/lakedag/internal/dagnode"
)

func TestFlatten_Success(t *testing.T) {
	bundle := dagnode.Bundle{
		{ID: "a", Value: cty.NumberIntVal(1)},
		{ID: "b", Value: cty.NumberIntVal(2)},
	}
	out := dagnode.Flatten(dagnode.Ok(bundle))
	require.Len(t, out, 2)
	assert.True(t, out[0].Succeeded())
	assert.Equal(t, "a", out[0].Value.ID)
	assert.True(t, out[1].Succeeded())
	assert.Equal(t, "b", out[1].Value.ID)
}

func TestFlatten_Failure(t *testing.T) {
	cause := errors.New("boom")
	out := dagnode.Flatten(dagnode.Fail[dagnode.Bundle](cause))
	require.Len(t, out, 1)
	assert.False(t, out[0].Succeeded())
	assert.ErrorIs(t, out[0].Err, cause)
}

func TestPredecessorFailedError_UnwrapsToRoot(t *testing.T) {
	root := &dagnode.OperationFailedError{Node: "B", Cause: errors.New("E")}
	wrapped := &dagnode.PredecessorFailedError{Node: "D", Cause: root}

	var target *dagnode.OperationFailedError
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, dagnode.ID("B"), target.Node)
}

func TestBundle_Find(t *testing.T) {
	b := dagnode.Bundle{{ID: "rA", Value: cty.StringVal("x")}}
	r, ok := b.Find("rA")
	require.True(t, ok)
	assert.Equal(t, "x", r.Value.AsString())

	_, ok = b.Find("missing")
	assert.False(t, ok)
}

func TestNode_Validate(t *testing.T) {
	t.Run("empty id rejected", func(t *testing.T) {
		n := &dagnode.Node{ID: ""}
		assert.Error(t, n.Validate())
	})

	t.Run("init id requires init kind", func(t *testing.T) {
		n := &dagnode.Node{ID: dagnode.InitID, Kind: dagnode.KindUser}
		assert.Error(t, n.Validate())
	})

	t.Run("init node is valid", func(t *testing.T) {
		assert.NoError(t, dagnode.NewInit().Validate())
	})

	t.Run("ordinary node is valid", func(t *testing.T) {
		n := &dagnode.Node{ID: "A", Kind: dagnode.KindUser}
		assert.NoError(t, n.Validate())
	})
}

package dagvalue_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/lakedag/internal/dagvalue"
)

func TestToInterface_Primitives(t *testing.T) {
	s, err := dagvalue.ToInterface(cty.StringVal("hi"))
	require.NoError(t, err)
	assert.Equal(t, "hi", s)

	n, err := dagvalue.ToInterface(cty.NumberIntVal(42))
	require.NoError(t, err)
	assert.Equal(t, float64(42), n)

	b, err := dagvalue.ToInterface(cty.True)
	require.NoError(t, err)
	assert.Equal(t, true, b)
}

func TestToInterface_NullAndUnknown(t *testing.T) {
	n, err := dagvalue.ToInterface(cty.NullVal(cty.String))
	require.NoError(t, err)
	assert.Nil(t, n)

	u, err := dagvalue.ToInterface(cty.UnknownVal(cty.String))
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestToInterface_ObjectAndList(t *testing.T) {
	obj := cty.ObjectVal(map[string]cty.Value{
		"name": cty.StringVal("n"),
		"tags": cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}),
	})
	out, err := dagvalue.ToInterface(obj)
	require.NoError(t, err)
	m, ok := out.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "n", m["name"])
	assert.Equal(t, []any{"a", "b"}, m["tags"])
}

func TestForLog_UnsupportedTypeDoesNotPanic(t *testing.T) {
	// A capsule is JSON-encoded through encoding/json on its wrapped value,
	// so it needs a native type encoding/json rejects (a channel) to be
	// unsupported.
	capsuleType := cty.Capsule("opaque", reflect.TypeOf(make(chan int)))
	v := cty.CapsuleVal(capsuleType, new(chan int))
	rendered, ok := dagvalue.ForLog(v).(string)
	require.True(t, ok)
	assert.Contains(t, rendered, "unloggable")
}

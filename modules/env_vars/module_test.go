package env_vars_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/lakedag/internal/opregistry"
	env_vars "github.com/vk/lakedag/modules/env_vars"
)

func TestEnvVars_ExposesProcessEnvironment(t *testing.T) {
	require.NoError(t, os.Setenv("LAKEDAG_TEST_VAR", "hello"))
	t.Cleanup(func() { os.Unsetenv("LAKEDAG_TEST_VAR") })

	reg := opregistry.New()
	env_vars.Register(reg)

	op, ok := reg.Lookup("env_vars")
	require.True(t, ok)
	require.NotNil(t, op.Exec)

	results, err := op.Exec(t.Context(), nil, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "all", results[0].ID)

	assert.True(t, results[0].Value.Type().IsObjectType())
	assert.Equal(t, "hello", results[0].Value.GetAttr("LAKEDAG_TEST_VAR").AsString())
}

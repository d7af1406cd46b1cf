// Package env_vars implements the "env_vars" node operation: it produces
// one result, "all", holding every environment variable visible to the
// process as an object of strings. It has no inputs and nothing to do in
// the prepare or init phases.
package env_vars

import (
	"context"
	"os"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/lakedag/internal/dagnode"
	"github.com/vk/lakedag/internal/opregistry"
)

// Register wires this package's operation into reg under the name
// "env_vars", matching the type label a graph description's node block
// would use: `node "env_vars" "..." { outputs = ["all"] }`.
func Register(reg *opregistry.Registry) {
	reg.Register("env_vars", &opregistry.Operation{Exec: exec})
}

func exec(_ context.Context, _ any, _ []dagnode.Result) ([]dagnode.Result, error) {
	vals := make(map[string]cty.Value)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			vals[pair[0]] = cty.StringVal(pair[1])
		}
	}
	var all cty.Value
	if len(vals) == 0 {
		all = cty.EmptyObjectVal
	} else {
		all = cty.ObjectVal(vals)
	}
	return []dagnode.Result{{ID: "all", Value: all}}, nil
}

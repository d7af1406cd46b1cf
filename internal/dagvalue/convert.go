package dagvalue

import (
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// ToInterface unwraps a cty.Value into the nearest plain Go representation:
// primitives pass through as string/float64/bool, objects and maps become
// map[string]any, tuples and lists become []any. Unknown values anywhere in
// val — not just at the top level — are treated as absent (nil) rather than
// as a conversion failure, since a pending value is not itself an error.
//
// Rather than walking val's element structure by hand, this replaces every
// unknown with a null of the same type via cty.Transform, then hands the
// resolved value to cty's own JSON codec and decodes the result generically.
// The nesting and type dispatch are entirely cty/json's problem, not ours.
func ToInterface(val cty.Value) (any, error) {
	resolved, err := cty.Transform(val, nullifyUnknown)
	if err != nil {
		return nil, fmt.Errorf("dagvalue: resolving unknowns in %s: %w", val.Type().FriendlyName(), err)
	}

	raw, err := ctyjson.Marshal(resolved, resolved.Type())
	if err != nil {
		return nil, fmt.Errorf("dagvalue: unsupported cty.Type %s: %w", val.Type().FriendlyName(), err)
	}

	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("dagvalue: decoding %s: %w", val.Type().FriendlyName(), err)
	}
	return out, nil
}

// nullifyUnknown is a cty.TransformFunc: it replaces every unknown value in
// a tree with a null of the same type so the JSON round trip in ToInterface
// never has to reject a still-pending value.
func nullifyUnknown(_ cty.Path, v cty.Value) (cty.Value, error) {
	if !v.IsKnown() {
		return cty.NullVal(v.Type()), nil
	}
	return v, nil
}

// ForLog renders val for a structured log field: a successful conversion by
// ToInterface, or a placeholder string describing why it couldn't convert,
// rather than propagating a logging failure into the caller's error path.
func ForLog(val cty.Value) any {
	converted, err := ToInterface(val)
	if err != nil {
		return fmt.Sprintf("[unloggable cty.Value: %v]", err)
	}
	return converted
}

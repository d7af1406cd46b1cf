package dagnode

import "github.com/zclconf/go-cty/cty"

// Edge is a declared dependency: consumer To reads the result named
// ResultID out of producer From's output bundle.
type Edge struct {
	From     ID
	To       ID
	ResultID string
}

// Result is a single named, typed value produced by a node. ResultID is the
// only key by which a downstream edge locates it in a producer's output
// bundle. Value is a cty.Value so results stay self-describing without the
// scheduler having to know about any particular payload type — the same
// typed-value model the surrounding data-lake framework uses for column and
// argument values.
type Result struct {
	ID    string
	Value cty.Value
}

// Bundle is everything a single node produced on success: one Result per
// outgoing edge's declared ResultID.
type Bundle []Result

// Find returns the element of the bundle whose ID matches resultID.
func (b Bundle) Find(resultID string) (Result, bool) {
	for _, r := range b {
		if r.ID == resultID {
			return r, true
		}
	}
	return Result{}, false
}

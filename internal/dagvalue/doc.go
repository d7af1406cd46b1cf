// Package dagvalue converts the cty.Value payloads carried by
// dagnode.Result into plain Go values, for logging and for callers that
// want to inspect a result without linking against go-cty themselves.
package dagvalue

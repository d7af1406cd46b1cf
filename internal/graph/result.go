package graph

import "github.com/vk/lakedag/internal/dagnode"

// ResultOf looks up a single result by id. Given a producer's already
// resolved outcome and an edge's declared resultId, it returns the single
// matching result.
//
//   - If the producer failed, that failure is returned unchanged — the
//     caller (internal/taskgraph) is responsible for wrapping it into a
//     *dagnode.PredecessorFailedError at the consumer's aggregation step.
//   - If the producer succeeded but never emitted a result with this id,
//     ResultOf returns *dagnode.MissingResultError. That is a structural
//     error: it aborts the whole run rather than becoming a per-node
//     failure, because it means the producer's Op violated its contract.
func ResultOf(producer dagnode.NodeOutcome, edge dagnode.Edge) (dagnode.Result, error) {
	if !producer.Succeeded() {
		return dagnode.Result{}, producer.Err
	}
	r, ok := producer.Value.Find(edge.ResultID)
	if !ok {
		return dagnode.Result{}, &dagnode.MissingResultError{Producer: edge.From, ResultID: edge.ResultID}
	}
	return r, nil
}

package toolchain

import "context"

// runState is the value threaded through the resolution pipeline.
//
// Each step receives the state by value and returns an updated copy;
// no step mutates shared process-wide state. The dependency descriptor
// rides alongside the config because later steps (translation) consume
// it without it being part of the final output.
type runState struct {
	config ResolvedConfig
	dep    *Dependency
}

// resolveStep is one stage of the sequential resolution pipeline.
type resolveStep func(ctx context.Context, opts *ResolveOptions, st runState) (runState, error)

// runPipeline executes the resolution steps in order.
//
// The pipeline is strictly sequential: every step depends on the results
// of the previous one, so there is no parallelism. The first error aborts
// the run immediately; no partial state survives because the accumulated
// state travels with the aborted value and is discarded by the caller.
//
// Context cancellation is checked between steps so the synchronous
// external-process invocations inside a step remain the only blocking
// points.
func runPipeline(ctx context.Context, opts *ResolveOptions, steps []resolveStep) (runState, error) {
	var st runState
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		var err error
		st, err = step(ctx, opts, st)
		if err != nil {
			return st, err
		}
	}
	return st, nil
}

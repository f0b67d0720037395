// Package pipeline provides lazy, pull-based pipeline operators over iterators.
//
// No work happens until values are pulled via Collect, ForEach or Open. Each
// stage pulls from the previous one on demand, so a slow consumer never buffers
// unbounded results and order is always the source order.
//
// The Iterator interface is structurally compatible with provider.Iterator[T],
// so client result streams plug directly into pipelines:
//
//	src := pipeline.From[result.Raw[Country]](it)
//	mapped := pipeline.Map(src, process)
//	final := pipeline.OnError(mapped, func(_ context.Context, err error) (try.Try[Out], bool) {
//	    return try.Failure[Out](err), true
//	})
//	values, err := pipeline.Collect(ctx, final)
package pipeline

// Package async provides a minimal generic Future.
//
// Go starts a function in its own goroutine and returns a *Future that the
// caller can Await, wait on with a context, or select on through Done.
// Panics inside the function are recovered and reported as errors wrapping
// ErrPanic, so cleanup that depends on completion always runs.
//
//	f := async.Go(ctx, func(ctx context.Context) (Receipt, error) {
//	    return submitter.Submit(ctx, req)
//	})
//	receipt, err := f.Await()
package async
